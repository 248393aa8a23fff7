// controllers/order.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/config"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/models"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItemInput defines the structure for an order line item
type OrderItemInput struct {
	ProductID     uuid.UUID `json:"productId" binding:"required"`
	ProductName   string    `json:"productName"`
	Price         float64   `json:"price" binding:"min=0"`
	Quantity      int       `json:"quantity" binding:"min=1"`
	Discount      float64   `json:"discount" binding:"min=0,max=100"`
	SalonPriceUsd *float64  `json:"salonPriceUsd"`
	ExchangeRate  *float64  `json:"exchangeRate"`
}

// CreateOrderInput defines the expected JSON structure for creating an order
type CreateOrderInput struct {
	CustomerID         uuid.UUID        `json:"customerId" binding:"required"`
	Date               *time.Time       `json:"date"`
	Status             string           `json:"status"`
	TotalAmount        *float64         `json:"totalAmount" binding:"required"`
	Notes              string           `json:"notes"`
	ManagedByUserEmail string           `json:"managedByUserEmail"`
	Items              []OrderItemInput `json:"items"`
}

// UpdateOrderInput defines the expected JSON structure for updating an order.
// When Items is present the entire item set is replaced.
type UpdateOrderInput struct {
	CustomerID         *uuid.UUID        `json:"customerId"`
	Date               *time.Time        `json:"date"`
	Status             *string           `json:"status"`
	TotalAmount        *float64          `json:"totalAmount"`
	Notes              *string           `json:"notes"`
	ManagedByUserEmail *string           `json:"managedByUserEmail"`
	Items              *[]OrderItemInput `json:"items"`
}

// buildOrderItems validates item inputs and fills cost snapshots from the
// product row when the client does not supply them.
func buildOrderItems(tx *gorm.DB, inputs []OrderItemInput) ([]models.OrderItem, int, string) {
	var items []models.OrderItem
	for _, in := range inputs {
		var product models.Product
		if err := tx.First(&product, "id = ?", in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, http.StatusBadRequest, "Product not found: " + in.ProductID.String()
			}
			return nil, http.StatusInternalServerError, "Database error"
		}

		item := models.OrderItem{
			ProductID:     product.ID,
			ProductName:   product.Name,
			Price:         in.Price,
			Quantity:      in.Quantity,
			Discount:      in.Discount,
			SalonPriceUsd: product.SalonPrice,
			ExchangeRate:  product.ExchangeRate,
		}
		if in.ProductName != "" {
			item.ProductName = in.ProductName
		}
		if in.SalonPriceUsd != nil {
			item.SalonPriceUsd = *in.SalonPriceUsd
		}
		if in.ExchangeRate != nil {
			item.ExchangeRate = *in.ExchangeRate
		}
		items = append(items, item)
	}
	return items, 0, ""
}

// CreateOrder creates an order and its line items in a single transaction
func CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	status := input.Status
	if status == "" {
		status = models.DefaultOrderStatus
	}
	if !models.IsValidOrderStatus(status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown order status: "+status)
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Orders are attributed to their creator; only admins may attribute an
	// order to somebody else.
	managedBy := c.GetString(utils.CtxUserEmail)
	if input.ManagedByUserEmail != "" && c.GetString(utils.CtxUserRole) == utils.RoleAdmin {
		managedBy = input.ManagedByUserEmail
	}

	orderDate := time.Now()
	if input.Date != nil {
		orderDate = *input.Date
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	items, errCode, errMsg := buildOrderItems(tx, input.Items)
	if errCode != 0 {
		tx.Rollback()
		utils.RespondWithError(c, errCode, errMsg)
		return
	}

	order := models.Order{
		CustomerID:         customer.ID,
		CustomerName:       customer.Name,
		Date:               orderDate,
		Status:             status,
		TotalAmount:        *input.TotalAmount,
		Notes:              input.Notes,
		ManagedByUserEmail: managedBy,
		Items:              items,
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, order)
}

// GetOrders retrieves all orders, optionally filtered by customer
func GetOrders(c *gin.Context) {
	query := config.DB.Preload("Items").Order("date DESC")

	if customerID := c.Query("customerId"); customerID != "" {
		customerUUID, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		query = query.Where("customer_id = ?", customerUUID)
	}

	orders := []models.Order{}
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder retrieves a specific order by ID
func GetOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder updates an existing order. A present items array replaces the
// whole item set inside the same transaction.
func UpdateOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Status != nil && !models.IsValidOrderStatus(*input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown order status: "+*input.Status)
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var order models.Order
	if err := tx.Preload("Items").First(&order, "id = ?", orderUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.CustomerID != nil {
		var customer models.Customer
		if err := tx.First(&customer, "id = ?", *input.CustomerID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		order.CustomerID = customer.ID
		order.CustomerName = customer.Name
	}
	if input.Date != nil {
		order.Date = *input.Date
	}
	if input.Status != nil {
		order.Status = *input.Status
	}
	if input.TotalAmount != nil {
		order.TotalAmount = *input.TotalAmount
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}
	if input.ManagedByUserEmail != nil && c.GetString(utils.CtxUserRole) == utils.RoleAdmin {
		order.ManagedByUserEmail = *input.ManagedByUserEmail
	}

	if input.Items != nil {
		// Replace the entire item set.
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}

		items, errCode, errMsg := buildOrderItems(tx, *input.Items)
		if errCode != 0 {
			tx.Rollback()
			utils.RespondWithError(c, errCode, errMsg)
			return
		}
		order.Items = items
	}

	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, order)
}

// DeleteOrder deletes an order and its items in a single transaction
func DeleteOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var order models.Order
	if err := tx.First(&order, "id = ?", orderUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order items")
		return
	}

	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	tx.Commit()

	c.Status(http.StatusNoContent)
}
