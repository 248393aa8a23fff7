package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/config"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/metrics"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/models"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProductInput defines the expected JSON structure for creating a product
type CreateProductInput struct {
	Name         string   `json:"name" binding:"required"`
	Group        string   `json:"group" binding:"required"`
	RetailPrice  float64  `json:"retailPrice" binding:"min=0"`
	SalonPrice   float64  `json:"salonPrice" binding:"min=0"`
	ExchangeRate *float64 `json:"exchangeRate"`
	Quantity     *int     `json:"quantity"`
}

// UpdateProductInput defines the expected JSON structure for updating a product
type UpdateProductInput struct {
	Name         *string  `json:"name"`
	Group        *string  `json:"group"`
	RetailPrice  *float64 `json:"retailPrice"`
	SalonPrice   *float64 `json:"salonPrice"`
	ExchangeRate *float64 `json:"exchangeRate"`
	Quantity     *int     `json:"quantity"`
}

// BulkDeleteInput carries the id list for DELETE /api/products
type BulkDeleteInput struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// ProductListResponse is the pagination envelope shared by product, warehouse
// and expense listings.
type ProductListResponse struct {
	Products   []models.Product `json:"products"`
	TotalCount int64            `json:"totalCount"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
}

// GetProducts lists the catalog across all groups with search and pagination.
// Filtering, ordering and the offset/limit slice are pushed down to SQL.
func GetProducts(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)
	search := strings.TrimSpace(c.Query("search"))

	query := config.DB.Model(&models.Product{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count products")
		return
	}

	products := []models.Product{}
	if err := query.Order("name ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, ProductListResponse{
		Products:   products,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	})
}

// GetProduct retrieves a single product by ID
func GetProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", productUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a new product in one of the fixed groups
func CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.IsValidProductGroup(input.Group) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown product group: "+input.Group)
		return
	}

	product := models.Product{
		Name:         input.Name,
		Group:        input.Group,
		RetailPrice:  input.RetailPrice,
		SalonPrice:   input.SalonPrice,
		ExchangeRate: 1,
	}
	if input.ExchangeRate != nil {
		product.ExchangeRate = *input.ExchangeRate
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Quantity must not be negative")
			return
		}
		product.Quantity = *input.Quantity
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	metrics.RecordProductOperation("create")
	metrics.UpdateProductInventory(product.ID.String(), product.Name, product.Group, float64(product.Quantity))
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct updates an existing product. The group is immutable.
func UpdateProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", productUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Group != nil && *input.Group != product.Group {
		utils.RespondWithError(c, http.StatusBadRequest, "Product group cannot be changed")
		return
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.RetailPrice != nil {
		product.RetailPrice = *input.RetailPrice
	}
	if input.SalonPrice != nil {
		product.SalonPrice = *input.SalonPrice
	}
	if input.ExchangeRate != nil {
		product.ExchangeRate = *input.ExchangeRate
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Quantity must not be negative")
			return
		}
		product.Quantity = *input.Quantity
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	metrics.RecordProductOperation("update")
	metrics.UpdateProductInventory(product.ID.String(), product.Name, product.Group, float64(product.Quantity))
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product unless order items still reference it
func DeleteProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", productUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var references int64
	if err := config.DB.Model(&models.OrderItem{}).
		Where("product_id = ?", productUUID).
		Count(&references).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if references > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Product is referenced by existing orders and cannot be deleted")
		return
	}

	if err := config.DB.Delete(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	metrics.RecordProductOperation("delete")
	metrics.ProductInventory.DeleteLabelValues(product.ID.String(), product.Name, product.Group)
	c.Status(http.StatusNoContent)
}

// BulkDeleteProducts deletes a list of products, skipping ids that are
// referenced by order items. 200 when at least one row was deleted, 409 when
// every requested id was blocked by references, 404 when none of the ids
// exist.
func BulkDeleteProducts(c *gin.Context) {
	var input BulkDeleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existingIDs []uuid.UUID
	if err := config.DB.Model(&models.Product{}).
		Where("id IN ?", input.IDs).
		Pluck("id", &existingIDs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var referencedIDs []uuid.UUID
	if err := config.DB.Model(&models.OrderItem{}).
		Distinct("product_id").
		Where("product_id IN ?", input.IDs).
		Pluck("product_id", &referencedIDs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	referenced := make(map[uuid.UUID]bool, len(referencedIDs))
	for _, id := range referencedIDs {
		referenced[id] = true
	}

	var deletable []uuid.UUID
	conflictCount := 0
	for _, id := range existingIDs {
		if referenced[id] {
			conflictCount++
			continue
		}
		deletable = append(deletable, id)
	}
	notFoundCount := len(input.IDs) - len(existingIDs)

	if len(deletable) > 0 {
		if err := config.DB.Where("id IN ?", deletable).Delete(&models.Product{}).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete products")
			return
		}
		metrics.RecordProductOperation("bulk_delete")
	}

	message := fmt.Sprintf("Deleted %d of %d products", len(deletable), len(input.IDs))
	if conflictCount > 0 {
		message += fmt.Sprintf("; %d could not be deleted because they are referenced by existing orders", conflictCount)
	}
	if notFoundCount > 0 {
		message += fmt.Sprintf("; %d were not found", notFoundCount)
	}

	status := http.StatusOK
	if len(deletable) == 0 {
		if conflictCount > 0 {
			status = http.StatusConflict
		} else {
			status = http.StatusNotFound
		}
	}

	c.JSON(status, gin.H{
		"totalDeletedCount": len(deletable),
		"conflictCount":     conflictCount,
		"notFoundCount":     notFoundCount,
		"message":           message,
	})
}
