package controllers

import (
	"errors"
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

// UpdateWarehouseInput carries a quantity-only stock adjustment
type UpdateWarehouseInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetWarehouse lists products with their stock quantities, using the same
// search/pagination contract as the catalog listing.
func GetWarehouse(c *gin.Context) {
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
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve warehouse stock")
		return
	}

	c.JSON(http.StatusOK, ProductListResponse{
		Products:   products,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	})
}

// UpdateWarehouseQuantity updates only the stock quantity of a product
func UpdateWarehouseQuantity(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input UpdateWarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if *input.Quantity < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Quantity must not be negative")
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

	if err := config.DB.Model(&product).Update("quantity", *input.Quantity).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quantity")
		return
	}
	product.Quantity = *input.Quantity

	metrics.UpdateProductInventory(product.ID.String(), product.Name, product.Group, float64(product.Quantity))
	c.JSON(http.StatusOK, product)
}
