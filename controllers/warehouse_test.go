package controllers_test

import (
	"net/http"
	"testing"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarehouseQuantityUpdate(t *testing.T) {
	env := setupTest(t)

	product := env.createProduct(t, "Cleansing Gel", "Cleansers", 16, 6, 1, 3)

	w := env.request(t, http.MethodPut, "/api/warehouse/"+product.ID.String(), env.adminToken, gin.H{
		"quantity": 42,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Product
	decodeBody(t, w, &updated)
	assert.Equal(t, 42, updated.Quantity)

	// Only the quantity changes.
	assert.Equal(t, product.Name, updated.Name)
	assert.Equal(t, product.RetailPrice, updated.RetailPrice)
}

func TestWarehouseQuantityNegative(t *testing.T) {
	env := setupTest(t)

	product := env.createProduct(t, "Micellar Water", "Cleansers", 12, 5, 1, 10)

	w := env.request(t, http.MethodPut, "/api/warehouse/"+product.ID.String(), env.adminToken, gin.H{
		"quantity": -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWarehouseUpdateForbiddenForManager(t *testing.T) {
	env := setupTest(t)

	product := env.createProduct(t, "Peeling Pads", "Exfoliants", 19, 8, 1, 6)

	w := env.request(t, http.MethodPut, "/api/warehouse/"+product.ID.String(), env.managerToken, gin.H{
		"quantity": 1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWarehouseListing(t *testing.T) {
	env := setupTest(t)

	env.createProduct(t, "Hand Cream", "Body Care", 9, 3, 1, 14)
	env.createProduct(t, "Foot Cream", "Body Care", 9, 3, 1, 2)

	w := env.request(t, http.MethodGet, "/api/warehouse?pageSize=1&page=2", env.managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products   []models.Product `json:"products"`
		TotalCount int64            `json:"totalCount"`
		PageSize   int              `json:"pageSize"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, int64(2), resp.TotalCount)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Hand Cream", resp.Products[0].Name)
}
