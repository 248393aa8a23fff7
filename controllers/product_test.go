package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetProduct(t *testing.T) {
	env := setupTest(t)

	created := env.createProduct(t, "Hydrating Serum", "Serums", 49.90, 20, 1.1, 7)
	assert.Equal(t, "Serums", created.Group)

	w := env.request(t, http.MethodGet, "/api/products/"+created.ID.String(), env.managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Product
	decodeBody(t, w, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Serums", got.Group)
	assert.Equal(t, 7, got.Quantity)
}

func TestCreateProductUnknownGroup(t *testing.T) {
	env := setupTest(t)

	w := env.request(t, http.MethodPost, "/api/products", env.adminToken, gin.H{
		"name":  "Mystery Balm",
		"group": "Potions",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestManagerCannotMutateProducts(t *testing.T) {
	env := setupTest(t)

	w := env.request(t, http.MethodPost, "/api/products", env.managerToken, gin.H{
		"name":  "Night Cream",
		"group": "Moisturizers",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	product := env.createProduct(t, "Night Cream", "Moisturizers", 30, 12, 1, 3)

	w = env.request(t, http.MethodPut, "/api/products/"+product.ID.String(), env.managerToken, gin.H{"name": "Renamed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodDelete, "/api/products/"+product.ID.String(), env.managerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProductGroupImmutable(t *testing.T) {
	env := setupTest(t)

	product := env.createProduct(t, "Clay Mask", "Masks", 25, 10, 1, 4)

	w := env.request(t, http.MethodPut, "/api/products/"+product.ID.String(), env.adminToken, gin.H{
		"group": "Serums",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Re-sending the current group is a no-op, not an error.
	w = env.request(t, http.MethodPut, "/api/products/"+product.ID.String(), env.adminToken, gin.H{
		"group": "Masks",
		"name":  "Green Clay Mask",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Product
	decodeBody(t, w, &updated)
	assert.Equal(t, "Green Clay Mask", updated.Name)
	assert.Equal(t, "Masks", updated.Group)
}

func TestProductPagination(t *testing.T) {
	env := setupTest(t)

	for i := 1; i <= 25; i++ {
		env.createProduct(t, fmt.Sprintf("Product %02d", i), "Body Care", 10, 4, 1, 1)
	}

	w := env.request(t, http.MethodGet, "/api/products?page=2&pageSize=10", env.managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products   []models.Product `json:"products"`
		TotalCount int64            `json:"totalCount"`
		Page       int              `json:"page"`
		PageSize   int              `json:"pageSize"`
	}
	decodeBody(t, w, &resp)

	assert.Equal(t, int64(25), resp.TotalCount)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	require.Len(t, resp.Products, 10)

	// Page 2 of the name-sorted set covers indices 10-19.
	assert.Equal(t, "Product 11", resp.Products[0].Name)
	assert.Equal(t, "Product 20", resp.Products[9].Name)
}

func TestProductSearch(t *testing.T) {
	env := setupTest(t)

	env.createProduct(t, "Day Cream", "Moisturizers", 20, 8, 1, 2)
	env.createProduct(t, "Night CREAM Rich", "Moisturizers", 25, 9, 1, 2)
	env.createProduct(t, "Lip Balm", "Lip Care", 8, 3, 1, 5)

	w := env.request(t, http.MethodGet, "/api/products?search=cream", env.managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products   []models.Product `json:"products"`
		TotalCount int64            `json:"totalCount"`
	}
	decodeBody(t, w, &resp)

	assert.Equal(t, int64(2), resp.TotalCount)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "Day Cream", resp.Products[0].Name)
}

func TestDeleteProductReferencedByOrder(t *testing.T) {
	env := setupTest(t)

	product := env.createProduct(t, "Eye Serum", "Eye Care", 40, 15, 1, 6)
	customer := env.createCustomer(t, "Kateryna")

	w := env.request(t, http.MethodPost, "/api/orders", env.adminToken, gin.H{
		"customerId":  customer.ID,
		"totalAmount": 40.0,
		"items": []gin.H{
			{"productId": product.ID, "quantity": 1, "price": 40.0},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.request(t, http.MethodDelete, "/api/products/"+product.ID.String(), env.adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The row must survive the refused delete.
	var count int64
	require.NoError(t, env.db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteProductUnreferenced(t *testing.T) {
	env := setupTest(t)

	product := env.createProduct(t, "Toner Fresh", "Toners", 15, 6, 1, 10)

	w := env.request(t, http.MethodDelete, "/api/products/"+product.ID.String(), env.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, http.MethodGet, "/api/products/"+product.ID.String(), env.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBulkDeletePartialConflict(t *testing.T) {
	env := setupTest(t)

	free := env.createProduct(t, "Sample Free", "Gift Sets", 5, 2, 1, 1)
	blocked := env.createProduct(t, "Sample Blocked", "Gift Sets", 5, 2, 1, 1)
	customer := env.createCustomer(t, "Oksana")

	w := env.request(t, http.MethodPost, "/api/orders", env.adminToken, gin.H{
		"customerId":  customer.ID,
		"totalAmount": 5.0,
		"items": []gin.H{
			{"productId": blocked.ID, "quantity": 1, "price": 5.0},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// One deletable, one blocked: 200 with a summary.
	w = env.request(t, http.MethodDelete, "/api/products", env.adminToken, gin.H{
		"ids": []string{free.ID.String(), blocked.ID.String()},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary struct {
		TotalDeletedCount int    `json:"totalDeletedCount"`
		ConflictCount     int    `json:"conflictCount"`
		NotFoundCount     int    `json:"notFoundCount"`
		Message           string `json:"message"`
	}
	decodeBody(t, w, &summary)
	assert.Equal(t, 1, summary.TotalDeletedCount)
	assert.Equal(t, 1, summary.ConflictCount)
	assert.Equal(t, 0, summary.NotFoundCount)

	// Wholly blocked: 409.
	w = env.request(t, http.MethodDelete, "/api/products", env.adminToken, gin.H{
		"ids": []string{blocked.ID.String()},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	decodeBody(t, w, &summary)
	assert.Equal(t, 0, summary.TotalDeletedCount)
	assert.Equal(t, 1, summary.ConflictCount)
}

func TestBulkDeleteNothingFound(t *testing.T) {
	env := setupTest(t)

	w := env.request(t, http.MethodDelete, "/api/products", env.adminToken, gin.H{
		"ids": []string{"0e3c99d4-31a0-4f7a-9df6-9a2ff0f3ab01"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
