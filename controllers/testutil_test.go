package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/config"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/models"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/routes"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/utils"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testAdminEmail    = "owner@romanova.example"
	testAdminName     = "Olena"
	testAdminPassword = "correct-horse-battery"
	testManagerEmail  = "manager@romanova.example"
	testManagerName   = "Iryna"
)

var dbSeq int64

type testEnv struct {
	db           *gorm.DB
	router       *gin.Engine
	adminToken   string
	managerToken string
}

// setupTest wires a fresh in-memory database behind the real router and
// seeds one admin and one manager account.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKENINFO_URL", "http://127.0.0.1:1/tokeninfo")

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.ManagedUser{},
		&models.Customer{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Expense{},
	))
	config.DB = db

	require.NoError(t, db.Create(&models.Admin{
		Email:    testAdminEmail,
		Name:     testAdminName,
		Password: testAdminPassword,
	}).Error)
	require.NoError(t, db.Create(&models.ManagedUser{
		Email:             testManagerEmail,
		Name:              testManagerName,
		AddedByAdminEmail: testAdminEmail,
	}).Error)

	adminToken, err := utils.GenerateToken(testAdminEmail, testAdminName)
	require.NoError(t, err)
	managerToken, err := utils.GenerateToken(testManagerEmail, testManagerName)
	require.NoError(t, err)

	return &testEnv{
		db:           db,
		router:       routes.SetupRouter(),
		adminToken:   adminToken,
		managerToken: managerToken,
	}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func (e *testEnv) createProduct(t *testing.T, name, group string, retail, salon, rate float64, qty int) models.Product {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/products", e.adminToken, gin.H{
		"name":         name,
		"group":        group,
		"retailPrice":  retail,
		"salonPrice":   salon,
		"exchangeRate": rate,
		"quantity":     qty,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product models.Product
	decodeBody(t, w, &product)
	return product
}

func (e *testEnv) createCustomer(t *testing.T, name string) models.Customer {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/customers", e.adminToken, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var customer models.Customer
	decodeBody(t, w, &customer)
	return customer
}
