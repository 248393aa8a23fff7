package services

import (
	"testing"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newStockTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func TestSweepLowStock(t *testing.T) {
	db := newStockTestDB(t)

	require.NoError(t, db.Create(&models.Product{Name: "Low", Group: "Serums", RetailPrice: 10, Quantity: 1}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Full", Group: "Serums", RetailPrice: 10, Quantity: 50}).Error)

	svc := NewStockService(db, zap.NewNop())
	svc.SweepLowStock()

	// Sweep observes but never mutates stock.
	var low models.Product
	require.NoError(t, db.Where("name = ?", "Low").First(&low).Error)
	assert.Equal(t, 1, low.Quantity)
}

func TestStockServiceThresholdFromEnv(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "12")

	svc := NewStockService(newStockTestDB(t), zap.NewNop())
	assert.Equal(t, 12, svc.threshold)
}

func TestStockServiceThresholdDefault(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "")

	svc := NewStockService(newStockTestDB(t), zap.NewNop())
	assert.Equal(t, defaultLowStockThreshold, svc.threshold)
}
