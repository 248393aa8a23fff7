// services/stock_service.go
package services

import (
	"os"
	"strconv"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/metrics"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultLowStockThreshold = 5

type StockService struct {
	db        *gorm.DB
	log       *zap.Logger
	threshold int
}

func NewStockService(db *gorm.DB, log *zap.Logger) *StockService {
	threshold := defaultLowStockThreshold
	if env := os.Getenv("LOW_STOCK_THRESHOLD"); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n >= 0 {
			threshold = n
		}
	}

	return &StockService{
		db:        db,
		log:       log.Named("stock"),
		threshold: threshold,
	}
}

// StartScheduler runs the low-stock sweep every day at 9 AM.
func (s *StockService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", s.SweepLowStock)

	c.Start()
	s.log.Info("stock scheduler started", zap.Int("threshold", s.threshold))
}

// SweepLowStock logs every product below the stock threshold and refreshes
// the inventory gauges.
func (s *StockService) SweepLowStock() {
	var products []models.Product
	if err := s.db.Where("quantity < ?", s.threshold).Order("quantity ASC").Find(&products).Error; err != nil {
		s.log.Error("failed to scan warehouse stock", zap.Error(err))
		return
	}

	for _, p := range products {
		s.log.Warn("low stock",
			zap.String("productId", p.ID.String()),
			zap.String("name", p.Name),
			zap.String("group", p.Group),
			zap.Int("quantity", p.Quantity),
		)
		metrics.UpdateProductInventory(p.ID.String(), p.Name, p.Group, float64(p.Quantity))
	}

	s.log.Info("low stock sweep completed", zap.Int("lowStockCount", len(products)))
}
