package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense is a standalone cost entry, independent of orders. Expenses only
// participate in profit-and-loss reporting.
type Expense struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name   string    `gorm:"not null" json:"name"`
	Amount float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date   time.Time `gorm:"index" json:"date"`
	Notes  string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
