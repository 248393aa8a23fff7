package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductGroups is the fixed set of catalog groups, in display order. A
// product's group is validated against this list on create and never changes
// afterwards.
var ProductGroups = []string{
	"Cleansers",
	"Toners",
	"Serums",
	"Moisturizers",
	"Masks",
	"Exfoliants",
	"Eye Care",
	"Lip Care",
	"Sunscreen",
	"Body Care",
	"Hair Care",
	"Nail Care",
	"Fragrance",
	"Makeup Face",
	"Makeup Eyes",
	"Makeup Lips",
	"Tools",
	"Gift Sets",
}

func IsValidProductGroup(group string) bool {
	for _, g := range ProductGroups {
		if g == group {
			return true
		}
	}
	return false
}

type Product struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Group string    `gorm:"type:varchar(40);not null;index;index:idx_products_group_name,priority:1" json:"group"`
	Name  string    `gorm:"not null;index:idx_products_group_name,priority:2" json:"name"`

	RetailPrice  float64 `gorm:"type:decimal(10,2);not null" json:"retailPrice"`
	SalonPrice   float64 `gorm:"type:decimal(10,2);default:0.0" json:"salonPrice"`
	ExchangeRate float64 `gorm:"type:decimal(10,4);default:1.0" json:"exchangeRate"`
	Quantity     int     `gorm:"default:0" json:"quantity"`

	CreatedAt time.Time `json:"createdAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
