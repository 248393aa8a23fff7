package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatuses is the fixed lifecycle enumeration for orders.
var OrderStatuses = []string{
	"Ordered",
	"Shipped",
	"Received",
	"Calculation",
	"AwaitingApproval",
	"PaidByClient",
	"WrittenOff",
	"ReadyForPickup",
}

const DefaultOrderStatus = "Ordered"

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	// Denormalized so listings render without a join.
	CustomerName string `json:"customerName"`

	Date        time.Time `gorm:"index" json:"date"`
	Status      string    `gorm:"type:varchar(20);default:'Ordered'" json:"status"`
	TotalAmount float64   `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	Notes       string    `gorm:"type:text" json:"notes"`

	// Attributes the order to the manager who created or owns it; drives the
	// per-manager dashboard breakdown.
	ManagedByUserEmail string `gorm:"index" json:"managedByUserEmail"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"productId"`

	ProductName string  `gorm:"not null" json:"productName"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	Discount    float64 `gorm:"type:decimal(5,2);default:0.0" json:"discount"`

	// Cost snapshot captured at order time so historical profit figures stay
	// stable when the product's current prices change.
	SalonPriceUsd float64 `gorm:"type:decimal(10,2);default:0.0" json:"salonPriceUsd"`
	ExchangeRate  float64 `gorm:"type:decimal(10,4);default:1.0" json:"exchangeRate"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
