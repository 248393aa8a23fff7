package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"index" json:"email"`
	Phone    string    `json:"phone"`
	Address  Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	JoinDate time.Time `json:"joinDate"`

	Instagram string `json:"instagram"`
	Viber     string `json:"viber"`
	Notes     string `gorm:"type:text" json:"notes"`

	Orders []Order `gorm:"foreignKey:CustomerID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
