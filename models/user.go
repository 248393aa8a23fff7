package models

import (
	"strings"
	"time"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin is an account with full privileges. Role resolution checks the
// admins table before managed_users, so an email present in both is an admin.
type Admin struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Name     string    `gorm:"not null" json:"name"`
	Password string    `gorm:"not null" json:"-"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	hashed, err := utils.HashPassword(a.Password)
	if err != nil {
		return err
	}
	a.Password = hashed
	return
}

// ManagedUser is a manager-role account. Managers work with orders and
// customers but cannot touch the catalog or other accounts.
type ManagedUser struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`
	Notes string    `gorm:"type:text" json:"notes"`

	AddedByAdminEmail string    `json:"addedByAdminEmail"`
	CreatedAt         time.Time `json:"createdAt"`
}

func (m *ManagedUser) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	return
}
