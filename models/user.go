package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff roles. Guests authenticate through the Guest model and carry
// RoleGuest on their Principal instead.
const (
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleReceptionist = "receptionist"
	RoleHousekeeping = "housekeeping"
	RoleMaintenance  = "maintenance"
	RoleGuest        = "user"
)

// User is a staff account. Customer identities live in Guest.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255" json:"name"`
	Email    string `gorm:"uniqueIndex;size:150" json:"email"`
	Password string `gorm:"size:255" json:"-"`
	Role     string `gorm:"size:32;default:receptionist" json:"role"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	ResetToken       *string    `gorm:"size:128;index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func IsStaffRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleReceptionist, RoleHousekeeping, RoleMaintenance:
		return true
	}
	return false
}
