package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Guest is a customer identity, keyed by lowercased email. A guest may
// or may not have a portal password; repeat bookings update the record
// in place rather than creating duplicates.
type Guest struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:120" json:"firstName"`
	LastName  string `gorm:"size:120" json:"lastName"`
	Email     string `gorm:"uniqueIndex;size:150" json:"email"`
	Phone     string `gorm:"size:40" json:"phone"`
	Password  string `gorm:"size:255" json:"-"`

	Address     string `gorm:"type:text" json:"address,omitempty"`
	Preferences string `gorm:"type:text" json:"preferences,omitempty"`
	Notes       string `gorm:"type:text" json:"notes,omitempty"`

	ResetToken       *string    `gorm:"size:128;index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

// IsBcryptHash reports whether s already looks like a bcrypt digest.
func IsBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// BeforeSave hashes a plaintext password. Already-hashed values pass
// through untouched so a reload-and-save cycle cannot double-hash.
func (g *Guest) BeforeSave(tx *gorm.DB) error {
	if g.Password == "" || IsBcryptHash(g.Password) {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(g.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	g.Password = string(hash)
	return nil
}
