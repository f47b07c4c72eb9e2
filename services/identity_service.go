package services

import (
	"errors"
	"fmt"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"luxury-stay-backend/models"
	"luxury-stay-backend/utils"
)

// IdentityService keeps one canonical Guest record per email. Both
// booking flows funnel through Resolve so repeat bookings update the
// existing record instead of growing duplicates.
type IdentityService struct {
	DB *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{DB: db}
}

// GuestUpsert is the contact info a booking submits. RequirePassword is
// set on the public flow, where a new guest needs portal credentials.
type GuestUpsert struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Notes           string
	Password        string
	RequirePassword bool
}

// Resolve finds the guest by case-folded email or creates one. An
// existing guest's name is overwritten with the latest submission;
// phone and notes only when provided, so a flow that carries no phone
// cannot blank out a stored one. The password only changes when a new
// non-blank one arrives. Exactly one write either way.
func (s *IdentityService) Resolve(in GuestUpsert) (*models.Guest, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var guest models.Guest
	err := s.DB.Where("email = ?", email).First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if in.RequirePassword && strings.TrimSpace(in.Password) == "" {
			return nil, utils.NewValidationError("Password is required for guest account")
		}
		guest = models.Guest{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     email,
			Phone:     in.Phone,
			Password:  in.Password,
			Notes:     in.Notes,
		}
		if createErr := s.DB.Create(&guest).Error; createErr != nil {
			if isDuplicateKeyErr(createErr) {
				return nil, utils.NewValidationError("A guest with this email already exists")
			}
			return nil, fmt.Errorf("failed to create guest: %w", createErr)
		}
		return &guest, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up guest: %w", err)
	}

	guest.FirstName = in.FirstName
	guest.LastName = in.LastName
	if strings.TrimSpace(in.Phone) != "" {
		guest.Phone = in.Phone
	}
	if in.Notes != "" {
		guest.Notes = in.Notes
	}
	if strings.TrimSpace(in.Password) != "" {
		guest.Password = in.Password
	}
	if saveErr := s.DB.Save(&guest).Error; saveErr != nil {
		return nil, fmt.Errorf("failed to update guest: %w", saveErr)
	}
	return &guest, nil
}

// ByEmail returns the guest for an email, or nil when none exists.
func (s *IdentityService) ByEmail(email string) (*models.Guest, error) {
	var guest models.Guest
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up guest: %w", err)
	}
	return &guest, nil
}

// isDuplicateKeyErr recognizes unique-index violations: MySQL error
// 1062 in production, with a string fallback for the sqlite driver
// used in tests.
func isDuplicateKeyErr(err error) bool {
	var mysqlErr *mysqldrv.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate entry") || strings.Contains(lc, "unique constraint")
}
