package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"luxury-stay-backend/models"
	"luxury-stay-backend/utils"
)

// AuthService authenticates against both account stores: staff first,
// then guests. The resolved identity is handed back as a Principal so
// nothing downstream has to care which store matched.
type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Authenticate checks email+password and returns the matching
// principal. Invalid credentials come back as an AuthorizationError
// without revealing which store (if any) held the email.
func (s *AuthService) Authenticate(email, password string) (models.Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if err == nil && user.IsActive {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil {
			return models.PrincipalFromUser(&user), nil
		}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Principal{}, fmt.Errorf("failed to look up user: %w", err)
	}

	var guest models.Guest
	err = s.DB.Where("email = ?", email).First(&guest).Error
	if err == nil && guest.Password != "" {
		if bcrypt.CompareHashAndPassword([]byte(guest.Password), []byte(password)) == nil {
			return models.PrincipalFromGuest(&guest), nil
		}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Principal{}, fmt.Errorf("failed to look up guest: %w", err)
	}

	return models.Principal{}, utils.NewAuthorizationError("Invalid credentials")
}

// StartPasswordReset stores a reset token with a one-hour expiry on the
// matching account. It reports nothing about whether the email exists;
// the endpoint answers uniformly either way.
func (s *AuthService) StartPasswordReset(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return utils.NewValidationError("Email is required")
	}

	token, err := utils.GenerateSecureToken(24)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiry := time.Now().UTC().Add(time.Hour)

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err == nil {
		return s.DB.Model(&user).Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		}).Error
	}

	var guest models.Guest
	if err := s.DB.Where("email = ?", email).First(&guest).Error; err == nil {
		return s.DB.Model(&guest).Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		}).Error
	}

	// Unknown email: do nothing, reveal nothing.
	return nil
}
