package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"luxury-stay-backend/models"
	"luxury-stay-backend/utils"
)

func TestAuthenticate_StaffAndGuestStores(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("staffpw1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	staff := models.User{Name: "Alex Admin", Email: "alex@hotel.test", Password: string(hash), Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&staff).Error)

	guest := models.Guest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Password: "guestpw1"}
	require.NoError(t, db.Create(&guest).Error)

	p, err := svc.Authenticate("alex@hotel.test", "staffpw1")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, p.Role)
	require.True(t, p.IsStaff())

	p, err = svc.Authenticate("Jane@Example.com", "guestpw1")
	require.NoError(t, err)
	require.Equal(t, models.RoleGuest, p.Role)
	require.Equal(t, "jane@example.com", p.Email)
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db)

	guest := models.Guest{FirstName: "Jane", Email: "jane@example.com", Password: "guestpw1"}
	require.NoError(t, db.Create(&guest).Error)

	var authz *utils.AuthorizationError

	_, err := svc.Authenticate("jane@example.com", "wrongpw")
	require.ErrorAs(t, err, &authz)

	_, err = svc.Authenticate("nobody@example.com", "whatever")
	require.ErrorAs(t, err, &authz)
}

func TestAuthenticate_PasswordlessGuestCannotLogIn(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db)

	guest := models.Guest{FirstName: "Walkin", Email: "walkin@example.com"}
	require.NoError(t, db.Create(&guest).Error)

	_, err := svc.Authenticate("walkin@example.com", "")
	var authz *utils.AuthorizationError
	require.ErrorAs(t, err, &authz)
}

func TestStartPasswordReset(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db)

	guest := models.Guest{FirstName: "Jane", Email: "jane@example.com", Password: "guestpw1"}
	require.NoError(t, db.Create(&guest).Error)

	require.NoError(t, svc.StartPasswordReset("Jane@Example.com"))

	var stored models.Guest
	require.NoError(t, db.First(&stored, guest.ID).Error)
	require.NotNil(t, stored.ResetToken)
	require.NotEmpty(t, *stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpiry)

	// Unknown email: no error, nothing to probe.
	require.NoError(t, svc.StartPasswordReset("nobody@example.com"))
}
