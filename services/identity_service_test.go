package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"luxury-stay-backend/models"
	"luxury-stay-backend/utils"
)

func TestResolve_CreatesNewGuest(t *testing.T) {
	db := openTestDB(t)
	svc := NewIdentityService(db)

	guest, err := svc.Resolve(GuestUpsert{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "Ada@Example.COM",
		Phone:           "555-0101",
		Password:        "secretpw",
		RequirePassword: true,
	})
	require.NoError(t, err)
	require.NotZero(t, guest.ID)
	require.Equal(t, "ada@example.com", guest.Email)

	// Password must be stored hashed, and verifiable.
	require.True(t, models.IsBcryptHash(guest.Password))
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(guest.Password), []byte("secretpw")))
}

func TestResolve_RequiresPasswordForNewPublicGuest(t *testing.T) {
	db := openTestDB(t)
	svc := NewIdentityService(db)

	_, err := svc.Resolve(GuestUpsert{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Phone:           "555-0101",
		RequirePassword: true,
	})
	require.Error(t, err)
	var validation *utils.ValidationError
	require.ErrorAs(t, err, &validation)

	var count int64
	db.Model(&models.Guest{}).Count(&count)
	require.Zero(t, count, "no guest row should be written")
}

func TestResolve_TrustedCallerNeedsNoPassword(t *testing.T) {
	db := openTestDB(t)
	svc := NewIdentityService(db)

	guest, err := svc.Resolve(GuestUpsert{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
	})
	require.NoError(t, err)
	require.NotZero(t, guest.ID)
	require.Empty(t, guest.Password)
}

func TestResolve_UpdatesExistingGuestInPlace(t *testing.T) {
	db := openTestDB(t)
	svc := NewIdentityService(db)

	first, err := svc.Resolve(GuestUpsert{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Phone: "555-0101",
		Password: "secretpw", RequirePassword: true,
	})
	require.NoError(t, err)
	originalHash := first.Password

	second, err := svc.Resolve(GuestUpsert{
		FirstName: "Adaline", LastName: "King",
		Email: "ADA@example.com", Phone: "555-0202",
		Notes: "prefers quiet floor",
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Adaline", second.FirstName)
	require.Equal(t, "King", second.LastName)
	require.Equal(t, "555-0202", second.Phone)
	require.Equal(t, "prefers quiet floor", second.Notes)

	var count int64
	db.Model(&models.Guest{}).Count(&count)
	require.EqualValues(t, 1, count)

	// No new password supplied: hash untouched, not re-hashed.
	var stored models.Guest
	require.NoError(t, db.First(&stored, first.ID).Error)
	require.Equal(t, originalHash, stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secretpw")))
}

func TestResolve_BlankPhoneKeepsStoredNumber(t *testing.T) {
	db := openTestDB(t)
	svc := NewIdentityService(db)

	_, err := svc.Resolve(GuestUpsert{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Phone: "555-0101",
		Password: "secretpw", RequirePassword: true,
	})
	require.NoError(t, err)

	// A caller without contact details (the authenticated flow carries
	// no phone) must not blank out what is already on record.
	updated, err := svc.Resolve(GuestUpsert{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "555-0101", updated.Phone)

	var stored models.Guest
	require.NoError(t, db.First(&stored, updated.ID).Error)
	require.Equal(t, "555-0101", stored.Phone)
}

func TestResolve_NewPasswordReplacesOld(t *testing.T) {
	db := openTestDB(t)
	svc := NewIdentityService(db)

	_, err := svc.Resolve(GuestUpsert{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Phone: "555-0101",
		Password: "firstpw", RequirePassword: true,
	})
	require.NoError(t, err)

	updated, err := svc.Resolve(GuestUpsert{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Phone: "555-0101",
		Password: "secondpw",
	})
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("secondpw")))
	require.Error(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("firstpw")))
}

func TestByEmail_MissingGuestIsNil(t *testing.T) {
	db := openTestDB(t)
	svc := NewIdentityService(db)

	guest, err := svc.ByEmail("nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, guest)
}
