package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"luxury-stay-backend/models"
	"luxury-stay-backend/utils"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Guest{},
		&models.Room{},
		&models.Reservation{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// recorderMailer captures confirmation emails instead of sending them.
type recorderMailer struct {
	sent []utils.BookingEmail
	fail error
}

func (m *recorderMailer) SendBookingConfirmation(email utils.BookingEmail) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, email)
	return nil
}

func newTestReservationService(t *testing.T) (*ReservationService, *gorm.DB, *recorderMailer) {
	t.Helper()

	db := openTestDB(t)
	availability := NewAvailabilityService(db)
	identity := NewIdentityService(db)
	mailer := &recorderMailer{}
	return NewReservationService(db, availability, identity, mailer), db, mailer
}

func createRoom(t *testing.T, db *gorm.DB, number string, price float64, status string) *models.Room {
	t.Helper()

	room := &models.Room{
		RoomNumber:    number,
		Type:          models.RoomTypeStandard,
		Floor:         1,
		PricePerNight: price,
		Status:        status,
	}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("create room: %v", err)
	}
	return room
}

// futureDate returns a date-only string n days from today.
func futureDate(n int) string {
	return time.Now().UTC().AddDate(0, 0, n).Format("2006-01-02")
}
