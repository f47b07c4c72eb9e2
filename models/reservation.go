package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation lifecycle. checked_out and cancelled are terminal.
const (
	ReservationReserved   = "reserved"
	ReservationCheckedIn  = "checked_in"
	ReservationCheckedOut = "checked_out"
	ReservationCancelled  = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"referenceCode"`

	GuestID uint `gorm:"index;column:guest_id" json:"guestId"`
	RoomID  uint `gorm:"index;column:room_id" json:"roomId"`

	CheckInDate  time.Time `gorm:"column:check_in_date" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"checkOutDate"`

	Status        string  `gorm:"size:32;default:reserved" json:"status"`
	NumGuests     int     `gorm:"column:num_guests;default:1" json:"numGuests"`
	TotalAmount   float64 `gorm:"column:total_amount" json:"totalAmount"`
	PaymentStatus string  `gorm:"column:payment_status;size:32;default:pending" json:"paymentStatus"`

	// QRCode is the rendered image (PNG data URL); QRCodeData is the
	// serialized payload it encodes. The payload is authoritative, the
	// image is recomputable.
	QRCode     string `gorm:"type:text" json:"qrCode,omitempty"`
	QRCodeData string `gorm:"type:text" json:"qrCodeData,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	Guest Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Room  Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Active reservations are the ones that block a room's dates.
func (r *Reservation) Active() bool {
	return r.Status == ReservationReserved || r.Status == ReservationCheckedIn
}
