package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room status values. Maintenance and cleaning are housekeeping states
// that make a room unbookable; occupied/available track the lifecycle
// side effects of check-in/check-out.
const (
	RoomAvailable   = "available"
	RoomReserved    = "reserved"
	RoomOccupied    = "occupied"
	RoomCleaning    = "cleaning"
	RoomMaintenance = "maintenance"
)

const (
	RoomTypeStandard     = "standard"
	RoomTypeDeluxe       = "deluxe"
	RoomTypeSuite        = "suite"
	RoomTypePresidential = "presidential"
)

type Room struct {
	gorm.Model

	RoomNumber    string  `json:"roomNumber" gorm:"column:room_number;uniqueIndex;size:50"`
	Type          string  `json:"type" gorm:"size:32"`
	Floor         int     `json:"floor"`
	PricePerNight float64 `json:"pricePerNight" gorm:"column:price_per_night"`
	Status        string  `json:"status" gorm:"size:32;default:available"`
	Description   string  `json:"description" gorm:"type:text"`

	Amenities datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`
}

// Bookable reports whether the room can take new reservations at all.
// Date conflicts are a separate, per-range concern.
func (r *Room) Bookable() bool {
	return r.Status != RoomMaintenance && r.Status != RoomCleaning
}
