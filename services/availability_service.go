package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"luxury-stay-backend/models"
)

// AvailabilityService answers the one question the booking flow keeps
// asking: does any active reservation on this room intersect the
// requested date range?
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// HasConflict uses the inclusive-inclusive overlap rule on stored
// boundaries: existing.checkIn <= newCheckOut AND existing.checkOut >=
// newCheckIn. Back-to-back stays sharing a boundary day count as
// conflicting; same-day turnover is deliberately not supported.
// Pure query, no mutation.
func (s *AvailabilityService) HasConflict(roomID uint, checkIn, checkOut time.Time) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ?", roomID,
			[]string{models.ReservationReserved, models.ReservationCheckedIn}).
		Where("check_in_date <= ? AND check_out_date >= ?", checkOut, checkIn).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check room availability: %w", err)
	}
	return count > 0, nil
}
