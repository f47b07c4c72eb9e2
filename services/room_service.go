package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"luxury-stay-backend/models"
	"luxury-stay-backend/utils"
)

type RoomService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
}

func NewRoomService(db *gorm.DB, availability *AvailabilityService) *RoomService {
	return &RoomService{DB: db, Availability: availability}
}

// RoomFilter narrows the public listing. Maintenance and cleaning
// rooms are always excluded; when a date range is given the list is
// further filtered by reservation overlap.
type RoomFilter struct {
	Status       string
	Type         string
	CheckInDate  string
	CheckOutDate string
}

func (s *RoomService) Create(room *models.Room) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return utils.NewValidationError("Room number is required")
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}

	if err := s.DB.Create(room).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return utils.NewConflictError(fmt.Sprintf("Room number '%s' already exists", room.RoomNumber))
		}
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *RoomService) List(filter RoomFilter) ([]models.Room, error) {
	q := s.DB.Where("status NOT IN ?", []string{models.RoomMaintenance, models.RoomCleaning})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var rooms []models.Room
	if err := q.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}

	if filter.CheckInDate == "" || filter.CheckOutDate == "" {
		return rooms, nil
	}

	checkIn, checkOut, err := parseStayDates(filter.CheckInDate, filter.CheckOutDate)
	if err != nil {
		return nil, err
	}

	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		conflict, err := s.Availability.HasConflict(room.ID, checkIn, checkOut)
		if err != nil {
			return nil, err
		}
		if !conflict {
			available = append(available, room)
		}
	}
	return available, nil
}

func (s *RoomService) ByID(id uint) (*models.Room, error) {
	var room models.Room
	err := s.DB.First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Room not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve room: %w", err)
	}
	return &room, nil
}

func (s *RoomService) Update(id uint, updates *models.Room) (*models.Room, error) {
	room, err := s.ByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(room).Updates(updates).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, utils.NewConflictError(fmt.Sprintf("Room number '%s' already exists", updates.RoomNumber))
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	return room, nil
}

func (s *RoomService) Delete(id uint) error {
	if _, err := s.ByID(id); err != nil {
		return err
	}
	if err := s.DB.Delete(&models.Room{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}
