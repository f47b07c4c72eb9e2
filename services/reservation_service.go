package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"luxury-stay-backend/models"
	"luxury-stay-backend/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ReservationService is the booking orchestrator plus the reservation
// lifecycle. It composes the availability check, guest identity
// resolution, token generation and the best-effort confirmation email.
type ReservationService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	Identity     *IdentityService
	Mailer       utils.Mailer
}

func NewReservationService(db *gorm.DB, availability *AvailabilityService, identity *IdentityService, mailer utils.Mailer) *ReservationService {
	return &ReservationService{DB: db, Availability: availability, Identity: identity, Mailer: mailer}
}

// PublicBookingInput is the unauthenticated booking payload. Password
// is required when the email has no guest record yet.
type PublicBookingInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	RoomID       uint
	CheckInDate  string
	CheckOutDate string
	NumGuests    int
	Notes        string
	Password     string
}

// AuthBookingInput is the authenticated booking payload; contact info
// comes from the caller's principal instead.
type AuthBookingInput struct {
	RoomID       uint
	CheckInDate  string
	CheckOutDate string
	NumGuests    int
	Notes        string
}

// CreatePublicBooking runs the anonymous booking flow: validate input,
// reject unbookable rooms, check date conflicts, upsert the guest
// (password required for new accounts), then create the reservation
// with its token. All checks run before the first write.
func (s *ReservationService) CreatePublicBooking(in PublicBookingInput) (*models.Reservation, error) {
	if in.RoomID == 0 {
		return nil, utils.NewValidationError("Room ID is required")
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" ||
		strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Phone) == "" {
		return nil, utils.NewValidationError("First name, last name, email, and phone are required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		return nil, utils.NewValidationError("Invalid email format")
	}

	checkIn, checkOut, err := parseStayDates(in.CheckInDate, in.CheckOutDate)
	if err != nil {
		return nil, err
	}

	room, err := s.bookableRoom(in.RoomID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoConflict(room.ID, checkIn, checkOut); err != nil {
		return nil, err
	}

	guest, err := s.Identity.Resolve(GuestUpsert{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		Phone:           in.Phone,
		Notes:           in.Notes,
		Password:        in.Password,
		RequirePassword: true,
	})
	if err != nil {
		return nil, err
	}

	return s.createReservation(guest, room, checkIn, checkOut, in.NumGuests, in.Notes)
}

// CreateAuthenticatedBooking books on behalf of a logged-in caller.
// The caller's contact identity seeds the guest upsert; no password is
// needed because the account already exists. Availability is judged by
// date overlap alone, same as the public flow.
func (s *ReservationService) CreateAuthenticatedBooking(p models.Principal, in AuthBookingInput) (*models.Reservation, error) {
	if p.Email == "" {
		return nil, utils.NewNotFoundError("User not found")
	}
	if in.RoomID == 0 {
		return nil, utils.NewValidationError("Room ID is required")
	}

	checkIn, checkOut, err := parseStayDates(in.CheckInDate, in.CheckOutDate)
	if err != nil {
		return nil, err
	}

	room, err := s.bookableRoom(in.RoomID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoConflict(room.ID, checkIn, checkOut); err != nil {
		return nil, err
	}

	firstName, lastName := splitName(p.DisplayName)
	guest, err := s.Identity.Resolve(GuestUpsert{
		FirstName: firstName,
		LastName:  lastName,
		Email:     p.Email,
		Notes:     in.Notes,
	})
	if err != nil {
		return nil, err
	}

	return s.createReservation(guest, room, checkIn, checkOut, in.NumGuests, in.Notes)
}

// createReservation persists the reservation, attaches the booking
// token and fires the confirmation email. Token rendering and email
// are both best-effort: neither failure unwinds the booking.
func (s *ReservationService) createReservation(guest *models.Guest, room *models.Room, checkIn, checkOut time.Time, numGuests int, notes string) (*models.Reservation, error) {
	if numGuests <= 0 {
		numGuests = 1
	}

	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	totalAmount := float64(nights) * room.PricePerNight

	reservation := models.Reservation{
		ReferenceCode: uuid.NewString(),
		GuestID:       guest.ID,
		RoomID:        room.ID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Status:        models.ReservationReserved,
		NumGuests:     numGuests,
		TotalAmount:   totalAmount,
		PaymentStatus: models.PaymentPending,
		Notes:         notes,
	}
	if err := s.DB.Create(&reservation).Error; err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	payload := utils.NewBookingTokenPayload(
		strconv.FormatUint(uint64(reservation.ID), 10),
		strconv.FormatUint(uint64(guest.ID), 10),
		room.RoomNumber,
		checkIn, checkOut,
	)
	data, image, tokenErr := utils.EncodeBookingToken(payload)
	if tokenErr != nil {
		log.Printf("QR code generation failed for reservation %d: %v", reservation.ID, tokenErr)
	}
	reservation.QRCodeData = data
	reservation.QRCode = image
	if err := s.DB.Model(&reservation).Updates(map[string]interface{}{
		"qr_code_data": data,
		"qr_code":      image,
	}).Error; err != nil {
		log.Printf("failed to persist booking token for reservation %d: %v", reservation.ID, err)
	}

	if mailErr := s.Mailer.SendBookingConfirmation(utils.BookingEmail{
		GuestName:     guest.FullName(),
		GuestEmail:    guest.Email,
		ReservationID: payload.ReservationID,
		ReferenceCode: reservation.ReferenceCode,
		RoomNumber:    room.RoomNumber,
		RoomType:      room.Type,
		CheckInDate:   payload.CheckInDate,
		CheckOutDate:  payload.CheckOutDate,
		NumGuests:     numGuests,
		TotalAmount:   totalAmount,
		QRCodeImage:   image,
	}); mailErr != nil {
		log.Printf("booking confirmation email failed (non-critical): %v", mailErr)
	}

	var populated models.Reservation
	if err := s.DB.Preload("Guest").Preload("Room").First(&populated, reservation.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload reservation: %w", err)
	}
	return &populated, nil
}

// CheckIn moves reserved -> checked_in once today has reached the
// check-in date, and marks the room occupied. The reservation and room
// writes are independent; a crash between them leaves the room stale.
func (s *ReservationService) CheckIn(id uint) (*models.Reservation, error) {
	reservation, err := s.byID(id)
	if err != nil {
		return nil, err
	}

	today := dateOnly(time.Now().UTC())
	checkInDate := dateOnly(reservation.CheckInDate)
	if today.Before(checkInDate) {
		return nil, utils.NewValidationError(fmt.Sprintf(
			"Cannot check in before %s", checkInDate.Format("2006-01-02")))
	}
	if reservation.Status == models.ReservationCheckedIn {
		return nil, utils.NewInvalidTransitionError("Guest is already checked in")
	}
	if reservation.Status == models.ReservationCancelled {
		return nil, utils.NewInvalidTransitionError("Cannot check in a cancelled reservation")
	}
	if reservation.Status == models.ReservationCheckedOut {
		return nil, utils.NewInvalidTransitionError("Reservation is already checked out")
	}

	if err := s.DB.Model(reservation).Update("status", models.ReservationCheckedIn).Error; err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	reservation.Status = models.ReservationCheckedIn
	s.setRoomStatus(reservation.RoomID, models.RoomOccupied)
	return reservation, nil
}

// CheckOut moves checked_in -> checked_out and sends the room to
// cleaning.
func (s *ReservationService) CheckOut(id uint) (*models.Reservation, error) {
	reservation, err := s.byID(id)
	if err != nil {
		return nil, err
	}
	if reservation.Status != models.ReservationCheckedIn {
		return nil, utils.NewInvalidTransitionError("Only checked-in reservations can be checked out")
	}

	if err := s.DB.Model(reservation).Update("status", models.ReservationCheckedOut).Error; err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	reservation.Status = models.ReservationCheckedOut
	s.setRoomStatus(reservation.RoomID, models.RoomCleaning)
	return reservation, nil
}

// Cancel moves reserved -> cancelled. Only the owning guest (matched by
// email) or a booking manager may cancel; anything past reserved is
// final.
func (s *ReservationService) Cancel(p models.Principal, id uint) (*models.Reservation, error) {
	reservation, err := s.byID(id)
	if err != nil {
		return nil, err
	}

	if !p.CanManageBookings() && !p.OwnsEmail(reservation.Guest.Email) {
		return nil, utils.NewAuthorizationError("Not authorized to cancel this booking")
	}
	if reservation.Status != models.ReservationReserved {
		return nil, utils.NewInvalidTransitionError("Only reserved bookings can be cancelled")
	}

	if err := s.DB.Model(reservation).Update("status", models.ReservationCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	reservation.Status = models.ReservationCancelled
	s.setRoomStatus(reservation.RoomID, models.RoomAvailable)
	return reservation, nil
}

// MyBookings lists the caller's reservations newest-first. A caller
// with no guest record simply has no bookings.
func (s *ReservationService) MyBookings(p models.Principal) ([]models.Reservation, error) {
	guest, err := s.Identity.ByEmail(p.Email)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return []models.Reservation{}, nil
	}

	var reservations []models.Reservation
	if err := s.DB.Preload("Guest").Preload("Room").
		Where("guest_id = ?", guest.ID).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return reservations, nil
}

// List returns every reservation with relations, newest-first. Staff
// dashboard view.
func (s *ReservationService) List() ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.DB.Preload("Guest").Preload("Room").
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return reservations, nil
}

// ScanToken resolves a scanned QR payload to its reservation. The
// token is a lookup convenience, not a proof: embedded room and guest
// fields are not re-validated against current state.
func (s *ReservationService) ScanToken(raw string) (*models.Reservation, error) {
	payload, err := utils.DecodeBookingToken(raw)
	if err != nil {
		return nil, err
	}

	id, convErr := strconv.ParseUint(payload.ReservationID, 10, 64)
	if convErr != nil {
		return nil, utils.NewMalformedTokenError("Invalid QR code format")
	}
	return s.byID(uint(id))
}

// TokenFor returns (and regenerates if needed) the booking token for a
// reservation the caller owns.
func (s *ReservationService) TokenFor(p models.Principal, id uint) (utils.BookingTokenPayload, string, *models.Reservation, error) {
	var empty utils.BookingTokenPayload

	reservation, err := s.byID(id)
	if err != nil {
		return empty, "", nil, err
	}
	if !p.OwnsEmail(reservation.Guest.Email) {
		return empty, "", nil, utils.NewAuthorizationError("Unauthorized: This reservation does not belong to you")
	}

	payload := utils.NewBookingTokenPayload(
		strconv.FormatUint(uint64(reservation.ID), 10),
		strconv.FormatUint(uint64(reservation.GuestID), 10),
		reservation.Room.RoomNumber,
		reservation.CheckInDate, reservation.CheckOutDate,
	)
	data, image, encErr := utils.EncodeBookingToken(payload)
	if encErr != nil {
		return empty, "", nil, fmt.Errorf("failed to generate QR code: %w", encErr)
	}

	if reservation.QRCode == "" || reservation.QRCodeData == "" {
		if err := s.DB.Model(reservation).Updates(map[string]interface{}{
			"qr_code":      image,
			"qr_code_data": data,
		}).Error; err != nil {
			log.Printf("failed to persist booking token for reservation %d: %v", reservation.ID, err)
		}
	}
	return payload, image, reservation, nil
}

// ---------------------------------------------------------------
// helpers
// ---------------------------------------------------------------

func (s *ReservationService) byID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.Preload("Guest").Preload("Room").First(&reservation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Reservation not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	return &reservation, nil
}

func (s *ReservationService) bookableRoom(id uint) (*models.Room, error) {
	var room models.Room
	err := s.DB.First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Room not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve room: %w", err)
	}
	if !room.Bookable() {
		return nil, utils.NewValidationError(fmt.Sprintf(
			"Room is %s. Please select an available room.", room.Status))
	}
	return &room, nil
}

func (s *ReservationService) ensureNoConflict(roomID uint, checkIn, checkOut time.Time) error {
	conflict, err := s.Availability.HasConflict(roomID, checkIn, checkOut)
	if err != nil {
		return err
	}
	if conflict {
		return utils.NewConflictError("Room is already booked for the selected dates. Please choose different dates.")
	}
	return nil
}

// setRoomStatus is the lifecycle side effect. Deliberately a separate
// write from the reservation update, with no transaction around the
// pair; failures are logged, not raised.
func (s *ReservationService) setRoomStatus(roomID uint, status string) {
	if err := s.DB.Model(&models.Room{}).Where("id = ?", roomID).
		Update("status", status).Error; err != nil {
		log.Printf("failed to update room %d status to %s: %v", roomID, status, err)
	}
}

// parseStayDates validates and normalizes the stay range: both dates
// must parse, check-in cannot be in the past, check-out must be after
// check-in. Times are truncated to date-only UTC.
func parseStayDates(checkInRaw, checkOutRaw string) (time.Time, time.Time, error) {
	if strings.TrimSpace(checkInRaw) == "" || strings.TrimSpace(checkOutRaw) == "" {
		return time.Time{}, time.Time{}, utils.NewValidationError("Check-in and check-out dates are required")
	}

	checkIn, err := parseDate(checkInRaw)
	if err != nil {
		return time.Time{}, time.Time{}, utils.NewValidationError("Invalid date format")
	}
	checkOut, err := parseDate(checkOutRaw)
	if err != nil {
		return time.Time{}, time.Time{}, utils.NewValidationError("Invalid date format")
	}

	today := dateOnly(time.Now().UTC())
	if checkIn.Before(today) {
		return time.Time{}, time.Time{}, utils.NewValidationError("Check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, utils.NewValidationError("Check-out date must be after check-in date")
	}
	return checkIn, checkOut, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return dateOnly(t), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return dateOnly(t), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func splitName(full string) (string, string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
