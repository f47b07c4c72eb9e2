package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"luxury-stay-backend/middleware"
	"luxury-stay-backend/services"
	"luxury-stay-backend/utils"
)

// ---------------------------
// Payloads
// ---------------------------

type PublicReservationPayload struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Room         uint   `json:"room"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	NumGuests    int    `json:"numGuests"`
	Notes        string `json:"notes"`
	Password     string `json:"password"`
}

type ReservationPayload struct {
	Room         uint   `json:"room"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	NumGuests    int    `json:"numGuests"`
	Notes        string `json:"notes"`
}

type ScanPayload struct {
	QRData string `json:"qrData" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: svc}
}

// CreatePublic handles POST /api/reservations/public — the
// unauthenticated booking flow.
func (rc *ReservationController) CreatePublic(c *gin.Context) {
	var payload PublicReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload"})
		return
	}

	reservation, err := rc.Reservations.CreatePublicBooking(services.PublicBookingInput{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		RoomID:       payload.Room,
		CheckInDate:  payload.CheckInDate,
		CheckOutDate: payload.CheckOutDate,
		NumGuests:    payload.NumGuests,
		Notes:        payload.Notes,
		Password:     payload.Password,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	message := "Booking confirmed!"
	if reservation.QRCode != "" {
		message = "Booking confirmed! Check your email for QR code."
	}
	c.JSON(http.StatusCreated, gin.H{
		"reservation": reservation,
		"qrCode":      reservation.QRCode,
		"message":     message,
	})
}

// Create handles POST /api/reservations for authenticated callers.
func (rc *ReservationController) Create(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}

	var payload ReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload"})
		return
	}

	reservation, err := rc.Reservations.CreateAuthenticatedBooking(principal, services.AuthBookingInput{
		RoomID:       payload.Room,
		CheckInDate:  payload.CheckInDate,
		CheckOutDate: payload.CheckOutDate,
		NumGuests:    payload.NumGuests,
		Notes:        payload.Notes,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// List handles GET /api/reservations (staff).
func (rc *ReservationController) List(c *gin.Context) {
	reservations, err := rc.Reservations.List()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// MyBookings handles GET /api/reservations/my-bookings.
func (rc *ReservationController) MyBookings(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}

	reservations, err := rc.Reservations.MyBookings(principal)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// Cancel handles PUT /api/reservations/:id/cancel.
func (rc *ReservationController) Cancel(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}

	id, ok := reservationID(c)
	if !ok {
		return
	}

	reservation, err := rc.Reservations.Cancel(principal, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Booking cancelled successfully",
		"reservation": reservation,
	})
}

// CheckIn handles POST /api/reservations/:id/check-in (staff).
func (rc *ReservationController) CheckIn(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	reservation, err := rc.Reservations.CheckIn(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// CheckOut handles POST /api/reservations/:id/check-out (staff).
func (rc *ReservationController) CheckOut(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	reservation, err := rc.Reservations.CheckOut(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// ScanQR handles POST /api/reservations/scan-qr. The payload is the
// serialized booking token, typically read off a printed or emailed QR
// code at reception.
func (rc *ReservationController) ScanQR(c *gin.Context) {
	var payload ScanPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "QR code data is required"})
		return
	}

	reservation, err := rc.Reservations.ScanToken(payload.QRData)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reservation": reservation,
		"isValid":     true,
		"message":     "QR code verified successfully",
	})
}

// QRCode handles GET /api/reservations/:id/qr-code — owner-only
// download of the booking token.
func (rc *ReservationController) QRCode(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}

	id, ok := reservationID(c)
	if !ok {
		return
	}

	payload, image, reservation, err := rc.Reservations.TokenFor(principal, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	data, _ := json.Marshal(payload)
	c.JSON(http.StatusOK, gin.H{
		"qrCode":        image,
		"qrCodeData":    string(data),
		"reservationId": payload.ReservationID,
		"roomNumber":    payload.RoomNumber,
		"checkInDate":   payload.CheckInDate,
		"checkOutDate":  payload.CheckOutDate,
		"status":        reservation.Status,
	})
}

func reservationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, utils.NewValidationError("Invalid reservation id"))
		return 0, false
	}
	return uint(id), true
}
