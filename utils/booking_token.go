package utils

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// BookingTokenPayload is the wire contract of the scannable booking
// token. Field names and the date-only format must round-trip exactly:
// existing QR codes in guests' inboxes embed this shape.
type BookingTokenPayload struct {
	ReservationID string `json:"reservationId"`
	GuestID       string `json:"guestId"`
	RoomNumber    string `json:"roomNumber"`
	CheckInDate   string `json:"checkInDate"`
	CheckOutDate  string `json:"checkOutDate"`
}

const tokenDateLayout = "2006-01-02"

// NewBookingTokenPayload builds the canonical payload for a reservation.
func NewBookingTokenPayload(reservationID, guestID, roomNumber string, checkIn, checkOut time.Time) BookingTokenPayload {
	return BookingTokenPayload{
		ReservationID: reservationID,
		GuestID:       guestID,
		RoomNumber:    roomNumber,
		CheckInDate:   checkIn.Format(tokenDateLayout),
		CheckOutDate:  checkOut.Format(tokenDateLayout),
	}
}

// EncodeBookingToken serializes the payload and renders it as a QR PNG
// data URL. A render failure returns the serialized payload with an
// empty image: the booking still goes through, the guest just gets no
// picture.
func EncodeBookingToken(p BookingTokenPayload) (data string, image string, err error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", "", err
	}
	data = string(raw)

	png, err := qrcode.Encode(data, qrcode.Medium, 250)
	if err != nil {
		return data, "", err
	}
	image = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	return data, image, nil
}

// DecodeBookingToken parses a scanned payload. Anything that isn't the
// expected JSON shape with a reservation id comes back as a
// MalformedTokenError, never a raw parse error.
func DecodeBookingToken(raw string) (BookingTokenPayload, error) {
	var p BookingTokenPayload

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return p, NewMalformedTokenError("QR code data is required")
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return BookingTokenPayload{}, NewMalformedTokenError("Invalid QR code format")
	}
	if strings.TrimSpace(p.ReservationID) == "" {
		return BookingTokenPayload{}, NewMalformedTokenError("Invalid QR code format")
	}
	return p, nil
}
