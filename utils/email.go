package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"sync"
)

// BookingEmail is everything the confirmation template needs.
type BookingEmail struct {
	GuestName     string
	GuestEmail    string
	ReservationID string
	ReferenceCode string
	RoomNumber    string
	RoomType      string
	CheckInDate   string
	CheckOutDate  string
	NumGuests     int
	TotalAmount   float64
	QRCodeImage   string // PNG data URL, may be empty
}

// Mailer is the notification port the booking flow talks to. The send
// is best-effort: callers log failures and move on.
type Mailer interface {
	SendBookingConfirmation(email BookingEmail) error
}

// SMTPMailer reads its config from the environment on first use and
// falls back to logging the message when SMTP is not configured, so
// local setups work without credentials.
type SMTPMailer struct {
	once sync.Once

	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer() *SMTPMailer { return &SMTPMailer{} }

func (m *SMTPMailer) load() {
	m.host = EnvOrDefault("SMTP_HOST", "smtp.gmail.com")
	m.port = EnvOrDefault("SMTP_PORT", "587")
	m.user = os.Getenv("SMTP_USER")
	m.pass = os.Getenv("SMTP_PASS")
	m.from = EnvOrDefault("SMTP_FROM_NAME", "Luxury Stay")
}

func (m *SMTPMailer) configured() bool {
	return m.user != "" && m.pass != ""
}

func (m *SMTPMailer) SendBookingConfirmation(email BookingEmail) error {
	m.once.Do(m.load)

	if !m.configured() {
		log.Printf("[MOCK EMAIL] booking confirmation to:%s reservation:%s room:%s %s -> %s total:%.2f",
			email.GuestEmail, email.ReservationID, email.RoomNumber,
			email.CheckInDate, email.CheckOutDate, email.TotalAmount)
		return nil
	}

	subject := "Booking Confirmed - Luxury Stay"
	plain := bookingPlainBody(email)
	html := bookingHTMLBody(email)

	boundary := "----=_LUXURY_STAY_BOUNDARY"
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.from, m.user))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", email.GuestEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))
	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plain + "\r\n")
	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(html + "\r\n")
	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := smtp.SendMail(addr, auth, m.user, []string{email.GuestEmail}, []byte(sb.String())); err != nil {
		log.Printf("failed to send booking confirmation to %s: %v", email.GuestEmail, err)
		return err
	}

	log.Printf("booking confirmation sent to %s (reservation %s)", email.GuestEmail, email.ReservationID)
	return nil
}

func bookingPlainBody(e BookingEmail) string {
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for choosing Luxury Stay! Your booking has been confirmed.\n\n"+
			"Reservation ID: %s\n"+
			"Reference: %s\n"+
			"Room: %s - %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n"+
			"Guests: %d\n"+
			"Total Amount: $%.2f\n\n"+
			"Please present your QR code at reception for check-in.\n\n"+
			"Luxury Stay Hotel Management System",
		e.GuestName, e.ReservationID, e.ReferenceCode, e.RoomNumber, e.RoomType,
		e.CheckInDate, e.CheckOutDate, e.NumGuests, e.TotalAmount,
	)
}

func bookingHTMLBody(e BookingEmail) string {
	qrBlock := "<p><em>Your QR code will be available from the guest portal.</em></p>"
	if e.QRCodeImage != "" {
		qrBlock = fmt.Sprintf(`<img src="%s" alt="QR Code" style="max-width:300px;" />`, e.QRCodeImage)
	}

	return fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Arial, sans-serif; color:#333; line-height:1.6; }
.container { max-width:600px; margin:0 auto; padding:20px; }
.header { background:#564ade; color:#fff; padding:30px; text-align:center; border-radius:10px 10px 0 0; }
.content { background:#f9fafb; padding:30px; border-radius:0 0 10px 10px; }
.info-box { background:#fff; padding:20px; border-radius:8px; margin:15px 0; border-left:4px solid #564ade; }
.qr { text-align:center; margin:20px 0; }
.footer { text-align:center; margin-top:30px; color:#666; font-size:12px; }
</style>
</head>
<body>
<div class="container">
  <div class="header"><h1>Booking Confirmed!</h1></div>
  <div class="content">
    <p>Dear %s,</p>
    <p>Thank you for choosing Luxury Stay! Your booking has been confirmed.</p>
    <div class="info-box">
      <p><b>Reservation ID:</b> %s</p>
      <p><b>Reference:</b> %s</p>
      <p><b>Room:</b> %s - %s</p>
      <p><b>Check-in:</b> %s</p>
      <p><b>Check-out:</b> %s</p>
      <p><b>Guests:</b> %d</p>
      <p><b>Total Amount:</b> $%.2f</p>
    </div>
    <div class="qr">
      <h3>Your Check-in QR Code</h3>
      %s
    </div>
    <div class="footer">
      <p>Luxury Stay Hotel Management System</p>
    </div>
  </div>
</div>
</body>
</html>`,
		htmlEscape(e.GuestName), e.ReservationID, e.ReferenceCode,
		htmlEscape(e.RoomNumber), htmlEscape(e.RoomType),
		e.CheckInDate, e.CheckOutDate, e.NumGuests, e.TotalAmount, qrBlock,
	)
}

// minimal html escaper for the small strings we interpolate
func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}
