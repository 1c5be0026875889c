package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"exechire/internal/pkg/config"
	"exechire/internal/pkg/errs"
)

const (
	resendEndpoint = "https://api.resend.com/emails"
	sendTimeout    = 10 * time.Second
)

type BookingConfirmation struct {
	CustomerName  string
	CustomerEmail string
	VehicleName   string
	StartDate     time.Time
	EndDate       time.Time
	TotalAmount   string
	BookingID     string
}

type Mailer interface {
	SendBookingConfirmation(ctx context.Context, m BookingConfirmation) error
}

// ResendMailer sends transactional mail through the Resend HTTP API.
// Callers treat delivery as best-effort; a failed send is logged upstream and
// never fails the booking.
type ResendMailer struct {
	apiKey string
	from   string
	client *http.Client
}

func NewResendMailer(cfg config.MailConfig) Mailer {
	if !cfg.Enabled || cfg.APIKey == "" {
		return &noopMailer{}
	}
	return &ResendMailer{
		apiKey: cfg.APIKey,
		from:   cfg.FromAddress,
		client: &http.Client{Timeout: sendTimeout},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) SendBookingConfirmation(ctx context.Context, bc BookingConfirmation) error {
	payload := resendRequest{
		From:    m.from,
		To:      []string{bc.CustomerEmail},
		Subject: "Booking Confirmation - ExecHire",
		HTML:    renderBookingConfirmation(bc),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to marshal mail payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build mail request")
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "failed to send mail request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errs.New(fmt.Sprintf("mail provider returned status %d", resp.StatusCode))
	}

	return nil
}

func renderBookingConfirmation(bc BookingConfirmation) string {
	const layout = "Monday, 2 January 2006 15:04"
	return fmt.Sprintf(
		`<h1>Booking Confirmation</h1>
<p>Dear %s,</p>
<p>Thank you for booking with ExecHire. Your booking details:</p>
<ul>
  <li>Vehicle: %s</li>
  <li>Pickup: %s</li>
  <li>Return: %s</li>
  <li>Total: %s</li>
  <li>Booking reference: %s</li>
</ul>
<p>Our team will be in touch to confirm payment and arrange delivery.</p>`,
		bc.CustomerName, bc.VehicleName,
		bc.StartDate.Format(layout), bc.EndDate.Format(layout),
		bc.TotalAmount, bc.BookingID,
	)
}

// noopMailer keeps local and test environments quiet.
type noopMailer struct{}

func (*noopMailer) SendBookingConfirmation(_ context.Context, bc BookingConfirmation) error {
	slog.Debug("mail disabled, skipping booking confirmation", "booking_id", bc.BookingID)
	return nil
}
