// Package mailer sends transactional email through an HTTP mail API.
// Delivery is best-effort: the booking flow reports success to the client
// even when the confirmation email fails, so callers log errors instead
// of propagating them.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mobilia/internal/models"
)

// message is the JSON payload the mail API accepts.
type message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Service is an HTTP client for the transactional mail API.
type Service struct {
	baseURL string
	apiKey  string
	from    string
	client  *http.Client
}

// New creates a mail service. Returns nil if apiKey is empty, allowing
// the app to run without email configured; callers must nil-check.
func New(baseURL, apiKey, from string) *Service {
	if apiKey == "" {
		return nil
	}
	return &Service{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts a single message to the mail API.
func (s *Service) Send(ctx context.Context, to, subject, text string) error {
	payload, err := json.Marshal(message{
		From:    s.from,
		To:      to,
		Subject: subject,
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("mailer marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("mailer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailer send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mailer send: status %d: %s", resp.StatusCode, body)
	}
	return nil
}

// SendBookingConfirmation emails the client that their showroom visit
// was recorded.
func (s *Service) SendBookingConfirmation(ctx context.Context, a *models.Appointment) error {
	subject := fmt.Sprintf("Your showroom visit is booked — #%s", a.AppointmentID)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour showroom appointment #%s is confirmed for %s.\n"+
			"Preferred contact window: %s.\n\nWe'll be in touch if anything changes.\n\nMobilia",
		a.ClientName,
		a.AppointmentID,
		a.AppointmentDate.Format("Monday, January 2, 2006 at 3:04 PM"),
		models.ContactTimeLabel(a.PreferredTime),
	)
	return s.Send(ctx, a.ClientEmail, subject, text)
}
