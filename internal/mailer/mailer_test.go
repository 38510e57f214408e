package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mobilia/internal/models"
)

func TestNewWithoutKeyReturnsNil(t *testing.T) {
	if svc := New("https://mail.example.com", "", "noreply@mobilia.local"); svc != nil {
		t.Error("expected nil service without an API key")
	}
}

func TestSendBookingConfirmation(t *testing.T) {
	var got message
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("path: got %q, want /messages", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	svc := New(srv.URL, "test-key", "noreply@mobilia.local")
	a := &models.Appointment{
		AppointmentID:   "100234",
		ClientName:      "Ana Popescu",
		ClientEmail:     "ana@example.com",
		AppointmentDate: time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC),
		PreferredTime:   models.ContactTimeMorning,
	}

	if err := svc.SendBookingConfirmation(context.Background(), a); err != nil {
		t.Fatalf("SendBookingConfirmation: %v", err)
	}

	if auth != "Bearer test-key" {
		t.Errorf("authorization: got %q", auth)
	}
	if got.To != "ana@example.com" {
		t.Errorf("to: got %q", got.To)
	}
	if got.From != "noreply@mobilia.local" {
		t.Errorf("from: got %q", got.From)
	}
	if got.Subject == "" || got.Text == "" {
		t.Error("expected subject and text to be filled")
	}
}

func TestSendSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	svc := New(srv.URL, "test-key", "noreply@mobilia.local")
	if err := svc.Send(context.Background(), "to@example.com", "s", "t"); err == nil {
		t.Error("expected error for non-2xx response")
	}
}
