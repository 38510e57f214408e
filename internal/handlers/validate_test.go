package handlers

import (
	"strings"
	"testing"

	"mobilia/internal/models"
)

func TestValidateBooking(t *testing.T) {
	valid := bookingInput{
		ClientName:    "Ana Popescu",
		ClientEmail:   "ana@example.com",
		Phone:         "+40 721 000 000",
		Date:          "2026-03-14T15:00",
		PreferredTime: "morning",
		Address:       "Str. Florilor 12",
	}

	tests := []struct {
		name     string
		mutate   func(in *bookingInput)
		wantErrs int
	}{
		{"valid", func(in *bookingInput) {}, 0},
		{"missing name", func(in *bookingInput) { in.ClientName = "" }, 1},
		{"whitespace name", func(in *bookingInput) { in.ClientName = "   " }, 1},
		{"name too long", func(in *bookingInput) { in.ClientName = strings.Repeat("a", 201) }, 1},
		{"missing email", func(in *bookingInput) { in.ClientEmail = "" }, 1},
		{"bad email", func(in *bookingInput) { in.ClientEmail = "not-an-email" }, 1},
		{"missing phone", func(in *bookingInput) { in.Phone = "" }, 1},
		{"missing date", func(in *bookingInput) { in.Date = "" }, 1},
		{"bad date", func(in *bookingInput) { in.Date = "tomorrow" }, 1},
		{"rfc3339 date ok", func(in *bookingInput) { in.Date = "2026-03-14T15:00:00Z" }, 0},
		{"bad contact time", func(in *bookingInput) { in.PreferredTime = "midnight" }, 1},
		{"address too long", func(in *bookingInput) { in.Address = strings.Repeat("a", 501) }, 1},
		{"everything missing", func(in *bookingInput) { *in = bookingInput{} }, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			details, date := validateBooking(&in)
			if len(details) != tt.wantErrs {
				t.Errorf("got %d problems %v, want %d", len(details), details, tt.wantErrs)
			}
			if tt.wantErrs == 0 && date.IsZero() {
				t.Error("valid input should produce a parsed date")
			}
		})
	}
}

func TestValidateBookingNotesTooLong(t *testing.T) {
	notes := strings.Repeat("a", 2001)
	in := bookingInput{
		ClientName:    "Ana",
		ClientEmail:   "ana@example.com",
		Phone:         "0721",
		Date:          "2026-03-14T15:00",
		PreferredTime: "evening",
		Notes:         &notes,
	}
	details, _ := validateBooking(&in)
	if len(details) != 1 {
		t.Errorf("got %d problems %v, want 1", len(details), details)
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
	}{
		{"valid", "Living Room", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", 201), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateCategory(tt.input)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateProduct(t *testing.T) {
	longDesc := strings.Repeat("a", 10_001)
	tests := []struct {
		name        string
		productName string
		status      models.ProductStatus
		description *string
		wantError   bool
	}{
		{"valid", "Oak Table", models.ProductStatusPublished, nil, false},
		{"empty name", "", models.ProductStatusDraft, nil, true},
		{"name too long", strings.Repeat("a", 201), models.ProductStatusDraft, nil, true},
		{"unknown status", "Oak Table", "archived", nil, true},
		{"description too long", "Oak Table", models.ProductStatusDraft, &longDesc, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateProduct(tt.productName, tt.status, tt.description)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}
