// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"mobilia/internal/models"
)

// Validation limits for catalog and booking fields.
const (
	maxNameLen        = 200
	maxSlugLen        = 200
	maxDescriptionLen = 10_000
	maxPhoneLen       = 40
	maxAddressLen     = 500
	maxNotesLen       = 2_000
)

// bookingDateLayouts are the accepted appointment date formats: RFC 3339
// from API clients, and the datetime-local format browsers submit.
var bookingDateLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

// bookingInput is the public booking request body.
type bookingInput struct {
	ClientName    string  `json:"client_name"`
	ClientEmail   string  `json:"client_email"`
	Phone         string  `json:"phone"`
	Date          string  `json:"appointment_date"`
	PreferredTime string  `json:"preferred_contact_time"`
	Address       string  `json:"address"`
	Notes         *string `json:"notes"`
}

// validateBooking checks a booking request and returns all problems found,
// plus the parsed appointment date when the field is valid.
func validateBooking(in *bookingInput) ([]string, time.Time) {
	var details []string
	var date time.Time

	if strings.TrimSpace(in.ClientName) == "" {
		details = append(details, "client_name is required")
	} else if utf8.RuneCountInString(in.ClientName) > maxNameLen {
		details = append(details, "client_name is too long (max 200 characters)")
	}

	if strings.TrimSpace(in.ClientEmail) == "" {
		details = append(details, "client_email is required")
	} else if _, err := mail.ParseAddress(in.ClientEmail); err != nil {
		details = append(details, "client_email is not a valid email address")
	}

	if strings.TrimSpace(in.Phone) == "" {
		details = append(details, "phone is required")
	} else if utf8.RuneCountInString(in.Phone) > maxPhoneLen {
		details = append(details, "phone is too long (max 40 characters)")
	}

	if strings.TrimSpace(in.Date) == "" {
		details = append(details, "appointment_date is required")
	} else {
		parsed, ok := parseBookingDate(in.Date)
		if !ok {
			details = append(details, "appointment_date is not a valid date")
		} else {
			date = parsed
		}
	}

	if !models.ValidContactTime(models.ContactTime(in.PreferredTime)) {
		details = append(details, "preferred_contact_time must be morning, afternoon, or evening")
	}

	if utf8.RuneCountInString(in.Address) > maxAddressLen {
		details = append(details, "address is too long (max 500 characters)")
	}
	if in.Notes != nil && utf8.RuneCountInString(*in.Notes) > maxNotesLen {
		details = append(details, "notes are too long (max 2,000 characters)")
	}

	return details, date
}

// parseBookingDate tries each accepted layout in turn.
func parseBookingDate(raw string) (time.Time, bool) {
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// validateCategory checks category form inputs and returns the first
// error found.
func validateCategory(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	return ""
}

// validateProduct checks product form inputs and returns the first
// error found.
func validateProduct(name string, status models.ProductStatus, description *string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if !models.ValidProductStatus(status) {
		return "Status must be draft, published, out_of_stock, or review."
	}
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLen {
		return "Description is too long (max 10,000 characters)."
	}
	return ""
}
