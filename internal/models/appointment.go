// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// AppointmentStatus represents the lifecycle state of a booking.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ValidAppointmentStatus reports whether s is one of the known statuses.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// ContactTime is the client's preferred contact window.
type ContactTime string

const (
	ContactTimeMorning   ContactTime = "morning"
	ContactTimeAfternoon ContactTime = "afternoon"
	ContactTimeEvening   ContactTime = "evening"
)

// ValidContactTime reports whether c is one of the known windows.
func ValidContactTime(c ContactTime) bool {
	switch c {
	case ContactTimeMorning, ContactTimeAfternoon, ContactTimeEvening:
		return true
	}
	return false
}

// ContactTimeLabel returns the human-readable label for a contact window.
// Used by appointment search, which matches against what the back-office
// operator sees on screen.
func ContactTimeLabel(c ContactTime) string {
	switch c {
	case ContactTimeMorning:
		return "Morning (9AM - 12PM)"
	case ContactTimeAfternoon:
		return "Afternoon (12PM - 5PM)"
	case ContactTimeEvening:
		return "Evening (5PM - 8PM)"
	}
	return string(c)
}

// Appointment represents a showroom visit booked through the public site.
// AppointmentID is the display identifier shown to clients and operators;
// it is digits-only so lists can sort it numerically.
type Appointment struct {
	ID              int64             `json:"id"`
	AppointmentID   string            `json:"appointment_id"`
	ClientName      string            `json:"client_name"`
	ClientEmail     string            `json:"client_email"`
	Phone           string            `json:"phone"`
	AppointmentDate time.Time         `json:"appointment_date"`
	Status          AppointmentStatus `json:"status"`
	PreferredTime   ContactTime       `json:"preferred_contact_time"`
	Address         string            `json:"address"`
	Notes           *string           `json:"notes"`
	CreatedAt       time.Time         `json:"created_at"`
}
