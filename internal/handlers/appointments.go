// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"mobilia/internal/models"
)

// BookAppointment handles the public booking form. It validates the
// request, records the appointment as pending, and sends best-effort
// confirmation emails: mail failures are logged but never fail the
// booking.
func (p *Public) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var in bookingInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	details, date := validateBooking(&in)
	if len(details) > 0 {
		writeErrorDetails(w, http.StatusBadRequest, "Validation failed", details)
		return
	}

	appt := &models.Appointment{
		AppointmentID:   newAppointmentID(),
		ClientName:      in.ClientName,
		ClientEmail:     in.ClientEmail,
		Phone:           in.Phone,
		AppointmentDate: date,
		Status:          models.AppointmentStatusPending,
		PreferredTime:   models.ContactTime(in.PreferredTime),
		Address:         in.Address,
		Notes:           in.Notes,
	}

	saved, err := p.appointments.Create(appt)
	if err != nil {
		slog.Error("appointment create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to book appointment")
		return
	}

	slog.Info("appointment booked",
		"appointment_id", saved.AppointmentID,
		"date", saved.AppointmentDate,
	)

	if p.mail != nil {
		// Detached context: the emails should finish even if the client
		// disconnects right after booking.
		go p.sendBookingEmails(context.WithoutCancel(r.Context()), saved)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    saved,
	})
}

// sendBookingEmails notifies the client and, if configured, the showroom
// inbox about a new booking.
func (p *Public) sendBookingEmails(ctx context.Context, a *models.Appointment) {
	if err := p.mail.SendBookingConfirmation(ctx, a); err != nil {
		slog.Error("booking confirmation email failed",
			"appointment_id", a.AppointmentID, "error", err)
	}

	if p.notifyEmail == "" {
		return
	}
	subject := "New showroom booking #" + a.AppointmentID
	text := "New appointment from " + a.ClientName + " (" + a.ClientEmail + ") on " +
		a.AppointmentDate.Format("Jan 2, 2006 3:04 PM") + "."
	if err := p.mail.Send(ctx, p.notifyEmail, subject, text); err != nil {
		slog.Error("booking notification email failed",
			"appointment_id", a.AppointmentID, "error", err)
	}
}

// newAppointmentID generates the digits-only display identifier shown to
// clients and operators. Millisecond timestamps keep IDs unique enough
// for a single showroom's booking volume and sort in creation order.
func newAppointmentID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
