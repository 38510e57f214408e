// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"mobilia/internal/models"
)

// AppointmentStore manages showroom appointments in the database.
type AppointmentStore struct {
	db *sql.DB
}

// NewAppointmentStore returns a new AppointmentStore.
func NewAppointmentStore(db *sql.DB) *AppointmentStore {
	return &AppointmentStore{db: db}
}

const appointmentColumns = `id, appointment_id, client_name, client_email, phone,
	appointment_date, status, preferred_contact_time, address, notes, created_at`

// scanAppointment scans a row into an Appointment struct.
func scanAppointment(scanner interface{ Scan(...any) error }) (*models.Appointment, error) {
	var a models.Appointment
	err := scanner.Scan(
		&a.ID, &a.AppointmentID, &a.ClientName, &a.ClientEmail, &a.Phone,
		&a.AppointmentDate, &a.Status, &a.PreferredTime, &a.Address,
		&a.Notes, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns all appointments, newest booking first.
func (s *AppointmentStore) List() ([]models.Appointment, error) {
	return s.list(`SELECT ` + appointmentColumns + ` FROM appointments ORDER BY created_at DESC, id DESC`)
}

// ListByCreatedAsc returns all appointments ordered by creation time
// ascending — the export order of the backup endpoint.
func (s *AppointmentStore) ListByCreatedAsc() ([]models.Appointment, error) {
	return s.list(`SELECT ` + appointmentColumns + ` FROM appointments ORDER BY created_at ASC, id ASC`)
}

func (s *AppointmentStore) list(query string) ([]models.Appointment, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var items []models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// FindByID retrieves an appointment by ID. Returns nil if not found.
func (s *AppointmentStore) FindByID(id int64) (*models.Appointment, error) {
	row := s.db.QueryRow(`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	a, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find appointment by id: %w", err)
	}
	return a, nil
}

// Create inserts a new appointment and returns it.
func (s *AppointmentStore) Create(a *models.Appointment) (*models.Appointment, error) {
	row := s.db.QueryRow(`
		INSERT INTO appointments
			(appointment_id, client_name, client_email, phone, appointment_date,
			 status, preferred_contact_time, address, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+appointmentColumns,
		a.AppointmentID, a.ClientName, a.ClientEmail, a.Phone, a.AppointmentDate,
		a.Status, a.PreferredTime, a.Address, a.Notes,
	)
	result, err := scanAppointment(row)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return result, nil
}

// Update modifies an existing appointment's editable fields.
func (s *AppointmentStore) Update(a *models.Appointment) error {
	_, err := s.db.Exec(`
		UPDATE appointments SET
			client_name = $1, client_email = $2, phone = $3, appointment_date = $4,
			status = $5, preferred_contact_time = $6, address = $7, notes = $8
		WHERE id = $9
	`, a.ClientName, a.ClientEmail, a.Phone, a.AppointmentDate,
		a.Status, a.PreferredTime, a.Address, a.Notes, a.ID)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

// UpdateStatus changes only the status of an appointment.
func (s *AppointmentStore) UpdateStatus(id int64, status models.AppointmentStatus) error {
	_, err := s.db.Exec(`UPDATE appointments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	return nil
}

// Delete removes an appointment by ID.
func (s *AppointmentStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

// ReplaceAll deletes every appointment and bulk-inserts the given rows in
// one transaction. This is the restore half of the backup endpoint: a
// full destructive replace that either lands completely or not at all.
func (s *AppointmentStore) ReplaceAll(items []models.Appointment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM appointments`); err != nil {
		return fmt.Errorf("clear appointments: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO appointments
			(appointment_id, client_name, client_email, phone, appointment_date,
			 status, preferred_contact_time, address, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`)
	if err != nil {
		return fmt.Errorf("prepare restore: %w", err)
	}
	defer stmt.Close()

	for _, a := range items {
		_, err := stmt.Exec(
			a.AppointmentID, a.ClientName, a.ClientEmail, a.Phone, a.AppointmentDate,
			a.Status, a.PreferredTime, a.Address, a.Notes, a.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("restore appointment %s: %w", a.AppointmentID, err)
		}
	}

	return tx.Commit()
}
