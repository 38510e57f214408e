// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"mobilia/internal/cache"
	"mobilia/internal/catalog"
	"mobilia/internal/models"
	"mobilia/internal/storage"
	"mobilia/internal/store"
)

// Admin groups all back-office HTTP handlers and their dependencies.
type Admin struct {
	categories    *store.CategoryStore
	products      *store.ProductStore
	appointments  *store.AppointmentStore
	storageClient *storage.Client // nil when S3 is not configured
	catalogCache  *cache.CatalogCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// storageClient may be nil if S3 is not configured.
func NewAdmin(categories *store.CategoryStore, products *store.ProductStore, appointments *store.AppointmentStore, storageClient *storage.Client, catalogCache *cache.CatalogCache) *Admin {
	return &Admin{
		categories:    categories,
		products:      products,
		appointments:  appointments,
		storageClient: storageClient,
		catalogCache:  catalogCache,
	}
}

// --- Appointments ---

// AppointmentsList returns appointments for the back-office list view.
// Optional query parameters: q (free-text search), sort (column key),
// dir (asc/desc). An unknown sort key leaves the list in its default
// newest-first order.
func (a *Admin) AppointmentsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.appointments.List()
	if err != nil {
		slog.Error("list appointments failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load appointments")
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		items = catalog.FilterAppointments(items, q)
	}

	key := catalog.ParseSortKey(r.URL.Query().Get("sort"))
	dir := catalog.SortAsc
	if r.URL.Query().Get("dir") == string(catalog.SortDesc) {
		dir = catalog.SortDesc
	}
	items = catalog.SortAppointments(items, key, dir)

	writeJSON(w, http.StatusOK, items)
}

// AppointmentUpdate edits an appointment's fields.
func (a *Admin) AppointmentUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	existing, err := a.appointments.FindByID(id)
	if err != nil {
		slog.Error("appointment lookup failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load appointment")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Appointment not found")
		return
	}

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

	existing.ClientName = in.ClientName
	existing.ClientEmail = in.ClientEmail
	existing.Phone = in.Phone
	existing.AppointmentDate = date
	existing.PreferredTime = models.ContactTime(in.PreferredTime)
	existing.Address = in.Address
	existing.Notes = in.Notes

	if err := a.appointments.Update(existing); err != nil {
		slog.Error("appointment update failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	writeJSON(w, http.StatusOK, existing)
}

// AppointmentStatus changes only an appointment's status.
func (a *Admin) AppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := models.AppointmentStatus(in.Status)
	if !models.ValidAppointmentStatus(status) {
		writeError(w, http.StatusBadRequest, "Status must be pending, completed, or cancelled")
		return
	}

	existing, err := a.appointments.FindByID(id)
	if err != nil {
		slog.Error("appointment lookup failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load appointment")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	if err := a.appointments.UpdateStatus(id, status); err != nil {
		slog.Error("appointment status update failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	existing.Status = status
	writeJSON(w, http.StatusOK, existing)
}

// AppointmentDelete removes an appointment.
func (a *Admin) AppointmentDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	if err := a.appointments.Delete(id); err != nil {
		slog.Error("appointment delete failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
