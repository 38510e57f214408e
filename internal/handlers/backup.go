// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"mobilia/internal/models"
)

// maxBackupBody caps restore payloads. Appointment rows are small; this
// allows well over a hundred thousand of them.
const maxBackupBody = 32 << 20 // 32 MB

// BackupExport streams every appointment as a JSON download, oldest
// first so a later restore replays them in creation order.
func (a *Admin) BackupExport(w http.ResponseWriter, r *http.Request) {
	items, err := a.appointments.ListByCreatedAsc()
	if err != nil {
		slog.Error("backup export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to export appointments")
		return
	}
	if items == nil {
		items = []models.Appointment{}
	}

	filename := "appointments-" + time.Now().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(items); err != nil {
		slog.Error("backup export write failed", "error", err)
	}
}

// BackupRestore replaces the entire appointments table with the uploaded
// export. The operation is destructive and transactional: it either
// replaces everything or changes nothing.
func (a *Admin) BackupRestore(w http.ResponseWriter, r *http.Request) {
	var items []models.Appointment
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBackupBody))
	if err := dec.Decode(&items); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid backup payload")
		return
	}

	for i := range items {
		if items[i].AppointmentID == "" || items[i].ClientName == "" {
			writeError(w, http.StatusBadRequest, "Backup payload contains incomplete appointments")
			return
		}
		if !models.ValidAppointmentStatus(items[i].Status) {
			writeError(w, http.StatusBadRequest, "Backup payload contains an unknown status")
			return
		}
	}

	if err := a.appointments.ReplaceAll(items); err != nil {
		slog.Error("backup restore failed", "count", len(items), "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to restore appointments")
		return
	}

	slog.Info("appointments restored from backup", "count", len(items))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"restored": len(items),
	})
}
