// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Mobilia server.
// Handlers are grouped by concern (admin, auth, public) and receive
// their dependencies through the handler struct. Everything speaks JSON;
// the storefront and back-office UI are a separate SPA.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// maxJSONBody caps request bodies on JSON endpoints.
const maxJSONBody = 1 << 20 // 1 MB

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response failed", "error", err)
	}
}

// writeError writes a JSON error body: {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeErrorDetails writes a JSON error body with per-field messages:
// {"error": msg, "details": [...]}.
func writeErrorDetails(w http.ResponseWriter, status int, msg string, details []string) {
	writeJSON(w, status, map[string]any{"error": msg, "details": details})
}

// decodeJSON reads and decodes a JSON request body into v, rejecting
// unknown fields and oversized bodies.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

// errNotFound marks a missing URL id so handlers can map it to 404.
var errNotFound = errors.New("not found")

// urlID parses the {id} route parameter as an int64.
func urlID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: %w", raw, errNotFound)
	}
	return id, nil
}
