// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"mobilia/internal/catalog"
	"mobilia/internal/models"
	"mobilia/internal/slug"
	"mobilia/internal/store"
)

// categoryInput is the admin create/update request body.
type categoryInput struct {
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ParentID *int64  `json:"parent_id"`
	Type     *string `json:"type"`
}

// CategoriesList returns all categories in display order with product counts.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	items, err := a.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CategoryCreate adds a category at the end of its parent's ordering
// scope: display_order is one past the current maximum.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validateCategory(in.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = slug.Generate(in.Name)
	} else {
		in.Slug = slug.Generate(in.Slug)
	}

	order, err := a.categories.NextDisplayOrder(in.ParentID)
	if err != nil {
		slog.Error("next display order failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	created, err := a.categories.Create(&models.Category{
		Name:         strings.TrimSpace(in.Name),
		Slug:         in.Slug,
		DisplayOrder: order,
		ParentID:     in.ParentID,
		Type:         in.Type,
	})
	if err != nil {
		slog.Error("create category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	a.catalogCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// CategoryUpdate edits a category's fields. display_order is managed by
// the reorder endpoint and left untouched here.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}

	existing, err := a.categories.FindByID(id)
	if err != nil {
		slog.Error("category lookup failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load category")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}

	var in categoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validateCategory(in.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	existing.Name = strings.TrimSpace(in.Name)
	if strings.TrimSpace(in.Slug) != "" {
		existing.Slug = slug.Generate(in.Slug)
	}
	existing.ParentID = in.ParentID
	existing.Type = in.Type

	if err := a.categories.Update(existing); err != nil {
		slog.Error("update category failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	a.catalogCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, existing)
}

// CategoryDelete removes a category. Products keep existing; their
// references to the deleted category fall away via the schema rules.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}

	if err := a.categories.Delete(id); err != nil {
		if errors.Is(err, store.ErrCategoryInUse) {
			writeError(w, http.StatusConflict, "Category is still assigned to one or more products. Remove those assignments first.")
			return
		}
		slog.Error("delete category failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	a.catalogCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// CategoriesReorder moves one category to a new position in the
// displayed list and persists the resulting dense 0..n-1 ordering in a
// single transaction. On failure nothing is written and the response
// carries the untouched authoritative list, so the client can simply
// re-render.
func (a *Admin) CategoriesReorder(w http.ResponseWriter, r *http.Request) {
	var in struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items, err := a.categories.List()
	if err != nil {
		slog.Error("list categories for reorder failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}

	reordered, err := catalog.Reorder(items, in.From, in.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.categories.Reorder(catalog.OrderPairs(reordered)); err != nil {
		slog.Error("persist reorder failed", "from", in.From, "to", in.To, "error", err)

		// The transaction rolled back; re-fetch and return the stored order.
		current, listErr := a.categories.List()
		if listErr != nil {
			writeError(w, http.StatusInternalServerError, "Failed to reorder categories")
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "Failed to reorder categories",
			"data":  current,
		})
		return
	}

	a.catalogCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, reordered)
}
