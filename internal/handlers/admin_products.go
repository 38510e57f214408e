// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"mobilia/internal/catalog"
	"mobilia/internal/imaging"
	"mobilia/internal/models"
	"mobilia/internal/slug"
)

// maxUploadBytes caps product image uploads before decoding.
const maxUploadBytes = 10 << 20 // 10 MB

// productInput is the admin create/update request body. CategoryIDs is
// the full desired category set, in order; the first entry becomes the
// primary category.
type productInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
	Status      string  `json:"status"`
	CategoryIDs []int64 `json:"category_ids"`
}

// ProductsList returns products for the back-office list view. Optional
// query parameters: q (free-text search) and category_id, combined with
// AND semantics.
func (a *Admin) ProductsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.products.List()
	if err != nil {
		slog.Error("list products failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}

	q := r.URL.Query().Get("q")
	var categoryID *int64
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "category_id must be an integer")
			return
		}
		categoryID = &id
	}
	if q != "" || categoryID != nil {
		items = catalog.FilterProducts(items, q, categoryID)
	}

	writeJSON(w, http.StatusOK, items)
}

// ProductGet returns a single product with its category set hydrated.
func (a *Admin) ProductGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := a.products.FindByID(id)
	if err != nil {
		slog.Error("product lookup failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// ProductCreate inserts a product and its category relations.
func (a *Admin) ProductCreate(w http.ResponseWriter, r *http.Request) {
	a.saveProduct(w, r, nil)
}

// ProductUpdate edits a product; the category set in the request
// replaces the stored one entirely.
func (a *Admin) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	existing, err := a.products.FindByID(id)
	if err != nil {
		slog.Error("product lookup failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	a.saveProduct(w, r, existing)
}

// saveProduct handles the shared create/update path. existing is nil on
// create; on update its ID and MainImage carry over.
func (a *Admin) saveProduct(w http.ResponseWriter, r *http.Request, existing *models.Product) {
	var in productInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := models.ProductStatus(in.Status)
	if msg := validateProduct(in.Name, status, in.Description); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = slug.Generate(in.Name)
	} else {
		in.Slug = slug.Generate(in.Slug)
	}

	product := &models.Product{
		Name:        strings.TrimSpace(in.Name),
		Slug:        in.Slug,
		Description: in.Description,
		Active:      in.Active,
		Status:      status,
	}
	httpStatus := http.StatusCreated
	if existing != nil {
		product.ID = existing.ID
		product.MainImage = existing.MainImage
		httpStatus = http.StatusOK
	}

	saved, err := a.products.Save(product, in.CategoryIDs)
	if err != nil {
		slog.Error("save product failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save product")
		return
	}

	a.catalogCache.InvalidateAll(r.Context())
	writeJSON(w, httpStatus, saved)
}

// ProductDelete removes a product; relation rows cascade.
func (a *Admin) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := a.products.FindByID(id)
	if err != nil {
		slog.Error("product lookup failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := a.products.Delete(id); err != nil {
		slog.Error("delete product failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	// Clean up the stored image after the row is gone; a failure here
	// only leaks an orphan object.
	if a.storageClient != nil && product.MainImage != "" {
		if key, ok := a.storageClient.ExtractKey(product.MainImage); ok {
			if err := a.storageClient.Delete(r.Context(), key); err != nil {
				slog.Warn("delete product image failed", "key", key, "error", err)
			}
		}
	}

	a.catalogCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ProductImageUpload accepts a multipart image, generates a catalog
// thumbnail, stores it in the public bucket, and records its URL as the
// product's main image.
func (a *Admin) ProductImageUpload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := a.products.FindByID(id)
	if err != nil {
		slog.Error("product lookup failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Upload too large or malformed")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	thumb, err := imaging.Thumbnail(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported or corrupt image")
		return
	}

	key := "products/" + uuid.NewString() + ".jpg"
	if err := a.storageClient.Upload(r.Context(), key, "image/jpeg", bytes.NewReader(thumb), int64(len(thumb))); err != nil {
		slog.Error("product image upload failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	oldImage := product.MainImage
	product.MainImage = a.storageClient.FileURL(key)

	categoryIDs := make([]int64, len(product.Categories))
	for i, c := range product.Categories {
		categoryIDs[i] = c.ID
	}

	saved, err := a.products.Save(product, categoryIDs)
	if err != nil {
		slog.Error("record product image failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save product")
		return
	}

	// Drop the replaced object once the new URL is recorded.
	if oldImage != "" {
		if oldKey, ok := a.storageClient.ExtractKey(oldImage); ok {
			if err := a.storageClient.Delete(r.Context(), oldKey); err != nil {
				slog.Warn("delete replaced product image failed", "key", oldKey, "error", err)
			}
		}
	}

	a.catalogCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, saved)
}

// ProductImageDelete removes a product's main image from storage and
// clears the stored URL.
func (a *Admin) ProductImageDelete(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := a.products.FindByID(id)
	if err != nil {
		slog.Error("product lookup failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if product.MainImage == "" {
		writeError(w, http.StatusNotFound, "Product has no image")
		return
	}

	if key, ok := a.storageClient.ExtractKey(product.MainImage); ok {
		if err := a.storageClient.Delete(r.Context(), key); err != nil {
			slog.Warn("delete product image failed", "key", key, "error", err)
		}
	}

	product.MainImage = ""
	categoryIDs := make([]int64, len(product.Categories))
	for i, c := range product.Categories {
		categoryIDs[i] = c.ID
	}

	saved, err := a.products.Save(product, categoryIDs)
	if err != nil {
		slog.Error("clear product image failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save product")
		return
	}

	a.catalogCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, saved)
}
