// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mobilia/internal/cache"
	"mobilia/internal/mailer"
	"mobilia/internal/models"
	"mobilia/internal/store"
)

// Public groups the storefront handlers: the catalog read API and the
// appointment booking endpoint.
type Public struct {
	categories   *store.CategoryStore
	products     *store.ProductStore
	appointments *store.AppointmentStore
	catalogCache *cache.CatalogCache
	mail         *mailer.Service // nil when email is not configured
	notifyEmail  string
}

// NewPublic creates a new Public handler group. mail may be nil.
func NewPublic(categories *store.CategoryStore, products *store.ProductStore, appointments *store.AppointmentStore, catalogCache *cache.CatalogCache, mail *mailer.Service, notifyEmail string) *Public {
	return &Public{
		categories:   categories,
		products:     products,
		appointments: appointments,
		catalogCache: catalogCache,
		mail:         mail,
		notifyEmail:  notifyEmail,
	}
}

// Categories returns the public category list in display order.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.CategoriesKey()) {
		return
	}

	items, err := p.categories.List()
	if err != nil {
		slog.Error("public category list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}

	p.serveAndCache(w, r, cache.CategoriesKey(), items)
}

// Products returns the published product list with categories hydrated.
func (p *Public) Products(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.ProductsKey()) {
		return
	}

	items, err := p.products.ListPublished()
	if err != nil {
		slog.Error("public product list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}

	p.serveAndCache(w, r, cache.ProductsKey(), items)
}

// ProductBySlug returns a single published product by its slug.
func (p *Public) ProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if p.serveCached(w, r, cache.ProductSlugKey(slug)) {
		return
	}

	product, err := p.products.FindBySlug(slug)
	if err != nil {
		slog.Error("public product lookup failed", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	if product == nil || !product.Active || product.Status != models.ProductStatusPublished {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	p.serveAndCache(w, r, cache.ProductSlugKey(slug), product)
}

// serveCached writes a cached payload if one exists. Returns true when
// the request was served from cache.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	payload, ok := p.catalogCache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "hit")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
	return true
}

// serveAndCache serializes v, stores it under key, and writes it out.
func (p *Public) serveAndCache(w http.ResponseWriter, r *http.Request, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("catalog payload marshal failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to serialize response")
		return
	}
	p.catalogCache.Set(r.Context(), key, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
