// Package router sets up all HTTP routes and middleware chains for the
// Mobilia server. It organizes routes into public, auth, and admin
// groups with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mobilia/internal/handlers"
	"mobilia/internal/middleware"
	"mobilia/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. isAdmin is the single admin policy consumed
// by both the page guard and the API gate; bookingLimiter throttles the
// public booking endpoint.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, isAdmin middleware.AdminPolicy, bookingLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Public storefront API.
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/categories", public.Categories)
		r.Get("/products", public.Products)
		r.Get("/products/{slug}", public.ProductBySlug)
	})

	// Public booking — rate-limited per client IP.
	r.With(bookingLimiter.Middleware).Post("/api/appointments", public.BookAppointment)

	// Auth API — CSRF-protected; the 2FA endpoints need a session but
	// not a completed one, so they sit outside the admin gate.
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)
		r.Get("/2fa/setup", auth.TwoFASetup)
		r.Post("/2fa/verify", auth.TwoFAVerify)
		r.Get("/me", auth.Me)
	})

	// Admin API — session + admin policy + CSRF.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.RequireAdminAPI(isAdmin))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", admin.CategoriesList)
			r.Post("/", admin.CategoryCreate)
			r.Post("/reorder", admin.CategoriesReorder)
			r.Put("/{id}", admin.CategoryUpdate)
			r.Delete("/{id}", admin.CategoryDelete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", admin.ProductsList)
			r.Post("/", admin.ProductCreate)
			r.Get("/{id}", admin.ProductGet)
			r.Put("/{id}", admin.ProductUpdate)
			r.Delete("/{id}", admin.ProductDelete)
			r.Post("/{id}/image", admin.ProductImageUpload)
			r.Delete("/{id}/image", admin.ProductImageDelete)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", admin.AppointmentsList)
			r.Put("/{id}", admin.AppointmentUpdate)
			r.Patch("/{id}/status", admin.AppointmentStatus)
			r.Delete("/{id}", admin.AppointmentDelete)
		})
	})

	// Appointment backup — admin-gated, no CSRF so the export URL works
	// as a plain download link.
	r.Route("/api/backup", func(r chi.Router) {
		r.Use(middleware.RequireAdminAPI(isAdmin))
		r.Get("/", admin.BackupExport)
		r.Post("/", admin.BackupRestore)
	})

	// Back-office shell pages. The UI itself is a separate SPA; these
	// routes exist for the redirect contract: unauthenticated visitors
	// land on the login page, logged-in admins skip it.
	r.With(middleware.RedirectIfAdmin(isAdmin)).Get("/admin/login", loginShellHandler)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminPage(isAdmin))
		r.Get("/admin", adminShellHandler)
		r.Get("/admin/*", adminShellHandler)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// adminShellHandler serves the minimal page that boots the back-office SPA.
func adminShellHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!doctype html><html><head><title>Mobilia Admin</title></head><body><div id="app" data-page="admin"></div></body></html>`))
}

// loginShellHandler serves the minimal page that boots the login screen.
func loginShellHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!doctype html><html><head><title>Sign In — Mobilia Admin</title></head><body><div id="app" data-page="login"></div></body></html>`))
}
