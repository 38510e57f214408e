package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"mobilia/internal/session"
)

// newTestSession creates a session.Data value suitable for testing.
func newTestSession(role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "test@mobilia.local",
		DisplayName: "Test Operator",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// ctxWithSession returns a context carrying the given session data using
// the same context key the middleware uses. This allows tests to simulate
// the state after LoadSession has run without needing a real Valkey store.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, data)
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

// roleIsAdmin is the policy used throughout these tests.
func roleIsAdmin(sess *session.Data) bool {
	return sess != nil && sess.Role == "admin"
}

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns session when present", func(t *testing.T) {
		sess := newTestSession("admin", true)
		ctx := ctxWithSession(context.Background(), sess)

		got := SessionFromCtx(ctx)
		if got == nil {
			t.Fatal("expected session, got nil")
		}
		if got.Email != sess.Email {
			t.Errorf("email: got %q, want %q", got.Email, sess.Email)
		}
	})

	t.Run("returns nil without session", func(t *testing.T) {
		if got := SessionFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}

func TestRequireAdminAPI(t *testing.T) {
	tests := []struct {
		name       string
		sess       *session.Data
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "no session returns 401",
			sess:       nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-admin returns 403",
			sess:       newTestSession("editor", true),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin without 2fa returns 403",
			sess:       newTestSession("admin", false),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin passes through",
			sess:       newTestSession("admin", true),
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, called := okHandler()
			h := RequireAdminAPI(roleIsAdmin)(next)

			r := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
			if tt.sess != nil {
				r = r.WithContext(ctxWithSession(r.Context(), tt.sess))
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", w.Code, tt.wantStatus)
			}
			if *called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", *called, tt.wantCalled)
			}
		})
	}
}

func TestRequireAdminPageRedirects(t *testing.T) {
	t.Run("unauthenticated redirects to login", func(t *testing.T) {
		next, called := okHandler()
		h := RequireAdminPage(roleIsAdmin)(next)

		r := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if w.Code != http.StatusSeeOther {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusSeeOther)
		}
		if loc := w.Header().Get("Location"); loc != "/admin/login" {
			t.Errorf("location: got %q, want /admin/login", loc)
		}
		if *called {
			t.Error("handler should not run")
		}
	})

	t.Run("admin passes through", func(t *testing.T) {
		next, called := okHandler()
		h := RequireAdminPage(roleIsAdmin)(next)

		r := httptest.NewRequest(http.MethodGet, "/admin", nil)
		r = r.WithContext(ctxWithSession(r.Context(), newTestSession("admin", true)))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if w.Code != http.StatusOK || !*called {
			t.Errorf("expected pass-through, got status %d called=%v", w.Code, *called)
		}
	})
}

func TestRedirectIfAdmin(t *testing.T) {
	t.Run("admin on login page goes to back-office", func(t *testing.T) {
		next, called := okHandler()
		h := RedirectIfAdmin(roleIsAdmin)(next)

		r := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
		r = r.WithContext(ctxWithSession(r.Context(), newTestSession("admin", true)))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if w.Code != http.StatusSeeOther {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusSeeOther)
		}
		if loc := w.Header().Get("Location"); loc != "/admin" {
			t.Errorf("location: got %q, want /admin", loc)
		}
		if *called {
			t.Error("handler should not run")
		}
	})

	t.Run("anonymous visitor sees login page", func(t *testing.T) {
		next, called := okHandler()
		h := RedirectIfAdmin(roleIsAdmin)(next)

		r := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if w.Code != http.StatusOK || !*called {
			t.Errorf("expected pass-through, got status %d called=%v", w.Code, *called)
		}
	})
}
