package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()

	next, _ := okHandler()
	h := rl.Middleware(next)

	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/appointments", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i+1, w.Code)
		}
	}

	r := httptest.NewRequest(http.MethodPost, "/api/appointments", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("over limit: got %d, want 429", w.Code)
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	next, _ := okHandler()
	h := rl.Middleware(next)

	first := httptest.NewRequest(http.MethodPost, "/api/appointments", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, first)
	if w.Code != http.StatusOK {
		t.Fatalf("first client: got %d", w.Code)
	}

	// A different IP still has its own budget.
	second := httptest.NewRequest(http.MethodPost, "/api/appointments", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, second)
	if w.Code != http.StatusOK {
		t.Errorf("second client: got %d, want 200", w.Code)
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "127.0.0.1:9999"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if got := clientIP(r); got != "203.0.113.7" {
		t.Errorf("clientIP: got %q, want 203.0.113.7", got)
	}
}
