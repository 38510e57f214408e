// store_test.go provides shared test infrastructure for store integration
// tests. Tests are skipped when PostgreSQL is unavailable.
package store

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"mobilia/internal/database"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "mobilia")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "mobilia")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanCategory removes a category created by a test.
func cleanCategory(t *testing.T, db *sql.DB, slug string) {
	t.Helper()
	if _, err := db.Exec("DELETE FROM categories WHERE slug = $1", slug); err != nil {
		t.Logf("cleanup category %s: %v", slug, err)
	}
}

// cleanProduct removes a product created by a test.
func cleanProduct(t *testing.T, db *sql.DB, slug string) {
	t.Helper()
	if _, err := db.Exec("DELETE FROM products WHERE slug = $1", slug); err != nil {
		t.Logf("cleanup product %s: %v", slug, err)
	}
}

// cleanAppointment removes an appointment created by a test.
func cleanAppointment(t *testing.T, db *sql.DB, displayID string) {
	t.Helper()
	if _, err := db.Exec("DELETE FROM appointments WHERE appointment_id = $1", displayID); err != nil {
		t.Logf("cleanup appointment %s: %v", displayID, err)
	}
}
