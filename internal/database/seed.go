package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// starter categories for a fresh development database, in display order.
var seedCategories = []struct {
	name string
	slug string
}{
	{"Living Room", "living-room"},
	{"Dining", "dining"},
	{"Bedroom", "bedroom"},
	{"Office", "office"},
	{"Outdoor", "outdoor"},
}

// Seed populates the database with initial development data.
// It creates a default admin operator and a starter category set if none
// exist. The admin will be prompted to set up 2FA on first login
// (totp_enabled = false).
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin operator. 2FA is not enabled — they must set it
	// up on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@mobilia.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	for i, c := range seedCategories {
		_, err = db.Exec(`
			INSERT INTO categories (name, slug, display_order)
			VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO NOTHING
		`, c.name, c.slug, i)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.slug, err)
		}
	}

	slog.Info("database seeded with default admin and starter categories",
		"email", "admin@mobilia.local",
		"password", "admin",
	)

	return nil
}
