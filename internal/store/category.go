// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"mobilia/internal/catalog"
	"mobilia/internal/models"
)

// ErrCategoryInUse is returned by Delete when relation rows still point
// at the category. The caller decides how to surface it; nothing is
// cascaded.
var ErrCategoryInUse = errors.New("category still has product assignments")

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, display_order, parent_id, type, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.DisplayOrder,
		&c.ParentID, &c.Type, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories in display order, with product counts.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.slug, c.display_order, c.parent_id, c.type,
		       c.created_at, c.updated_at,
		       COUNT(r.product_id) AS product_count
		FROM categories c
		LEFT JOIN product_category_relations r ON r.category_id = c.id
		GROUP BY c.id
		ORDER BY c.display_order, c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.DisplayOrder,
			&c.ParentID, &c.Type, &c.CreatedAt, &c.UpdatedAt,
			&c.ProductCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id int64) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (name, slug, display_order, parent_id, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.DisplayOrder, c.ParentID, c.Type,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category.
func (s *CategoryStore) Update(c *models.Category) error {
	_, err := s.db.Exec(`
		UPDATE categories SET
			name = $1, slug = $2, display_order = $3, parent_id = $4,
			type = $5, updated_at = NOW()
		WHERE id = $6
	`, c.Name, c.Slug, c.DisplayOrder, c.ParentID, c.Type, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. Products naming it as primary are
// handled by the schema's referential rules; the back-office deliberately
// does not cascade. Relation rows block the delete, surfaced as
// ErrCategoryInUse.
func (s *CategoryStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
		return fmt.Errorf("delete category %d: %w", id, ErrCategoryInUse)
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Reorder applies a full set of {id, display_order} assignments in one
// transaction. Either every assignment lands or none does, so a failed
// reorder leaves the stored sequence untouched and the caller can simply
// re-fetch.
func (s *CategoryStore) Reorder(pairs []catalog.OrderPair) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE categories SET display_order = $1, updated_at = $2
		WHERE id = $3`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, p := range pairs {
		if _, err := stmt.Exec(p.DisplayOrder, now, p.ID); err != nil {
			return fmt.Errorf("reorder category %d: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// NextDisplayOrder returns the display_order for a newly created category
// in the given parent scope: current max + 1, or 0 for an empty scope.
func (s *CategoryStore) NextDisplayOrder(parentID *int64) (int, error) {
	var maxOrder sql.NullInt64
	var err error
	if parentID == nil {
		err = s.db.QueryRow(`SELECT MAX(display_order) FROM categories WHERE parent_id IS NULL`).Scan(&maxOrder)
	} else {
		err = s.db.QueryRow(`SELECT MAX(display_order) FROM categories WHERE parent_id = $1`, *parentID).Scan(&maxOrder)
	}
	if err != nil {
		return 0, err
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64) + 1, nil
	}
	return 0, nil
}
