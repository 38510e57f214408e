// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"mobilia/internal/models"
)

// ProductStore manages products and their category relations.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, slug, description, category_id, main_image, active, status, created_at, updated_at`

// scanProduct scans a row into a Product struct.
func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.CategoryID,
		&p.MainImage, &p.Active, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all products, newest first, with their category sets
// hydrated from the relation table.
func (s *ProductStore) List() ([]models.Product, error) {
	return s.list(`SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id DESC`)
}

// ListPublished returns active, published products for the public catalog,
// hydrated with categories.
func (s *ProductStore) ListPublished() ([]models.Product, error) {
	return s.list(`
		SELECT ` + productColumns + ` FROM products
		WHERE active AND status = 'published'
		ORDER BY created_at DESC, id DESC`)
}

func (s *ProductStore) list(query string) ([]models.Product, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.hydrateCategories(items); err != nil {
		return nil, err
	}
	return items, nil
}

// hydrateCategories fills the Categories field of every product in items
// with one relation query, preserving relation position order.
func (s *ProductStore) hydrateCategories(items []models.Product) error {
	if len(items) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Product, len(items))
	ids := make([]int64, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
		ids[i] = items[i].ID
	}

	rows, err := s.db.Query(`
		SELECT r.product_id, c.id, c.name, c.slug, c.display_order, c.parent_id, c.type,
		       c.created_at, c.updated_at
		FROM product_category_relations r
		JOIN categories c ON c.id = r.category_id
		WHERE r.product_id = ANY($1)
		ORDER BY r.product_id, r.position
	`, ids)
	if err != nil {
		return fmt.Errorf("hydrate product categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var c models.Category
		err := rows.Scan(
			&productID, &c.ID, &c.Name, &c.Slug, &c.DisplayOrder,
			&c.ParentID, &c.Type, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("scan product relation: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Categories = append(p.Categories, c)
		}
	}
	return rows.Err()
}

// FindByID retrieves a product by ID with its category set hydrated.
// Returns nil if not found.
func (s *ProductStore) FindByID(id int64) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}

	items := []models.Product{*p}
	if err := s.hydrateCategories(items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// FindBySlug retrieves a product by slug with its category set hydrated.
// Returns nil if not found.
func (s *ProductStore) FindBySlug(slug string) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}

	items := []models.Product{*p}
	if err := s.hydrateCategories(items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Save inserts or updates a product together with its category relations
// in one transaction. The relation set is replaced in full with
// categoryIDs (in order), and the product's category_id is set to the
// first element — or NULL when the set is empty. The returned product is
// re-read from the database so category_id and Categories can never
// drift apart in the result.
func (s *ProductStore) Save(p *models.Product, categoryIDs []int64) (*models.Product, error) {
	var primary *int64
	if len(categoryIDs) > 0 {
		primary = &categoryIDs[0]
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	id := p.ID
	if id == 0 {
		err = tx.QueryRow(`
			INSERT INTO products (name, slug, description, category_id, main_image, active, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, p.Name, p.Slug, p.Description, primary, p.MainImage, p.Active, p.Status).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert product: %w", err)
		}
	} else {
		_, err = tx.Exec(`
			UPDATE products SET
				name = $1, slug = $2, description = $3, category_id = $4,
				main_image = $5, active = $6, status = $7, updated_at = NOW()
			WHERE id = $8
		`, p.Name, p.Slug, p.Description, primary, p.MainImage, p.Active, p.Status, id)
		if err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
	}

	// Full-replace reconciliation: drop every existing relation row and
	// re-insert the desired set. Fan-out per product is small, so the
	// extra writes are cheaper than a diff.
	if _, err := tx.Exec(`DELETE FROM product_category_relations WHERE product_id = $1`, id); err != nil {
		return nil, fmt.Errorf("clear product relations: %w", err)
	}
	for pos, catID := range categoryIDs {
		_, err := tx.Exec(`
			INSERT INTO product_category_relations (product_id, category_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (product_id, category_id) DO NOTHING
		`, id, catID, pos)
		if err != nil {
			return nil, fmt.Errorf("insert product relation %d->%d: %w", id, catID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit product save: %w", err)
	}

	// Read-back so the caller gets the hydrated, authoritative row.
	saved, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, fmt.Errorf("product %d vanished after save", id)
	}
	return saved, nil
}

// Delete removes a product by ID. Relation rows cascade via the schema.
func (s *ProductStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
