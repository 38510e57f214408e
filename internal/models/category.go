// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// Category represents a catalog category. Categories form a flat ordered
// list per parent scope; DisplayOrder is a dense zero-based sequence that
// is rewritten in full on every reorder.
type Category struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	DisplayOrder int       `json:"display_order"`
	ParentID     *int64    `json:"parent_id"`
	Type         *string   `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// ProductCount is populated by list queries, not stored.
	ProductCount int `json:"product_count"`
}
