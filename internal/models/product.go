// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// ProductStatus represents the publication state of a product.
type ProductStatus string

const (
	ProductStatusDraft      ProductStatus = "draft"
	ProductStatusPublished  ProductStatus = "published"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
	ProductStatusReview     ProductStatus = "review"
)

// ValidProductStatus reports whether s is one of the known statuses.
func ValidProductStatus(s ProductStatus) bool {
	switch s {
	case ProductStatusDraft, ProductStatusPublished, ProductStatusOutOfStock, ProductStatusReview:
		return true
	}
	return false
}

// Product represents a catalog product. CategoryID mirrors the id of the
// first element of Categories (the primary category) and is never set
// independently — ProductStore.Save maintains the invariant.
type Product struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description *string       `json:"description"`
	CategoryID  *int64        `json:"category_id"`
	MainImage   string        `json:"main_image"`
	Active      bool          `json:"active"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Categories is the ordered set of associated categories, hydrated
	// from the relation table by store reads.
	Categories []Category `json:"categories"`
}

// PrimaryCategoryName returns the name of the first associated category,
// or the empty string when the product has none.
func (p *Product) PrimaryCategoryName() string {
	if len(p.Categories) == 0 {
		return ""
	}
	return p.Categories[0].Name
}
