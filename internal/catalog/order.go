// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the pure list logic behind the back-office:
// category reordering, product/appointment filtering, and appointment
// sorting. Nothing here touches the database; callers persist results
// through the store package and re-fetch on failure.
package catalog

import (
	"fmt"

	"mobilia/internal/models"
)

// Reorder moves the element at from to position to and relabels
// DisplayOrder as a dense 0..n-1 sequence over the result. The relative
// order of all untouched elements is preserved. The input slice is not
// modified.
func Reorder(categories []models.Category, from, to int) ([]models.Category, error) {
	n := len(categories)
	if from < 0 || from >= n {
		return nil, fmt.Errorf("reorder: from index %d out of range [0,%d)", from, n)
	}
	if to < 0 || to >= n {
		return nil, fmt.Errorf("reorder: to index %d out of range [0,%d)", to, n)
	}

	result := make([]models.Category, 0, n)
	result = append(result, categories[:from]...)
	result = append(result, categories[from+1:]...)

	moved := categories[from]
	result = append(result[:to], append([]models.Category{moved}, result[to:]...)...)

	for i := range result {
		result[i].DisplayOrder = i
	}
	return result, nil
}

// OrderPair is one {id, display_order} assignment produced by a reorder,
// in the shape the store persists.
type OrderPair struct {
	ID           int64 `json:"id"`
	DisplayOrder int   `json:"display_order"`
}

// OrderPairs extracts the persistable {id, display_order} assignments
// from an ordered category sequence.
func OrderPairs(categories []models.Category) []OrderPair {
	pairs := make([]OrderPair, len(categories))
	for i, c := range categories {
		pairs[i] = OrderPair{ID: c.ID, DisplayOrder: c.DisplayOrder}
	}
	return pairs
}

// NextDisplayOrder returns the display_order a newly created category
// should get: one past the current maximum, or 0 for an empty list.
func NextDisplayOrder(categories []models.Category) int {
	next := 0
	for _, c := range categories {
		if c.DisplayOrder >= next {
			next = c.DisplayOrder + 1
		}
	}
	return next
}
