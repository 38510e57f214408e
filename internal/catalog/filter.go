// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"strings"

	"mobilia/internal/models"
)

// FilterProducts returns the products matching the given search term and
// category filter, preserving input order. A nil categoryID matches every
// product; an empty term matches every product. The term is compared
// case-insensitively against name, description, primary category name,
// and slug.
func FilterProducts(all []models.Product, term string, categoryID *int64) []models.Product {
	term = strings.ToLower(strings.TrimSpace(term))

	result := make([]models.Product, 0, len(all))
	for _, p := range all {
		if categoryID != nil {
			if p.CategoryID == nil || *p.CategoryID != *categoryID {
				continue
			}
		}
		if term != "" && !productMatches(&p, term) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func productMatches(p *models.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if p.Description != nil && strings.Contains(strings.ToLower(*p.Description), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.PrimaryCategoryName()), term) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Slug), term)
}

// FilterAppointments returns the appointments matching the given search
// term in a fresh slice, preserving input order. The term is compared
// case-insensitively against the fields an operator sees on screen:
// name, email, phone, formatted date, contact-time label, status, and
// display id.
func FilterAppointments(all []models.Appointment, term string) []models.Appointment {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		result := make([]models.Appointment, len(all))
		copy(result, all)
		return result
	}

	result := make([]models.Appointment, 0, len(all))
	for _, a := range all {
		if appointmentMatches(&a, term) {
			result = append(result, a)
		}
	}
	return result
}

// appointmentDateLayout is how appointment dates are displayed in the
// back-office list, and therefore what search matches against.
const appointmentDateLayout = "Jan 2, 2006 3:04 PM"

func appointmentMatches(a *models.Appointment, term string) bool {
	fields := []string{
		a.ClientName,
		a.ClientEmail,
		a.Phone,
		a.AppointmentDate.Format(appointmentDateLayout),
		models.ContactTimeLabel(a.PreferredTime),
		string(a.Status),
		a.AppointmentID,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
