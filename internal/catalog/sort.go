// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"sort"
	"strconv"
	"strings"

	"mobilia/internal/models"
)

// SortKey identifies a sortable appointment column. The set is closed:
// each key maps to an explicit comparator rather than reflective field
// access.
type SortKey string

const (
	SortKeyNone        SortKey = ""
	SortKeyClientName  SortKey = "client_name"
	SortKeyClientEmail SortKey = "client_email"
	SortKeyPhone       SortKey = "phone"
	SortKeyDate        SortKey = "appointment_date"
	SortKeyStatus      SortKey = "status"
	SortKeyDisplayID   SortKey = "appointment_id"
)

// SortDirection is the order applied to a sort key.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortKey validates a raw column name against the closed key set.
// Unknown names map to SortKeyNone, which leaves input order untouched.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortKeyClientName, SortKeyClientEmail, SortKeyPhone, SortKeyDate, SortKeyStatus, SortKeyDisplayID:
		return SortKey(raw)
	}
	return SortKeyNone
}

// ToggleSort returns the sort state after clicking a column header:
// clicking the current key flips the direction, clicking a new key
// resets to ascending.
func ToggleSort(currentKey SortKey, currentDir SortDirection, clicked SortKey) (SortKey, SortDirection) {
	if clicked == currentKey {
		if currentDir == SortAsc {
			return clicked, SortDesc
		}
		return clicked, SortAsc
	}
	return clicked, SortAsc
}

// SortAppointments returns a copy of all sorted by the given key and
// direction. The sort is stable, so equal elements keep their input
// order. SortKeyNone returns the input order unchanged. Dates compare
// as instants and display ids as parsed integers; everything else
// compares as case-sensitive strings.
func SortAppointments(all []models.Appointment, key SortKey, dir SortDirection) []models.Appointment {
	result := make([]models.Appointment, len(all))
	copy(result, all)
	if key == SortKeyNone {
		return result
	}

	less := comparatorFor(key)
	sort.SliceStable(result, func(i, j int) bool {
		if dir == SortDesc {
			i, j = j, i
		}
		return less(&result[i], &result[j])
	})
	return result
}

// comparatorFor maps a sort key to its comparator. Keys not in the
// closed set never reach here (ParseSortKey folds them to SortKeyNone).
func comparatorFor(key SortKey) func(a, b *models.Appointment) bool {
	switch key {
	case SortKeyDate:
		return func(a, b *models.Appointment) bool {
			return a.AppointmentDate.Before(b.AppointmentDate)
		}
	case SortKeyDisplayID:
		return func(a, b *models.Appointment) bool {
			return displayIDValue(a.AppointmentID) < displayIDValue(b.AppointmentID)
		}
	case SortKeyClientName:
		return func(a, b *models.Appointment) bool {
			return strings.Compare(a.ClientName, b.ClientName) < 0
		}
	case SortKeyClientEmail:
		return func(a, b *models.Appointment) bool {
			return strings.Compare(a.ClientEmail, b.ClientEmail) < 0
		}
	case SortKeyPhone:
		return func(a, b *models.Appointment) bool {
			return strings.Compare(a.Phone, b.Phone) < 0
		}
	case SortKeyStatus:
		return func(a, b *models.Appointment) bool {
			return strings.Compare(string(a.Status), string(b.Status)) < 0
		}
	}
	return func(a, b *models.Appointment) bool { return false }
}

// displayIDValue parses a display id as an integer for numeric ordering.
// Malformed ids sort first.
func displayIDValue(id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return -1
	}
	return n
}
