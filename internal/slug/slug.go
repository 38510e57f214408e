// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nonAlphanumeric matches every run of characters that isn't a lowercase
// letter or digit. Each run collapses to a single hyphen.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// stripMarks decomposes characters and removes combining marks, turning
// "é" into "e" and "ø"-like precomposed forms into their base letters
// where a decomposition exists.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Generate creates a URL-friendly slug from the given string.
// Example: "Fauteuil Élégant  №7" → "fauteuil-elegant-7"
func Generate(s string) string {
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
