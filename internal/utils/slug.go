package utils

import (
	"regexp"
	"strings"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a service name like "Haircut & Beard Trim" into a
// stable URL-safe key ("haircut-and-beard-trim"). Slugs carry a unique
// index, so the mapping must stay deterministic.
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "&", " and ")
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
