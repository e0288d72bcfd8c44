// Package normalize holds the late pipeline passes: identifier derivation,
// text polishing, legendary-action splitting, and the final canonical pass
// that assigns stable IDs and drops invalid or duplicate records.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var underscoreRunRe = regexp.MustCompile(`_+`)

// NormalizeID derives a stable identifier from a display name: lowercase,
// spaces and hyphens become underscores, every other character outside
// [0-9a-z_] is stripped, underscore runs collapse, and leading/trailing
// underscores are trimmed. Applying it to its own output is a no-op.
func NormalizeID(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '-' || unicode.IsSpace(r):
			return '_'
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return -1
		}
	}, s)
	s = underscoreRunRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// RecordID builds the cross-reference key for a record of the given kind.
func RecordID(kind, name string) string {
	return kind + ":" + NormalizeID(name)
}
