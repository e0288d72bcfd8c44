// Package defense converts free-text resistance, immunity, and
// vulnerability strings into structured entries. Semicolons separate
// qualifier scopes; one trailing qualifier clause is stripped per scope and
// attached to every type token inside it.
package defense

import (
	"regexp"
	"strings"

	"github.com/dmfielding/bestiary/internal/statblock"
)

// Qualifier clauses in precedence order. The combined nonmagical-exception
// form is tried before its two component forms so "from nonmagical attacks
// that aren't silvered" yields not_silvered, not nonmagical.
var (
	nonmagicalNotRe = regexp.MustCompile(`(?i)\s*from\s+nonmagical\s+(?:attacks|weapons)\s+that\s+aren['\x{2019}]t\s+(.+)$`)
	nonmagicalRe    = regexp.MustCompile(`(?i)\s*from\s+nonmagical\s+(?:attacks|weapons)\s*$`)
	notRe           = regexp.MustCompile(`(?i)\s*that\s+aren['\x{2019}]t\s+(.+)$`)
	whileInRe       = regexp.MustCompile(`(?i)\s*while\s+in\s+(.+)$`)

	andRe = regexp.MustCompile(`(?i)\band\b`)
)

// ParseDefenses converts one resistance/immunity/vulnerability string into
// entries. Returns nil for blank input; unrecognized tokens pass through
// untouched because the source text is authoritative.
func ParseDefenses(s string) []statblock.DefenseEntry {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var entries []statblock.DefenseEntry
	for _, group := range strings.Split(s, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		group, qualifier := stripQualifier(group)
		for _, typ := range splitTypes(group) {
			entries = append(entries, statblock.DefenseEntry{Type: typ, Qualifier: qualifier})
		}
	}
	return entries
}

// ParseConditions converts a condition-immunity string, already a flat list
// in source, into one entry per comma-separated token.
func ParseConditions(s string) []statblock.DefenseEntry {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var entries []statblock.DefenseEntry
	for _, typ := range splitTypes(s) {
		entries = append(entries, statblock.DefenseEntry{Type: typ})
	}
	return entries
}

// NormalizeEntries lowercases and trims every entry and removes duplicate
// (type, qualifier) pairs, keeping first occurrences. Running it on its own
// output changes nothing.
func NormalizeEntries(entries []statblock.DefenseEntry) []statblock.DefenseEntry {
	if len(entries) == 0 {
		return nil
	}

	type key struct{ typ, qual string }
	seen := make(map[key]bool, len(entries))
	out := make([]statblock.DefenseEntry, 0, len(entries))
	for _, e := range entries {
		typ := strings.ToLower(strings.TrimSpace(e.Type))
		if typ == "" {
			continue
		}
		qual := strings.ToLower(strings.TrimSpace(e.Qualifier))
		k := key{typ, qual}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, statblock.DefenseEntry{Type: typ, Qualifier: qual})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// stripQualifier removes at most one trailing qualifier clause from a
// semicolon group and returns the remainder plus the structured qualifier.
func stripQualifier(group string) (string, string) {
	if m := nonmagicalNotRe.FindStringSubmatch(group); m != nil {
		return group[:len(group)-len(m[0])], "not_" + slug(m[1])
	}
	if m := nonmagicalRe.FindStringIndex(group); m != nil {
		return group[:m[0]], "nonmagical"
	}
	if m := notRe.FindStringSubmatch(group); m != nil {
		return group[:len(group)-len(m[0])], "not_" + slug(m[1])
	}
	if m := whileInRe.FindStringSubmatch(group); m != nil {
		return group[:len(group)-len(m[0])], "in_" + slug(m[1])
	}
	return group, ""
}

// splitTypes breaks a qualifier-free clause on commas and the word "and"
// into lowercase type tokens.
func splitTypes(clause string) []string {
	clause = andRe.ReplaceAllString(clause, ",")

	var out []string
	for _, tok := range strings.Split(clause, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		tok = strings.Trim(tok, ".")
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// slug lowercases a qualifier phrase and joins its words with underscores.
func slug(s string) string {
	s = strings.Trim(strings.ToLower(strings.TrimSpace(s)), ".")
	return strings.Join(strings.Fields(s), "_")
}
