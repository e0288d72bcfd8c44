package normalize

import (
	"fmt"
	"strings"

	"github.com/dmfielding/bestiary/internal/defense"
	"github.com/dmfielding/bestiary/internal/statblock"
)

// Issue is a per-record canonicalization problem. Fatal issues drop the
// record; duplicate IDs drop the later record.
type Issue struct {
	Record  string
	Message string
}

// Canonicalize assigns simple names and stable IDs to every record and
// sub-record, re-normalizes the defense lists, and drops records that are
// structurally invalid or whose ID duplicates an earlier record. Records
// keep their input order. Running it on its own output yields the same
// records and no new issues.
func Canonicalize(records []*statblock.Record, kind string) ([]*statblock.Record, []Issue) {
	var kept []*statblock.Record
	var issues []Issue
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		if rec == nil {
			continue
		}
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			issues = append(issues, Issue{Message: "record has no name"})
			continue
		}
		simple := NormalizeID(name)
		if simple == "" {
			issues = append(issues, Issue{Record: name, Message: "name normalizes to an empty id"})
			continue
		}

		if bad := nameSubRecords(rec); bad != "" {
			issues = append(issues, Issue{Record: name, Message: bad})
			continue
		}

		rec.Name = name
		rec.SimpleName = simple
		rec.ID = kind + ":" + simple

		if seen[rec.ID] {
			issues = append(issues, Issue{Record: name, Message: fmt.Sprintf("duplicate id %s, keeping first occurrence", rec.ID)})
			continue
		}
		seen[rec.ID] = true

		rec.DamageVulnerabilities = defense.NormalizeEntries(rec.DamageVulnerabilities)
		rec.DamageResistances = defense.NormalizeEntries(rec.DamageResistances)
		rec.DamageImmunities = defense.NormalizeEntries(rec.DamageImmunities)
		rec.ConditionImmunities = defense.NormalizeEntries(rec.ConditionImmunities)

		kept = append(kept, rec)
	}
	return kept, issues
}

// nameSubRecords derives simple names for every sub-record, or returns a
// non-empty message naming the first sub-record that has no usable name.
func nameSubRecords(rec *statblock.Record) string {
	lists := map[string][]*statblock.Action{
		"trait":            rec.Traits,
		"action":           rec.Actions,
		"reaction":         rec.Reactions,
		"legendary action": rec.LegendaryActions,
	}
	for _, label := range []string{"trait", "action", "reaction", "legendary action"} {
		for i, a := range lists[label] {
			name := strings.TrimSpace(a.Name)
			simple := NormalizeID(name)
			if simple == "" {
				return fmt.Sprintf("%s %d has no usable name", label, i)
			}
			a.Name = name
			a.SimpleName = simple
		}
	}
	return ""
}
