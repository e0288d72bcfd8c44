package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmfielding/bestiary/internal/statblock"
)

var legendaryMarkerRe = regexp.MustCompile(`(?i)can take (\d+|one|two|three) legendary actions`)

// SplitLegendary partitions rec.Actions into regular actions and legendary
// actions. The split is a two-state machine: everything after the first
// action whose text carries the "can take N legendary actions" marker is
// legendary. The trigger itself stays regular and supplies the count for
// the regenerated LegendaryDesc. Independently of the marker, an action
// whose name contains "(Cost" or whose name or text mentions "legendary
// action" is routed to the legendary list. No action is lost or duplicated.
func SplitLegendary(rec *statblock.Record) {
	if rec == nil {
		return
	}

	var regular, legendary []*statblock.Action
	collecting := false
	count := 0

	for _, a := range rec.Actions {
		if !collecting {
			if m := legendaryMarkerRe.FindStringSubmatch(a.Text); m != nil {
				// The trigger typically also describes a regular ability.
				regular = append(regular, a)
				count = markerCount(m[1])
				collecting = true
				continue
			}
		}
		if collecting || isLegendary(a) {
			legendary = append(legendary, a)
			continue
		}
		regular = append(regular, a)
	}

	rec.Actions = regular
	rec.LegendaryActions = append(rec.LegendaryActions, legendary...)

	if len(rec.LegendaryActions) > 0 {
		if count == 0 {
			count = 3
		}
		rec.LegendaryDesc = legendaryDesc(rec.Name, count)
	}
}

func isLegendary(a *statblock.Action) bool {
	if strings.Contains(a.Name, "(Cost") {
		return true
	}
	return strings.Contains(strings.ToLower(a.Name+" "+a.Text), "legendary action")
}

func markerCount(word string) int {
	switch strings.ToLower(word) {
	case "one":
		return 1
	case "two":
		return 2
	case "three":
		return 3
	}
	n, _ := strconv.Atoi(word)
	return n
}

func legendaryDesc(name string, count int) string {
	subject := strings.ToLower(strings.TrimSpace(name))
	return fmt.Sprintf("The %s can take %d legendary actions, choosing from the options below. "+
		"Only one legendary action option can be used at a time and only at the end of another creature's turn. "+
		"The %s regains spent legendary actions at the start of its turn.", subject, count, subject)
}
