// Package mechanics derives structured combat data from sub-record text.
// Rules form an ordered list of (pattern, extractor) pairs evaluated against
// the unmodified text; each contributes optional fields and a miss is
// silent. The text itself is never rewritten.
package mechanics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dmfielding/bestiary/internal/srd"
	"github.com/dmfielding/bestiary/internal/statblock"
)

var (
	attackRe = regexp.MustCompile(`(?i)\b(Melee|Ranged)\s+(Weapon|Spell)\s+Attack\b`)
	toHitRe  = regexp.MustCompile(`([+\-\x{2212}])\s*(\d+)\s+to\s+hit`)
	reachRe  = regexp.MustCompile(`(?i)\breach\s+(\d+)\s*ft`)
	rangeRe  = regexp.MustCompile(`(?i)\brange\s+(\d+)/(\d+)\s*ft`)
	damageRe = regexp.MustCompile(`(?i)(?:(\d+)\s*\()?\s*(\d+d\d+(?:\s*[+\-\x{2212}]\s*\d+)?)\s*\)?\s+([a-z]+)\s+damage`)
	saveRe   = regexp.MustCompile(`(?i)\b([A-Za-z]+)\s+saving\s+throw`)
	dcRe     = regexp.MustCompile(`(?i)\bDC\s+(\d+)`)
	areaRe   = regexp.MustCompile(`(?i)\b(\d+)[\s-]*foot(?:[\s-]*(radius|diameter))?[\s-]*(cone|cube|sphere|cylinder|line)?`)

	diceTightenRe = regexp.MustCompile(`(\d+d\d+)\s*([+\-])\s*(\d+)`)
)

// rule pairs a pattern with the extractor that consumes its matches. The
// extractor also receives the full text for rules that need a second
// pattern (the saving-throw DC).
type rule struct {
	re    *regexp.Regexp
	apply func(a *statblock.Action, text string, matches [][]string)
}

// Rule order is precedence: reach is extracted before range, and the two
// are mutually exclusive per sub-record.
var rules = []rule{
	{attackRe, applyAttack},
	{toHitRe, applyToHit},
	{reachRe, applyReach},
	{rangeRe, applyRange},
	{damageRe, applyDamage},
	{saveRe, applySave},
	{areaRe, applyArea},
}

// Enrich recomputes every structured mechanics field of a from its text.
// Re-running on already enriched input yields the same result because the
// text is never mutated.
func Enrich(a *statblock.Action) {
	if a == nil {
		return
	}

	a.AttackType = ""
	a.ToHit = nil
	a.Reach = nil
	a.Range = nil
	a.Damage = nil
	a.DamageOptions = nil
	a.SavingThrow = nil
	a.Area = nil

	if a.Text == "" {
		return
	}
	for _, r := range rules {
		matches := r.re.FindAllStringSubmatch(a.Text, -1)
		if len(matches) == 0 {
			continue
		}
		r.apply(a, a.Text, matches)
	}
}

// EnrichRecord enriches every sub-record of rec.
func EnrichRecord(rec *statblock.Record) {
	if rec == nil {
		return
	}
	for _, list := range [][]*statblock.Action{rec.Traits, rec.Actions, rec.Reactions, rec.LegendaryActions} {
		for _, a := range list {
			Enrich(a)
		}
	}
}

// NormalizeDice rewrites a dice expression to the canonical NdM+K form with
// no internal whitespace. The result is a fixed point of the function.
func NormalizeDice(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "−", "-")
	return diceTightenRe.ReplaceAllString(s, "$1$2$3")
}

func applyAttack(a *statblock.Action, _ string, matches [][]string) {
	m := matches[0]
	a.AttackType = strings.ToLower(m[1]) + "_" + strings.ToLower(m[2])
}

func applyToHit(a *statblock.Action, _ string, matches [][]string) {
	m := matches[0]
	n, _ := strconv.Atoi(m[2])
	if m[1] != "+" {
		n = -n
	}
	a.ToHit = &n
}

func applyReach(a *statblock.Action, _ string, matches [][]string) {
	n, _ := strconv.Atoi(matches[0][1])
	a.Reach = &n
}

func applyRange(a *statblock.Action, _ string, matches [][]string) {
	// Reach wins when text carries both ("reach 5 ft. or range 20/60 ft.").
	if a.Reach != nil {
		return
	}
	m := matches[0]
	normal, _ := strconv.Atoi(m[1])
	long, _ := strconv.Atoi(m[2])
	a.Range = &statblock.Range{Normal: normal, Long: long}
}

func applyDamage(a *statblock.Action, _ string, matches [][]string) {
	for _, m := range matches {
		typ := strings.ToLower(m[3])
		if !srd.IsDamageType(typ) {
			continue
		}
		dmg := statblock.Damage{Dice: NormalizeDice(m[2]), Type: typ}
		if m[1] != "" {
			dmg.Average, _ = strconv.Atoi(m[1])
		}
		if a.Damage == nil {
			a.Damage = &dmg
		} else {
			a.DamageOptions = append(a.DamageOptions, dmg)
		}
	}
}

func applySave(a *statblock.Action, text string, matches [][]string) {
	dc := dcRe.FindStringSubmatch(text)
	if dc == nil {
		return
	}
	for _, m := range matches {
		ability := srd.ExpandAbility(m[1])
		if ability == "" {
			continue
		}
		n, _ := strconv.Atoi(dc[1])
		a.SavingThrow = &statblock.SavingThrow{Ability: ability, DC: n}
		return
	}
}

func applyArea(a *statblock.Action, _ string, matches [][]string) {
	for _, m := range matches {
		shape := strings.ToLower(m[3])
		if shape == "" {
			// A bare radius or diameter measurement implies a sphere. The
			// diameter value is kept as given, not halved.
			switch strings.ToLower(m[2]) {
			case "radius", "diameter":
				shape = "sphere"
			default:
				continue
			}
		}
		size, _ := strconv.Atoi(m[1])
		a.Area = &statblock.Area{Shape: shape, Size: size, Unit: "feet"}
		return
	}
}
