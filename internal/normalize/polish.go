package normalize

import (
	"regexp"
	"strings"

	"github.com/dmfielding/bestiary/internal/statblock"
)

// Text cleanup passes, applied in this order. Each pass is idempotent, so
// the whole polish is too.
var polishPasses = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`-{2,}`), "-"},
	{regexp.MustCompile(`\bH it\b`), "Hit"},
	{regexp.MustCompile(`(\d+d\d+)\s*([+\-])\s*(\d+)`), "$1$2$3"},
	{regexp.MustCompile(`\s+`), " "},
	{regexp.MustCompile(`([.!?])([A-Z])`), "$1 $2"},
}

// The legendary preamble sentences that wrap the trigger ability's text in
// source. They are stripped here and regenerated as LegendaryDesc after the
// split.
var boilerplateRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[^.!?]*can take (?:\d+|one|two|three) legendary actions?, choosing from the options below\.\s*`),
	regexp.MustCompile(`(?i)\s*only one legendary action(?: option)? can be used at a time,? and only at the end of another creature['\x{2019}]s turn\.\s*`),
	regexp.MustCompile(`(?i)[^.!?]*regains spent legendary actions at the start of its turn\.\s*`),
}

// PolishText runs the fixed cleanup passes over one piece of free text.
func PolishText(s string) string {
	for _, p := range polishPasses {
		s = p.re.ReplaceAllString(s, p.repl)
	}
	return strings.TrimSpace(s)
}

// StripLegendaryBoilerplate removes the three preamble sentences from a
// sub-record's text. Text without them passes through unchanged.
func StripLegendaryBoilerplate(s string) string {
	for _, re := range boilerplateRes {
		s = re.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// PolishRecord cleans every sub-record's text in place and tightens the hit
// dice formula. The regenerated LegendaryDesc is canonical already and is
// left alone.
func PolishRecord(rec *statblock.Record) {
	if rec == nil {
		return
	}
	if rec.HitDice != "" {
		rec.HitDice = PolishText(rec.HitDice)
	}
	for _, list := range [][]*statblock.Action{rec.Traits, rec.Actions, rec.Reactions, rec.LegendaryActions} {
		for _, a := range list {
			a.Text = PolishText(StripLegendaryBoilerplate(a.Text))
		}
	}
}
