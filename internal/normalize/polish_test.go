package normalize

import (
	"testing"

	"github.com/dmfielding/bestiary/internal/statblock"
)

func TestPolishText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dash_runs_collapse", "a 10--foot---pole", "a 10-foot-pole"},
		{"hit_break_repaired", "H it: 7 (1d8 + 3) piercing damage.", "Hit: 7 (1d8+3) piercing damage."},
		{"dice_spacing_tightened", "takes 17 (2d12 + 4) slashing damage", "takes 17 (2d12+4) slashing damage"},
		{"whitespace_collapsed", "one  target.\tHit:   5", "one target. Hit: 5"},
		{"missing_sentence_space", "one target.Hit: 5 damage.The end.", "one target. Hit: 5 damage. The end."},
		{"clean_text_unchanged", "Melee Weapon Attack: +4 to hit, reach 5 ft., one target.", "Melee Weapon Attack: +4 to hit, reach 5 ft., one target."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolishText(tt.in); got != tt.want {
				t.Errorf("PolishText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPolishTextIdempotent(t *testing.T) {
	inputs := []string{
		"H it: 7 (1d8 + 3) piercing damage.One target only.",
		"a 10--foot  pole",
		"plain text with no defects",
	}
	for _, in := range inputs {
		once := PolishText(in)
		twice := PolishText(once)
		if once != twice {
			t.Errorf("PolishText(%q): second application changed %q to %q", in, once, twice)
		}
	}
}

func TestStripLegendaryBoilerplate(t *testing.T) {
	in := "The dragon can take 3 legendary actions, choosing from the options below. " +
		"Only one legendary action option can be used at a time and only at the end of another creature's turn. " +
		"The dragon regains spent legendary actions at the start of its turn. " +
		"The dragon makes a Wisdom (Perception) check."
	want := "The dragon makes a Wisdom (Perception) check."

	if got := StripLegendaryBoilerplate(in); got != want {
		t.Errorf("StripLegendaryBoilerplate() = %q, want %q", got, want)
	}

	plain := "Melee Weapon Attack: +7 to hit, reach 5 ft., one target."
	if got := StripLegendaryBoilerplate(plain); got != plain {
		t.Errorf("StripLegendaryBoilerplate() changed text without boilerplate: %q", got)
	}
}

func TestPolishRecord(t *testing.T) {
	rec := &statblock.Record{
		Name:          "Dragon",
		HitDice:       "17d10 + 85",
		LegendaryDesc: "The dragon can take 3 legendary actions, choosing from the options below.",
		Actions: []*statblock.Action{
			{Name: "Bite", Text: "H it: 17 (2d10 + 6) piercing damage.Plus 4 (1d8) acid damage."},
		},
		Traits: []*statblock.Action{
			{Name: "Amphibious", Text: "The dragon  can breathe air and water."},
		},
	}
	PolishRecord(rec)

	wantBite := "Hit: 17 (2d10+6) piercing damage. Plus 4 (1d8) acid damage."
	if rec.Actions[0].Text != wantBite {
		t.Errorf("Actions[0].Text = %q, want %q", rec.Actions[0].Text, wantBite)
	}
	if rec.HitDice != "17d10+85" {
		t.Errorf("HitDice = %q, want %q", rec.HitDice, "17d10+85")
	}
	if rec.Traits[0].Text != "The dragon can breathe air and water." {
		t.Errorf("Traits[0].Text = %q", rec.Traits[0].Text)
	}
	if rec.LegendaryDesc == "" {
		t.Error("LegendaryDesc was cleared; it must be left alone")
	}
}
