package normalize

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dmfielding/bestiary/internal/statblock"
)

func TestCanonicalize(t *testing.T) {
	records := []*statblock.Record{
		{
			Name: "Adult Red Dragon",
			Actions: []*statblock.Action{
				{Name: "Bite.", Text: "Melee Weapon Attack."},
			},
			DamageResistances: []statblock.DefenseEntry{
				{Type: "Fire"},
				{Type: "fire"},
			},
		},
		{Name: "Goblin"},
	}

	kept, issues := Canonicalize(records, "monster")
	if len(issues) != 0 {
		t.Fatalf("Canonicalize() issues = %+v, want none", issues)
	}
	if len(kept) != 2 {
		t.Fatalf("Canonicalize() kept %d records, want 2", len(kept))
	}

	t.Run("ids_assigned", func(t *testing.T) {
		if kept[0].ID != "monster:adult_red_dragon" {
			t.Errorf("ID = %q, want %q", kept[0].ID, "monster:adult_red_dragon")
		}
		if kept[0].SimpleName != "adult_red_dragon" {
			t.Errorf("SimpleName = %q, want %q", kept[0].SimpleName, "adult_red_dragon")
		}
	})

	t.Run("sub_record_simple_names", func(t *testing.T) {
		if kept[0].Actions[0].SimpleName != "bite" {
			t.Errorf("Actions[0].SimpleName = %q, want %q", kept[0].Actions[0].SimpleName, "bite")
		}
	})

	t.Run("defense_lists_deduped", func(t *testing.T) {
		want := []statblock.DefenseEntry{{Type: "fire"}}
		if !reflect.DeepEqual(kept[0].DamageResistances, want) {
			t.Errorf("DamageResistances = %+v, want %+v", kept[0].DamageResistances, want)
		}
	})
}

func TestCanonicalizeDrops(t *testing.T) {
	t.Run("missing_name", func(t *testing.T) {
		kept, issues := Canonicalize([]*statblock.Record{{Name: "  "}}, "monster")
		if len(kept) != 0 {
			t.Errorf("kept %d records, want 0", len(kept))
		}
		if len(issues) != 1 || !strings.Contains(issues[0].Message, "no name") {
			t.Errorf("issues = %+v, want one missing-name issue", issues)
		}
	})

	t.Run("name_normalizes_empty", func(t *testing.T) {
		kept, issues := Canonicalize([]*statblock.Record{{Name: "!!!"}}, "monster")
		if len(kept) != 0 || len(issues) != 1 {
			t.Errorf("kept = %d, issues = %+v", len(kept), issues)
		}
	})

	t.Run("unnamed_sub_record", func(t *testing.T) {
		rec := &statblock.Record{
			Name:    "Ghost",
			Actions: []*statblock.Action{{Name: "", Text: "orphaned body text"}},
		}
		kept, issues := Canonicalize([]*statblock.Record{rec}, "monster")
		if len(kept) != 0 {
			t.Errorf("kept %d records, want 0", len(kept))
		}
		if len(issues) != 1 || !strings.Contains(issues[0].Message, "no usable name") {
			t.Errorf("issues = %+v, want one unnamed sub-record issue", issues)
		}
	})

	t.Run("duplicate_id_keeps_first", func(t *testing.T) {
		first := &statblock.Record{Name: "Goblin", HitPoints: 7}
		second := &statblock.Record{Name: "Goblin", HitPoints: 10}
		kept, issues := Canonicalize([]*statblock.Record{first, second}, "monster")
		if len(kept) != 1 || kept[0].HitPoints != 7 {
			t.Fatalf("kept = %+v, want only the first goblin", kept)
		}
		if len(issues) != 1 || !strings.Contains(issues[0].Message, "duplicate id") {
			t.Errorf("issues = %+v, want one duplicate-id issue", issues)
		}
	})
}

func TestCanonicalizeIdempotent(t *testing.T) {
	records := []*statblock.Record{
		{
			Name:   "Adult Red Dragon",
			Traits: []*statblock.Action{{Name: "Legendary Resistance (3/Day)", Text: "text"}},
			DamageResistances: []statblock.DefenseEntry{
				{Type: "cold"},
				{Type: "bludgeoning", Qualifier: "nonmagical"},
			},
		},
	}

	once, issues := Canonicalize(records, "monster")
	if len(issues) != 0 {
		t.Fatalf("first pass issues = %+v", issues)
	}
	twice, issues := Canonicalize(once, "monster")
	if len(issues) != 0 {
		t.Fatalf("second pass issues = %+v", issues)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Error("second canonicalization changed records")
	}
}
