package normalize

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dmfielding/bestiary/internal/statblock"
)

func dragonActions() []*statblock.Action {
	return []*statblock.Action{
		{Name: "Multiattack", Text: "The dragon makes three attacks: one with its bite and two with its claws."},
		{Name: "Bite", Text: "Melee Weapon Attack: +14 to hit, reach 10 ft., one target."},
		{Name: "Frightful Presence", Text: "Each creature within 120 feet must save. The dragon can take 3 legendary actions, choosing from the options below."},
		{Name: "Detect", Text: "The dragon makes a Wisdom (Perception) check."},
		{Name: "Tail Attack", Text: "The dragon makes a tail attack."},
		{Name: "Wing Attack (Costs 2 Actions)", Text: "The dragon beats its wings."},
	}
}

func TestSplitLegendary(t *testing.T) {
	rec := &statblock.Record{Name: "Adult Red Dragon", Actions: dragonActions()}
	SplitLegendary(rec)

	t.Run("trigger_stays_regular", func(t *testing.T) {
		wantRegular := []string{"Multiattack", "Bite", "Frightful Presence"}
		var got []string
		for _, a := range rec.Actions {
			got = append(got, a.Name)
		}
		if !reflect.DeepEqual(got, wantRegular) {
			t.Errorf("regular actions = %v, want %v", got, wantRegular)
		}
	})

	t.Run("everything_after_trigger_is_legendary", func(t *testing.T) {
		wantLegendary := []string{"Detect", "Tail Attack", "Wing Attack (Costs 2 Actions)"}
		var got []string
		for _, a := range rec.LegendaryActions {
			got = append(got, a.Name)
		}
		if !reflect.DeepEqual(got, wantLegendary) {
			t.Errorf("legendary actions = %v, want %v", got, wantLegendary)
		}
	})

	t.Run("desc_regenerated", func(t *testing.T) {
		if !strings.Contains(rec.LegendaryDesc, "The adult red dragon can take 3 legendary actions") {
			t.Errorf("LegendaryDesc = %q, want regenerated preamble", rec.LegendaryDesc)
		}
		if !strings.Contains(rec.LegendaryDesc, "regains spent legendary actions at the start of its turn.") {
			t.Errorf("LegendaryDesc = %q, missing closing sentence", rec.LegendaryDesc)
		}
	})
}

func TestSplitLegendaryTotality(t *testing.T) {
	actions := dragonActions()
	rec := &statblock.Record{Name: "Adult Red Dragon", Actions: dragonActions()}
	SplitLegendary(rec)

	counts := make(map[string]int)
	for _, a := range actions {
		counts[a.Name]++
	}
	for _, a := range rec.Actions {
		counts[a.Name]--
	}
	for _, a := range rec.LegendaryActions {
		counts[a.Name]--
	}
	for name, n := range counts {
		if n != 0 {
			t.Errorf("action %q lost or duplicated by split (balance %d)", name, n)
		}
	}
}

func TestSplitLegendaryEdgeCases(t *testing.T) {
	t.Run("no_marker_no_split", func(t *testing.T) {
		rec := &statblock.Record{Name: "Goblin", Actions: []*statblock.Action{
			{Name: "Scimitar", Text: "Melee Weapon Attack: +4 to hit."},
		}}
		SplitLegendary(rec)
		if len(rec.Actions) != 1 || len(rec.LegendaryActions) != 0 {
			t.Errorf("Actions = %d, LegendaryActions = %d, want 1, 0", len(rec.Actions), len(rec.LegendaryActions))
		}
		if rec.LegendaryDesc != "" {
			t.Errorf("LegendaryDesc = %q, want empty", rec.LegendaryDesc)
		}
	})

	t.Run("cost_name_routed_without_marker", func(t *testing.T) {
		rec := &statblock.Record{Name: "Lich", Actions: []*statblock.Action{
			{Name: "Paralyzing Touch", Text: "Melee Spell Attack: +12 to hit."},
			{Name: "Disrupt Life (Costs 3 Actions)", Text: "Each non-undead creature within 20 feet takes damage."},
		}}
		SplitLegendary(rec)
		if len(rec.Actions) != 1 || rec.Actions[0].Name != "Paralyzing Touch" {
			t.Errorf("regular actions = %+v", rec.Actions)
		}
		if len(rec.LegendaryActions) != 1 || rec.LegendaryActions[0].Name != "Disrupt Life (Costs 3 Actions)" {
			t.Errorf("legendary actions = %+v", rec.LegendaryActions)
		}
	})

	t.Run("word_count_in_marker", func(t *testing.T) {
		rec := &statblock.Record{Name: "Sphinx", Actions: []*statblock.Action{
			{Name: "Claw", Text: "The sphinx can take two legendary actions, choosing from the options below."},
			{Name: "Teleport", Text: "The sphinx magically teleports."},
		}}
		SplitLegendary(rec)
		if !strings.Contains(rec.LegendaryDesc, "can take 2 legendary actions") {
			t.Errorf("LegendaryDesc = %q, want count 2", rec.LegendaryDesc)
		}
	})

	t.Run("classifier_routed_legendary_kept", func(t *testing.T) {
		rec := &statblock.Record{
			Name:             "Dragon",
			Actions:          []*statblock.Action{{Name: "Bite", Text: "Melee Weapon Attack."}},
			LegendaryActions: []*statblock.Action{{Name: "Detect", Text: "The dragon makes a check."}},
		}
		SplitLegendary(rec)
		if len(rec.LegendaryActions) != 1 {
			t.Fatalf("LegendaryActions = %d, want 1", len(rec.LegendaryActions))
		}
		if rec.LegendaryDesc == "" {
			t.Error("LegendaryDesc empty, want default-count preamble")
		}
	})
}

func TestSplitLegendaryIdempotent(t *testing.T) {
	rec := &statblock.Record{Name: "Adult Red Dragon", Actions: dragonActions()}
	SplitLegendary(rec)

	regular := len(rec.Actions)
	legendary := len(rec.LegendaryActions)
	desc := rec.LegendaryDesc

	SplitLegendary(rec)
	if len(rec.Actions) != regular || len(rec.LegendaryActions) != legendary {
		t.Errorf("second split changed partition: %d/%d, want %d/%d",
			len(rec.Actions), len(rec.LegendaryActions), regular, legendary)
	}
	if rec.LegendaryDesc != desc {
		t.Errorf("second split changed LegendaryDesc to %q", rec.LegendaryDesc)
	}
}
