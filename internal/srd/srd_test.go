package srd

import "testing"

func TestExpandAbility(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"str", "strength"},
		{"DEX", "dexterity"},
		{"Con", "constitution"},
		{"Wisdom", "wisdom"},
		{"charisma", "charisma"},
		{" int ", "intelligence"},
		{"luck", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExpandAbility(tt.in); got != tt.want {
			t.Errorf("ExpandAbility(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAbilityAbbrev(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"strength", "str"},
		{"Dexterity", "dex"},
		{"charisma", "cha"},
		{"moxie", ""},
	}

	for _, tt := range tests {
		if got := AbilityAbbrev(tt.in); got != tt.want {
			t.Errorf("AbilityAbbrev(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVocabularyMembership(t *testing.T) {
	t.Run("damage_types", func(t *testing.T) {
		if !IsDamageType("Slashing") {
			t.Error("IsDamageType(\"Slashing\") = false, want true")
		}
		if IsDamageType("emotional") {
			t.Error("IsDamageType(\"emotional\") = true, want false")
		}
	})

	t.Run("conditions", func(t *testing.T) {
		if !IsCondition("poisoned") {
			t.Error("IsCondition(\"poisoned\") = false, want true")
		}
		if IsCondition("bored") {
			t.Error("IsCondition(\"bored\") = true, want false")
		}
	})

	t.Run("sizes", func(t *testing.T) {
		if !IsSize("Gargantuan") {
			t.Error("IsSize(\"Gargantuan\") = false, want true")
		}
		if IsSize("Colossal") {
			t.Error("IsSize(\"Colossal\") = true, want false")
		}
	})

	t.Run("skills", func(t *testing.T) {
		if !IsSkill("Sleight of Hand") {
			t.Error("IsSkill(\"Sleight of Hand\") = false, want true")
		}
	})

	t.Run("area_shapes", func(t *testing.T) {
		if !IsAreaShape("cone") {
			t.Error("IsAreaShape(\"cone\") = false, want true")
		}
		if IsAreaShape("donut") {
			t.Error("IsAreaShape(\"donut\") = true, want false")
		}
	})
}
