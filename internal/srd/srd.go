// Package srd holds the static 5e SRD vocabularies used by the classifier
// and parsers: damage types, conditions, abilities, skills, and sizes.
// These are constant datasets and require no extraction.
package srd

import "strings"

// DamageTypes lists every damage type in the SRD.
var DamageTypes = []string{
	"acid",
	"bludgeoning",
	"cold",
	"fire",
	"force",
	"lightning",
	"necrotic",
	"piercing",
	"poison",
	"psychic",
	"radiant",
	"slashing",
	"thunder",
}

// Conditions lists every condition in the SRD.
var Conditions = []string{
	"blinded",
	"charmed",
	"deafened",
	"exhaustion",
	"frightened",
	"grappled",
	"incapacitated",
	"invisible",
	"paralyzed",
	"petrified",
	"poisoned",
	"prone",
	"restrained",
	"stunned",
	"unconscious",
}

// Abilities lists the six ability scores in stat-block order.
var Abilities = []string{
	"strength",
	"dexterity",
	"constitution",
	"intelligence",
	"wisdom",
	"charisma",
}

// abilityAbbrevs maps three-letter abbreviations to full ability names.
var abilityAbbrevs = map[string]string{
	"str": "strength",
	"dex": "dexterity",
	"con": "constitution",
	"int": "intelligence",
	"wis": "wisdom",
	"cha": "charisma",
}

// Skills lists every skill in the SRD, lowercased.
var Skills = []string{
	"acrobatics",
	"animal handling",
	"arcana",
	"athletics",
	"deception",
	"history",
	"insight",
	"intimidation",
	"investigation",
	"medicine",
	"nature",
	"perception",
	"performance",
	"persuasion",
	"religion",
	"sleight of hand",
	"stealth",
	"survival",
}

// Sizes lists the creature size categories from smallest to largest.
var Sizes = []string{
	"Tiny",
	"Small",
	"Medium",
	"Large",
	"Huge",
	"Gargantuan",
}

// SpeedModes lists the non-walk movement modes that appear in speed lines.
var SpeedModes = []string{
	"burrow",
	"climb",
	"fly",
	"swim",
}

// AreaShapes lists the area-of-effect shape keywords.
var AreaShapes = []string{
	"cone",
	"cube",
	"sphere",
	"cylinder",
	"line",
}

var (
	damageTypeSet = toSet(DamageTypes)
	conditionSet  = toSet(Conditions)
	abilitySet    = toSet(Abilities)
	skillSet      = toSet(Skills)
	sizeSet       = toSet(Sizes)
	shapeSet      = toSet(AreaShapes)
)

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[strings.ToLower(s)] = true
	}
	return set
}

// IsDamageType reports whether s names a known damage type.
func IsDamageType(s string) bool {
	return damageTypeSet[strings.ToLower(strings.TrimSpace(s))]
}

// IsCondition reports whether s names a known condition.
func IsCondition(s string) bool {
	return conditionSet[strings.ToLower(strings.TrimSpace(s))]
}

// IsAbility reports whether s is a full ability name.
func IsAbility(s string) bool {
	return abilitySet[strings.ToLower(strings.TrimSpace(s))]
}

// IsSkill reports whether s names a known skill.
func IsSkill(s string) bool {
	return skillSet[strings.ToLower(strings.TrimSpace(s))]
}

// IsSize reports whether s is a creature size category.
func IsSize(s string) bool {
	return sizeSet[strings.ToLower(strings.TrimSpace(s))]
}

// IsAreaShape reports whether s is an area shape keyword.
func IsAreaShape(s string) bool {
	return shapeSet[strings.ToLower(strings.TrimSpace(s))]
}

// ExpandAbility resolves an ability name or three-letter abbreviation to the
// full lowercase name. Returns "" if s is neither.
func ExpandAbility(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	if abilitySet[key] {
		return key
	}
	if full, ok := abilityAbbrevs[key]; ok {
		return full
	}
	return ""
}

// AbilityAbbrev returns the canonical three-letter abbreviation for a full
// ability name, or "" if the name is unknown.
func AbilityAbbrev(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	for abbr, full := range abilityAbbrevs {
		if full == key {
			return abbr
		}
	}
	return ""
}
