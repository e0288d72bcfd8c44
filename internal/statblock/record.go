// Package statblock turns ordered text fragments into structured creature
// records: boundary detection groups fragments per entity, and the field
// classifier labels them into stat fields and trait/action sub-records.
package statblock

import (
	"strconv"
	"strings"

	"github.com/dmfielding/bestiary/internal/layout"
)

// Attack types recognized in combat text.
const (
	AttackMeleeWeapon  = "melee_weapon"
	AttackRangedWeapon = "ranged_weapon"
	AttackMeleeSpell   = "melee_spell"
	AttackRangedSpell  = "ranged_spell"
)

// Group is an ordered sequence of fragments believed to belong to one
// entity, produced by the boundary detector. Pages lists the pages the
// entity spans; Sections records section-marker keywords seen in the body.
type Group struct {
	Name      string
	Fragments []layout.Fragment
	Pages     []int
	Sections  []string
}

// Record is one reconstructed creature stat block. The classifier produces
// it unnormalized; later pipeline passes mutate it in place.
type Record struct {
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string `json:"name" yaml:"name"`
	SimpleName string `json:"simple_name,omitempty" yaml:"simple_name,omitempty"`

	Size      string `json:"size,omitempty" yaml:"size,omitempty"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	Subtype   string `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Alignment string `json:"alignment,omitempty" yaml:"alignment,omitempty"`

	ArmorClass int    `json:"armor_class,omitempty" yaml:"armor_class,omitempty"`
	ArmorDesc  string `json:"armor_desc,omitempty" yaml:"armor_desc,omitempty"`
	HitPoints  int    `json:"hit_points,omitempty" yaml:"hit_points,omitempty"`
	HitDice    string `json:"hit_dice,omitempty" yaml:"hit_dice,omitempty"`

	// Speed maps movement mode (walk, fly, swim, ...) to feet per round.
	Speed map[string]int `json:"speed,omitempty" yaml:"speed,omitempty"`
	Hover bool           `json:"hover,omitempty" yaml:"hover,omitempty"`

	Strength     int `json:"strength,omitempty" yaml:"strength,omitempty"`
	Dexterity    int `json:"dexterity,omitempty" yaml:"dexterity,omitempty"`
	Constitution int `json:"constitution,omitempty" yaml:"constitution,omitempty"`
	Intelligence int `json:"intelligence,omitempty" yaml:"intelligence,omitempty"`
	Wisdom       int `json:"wisdom,omitempty" yaml:"wisdom,omitempty"`
	Charisma     int `json:"charisma,omitempty" yaml:"charisma,omitempty"`

	// SavingThrows and Skills map full lowercase names to signed bonuses.
	SavingThrows map[string]int `json:"saving_throws,omitempty" yaml:"saving_throws,omitempty"`
	Skills       map[string]int `json:"skills,omitempty" yaml:"skills,omitempty"`

	Senses    string          `json:"senses,omitempty" yaml:"senses,omitempty"`
	Languages string          `json:"languages,omitempty" yaml:"languages,omitempty"`
	Challenge ChallengeRating `json:"challenge_rating" yaml:"challenge_rating"`

	DamageVulnerabilities []DefenseEntry `json:"damage_vulnerabilities,omitempty" yaml:"damage_vulnerabilities,omitempty"`
	DamageResistances     []DefenseEntry `json:"damage_resistances,omitempty" yaml:"damage_resistances,omitempty"`
	DamageImmunities      []DefenseEntry `json:"damage_immunities,omitempty" yaml:"damage_immunities,omitempty"`
	ConditionImmunities   []DefenseEntry `json:"condition_immunities,omitempty" yaml:"condition_immunities,omitempty"`

	Traits           []*Action `json:"traits,omitempty" yaml:"traits,omitempty"`
	Actions          []*Action `json:"actions,omitempty" yaml:"actions,omitempty"`
	Reactions        []*Action `json:"reactions,omitempty" yaml:"reactions,omitempty"`
	LegendaryActions []*Action `json:"legendary_actions,omitempty" yaml:"legendary_actions,omitempty"`
	LegendaryDesc    string    `json:"legendary_desc,omitempty" yaml:"legendary_desc,omitempty"`

	SourcePages []int `json:"source_pages,omitempty" yaml:"source_pages,omitempty"`

	// Raw defense strings as classified; consumed by the defense
	// normalizer and never serialized.
	RawVulnerabilities     string `json:"-" yaml:"-"`
	RawResistances         string `json:"-" yaml:"-"`
	RawImmunities          string `json:"-" yaml:"-"`
	RawConditionImmunities string `json:"-" yaml:"-"`
}

// Action is one trait, action, reaction, or legendary action. The optional
// structured fields are filled by the combat text parser; a parse miss
// leaves them nil and the action valid with just its text.
type Action struct {
	Name       string `json:"name" yaml:"name"`
	SimpleName string `json:"simple_name,omitempty" yaml:"simple_name,omitempty"`
	Text       string `json:"text" yaml:"text"`

	AttackType    string       `json:"attack_type,omitempty" yaml:"attack_type,omitempty"`
	ToHit         *int         `json:"to_hit,omitempty" yaml:"to_hit,omitempty"`
	Reach         *int         `json:"reach,omitempty" yaml:"reach,omitempty"`
	Range         *Range       `json:"range,omitempty" yaml:"range,omitempty"`
	Damage        *Damage      `json:"damage,omitempty" yaml:"damage,omitempty"`
	DamageOptions []Damage     `json:"damage_options,omitempty" yaml:"damage_options,omitempty"`
	SavingThrow   *SavingThrow `json:"saving_throw,omitempty" yaml:"saving_throw,omitempty"`
	Area          *Area        `json:"area,omitempty" yaml:"area,omitempty"`
}

// Range is a ranged attack's normal and long range in feet.
type Range struct {
	Normal int `json:"normal" yaml:"normal"`
	Long   int `json:"long" yaml:"long"`
}

// Damage is one damage instance: canonical dice formula, the explicit
// average when the source gives one, and the damage type.
type Damage struct {
	Dice    string `json:"dice" yaml:"dice"`
	Average int    `json:"average,omitempty" yaml:"average,omitempty"`
	Type    string `json:"type" yaml:"type"`
}

// SavingThrow is a forced save: full lowercase ability name and DC.
type SavingThrow struct {
	Ability string `json:"ability" yaml:"ability"`
	DC      int    `json:"dc" yaml:"dc"`
}

// Area is an area of effect. Sizes keep the source's measurement as given;
// a diameter is not halved.
type Area struct {
	Shape string `json:"shape" yaml:"shape"`
	Size  int    `json:"size" yaml:"size"`
	Unit  string `json:"unit" yaml:"unit"`
}

// DefenseEntry is one typed damage/condition defense with an optional
// qualifier encoding conditional applicability ("nonmagical",
// "not_<material>", "in_<condition>").
type DefenseEntry struct {
	Type      string `json:"type" yaml:"type"`
	Qualifier string `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`
}

// ChallengeRating is a challenge rating. Whole values serialize as JSON
// integers; fraction-derived values ("1/2" -> 0.5) keep their exact float.
type ChallengeRating float64

// MarshalJSON emits an integer for whole ratings and a float otherwise.
func (cr ChallengeRating) MarshalJSON() ([]byte, error) {
	f := float64(cr)
	if f == float64(int64(f)) {
		return []byte(strconv.FormatInt(int64(f), 10)), nil
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// MarshalYAML mirrors MarshalJSON for YAML output.
func (cr ChallengeRating) MarshalYAML() (any, error) {
	f := float64(cr)
	if f == float64(int64(f)) {
		return int64(f), nil
	}
	return f, nil
}

// ParseChallengeRating converts a challenge string to a rating. Fractions
// like "1/2" become their exact quotient; whole numbers stay whole.
func ParseChallengeRating(s string) (ChallengeRating, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, err2 := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return ChallengeRating(n / d), true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return ChallengeRating(f), true
}
