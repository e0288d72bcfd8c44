package statblock

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmfielding/bestiary/internal/layout"
	"github.com/dmfielding/bestiary/internal/srd"
)

// Sentinel errors for per-entity classification failures. These abort the
// affected entity only, never the run.
var (
	// ErrEmptyGroup is returned for a group with no body fragments.
	ErrEmptyGroup = errors.New("entity has no fragments")

	// ErrMissingName is returned when a group carries no usable name.
	ErrMissingName = errors.New("entity has no name")
)

// ClassifyConfig holds the font tiers and section keywords for field
// classification.
type ClassifyConfig struct {
	// HeaderFontSize is the entity-header tier; fragments at or above it
	// never occur inside a well-formed group body.
	HeaderFontSize float64
	// BodyFontSizeMax is the body-tier ceiling. Non-bold fragments above it
	// are treated as sub-header weight.
	BodyFontSizeMax float64
	// SectionKeywords switch the sub-record target list ("Actions",
	// "Reactions", "Legendary Actions", ...).
	SectionKeywords []string
}

// fragmentClass is the structural class of one fragment, decided purely
// from font metadata and the keyword sets.
type fragmentClass int

const (
	classBody fragmentClass = iota
	classLabel
	classSubHeader
	classSection
	classHeader
)

// fieldKind identifies the record field a stat label maps to.
type fieldKind int

const (
	fieldNone fieldKind = iota
	fieldArmorClass
	fieldHitPoints
	fieldSpeed
	fieldAbility
	fieldSavingThrows
	fieldSkills
	fieldVulnerabilities
	fieldResistances
	fieldImmunities
	fieldConditionImmunities
	fieldSenses
	fieldLanguages
	fieldChallenge
)

// statLabels maps each recognized stat-label keyword to exactly one field.
var statLabels = map[string]fieldKind{
	"armor class":            fieldArmorClass,
	"hit points":             fieldHitPoints,
	"speed":                  fieldSpeed,
	"str":                    fieldAbility,
	"dex":                    fieldAbility,
	"con":                    fieldAbility,
	"int":                    fieldAbility,
	"wis":                    fieldAbility,
	"cha":                    fieldAbility,
	"saving throws":          fieldSavingThrows,
	"skills":                 fieldSkills,
	"damage vulnerabilities": fieldVulnerabilities,
	"damage resistances":     fieldResistances,
	"damage immunities":      fieldImmunities,
	"condition immunities":   fieldConditionImmunities,
	"senses":                 fieldSenses,
	"languages":              fieldLanguages,
	"challenge":              fieldChallenge,
}

// listKind identifies the sub-record list currently being filled.
type listKind int

const (
	listTraits listKind = iota
	listActions
	listReactions
	listLegendary
	listIgnored
)

// sectionTargets routes section keywords to sub-record lists. Lair and
// regional sections are outside the stat block proper and are dropped.
var sectionTargets = map[string]listKind{
	"actions":           listActions,
	"reactions":         listReactions,
	"legendary actions": listLegendary,
	"lair actions":      listIgnored,
	"regional effects":  listIgnored,
}

var (
	metaRe  = regexp.MustCompile(`^(Tiny|Small|Medium|Large|Huge|Gargantuan)\s+([^,(]+?)(?:\s*\(([^)]+)\))?,\s*(.+)$`)
	acRe    = regexp.MustCompile(`^(\d+)\s*(?:\((.*?)\))?`)
	scoreRe = regexp.MustCompile(`(\d+)\s*\(\s*[+\-\x{2212}]?\d+\s*\)`)
	speedRe = regexp.MustCompile(`^(?:(burrow|climb|fly|swim)\.?\s+)?(\d+)\s*ft`)
	saveRe  = regexp.MustCompile(`^([A-Za-z]{3})\s*([+\-\x{2212}])\s*(\d+)$`)
	skillRe = regexp.MustCompile(`^([A-Za-z' ]+?)\s*([+\-\x{2212}])\s*(\d+)$`)
)

// Classifier partitions one entity's fragments into stat fields and
// trait/action sub-records.
type Classifier struct {
	cfg      ClassifyConfig
	sections map[string]listKind
}

// NewClassifier builds a classifier. When cfg names no section keywords the
// built-in set is used.
func NewClassifier(cfg ClassifyConfig) *Classifier {
	sections := make(map[string]listKind)
	if len(cfg.SectionKeywords) == 0 {
		for k, v := range sectionTargets {
			sections[k] = v
		}
	} else {
		for _, k := range cfg.SectionKeywords {
			key := strings.ToLower(strings.TrimSpace(k))
			if target, ok := sectionTargets[key]; ok {
				sections[key] = target
			} else {
				sections[key] = listIgnored
			}
		}
	}
	return &Classifier{cfg: cfg, sections: sections}
}

// Classify converts one group into an unnormalized record. Recognized stat
// labels each map to exactly one field; unrecognized sub-header fragments
// open trait/action sub-records and are never dropped.
func (c *Classifier) Classify(g Group) (*Record, error) {
	if len(g.Fragments) == 0 {
		return nil, ErrEmptyGroup
	}
	if strings.TrimSpace(g.Name) == "" {
		return nil, ErrMissingName
	}

	run := &classifyRun{
		c: c,
		rec: &Record{
			Name:        strings.TrimSpace(g.Name),
			SourcePages: g.Pages,
		},
	}

	for _, f := range g.Fragments {
		run.step(f)
	}
	run.finish()

	return run.rec, nil
}

// classifyRun is the accumulator threaded through one group's fragments.
type classifyRun struct {
	c        *Classifier
	rec      *Record
	target   listKind
	action   *Action
	field    fieldKind
	buf      []string
	queue    []string
	metaSeen bool
}

func (r *classifyRun) step(f layout.Fragment) {
	text := strings.TrimSpace(f.Text)
	if text == "" {
		return
	}

	switch r.c.classify(f, text) {
	case classSection:
		r.flushField()
		r.flushAction()
		r.target = r.c.sections[strings.ToLower(text)]

	case classLabel:
		r.flushField()
		r.flushAction()
		key := strings.ToLower(text)
		kind := statLabels[key]
		if kind == fieldAbility {
			r.queue = append(r.queue, srd.ExpandAbility(key))
			return
		}
		r.field = kind

	case classSubHeader:
		r.flushField()
		// Two consecutive name-weight fragments with no body between them
		// form one name, never an empty-text sub-record.
		if r.action != nil && strings.TrimSpace(r.action.Text) == "" {
			r.action.Name += " " + trimName(text)
			return
		}
		r.flushAction()
		r.action = &Action{Name: trimName(text)}

	case classBody:
		r.body(text)

	case classHeader:
		// Header-tier text inside a body is residue from a rejected
		// header candidate; it carries no field content.
	}
}

func (r *classifyRun) body(text string) {
	// Ability scores arrive as "18 (+4)" runs after their labels.
	if len(r.queue) > 0 {
		if m := scoreRe.FindAllStringSubmatch(text, -1); len(m) > 0 {
			for _, match := range m {
				if len(r.queue) == 0 {
					break
				}
				score, _ := strconv.Atoi(match[1])
				setAbility(r.rec, r.queue[0], score)
				r.queue = r.queue[1:]
			}
			return
		}
	}

	// The first body line after the header is the size/type/alignment
	// subtitle.
	if !r.metaSeen && r.field == fieldNone && r.action == nil {
		if m := metaRe.FindStringSubmatch(text); m != nil {
			r.rec.Size = m[1]
			r.rec.Type = strings.ToLower(strings.TrimSpace(m[2]))
			r.rec.Subtype = strings.ToLower(strings.TrimSpace(m[3]))
			r.rec.Alignment = strings.ToLower(strings.TrimSpace(m[4]))
			r.metaSeen = true
			return
		}
	}

	if r.field != fieldNone {
		r.buf = append(r.buf, text)
		return
	}
	if r.action != nil {
		if r.action.Text == "" {
			r.action.Text = text
		} else {
			r.action.Text += " " + text
		}
	}
}

func (r *classifyRun) finish() {
	r.flushField()
	r.flushAction()
}

func (r *classifyRun) flushField() {
	if r.field == fieldNone {
		return
	}
	value := strings.TrimSpace(strings.Join(r.buf, " "))
	setField(r.rec, r.field, value)
	r.field = fieldNone
	r.buf = r.buf[:0]
}

func (r *classifyRun) flushAction() {
	if r.action == nil {
		return
	}
	r.action.Text = strings.TrimSpace(r.action.Text)

	switch r.target {
	case listTraits:
		r.rec.Traits = append(r.rec.Traits, r.action)
	case listActions:
		r.rec.Actions = append(r.rec.Actions, r.action)
	case listReactions:
		r.rec.Reactions = append(r.rec.Reactions, r.action)
	case listLegendary:
		r.rec.LegendaryActions = append(r.rec.LegendaryActions, r.action)
	case listIgnored:
	}
	r.action = nil
}

// classify is the pure structural classification of one fragment.
func (c *Classifier) classify(f layout.Fragment, text string) fragmentClass {
	if _, ok := c.sections[strings.ToLower(text)]; ok {
		return classSection
	}
	if f.FontSize >= c.cfg.HeaderFontSize && c.cfg.HeaderFontSize > 0 {
		return classHeader
	}
	if f.Bold || (c.cfg.BodyFontSizeMax > 0 && f.FontSize > c.cfg.BodyFontSizeMax) {
		if _, ok := statLabels[strings.ToLower(text)]; ok {
			return classLabel
		}
		return classSubHeader
	}
	return classBody
}

func setField(rec *Record, kind fieldKind, value string) {
	switch kind {
	case fieldArmorClass:
		if m := acRe.FindStringSubmatch(value); m != nil {
			rec.ArmorClass, _ = strconv.Atoi(m[1])
			rec.ArmorDesc = m[2]
		}
	case fieldHitPoints:
		if m := acRe.FindStringSubmatch(value); m != nil {
			rec.HitPoints, _ = strconv.Atoi(m[1])
			rec.HitDice = m[2]
		}
	case fieldSpeed:
		rec.Speed, rec.Hover = parseSpeed(value)
	case fieldSavingThrows:
		rec.SavingThrows = parseSaves(value)
	case fieldSkills:
		rec.Skills = parseSkills(value)
	case fieldVulnerabilities:
		rec.RawVulnerabilities = value
	case fieldResistances:
		rec.RawResistances = value
	case fieldImmunities:
		rec.RawImmunities = value
	case fieldConditionImmunities:
		rec.RawConditionImmunities = value
	case fieldSenses:
		rec.Senses = value
	case fieldLanguages:
		rec.Languages = value
	case fieldChallenge:
		if fields := strings.Fields(value); len(fields) > 0 {
			if cr, ok := ParseChallengeRating(fields[0]); ok {
				rec.Challenge = cr
			}
		}
	}
}

func setAbility(rec *Record, name string, score int) {
	switch name {
	case "strength":
		rec.Strength = score
	case "dexterity":
		rec.Dexterity = score
	case "constitution":
		rec.Constitution = score
	case "intelligence":
		rec.Intelligence = score
	case "wisdom":
		rec.Wisdom = score
	case "charisma":
		rec.Charisma = score
	}
}

// parseSpeed converts a speed line ("40 ft., fly 80 ft. (hover)") to a
// mode map. The bare leading number is the walk speed.
func parseSpeed(value string) (map[string]int, bool) {
	speed := make(map[string]int)
	hover := false

	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(strings.ToLower(part), "(hover)") {
			hover = true
		}
		m := speedRe.FindStringSubmatch(strings.ToLower(part))
		if m == nil {
			continue
		}
		mode := m[1]
		if mode == "" {
			mode = "walk"
		}
		feet, _ := strconv.Atoi(m[2])
		speed[mode] = feet
	}

	if len(speed) == 0 {
		return nil, hover
	}
	return speed, hover
}

// parseSaves converts "Dex +5, Con +11" into full-name keyed bonuses.
func parseSaves(value string) map[string]int {
	saves := make(map[string]int)
	for _, part := range strings.Split(value, ",") {
		m := saveRe.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		ability := srd.ExpandAbility(m[1])
		if ability == "" {
			continue
		}
		saves[ability] = signedInt(m[2], m[3])
	}
	if len(saves) == 0 {
		return nil
	}
	return saves
}

// parseSkills converts "Perception +10, Stealth +5" into lowercase skill
// bonuses. Unknown skill names are kept; the source is authoritative.
func parseSkills(value string) map[string]int {
	skills := make(map[string]int)
	for _, part := range strings.Split(value, ",") {
		m := skillRe.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(m[1]))
		skills[name] = signedInt(m[2], m[3])
	}
	if len(skills) == 0 {
		return nil
	}
	return skills
}

func signedInt(sign, digits string) int {
	n, _ := strconv.Atoi(digits)
	if sign == "-" || sign == "−" {
		return -n
	}
	return n
}

func trimName(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "."))
}
