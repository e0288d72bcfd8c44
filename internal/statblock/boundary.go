package statblock

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmfielding/bestiary/internal/layout"
)

// BoundaryConfig holds the thresholds and keyword sets for entity boundary
// detection.
type BoundaryConfig struct {
	// HeaderFontSize is the minimum font size of an entity header.
	HeaderFontSize float64
	// MaxNameLength rejects header-sized fragments that are too long to be
	// a name.
	MaxNameLength int
	// SkipKeywords are section headers ("Actions", "Legendary Actions", ...)
	// that must never open an entity. They double as the section markers
	// recorded on groups.
	SkipKeywords []string
	// BannerPattern matches chapter banners (bracketed-letter dividers)
	// that must never open an entity.
	BannerPattern string
}

// Detector partitions an ordered fragment stream into per-entity groups.
type Detector struct {
	cfg    BoundaryConfig
	skip   map[string]bool
	banner *regexp.Regexp
}

// NewDetector compiles a detector from cfg.
func NewDetector(cfg BoundaryConfig) (*Detector, error) {
	if cfg.MaxNameLength <= 0 {
		cfg.MaxNameLength = 50
	}

	skip := make(map[string]bool, len(cfg.SkipKeywords))
	for _, k := range cfg.SkipKeywords {
		skip[strings.ToLower(strings.TrimSpace(k))] = true
	}

	var banner *regexp.Regexp
	if cfg.BannerPattern != "" {
		re, err := regexp.Compile(cfg.BannerPattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile banner pattern: %w", err)
		}
		banner = re
	}

	return &Detector{cfg: cfg, skip: skip, banner: banner}, nil
}

// Detect folds the ordered fragment stream into entity groups. The
// accumulator persists across page changes, so an entity whose header is on
// page N and whose body continues on page N+1 yields a single group.
// Fragments before the first header are discarded. If no header is ever
// found, Detect returns zero groups; the caller surfaces that as a warning.
func (d *Detector) Detect(frags []layout.Fragment) []Group {
	var groups []Group
	var cur *Group
	lastWasHeader := false

	flush := func() {
		if cur != nil && cur.Name != "" {
			groups = append(groups, *cur)
		}
		cur = nil
	}

	for _, f := range frags {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}

		if d.isHeader(f, text) {
			// Contiguous header-tier fragments extend the open header
			// rather than starting a second entity.
			if lastWasHeader && cur != nil {
				cur.Name += " " + text
				cur.Pages = addPage(cur.Pages, f.Page)
				continue
			}
			flush()
			cur = &Group{Name: text, Pages: []int{f.Page}}
			lastWasHeader = true
			continue
		}
		lastWasHeader = false

		if cur == nil {
			continue
		}

		cur.Fragments = append(cur.Fragments, f)
		cur.Pages = addPage(cur.Pages, f.Page)
		if d.skip[strings.ToLower(text)] {
			cur.Sections = append(cur.Sections, text)
		}
	}
	flush()

	return groups
}

// isHeader reports whether a fragment opens a new entity: header-tier font
// size plus the name heuristic (leading uppercase, bounded length, not a
// section keyword or chapter banner).
func (d *Detector) isHeader(f layout.Fragment, text string) bool {
	if f.FontSize < d.cfg.HeaderFontSize {
		return false
	}
	if utf8.RuneCountInString(text) >= d.cfg.MaxNameLength {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text)
	if !unicode.IsUpper(r) {
		return false
	}
	if d.skip[strings.ToLower(text)] {
		return false
	}
	if d.banner != nil && d.banner.MatchString(text) {
		return false
	}
	return true
}

func addPage(pages []int, page int) []int {
	if len(pages) > 0 && pages[len(pages)-1] == page {
		return pages
	}
	return append(pages, page)
}
