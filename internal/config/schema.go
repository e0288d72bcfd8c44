package config

import (
	"github.com/dmfielding/bestiary/internal/layout"
	"github.com/dmfielding/bestiary/internal/statblock"
)

// Config holds bestiary configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Layout   LayoutCfg   `mapstructure:"layout" yaml:"layout"`
	Detect   DetectCfg   `mapstructure:"detect" yaml:"detect"`
	Pages    PagesCfg    `mapstructure:"pages" yaml:"pages"`
	Output   OutputCfg   `mapstructure:"output" yaml:"output"`
	Defaults DefaultsCfg `mapstructure:"defaults" yaml:"defaults"`
}

// LayoutCfg describes the column geometry of the source document.
type LayoutCfg struct {
	ColumnMidpoint float64 `mapstructure:"column_midpoint" yaml:"column_midpoint"` // x-coordinate separating the two columns
	SingleColumn   bool    `mapstructure:"single_column" yaml:"single_column"`     // disable column splitting
}

// DetectCfg holds the font tiers and keyword sets shared by boundary
// detection and field classification.
type DetectCfg struct {
	HeaderFontSize  float64  `mapstructure:"header_font_size" yaml:"header_font_size"`     // entity-header tier
	BodyFontSizeMax float64  `mapstructure:"body_font_size_max" yaml:"body_font_size_max"` // body-tier ceiling
	MaxNameLength   int      `mapstructure:"max_name_length" yaml:"max_name_length"`       // reject over-long headers
	SkipHeaders     []string `mapstructure:"skip_headers" yaml:"skip_headers"`             // section keywords, never entity names
	BannerPattern   string   `mapstructure:"banner_pattern" yaml:"banner_pattern"`         // chapter banner regex
	MinFragments    int      `mapstructure:"min_fragments" yaml:"min_fragments"`           // warn when an entity has fewer fragments
}

// PagesCfg bounds the page range of a run. Zero means the full document.
type PagesCfg struct {
	First int `mapstructure:"first" yaml:"first"`
	Last  int `mapstructure:"last" yaml:"last"`
}

// OutputCfg names the dataset a run writes.
type OutputCfg struct {
	Dir     string `mapstructure:"dir" yaml:"dir"`         // dataset directory (defaults under the bestiary home)
	Dataset string `mapstructure:"dataset" yaml:"dataset"` // dataset file stem
}

// DefaultsCfg specifies run defaults.
type DefaultsCfg struct {
	Kind       string `mapstructure:"kind" yaml:"kind"`               // record kind, prefixes every id
	MaxWorkers int    `mapstructure:"max_workers" yaml:"max_workers"` // max concurrent workers
}

// DefaultConfig returns configuration with sensible defaults. The layout and
// font numbers are pre-measured from the reference document.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutCfg{
			ColumnMidpoint: 306.0,
		},
		Detect: DetectCfg{
			HeaderFontSize:  16.0,
			BodyFontSizeMax: 11.0,
			MaxNameLength:   50,
			SkipHeaders:     []string{"Actions", "Reactions", "Legendary Actions", "Lair Actions", "Regional Effects"},
			BannerPattern:   `^\[?[A-Z]\]$`,
			MinFragments:    8,
		},
		Output: OutputCfg{
			Dataset: "bestiary",
		},
		Defaults: DefaultsCfg{
			Kind:       "monster",
			MaxWorkers: 8,
		},
	}
}

// ToLayoutConfig converts the layout section into the form layout.Normalize
// takes.
func (c *Config) ToLayoutConfig() layout.Config {
	return layout.Config{
		ColumnMidpoint: c.Layout.ColumnMidpoint,
		SingleColumn:   c.Layout.SingleColumn,
	}
}

// ToBoundaryConfig converts the detect section into the form
// statblock.NewDetector takes.
func (c *Config) ToBoundaryConfig() statblock.BoundaryConfig {
	return statblock.BoundaryConfig{
		HeaderFontSize: c.Detect.HeaderFontSize,
		MaxNameLength:  c.Detect.MaxNameLength,
		SkipKeywords:   c.Detect.SkipHeaders,
		BannerPattern:  c.Detect.BannerPattern,
	}
}

// ToClassifyConfig converts the detect section into the form
// statblock.NewClassifier takes. The skip headers double as section keywords.
func (c *Config) ToClassifyConfig() statblock.ClassifyConfig {
	return statblock.ClassifyConfig{
		HeaderFontSize:  c.Detect.HeaderFontSize,
		BodyFontSizeMax: c.Detect.BodyFontSizeMax,
		SectionKeywords: c.Detect.SkipHeaders,
	}
}

// Workers returns the effective worker count, falling back to a small
// default when unset.
func (c *Config) Workers() int {
	if c.Defaults.MaxWorkers > 0 {
		return c.Defaults.MaxWorkers
	}
	return 8
}
