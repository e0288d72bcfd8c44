// Package layout models positioned text fragments and establishes their
// reading order for a fixed two-column page layout.
package layout

// Column assignments for a fragment within a page.
const (
	// ColumnSingle marks fragments on single-column pages.
	ColumnSingle = 0
	// ColumnLeft marks fragments left of the configured midpoint.
	ColumnLeft = 1
	// ColumnRight marks fragments at or right of the configured midpoint.
	ColumnRight = 2
)

// Fragment is one positioned run of text from the rendering layer.
// Y grows downward (0 at the top of the page), so ascending Y is
// top-to-bottom reading order. Fragments are produced once by ingest
// and treated as immutable afterwards.
type Fragment struct {
	Page     int     `json:"page" yaml:"page"`
	Column   int     `json:"column" yaml:"column"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Text     string  `json:"text" yaml:"text"`
	FontName string  `json:"font_name" yaml:"font_name"`
	FontSize float64 `json:"font_size" yaml:"font_size"`
	Bold     bool    `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic   bool    `json:"italic,omitempty" yaml:"italic,omitempty"`
}
