package layout

import "sort"

// Config holds the layout constants for column assignment. The midpoint is a
// fixed x-coordinate pre-measured from the source document.
type Config struct {
	// ColumnMidpoint is the x-coordinate separating the two columns.
	ColumnMidpoint float64
	// SingleColumn disables column splitting entirely.
	SingleColumn bool
}

// Normalize assigns each fragment a column and returns a new slice in total
// reading order: (page, column, y, x). Within a page the left column is fully
// consumed before the right column. The input is not modified.
func Normalize(frags []Fragment, cfg Config) []Fragment {
	ordered := AssignColumns(frags, cfg)
	Order(ordered)
	return ordered
}

// AssignColumns returns a copy of frags with Column set on each fragment.
// A fragment whose left edge sits exactly on the midpoint is assigned to the
// right column; this is the single tie-break convention.
func AssignColumns(frags []Fragment, cfg Config) []Fragment {
	out := make([]Fragment, len(frags))
	copy(out, frags)

	for i := range out {
		if cfg.SingleColumn {
			out[i].Column = ColumnSingle
			continue
		}
		if out[i].X < cfg.ColumnMidpoint {
			out[i].Column = ColumnLeft
		} else {
			out[i].Column = ColumnRight
		}
	}
	return out
}

// Order sorts fragments in place by (page, column, y, x). Y grows downward,
// so this is top-to-bottom within a column.
func Order(frags []Fragment) {
	sort.SliceStable(frags, func(i, j int) bool {
		a, b := frags[i], frags[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}
