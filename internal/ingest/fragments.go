package ingest

import (
	"math"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dmfielding/bestiary/internal/layout"
)

const (
	// wordGapFactor bounds the gap (in font-size units) between characters
	// of the same word; spaceGapFactor bounds a single space. Wider gaps
	// start a new fragment.
	wordGapFactor  = 0.3
	spaceGapFactor = 1.5

	// lineTolerance is the baseline drift allowed within one text run.
	lineTolerance = 0.5

	// letterHeight is the fallback page height when a page carries no
	// usable MediaBox.
	letterHeight = 792.0
)

// mergeRuns folds a page's character-level texts into style runs: maximal
// same-font, same-size, same-baseline sequences. Fragment Y is flipped to
// grow downward from the top of the page.
func mergeRuns(texts []pdflib.Text, pageNum int, height float64) []layout.Fragment {
	var frags []layout.Fragment

	var (
		open bool
		font string
		size float64
		x, y float64
		endX float64
		sb   strings.Builder
	)

	flush := func() {
		if !open {
			return
		}
		open = false
		text := strings.TrimSpace(sb.String())
		sb.Reset()
		if text == "" {
			return
		}
		frags = append(frags, layout.Fragment{
			Page:     pageNum,
			X:        x,
			Y:        height - y,
			Width:    endX - x,
			Height:   size,
			Text:     text,
			FontName: font,
			FontSize: size,
			Bold:     isBoldFont(font),
			Italic:   isItalicFont(font),
		})
	}

	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}

		sameRun := open &&
			t.Font == font &&
			t.FontSize == size &&
			math.Abs(t.Y-y) <= lineTolerance

		if sameRun {
			gap := t.X - endX
			switch {
			case gap <= wordGapFactor*size:
				sb.WriteString(t.S)
			case gap <= spaceGapFactor*size:
				sb.WriteString(" ")
				sb.WriteString(t.S)
			default:
				sameRun = false
			}
			if sameRun {
				if end := t.X + t.W; end > endX {
					endX = end
				}
				continue
			}
		}

		flush()
		open = true
		font = t.Font
		size = t.FontSize
		x = t.X
		y = t.Y
		endX = t.X + t.W
		sb.WriteString(t.S)
	}
	flush()

	return frags
}

// pageHeight reads the MediaBox height, falling back to US Letter.
func pageHeight(page pdflib.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return letterHeight
	}
	lly := box.Index(1).Float64()
	ury := box.Index(3).Float64()
	if ury <= lly {
		return letterHeight
	}
	return ury - lly
}

func isBoldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy")
}

func isItalicFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}
