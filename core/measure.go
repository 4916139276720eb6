package core

import "github.com/rivo/uniseg"

// Measurer reports how wide text renders and how tall a line is.
// Implementations must be deterministic for a given font and size.
type Measurer interface {
	MeasureWidth(text string) float64
	LineHeight() float64
}

// CellMeasurer measures text in terminal cells. Every line is one cell tall.
//
// Widths are summed rune by rune, matching the engine's rune granularity.
// Control characters such as tabs occupy a single cell so that they stay
// addressable by the cursor; renderers are expected to draw them as one cell.
type CellMeasurer struct{}

func (CellMeasurer) MeasureWidth(text string) float64 {
	width := 0
	for _, r := range text {
		width += cellWidth(r)
	}
	return float64(width)
}

func (CellMeasurer) LineHeight() float64 { return 1 }

func cellWidth(r rune) int {
	if r < 0x20 || r == 0x7f {
		return 1
	}
	w := uniseg.StringWidth(string(r))
	if w <= 0 {
		return 1
	}
	return w
}

// FixedMeasurer gives every rune the same advance, like a monospaced font
// measured in pixels.
type FixedMeasurer struct {
	Advance float64
	Height  float64
}

func (f FixedMeasurer) MeasureWidth(text string) float64 {
	n := 0
	for range text {
		n++
	}
	return float64(n) * f.Advance
}

func (f FixedMeasurer) LineHeight() float64 { return f.Height }
