package core

import "math"

// Viewport is the visible window over the wrapped content.
// All values are in measurer units.
type Viewport struct {
	Width            float64
	Height           float64
	ScrollOffsetY    float64
	MaxScrollOffsetY float64
}

// Viewport returns the current viewport state
func (e *Editor) Viewport() Viewport {
	return e.viewport
}

// Resize changes the viewport size. A width change rewraps the text.
func (e *Editor) Resize(width, height float64) {
	e.viewport.Width = max(width, 0)
	e.viewport.Height = max(height, 0)
	e.syncViewport()
}

// ScrollLines scrolls by n whole lines (negative scrolls up) without moving
// the cursor. The offset stays within content bounds.
func (e *Editor) ScrollLines(n int) {
	e.updateScrollBounds()
	e.viewport.ScrollOffsetY += float64(n) * e.measurer.LineHeight()
	e.clampScroll()
}

// VisibleRange returns the wrapped line indices [first, last) intersecting
// the viewport.
func (e *Editor) VisibleRange() (first, last int) {
	lines := e.Lines()
	lh := e.measurer.LineHeight()

	first = int(math.Floor(e.viewport.ScrollOffsetY / lh))
	last = int(math.Ceil((e.viewport.ScrollOffsetY + e.viewport.Height) / lh))

	first = max(0, min(first, len(lines)))
	last = max(first, min(last, len(lines)))
	return first, last
}

// syncViewport recomputes the scroll bounds and keeps the cursor line inside
// the viewport, margin lines away from either edge where possible.
func (e *Editor) syncViewport() {
	e.updateScrollBounds()

	lh := e.measurer.LineHeight()
	margin := e.cfg.ScrollMarginLines * lh
	cursorY := e.CursorTarget().Y

	vp := &e.viewport
	if cursorY < vp.ScrollOffsetY+margin {
		vp.ScrollOffsetY = cursorY - margin
	} else if cursorY+lh > vp.ScrollOffsetY+vp.Height-margin {
		vp.ScrollOffsetY = cursorY + lh - vp.Height + margin
	}

	e.clampScroll()
}

func (e *Editor) updateScrollBounds() {
	contentHeight := float64(len(e.Lines())) * e.measurer.LineHeight()
	e.viewport.MaxScrollOffsetY = max(0, contentHeight-e.viewport.Height)
}

func (e *Editor) clampScroll() {
	vp := &e.viewport
	vp.ScrollOffsetY = max(0, min(vp.ScrollOffsetY, vp.MaxScrollOffsetY))
}
