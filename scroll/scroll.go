// Package scroll provides a vertical viewport and scrollbar geometry for
// line-based content.
package scroll

// Viewport tracks which rows of a tall piece of content are visible.
type Viewport struct {
	offset   int
	content  int
	view     int
	onChange func(offset, content, view int)
}

// NewViewport creates an empty viewport.
func NewViewport() *Viewport {
	return &Viewport{}
}

// SetContentHeight updates the content height and clamps the offset.
func (v *Viewport) SetContentHeight(rows int) {
	if v == nil {
		return
	}
	v.content = max(0, rows)
	v.SetOffset(v.offset)
}

// ContentHeight returns the content height.
func (v *Viewport) ContentHeight() int {
	if v == nil {
		return 0
	}
	return v.content
}

// SetViewHeight updates the view height and clamps the offset.
func (v *Viewport) SetViewHeight(rows int) {
	if v == nil {
		return
	}
	v.view = max(0, rows)
	v.SetOffset(v.offset)
}

// ViewHeight returns the view height.
func (v *Viewport) ViewHeight() int {
	if v == nil {
		return 0
	}
	return v.view
}

// Offset returns the first visible row.
func (v *Viewport) Offset() int {
	if v == nil {
		return 0
	}
	return v.offset
}

// SetOnChange sets a callback for offset updates.
func (v *Viewport) SetOnChange(fn func(offset, content, view int)) {
	if v == nil {
		return
	}
	v.onChange = fn
}

// SetOffset moves the first visible row, clamped to the content.
func (v *Viewport) SetOffset(y int) {
	if v == nil {
		return
	}
	next := min(max(0, y), v.MaxOffset())
	if next == v.offset {
		return
	}
	v.offset = next
	if v.onChange != nil {
		v.onChange(v.offset, v.content, v.view)
	}
}

// ScrollBy moves the offset by dy rows.
func (v *Viewport) ScrollBy(dy int) {
	if v == nil {
		return
	}
	v.SetOffset(v.offset + dy)
}

// PageBy moves the offset by whole pages, keeping one row of overlap.
func (v *Viewport) PageBy(pages int) {
	if v == nil {
		return
	}
	v.ScrollBy(pages * max(1, v.view-1))
}

// ScrollToStart shows the first row.
func (v *Viewport) ScrollToStart() {
	v.SetOffset(0)
}

// ScrollToEnd shows the last page.
func (v *Viewport) ScrollToEnd() {
	if v == nil {
		return
	}
	v.SetOffset(v.MaxOffset())
}

// MaxOffset returns the largest valid offset.
func (v *Viewport) MaxOffset() int {
	if v == nil {
		return 0
	}
	return max(0, v.content-v.view)
}

// Visible returns the half-open row range [start, end) on screen.
func (v *Viewport) Visible() (start, end int) {
	if v == nil {
		return 0, 0
	}
	return v.offset, min(v.content, v.offset+v.view)
}

// Scrollable reports whether the content is taller than the view.
func (v *Viewport) Scrollable() bool {
	return v != nil && v.content > v.view
}

// Thumb returns the scrollbar thumb position and length for a track of
// the given height. The thumb is at least minSize rows.
func (v *Viewport) Thumb(track, minSize int) (pos, size int) {
	if v == nil || track <= 0 || !v.Scrollable() {
		return 0, track
	}
	size = max(minSize, track*v.view/v.content)
	size = min(size, track)
	if maxOff := v.MaxOffset(); maxOff > 0 {
		pos = (track - size) * v.offset / maxOff
	}
	return pos, size
}

// ScrollbarChars defines the runes used to draw a scrollbar.
type ScrollbarChars struct {
	Track rune
	Thumb rune
}

// DefaultScrollbarChars returns the box-drawing defaults.
func DefaultScrollbarChars() ScrollbarChars {
	return ScrollbarChars{Track: '│', Thumb: '┃'}
}
