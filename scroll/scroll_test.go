package scroll

import "testing"

func TestViewportClampOffset(t *testing.T) {
	v := NewViewport()
	v.SetViewHeight(5)
	v.SetContentHeight(20)

	v.SetOffset(100)
	if got := v.Offset(); got != 15 {
		t.Fatalf("offset clamp = %d, want 15", got)
	}
	v.SetOffset(-7)
	if got := v.Offset(); got != 0 {
		t.Fatalf("offset clamp negative = %d, want 0", got)
	}
}

func TestViewportShrinkingContentClamps(t *testing.T) {
	v := NewViewport()
	v.SetViewHeight(5)
	v.SetContentHeight(20)
	v.ScrollToEnd()
	v.SetContentHeight(8)
	if got := v.Offset(); got != 3 {
		t.Fatalf("offset after shrink = %d, want 3", got)
	}
	if start, end := v.Visible(); start != 3 || end != 8 {
		t.Fatalf("visible = [%d, %d), want [3, 8)", start, end)
	}
}

func TestViewportPaging(t *testing.T) {
	v := NewViewport()
	v.SetViewHeight(5)
	v.SetContentHeight(30)

	changes := 0
	v.SetOnChange(func(offset, content, view int) { changes++ })

	v.PageBy(1)
	if got := v.Offset(); got != 4 {
		t.Fatalf("page down offset = %d, want 4", got)
	}
	v.PageBy(-3)
	if got := v.Offset(); got != 0 {
		t.Fatalf("page up offset = %d, want 0", got)
	}
	v.ScrollToStart()
	if changes != 2 {
		t.Fatalf("expected 2 change callbacks, got %d", changes)
	}
}

func TestViewportThumb(t *testing.T) {
	v := NewViewport()
	v.SetViewHeight(10)
	v.SetContentHeight(5)
	if v.Scrollable() {
		t.Fatalf("expected short content not to scroll")
	}
	if pos, size := v.Thumb(10, 1); pos != 0 || size != 10 {
		t.Fatalf("thumb = (%d, %d), want (0, 10)", pos, size)
	}

	v.SetContentHeight(40)
	if pos, size := v.Thumb(10, 1); pos != 0 || size != 2 {
		t.Fatalf("thumb at start = (%d, %d), want (0, 2)", pos, size)
	}
	v.ScrollToEnd()
	if pos, size := v.Thumb(10, 1); pos != 8 || size != 2 {
		t.Fatalf("thumb at end = (%d, %d), want (8, 2)", pos, size)
	}
}

func TestViewportNil(t *testing.T) {
	var v *Viewport
	v.ScrollBy(3)
	v.ScrollToStart()
	if v.Offset() != 0 || v.MaxOffset() != 0 || v.Scrollable() {
		t.Fatalf("expected nil viewport to be inert")
	}
}
