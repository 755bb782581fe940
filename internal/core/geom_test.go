package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{15, 15, true},  // Inside
		{10, 10, true},  // Top-left corner (inclusive)
		{29, 29, true},  // Just inside bottom-right
		{30, 30, false}, // Bottom-right corner (exclusive)
		{5, 15, false},  // Left of rect
		{35, 15, false}, // Right of rect
		{15, 5, false},  // Above rect
		{15, 35, false}, // Below rect
	}

	for _, tt := range tests {
		result := r.Contains(tt.x, tt.y)
		if result != tt.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, result, tt.expected)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	if r.Right() != 40 {
		t.Errorf("Right() = %d, expected 40", r.Right())
	}
	if r.Bottom() != 60 {
		t.Errorf("Bottom() = %d, expected 60", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 25 || cy != 40 {
		t.Errorf("Center() = (%d, %d), expected (25, 40)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // Within range
		{-5, 0, 10, 0},  // Below min
		{15, 0, 10, 10}, // Above max
		{0, 0, 10, 0},   // At min
		{10, 0, 10, 10}, // At max
	}

	for _, tt := range tests {
		result := Clamp(tt.val, tt.lo, tt.hi)
		if result != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.lo, tt.hi, result, tt.expected)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		val, n, expected int
	}{
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 0},
		{-1, 4, 3},
		{-5, 4, 3},
		{9, 4, 1},
		{7, 0, 0}, // Degenerate size
	}

	for _, tt := range tests {
		result := Wrap(tt.val, tt.n)
		if result != tt.expected {
			t.Errorf("Wrap(%d, %d) = %d, expected %d", tt.val, tt.n, result, tt.expected)
		}
	}
}

func TestPaletteColor(t *testing.T) {
	if PaletteColor(0) != ColorDefault {
		t.Error("label 0 should map to the default colour")
	}
	if PaletteColor(1) != Palette[0] {
		t.Errorf("PaletteColor(1) = %d, expected %d", PaletteColor(1), Palette[0])
	}
	if PaletteColor(len(Palette)+1) != Palette[0] {
		t.Error("palette should cycle after its last colour")
	}
}

func TestInputFrameClick(t *testing.T) {
	f := NewInputFrame()
	if _, ok := f.Click(); ok {
		t.Fatal("new frame should have no click")
	}

	f.SetClick(3, 7)
	f.Set(ActionConfirm)

	clone := f.Clone()
	p, ok := clone.Click()
	if !ok || p.X != 3 || p.Y != 7 {
		t.Errorf("cloned click = %+v (ok=%v), expected (3, 7)", p, ok)
	}

	f.Clear()
	if _, ok := f.Click(); ok {
		t.Error("Clear should drop the click")
	}
	if f.Has(ActionConfirm) {
		t.Error("Clear should drop actions")
	}
	if !clone.Has(ActionConfirm) {
		t.Error("clone should keep its own actions")
	}
}
