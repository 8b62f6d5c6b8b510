package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"tank over wall", NewRect(40, 40, 50, 50), NewRect(50, 50, 50, 50), true},
		{"separate columns", NewRect(0, 0, 50, 50), NewRect(100, 0, 50, 50), false},
		{"separate rows", NewRect(0, 0, 50, 50), NewRect(0, 100, 50, 50), false},
		{"touching on the right edge", NewRect(0, 0, 50, 50), NewRect(50, 0, 50, 50), false},
		{"touching on the bottom edge", NewRect(0, 0, 50, 50), NewRect(0, 50, 50, 50), false},
		{"projectile inside wall", NewRect(100, 100, 50, 50), NewRect(110, 110, 20, 20), true},
		{"one unit overlap", NewRect(0, 0, 50, 50), NewRect(49, 49, 20, 20), true},
		{"negative coordinates", NewRect(-20, -20, 20, 20), NewRect(0, 0, 50, 50), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right corner is exclusive", 30, 25, false},
		{"left of rect", 5, 15, false},
		{"below rect", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectInsideAndGrow(t *testing.T) {
	world := NewRect(0, 0, 800, 450)

	if !NewRect(750, 400, 50, 50).Inside(world) {
		t.Error("tank in the bottom-right corner should be inside the world")
	}
	if NewRect(755, 400, 50, 50).Inside(world) {
		t.Error("tank past the right edge should not be inside the world")
	}

	grown := world.Grow(100)
	if grown != NewRect(-100, -100, 1000, 650) {
		t.Errorf("Grow(100) = %+v", grown)
	}
}

func TestRectEdgesAndCenter(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
	if cx, cy := r.Center(); cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestClampAndAbs(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned a wrong value")
	}
}
