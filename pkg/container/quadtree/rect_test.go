package quadtree

import "testing"

func TestRect_Intersects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		r        Rect
		r1       Rect
		expected bool
	}{
		{name: "overlapping", r: NewRect(0, 0, 10, 10), r1: NewRect(5, 5, 10, 10), expected: true},
		{name: "touching_corner", r: NewRect(0, 0, 10, 10), r1: NewRect(10, 10, 5, 5), expected: true},
		{name: "contained", r: NewRect(0, 0, 10, 10), r1: NewRect(2, 2, 2, 2), expected: true},
		{name: "disjoint_x", r: NewRect(0, 0, 10, 10), r1: NewRect(11, 0, 5, 5), expected: false},
		{name: "disjoint_y", r: NewRect(0, 0, 10, 10), r1: NewRect(0, 11, 5, 5), expected: false},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := test.r.Intersects(test.r1); got != test.expected {
				t.Errorf("intersection of %v and %v, got: %v, expected: %v", test.r, test.r1, got, test.expected)
			}
			if got := test.r1.Intersects(test.r); got != test.expected {
				t.Errorf("intersection must be symmetric for %v and %v", test.r, test.r1)
			}
		})
	}
}

func TestRect_Contains(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		r        Rect
		r1       Rect
		expected bool
	}{
		{name: "inner", r: NewRect(0, 0, 10, 10), r1: NewRect(2, 2, 2, 2), expected: true},
		{name: "identical", r: NewRect(0, 0, 10, 10), r1: NewRect(0, 0, 10, 10), expected: true},
		{name: "partial_overlap", r: NewRect(0, 0, 10, 10), r1: NewRect(5, 5, 10, 10), expected: false},
		{name: "larger", r: NewRect(2, 2, 2, 2), r1: NewRect(0, 0, 10, 10), expected: false},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := test.r.Contains(test.r1); got != test.expected {
				t.Errorf("containment of %v in %v, got: %v, expected: %v", test.r1, test.r, got, test.expected)
			}
		})
	}
}

func TestRect_Midpoints(t *testing.T) {
	t.Parallel()
	r := NewRect(100, 200, 800, 600)
	if got := r.MidX(); got != 500 {
		t.Errorf("horizontal midpoint, got: %v, expected: 500", got)
	}
	if got := r.MidY(); got != 500 {
		t.Errorf("vertical midpoint, got: %v, expected: 500", got)
	}
}
