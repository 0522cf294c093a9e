package quadtree

// Rect is an axis-aligned rectangle given by its top-left corner and size.
// The y axis grows downward, so "top" means smaller y.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// MidX returns the horizontal midpoint of the rectangle.
func (r Rect) MidX() float64 {
	return r.X + r.Width/2
}

// MidY returns the vertical midpoint of the rectangle.
func (r Rect) MidY() float64 {
	return r.Y + r.Height/2
}

// Intersects reports whether r and r1 share any area or edge.
func (r Rect) Intersects(r1 Rect) bool {
	return r.X <= r1.MaxX() && r1.X <= r.MaxX() && r.Y <= r1.MaxY() && r1.Y <= r.MaxY()
}

// Contains reports whether r1 lies entirely within r.
func (r Rect) Contains(r1 Rect) bool {
	return r1.X >= r.X && r1.Y >= r.Y && r1.MaxX() <= r.MaxX() && r1.MaxY() <= r.MaxY()
}

// Valid reports whether the rectangle has non-negative size.
func (r Rect) Valid() bool {
	return r.Width >= 0 && r.Height >= 0
}
