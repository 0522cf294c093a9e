package quadtree

import "errors"

var (
	ErrNegativeSize = errors.New("quadtree: negative width or height")
	ErrNilItem      = errors.New("quadtree: nil item")
)

// Item is anything occupying an axis-aligned rectangle of the indexed plane.
// The tree never inspects an item beyond its bounds.
type Item interface {
	Bounds() Rect
}

// Quadrant indices. Zero means the rectangle straddles a midpoint line and
// cannot be placed in a single quadrant.
const (
	quadNone = iota
	quadBottomLeft
	quadTopLeft
	quadTopRight
	quadBottomRight
)

const (
	defaultMaxObjects = 10
	defaultMaxLevels  = 5
)

type Option func(*Node)

// WithMaxObjects sets the number of items a node holds before it splits.
func WithMaxObjects(n int) Option {
	return func(o *Node) {
		o.maxObjects = n
	}
}

// WithMaxLevels caps the subdivision depth. A node at the cap never splits;
// overflowing items accumulate there.
func WithMaxLevels(n int) Option {
	return func(o *Node) {
		o.maxLevels = n
	}
}

// WithStrictGeometry makes Insert fail fast on nil items and items with
// negative size instead of silently misclassifying them.
func WithStrictGeometry() Option {
	return func(o *Node) {
		o.strict = true
	}
}

// Node is one rectangular region of the indexed plane. A tree is a single
// root Node; every Node is independently capable of insert, retrieve and
// clear, and operations recurse through child ownership.
type Node struct {
	bounds     Rect
	level      int
	maxObjects int
	maxLevels  int
	strict     bool
	objects    []Item
	children   [4]*Node
}

// New returns a leaf node covering bounds. Malformed geometry is accepted
// silently; use NewStrict to validate.
func New(bounds Rect, opts ...Option) *Node {
	n := &Node{
		bounds:     bounds,
		maxObjects: defaultMaxObjects,
		maxLevels:  defaultMaxLevels,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewStrict is New with geometry validation: the returned node rejects
// malformed items on Insert and the constructor itself rejects negative
// bounds.
func NewStrict(bounds Rect, opts ...Option) (*Node, error) {
	if !bounds.Valid() {
		return nil, ErrNegativeSize
	}
	n := New(bounds, opts...)
	n.strict = true
	return n, nil
}

func (n *Node) Bounds() Rect {
	return n.bounds
}

func (n *Node) Level() int {
	return n.level
}

// Len returns the number of items stored in the subtree rooted at n.
func (n *Node) Len() int {
	total := len(n.objects)
	if n.children[0] != nil {
		for i := range n.children {
			total += n.children[i].Len()
		}
	}
	return total
}

// Insert places item in the subtree rooted at n. An item that fits entirely
// within one quadrant is delegated to that child; anything straddling a
// midpoint line stays at this level. Once a leaf holds more than maxObjects
// items it splits and pushes down whatever now fits a single quadrant.
// The error is always nil unless the node was built with strict geometry.
func (n *Node) Insert(item Item) error {
	if n.strict {
		if item == nil {
			return ErrNilItem
		}
		if !item.Bounds().Valid() {
			return ErrNegativeSize
		}
	}
	n.insert(item)
	return nil
}

func (n *Node) insert(item Item) {
	if n.children[0] != nil {
		if q := n.classify(item.Bounds()); q != quadNone {
			n.children[q-1].insert(item)
			return
		}
	}

	n.objects = append(n.objects, item)
	if n.children[0] != nil || len(n.objects) <= n.maxObjects {
		return
	}

	n.split()
	if n.children[0] == nil {
		// depth cap reached, items accumulate here
		return
	}
	n.redistribute()
}

// redistribute drains the node's own list into the children, retaining only
// items that still straddle a midpoint. Retained items keep their relative
// order; each item is visited exactly once.
func (n *Node) redistribute() {
	retained := n.objects[:0]
	for _, item := range n.objects {
		q := n.classify(item.Bounds())
		if q == quadNone {
			retained = append(retained, item)
			continue
		}
		n.children[q-1].insert(item)
	}
	for i := len(retained); i < len(n.objects); i++ {
		n.objects[i] = nil
	}
	n.objects = retained
}

// classify maps a rectangle to the quadrant of n that contains it entirely,
// or quadNone if it straddles a midpoint line or lies exactly on one.
// Pure with respect to node state.
func (n *Node) classify(b Rect) int {
	midX := n.bounds.MidX()
	midY := n.bounds.MidY()

	top := b.Y < midY && b.MaxY() < midY
	bottom := b.Y > midY
	left := b.X < midX && b.MaxX() < midX
	right := b.X > midX

	switch {
	case left && top:
		return quadTopLeft
	case left && bottom:
		return quadBottomLeft
	case right && top:
		return quadTopRight
	case right && bottom:
		return quadBottomRight
	}
	return quadNone
}

// split creates the four children, one per quadrant, at level+1. Calling it
// on an already split node or on a node at the depth cap is a no-op. The
// caller redistributes items; split itself moves nothing.
func (n *Node) split() {
	if n.children[0] != nil || n.level >= n.maxLevels {
		return
	}

	halfW := n.bounds.Width / 2
	halfH := n.bounds.Height / 2
	quads := [4]Rect{
		{X: n.bounds.X, Y: n.bounds.MidY(), Width: halfW, Height: halfH},
		{X: n.bounds.X, Y: n.bounds.Y, Width: halfW, Height: halfH},
		{X: n.bounds.MidX(), Y: n.bounds.Y, Width: halfW, Height: halfH},
		{X: n.bounds.MidX(), Y: n.bounds.MidY(), Width: halfW, Height: halfH},
	}
	for i := range quads {
		n.children[i] = &Node{
			bounds:     quads[i],
			level:      n.level + 1,
			maxObjects: n.maxObjects,
			maxLevels:  n.maxLevels,
			strict:     n.strict,
		}
	}
}

// Retrieve appends to dst every item plausibly overlapping query and returns
// dst. When the query fits a single quadrant only that child subtree is
// visited; a query straddling a midpoint descends into all four. Child
// results come before this node's own items. Retrieval over-approximates:
// items held at each level along the query's path are returned without an
// exact overlap test, so callers needing precision post-filter with
// Rect.Intersects.
func (n *Node) Retrieve(dst []Item, query Rect) []Item {
	if n.children[0] != nil {
		if q := n.classify(query); q != quadNone {
			dst = n.children[q-1].Retrieve(dst, query)
		} else {
			for i := range n.children {
				dst = n.children[i].Retrieve(dst, query)
			}
		}
	}
	return append(dst, n.objects...)
}

// Clear empties the node's own list and discards every child, restoring the
// node to a pure leaf. Idempotent.
func (n *Node) Clear() {
	n.objects = nil
	for i := range n.children {
		if n.children[i] != nil {
			n.children[i].Clear()
			n.children[i] = nil
		}
	}
}
