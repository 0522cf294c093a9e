package model

import (
	"time"

	"github.com/google/uuid"

	"quadix/pkg/container/quadtree"
)

func NewObject(x, y, width, height float64, extra interface{}) Object {
	return Object{
		ID:        uuid.New(),
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		CreatedAt: time.Now(),
		Extra:     extra,
	}
}

var _ quadtree.Item = (*Object)(nil)

// Object is one indexed rectangle. The index only ever looks at its bounds;
// Extra travels along untouched.
type Object struct {
	ID        uuid.UUID   `json:"id"`
	X         float64     `json:"x"`
	Y         float64     `json:"y"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	CreatedAt time.Time   `json:"createdAt"`
	Extra     interface{} `json:"extra"`
}

func (o Object) Bounds() quadtree.Rect {
	return quadtree.NewRect(o.X, o.Y, o.Width, o.Height)
}
