package quadtree

import (
	"testing"

	"github.com/valyala/fastrand"
)

func randBoxes(n int) []*box {
	var rng fastrand.RNG
	rng.Seed(1)
	boxes := make([]*box, n)
	for i := range boxes {
		boxes[i] = &box{
			x: float64(rng.Uint32n(990)),
			y: float64(rng.Uint32n(990)),
			w: float64(rng.Uint32n(10)),
			h: float64(rng.Uint32n(10)),
		}
	}
	return boxes
}

func BenchmarkNode_Insert(b *testing.B) {
	boxes := randBoxes(b.N)
	root := New(NewRect(0, 0, 1000, 1000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = root.Insert(boxes[i])
	}
}

func BenchmarkNode_Retrieve(b *testing.B) {
	root := New(NewRect(0, 0, 1000, 1000))
	for _, item := range randBoxes(100000) {
		_ = root.Insert(item)
	}
	query := NewRect(100, 100, 50, 50)
	dst := make([]Item, 0, 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst = root.Retrieve(dst[:0], query)
	}
}
