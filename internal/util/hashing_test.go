package util

import (
	"testing"

	"quadix/pkg/container/quadtree"
)

func TestHashQuery(t *testing.T) {
	t.Parallel()
	r := quadtree.NewRect(10, 10, 100, 100)
	if HashQuery(1, r) != HashQuery(1, r) {
		t.Errorf("the hash must be stable for equal inputs")
	}
	if HashQuery(1, r) == HashQuery(2, r) {
		t.Errorf("different generations must produce different keys")
	}
	if HashQuery(1, r) == HashQuery(1, quadtree.NewRect(10, 10, 100, 101)) {
		t.Errorf("different regions must produce different keys")
	}
}
