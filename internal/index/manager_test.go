package index

import (
	"context"
	"path/filepath"
	"testing"

	"quadix/internal/database"
	"quadix/internal/object/model"
	"quadix/pkg/container/quadtree"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.TODO()
	db, err := database.NewFromEnv(ctx, &database.Config{
		FileName: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(ctx)
	})
	return db
}

func TestManager_AppendQuery(t *testing.T) {
	m, err := New(newTestDB(t), make(chan error, 1),
		WithBounds(quadtree.NewRect(0, 0, 1000, 1000)),
		WithMaxObjects(5),
		WithDBFlushSize(1000),
	)
	if err != nil {
		t.Fatalf("creating manager: %v", err)
	}

	objects := make([]model.Object, 0, 6)
	for i := 0; i < 6; i++ {
		objects = append(objects, model.NewObject(10+float64(i), 10+float64(i), 5, 5, nil))
	}
	if err := m.Append(objects...); err != nil {
		t.Fatalf("appending objects: %v", err)
	}

	got, err := m.Query(quadtree.NewRect(0, 0, 1000, 1000), false)
	if err != nil {
		t.Fatalf("querying full bounds: %v", err)
	}
	if len(got) != 6 {
		t.Errorf("full-bounds query result count got: %v, expected: 6", len(got))
	}

	exact, err := m.Query(quadtree.NewRect(9, 9, 3, 3), true)
	if err != nil {
		t.Fatalf("querying confined region: %v", err)
	}
	for _, object := range exact {
		if !quadtree.NewRect(9, 9, 3, 3).Intersects(object.Bounds()) {
			t.Errorf("exact query returned a non-overlapping object: %v", object)
		}
	}
	if len(exact) == 0 {
		t.Errorf("exact query dropped overlapping objects")
	}

	if m.Generation() == 0 {
		t.Errorf("generation must be bumped by a mutation")
	}
	if stats := m.Stats(); stats.Len != 6 {
		t.Errorf("stats length got: %v, expected: 6", stats.Len)
	}
}

func TestManager_StrictGeometry(t *testing.T) {
	m, err := New(newTestDB(t), make(chan error, 1),
		WithStrictGeometry(true),
		WithDBFlushSize(1000),
	)
	if err != nil {
		t.Fatalf("creating manager: %v", err)
	}

	bad := model.NewObject(10, 10, -5, 5, nil)
	if err := m.Append(bad); err == nil {
		t.Errorf("appending a negative-size object must fail in strict mode")
	}
	if _, err := m.Query(quadtree.NewRect(0, 0, -1, 10), false); err == nil {
		t.Errorf("querying with a negative-size region must fail in strict mode")
	}
}

// A strict batch is all-or-nothing: a malformed object must not leave its
// predecessors indexed or the generation bumped.
func TestManager_StrictGeometry_BatchAtomic(t *testing.T) {
	m, err := New(newTestDB(t), make(chan error, 1),
		WithStrictGeometry(true),
		WithDBFlushSize(1000),
	)
	if err != nil {
		t.Fatalf("creating manager: %v", err)
	}

	good := model.NewObject(10, 10, 5, 5, nil)
	bad := model.NewObject(20, 20, -5, 5, nil)
	if err := m.Append(good, bad); err == nil {
		t.Fatalf("a batch containing a negative-size object must fail in strict mode")
	}

	got, err := m.Query(quadtree.NewRect(0, 0, 1000, 1000), false)
	if err != nil {
		t.Fatalf("querying full bounds: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("failed batch left %v object(s) indexed, expected: 0", len(got))
	}
	if m.Generation() != 0 {
		t.Errorf("failed batch bumped the generation to %v, expected: 0", m.Generation())
	}
}

// An appended object still sitting in the write-behind buffer must survive a
// tree rebuild from the store.
func TestManager_RebuildKeepsPendingObjects(t *testing.T) {
	ctx := context.TODO()
	m, err := New(newTestDB(t), make(chan error, 1), WithDBFlushSize(1000))
	if err != nil {
		t.Fatalf("creating manager: %v", err)
	}

	if err := m.Append(model.NewObject(10, 10, 5, 5, nil)); err != nil {
		t.Fatalf("appending object: %v", err)
	}
	if n, _ := m.opts.deps.countObjects(); n != 0 {
		t.Fatalf("object reached the store before any flush, buffered count assumption broken")
	}

	if err := m.rebuild(ctx); err != nil {
		t.Fatalf("rebuilding index: %v", err)
	}
	got, err := m.Query(quadtree.NewRect(0, 0, 1000, 1000), false)
	if err != nil {
		t.Fatalf("querying full bounds: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("query after rebuild got: %v objects, expected: 1", len(got))
	}
	if n, _ := m.opts.deps.countObjects(); n != 1 {
		t.Errorf("stored object count after rebuild got: %v, expected: 1", n)
	}
}

// Reset discards buffered writes; a later flush must not resurrect a
// pre-reset object in the store.
func TestManager_ResetDropsPendingObjects(t *testing.T) {
	ctx := context.TODO()
	m, err := New(newTestDB(t), make(chan error, 1), WithDBFlushSize(1000))
	if err != nil {
		t.Fatalf("creating manager: %v", err)
	}

	if err := m.Append(model.NewObject(10, 10, 5, 5, nil)); err != nil {
		t.Fatalf("appending object: %v", err)
	}
	if err := m.Reset(ctx); err != nil {
		t.Fatalf("resetting index: %v", err)
	}
	if err := m.txExecutor.flush(); err != nil {
		t.Fatalf("flushing after reset: %v", err)
	}

	if n, _ := m.opts.deps.countObjects(); n != 0 {
		t.Errorf("pre-reset object resurrected in the store, count got: %v, expected: 0", n)
	}
	if got, _ := m.Query(quadtree.NewRect(0, 0, 1000, 1000), false); len(got) != 0 {
		t.Errorf("query after reset got: %v objects, expected: 0", len(got))
	}
}

func TestManager_ResetAndRebuild(t *testing.T) {
	ctx := context.TODO()
	db := newTestDB(t)
	m, err := New(db, make(chan error, 1), WithDBFlushSize(1000))
	if err != nil {
		t.Fatalf("creating manager: %v", err)
	}

	if err := m.Append(model.NewObject(10, 10, 5, 5, nil)); err != nil {
		t.Fatalf("appending object: %v", err)
	}
	gen := m.Generation()

	if err := m.Reset(ctx); err != nil {
		t.Fatalf("resetting index: %v", err)
	}
	if got, _ := m.Query(quadtree.NewRect(0, 0, 1000, 1000), false); len(got) != 0 {
		t.Errorf("query after reset got: %v objects, expected: 0", len(got))
	}
	if m.Generation() <= gen {
		t.Errorf("reset must bump the generation")
	}

	// persist two objects directly, then rebuild the tree from the store
	stored := []model.Object{
		model.NewObject(20, 20, 5, 5, nil),
		model.NewObject(600, 600, 5, 5, nil),
	}
	if err := m.opts.deps.appendObjects(ctx, stored); err != nil {
		t.Fatalf("storing objects: %v", err)
	}
	if err := m.rebuild(ctx); err != nil {
		t.Fatalf("rebuilding index: %v", err)
	}
	if got, _ := m.Query(quadtree.NewRect(0, 0, 1000, 1000), false); len(got) != 2 {
		t.Errorf("query after rebuild got: %v objects, expected: 2", len(got))
	}
}
