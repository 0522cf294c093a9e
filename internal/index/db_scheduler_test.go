package index

import (
	"context"
	"errors"
	"testing"
	"time"

	objectDb "quadix/internal/object/database"
	"quadix/internal/object/model"
)

func TestDbSchedulerProcessOverSizeObjects(t *testing.T) {
	stored := []model.Object{
		model.NewObject(1, 1, 1, 1, nil),
		model.NewObject(2, 2, 1, 1, nil),
		model.NewObject(3, 3, 1, 1, nil),
		model.NewObject(4, 4, 1, 1, nil),
	}
	// spread creation times so the sort has something to do
	for i := range stored {
		stored[i].CreatedAt = time.Now().Add(time.Duration(-len(stored)+i) * time.Hour)
	}

	var deleted []model.Object
	scheduler := newDBScheduler(dbSchedulerConfig{
		maxItemsStored: 1,
		deps: pullDependencies{
			fetchObjects: func(filter objectDb.FilterFn) ([]model.Object, error) {
				return stored, nil
			},
			deleteObjects: func(ctx context.Context, objects []model.Object) error {
				deleted = objects
				return nil
			},
		},
	})

	pruned, err := scheduler.processOverSizeObjects()
	if err != nil {
		t.Fatalf("processing oversize objects returned error: %v", err)
	}
	if pruned != 3 {
		t.Errorf("pruned object count got: %v, expected: 3", pruned)
	}
	for i := range deleted {
		if deleted[i].ID == stored[len(stored)-1].ID {
			t.Errorf("the newest object must survive the prune")
		}
	}
}

// A prune pass that errors may already have deleted objects, so the pass
// must still resync the tree with the store.
func TestDbSchedulerPruneOnceRebuildsAfterFailedPrune(t *testing.T) {
	rebuilt := false
	scheduler := newDBScheduler(dbSchedulerConfig{
		maxStorageTime: time.Hour,
		deps: pullDependencies{
			fetchObjects: func(filter objectDb.FilterFn) ([]model.Object, error) {
				return nil, errors.New("store unavailable")
			},
		},
	})

	scheduler.pruneOnce(context.TODO(), func(ctx context.Context) error {
		rebuilt = true
		return nil
	})
	if !rebuilt {
		t.Errorf("a failed prune pass must trigger an index rebuild")
	}
}

// A clean pass with nothing to prune leaves the tree alone.
func TestDbSchedulerPruneOnceSkipsRebuildWhenClean(t *testing.T) {
	rebuilt := false
	scheduler := newDBScheduler(dbSchedulerConfig{
		maxItemsStored: 10,
		deps: pullDependencies{
			countObjects: func() (int, error) { return 1, nil },
		},
	})

	scheduler.pruneOnce(context.TODO(), func(ctx context.Context) error {
		rebuilt = true
		return nil
	})
	if rebuilt {
		t.Errorf("a pass that pruned nothing must not rebuild the index")
	}
}

func TestDbSchedulerProcessOutdatedObjects(t *testing.T) {
	old := model.NewObject(1, 1, 1, 1, nil)
	old.CreatedAt = time.Now().Add(-2 * time.Hour)

	var deleted []model.Object
	scheduler := newDBScheduler(dbSchedulerConfig{
		maxStorageTime: time.Hour,
		deps: pullDependencies{
			fetchObjects: func(filter objectDb.FilterFn) ([]model.Object, error) {
				var objects []model.Object
				for _, object := range []model.Object{old, model.NewObject(2, 2, 1, 1, nil)} {
					if filter == nil || filter(object) {
						objects = append(objects, object)
					}
				}
				return objects, nil
			},
			deleteObjects: func(ctx context.Context, objects []model.Object) error {
				deleted = objects
				return nil
			},
		},
	})

	pruned, err := scheduler.processOutdatedObjects()
	if err != nil {
		t.Fatalf("processing outdated objects returned error: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned object count got: %v, expected: 1", pruned)
	}
	if len(deleted) != 1 || deleted[0].ID != old.ID {
		t.Errorf("only the outdated object must be deleted")
	}
}
