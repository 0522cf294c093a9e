package index

import (
	"context"
	"fmt"
	"sort"
	"time"

	"quadix/internal/logging"
	"quadix/internal/object/model"
)

// Scheduler options
type dbSchedulerConfig struct {
	maxItemsStored int
	maxStorageTime time.Duration
	rebuildDBTime  time.Duration
	deps           pullDependencies
}

func newDBScheduler(config dbSchedulerConfig) *dbScheduler {
	return &dbScheduler{opts: config}
}

// The scheduler is responsible for deleting old objects from the store.
// It can maintain the required amount of data in the store or delete old
// objects depending on the configuration. After a prune the tree is rebuilt
// so the index and the store stay in sync.
type dbScheduler struct {
	opts dbSchedulerConfig
}

// processOutdatedObjects deletes every stored object older than the
// configured retention period. Returns the number of deleted objects.
func (s *dbScheduler) processOutdatedObjects() (int, error) {
	objects, err := s.opts.deps.fetchObjects(func(object model.Object) bool {
		return time.Since(object.CreatedAt) > s.opts.maxStorageTime
	})
	if err != nil {
		return 0, fmt.Errorf("unable to find outdated objects: %v", err)
	}
	if len(objects) == 0 {
		return 0, nil
	}

	if err := s.opts.deps.deleteObjects(context.Background(), objects); err != nil {
		return 0, fmt.Errorf("unable to delete outdated objects: %v", err)
	}
	return len(objects), nil
}

// processOverSizeObjects fetches all stored objects, sorts by creation time
// and deletes the oldest ones beyond the configured cap. Returns the number
// of deleted objects.
func (s *dbScheduler) processOverSizeObjects() (int, error) {
	objects, err := s.opts.deps.fetchObjects(nil)
	if err != nil {
		return 0, fmt.Errorf("unable to fetch stored objects: %v", err)
	}
	if len(objects) <= s.opts.maxItemsStored {
		return 0, nil
	}

	// Sorting all objects can be a costly operation for large stores.
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].CreatedAt.UnixNano() < objects[j].CreatedAt.UnixNano()
	})

	pruned := objects[:len(objects)-s.opts.maxItemsStored]
	if err := s.opts.deps.deleteObjects(context.Background(), pruned); err != nil {
		return 0, fmt.Errorf("unable to delete oversize objects: %v", err)
	}
	return len(pruned), nil
}

// rebuildSize checks the store size and prunes when it exceeds the cap.
func (s *dbScheduler) rebuildSize() (int, error) {
	length, err := s.opts.deps.countObjects()
	if err != nil {
		return 0, fmt.Errorf("unable to count stored objects: %v", err)
	}
	if length <= s.opts.maxItemsStored {
		return 0, nil
	}
	return s.processOverSizeObjects()
}

// pruneOnce runs one cleanup pass and rebuilds the index when the store may
// have changed. A failed prune still triggers a rebuild: the store and the
// tree must not stay out of sync until the next cycle.
func (s *dbScheduler) pruneOnce(ctx context.Context, rebuildFn func(context.Context) error) {
	logger := logging.FromContext(ctx)
	var pruned int
	var failed bool
	if s.opts.maxItemsStored > 0 {
		n, err := s.rebuildSize()
		if err != nil {
			failed = true
			logger.Errorf("unable to rebuild store size: %v", err)
		}
		pruned += n
	}
	if s.opts.maxStorageTime > 0 {
		n, err := s.processOutdatedObjects()
		if err != nil {
			failed = true
			logger.Errorf("unable to rebuild outdated objects: %v", err)
		}
		pruned += n
	}
	if pruned > 0 || failed {
		if err := rebuildFn(ctx); err != nil {
			logger.Errorf("unable to rebuild index after prune: %v", err)
		}
	}
}

// Scheduler for running data cleanup functions in the store
func (s *dbScheduler) schedule(ctx context.Context, rebuildFn func(context.Context) error) {
	ticker := time.NewTicker(s.opts.rebuildDBTime)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.pruneOnce(ctx, rebuildFn)
		case <-ctx.Done():
			return
		}
	}
}
