package index

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"quadix/internal/database"
	"quadix/internal/logging"
	objectDb "quadix/internal/object/database"
	"quadix/internal/object/model"
	"quadix/pkg/container/quadtree"
)

// Contract for returning the Manager instance
type ProvideFn func(chan<- error) (Manager, error)

// The interface defines the behavior of the index service with all available
// methods. The quadtree itself is single-writer by design; this manager is
// the mutual-exclusion boundary built on top of it.
type Manager interface {
	AppendQuerier
	// Start method of the service
	Run(context.Context) error
	// Method for stopping the service
	Stop()
	// Drops both the tree and the persistent store
	Reset(context.Context) error
	// Point-in-time counters for the debug surface
	Stats() Stats
}

// Appender defines the behavior of the service for object intake
type Appender interface {
	// The method accepts objects from outside and indexes them
	Append(in ...model.Object) error
}

// The interface defines the behavior of the service only for region lookups
type Querier interface {
	// The method returns objects plausibly overlapping the region; with
	// exact set, candidates are post-filtered with an overlap test
	Query(region quadtree.Rect, exact bool) ([]model.Object, error)
	// Monotonic counter bumped on every mutation, used for cache keying
	Generation() uint64
}

// Aggregation interface for Appender and Querier interfaces
type AppendQuerier interface {
	Appender
	Querier
}

// Abstractions for getting dependencies
type (
	// function for getting stored objects
	fetchObjectsFn func(objectDb.FilterFn) ([]model.Object, error)
	// function for deleting multiple objects
	deleteObjectsFn func(context.Context, []model.Object) error
	// function to add sets of objects
	appendObjectsFn func(context.Context, []model.Object) error
	// number of objects in the store
	countObjectsFn func() (int, error)
)

// General structure for aggregation of dependency pulling functions
type pullDependencies struct {
	fetchObjects  fetchObjectsFn
	deleteObjects deleteObjectsFn
	appendObjects appendObjectsFn
	countObjects  countObjectsFn
}

type Stats struct {
	Bounds     quadtree.Rect
	Len        int
	Generation uint64
	MaxObjects int
	MaxLevels  int
}

type Options struct {
	bounds         quadtree.Rect
	maxObjects     int
	maxLevels      int
	strictGeometry bool
	maxItemsStored int
	maxStorageTime time.Duration
	rebuildDBTime  time.Duration
	dbFlushTime    time.Duration
	dbFlushSize    int
	deps           pullDependencies
}

type Option func(*manager)

func WithBounds(r quadtree.Rect) Option {
	return func(o *manager) {
		o.opts.bounds = r
	}
}

func WithMaxObjects(n int) Option {
	return func(o *manager) {
		o.opts.maxObjects = n
	}
}

func WithMaxLevels(n int) Option {
	return func(o *manager) {
		o.opts.maxLevels = n
	}
}

func WithStrictGeometry(strict bool) Option {
	return func(o *manager) {
		o.opts.strictGeometry = strict
	}
}

func WithMaxItemsStored(n int) Option {
	return func(o *manager) {
		o.opts.maxItemsStored = n
	}
}

func WithMaxStorageTime(t time.Duration) Option {
	return func(o *manager) {
		o.opts.maxStorageTime = t
	}
}

func WithRebuildDBTime(t time.Duration) Option {
	return func(o *manager) {
		o.opts.rebuildDBTime = t
	}
}

func WithDBFlushTime(t time.Duration) Option {
	return func(o *manager) {
		o.opts.dbFlushTime = t
	}
}

func WithDBFlushSize(n int) Option {
	return func(o *manager) {
		o.opts.dbFlushSize = n
	}
}

func New(db *database.DB, shutdownCh chan<- error, opts ...Option) (*manager, error) {
	if db == nil {
		return nil, fmt.Errorf("database instance is not defined")
	}
	m := &manager{
		objectDb:   objectDb.New(db),
		shutdownCh: shutdownCh,
		opts: Options{
			bounds:         quadtree.NewRect(0, 0, 1000, 1000),
			maxObjects:     10,
			maxLevels:      5,
			maxItemsStored: 1000000,
			rebuildDBTime:  15 * time.Second,
			dbFlushTime:    5 * time.Second,
			dbFlushSize:    10,
		},
	}
	for _, opt := range opts {
		opt(m)
	}

	m.opts.deps = pullDependencies{
		fetchObjects:  m.objectDb.FindAll,
		deleteObjects: m.objectDb.DeleteMany,
		appendObjects: m.objectDb.AppendMany,
		countObjects:  m.objectDb.CountAll,
	}

	tree, err := newTree(m.opts)
	if err != nil {
		return nil, fmt.Errorf("building quadtree: %w", err)
	}
	m.tree = tree
	m.txExecutor = newDBTxExecutor(dbTxExecutorOptions{
		dbFlushSize: m.opts.dbFlushSize,
		dbFlushTime: m.opts.dbFlushTime,
		deps:        m.opts.deps,
	}, shutdownCh)
	m.scheduler = newDBScheduler(dbSchedulerConfig{
		maxItemsStored: m.opts.maxItemsStored,
		maxStorageTime: m.opts.maxStorageTime,
		rebuildDBTime:  m.opts.rebuildDBTime,
		deps:           m.opts.deps,
	})

	return m, nil
}

func newTree(opts Options) (*quadtree.Node, error) {
	treeOpts := []quadtree.Option{
		quadtree.WithMaxObjects(opts.maxObjects),
		quadtree.WithMaxLevels(opts.maxLevels),
	}
	if opts.strictGeometry {
		return quadtree.NewStrict(opts.bounds, treeOpts...)
	}
	return quadtree.New(opts.bounds, treeOpts...), nil
}

type manager struct {
	mtx sync.Mutex

	opts       Options
	tree       *quadtree.Node
	objectDb   *objectDb.DB
	txExecutor *dbTxExecutor
	scheduler  *dbScheduler
	generation uint64
	shutdownCh chan<- error
	cancel     func()
	stopOnce   sync.Once
}

// Run restores the tree from the persistent store and starts the background
// flusher and pruning scheduler.
func (m *manager) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	if err := m.rebuild(ctx); err != nil {
		return fmt.Errorf("restoring index from store: %w", err)
	}
	logger.Infof("index restored, %d objects", m.Stats().Len)

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	go m.txExecutor.flusher(ctx)
	go m.scheduler.schedule(ctx, m.rebuild)
	return nil
}

func (m *manager) Stop() {
	m.stopOnce.Do(func() {
		if m.cancel != nil {
			m.cancel()
		}
	})
}

// Append indexes the objects and queues them for persistence. With strict
// geometry every object is validated up front, so a rejected batch leaves
// the index untouched.
func (m *manager) Append(in ...model.Object) error {
	if m.opts.strictGeometry {
		for i := range in {
			if !in[i].Bounds().Valid() {
				return fmt.Errorf("indexing object %s: %w", in[i].ID, quadtree.ErrNegativeSize)
			}
		}
	}

	m.mtx.Lock()
	for i := range in {
		if err := m.tree.Insert(in[i]); err != nil {
			m.mtx.Unlock()
			return fmt.Errorf("indexing object %s: %w", in[i].ID, err)
		}
	}
	m.mtx.Unlock()

	atomic.AddUint64(&m.generation, 1)
	for i := range in {
		m.txExecutor.append(context.Background(), in[i])
	}
	return nil
}

func (m *manager) Query(region quadtree.Rect, exact bool) ([]model.Object, error) {
	if m.opts.strictGeometry && !region.Valid() {
		return nil, quadtree.ErrNegativeSize
	}

	m.mtx.Lock()
	items := m.tree.Retrieve(nil, region)
	m.mtx.Unlock()

	objects := make([]model.Object, 0, len(items))
	for _, item := range items {
		object, ok := item.(model.Object)
		if !ok {
			continue
		}
		if exact && !region.Intersects(object.Bounds()) {
			continue
		}
		objects = append(objects, object)
	}
	return objects, nil
}

func (m *manager) Generation() uint64 {
	return atomic.LoadUint64(&m.generation)
}

// Reset drops the tree, the write-behind buffer and the persistent store.
// Dropping the buffer keeps a pre-reset object from being flushed back into
// the store afterwards.
func (m *manager) Reset(ctx context.Context) error {
	m.mtx.Lock()
	m.tree.Clear()
	m.mtx.Unlock()
	atomic.AddUint64(&m.generation, 1)

	m.txExecutor.drop()
	if err := m.objectDb.Reset(ctx); err != nil {
		return fmt.Errorf("resetting object store: %w", err)
	}
	return nil
}

func (m *manager) Stats() Stats {
	m.mtx.Lock()
	length := m.tree.Len()
	bounds := m.tree.Bounds()
	m.mtx.Unlock()
	return Stats{
		Bounds:     bounds,
		Len:        length,
		Generation: m.Generation(),
		MaxObjects: m.opts.maxObjects,
		MaxLevels:  m.opts.maxLevels,
	}
}

// rebuild replaces the tree contents with whatever the store currently holds.
// Buffered writes are flushed first so an appended object survives the swap.
func (m *manager) rebuild(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	if err := m.txExecutor.flush(); err != nil {
		return fmt.Errorf("flushing pending objects: %w", err)
	}
	objects, err := m.opts.deps.fetchObjects(nil)
	if err != nil {
		return fmt.Errorf("unable to fetch stored objects: %w", err)
	}

	m.mtx.Lock()
	m.tree.Clear()
	for i := range objects {
		if err := m.tree.Insert(objects[i]); err != nil {
			logger.Errorf("skipping malformed stored object %s: %v", objects[i].ID, err)
		}
	}
	m.mtx.Unlock()
	atomic.AddUint64(&m.generation, 1)
	return nil
}
