package index

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quadix/internal/logging"
	"quadix/internal/object/model"
)

func newDBTxExecutor(opts dbTxExecutorOptions, shutdownCh chan<- error) *dbTxExecutor {
	return &dbTxExecutor{opts: opts, shutdownCh: shutdownCh}
}

// dbTxExecutorOptions returns the structure with configuration options
type dbTxExecutorOptions struct {
	dbFlushSize int
	dbFlushTime time.Duration
	deps        pullDependencies
}

// A structure that represents the database transaction execution service.
// Accumulates a queue of objects and inserts it in bulk into persistent storage.
type dbTxExecutor struct {
	mtx sync.RWMutex

	opts dbTxExecutorOptions
	// Buffer that accumulates objects pending persistence
	buf        []model.Object
	shutdownCh chan<- error
}

// Urgently inserts all data from the buffer into persistent storage or returns an error.
// Callers rebuilding the tree from the store flush first, otherwise buffered
// objects vanish from the index until the next ticker cycle.
func (tx *dbTxExecutor) flush() error {
	tx.mtx.Lock()
	defer tx.mtx.Unlock()
	if err := tx.opts.deps.appendObjects(context.Background(), tx.buf); err != nil {
		return fmt.Errorf("txExecutor: append many operation failed: %v", err)
	}
	tx.buf = tx.buf[:0]
	return nil
}

// drop discards buffered objects without persisting them.
func (tx *dbTxExecutor) drop() {
	tx.mtx.Lock()
	tx.buf = tx.buf[:0]
	tx.mtx.Unlock()
}

// This is the main method for adding data. It adds data to the buffer.
// If the buffer is full, it calls the bulkAppend method
func (tx *dbTxExecutor) append(ctx context.Context, data model.Object) {
	tx.mtx.Lock()
	if tx.buf == nil {
		tx.buf = []model.Object{}
	}

	tx.buf = append(tx.buf, data)
	bufLen := len(tx.buf)
	tx.mtx.Unlock()

	if bufLen >= tx.opts.dbFlushSize {
		go tx.bulkAppend(ctx)
	}
}

// Bulk adds data to persistent storage and clears the buffer
func (tx *dbTxExecutor) bulkAppend(ctx context.Context) {
	logger := logging.FromContext(ctx)

	tx.mtx.Lock()
	tmpBuf := make([]model.Object, len(tx.buf))
	copy(tmpBuf, tx.buf)
	tx.buf = tx.buf[:0]
	tx.mtx.Unlock()

	if err := tx.opts.deps.appendObjects(context.Background(), tmpBuf); err != nil {
		logger.Errorf("txExecutor: append many operation failed: %v", err)
	}
}

// Every n seconds, data from the buffer must be inserted into the database
func (tx *dbTxExecutor) flusher(ctx context.Context) {
	defer func() {
		tx.shutdownCh <- tx.flush()
	}()
	ticker := time.NewTicker(tx.opts.dbFlushTime)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			tx.bulkAppend(ctx)
		case <-ctx.Done():
			return
		}
	}
}
