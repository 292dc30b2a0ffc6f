package ingest

import (
	"context"
	"time"

	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/domain"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/logger"
)

// BatchStore is the slice of the persistence layer the writer needs:
// one transactional upsert per batch.
type BatchStore interface {
	BatchUpsert(ctx context.Context, table string, records []domain.Record) (int, error)
}

// WriterConfig holds the batching knobs.
type WriterConfig struct {
	// BatchSize caps how many records one transaction carries.
	BatchSize int
	// FlushInterval bounds how long a partial batch waits while the
	// producers are idle before it is committed anyway.
	FlushInterval time.Duration
}

// SingleWriter drains the write queue on exactly one goroutine and is
// the only component that issues write statements. Consecutive records
// for the same table are batched; a batch flushes when the table
// changes, when it reaches BatchSize, or when the queue stays idle for
// FlushInterval. A failed batch is logged and discarded rather than
// retried, since re-running the owning step is idempotent.
type SingleWriter struct {
	store BatchStore
	queue *WriteQueue
	cfg   WriterConfig
	log   *logger.Logger

	done chan struct{}

	// Mutated only on the writer goroutine; read after Wait returns.
	written map[string]int64
	failed  map[string]int64
}

// NewSingleWriter creates a writer over the given queue and store.
func NewSingleWriter(store BatchStore, queue *WriteQueue, cfg WriterConfig, log *logger.Logger) *SingleWriter {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	return &SingleWriter{
		store:   store,
		queue:   queue,
		cfg:     cfg,
		log:     log,
		done:    make(chan struct{}),
		written: make(map[string]int64),
		failed:  make(map[string]int64),
	}
}

// Start launches the writer goroutine.
func (w *SingleWriter) Start(ctx context.Context) {
	go w.run(ctx)
}

// Wait blocks until the queue has been closed and fully drained.
func (w *SingleWriter) Wait() {
	<-w.done
}

// WrittenByTable returns rows committed per table. Only valid after
// Wait has returned.
func (w *SingleWriter) WrittenByTable() map[string]int64 {
	return w.written
}

// FailedByTable returns rows discarded per table due to failed batch
// commits. Only valid after Wait has returned.
func (w *SingleWriter) FailedByTable() map[string]int64 {
	return w.failed
}

func (w *SingleWriter) run(ctx context.Context) {
	defer close(w.done)

	var batch []domain.Record
	var table string

	flush := func() {
		if len(batch) == 0 {
			return
		}
		w.flushBatch(ctx, table, batch)
		batch = nil
	}

	for {
		idle := time.After(w.cfg.FlushInterval)
		select {
		case rec, ok := <-w.queue.records():
			if !ok {
				flush()
				return
			}
			if rec.Table != table {
				flush()
				table = rec.Table
			}
			batch = append(batch, rec)
			if len(batch) >= w.cfg.BatchSize {
				flush()
			}
		case <-idle:
			flush()
		}
	}
}

func (w *SingleWriter) flushBatch(ctx context.Context, table string, batch []domain.Record) {
	written, err := w.store.BatchUpsert(ctx, table, batch)
	if err != nil {
		// At-most-once for a failed batch: discard rather than stall the
		// pipeline. The owning step can be re-run safely.
		w.failed[table] += int64(len(batch))
		w.log.WithFields(logger.Fields{
			logger.FieldTable: table,
			logger.FieldCount: len(batch),
		}).WithError(err).Error("Batch commit failed, discarding batch")
		return
	}
	w.written[table] += int64(written)
	w.log.WithFields(logger.Fields{
		logger.FieldTable: table,
		logger.FieldCount: written,
	}).Debug("Committed batch")
}
