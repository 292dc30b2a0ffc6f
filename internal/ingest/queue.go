package ingest

import (
	"context"
	"sync"

	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/domain"
)

// WriteQueue is the FIFO between the fetch workers and the single
// writer. The capacity is generous relative to the rate-limited fetch
// pace, so producers effectively never block; closing the queue is the
// stop sentinel the writer drains to.
type WriteQueue struct {
	ch        chan domain.Record
	closeOnce sync.Once
}

// NewWriteQueue creates a queue with the given capacity.
func NewWriteQueue(capacity int) *WriteQueue {
	if capacity <= 0 {
		capacity = 1024
	}
	return &WriteQueue{ch: make(chan domain.Record, capacity)}
}

// Push enqueues one record, blocking only under backpressure. Returns
// the context error if the run is cancelled while waiting.
func (q *WriteQueue) Push(ctx context.Context, rec domain.Record) error {
	select {
	case q.ch <- rec:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close signals that no more records will arrive. Safe to call more
// than once; the writer exits after draining what remains.
func (q *WriteQueue) Close() {
	q.closeOnce.Do(func() { close(q.ch) })
}

// records exposes the receive side to the writer.
func (q *WriteQueue) records() <-chan domain.Record {
	return q.ch
}

// Len reports the records currently buffered, for logging.
func (q *WriteQueue) Len() int {
	return len(q.ch)
}
