package ingest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/domain"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/logger"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/nbastats"
)

// FetchUnit is one addressable unit of remote work: an endpoint, its
// query parameters, and the table the parsed records land in. Units are
// immutable once built and consumed by exactly one worker.
type FetchUnit struct {
	Endpoint string
	Params   map[string]string
	Table    string
	// ResultSet names the result set to parse; empty takes the first.
	ResultSet string
	// Extra keys (season, synthetic ids) stamped onto every record.
	Extra map[string]interface{}
	// Transform optionally post-processes each parsed record, e.g. to
	// compute a derived ratio. Nil means no transformation.
	Transform func(rec *domain.Record)
}

// Fetcher is the client surface the pool needs.
type Fetcher interface {
	Get(ctx context.Context, endpoint string, params map[string]string) (*nbastats.Response, error)
}

// SchemaSource resolves destination tables to their declared schemas.
type SchemaSource interface {
	Schema(table string) (*domain.TableSchema, bool)
}

// PoolResult summarizes one pool run. Attempted always equals the number
// of submitted units: a unit's permanent failure never prevents the
// rest from running.
type PoolResult struct {
	Attempted int64
	Failed    int64
	Enqueued  int64
}

// FetchWorkerPool runs a bounded set of workers that fetch, parse, and
// enqueue. The bound is deliberately small: all workers share one
// rate-limited client, so more concurrency would only generate 429s.
type FetchWorkerPool struct {
	client      Fetcher
	queue       *WriteQueue
	schemas     SchemaSource
	concurrency int
	log         *logger.Logger
}

// NewFetchWorkerPool creates a pool writing to the given queue.
func NewFetchWorkerPool(client Fetcher, queue *WriteQueue, schemas SchemaSource, concurrency int, log *logger.Logger) *FetchWorkerPool {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &FetchWorkerPool{
		client:      client,
		queue:       queue,
		schemas:     schemas,
		concurrency: concurrency,
		log:         log,
	}
}

// Run processes every unit and returns once all have been attempted.
// Results may be enqueued in any order; ordering is meaningless anyway
// because writes are idempotent upserts keyed by business identity.
func (p *FetchWorkerPool) Run(ctx context.Context, units []FetchUnit) PoolResult {
	unitCh := make(chan FetchUnit)
	var result PoolResult

	var wg sync.WaitGroup
	workers := p.concurrency
	if workers > len(units) {
		workers = len(units)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range unitCh {
				atomic.AddInt64(&result.Attempted, 1)
				enqueued, err := p.process(ctx, unit)
				if err != nil {
					atomic.AddInt64(&result.Failed, 1)
					p.log.WithFields(logger.Fields{
						logger.FieldEndpoint: unit.Endpoint,
						logger.FieldTable:    unit.Table,
					}).WithError(err).Error("Abandoning fetch unit")
					continue
				}
				atomic.AddInt64(&result.Enqueued, int64(enqueued))
			}
		}()
	}

	for _, unit := range units {
		select {
		case unitCh <- unit:
		case <-ctx.Done():
			// Remaining units are not submitted once the run is
			// cancelled; resumability covers them on the next run.
			close(unitCh)
			wg.Wait()
			return result
		}
	}
	close(unitCh)
	wg.Wait()
	return result
}

func (p *FetchWorkerPool) process(ctx context.Context, unit FetchUnit) (int, error) {
	schema, ok := p.schemas.Schema(unit.Table)
	if !ok {
		return 0, fmt.Errorf("no schema declared for table %s", unit.Table)
	}

	resp, err := p.client.Get(ctx, unit.Endpoint, unit.Params)
	if err != nil {
		return 0, err
	}

	records, err := nbastats.ParseResultSet(resp, unit.ResultSet, schema, unit.Extra, p.log)
	if err != nil {
		return 0, fmt.Errorf("parse %s response: %w", unit.Endpoint, err)
	}

	for i := range records {
		if unit.Transform != nil {
			unit.Transform(&records[i])
		}
		if err := p.queue.Push(ctx, records[i]); err != nil {
			return i, err
		}
	}
	return len(records), nil
}
