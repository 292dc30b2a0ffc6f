package ingest

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/domain"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/nbastats"
)

// resultSetNames mirrors the result-set name each real endpoint reports,
// so responses served by the fake parse under the names the steps request.
var resultSetNames = map[string]string{
	nbastats.EndpointTeamYears:      nbastats.ResultSetTeamYears,
	nbastats.EndpointAllPlayers:     nbastats.ResultSetAllPlayers,
	nbastats.EndpointPlayerInfo:     nbastats.ResultSetPlayerInfo,
	nbastats.EndpointPlayerStats:    nbastats.ResultSetLeagueDash,
	nbastats.EndpointShotLocations:  nbastats.ResultSetShotLocations,
	nbastats.EndpointPlayerTracking: nbastats.ResultSetPtStats,
	nbastats.EndpointTeamStats:      nbastats.ResultSetTeamStats,
}

// fakeFetcher serves canned responses per endpoint and fails endpoints
// listed in failing.
type fakeFetcher struct {
	calls   int64
	failing map[string]error
	rows    map[string][][]interface{}
}

func (f *fakeFetcher) Get(_ context.Context, endpoint string, _ map[string]string) (*nbastats.Response, error) {
	atomic.AddInt64(&f.calls, 1)
	if err, ok := f.failing[endpoint]; ok {
		return nil, err
	}
	return &nbastats.Response{
		ResultSets: []nbastats.ResultSet{{
			Name:    resultSetNames[endpoint],
			Headers: nbastats.ResultHeaders{Flat: []string{"PLAYER_ID", "PTS"}},
			RowSet:  f.rows[endpoint],
		}},
	}, nil
}

type fakeSchemas struct {
	schemas map[string]*domain.TableSchema
}

func (f *fakeSchemas) Schema(table string) (*domain.TableSchema, bool) {
	s, ok := f.schemas[table]
	return s, ok
}

func poolSchemas() *fakeSchemas {
	return &fakeSchemas{schemas: map[string]*domain.TableSchema{
		"player_season_raw_stats": {
			Name:       "player_season_raw_stats",
			PrimaryKey: []string{"player_id", "season"},
			Columns: map[string]struct{}{
				"player_id": {}, "points": {}, "season": {},
			},
			HeaderMap: map[string]string{"PTS": "points"},
		},
	}}
}

func TestPoolProcessesAllUnits(t *testing.T) {
	fetcher := &fakeFetcher{rows: map[string][][]interface{}{
		"a": {{float64(1), float64(10)}, {float64(2), float64(20)}},
		"b": {{float64(3), float64(30)}},
	}}
	queue := NewWriteQueue(100)
	pool := NewFetchWorkerPool(fetcher, queue, poolSchemas(), 2, testLogger())

	units := []FetchUnit{
		{Endpoint: "a", Table: "player_season_raw_stats", Extra: map[string]interface{}{"season": "2024-25"}},
		{Endpoint: "b", Table: "player_season_raw_stats", Extra: map[string]interface{}{"season": "2024-25"}},
	}
	result := pool.Run(context.Background(), units)

	if result.Attempted != 2 || result.Failed != 0 {
		t.Fatalf("result = %+v", result)
	}
	if result.Enqueued != 3 {
		t.Errorf("enqueued = %d, want 3", result.Enqueued)
	}
	if got := queue.Len(); got != 3 {
		t.Errorf("queue length = %d, want 3", got)
	}
}

func TestPoolIsolatesUnitFailures(t *testing.T) {
	fetcher := &fakeFetcher{
		failing: map[string]error{"bad": &nbastats.PermanentError{Endpoint: "bad", StatusCode: 404}},
		rows: map[string][][]interface{}{
			"good": {{float64(1), float64(10)}},
		},
	}
	queue := NewWriteQueue(100)
	pool := NewFetchWorkerPool(fetcher, queue, poolSchemas(), 1, testLogger())

	units := []FetchUnit{
		{Endpoint: "bad", Table: "player_season_raw_stats"},
		{Endpoint: "good", Table: "player_season_raw_stats", Extra: map[string]interface{}{"season": "2024-25"}},
	}
	result := pool.Run(context.Background(), units)

	if result.Attempted != 2 {
		t.Errorf("attempted = %d, want 2 (failure must not stop the pool)", result.Attempted)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if result.Enqueued != 1 {
		t.Errorf("enqueued = %d, want 1", result.Enqueued)
	}
}

func TestPoolResolvesNamedResultSet(t *testing.T) {
	fetcher := &fakeFetcher{rows: map[string][][]interface{}{
		nbastats.EndpointTeamStats: {{float64(1), float64(110)}},
	}}
	queue := NewWriteQueue(10)
	pool := NewFetchWorkerPool(fetcher, queue, poolSchemas(), 1, testLogger())

	// Units built by the steps always name the result set they want; the
	// pool must find it by that name, not just take the first one.
	units := []FetchUnit{{
		Endpoint:  nbastats.EndpointTeamStats,
		Table:     "player_season_raw_stats",
		ResultSet: nbastats.ResultSetTeamStats,
		Extra:     map[string]interface{}{"season": "2024-25"},
	}}
	result := pool.Run(context.Background(), units)

	if result.Failed != 0 {
		t.Fatalf("named result set not resolved: %+v", result)
	}
	if result.Enqueued != 1 {
		t.Errorf("enqueued = %d, want 1", result.Enqueued)
	}
}

func TestPoolAppliesTransform(t *testing.T) {
	fetcher := &fakeFetcher{rows: map[string][][]interface{}{
		"a": {{float64(1), float64(10)}},
	}}
	queue := NewWriteQueue(10)
	pool := NewFetchWorkerPool(fetcher, queue, poolSchemas(), 1, testLogger())

	units := []FetchUnit{{
		Endpoint: "a",
		Table:    "player_season_raw_stats",
		Extra:    map[string]interface{}{"season": "2024-25"},
		Transform: func(rec *domain.Record) {
			rec.Values["points"] = float64(99)
		},
	}}
	if result := pool.Run(context.Background(), units); result.Enqueued != 1 {
		t.Fatalf("result = %+v", result)
	}

	queue.Close()
	rec, ok := <-queue.records()
	if !ok {
		t.Fatal("queue empty")
	}
	if got := rec.Values["points"]; got != float64(99) {
		t.Errorf("transform not applied, points = %v", got)
	}
}

func TestPoolStopsSubmittingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{rows: map[string][][]interface{}{}}
	queue := NewWriteQueue(10)
	pool := NewFetchWorkerPool(fetcher, queue, poolSchemas(), 1, testLogger())

	units := make([]FetchUnit, 50)
	for i := range units {
		units[i] = FetchUnit{Endpoint: "a", Table: "player_season_raw_stats"}
	}

	done := make(chan PoolResult, 1)
	go func() { done <- pool.Run(ctx, units) }()

	select {
	case result := <-done:
		if result.Attempted == int64(len(units)) {
			t.Error("cancelled run attempted every unit")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not return after cancellation")
	}
}
