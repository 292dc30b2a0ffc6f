package ingest

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/config"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/domain"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/nbastats"
)

// fakeStatsStore backs the orchestrator with canned row counts and a
// permissive schema for every table.
type fakeStatsStore struct {
	fakeStore
	counts   map[string]int64
	countErr error
	missing  []domain.Player
}

func (s *fakeStatsStore) Schema(table string) (*domain.TableSchema, bool) {
	return &domain.TableSchema{
		Name:       table,
		PrimaryKey: []string{"player_id"},
		Columns: map[string]struct{}{
			"player_id": {}, "points": {}, "season": {},
		},
		HeaderMap: map[string]string{"PTS": "points"},
	}, true
}

func (s *fakeStatsStore) CountRows(_ context.Context, table, _, _ string) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.counts[table], nil
}

func (s *fakeStatsStore) PlayersMissingPosition(_ context.Context, _ string) ([]domain.Player, error) {
	return s.missing, nil
}

func (s *fakeStatsStore) TableRowCounts(_ context.Context) (map[string]int64, error) {
	return s.counts, nil
}

func testRuntime(fetcher Fetcher, store StatsStore) *Runtime {
	return &Runtime{
		Client: fetcher,
		Store:  store,
		Season: "2024-25",
		Ingest: config.IngestConfig{
			Workers:       1,
			BatchSize:     10,
			FlushInterval: time.Minute,
			QueueCapacity: 100,
		},
		Log: testLogger(),
	}
}

func stepConfig(name string, threshold int64) config.StepConfig {
	return config.StepConfig{Name: name, Enabled: true, RowThreshold: threshold}
}

func TestNewOrchestratorRejectsUnknownStep(t *testing.T) {
	rt := testRuntime(&fakeFetcher{}, &fakeStatsStore{})
	_, err := NewOrchestrator(rt, []config.StepConfig{{Name: "no_such_step", Enabled: true}}, false)
	if err == nil {
		t.Fatal("expected error for unknown step name")
	}
}

func TestOrchestratorSkipsPopulatedTable(t *testing.T) {
	fetcher := &fakeFetcher{}
	store := &fakeStatsStore{counts: map[string]int64{"teams": 100}}
	rt := testRuntime(fetcher, store)

	orch, err := NewOrchestrator(rt, []config.StepConfig{stepConfig("teams", 30)}, false)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	results := orch.Run(context.Background())

	if len(results) != 1 || results[0].Status != StepSkipped {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Reason == "" {
		t.Error("skip reason is empty")
	}
	if got := atomic.LoadInt64(&fetcher.calls); got != 0 {
		t.Errorf("skipped step issued %d requests", got)
	}
}

func TestOrchestratorRunsBelowThreshold(t *testing.T) {
	fetcher := &fakeFetcher{rows: map[string][][]interface{}{
		nbastats.EndpointTeamYears: {{float64(1), float64(0)}},
	}}
	store := &fakeStatsStore{counts: map[string]int64{"teams": 0}}
	rt := testRuntime(fetcher, store)

	orch, err := NewOrchestrator(rt, []config.StepConfig{stepConfig("teams", 30)}, false)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	results := orch.Run(context.Background())

	if len(results) != 1 || results[0].Status != StepCompleted {
		t.Fatalf("results = %+v", results)
	}
	if got := atomic.LoadInt64(&fetcher.calls); got != 1 {
		t.Errorf("expected 1 request, got %d", got)
	}
	if batches := store.snapshot(); len(batches) != 1 || batches[0].table != "teams" {
		t.Errorf("batches = %+v", batches)
	}
}

func TestOrchestratorForceBypassesProbe(t *testing.T) {
	fetcher := &fakeFetcher{rows: map[string][][]interface{}{
		nbastats.EndpointTeamYears: {{float64(1), float64(0)}},
	}}
	store := &fakeStatsStore{counts: map[string]int64{"teams": 10000}}
	rt := testRuntime(fetcher, store)

	orch, err := NewOrchestrator(rt, []config.StepConfig{stepConfig("teams", 30)}, true)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	results := orch.Run(context.Background())

	if results[0].Status != StepCompleted {
		t.Fatalf("force run result = %+v", results[0])
	}
	if got := atomic.LoadInt64(&fetcher.calls); got != 1 {
		t.Errorf("expected 1 request under force, got %d", got)
	}
}

func TestOrchestratorPerStepForce(t *testing.T) {
	fetcher := &fakeFetcher{}
	store := &fakeStatsStore{counts: map[string]int64{"teams": 10000}}
	rt := testRuntime(fetcher, store)

	sc := stepConfig("teams", 30)
	sc.Force = true
	orch, err := NewOrchestrator(rt, []config.StepConfig{sc}, false)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	results := orch.Run(context.Background())

	if results[0].Status != StepCompleted {
		t.Fatalf("per-step force result = %+v", results[0])
	}
	if got := atomic.LoadInt64(&fetcher.calls); got != 1 {
		t.Errorf("expected 1 request, got %d", got)
	}
}

func TestOrchestratorRunsWhenProbeErrors(t *testing.T) {
	fetcher := &fakeFetcher{}
	store := &fakeStatsStore{countErr: errors.New("table not migrated yet")}
	rt := testRuntime(fetcher, store)

	orch, err := NewOrchestrator(rt, []config.StepConfig{stepConfig("teams", 30)}, false)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	results := orch.Run(context.Background())

	if results[0].Status != StepCompleted {
		t.Fatalf("probe error must favor running, result = %+v", results[0])
	}
	if got := atomic.LoadInt64(&fetcher.calls); got != 1 {
		t.Errorf("expected 1 request, got %d", got)
	}
}

func TestOrchestratorIsolatesStepFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		failing: map[string]error{
			nbastats.EndpointTeamYears: &nbastats.TransientError{Endpoint: nbastats.EndpointTeamYears, StatusCode: 503},
		},
		rows: map[string][][]interface{}{
			nbastats.EndpointTeamStats: {{float64(1), float64(110)}},
		},
	}
	store := &fakeStatsStore{counts: map[string]int64{}}
	rt := testRuntime(fetcher, store)

	orch, err := NewOrchestrator(rt, []config.StepConfig{
		stepConfig("teams", 30),
		stepConfig("team_stats", 30),
	}, false)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	results := orch.Run(context.Background())

	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Status != StepFailed || results[0].Err == nil {
		t.Errorf("first step = %+v, want failed", results[0])
	}
	if results[1].Status != StepCompleted {
		t.Errorf("second step = %+v, want completed despite earlier failure", results[1])
	}
}

func TestOrchestratorSkipsDisabledStep(t *testing.T) {
	fetcher := &fakeFetcher{}
	rt := testRuntime(fetcher, &fakeStatsStore{})

	sc := config.StepConfig{Name: "teams", Enabled: false}
	orch, err := NewOrchestrator(rt, []config.StepConfig{sc}, false)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	results := orch.Run(context.Background())

	if results[0].Status != StepSkipped || results[0].Reason != "disabled in config" {
		t.Fatalf("disabled step result = %+v", results[0])
	}
	if got := atomic.LoadInt64(&fetcher.calls); got != 0 {
		t.Errorf("disabled step issued %d requests", got)
	}
}

func TestMissingPositionsProbe(t *testing.T) {
	step := &Step{Name: "player_positions", RowThreshold: 50}

	few := make([]domain.Player, 10)
	rt := testRuntime(&fakeFetcher{}, &fakeStatsStore{missing: few})
	skip, reason, err := missingPositionsProbe(context.Background(), rt, step)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if !skip || reason == "" {
		t.Errorf("skip = %v reason = %q, want skip with reason", skip, reason)
	}

	many := make([]domain.Player, 200)
	rt = testRuntime(&fakeFetcher{}, &fakeStatsStore{missing: many})
	skip, _, err = missingPositionsProbe(context.Background(), rt, step)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if skip {
		t.Error("probe skipped with 200 players missing position")
	}
}

func TestDeriveThreePointAttemptRate(t *testing.T) {
	rec := domain.Record{Table: "player_season_raw_stats", Values: map[string]interface{}{
		"fga": float64(10), "fg3a": float64(4),
	}}
	deriveThreePointAttemptRate(&rec)
	if got := rec.Values["three_point_attempt_rate"]; got != 0.4 {
		t.Errorf("rate = %v, want 0.4", got)
	}

	zero := domain.Record{Values: map[string]interface{}{"fga": float64(0), "fg3a": float64(0)}}
	deriveThreePointAttemptRate(&zero)
	if _, ok := zero.Values["three_point_attempt_rate"]; ok {
		t.Error("rate derived for zero attempts")
	}
}
