package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/config"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/domain"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/logger"
)

// StatsStore is the persistence surface the orchestrator and steps
// depend on: the writer's upsert plus the read-only inspection used by
// probes and verification.
type StatsStore interface {
	BatchStore
	SchemaSource
	CountRows(ctx context.Context, table, season, populatedColumn string) (int64, error)
	PlayersMissingPosition(ctx context.Context, season string) ([]domain.Player, error)
	TableRowCounts(ctx context.Context) (map[string]int64, error)
}

// StepStatus is the terminal state of one step in a run.
type StepStatus string

const (
	StepSkipped   StepStatus = "skipped"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

// StepResult records what one step did during a run.
type StepResult struct {
	Name     string
	Status   StepStatus
	Reason   string
	Written  int64
	Duration time.Duration
	Err      error
}

// ProbeFunc decides whether a step can be skipped. It returns skip plus
// a human-readable reason for the run log.
type ProbeFunc func(ctx context.Context, rt *Runtime, step *Step) (skip bool, reason string, err error)

// Step is one named unit of the pipeline: a description, the table it
// populates, its idempotency probe parameters, and a run function that
// internally drives a FetchWorkerPool/SingleWriter pair.
type Step struct {
	Name        string
	Description string
	Table       string
	// IdempotencyColumn, when set, restricts the default probe to rows
	// where this column is populated.
	IdempotencyColumn string
	RowThreshold      int64
	PerSeason         bool
	// Probe overrides the default row-count probe when set.
	Probe ProbeFunc
	Run   func(ctx context.Context, rt *Runtime) error

	// Filled in from config.
	Enabled bool
	Force   bool
}

// Runtime bundles what step run functions need: the shared client, the
// store, the season, and the pipeline knobs.
type Runtime struct {
	Client StatsClient
	Store  StatsStore
	Season string
	Ingest config.IngestConfig
	Log    *logger.Logger
}

// StatsClient is the fetch surface steps and pools share.
type StatsClient = Fetcher

// RunPipeline wires a fresh queue, writer, and pool for one step,
// processes the units, closes the queue, and waits for the writer to
// drain. This is the only place the three pipeline pieces meet.
func (rt *Runtime) RunPipeline(ctx context.Context, units []FetchUnit) (PoolResult, map[string]int64, map[string]int64) {
	queue := NewWriteQueue(rt.Ingest.QueueCapacity)
	writer := NewSingleWriter(rt.Store, queue, WriterConfig{
		BatchSize:     rt.Ingest.BatchSize,
		FlushInterval: rt.Ingest.FlushInterval,
	}, rt.Log)
	writer.Start(ctx)

	pool := NewFetchWorkerPool(rt.Client, queue, rt.Store, rt.Ingest.Workers, rt.Log)
	result := pool.Run(ctx, units)

	queue.Close()
	writer.Wait()
	return result, writer.WrittenByTable(), writer.FailedByTable()
}

// Orchestrator runs the configured steps strictly in declaration order,
// probing each for idempotent skippability first, and isolates per-step
// failures so one broken step never aborts a multi-hour run.
type Orchestrator struct {
	rt    *Runtime
	steps []Step
	force bool
	log   *logger.Logger
}

// NewOrchestrator merges the step registry with the configured step
// list. Config order wins; steps the config does not name are not run.
// Naming a step the registry does not know is a wiring error.
func NewOrchestrator(rt *Runtime, stepConfigs []config.StepConfig, force bool) (*Orchestrator, error) {
	registry := make(map[string]Step, len(Steps()))
	for _, s := range Steps() {
		registry[s.Name] = s
	}

	var steps []Step
	for _, sc := range stepConfigs {
		step, ok := registry[sc.Name]
		if !ok {
			return nil, fmt.Errorf("unknown step %q in config", sc.Name)
		}
		step.Enabled = sc.Enabled
		step.Force = sc.Force
		if sc.RowThreshold > 0 {
			step.RowThreshold = sc.RowThreshold
		}
		steps = append(steps, step)
	}

	return &Orchestrator{rt: rt, steps: steps, force: force, log: rt.Log}, nil
}

// Run executes the pipeline for the runtime's season and returns the
// per-step results. The returned slice always covers every enabled step;
// failures are recorded, not propagated.
func (o *Orchestrator) Run(ctx context.Context) []StepResult {
	runID := uuid.New().String()
	ctx = logger.SetRunID(ctx, runID)
	ctx = logger.SetSeason(ctx, o.rt.Season)

	o.log.WithFields(logger.Fields{
		logger.FieldRunID:  runID,
		logger.FieldSeason: o.rt.Season,
		"steps":            len(o.steps),
		"force":            o.force,
	}).Info("Starting ingestion run")

	var results []StepResult
	for _, step := range o.steps {
		if ctx.Err() != nil {
			o.log.Warn("Run cancelled, remaining steps not attempted")
			break
		}
		if !step.Enabled {
			results = append(results, StepResult{Name: step.Name, Status: StepSkipped, Reason: "disabled in config"})
			continue
		}
		results = append(results, o.runStep(ctx, step))
	}

	o.verify(ctx, results)
	return results
}

func (o *Orchestrator) runStep(ctx context.Context, step Step) StepResult {
	ctx = logger.SetStep(ctx, step.Name)
	log := logger.FromContext(ctx)
	start := time.Now()

	if skip, reason := o.probe(ctx, step, log); skip {
		log.WithField("reason", reason).Info("Skipping step")
		return StepResult{Name: step.Name, Status: StepSkipped, Reason: reason, Duration: time.Since(start)}
	}

	log.WithField("description", step.Description).Info("Running step")
	if err := step.Run(ctx, o.rt); err != nil {
		log.WithFields(logger.Fields{
			"description":      step.Description,
			logger.FieldSeason: o.rt.Season,
		}).WithError(err).Error("Step failed")
		return StepResult{Name: step.Name, Status: StepFailed, Err: err, Duration: time.Since(start)}
	}

	log.WithField(logger.FieldDurationMs, time.Since(start).Milliseconds()).Info("Step completed")
	return StepResult{Name: step.Name, Status: StepCompleted, Duration: time.Since(start)}
}

// probe decides Skip vs Run. forceRun (global or per-step) bypasses the
// probe unconditionally; probe errors favor running, since running is
// idempotent and skipping on bad information is not.
func (o *Orchestrator) probe(ctx context.Context, step Step, log *logger.Logger) (bool, string) {
	if o.force || step.Force {
		return false, ""
	}

	probe := step.Probe
	if probe == nil {
		probe = defaultProbe
	}
	skip, reason, err := probe(ctx, o.rt, &step)
	if err != nil {
		log.WithError(err).Warn("Idempotency probe failed, running step anyway")
		return false, ""
	}
	return skip, reason
}

// defaultProbe skips when the target table already holds at least the
// threshold number of rows, season-filtered for per-season steps and
// restricted to rows with the idempotency column populated when one is
// declared.
func defaultProbe(ctx context.Context, rt *Runtime, step *Step) (bool, string, error) {
	season := ""
	if step.PerSeason {
		season = rt.Season
	}
	count, err := rt.Store.CountRows(ctx, step.Table, season, step.IdempotencyColumn)
	if err != nil {
		return false, "", err
	}
	if count >= step.RowThreshold {
		return true, fmt.Sprintf("%s already has %d rows (threshold %d)", step.Table, count, step.RowThreshold), nil
	}
	return false, "", nil
}

// verify logs the final row count of every managed table so operators
// can see at a glance what did and did not populate.
func (o *Orchestrator) verify(ctx context.Context, results []StepResult) {
	completed, skipped, failed := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case StepCompleted:
			completed++
		case StepSkipped:
			skipped++
		case StepFailed:
			failed++
		}
	}
	o.log.WithFields(logger.Fields{
		"completed": completed,
		"skipped":   skipped,
		"failed":    failed,
	}).Info("Run finished")

	counts, err := o.rt.Store.TableRowCounts(ctx)
	if err != nil {
		o.log.WithError(err).Error("Verification pass failed")
		return
	}
	for table, count := range counts {
		o.log.WithFields(logger.Fields{
			logger.FieldTable: table,
			logger.FieldCount: count,
		}).Info("Verification row count")
	}
}
