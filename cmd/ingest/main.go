package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/config"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/ingest"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/logger"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/nbastats"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/repository"
)

func main() {
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	season := flag.String("season", "", "Season to ingest (e.g. 2024-25); overrides config")
	force := flag.Bool("force", false, "Bypass idempotency probes and re-run every step")
	stepsFlag := flag.String("steps", "", "Comma-separated subset of steps to run (default: all enabled)")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}
	if *season != "" {
		cfg.Season = *season
	}

	stepConfigs := cfg.Steps
	if *stepsFlag != "" {
		stepConfigs = filterSteps(stepConfigs, strings.Split(*stepsFlag, ","))
		if len(stepConfigs) == 0 {
			appLogger.WithField("steps", *stepsFlag).Fatal("No configured steps match the -steps filter")
		}
	}

	appLogger.WithFields(logger.Fields{
		logger.FieldSeason: cfg.Season,
		"force":            *force,
		"steps":            len(stepConfigs),
	}).Info("Starting ingestion")

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	store, err := repository.NewStore(db, appLogger)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize store")
	}

	client := nbastats.NewClient(nbastats.ClientConfig{
		BaseURL:            cfg.Client.BaseURL,
		MinRequestInterval: cfg.Client.MinRequestInterval,
		RequestJitter:      cfg.Client.RequestJitter,
		Timeout:            cfg.Client.Timeout,
		MaxRetries:         cfg.Client.MaxRetries,
		BackoffBase:        cfg.Client.BackoffBase,
		BackoffFactor:      cfg.Client.BackoffFactor,
		BackoffCap:         cfg.Client.BackoffCap,
		JitterMin:          cfg.Client.JitterMin,
		JitterMax:          cfg.Client.JitterMax,
	}, appLogger)

	rt := &ingest.Runtime{
		Client: client,
		Store:  store,
		Season: cfg.Season,
		Ingest: cfg.Ingest,
		Log:    appLogger,
	}

	orch, err := ingest.NewOrchestrator(rt, stepConfigs, *force)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to build orchestrator")
	}

	// A long run is stopped with SIGINT and resumed later; the probes
	// pick up where it left off.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	results := orch.Run(ctx)
	for _, r := range results {
		fields := logger.Fields{
			logger.FieldStep: r.Name,
			"status":         string(r.Status),
		}
		if r.Reason != "" {
			fields["reason"] = r.Reason
		}
		l := appLogger.WithFields(fields)
		if r.Err != nil {
			l.WithError(r.Err).Error("Step result")
			continue
		}
		l.Info("Step result")
	}
}

func filterSteps(steps []config.StepConfig, names []string) []config.StepConfig {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.TrimSpace(n)] = true
	}
	var out []config.StepConfig
	for _, s := range steps {
		if want[s.Name] {
			out = append(out, s)
		}
	}
	return out
}
