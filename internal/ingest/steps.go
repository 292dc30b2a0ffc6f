package ingest

import (
	"context"
	"fmt"

	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/domain"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/logger"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/nbastats"
)

// Steps returns the step registry in canonical order. The config's step
// list selects and orders entries from here; the registry itself never
// decides what runs.
func Steps() []Step {
	return []Step{
		{
			Name:         "teams",
			Description:  "Fetch the franchise index",
			Table:        "teams",
			RowThreshold: 30,
			Run:          runTeams,
		},
		{
			Name:         "players",
			Description:  "Fetch the season roster index",
			Table:        "players",
			RowThreshold: 400,
			PerSeason:    true,
			Run:          runPlayers,
		},
		{
			Name:              "player_positions",
			Description:       "Backfill player positions from per-player bio records",
			Table:             "players",
			IdempotencyColumn: "position",
			RowThreshold:      50,
			PerSeason:         true,
			Probe:             missingPositionsProbe,
			Run:               runPlayerPositions,
		},
		{
			Name:         "player_raw_stats",
			Description:  "Fetch per-game traditional box-score stats",
			Table:        "player_season_raw_stats",
			RowThreshold: 100,
			PerSeason:    true,
			Run:          runPlayerRawStats,
		},
		{
			Name:         "player_advanced_stats",
			Description:  "Fetch advanced efficiency stats",
			Table:        "player_season_advanced_stats",
			RowThreshold: 100,
			PerSeason:    true,
			Run:          runPlayerAdvancedStats,
		},
		{
			Name:         "player_shot_locations",
			Description:  "Fetch by-zone shooting splits",
			Table:        "player_shot_locations",
			RowThreshold: 100,
			PerSeason:    true,
			Run:          runPlayerShotLocations,
		},
		{
			Name:         "player_tracking",
			Description:  "Fetch player tracking measures (drives, catch-and-shoot, pull-up)",
			Table:        "player_tracking_drives",
			RowThreshold: 100,
			PerSeason:    true,
			Run:          runPlayerTracking,
		},
		{
			Name:         "team_stats",
			Description:  "Fetch per-game team stats",
			Table:        "team_season_stats",
			RowThreshold: 30,
			PerSeason:    true,
			Run:          runTeamStats,
		},
	}
}

func runTeams(ctx context.Context, rt *Runtime) error {
	units := []FetchUnit{{
		Endpoint:  nbastats.EndpointTeamYears,
		Params:    map[string]string{"LeagueID": "00"},
		Table:     "teams",
		ResultSet: nbastats.ResultSetTeamYears,
	}}
	return runUnits(ctx, rt, units)
}

func runPlayers(ctx context.Context, rt *Runtime) error {
	units := []FetchUnit{{
		Endpoint:  nbastats.EndpointAllPlayers,
		Params:    nbastats.AllPlayersParams(rt.Season),
		Table:     "players",
		ResultSet: nbastats.ResultSetAllPlayers,
		Extra:     seasonExtra(rt.Season),
	}}
	return runUnits(ctx, rt, units)
}

// missingPositionsProbe implements the special-cased skip rule for the
// position backfill: skip only when fewer than the threshold number of
// players are still missing a position.
func missingPositionsProbe(ctx context.Context, rt *Runtime, step *Step) (bool, string, error) {
	missing, err := rt.Store.PlayersMissingPosition(ctx, rt.Season)
	if err != nil {
		return false, "", err
	}
	if int64(len(missing)) < step.RowThreshold {
		return true, fmt.Sprintf("only %d players missing position (threshold %d)", len(missing), step.RowThreshold), nil
	}
	return false, "", nil
}

func runPlayerPositions(ctx context.Context, rt *Runtime) error {
	missing, err := rt.Store.PlayersMissingPosition(ctx, rt.Season)
	if err != nil {
		return fmt.Errorf("list players missing position: %w", err)
	}
	units := make([]FetchUnit, 0, len(missing))
	for _, p := range missing {
		units = append(units, FetchUnit{
			Endpoint:  nbastats.EndpointPlayerInfo,
			Params:    nbastats.PlayerInfoParams(p.PlayerID),
			Table:     "players",
			ResultSet: nbastats.ResultSetPlayerInfo,
			Extra:     seasonExtra(rt.Season),
		})
	}
	return runUnits(ctx, rt, units)
}

func runPlayerRawStats(ctx context.Context, rt *Runtime) error {
	units := []FetchUnit{{
		Endpoint:  nbastats.EndpointPlayerStats,
		Params:    nbastats.LeagueDashParams(rt.Season, "Base"),
		Table:     "player_season_raw_stats",
		ResultSet: nbastats.ResultSetLeagueDash,
		Extra:     seasonExtra(rt.Season),
		Transform: deriveThreePointAttemptRate,
	}}
	return runUnits(ctx, rt, units)
}

func runPlayerAdvancedStats(ctx context.Context, rt *Runtime) error {
	units := []FetchUnit{{
		Endpoint:  nbastats.EndpointPlayerStats,
		Params:    nbastats.LeagueDashParams(rt.Season, "Advanced"),
		Table:     "player_season_advanced_stats",
		ResultSet: nbastats.ResultSetLeagueDash,
		Extra:     seasonExtra(rt.Season),
	}}
	return runUnits(ctx, rt, units)
}

func runPlayerShotLocations(ctx context.Context, rt *Runtime) error {
	units := []FetchUnit{{
		Endpoint:  nbastats.EndpointShotLocations,
		Params:    nbastats.ShotLocationParams(rt.Season),
		Table:     "player_shot_locations",
		ResultSet: nbastats.ResultSetShotLocations,
		Extra:     seasonExtra(rt.Season),
	}}
	return runUnits(ctx, rt, units)
}

func runPlayerTracking(ctx context.Context, rt *Runtime) error {
	measures := []struct {
		measure string
		table   string
	}{
		{nbastats.PtMeasureDrives, "player_tracking_drives"},
		{nbastats.PtMeasureCatchShoot, "player_tracking_catch_shoot"},
		{nbastats.PtMeasurePullUp, "player_tracking_pull_up"},
	}
	units := make([]FetchUnit, 0, len(measures))
	for _, m := range measures {
		units = append(units, FetchUnit{
			Endpoint:  nbastats.EndpointPlayerTracking,
			Params:    nbastats.TrackingParams(rt.Season, m.measure),
			Table:     m.table,
			ResultSet: nbastats.ResultSetPtStats,
			Extra:     seasonExtra(rt.Season),
		})
	}
	return runUnits(ctx, rt, units)
}

func runTeamStats(ctx context.Context, rt *Runtime) error {
	units := []FetchUnit{{
		Endpoint:  nbastats.EndpointTeamStats,
		Params:    nbastats.LeagueDashParams(rt.Season, "Base"),
		Table:     "team_season_stats",
		ResultSet: nbastats.ResultSetTeamStats,
		Extra:     seasonExtra(rt.Season),
	}}
	return runUnits(ctx, rt, units)
}

// runUnits drives one pool/writer pair over the units and reports what
// happened. Per-unit failures are already logged by the pool; the step
// only fails when nothing could be fetched at all.
func runUnits(ctx context.Context, rt *Runtime, units []FetchUnit) error {
	if len(units) == 0 {
		return nil
	}
	result, written, failed := rt.RunPipeline(ctx, units)

	var totalWritten, totalFailed int64
	for _, n := range written {
		totalWritten += n
	}
	for _, n := range failed {
		totalFailed += n
	}
	rt.Log.WithFields(logger.Fields{
		"units":       result.Attempted,
		"unit_errors": result.Failed,
		"enqueued":    result.Enqueued,
		"written":     totalWritten,
		"discarded":   totalFailed,
	}).Info("Step pipeline finished")

	if result.Failed == result.Attempted && result.Attempted > 0 {
		return fmt.Errorf("all %d fetch units failed", result.Attempted)
	}
	return nil
}

func seasonExtra(season string) map[string]interface{} {
	return map[string]interface{}{"season": season}
}

// deriveThreePointAttemptRate computes fg3a/fga for a raw-stats record.
// The parser never invents derived values; this is the step layer's job.
func deriveThreePointAttemptRate(rec *domain.Record) {
	fga, okA := toFloat(rec.Values["fga"])
	fg3a, ok3 := toFloat(rec.Values["fg3a"])
	if okA && ok3 && fga > 0 {
		rec.Values["three_point_attempt_rate"] = fg3a / fga
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case nil:
		return 0, false
	default:
		return 0, false
	}
}
