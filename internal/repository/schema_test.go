package repository

import (
	"testing"
)

func TestBuildSchemasCoversManagedModels(t *testing.T) {
	schemas, err := BuildSchemas()
	if err != nil {
		t.Fatalf("BuildSchemas: %v", err)
	}

	want := []string{
		"teams",
		"players",
		"player_season_raw_stats",
		"player_season_advanced_stats",
		"player_shot_locations",
		"player_tracking_drives",
		"player_tracking_catch_shoot",
		"player_tracking_pull_up",
		"team_season_stats",
	}
	if len(schemas) != len(want) {
		t.Errorf("expected %d schemas, got %d", len(want), len(schemas))
	}
	for _, table := range want {
		s, ok := schemas[table]
		if !ok {
			t.Errorf("no schema for table %s", table)
			continue
		}
		if len(s.PrimaryKey) == 0 {
			t.Errorf("table %s has no primary key", table)
		}
		for _, pk := range s.PrimaryKey {
			if !s.HasColumn(pk) {
				t.Errorf("table %s: primary key column %s not declared", table, pk)
			}
		}
	}
}

func TestBuildSchemasHeaderMapping(t *testing.T) {
	schemas, err := BuildSchemas()
	if err != nil {
		t.Fatalf("BuildSchemas: %v", err)
	}

	players := schemas["players"]
	if players == nil {
		t.Fatal("no players schema")
	}

	cases := []struct {
		header string
		column string
		ok     bool
	}{
		{"PERSON_ID", "player_id", true},
		{"DISPLAY_FIRST_LAST", "player_name", true},
		{"POSITION", "position", true},
		// lowercase fallback for headers without an explicit rename
		{"TEAM_ID", "team_id", true},
		{"ROSTER_STATUS", "roster_status", false},
	}
	for _, tc := range cases {
		col, ok := players.MapHeader(tc.header)
		if ok != tc.ok || col != tc.column {
			t.Errorf("MapHeader(%q) = %q, %v; want %q, %v", tc.header, col, ok, tc.column, tc.ok)
		}
	}

	raw := schemas["player_season_raw_stats"]
	if raw == nil {
		t.Fatal("no player_season_raw_stats schema")
	}
	if col, ok := raw.MapHeader("PTS"); !ok || col != "points" {
		t.Errorf("MapHeader(PTS) = %q, %v", col, ok)
	}
	if col, ok := raw.MapHeader("GP"); !ok || col != "games_played" {
		t.Errorf("MapHeader(GP) = %q, %v", col, ok)
	}
}

func TestBuildSchemasTeamsKey(t *testing.T) {
	schemas, err := BuildSchemas()
	if err != nil {
		t.Fatalf("BuildSchemas: %v", err)
	}

	teams := schemas["teams"]
	if len(teams.PrimaryKey) != 1 || teams.PrimaryKey[0] != "team_id" {
		t.Errorf("teams primary key = %v", teams.PrimaryKey)
	}

	players := schemas["players"]
	if len(players.PrimaryKey) != 2 {
		t.Errorf("players primary key = %v, want composite (player_id, season)", players.PrimaryKey)
	}
}
