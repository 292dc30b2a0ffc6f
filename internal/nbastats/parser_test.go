package nbastats

import (
	"io"
	"testing"

	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/domain"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Output: io.Discard})
}

func testSchema(table string, pk []string, cols []string, renames map[string]string) *domain.TableSchema {
	columns := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		columns[c] = struct{}{}
	}
	return &domain.TableSchema{
		Name:       table,
		PrimaryKey: pk,
		Columns:    columns,
		HeaderMap:  renames,
	}
}

func TestParseFlatResultSet(t *testing.T) {
	resp := &Response{
		ResultSets: []ResultSet{{
			Name:    "LeagueDashPlayerStats",
			Headers: ResultHeaders{Flat: []string{"PLAYER_ID", "PTS"}},
			RowSet: [][]interface{}{
				{float64(1), float64(10)},
				{float64(2), float64(20)},
			},
		}},
	}
	schema := testSchema("player_season_raw_stats",
		[]string{"player_id", "season"},
		[]string{"player_id", "points", "season"},
		map[string]string{"PTS": "points"})

	records, err := ParseResultSet(resp, "", schema, map[string]interface{}{"season": "2024-25"}, testLogger())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first := records[0]
	if first.Table != "player_season_raw_stats" {
		t.Errorf("table = %q", first.Table)
	}
	if got := first.Values["player_id"]; got != float64(1) {
		t.Errorf("player_id = %v", got)
	}
	if got := first.Values["points"]; got != float64(10) {
		t.Errorf("points = %v", got)
	}
	if got := first.Values["season"]; got != "2024-25" {
		t.Errorf("season = %v", got)
	}
	if got := records[1].Values["points"]; got != float64(20) {
		t.Errorf("second record points = %v", got)
	}
}

func TestParseDropsUnknownHeaders(t *testing.T) {
	resp := &Response{
		ResultSets: []ResultSet{{
			Headers: ResultHeaders{Flat: []string{"PLAYER_ID", "SOME_NEW_METRIC", "PTS"}},
			RowSet:  [][]interface{}{{float64(1), float64(99), float64(10)}},
		}},
	}
	schema := testSchema("t", []string{"player_id"},
		[]string{"player_id", "points"},
		map[string]string{"PTS": "points"})

	records, err := ParseResultSet(resp, "", schema, nil, testLogger())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if _, ok := records[0].Values["some_new_metric"]; ok {
		t.Error("unknown header was not dropped")
	}
	if len(records[0].Values) != 2 {
		t.Errorf("expected 2 values, got %d: %v", len(records[0].Values), records[0].Values)
	}
}

func TestParseDropsShortRows(t *testing.T) {
	resp := &Response{
		ResultSets: []ResultSet{{
			Headers: ResultHeaders{Flat: []string{"PLAYER_ID", "PTS"}},
			RowSet: [][]interface{}{
				{float64(1), float64(10)},
				{float64(2)}, // truncated row
				{float64(3), float64(30)},
			},
		}},
	}
	schema := testSchema("t", []string{"player_id"},
		[]string{"player_id", "points"},
		map[string]string{"PTS": "points"})

	records, err := ParseResultSet(resp, "", schema, nil, testLogger())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected short row to be dropped, got %d records", len(records))
	}
}

func TestParseCategorizedResultSet(t *testing.T) {
	const prefixCols = 2
	categories := []string{"Restricted Area", "Mid-Range", "Corner 3"}
	metrics := []string{"FGM", "FGA", "FG_PCT"}

	row := []interface{}{float64(201939), "Stephen Curry"}
	for i := 0; i < len(categories)*len(metrics); i++ {
		row = append(row, float64(i))
	}

	resp := &Response{
		ResultSets: []ResultSet{{
			Name: "ShotLocations",
			Headers: ResultHeaders{Categorized: &CategorizedHeaders{
				Prefix:     []string{"PLAYER_ID", "PLAYER_NAME"},
				Categories: categories,
				Metrics:    metrics,
			}},
			RowSet: [][]interface{}{row},
		}},
	}

	cols := []string{"player_id", "player_name", "season"}
	for _, c := range categories {
		for _, m := range metrics {
			cols = append(cols, NormalizeColumnName(c)+"_"+NormalizeColumnName(m))
		}
	}
	schema := testSchema("player_shot_locations", []string{"player_id", "season"}, cols, nil)

	records, err := ParseResultSet(resp, "ShotLocations", schema, map[string]interface{}{"season": "2024-25"}, testLogger())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	// prefix + C*M parsed values + injected season
	if want := prefixCols + len(categories)*len(metrics) + 1; len(rec.Values) != want {
		t.Fatalf("expected %d values, got %d", want, len(rec.Values))
	}
	// Positional offset: category i, metric j sits at prefix + i*M + j.
	if got := rec.Values["mid_range_fga"]; got != float64(4) {
		t.Errorf("mid_range_fga = %v, want 4", got)
	}
	if got := rec.Values["corner_3_fg_pct"]; got != float64(8) {
		t.Errorf("corner_3_fg_pct = %v, want 8", got)
	}
}

func TestParseMissingResultSet(t *testing.T) {
	resp := &Response{ResultSets: []ResultSet{{Name: "Other"}}}
	schema := testSchema("t", []string{"id"}, []string{"id"}, nil)
	if _, err := ParseResultSet(resp, "Wanted", schema, nil, testLogger()); err == nil {
		t.Fatal("expected error for missing result set")
	}
	if _, err := ParseResultSet(&Response{}, "", schema, nil, testLogger()); err == nil {
		t.Fatal("expected error for empty response")
	}
}
