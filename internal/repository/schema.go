package repository

import (
	"fmt"
	"sync"

	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/domain"
	"gorm.io/gorm/schema"
)

// Shared API-header renames; headers not listed fall back to their
// lowercased form, and anything that still matches no declared column is
// dropped by the parser.
var commonHeaderRenames = map[string]string{
	"GP":  "games_played",
	"MIN": "minutes",
	"PTS": "points",
	"REB": "rebounds",
	"AST": "assists",
	"STL": "steals",
	"BLK": "blocks",
	"TOV": "turnovers",
}

// Per-table renames on top of the common set.
var tableHeaderRenames = map[string]map[string]string{
	"players": {
		"PERSON_ID":          "player_id",
		"DISPLAY_FIRST_LAST": "player_name",
		"POSITION":           "position",
	},
}

// BuildSchemas derives a TableSchema for every managed model from its
// GORM definition, so the declared column set and primary key used for
// batch validation are the same ones the migration creates. A model
// without an explicit primary key is a wiring error, not a warning.
func BuildSchemas() (map[string]*domain.TableSchema, error) {
	cache := &sync.Map{}
	namer := schema.NamingStrategy{}

	schemas := make(map[string]*domain.TableSchema)
	for _, model := range managedModels() {
		parsed, err := schema.Parse(model, cache, namer)
		if err != nil {
			return nil, fmt.Errorf("parse model schema: %w", err)
		}
		if len(parsed.PrimaryFields) == 0 {
			return nil, fmt.Errorf("table %s declares no primary key", parsed.Table)
		}

		columns := make(map[string]struct{}, len(parsed.Fields))
		for _, f := range parsed.Fields {
			if f.DBName != "" {
				columns[f.DBName] = struct{}{}
			}
		}

		pk := make([]string, 0, len(parsed.PrimaryFields))
		for _, f := range parsed.PrimaryFields {
			if _, ok := columns[f.DBName]; !ok {
				return nil, fmt.Errorf("table %s: primary key column %s not declared", parsed.Table, f.DBName)
			}
			pk = append(pk, f.DBName)
		}

		headerMap := make(map[string]string, len(commonHeaderRenames))
		for h, c := range commonHeaderRenames {
			headerMap[h] = c
		}
		for h, c := range tableHeaderRenames[parsed.Table] {
			headerMap[h] = c
		}

		schemas[parsed.Table] = &domain.TableSchema{
			Name:       parsed.Table,
			PrimaryKey: pk,
			Columns:    columns,
			HeaderMap:  headerMap,
		}
	}
	return schemas, nil
}
