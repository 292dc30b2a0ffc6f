package repository

import (
	"fmt"
	"strings"

	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/domain"
)

// upsertStatement is one executable insert-or-update: SQL with ?
// placeholders plus the bound arguments, covering every record of one
// column signature.
type upsertStatement struct {
	SQL     string
	Args    []interface{}
	Rows    int
	Columns []string
}

// buildUpsertStatements turns a batch of records for one table into
// multi-row upsert statements. Records are grouped by column signature
// first: the batch makes no homogeneity assumption, each distinct column
// set gets its own statement rather than padding rows with invented
// nulls. Records missing a primary key column or carrying an undeclared
// column are rejected.
func buildUpsertStatements(schema *domain.TableSchema, records []domain.Record) ([]upsertStatement, []error) {
	groups := make(map[string][]domain.Record)
	var order []string
	var rejected []error

	for _, rec := range records {
		if missing := schema.MissingKeyColumns(rec); len(missing) > 0 {
			rejected = append(rejected, fmt.Errorf("record for %s missing key columns %v", schema.Name, missing))
			continue
		}
		undeclared := false
		for col := range rec.Values {
			if !schema.HasColumn(col) {
				rejected = append(rejected, fmt.Errorf("record for %s has undeclared column %s", schema.Name, col))
				undeclared = true
				break
			}
		}
		if undeclared {
			continue
		}
		sig := rec.ColumnSignature()
		if _, ok := groups[sig]; !ok {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], rec)
	}

	stmts := make([]upsertStatement, 0, len(order))
	for _, sig := range order {
		group := groups[sig]
		cols := group[0].Columns()

		placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",") + ")"
		values := make([]string, len(group))
		args := make([]interface{}, 0, len(group)*len(cols))
		for i, rec := range group {
			values[i] = placeholder
			for _, c := range cols {
				args = append(args, rec.Values[c])
			}
		}

		stmts = append(stmts, upsertStatement{
			SQL:     upsertSQL(schema, cols, strings.Join(values, ",")),
			Args:    args,
			Rows:    len(group),
			Columns: cols,
		})
	}
	return stmts, rejected
}

// upsertSQL builds the full INSERT ... VALUES ... ON CONFLICT statement
// for the given column list. The conflict target is always the declared
// primary key; non-key columns are updated from the excluded row, so
// re-running a step converges instead of duplicating. Both SQLite and
// PostgreSQL understand this form.
func upsertSQL(schema *domain.TableSchema, cols []string, valuesClause string) string {
	keySet := make(map[string]struct{}, len(schema.PrimaryKey))
	for _, k := range schema.PrimaryKey {
		keySet[k] = struct{}{}
	}
	var updates []string
	for _, c := range cols {
		if _, isKey := keySet[c]; !isKey {
			updates = append(updates, c+"=excluded."+c)
		}
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(schema.Name)
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ","))
	b.WriteString(") VALUES ")
	b.WriteString(valuesClause)
	b.WriteString(" ON CONFLICT (")
	b.WriteString(strings.Join(schema.PrimaryKey, ","))
	b.WriteString(")")
	if len(updates) == 0 {
		b.WriteString(" DO NOTHING")
	} else {
		b.WriteString(" DO UPDATE SET ")
		b.WriteString(strings.Join(updates, ","))
	}
	return b.String()
}
