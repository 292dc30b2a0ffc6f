package domain

import (
	"sort"
	"strings"
)

// Record is one row destined for a managed table: a column name to value
// mapping plus the table it belongs to. Records are produced by the
// response parser, enqueued once, and discarded after the writer commits
// the batch containing them.
type Record struct {
	Table  string
	Values map[string]interface{}
}

// ColumnSignature returns the record's sorted column names joined with a
// comma. Records sharing a signature can be bound to the same prepared
// statement.
func (r Record) ColumnSignature() string {
	cols := make([]string, 0, len(r.Values))
	for c := range r.Values {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return strings.Join(cols, ",")
}

// Columns returns the record's column names in sorted order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r.Values))
	for c := range r.Values {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// TableSchema is the declared shape of one managed table: its column set,
// its primary key, and the mapping from upstream API headers to column
// names. Schemas are built once at startup from the GORM models and are
// read-only afterwards.
type TableSchema struct {
	Name       string
	PrimaryKey []string
	Columns    map[string]struct{}
	// HeaderMap renames specific API headers; headers not present fall
	// back to their lowercased form.
	HeaderMap map[string]string
}

// MapHeader translates an upstream API header to a declared column name.
// The second return is false when the header maps to no declared column
// and should be dropped.
func (s *TableSchema) MapHeader(header string) (string, bool) {
	col, ok := s.HeaderMap[header]
	if !ok {
		col = strings.ToLower(header)
	}
	_, declared := s.Columns[col]
	return col, declared
}

// HasColumn reports whether the schema declares the given column.
func (s *TableSchema) HasColumn(col string) bool {
	_, ok := s.Columns[col]
	return ok
}

// MissingKeyColumns returns the primary key columns absent from the
// record. A record missing any key column cannot be upserted.
func (s *TableSchema) MissingKeyColumns(r Record) []string {
	var missing []string
	for _, k := range s.PrimaryKey {
		if _, ok := r.Values[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}
