package nbastats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Response is the decoded stats API payload: one or more named result
// sets. Some endpoints report resultSets as an array, others as a single
// object; both decode into the same shape.
type Response struct {
	Resource   string
	Parameters json.RawMessage
	ResultSets []ResultSet
}

// ResultSet is one named block of headers plus rows. Headers come in two
// shapes: a flat column list, or a two-level structure where the first
// block names repeating categories and the second names the prefix
// columns and the metric suffixes applied to every category.
type ResultSet struct {
	Name    string
	Headers ResultHeaders
	RowSet  [][]interface{}
}

// ResultHeaders is the tagged variant over the two header shapes. Exactly
// one of Flat and Categorized is set.
type ResultHeaders struct {
	Flat        []string
	Categorized *CategorizedHeaders
}

// IsCategorized reports whether these headers use the two-level shape.
func (h ResultHeaders) IsCategorized() bool {
	return h.Categorized != nil
}

// CategorizedHeaders describes a two-level header: Prefix columns come
// first in every row, then, for each category in order, one value per
// metric.
type CategorizedHeaders struct {
	Prefix     []string
	Categories []string
	Metrics    []string
}

// ColumnNames synthesizes the flattened column list: the prefix columns
// as reported, followed by {category}_{metric} for every category and
// metric, yielding len(Prefix) + len(Categories)*len(Metrics) names.
// Prefix headers are mapped to columns later, like any flat header.
func (h *CategorizedHeaders) ColumnNames() []string {
	names := make([]string, 0, len(h.Prefix)+len(h.Categories)*len(h.Metrics))
	names = append(names, h.Prefix...)
	for _, cat := range h.Categories {
		for _, m := range h.Metrics {
			names = append(names, NormalizeColumnName(cat)+"_"+NormalizeColumnName(m))
		}
	}
	return names
}

// NormalizeColumnName lowercases a header or category label and squashes
// every run of non-alphanumeric characters into a single underscore, so
// "In The Paint (Non-RA)" becomes "in_the_paint_non_ra".
func NormalizeColumnName(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// UnmarshalJSON accepts resultSets as either an array of result sets or
// a single result-set object.
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw struct {
		Resource   string          `json:"resource"`
		Parameters json.RawMessage `json:"parameters"`
		ResultSets json.RawMessage `json:"resultSets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Resource = raw.Resource
	r.Parameters = raw.Parameters
	r.ResultSets = nil

	trimmed := bytes.TrimSpace(raw.ResultSets)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return nil
	case trimmed[0] == '[':
		return json.Unmarshal(trimmed, &r.ResultSets)
	case trimmed[0] == '{':
		var single ResultSet
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		r.ResultSets = []ResultSet{single}
		return nil
	default:
		return fmt.Errorf("unexpected resultSets shape: %s", snippet(trimmed))
	}
}

// UnmarshalJSON decodes headers as either a flat string list or a list
// of two-level header blocks. Any other shape is an error rather than a
// silent guess.
func (rs *ResultSet) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name    string          `json:"name"`
		Headers json.RawMessage `json:"headers"`
		RowSet  [][]interface{} `json:"rowSet"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rs.Name = raw.Name
	rs.RowSet = raw.RowSet

	var flat []string
	if err := json.Unmarshal(raw.Headers, &flat); err == nil {
		rs.Headers = ResultHeaders{Flat: flat}
		return nil
	}

	var blocks []headerBlock
	if err := json.Unmarshal(raw.Headers, &blocks); err != nil {
		return fmt.Errorf("result set %q: unexpected headers shape: %s", raw.Name, snippet(raw.Headers))
	}
	cat, err := categorizedFromBlocks(raw.Name, blocks)
	if err != nil {
		return err
	}
	rs.Headers = ResultHeaders{Categorized: cat}
	return nil
}

// headerBlock is one entry of a two-level header as the API reports it.
type headerBlock struct {
	Name          string   `json:"name"`
	ColumnsToSkip int      `json:"columnsToSkip"`
	ColumnSpan    int      `json:"columnSpan"`
	ColumnNames   []string `json:"columnNames"`
}

// categorizedFromBlocks interprets the API's two-block header structure:
// the first block names the categories (spanning ColumnSpan metric
// columns each, after ColumnsToSkip prefix columns), the second block
// names the prefix columns followed by the per-category metric suffixes.
func categorizedFromBlocks(name string, blocks []headerBlock) (*CategorizedHeaders, error) {
	if len(blocks) != 2 {
		return nil, fmt.Errorf("result set %q: expected 2 header blocks, got %d", name, len(blocks))
	}
	catBlock, colBlock := blocks[0], blocks[1]
	if catBlock.ColumnSpan <= 0 {
		return nil, fmt.Errorf("result set %q: category block has column span %d", name, catBlock.ColumnSpan)
	}
	prefixLen := catBlock.ColumnsToSkip
	if prefixLen < 0 || prefixLen+catBlock.ColumnSpan > len(colBlock.ColumnNames) {
		return nil, fmt.Errorf("result set %q: prefix length %d out of range for %d columns",
			name, prefixLen, len(colBlock.ColumnNames))
	}
	return &CategorizedHeaders{
		Prefix:     colBlock.ColumnNames[:prefixLen],
		Categories: catBlock.ColumnNames,
		Metrics:    colBlock.ColumnNames[prefixLen : prefixLen+catBlock.ColumnSpan],
	}, nil
}

func snippet(data []byte) string {
	const max = 80
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
