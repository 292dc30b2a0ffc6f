package nbastats

import (
	"fmt"

	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/domain"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/logger"
)

// ParseResultSet converts one result set of a response into records for
// the destination table. Headers are mapped to declared columns through
// the table schema; headers with no declared column are dropped, rows
// shorter than the header list are logged and dropped. extra keys (the
// season, synthetic ids) are stamped onto every record and override
// parsed values of the same name.
//
// resultSet selects the named result set; an empty name takes the first
// one. The parser performs no I/O and invents no derived values.
func ParseResultSet(resp *Response, resultSet string, schema *domain.TableSchema, extra map[string]interface{}, log *logger.Logger) ([]domain.Record, error) {
	rs, err := findResultSet(resp, resultSet)
	if err != nil {
		return nil, err
	}

	var headers []string
	if rs.Headers.IsCategorized() {
		headers = rs.Headers.Categorized.ColumnNames()
	} else {
		headers = rs.Headers.Flat
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("result set %q for table %s has no headers", rs.Name, schema.Name)
	}

	// Resolve each header position to a declared column once, not per row.
	columns := make([]string, len(headers))
	keep := make([]bool, len(headers))
	for i, h := range headers {
		columns[i], keep[i] = schema.MapHeader(h)
	}

	records := make([]domain.Record, 0, len(rs.RowSet))
	dropped := 0
	for _, row := range rs.RowSet {
		if len(row) < len(headers) {
			dropped++
			continue
		}
		values := make(map[string]interface{}, len(headers)+len(extra))
		for i := range headers {
			if keep[i] {
				values[columns[i]] = row[i]
			}
		}
		for k, v := range extra {
			values[k] = v
		}
		records = append(records, domain.Record{Table: schema.Name, Values: values})
	}

	if dropped > 0 {
		log.WithFields(logger.Fields{
			logger.FieldTable: schema.Name,
			"result_set":      rs.Name,
			"dropped_rows":    dropped,
			"header_count":    len(headers),
		}).Warn("Dropped rows shorter than header list")
	}

	return records, nil
}

func findResultSet(resp *Response, name string) (*ResultSet, error) {
	if resp == nil || len(resp.ResultSets) == 0 {
		return nil, fmt.Errorf("response has no result sets")
	}
	if name == "" {
		return &resp.ResultSets[0], nil
	}
	for i := range resp.ResultSets {
		if resp.ResultSets[i].Name == name {
			return &resp.ResultSets[i], nil
		}
	}
	return nil, fmt.Errorf("result set %q not present in response", name)
}
