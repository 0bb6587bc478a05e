package parser

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Column data types, named like their pandas counterparts because the model
// has seen those names far more often than anything else.
const (
	DTypeInt    = "int64"
	DTypeFloat  = "float64"
	DTypeBool   = "bool"
	DTypeObject = "object"
)

// Table is a parsed sheet. Cell values are int64, float64, bool, string or nil.
type Table struct {
	Columns []string
	Rows    []map[string]any
}

// MarshalJSON emits the records form, a list of row objects.
func (t *Table) MarshalJSON() ([]byte, error) {
	if t.Rows == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.Rows)
}

// newTable builds a table from a header and string records. Types are
// inferred per column: a column is numeric only if every non-empty cell is.
func newTable(header []string, records [][]string) *Table {
	t := &Table{Columns: uniqueColumns(header), Rows: make([]map[string]any, len(records))}
	for i := range records {
		t.Rows[i] = make(map[string]any, len(t.Columns))
	}

	for c, name := range t.Columns {
		cells := make([]string, len(records))
		for r, rec := range records {
			if c < len(rec) {
				cells[r] = strings.TrimSpace(rec[c])
			}
		}
		for r, v := range convertColumn(cells) {
			t.Rows[r][name] = v
		}
	}
	return t
}

func convertColumn(cells []string) []any {
	out := make([]any, len(cells))
	for _, conv := range []func(string) (any, bool){parseIntCell, parseFloatCell, parseBoolCell} {
		ok := true
		for i, s := range cells {
			if s == "" {
				out[i] = nil
				continue
			}
			if out[i], ok = conv(s); !ok {
				break
			}
		}
		if ok {
			return out
		}
	}
	for i, s := range cells {
		if s == "" {
			out[i] = nil
		} else {
			out[i] = s
		}
	}
	return out
}

func parseIntCell(s string) (any, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

func parseFloatCell(s string) (any, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

func parseBoolCell(s string) (any, bool) {
	switch s {
	case "true", "True", "TRUE":
		return true, true
	case "false", "False", "FALSE":
		return false, true
	}
	return nil, false
}

// uniqueColumns names blank headers and suffixes duplicates the way pandas does.
func uniqueColumns(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n)
		} else {
			seen[name] = 1
		}
		out[i] = name
	}
	return out
}

// tableFromRecords turns a decoded list of objects into a table. Column order
// is first appearance.
func tableFromRecords(items []any) (*Table, bool) {
	if len(items) == 0 {
		return nil, false
	}
	if _, ok := items[0].(map[string]any); !ok {
		return nil, false
	}

	t := &Table{}
	known := map[string]bool{}
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			rec = map[string]any{}
		}
		row := make(map[string]any, len(rec))
		for _, k := range sortedKeys(rec) {
			if !known[k] {
				known[k] = true
				t.Columns = append(t.Columns, k)
			}
			row[k] = normalizeNumber(rec[k])
		}
		t.Rows = append(t.Rows, row)
	}
	for _, row := range t.Rows {
		for _, c := range t.Columns {
			if _, ok := row[c]; !ok {
				row[c] = nil
			}
		}
	}
	return t, true
}

func normalizeNumber(v any) any {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case int:
		return int64(n)
	default:
		return v
	}
}

// dtype reports the column type over its non-null values.
func (t *Table) dtype(col string) string {
	var ints, floats, bools, others, nulls int
	for _, row := range t.Rows {
		switch row[col].(type) {
		case nil:
			nulls++
		case int64:
			ints++
		case float64:
			floats++
		case bool:
			bools++
		default:
			others++
		}
	}
	switch {
	case others > 0, bools > 0 && ints+floats > 0:
		return DTypeObject
	case bools > 0 && nulls == 0:
		return DTypeBool
	case bools > 0:
		return DTypeObject
	case floats > 0, ints > 0 && nulls > 0:
		return DTypeFloat
	case ints > 0:
		return DTypeInt
	default:
		return DTypeObject
	}
}

// numericValues returns the non-null values of a numeric column.
func (t *Table) numericValues(col string) []float64 {
	vals := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		switch n := row[col].(type) {
		case int64:
			vals = append(vals, float64(n))
		case float64:
			vals = append(vals, n)
		}
	}
	return vals
}
