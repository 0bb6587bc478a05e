package parser

import (
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// MaxSampleRows bounds the rows of a table copied into a summary.
	MaxSampleRows = 100
	// MaxPreviewRunes bounds text previews.
	MaxPreviewRunes = 500
)

// ColumnStats are the descriptive statistics of a numeric column.
type ColumnStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
}

// Summarize condenses parsed data into the form embedded in the model prompt.
func Summarize(data any) map[string]any {
	switch v := data.(type) {
	case *Table:
		return summarizeTable(v)
	case []any:
		if t, ok := tableFromRecords(v); ok {
			return summarizeTable(t)
		}
	case map[string]any:
		return map[string]any{
			"type":   "object",
			"keys":   sortedKeys(v),
			"sample": v,
		}
	case string:
		return map[string]any{
			"type":    "text",
			"length":  utf8.RuneCountInString(v),
			"preview": truncate(v, MaxPreviewRunes),
		}
	}
	return map[string]any{"type": "unknown", "data": truncate(fmt.Sprint(data), MaxPreviewRunes)}
}

func summarizeTable(t *Table) map[string]any {
	if t == nil || len(t.Rows) == 0 {
		return map[string]any{}
	}

	dtypes := make(map[string]string, len(t.Columns))
	statistics := map[string]ColumnStats{}
	for _, col := range t.Columns {
		dt := t.dtype(col)
		dtypes[col] = dt
		if dt != DTypeInt && dt != DTypeFloat {
			continue
		}
		if s, ok := describe(t.numericValues(col), len(t.Rows)); ok {
			statistics[col] = s
		}
	}

	return map[string]any{
		"shape":       map[string]int{"rows": len(t.Rows), "columns": len(t.Columns)},
		"columns":     t.Columns,
		"dtypes":      dtypes,
		"sample_data": t.Rows[:min(MaxSampleRows, len(t.Rows))],
		"statistics":  statistics,
	}
}

// describe computes the statistics of vals. The standard deviation is the
// sample one, and zero for single-row tables.
func describe(vals []float64, rows int) (ColumnStats, bool) {
	if len(vals) == 0 {
		return ColumnStats{}, false
	}
	sorted := slices.Clone(vals)
	slices.Sort(sorted)

	s := ColumnStats{
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: median(sorted),
	}
	if rows > 1 && len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s, true
}

// median of sorted values, averaging the middle pair for even counts.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
