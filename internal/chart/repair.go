package chart

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultDatasetLabel is given to datasets that arrive without a label.
const DefaultDatasetLabel = "Dataset"

var titleCaser = cases.Title(language.Und)

// Repair normalizes a document that failed validation. It drops what cannot be
// salvaged, fills missing titles, labels and options, coerces data values to
// numbers and pads or truncates data to the label count. It never fails: the
// worst outcome is a document with no charts, which the next validation
// rejects. raw is not modified.
//
// A dataset holding a single value that cannot be read as a number is dropped
// as a whole, even though short or long data arrays are only clamped.
func Repair(raw any) map[string]any {
	obj, ok := raw.(map[string]any)
	if !ok {
		return map[string]any{"charts": []any{}}
	}

	out := maps.Clone(obj)
	items, _ := obj["charts"].([]any)
	charts := make([]any, 0, len(items))
	for _, item := range items {
		if c, ok := repairChart(item); ok {
			charts = append(charts, c)
		}
	}
	out["charts"] = charts
	return out
}

func repairChart(raw any) (map[string]any, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	typ, hasType := obj["type"]
	rawData, hasData := obj["data"]
	if !hasType || !hasData {
		return nil, false
	}

	c := maps.Clone(obj)
	if isBlank(c["title"]) {
		c["title"] = synthesizeTitle(typ)
	}

	dataObj, ok := rawData.(map[string]any)
	if !ok {
		return nil, false
	}
	labels, ok := dataObj["labels"].([]any)
	if !ok {
		return nil, false
	}
	rawDatasets, ok := dataObj["datasets"].([]any)
	if !ok {
		return nil, false
	}

	datasets := make([]any, 0, len(rawDatasets))
	for _, item := range rawDatasets {
		if ds, ok := repairDataset(item, len(labels)); ok {
			datasets = append(datasets, ds)
		}
	}
	if len(datasets) == 0 {
		return nil, false
	}

	data := maps.Clone(dataObj)
	data["datasets"] = datasets
	c["data"] = data

	if _, ok := c["options"]; !ok {
		c["options"] = map[string]any{
			"responsive": true,
			"plugins": map[string]any{
				"title": map[string]any{"display": true, "text": c["title"]},
			},
		}
	}
	return c, true
}

func repairDataset(raw any, labelCount int) (map[string]any, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	values, ok := obj["data"].([]any)
	if !ok {
		return nil, false
	}

	nums := make([]any, labelCount)
	for i := range nums {
		nums[i] = 0.0
	}
	for i, v := range values {
		f, ok := toFloat(v)
		if !ok {
			return nil, false
		}
		if i < labelCount {
			nums[i] = f
		}
	}

	ds := maps.Clone(obj)
	if isBlank(ds["label"]) {
		ds["label"] = DefaultDatasetLabel
	}
	ds["data"] = nums
	return ds, true
}

// isBlank reports whether a title or label is absent or an empty string.
func isBlank(v any) bool {
	return v == nil || v == ""
}

// toFloat coerces a generated value to a finite number. null counts as zero,
// booleans as 1 and 0, and numeric strings are parsed.
func toFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case nil:
		return 0, true
	case json.Number:
		f, err = t.Float64()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err = cast.ToFloat64E(s)
	case map[string]any, []any:
		return 0, false
	default:
		f, err = cast.ToFloat64E(t)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func synthesizeTitle(typ any) string {
	s, ok := typ.(string)
	if !ok {
		s = fmt.Sprint(typ)
	}
	return titleCaser.String(s) + " Chart"
}
