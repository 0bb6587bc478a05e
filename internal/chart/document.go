// Package chart validates, repairs and themes the Chart.js documents produced by
// the visualization model.
//
// Generated JSON enters the package as an untyped tree (the result of
// DecodeGenerated or json.Unmarshal into an any). Parse turns a tree into a typed
// *Document or reports the first violation as a *ValidationError. Repair works on
// the untyped tree because its input may be arbitrarily malformed; Theme works on
// an already valid *Document.
package chart

import (
	"encoding/json"
	"maps"
	"strconv"
)

// Type is a Chart.js chart type.
type Type string

const (
	TypeBar       Type = "bar"
	TypeLine      Type = "line"
	TypePie       Type = "pie"
	TypeDoughnut  Type = "doughnut"
	TypeRadar     Type = "radar"
	TypePolarArea Type = "polarArea"
	TypeScatter   Type = "scatter"
	TypeBubble    Type = "bubble"
)

// Types lists every accepted chart type in schema order.
func Types() []Type {
	return []Type{TypeBar, TypeLine, TypePie, TypeDoughnut, TypeRadar, TypePolarArea, TypeScatter, TypeBubble}
}

// MaxCharts is the largest number of charts a document may carry.
const MaxCharts = 10

// Document is a visualization document that passed validation.
type Document struct {
	Explanation string  `json:"explanation" validate:"required"`
	Charts      []Chart `json:"charts" validate:"required,min=1,max=10"`

	// Extra holds keys the model emitted that the schema does not name.
	Extra map[string]any `json:"-"`
}

// Chart is a single chart specification.
type Chart struct {
	Type    Type           `json:"type" validate:"required,oneof=bar line pie doughnut radar polarArea scatter bubble"`
	Title   string         `json:"title" validate:"required"`
	Data    *Data          `json:"data" validate:"required"`
	Options map[string]any `json:"options,omitempty"`

	Extra map[string]any `json:"-"`
}

// Data holds the labels and datasets of a chart.
type Data struct {
	Labels   []Label   `json:"labels" validate:"required,min=1"`
	Datasets []Dataset `json:"datasets" validate:"required,min=1,dive"`

	Extra map[string]any `json:"-"`
}

// Dataset is one data series. Optional style fields are nil when absent so
// that theming can fill gaps without overwriting anything.
type Dataset struct {
	Label           *string   `json:"label" validate:"required"`
	Data            []float64 `json:"data" validate:"required"`
	BackgroundColor *Color    `json:"backgroundColor,omitempty"`
	BorderColor     *string   `json:"borderColor,omitempty"`
	BorderWidth     *float64  `json:"borderWidth,omitempty"`

	Extra map[string]any `json:"-"`
}

// Label is a category label. Models emit both strings and numbers.
type Label struct {
	Text   string
	Number *float64
}

// TextLabel returns a string label.
func TextLabel(s string) Label { return Label{Text: s} }

// NumberLabel returns a numeric label.
func NumberLabel(f float64) Label { return Label{Number: &f} }

func (l Label) String() string {
	if l.Number != nil {
		return strconv.FormatFloat(*l.Number, 'f', -1, 64)
	}
	return l.Text
}

func (l Label) MarshalJSON() ([]byte, error) {
	if l.Number != nil {
		return json.Marshal(*l.Number)
	}
	return json.Marshal(l.Text)
}

// Color is either a single color or one color per data point.
type Color struct {
	Single string
	List   []string
}

// IsList reports whether the color is a per-point list.
func (c Color) IsList() bool { return c.List != nil }

func (c Color) MarshalJSON() ([]byte, error) {
	if c.List != nil {
		return json.Marshal(c.List)
	}
	return json.Marshal(c.Single)
}

func (d Document) MarshalJSON() ([]byte, error) {
	m := withExtra(d.Extra)
	m["explanation"] = d.Explanation
	m["charts"] = d.Charts
	return json.Marshal(m)
}

func (c Chart) MarshalJSON() ([]byte, error) {
	m := withExtra(c.Extra)
	m["type"] = c.Type
	m["title"] = c.Title
	m["data"] = c.Data
	if c.Options != nil {
		m["options"] = c.Options
	}
	return json.Marshal(m)
}

func (d Data) MarshalJSON() ([]byte, error) {
	m := withExtra(d.Extra)
	m["labels"] = d.Labels
	m["datasets"] = d.Datasets
	return json.Marshal(m)
}

func (d Dataset) MarshalJSON() ([]byte, error) {
	m := withExtra(d.Extra)
	m["label"] = d.Label
	m["data"] = d.Data
	if d.BackgroundColor != nil {
		m["backgroundColor"] = d.BackgroundColor
	}
	if d.BorderColor != nil {
		m["borderColor"] = *d.BorderColor
	}
	if d.BorderWidth != nil {
		m["borderWidth"] = *d.BorderWidth
	}
	return json.Marshal(m)
}

func withExtra(extra map[string]any) map[string]any {
	m := make(map[string]any, len(extra)+5)
	maps.Copy(m, extra)
	return m
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		Explanation: d.Explanation,
		Charts:      make([]Chart, len(d.Charts)),
		Extra:       cloneMap(d.Extra),
	}
	for i, c := range d.Charts {
		out.Charts[i] = c.clone()
	}
	return out
}

func (c Chart) clone() Chart {
	out := Chart{
		Type:    c.Type,
		Title:   c.Title,
		Options: cloneMap(c.Options),
		Extra:   cloneMap(c.Extra),
	}
	if c.Data != nil {
		data := &Data{
			Labels:   make([]Label, len(c.Data.Labels)),
			Datasets: make([]Dataset, len(c.Data.Datasets)),
			Extra:    cloneMap(c.Data.Extra),
		}
		for i, l := range c.Data.Labels {
			if l.Number != nil {
				l = NumberLabel(*l.Number)
			}
			data.Labels[i] = l
		}
		for i, ds := range c.Data.Datasets {
			data.Datasets[i] = ds.clone()
		}
		out.Data = data
	}
	return out
}

func (d Dataset) clone() Dataset {
	out := Dataset{
		Data:  append([]float64(nil), d.Data...),
		Extra: cloneMap(d.Extra),
	}
	if d.Data != nil && out.Data == nil {
		out.Data = []float64{}
	}
	if d.Label != nil {
		s := *d.Label
		out.Label = &s
	}
	if d.BackgroundColor != nil {
		bg := Color{Single: d.BackgroundColor.Single}
		if d.BackgroundColor.List != nil {
			bg.List = append([]string{}, d.BackgroundColor.List...)
		}
		out.BackgroundColor = &bg
	}
	if d.BorderColor != nil {
		s := *d.BorderColor
		out.BorderColor = &s
	}
	if d.BorderWidth != nil {
		w := *d.BorderWidth
		out.BorderWidth = &w
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
