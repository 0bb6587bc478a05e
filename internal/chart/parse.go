package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	app_errors "viz-ai/backend/internal/errors"
)

// Rule names used in ValidationError.Rule. They follow JSON Schema keyword
// names where one exists.
const (
	RuleType     = "type"
	RuleRequired = "required"
	RuleEnum     = "enum"
	RuleMinItems = "minItems"
	RuleMaxItems = "maxItems"
	RuleLength   = "length"
	RuleNumeric  = "numeric"
)

// ValidationError is the first violation found in a document.
type ValidationError struct {
	// Path is the JSON location of the violation, e.g. "charts[0].data.labels".
	Path string
	// Rule is the violated rule (one of the Rule* constants).
	Rule string
	// Chart is the title of the offending chart, empty for document-level violations.
	Chart   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Chart != "" {
		return fmt.Sprintf("%s: %s in chart '%s'", e.Path, e.Message, e.Chart)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *ValidationError) Unwrap() error { return app_errors.ErrMalformedDocument }

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the shared validator. Field names in errors are the
// JSON names so paths match the wire shape.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Parse checks raw against the document schema and returns the typed document.
// The structural pass covers the whole document before the cross-field pass
// (length and numeric checks) runs, and only the first violation is reported.
func Parse(raw any) (*Document, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return nil, err
	}
	if err := checkLengths(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate reports whether raw is a valid visualization document. A nil error
// means valid; otherwise the error is a *ValidationError.
func Validate(raw any) error {
	_, err := Parse(raw)
	return err
}

func parseDocument(raw any) (*Document, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, typeError("$", "object", raw, "")
	}

	doc := &Document{}
	var chartItems []any
	for _, key := range sortedKeys(obj) {
		value := obj[key]
		switch key {
		case "explanation":
			s, ok := value.(string)
			if !ok {
				return nil, typeError("explanation", "string", value, "")
			}
			doc.Explanation = s
		case "charts":
			items, ok := value.([]any)
			if !ok {
				return nil, typeError("charts", "array", value, "")
			}
			chartItems = items
			// Placeholders let the length rules run before the charts are parsed.
			doc.Charts = make([]Chart, len(items))
		default:
			if doc.Extra == nil {
				doc.Extra = map[string]any{}
			}
			doc.Extra[key] = value
		}
	}

	if err := getValidator().Struct(doc); err != nil {
		return nil, fieldError(err, "", "")
	}

	for i, item := range chartItems {
		path := fmt.Sprintf("charts[%d]", i)
		c, err := parseChart(item, path)
		if err != nil {
			return nil, err
		}
		if err := getValidator().Struct(c); err != nil {
			return nil, fieldError(err, path, c.Title)
		}
		doc.Charts[i] = *c
	}
	return doc, nil
}

func parseChart(raw any, path string) (*Chart, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, typeError(path, "object", raw, "")
	}

	c := &Chart{}
	// The title is read first so later violations can name the chart.
	if v, present := obj["title"]; present {
		s, ok := v.(string)
		if !ok {
			return nil, typeError(path+".title", "string", v, "")
		}
		c.Title = s
	}

	for _, key := range sortedKeys(obj) {
		value := obj[key]
		switch key {
		case "title":
		case "type":
			s, ok := value.(string)
			if !ok {
				return nil, typeError(path+".type", "string", value, c.Title)
			}
			c.Type = Type(s)
		case "data":
			data, err := parseData(value, path+".data", c.Title)
			if err != nil {
				return nil, err
			}
			c.Data = data
		case "options":
			opts, ok := value.(map[string]any)
			if !ok {
				return nil, typeError(path+".options", "object", value, c.Title)
			}
			c.Options = opts
		default:
			if c.Extra == nil {
				c.Extra = map[string]any{}
			}
			c.Extra[key] = value
		}
	}
	return c, nil
}

func parseData(raw any, path, title string) (*Data, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, typeError(path, "object", raw, title)
	}

	d := &Data{}
	for _, key := range sortedKeys(obj) {
		value := obj[key]
		switch key {
		case "labels":
			items, ok := value.([]any)
			if !ok {
				return nil, typeError(path+".labels", "array", value, title)
			}
			d.Labels = make([]Label, 0, len(items))
			for i, item := range items {
				l, ok := toLabel(item)
				if !ok {
					return nil, typeError(fmt.Sprintf("%s.labels[%d]", path, i), "string or number", item, title)
				}
				d.Labels = append(d.Labels, l)
			}
		case "datasets":
			items, ok := value.([]any)
			if !ok {
				return nil, typeError(path+".datasets", "array", value, title)
			}
			d.Datasets = make([]Dataset, 0, len(items))
			for i, item := range items {
				ds, err := parseDataset(item, fmt.Sprintf("%s.datasets[%d]", path, i), title)
				if err != nil {
					return nil, err
				}
				d.Datasets = append(d.Datasets, *ds)
			}
		default:
			if d.Extra == nil {
				d.Extra = map[string]any{}
			}
			d.Extra[key] = value
		}
	}
	return d, nil
}

func parseDataset(raw any, path, title string) (*Dataset, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, typeError(path, "object", raw, title)
	}

	ds := &Dataset{}
	for _, key := range sortedKeys(obj) {
		value := obj[key]
		switch key {
		case "label":
			s, ok := value.(string)
			if !ok {
				return nil, typeError(path+".label", "string", value, title)
			}
			if s == "" {
				return nil, &ValidationError{
					Path:    path + ".label",
					Rule:    RuleRequired,
					Chart:   title,
					Message: "required property is missing or empty",
				}
			}
			ds.Label = &s
		case "data":
			items, ok := value.([]any)
			if !ok {
				return nil, typeError(path+".data", "array", value, title)
			}
			ds.Data = make([]float64, 0, len(items))
			for i, item := range items {
				f, ok := toNumber(item)
				if !ok {
					return nil, typeError(fmt.Sprintf("%s.data[%d]", path, i), "number", item, title)
				}
				ds.Data = append(ds.Data, f)
			}
		case "backgroundColor":
			c, ok := toColor(value)
			if !ok {
				return nil, typeError(path+".backgroundColor", "string or array of strings", value, title)
			}
			ds.BackgroundColor = c
		case "borderColor":
			s, ok := value.(string)
			if !ok {
				return nil, typeError(path+".borderColor", "string", value, title)
			}
			ds.BorderColor = &s
		case "borderWidth":
			f, ok := toNumber(value)
			if !ok {
				return nil, typeError(path+".borderWidth", "number", value, title)
			}
			ds.BorderWidth = &f
		default:
			if ds.Extra == nil {
				ds.Extra = map[string]any{}
			}
			ds.Extra[key] = value
		}
	}
	return ds, nil
}

// checkLengths is the cross-field pass.
func checkLengths(doc *Document) error {
	for i, c := range doc.Charts {
		want := len(c.Data.Labels)
		for j, ds := range c.Data.Datasets {
			path := fmt.Sprintf("charts[%d].data.datasets[%d].data", i, j)
			if got := len(ds.Data); got != want {
				return &ValidationError{
					Path:    path,
					Rule:    RuleLength,
					Chart:   c.Title,
					Message: fmt.Sprintf("data length (%d) doesn't match labels length (%d)", got, want),
				}
			}
			for _, v := range ds.Data {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return &ValidationError{
						Path:    path,
						Rule:    RuleNumeric,
						Chart:   c.Title,
						Message: "invalid data values - must be numeric",
					}
				}
			}
		}
	}
	return nil
}

// toNumber accepts JSON numbers only. Booleans and numeric strings are not numbers.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

func toLabel(v any) (Label, bool) {
	if s, ok := v.(string); ok {
		return TextLabel(s), true
	}
	if f, ok := toNumber(v); ok {
		return NumberLabel(f), true
	}
	return Label{}, false
}

func toColor(v any) (*Color, bool) {
	switch c := v.(type) {
	case string:
		return &Color{Single: c}, true
	case []any:
		list := make([]string, 0, len(c))
		for _, item := range c {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			list = append(list, s)
		}
		return &Color{List: list}, true
	case []string:
		return &Color{List: append([]string{}, c...)}, true
	default:
		return nil, false
	}
}

func typeError(path, want string, got any, title string) *ValidationError {
	return &ValidationError{
		Path:    path,
		Rule:    RuleType,
		Chart:   title,
		Message: fmt.Sprintf("expected %s, got %s", want, jsonKind(got)),
	}
}

// fieldError converts the first validator failure into a ValidationError.
// prefix is the JSON path of the struct that was validated.
func fieldError(err error, prefix, title string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Path: orRoot(prefix), Rule: RuleType, Chart: title, Message: err.Error()}
	}
	fe := verrs[0]

	path := fe.Namespace()
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	if prefix != "" {
		path = prefix + "." + path
	}

	ve := &ValidationError{Path: path, Chart: title}
	switch fe.Tag() {
	case "required":
		ve.Rule = RuleRequired
		ve.Message = "required property is missing"
		if fe.Kind() == reflect.String {
			ve.Message = "required property is missing or empty"
		}
	case "min":
		ve.Rule = RuleMinItems
		ve.Message = fmt.Sprintf("minItems: got %d, want at least %s", lenOf(fe.Value()), fe.Param())
	case "max":
		ve.Rule = RuleMaxItems
		ve.Message = fmt.Sprintf("maxItems: got %d, want at most %s", lenOf(fe.Value()), fe.Param())
	case "oneof":
		ve.Rule = RuleEnum
		ve.Message = fmt.Sprintf("enum: got %q, want one of [%s]", fmt.Sprint(fe.Value()), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		ve.Rule = fe.Tag()
		ve.Message = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
	return ve
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

func lenOf(v any) int {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len()
	default:
		return 0
	}
}

func orRoot(p string) string {
	if p == "" {
		return "$"
	}
	return p
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, float32, int, int64, int32:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
