package chart_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viz-ai/backend/internal/chart"
	app_errors "viz-ai/backend/internal/errors"
)

const validDocument = `{
  "explanation": "Quarterly revenue",
  "charts": [
    {
      "type": "bar",
      "title": "Revenue",
      "data": {
        "labels": ["Q1", "Q2", "Q3"],
        "datasets": [{"label": "2024", "data": [10, 20.5, 30]}]
      }
    }
  ]
}`

func decode(t *testing.T, s string) any {
	t.Helper()
	v, err := chart.ParseJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func requireViolation(t *testing.T, err error) *chart.ValidationError {
	t.Helper()
	require.Error(t, err)
	var ve *chart.ValidationError
	require.True(t, errors.As(err, &ve), "expected *chart.ValidationError, got %T", err)
	assert.True(t, errors.Is(err, app_errors.ErrMalformedDocument))
	return ve
}

func TestParse(t *testing.T) {
	t.Run("Success - Valid document", func(t *testing.T) {
		doc, err := chart.Parse(decode(t, validDocument))
		require.NoError(t, err)
		require.Len(t, doc.Charts, 1)

		c := doc.Charts[0]
		assert.Equal(t, chart.TypeBar, c.Type)
		assert.Equal(t, "Revenue", c.Title)
		require.Len(t, c.Data.Labels, 3)
		assert.Equal(t, "Q2", c.Data.Labels[1].String())
		require.Len(t, c.Data.Datasets, 1)
		assert.Equal(t, []float64{10, 20.5, 30}, c.Data.Datasets[0].Data)
		assert.Nil(t, c.Data.Datasets[0].BackgroundColor)
		assert.Nil(t, c.Data.Datasets[0].BorderWidth)
	})

	t.Run("Success - Numeric labels and color list", func(t *testing.T) {
		doc, err := chart.Parse(decode(t, `{"explanation":"e","charts":[{"type":"pie","title":"T","data":{
			"labels":[2023, 2024],
			"datasets":[{"label":"x","data":[1,2],"backgroundColor":["#111","#222"],"borderWidth":1}]}}]}`))
		require.NoError(t, err)

		ds := doc.Charts[0].Data.Datasets[0]
		assert.Equal(t, "2023", doc.Charts[0].Data.Labels[0].String())
		require.NotNil(t, ds.BackgroundColor)
		assert.True(t, ds.BackgroundColor.IsList())
		assert.Equal(t, []string{"#111", "#222"}, ds.BackgroundColor.List)
		require.NotNil(t, ds.BorderWidth)
		assert.Equal(t, 1.0, *ds.BorderWidth)
	})

	t.Run("Failure - Empty chart list", func(t *testing.T) {
		ve := requireViolation(t, chart.Validate(decode(t, `{"explanation":"e","charts":[]}`)))
		assert.Equal(t, "charts", ve.Path)
		assert.Equal(t, chart.RuleMinItems, ve.Rule)
		assert.Contains(t, ve.Error(), "minItems")
	})

	t.Run("Failure - Too many charts", func(t *testing.T) {
		items := make([]string, 11)
		for i := range items {
			items[i] = `{"type":"bar","title":"T","data":{"labels":["a"],"datasets":[{"label":"l","data":[1]}]}}`
		}
		raw := decode(t, fmt.Sprintf(`{"explanation":"e","charts":[%s]}`, strings.Join(items, ",")))

		ve := requireViolation(t, chart.Validate(raw))
		assert.Equal(t, "charts", ve.Path)
		assert.Equal(t, chart.RuleMaxItems, ve.Rule)
	})

	t.Run("Failure - Root is not an object", func(t *testing.T) {
		ve := requireViolation(t, chart.Validate(decode(t, `[1, 2]`)))
		assert.Equal(t, "$", ve.Path)
		assert.Equal(t, chart.RuleType, ve.Rule)
	})

	t.Run("Failure - Missing explanation", func(t *testing.T) {
		ve := requireViolation(t, chart.Validate(decode(t,
			`{"charts":[{"type":"bar","title":"T","data":{"labels":["a"],"datasets":[{"label":"l","data":[1]}]}}]}`)))
		assert.Equal(t, "explanation", ve.Path)
		assert.Equal(t, chart.RuleRequired, ve.Rule)
	})

	t.Run("Failure - Unknown chart type", func(t *testing.T) {
		ve := requireViolation(t, chart.Validate(decode(t,
			`{"explanation":"e","charts":[{"type":"histogram","title":"Dist","data":{"labels":["a"],"datasets":[{"label":"l","data":[1]}]}}]}`)))
		assert.Equal(t, "charts[0].type", ve.Path)
		assert.Equal(t, chart.RuleEnum, ve.Rule)
		assert.Equal(t, "Dist", ve.Chart)
		assert.Contains(t, ve.Error(), "in chart 'Dist'")
	})

	t.Run("Failure - Empty title", func(t *testing.T) {
		ve := requireViolation(t, chart.Validate(decode(t,
			`{"explanation":"e","charts":[{"type":"bar","title":"","data":{"labels":["a"],"datasets":[{"label":"l","data":[1]}]}}]}`)))
		assert.Equal(t, "charts[0].title", ve.Path)
		assert.Equal(t, chart.RuleRequired, ve.Rule)
	})

	t.Run("Failure - Missing dataset label", func(t *testing.T) {
		ve := requireViolation(t, chart.Validate(decode(t,
			`{"explanation":"e","charts":[{"type":"bar","title":"T","data":{"labels":["a"],"datasets":[{"data":[1]}]}}]}`)))
		assert.Equal(t, "charts[0].data.datasets[0].label", ve.Path)
		assert.Equal(t, chart.RuleRequired, ve.Rule)
		assert.Equal(t, "T", ve.Chart)
	})

	t.Run("Failure - Empty dataset label", func(t *testing.T) {
		ve := requireViolation(t, chart.Validate(decode(t,
			`{"explanation":"e","charts":[{"type":"bar","title":"T","data":{"labels":["a"],"datasets":[{"label":"","data":[1]}]}}]}`)))
		assert.Equal(t, "charts[0].data.datasets[0].label", ve.Path)
		assert.Equal(t, chart.RuleRequired, ve.Rule)
		assert.Equal(t, "T", ve.Chart)
	})

	t.Run("Failure - Empty labels", func(t *testing.T) {
		ve := requireViolation(t, chart.Validate(decode(t,
			`{"explanation":"e","charts":[{"type":"bar","title":"T","data":{"labels":[],"datasets":[{"label":"l","data":[]}]}}]}`)))
		assert.Equal(t, "charts[0].data.labels", ve.Path)
		assert.Equal(t, chart.RuleMinItems, ve.Rule)
	})

	t.Run("Failure - Non-numeric data values", func(t *testing.T) {
		for _, value := range []string{`"5"`, `true`, `null`, `{}`} {
			raw := decode(t, fmt.Sprintf(
				`{"explanation":"e","charts":[{"type":"bar","title":"T","data":{"labels":["a","b"],"datasets":[{"label":"l","data":[1, %s]}]}}]}`, value))

			ve := requireViolation(t, chart.Validate(raw))
			assert.Equal(t, "charts[0].data.datasets[0].data[1]", ve.Path, value)
			assert.Equal(t, chart.RuleType, ve.Rule, value)
		}
	})

	t.Run("Failure - Options is not an object", func(t *testing.T) {
		ve := requireViolation(t, chart.Validate(decode(t,
			`{"explanation":"e","charts":[{"type":"bar","title":"T","options":[],"data":{"labels":["a"],"datasets":[{"label":"l","data":[1]}]}}]}`)))
		assert.Equal(t, "charts[0].options", ve.Path)
	})

	t.Run("Failure - Length mismatch names the chart", func(t *testing.T) {
		ve := requireViolation(t, chart.Validate(decode(t,
			`{"explanation":"e","charts":[{"type":"bar","title":"Sales","data":{"labels":["Q1","Q2","Q3"],"datasets":[{"label":"l","data":[10,20]}]}}]}`)))
		assert.Equal(t, chart.RuleLength, ve.Rule)
		assert.Equal(t, "charts[0].data.datasets[0].data", ve.Path)
		assert.Equal(t, "Sales", ve.Chart)
		assert.Equal(t,
			"charts[0].data.datasets[0].data: data length (2) doesn't match labels length (3) in chart 'Sales'",
			ve.Error())
	})

	t.Run("Failure - Structural violations win over length violations", func(t *testing.T) {
		raw := decode(t, `{"explanation":"e","charts":[
			{"type":"bar","title":"A","data":{"labels":["a","b"],"datasets":[{"label":"l","data":[1]}]}},
			{"type":"nope","title":"B","data":{"labels":["a"],"datasets":[{"label":"l","data":[1]}]}}]}`)

		ve := requireViolation(t, chart.Validate(raw))
		assert.Equal(t, chart.RuleEnum, ve.Rule)
		assert.Equal(t, "B", ve.Chart)
	})
}

func TestValidate_Deterministic(t *testing.T) {
	// Several violations at the same level; the reported one must not depend
	// on map iteration order.
	raw := decode(t, `{"explanation":"e","charts":[{"title":"T","type":7,"data":[],"options":"x",
		"extra":1}]}`)

	first := chart.Validate(raw)
	require.Error(t, first)
	for range 50 {
		assert.Equal(t, first.Error(), chart.Validate(raw).Error())
	}
}

func TestValidate_LengthInvariant(t *testing.T) {
	doc, err := chart.Parse(decode(t, validDocument))
	require.NoError(t, err)
	for _, c := range doc.Charts {
		for _, ds := range c.Data.Datasets {
			assert.Len(t, ds.Data, len(c.Data.Labels))
		}
	}
}

func TestDocument_MarshalJSON(t *testing.T) {
	raw := decode(t, `{"explanation":"e","version":2,"charts":[{"type":"line","title":"T","custom":"keep",
		"data":{"labels":["a",1],"datasets":[{"label":"l","data":[1,2],"tension":0.4}]}}]}`)
	doc, err := chart.Parse(raw)
	require.NoError(t, err)

	b, err := json.Marshal(doc)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.EqualValues(t, 2, got["version"])

	c := got["charts"].([]any)[0].(map[string]any)
	assert.Equal(t, "keep", c["custom"])
	assert.NotContains(t, c, "options")
	data := c["data"].(map[string]any)
	assert.Equal(t, []any{"a", 1.0}, data["labels"])
	ds := data["datasets"].([]any)[0].(map[string]any)
	assert.Equal(t, 0.4, ds["tension"])
	assert.NotContains(t, ds, "backgroundColor")
}
