package chart_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viz-ai/backend/internal/chart"
	app_errors "viz-ai/backend/internal/errors"
)

func TestProcess(t *testing.T) {
	t.Run("Success - Valid document is themed without repair", func(t *testing.T) {
		res, err := chart.Process(decode(t, validDocument))
		require.NoError(t, err)

		assert.False(t, res.Repaired)
		assert.NoError(t, res.InitialErr)
		require.Len(t, res.Document.Charts, 1)
		assert.NotNil(t, res.Document.Charts[0].Data.Datasets[0].BorderColor)
	})

	t.Run("Success - Length mismatch is repaired", func(t *testing.T) {
		raw := decode(t, `{"explanation":"e","charts":[{"type":"bar","title":"Sales",
			"data":{"labels":["Q1","Q2","Q3"],"datasets":[{"label":"l","data":[10,20]}]}}]}`)

		res, err := chart.Process(raw)
		require.NoError(t, err)

		assert.True(t, res.Repaired)
		var ve *chart.ValidationError
		require.True(t, errors.As(res.InitialErr, &ve))
		assert.Equal(t, chart.RuleLength, ve.Rule)
		assert.Equal(t, []float64{10, 20, 0}, res.Document.Charts[0].Data.Datasets[0].Data)
	})

	t.Run("Failure - Nothing survives repair", func(t *testing.T) {
		raw := decode(t, `{"explanation":"e","charts":[{"type":"bar","title":"T",
			"data":{"labels":["a","b","c"],"datasets":[{"label":"l","data":["a",5,null]}]}}]}`)

		res, err := chart.Process(raw)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, app_errors.ErrUnrecoverableDocument)
		assert.Contains(t, err.Error(), "minItems")
	})

	t.Run("Failure - Repair cannot fix a bad chart type", func(t *testing.T) {
		raw := decode(t, `{"explanation":"e","charts":[{"type":"histogram","title":"T",
			"data":{"labels":["a"],"datasets":[{"label":"l","data":[1]}]}}]}`)

		_, err := chart.Process(raw)
		assert.ErrorIs(t, err, app_errors.ErrUnrecoverableDocument)
	})
}
