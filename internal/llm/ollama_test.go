package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "viz-ai/backend/internal/errors"
)

// TestOllamaProvider runs the client against an httptest server standing in
// for the Ollama API, so request shape and response parsing are checked
// without a real model.
func TestOllamaProvider(t *testing.T) {
	var capturedMethod, capturedPath string
	var capturedBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedMethod = r.Method
		capturedPath = r.URL.Path
		capturedBody, _ = io.ReadAll(r.Body)

		switch r.URL.Path {
		case "/api/delete":
			w.WriteHeader(http.StatusOK)
		case "/api/show":
			w.Header().Set("Content-Type", "application/json")
			_, err := w.Write([]byte(`{"modelfile": "FROM scratch", "details": {"family": "llama"}}`))
			assert.NoError(t, err)
		case "/api/tags":
			_, err := w.Write([]byte(`{"models": [{"name": "llama3:8b", "size": 42, "details": {"parameter_size": "8B"}}]}`))
			assert.NoError(t, err)
		case "/api/generate":
			_, err := w.Write([]byte(`{"model": "llama3:8b", "response": "{\"explanation\": \"x\"}", "done": true}`))
			assert.NoError(t, err)
		case "/api/pull":
			_, err := w.Write([]byte("{\"status\":\"pulling manifest\"}\n\n{\"status\":\"downloading\",\"total\":100,\"completed\":50}\n{\"status\":\"success\"}\n"))
			assert.NoError(t, err)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	// ARRANGE
	provider := NewOllamaProvider(server.URL+"/", WithRateLimit(100))
	ctx := context.Background()

	t.Run("DeleteModel", func(t *testing.T) {
		// ACT
		err := provider.DeleteModel(ctx, &DeleteModelRequest{Name: "test-model"})

		// ASSERT
		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, capturedMethod)
		assert.Equal(t, "/api/delete", capturedPath)
		assert.JSONEq(t, `{"name": "test-model"}`, string(capturedBody))
	})

	t.Run("ShowModelInfo", func(t *testing.T) {
		info, err := provider.ShowModelInfo(ctx, &ShowModelRequest{Name: "test-model"})

		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, "FROM scratch", info.Modelfile)
		assert.Equal(t, "llama", info.Details.Family)
		assert.Equal(t, http.MethodPost, capturedMethod)
		assert.Equal(t, "/api/show", capturedPath)
	})

	t.Run("ListModels", func(t *testing.T) {
		list, err := provider.ListModels(ctx)

		require.NoError(t, err)
		require.Len(t, list.Models, 1)
		assert.Equal(t, "llama3:8b", list.Models[0].Name)
		assert.Equal(t, int64(42), list.Models[0].Size)
		assert.Equal(t, "8B", list.Models[0].Details.ParameterSize)
		assert.Equal(t, http.MethodGet, capturedMethod)
	})

	t.Run("Generate", func(t *testing.T) {
		resp, err := provider.Generate(ctx, &GenerateRequest{
			Model:   "llama3:8b",
			Prompt:  "hi",
			System:  "be terse",
			Format:  "json",
			Stream:  true,
			Options: &GenerateOptions{Temperature: 0.3, NumPredict: 4000},
		})

		require.NoError(t, err)
		assert.Equal(t, `{"explanation": "x"}`, resp.Response)
		assert.Equal(t, "/api/generate", capturedPath)

		var sent map[string]any
		require.NoError(t, json.Unmarshal(capturedBody, &sent))
		assert.Equal(t, false, sent["stream"])
		assert.Equal(t, "json", sent["format"])
		assert.Equal(t, "be terse", sent["system"])
		assert.Equal(t, map[string]any{"temperature": 0.3, "num_predict": 4000.0}, sent["options"])
	})

	t.Run("PullModel", func(t *testing.T) {
		ch := make(chan PullStatus, 10)

		err := provider.PullModel(ctx, &PullModelRequest{Name: "llama3:8b"}, ch)
		require.NoError(t, err)

		var statuses []PullStatus
		for s := range ch {
			statuses = append(statuses, s)
		}
		require.Len(t, statuses, 3)
		assert.Equal(t, "pulling manifest", statuses[0].Status)
		assert.Equal(t, int64(50), statuses[1].Completed)
		assert.Equal(t, "success", statuses[2].Status)
		assert.JSONEq(t, `{"name": "llama3:8b", "stream": true}`, string(capturedBody))
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, provider.Ping(ctx))
	})

	t.Run("Failure - Unknown endpoint maps to not found", func(t *testing.T) {
		p := NewOllamaProvider(server.URL + "/missing")
		_, err := p.ListModels(ctx)
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestOllamaProvider_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	provider := NewOllamaProvider(url)
	err := provider.Ping(context.Background())
	assert.ErrorIs(t, err, app_errors.ErrServiceUnavailable)
}
