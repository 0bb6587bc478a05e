package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"viz-ai/backend/internal/api"
	"viz-ai/backend/internal/interfaces/mocks"
	"viz-ai/backend/internal/model"
)

type routerMocks struct {
	chat     *mocks.MockChatService
	settings *mocks.MockSettingsService
	models   *mocks.MockModelService
	files    *mocks.MockFileService
}

func setupRouter(t *testing.T) (*chi.Mux, routerMocks) {
	m := routerMocks{
		chat:     mocks.NewMockChatService(t),
		settings: mocks.NewMockSettingsService(t),
		models:   mocks.NewMockModelService(t),
		files:    mocks.NewMockFileService(t),
	}
	r := api.NewRouter(
		api.NewChatHandler(m.chat, m.settings),
		api.NewModelHandler(m.models),
		api.NewFileHandler(m.files, 1<<20),
		[]string{"http://localhost:5173"},
	)
	return r, m
}

func TestRouter(t *testing.T) {
	t.Run("Success - Liveness probe", func(t *testing.T) {
		r, _ := setupRouter(t)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("Success - Path parameters reach the service", func(t *testing.T) {
		r, m := setupRouter(t)
		m.chat.On("GetConversation", mock.Anything, "conv-42").
			Return(&model.FullConversation{Conversation: model.Conversation{ID: "conv-42"}}, nil).Once()

		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/conversations/conv-42", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Success - Static route wins over parameter", func(t *testing.T) {
		r, m := setupRouter(t)
		m.chat.On("GetConversationBySession", mock.Anything, "s1").
			Return(&model.FullConversation{}, nil).Once()

		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/conversations/by-session?session_id=s1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Success - CORS preflight", func(t *testing.T) {
		r, _ := setupRouter(t)
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/settings", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()

		r.ServeHTTP(rr, req)

		assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Failure - Unknown route", func(t *testing.T) {
		r, _ := setupRouter(t)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/nothing", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
