package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"viz-ai/backend/internal/api"
	app_errors "viz-ai/backend/internal/errors"
	"viz-ai/backend/internal/interfaces/mocks"
	"viz-ai/backend/internal/model"
	"viz-ai/backend/internal/service"
)

func setupChatHandler(t *testing.T) (*api.ChatHandler, *mocks.MockChatService, *mocks.MockSettingsService) {
	mockChatSvc := mocks.NewMockChatService(t)
	mockSettingsSvc := mocks.NewMockSettingsService(t)
	return api.NewChatHandler(mockChatSvc, mockSettingsSvc), mockChatSvc, mockSettingsSvc
}

// addChiURLParams simulates how the chi router injects URL parameters into
// the request's context.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func TestChatHandler_GetSettings(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, _, mockSettingsSvc := setupChatHandler(t)
		mockSettingsSvc.On("Get", mock.Anything).Return(&service.Settings{ActiveModel: "llama3:8b"}, nil).Once()

		// ACT
		req := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
		rr := httptest.NewRecorder()
		handler.GetSettings(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"active_model":"llama3:8b","system_prompt":""}`, rr.Body.String())
	})

	t.Run("Failure", func(t *testing.T) {
		handler, _, mockSettingsSvc := setupChatHandler(t)
		mockSettingsSvc.On("Get", mock.Anything).Return(nil, app_errors.ErrInternal).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
		rr := httptest.NewRecorder()
		handler.GetSettings(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestChatHandler_UpdateSettings(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, mockSettingsSvc := setupChatHandler(t)
		mockSettingsSvc.On("Save", mock.Anything, mock.MatchedBy(func(s *service.Settings) bool {
			return s.ActiveModel == "model1" && s.SystemPrompt == "new prompt"
		})).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/settings", strings.NewReader(`{"system_prompt":"new prompt","active_model":"model1"}`))
		rr := httptest.NewRecorder()
		handler.UpdateSettings(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/settings", strings.NewReader(`{invalid`))
		rr := httptest.NewRecorder()
		handler.UpdateSettings(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Validation Error", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/settings", strings.NewReader(`{"system_prompt":"p","active_model":""}`))
		rr := httptest.NewRecorder()

		handler.UpdateSettings(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'active_model' failed on the 'required' tag")
	})

	t.Run("Failure - Model unknown to Ollama", func(t *testing.T) {
		handler, _, mockSettingsSvc := setupChatHandler(t)
		mockSettingsSvc.On("Save", mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: active model 'x' is not available", app_errors.ErrValidation)).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/settings", strings.NewReader(`{"active_model":"x"}`))
		rr := httptest.NewRecorder()
		handler.UpdateSettings(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "is not available")
	})
}

func TestChatHandler_ListConversations(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		expected := []*model.Conversation{{ID: "c1", SessionID: "s1"}}
		mockChatSvc.On("ListConversations", mock.Anything).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/conversations", nil)
		rr := httptest.NewRecorder()
		handler.ListConversations(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var returned []*model.Conversation
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, expected, returned)
	})

	t.Run("Failure - Service returns error", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("ListConversations", mock.Anything).Return(nil, errors.New("internal error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/conversations", nil)
		rr := httptest.NewRecorder()
		handler.ListConversations(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "internal server error")
	})
}

func TestChatHandler_GetConversation(t *testing.T) {
	conversationID := "conv-1"

	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		expected := &model.FullConversation{Conversation: model.Conversation{ID: conversationID}}
		mockChatSvc.On("GetConversation", mock.Anything, conversationID).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/conversations/"+conversationID, nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.GetConversation(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("GetConversation", mock.Anything, conversationID).Return(nil, app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/conversations/"+conversationID, nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.GetConversation(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestChatHandler_GetConversationBySession(t *testing.T) {
	handler, mockChatSvc, _ := setupChatHandler(t)
	mockChatSvc.On("GetConversationBySession", mock.Anything, "s1").
		Return(&model.FullConversation{Conversation: model.Conversation{ID: "c1", SessionID: "s1"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/v1/conversations/by-session?session_id=s1", nil)
	rr := httptest.NewRecorder()
	handler.GetConversationBySession(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"session_id":"s1"`)
}

func TestChatHandler_DeleteConversation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("DeleteConversation", mock.Anything, "c1").Return(nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodDelete, "/v1/conversations/c1", nil), map[string]string{"conversationID": "c1"})
		rr := httptest.NewRecorder()
		handler.DeleteConversation(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("DeleteConversation", mock.Anything, "c1").Return(app_errors.ErrNotFound).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodDelete, "/v1/conversations/c1", nil), map[string]string{"conversationID": "c1"})
		rr := httptest.NewRecorder()
		handler.DeleteConversation(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestChatHandler_HandleChat(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("Chat", mock.Anything, mock.MatchedBy(func(r *service.ChatRequest) bool {
			return r.Message == "plot sales" && r.SessionID == "s1" && len(r.FileIDs) == 1
		})).Return(&service.ChatResponse{JobID: "j1", ConversationID: "c1", Explanation: "done"}, nil).Once()

		// ACT
		body := `{"message":"plot sales","session_id":"s1","file_ids":["f1"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/conversations/chat", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.HandleChat(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		var resp service.ChatResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "j1", resp.JobID)
	})

	t.Run("Failure - Missing session", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/conversations/chat", strings.NewReader(`{"message":"hi"}`))
		rr := httptest.NewRecorder()
		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "session_id")
	})

	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"Failure - Unrecoverable document", fmt.Errorf("%w: charts[0].title: required", app_errors.ErrUnrecoverableDocument), http.StatusUnprocessableEntity},
		{"Failure - Model returned no JSON", fmt.Errorf("%w: unexpected token", app_errors.ErrJSONDecode), http.StatusBadGateway},
		{"Failure - Generation unavailable", app_errors.ErrGenerationUnavailable, http.StatusBadGateway},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler, mockChatSvc, _ := setupChatHandler(t)
			failed := &service.ChatResponse{
				JobID:   "j1",
				Message: &model.Message{Type: model.MessageTypeSystem, Content: "Sorry, I encountered an error: " + tc.err.Error()},
				Error:   tc.err.Error(),
			}
			mockChatSvc.On("Chat", mock.Anything, mock.Anything).Return(failed, tc.err).Once()

			req := httptest.NewRequest(http.MethodPost, "/v1/conversations/chat", strings.NewReader(`{"message":"m","session_id":"s"}`))
			rr := httptest.NewRecorder()
			handler.HandleChat(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			var resp service.ChatResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "j1", resp.JobID)
			assert.Equal(t, tc.err.Error(), resp.Error)
		})
	}

	t.Run("Failure - No active model", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("Chat", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: no active model configured", app_errors.ErrValidation)).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/conversations/chat", strings.NewReader(`{"message":"m","session_id":"s"}`))
		rr := httptest.NewRecorder()
		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChatHandler_Jobs(t *testing.T) {
	t.Run("Success - By path", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("GetJob", mock.Anything, "j1").Return(&model.ProcessingJob{JobID: "j1", Status: model.JobCompleted, Progress: 100}, nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/v1/jobs/j1", nil), map[string]string{"jobID": "j1"})
		rr := httptest.NewRecorder()
		handler.GetJob(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"completed"`)
	})

	t.Run("Failure - Status without job_id", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)
		rr := httptest.NewRecorder()
		handler.GetJobStatus(rr, httptest.NewRequest(http.MethodGet, "/v1/jobs/status", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Status for unknown job", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("GetJob", mock.Anything, "nope").Return(nil, app_errors.ErrNotFound).Once()

		rr := httptest.NewRecorder()
		handler.GetJobStatus(rr, httptest.NewRequest(http.MethodGet, "/v1/jobs/status?job_id=nope", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
