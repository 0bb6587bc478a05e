package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "viz-ai/backend/internal/errors"
	"viz-ai/backend/internal/interfaces"
	"viz-ai/backend/internal/service"
)

// ChatHandler serves settings, conversations, chat turns and jobs.
type ChatHandler struct {
	service  interfaces.ChatService
	settings interfaces.SettingsService
}

func NewChatHandler(svc interfaces.ChatService, settings interfaces.SettingsService) *ChatHandler {
	return &ChatHandler{service: svc, settings: settings}
}

// GetSettings godoc
// @Summary      Get settings
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  service.Settings
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/settings [get]
func (h *ChatHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary      Update settings
// @Description  The active model must be installed in Ollama.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        settings  body      service.Settings  true  "New settings"
// @Success      200       {object}  StatusResponse
// @Failure      400       {object}  ErrorResponse
// @Router       /v1/settings [post]
func (h *ChatHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings service.Settings
	if err := decodeAndValidate(r.Body, &settings); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.settings.Save(r.Context(), &settings); err != nil {
		respondWithError(w, err)
		return
	}
	slog.Info("Settings updated", "active_model", settings.ActiveModel)
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ListConversations godoc
// @Summary      List conversations
// @Tags         Conversations
// @Produce      json
// @Success      200  {array}   model.Conversation
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/conversations [get]
func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.service.ListConversations(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conversations)
}

// GetConversation godoc
// @Summary      Get a conversation with its messages and charts
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  model.FullConversation
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [get]
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	full, err := h.service.GetConversation(r.Context(), chi.URLParam(r, "conversationID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, full)
}

// GetConversationBySession godoc
// @Summary      Get the conversation of a session
// @Tags         Conversations
// @Produce      json
// @Param        session_id  query     string  true  "Session ID"
// @Success      200         {object}  model.FullConversation
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /v1/conversations/by-session [get]
func (h *ChatHandler) GetConversationBySession(w http.ResponseWriter, r *http.Request) {
	full, err := h.service.GetConversationBySession(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, full)
}

// DeleteConversation godoc
// @Summary      Delete a conversation
// @Tags         Conversations
// @Param        conversationID  path  string  true  "Conversation ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [delete]
func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteConversation(r.Context(), chi.URLParam(r, "conversationID")); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleChat godoc
// @Summary      Send a chat message
// @Description  Generates, validates, repairs and themes visualizations for the session's data.
// @Description  On failure the body still carries the job id and the stored error message.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        request  body      service.ChatRequest  true  "Chat message"
// @Success      200      {object}  service.ChatResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      422      {object}  service.ChatResponse
// @Failure      502      {object}  service.ChatResponse
// @Router       /v1/conversations/chat [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}

	resp, err := h.service.Chat(r.Context(), &req)
	if err != nil {
		if resp == nil {
			respondWithError(w, err)
			return
		}
		status, _ := errorStatus(err)
		slog.Warn("Chat turn failed", "status_code", status, "job_id", resp.JobID, "error", err)
		respondWithJSON(w, status, resp)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// GetJob godoc
// @Summary      Get a processing job
// @Tags         Jobs
// @Produce      json
// @Param        jobID  path      string  true  "Job ID"
// @Success      200    {object}  model.ProcessingJob
// @Failure      404    {object}  ErrorResponse
// @Router       /v1/jobs/{jobID} [get]
func (h *ChatHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	h.writeJob(w, r, chi.URLParam(r, "jobID"))
}

// GetJobStatus godoc
// @Summary      Get a processing job by query parameter
// @Tags         Jobs
// @Produce      json
// @Param        job_id  query     string  true  "Job ID"
// @Success      200     {object}  model.ProcessingJob
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /v1/jobs/status [get]
func (h *ChatHandler) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		respondWithError(w, fmt.Errorf("%w: job_id is required", app_errors.ErrValidation))
		return
	}
	h.writeJob(w, r, jobID)
}

func (h *ChatHandler) writeJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.service.GetJob(r.Context(), jobID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, job)
}
