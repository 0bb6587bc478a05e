package api

import (
	"log/slog"
	"net/http"

	"viz-ai/backend/internal/interfaces"
	"viz-ai/backend/internal/llm"
)

// ModelHandler handles HTTP requests for model management and health.
type ModelHandler struct {
	service interfaces.ModelService
}

func NewModelHandler(svc interfaces.ModelService) *ModelHandler {
	return &ModelHandler{service: svc}
}

// HandleHealth godoc
// @Summary      Health check
// @Description  Reports whether Ollama is reachable and which model is active.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /v1/health [get]
func (h *ModelHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "healthy"}
	if err := h.service.Ping(r.Context()); err != nil {
		slog.Warn("Ollama health check failed", "error", err)
		respondWithJSON(w, http.StatusOK, resp)
		return
	}
	resp.OllamaConnected = true
	if active, err := h.service.Active(r.Context()); err == nil {
		resp.ActiveModel = &active.ModelName
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// HandleListModels godoc
// @Summary      List local models
// @Description  Gets a list of all models available locally in Ollama.
// @Tags         Models
// @Produce      json
// @Success      200  {object}  llm.ListModelsResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /v1/models [get]
func (h *ModelHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models)
}

// HandleShowModel godoc
// @Summary      Show model info
// @Tags         Models
// @Accept       json
// @Produce      json
// @Param        modelRequest  body      llm.ShowModelRequest  true  "Model Name"
// @Success      200           {object}  llm.ModelInfo
// @Failure      400           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse
// @Router       /v1/models/show [post]
func (h *ModelHandler) HandleShowModel(w http.ResponseWriter, r *http.Request) {
	var req llm.ShowModelRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	info, err := h.service.Show(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, info)
}

// HandleDeleteModel godoc
// @Summary      Delete a local model
// @Tags         Models
// @Accept       json
// @Produce      json
// @Param        modelRequest  body      llm.DeleteModelRequest  true  "Model Name to Delete"
// @Success      200           {object}  StatusResponse
// @Failure      400           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse
// @Router       /v1/models [delete]
func (h *ModelHandler) HandleDeleteModel(w http.ResponseWriter, r *http.Request) {
	var req llm.DeleteModelRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), &req); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleListConfigs godoc
// @Summary      List detected models
// @Tags         Models
// @Produce      json
// @Success      200  {array}   model.ModelConfig
// @Router       /v1/models/configs [get]
func (h *ModelHandler) HandleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.service.ListConfigs(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, configs)
}

// HandleAutoDetect godoc
// @Summary      Detect installed models
// @Description  Records every model installed in Ollama.
// @Tags         Models
// @Produce      json
// @Success      200  {array}   model.ModelConfig
// @Failure      503  {object}  ErrorResponse
// @Router       /v1/models/auto-detect [post]
func (h *ModelHandler) HandleAutoDetect(w http.ResponseWriter, r *http.Request) {
	configs, err := h.service.AutoDetect(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, configs)
}

// HandleSetActive godoc
// @Summary      Set the active model
// @Tags         Models
// @Accept       json
// @Produce      json
// @Param        request  body      ActivateModelRequest  true  "Model to activate"
// @Success      200      {object}  model.ModelConfig
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /v1/models/activate [post]
func (h *ModelHandler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	var req ActivateModelRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	cfg, err := h.service.SetActive(r.Context(), req.ModelName)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cfg)
}

// HandleActiveModel godoc
// @Summary      Get the active model
// @Tags         Models
// @Produce      json
// @Success      200  {object}  model.ModelConfig
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/models/active [get]
func (h *ModelHandler) HandleActiveModel(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Active(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cfg)
}

// HandlePullModel godoc
// @Summary      Pull a new model
// @Description  Downloads a model from the Ollama registry. This is a streaming endpoint.
// @Tags         Models
// @Accept       json
// @Produce      text/event-stream
// @Param        modelRequest  body      llm.PullModelRequest  true  "Model Name to Pull"
// @Success      200           {object}  llm.PullStatus  "Stream of progress status"
// @Failure      400           {object}  ErrorResponse   "Sent as a stream error event"
// @Router       /v1/models/pull [post]
func (h *ModelHandler) HandlePullModel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var req llm.PullModelRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		slog.Error("Invalid model pull request", "error", err)
		sendStreamError(w, err.Error())
		return
	}

	streamChan := make(chan llm.PullStatus)
	go func() {
		if err := h.service.Pull(r.Context(), &req, streamChan); err != nil {
			slog.Error("Error from model pull service", "model", req.Name, "error", err)
		}
	}()

	for chunk := range streamChan {
		if r.Context().Err() != nil {
			slog.Info("Client disconnected during model pull.", "model", req.Name)
			break
		}
		if chunk.Error != "" {
			slog.Warn("Received an error in the pull stream", "model", req.Name, "error", chunk.Error)
		}
		if err := writeStreamEvent(w, chunk); err != nil {
			slog.Warn("Could not write to model pull stream, client likely disconnected.", "error", err)
			break
		}
	}

	slog.Info("Finished streaming model pull.", "model", req.Name)
}
