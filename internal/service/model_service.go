package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	app_errors "viz-ai/backend/internal/errors"
	"viz-ai/backend/internal/llm"
	"viz-ai/backend/internal/model"
	"viz-ai/backend/internal/repository"
)

// ModelService handles the business logic for model management.
type ModelService struct {
	llm      llm.LLMProvider
	repo     repository.Repository
	settings *SettingsService
	baseURL  string
}

func NewModelService(llmProvider llm.LLMProvider, repo repository.Repository, settings *SettingsService, baseURL string) *ModelService {
	return &ModelService{llm: llmProvider, repo: repo, settings: settings, baseURL: baseURL}
}

// List returns a list of all locally available models.
func (s *ModelService) List(ctx context.Context) (*llm.ListModelsResponse, error) {
	return s.llm.ListModels(ctx)
}

// Pull downloads a model from a registry. It streams the progress.
func (s *ModelService) Pull(ctx context.Context, req *llm.PullModelRequest, ch chan<- llm.PullStatus) error {
	return s.llm.PullModel(ctx, req, ch)
}

// Delete removes a local model.
func (s *ModelService) Delete(ctx context.Context, req *llm.DeleteModelRequest) error {
	return s.llm.DeleteModel(ctx, req)
}

// Ping reports whether Ollama is reachable.
func (s *ModelService) Ping(ctx context.Context) error {
	return s.llm.Ping(ctx)
}

// Show retrieves detailed information about a model.
func (s *ModelService) Show(ctx context.Context, req *llm.ShowModelRequest) (*llm.ModelInfo, error) {
	return s.llm.ShowModelInfo(ctx, req)
}

type modelParameters struct {
	Size       int64            `json:"size"`
	ModifiedAt string           `json:"modified_at"`
	Digest     string           `json:"digest,omitempty"`
	Details    llm.ModelDetails `json:"details"`
}

// AutoDetect records every model Ollama has installed and returns the known
// configurations.
func (s *ModelService) AutoDetect(ctx context.Context) ([]*model.ModelConfig, error) {
	if err := s.llm.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: cannot connect to Ollama: %v", app_errors.ErrServiceUnavailable, err)
	}
	models, err := s.llm.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list Ollama models: %w", err)
	}

	now := time.Now().UTC()
	for _, m := range models.Models {
		params, err := json.Marshal(modelParameters{
			Size:       m.Size,
			ModifiedAt: m.ModifiedAt,
			Digest:     m.Digest,
			Details:    m.Details,
		})
		if err != nil {
			return nil, err
		}
		cfg := &model.ModelConfig{
			ID:          uuid.NewString(),
			ModelName:   m.Name,
			BaseURL:     s.baseURL,
			IsAvailable: true,
			Parameters:  params,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.UpsertModelConfig(ctx, cfg); err != nil {
			return nil, fmt.Errorf("could not save model %s: %w", m.Name, err)
		}
	}
	slog.Info("Detected Ollama models", "count", len(models.Models))
	return s.ListConfigs(ctx)
}

// ListConfigs returns the known model configurations with the active one flagged.
func (s *ModelService) ListConfigs(ctx context.Context) ([]*model.ModelConfig, error) {
	configs, err := s.repo.ListModelConfigs(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	for _, cfg := range configs {
		cfg.IsActive = cfg.ModelName == settings.ActiveModel
	}
	return configs, nil
}

// SetActive makes a detected, available model the active one.
func (s *ModelService) SetActive(ctx context.Context, name string) (*model.ModelConfig, error) {
	cfg, err := s.repo.GetModelConfigByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: model %s has not been detected", app_errors.ErrNotFound, name)
		}
		return nil, err
	}
	if !cfg.IsAvailable {
		return nil, fmt.Errorf("%w: model %s is not available", app_errors.ErrConflict, name)
	}
	if err := s.settings.SetActiveModel(ctx, name); err != nil {
		return nil, err
	}
	cfg.IsActive = true
	return cfg, nil
}

// Active returns the configuration of the active model.
func (s *ModelService) Active(ctx context.Context) (*model.ModelConfig, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings.ActiveModel == "" {
		return nil, fmt.Errorf("%w: no active model configured", app_errors.ErrNotFound)
	}
	cfg, err := s.repo.GetModelConfigByName(ctx, settings.ActiveModel)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: active model %s has not been detected", app_errors.ErrNotFound, settings.ActiveModel)
	}
	if err != nil {
		return nil, err
	}
	cfg.IsActive = true
	return cfg, nil
}
