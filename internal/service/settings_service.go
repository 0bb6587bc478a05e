package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	app_errors "viz-ai/backend/internal/errors"
	"viz-ai/backend/internal/llm"
)

const (
	keyActiveModel  = "active_model"
	keySystemPrompt = "system_prompt"
)

// Settings holds the dynamic application settings stored in SQLite.
type Settings struct {
	ActiveModel  string `json:"active_model" validate:"required"`
	SystemPrompt string `json:"system_prompt"`
}

type SettingsService struct {
	db  *sql.DB
	llm llm.LLMProvider
}

func NewSettingsService(db *sql.DB, llmProvider llm.LLMProvider) *SettingsService {
	return &SettingsService{db: db, llm: llmProvider}
}

// InitAndGet returns the stored settings, seeding them on first start with
// defaultPrompt and the first model Ollama reports.
func (s *SettingsService) InitAndGet(ctx context.Context, defaultPrompt string) (*Settings, error) {
	values, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if len(values) > 0 {
		slog.Info("Found existing settings in database.")
		return s.Get(ctx)
	}

	slog.Info("No settings found. Performing smart initialization...")
	settings := &Settings{
		ActiveModel:  s.discoverModel(ctx),
		SystemPrompt: defaultPrompt,
	}
	if err := s.store(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save initial settings: %w", err)
	}
	slog.Info("Initialized settings", "active_model", settings.ActiveModel)
	return settings, nil
}

// Get returns the current settings. An empty active model is replaced by the
// first model Ollama reports, when there is one.
func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	values, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	settings := &Settings{
		ActiveModel:  values[keyActiveModel],
		SystemPrompt: values[keySystemPrompt],
	}
	if settings.ActiveModel != "" {
		return settings, nil
	}

	if discovered := s.discoverModel(ctx); discovered != "" {
		settings.ActiveModel = discovered
		if err := s.store(ctx, settings); err != nil {
			return nil, fmt.Errorf("failed to save healed settings: %w", err)
		}
		slog.Info("Active model was empty, selected automatically", "active_model", discovered)
	}
	return settings, nil
}

// Save stores settings after checking the active model exists in Ollama.
func (s *SettingsService) Save(ctx context.Context, settings *Settings) error {
	available, err := s.llm.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("could not verify models against Ollama: %w", err)
	}
	names := make([]string, len(available.Models))
	for i, m := range available.Models {
		names[i] = m.Name
	}
	if !slices.Contains(names, settings.ActiveModel) {
		return fmt.Errorf("%w: active model '%s' is not available", app_errors.ErrValidation, settings.ActiveModel)
	}
	return s.store(ctx, settings)
}

// SetActiveModel replaces only the active model.
func (s *SettingsService) SetActiveModel(ctx context.Context, name string) error {
	return s.write(ctx, [][2]string{{keyActiveModel, name}})
}

func (s *SettingsService) discoverModel(ctx context.Context) string {
	models, err := s.llm.ListModels(ctx)
	switch {
	case err != nil:
		slog.Warn("Could not list Ollama models", "error", err)
		return ""
	case len(models.Models) == 0:
		slog.Warn("Ollama is running but has no models")
		return ""
	}
	return models.Models[0].Name
}

func (s *SettingsService) load(ctx context.Context) (map[string]string, error) {
	values := map[string]string{}
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if errors.Is(err, sql.ErrNoRows) {
		return values, nil
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

func (s *SettingsService) store(ctx context.Context, settings *Settings) error {
	return s.write(ctx, [][2]string{
		{keyActiveModel, settings.ActiveModel},
		{keySystemPrompt, settings.SystemPrompt},
	})
}

func (s *SettingsService) write(ctx context.Context, pairs [][2]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, kv := range pairs {
		if _, err := stmt.ExecContext(ctx, kv[0], kv[1]); err != nil {
			return fmt.Errorf("could not save setting %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}
