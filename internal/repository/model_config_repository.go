package repository

import (
	"context"
	"database/sql"
	"errors"

	"viz-ai/backend/internal/model"
)

const modelConfigColumns = "id, model_name, base_url, is_available, parameters, created_at, updated_at"

// UpsertModelConfig inserts the config or refreshes availability and
// parameters of an existing one with the same model name.
func (r *sqliteRepository) UpsertModelConfig(ctx context.Context, cfg *model.ModelConfig) error {
	query := `
		INSERT INTO model_configs (` + modelConfigColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(model_name) DO UPDATE SET
			is_available = excluded.is_available,
			parameters = excluded.parameters,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		cfg.ID,
		cfg.ModelName,
		cfg.BaseURL,
		cfg.IsAvailable,
		nullJSON(cfg.Parameters),
		cfg.CreatedAt,
		cfg.UpdatedAt,
	)
	return err
}

func (r *sqliteRepository) ListModelConfigs(ctx context.Context) ([]*model.ModelConfig, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+modelConfigColumns+" FROM model_configs ORDER BY updated_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configs := []*model.ModelConfig{}
	for rows.Next() {
		cfg, err := scanModelConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}

func (r *sqliteRepository) GetModelConfigByName(ctx context.Context, name string) (*model.ModelConfig, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+modelConfigColumns+" FROM model_configs WHERE model_name = ?", name)
	cfg, err := scanModelConfig(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return cfg, err
}

func scanModelConfig(s scanner) (*model.ModelConfig, error) {
	var cfg model.ModelConfig
	var params sql.NullString
	if err := s.Scan(&cfg.ID, &cfg.ModelName, &cfg.BaseURL, &cfg.IsAvailable, &params, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		return nil, err
	}
	cfg.Parameters = rawJSON(params)
	return &cfg, nil
}
