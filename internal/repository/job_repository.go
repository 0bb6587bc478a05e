package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"viz-ai/backend/internal/model"
)

func newID() string { return uuid.NewString() }

const jobColumns = "job_id, conversation_id, status, progress, estimated_time, error_message, result, created_at, started_at, completed_at"

func (r *sqliteRepository) CreateJob(ctx context.Context, job *model.ProcessingJob) error {
	query := "INSERT INTO processing_jobs (" + jobColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query,
		job.JobID,
		job.ConversationID,
		job.Status,
		job.Progress,
		job.EstimatedTime,
		job.ErrorMessage,
		nullJSON(job.Result),
		job.CreatedAt,
		job.StartedAt,
		job.CompletedAt,
	)
	return err
}

func (r *sqliteRepository) UpdateJob(ctx context.Context, job *model.ProcessingJob) error {
	query := `
		UPDATE processing_jobs
		SET status = ?, progress = ?, estimated_time = ?, error_message = ?, result = ?, started_at = ?, completed_at = ?
		WHERE job_id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		job.Status,
		job.Progress,
		job.EstimatedTime,
		job.ErrorMessage,
		nullJSON(job.Result),
		job.StartedAt,
		job.CompletedAt,
		job.JobID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) GetJob(ctx context.Context, jobID string) (*model.ProcessingJob, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM processing_jobs WHERE job_id = ?", jobID)

	var job model.ProcessingJob
	var estimated sql.NullInt64
	var result sql.NullString
	var started, completed sql.NullTime
	err := row.Scan(&job.JobID, &job.ConversationID, &job.Status, &job.Progress, &estimated,
		&job.ErrorMessage, &result, &job.CreatedAt, &started, &completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if estimated.Valid {
		secs := int(estimated.Int64)
		job.EstimatedTime = &secs
	}
	job.Result = rawJSON(result)
	if started.Valid {
		job.StartedAt = &started.Time
	}
	if completed.Valid {
		job.CompletedAt = &completed.Time
	}
	return &job, nil
}
