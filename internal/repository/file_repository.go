package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"viz-ai/backend/internal/model"
)

const fileColumns = "id, file_name, file_type, mime_type, file_size, path, parsed_data, parse_error, session_id, uploaded_at"

func (r *sqliteRepository) CreateFile(ctx context.Context, file *model.UploadedFile) error {
	query := "INSERT INTO uploaded_files (" + fileColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query,
		file.ID,
		file.FileName,
		file.FileType,
		file.MimeType,
		file.FileSize,
		file.Path,
		nullJSON(file.ParsedData),
		file.ParseError,
		file.SessionID,
		file.UploadedAt,
	)
	return err
}

func (r *sqliteRepository) GetFile(ctx context.Context, id string) (*model.UploadedFile, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+fileColumns+" FROM uploaded_files WHERE id = ?", id)
	f, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

func (r *sqliteRepository) ListFilesBySession(ctx context.Context, sessionID string) ([]*model.UploadedFile, error) {
	return r.listFiles(ctx, "SELECT "+fileColumns+" FROM uploaded_files WHERE session_id = ? ORDER BY uploaded_at DESC", sessionID)
}

// ListFilesByIDs returns the files with the given ids; unknown ids are skipped.
func (r *sqliteRepository) ListFilesByIDs(ctx context.Context, ids []string) ([]*model.UploadedFile, error) {
	if len(ids) == 0 {
		return []*model.UploadedFile{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := "SELECT " + fileColumns + " FROM uploaded_files WHERE id IN (" + placeholders + ") ORDER BY uploaded_at DESC"
	return r.listFiles(ctx, query, args...)
}

func (r *sqliteRepository) DeleteFile(ctx context.Context, id string) error {
	return r.deleteOne(ctx, "DELETE FROM uploaded_files WHERE id = ?", id)
}

func (r *sqliteRepository) listFiles(ctx context.Context, query string, args ...any) ([]*model.UploadedFile, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []*model.UploadedFile{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func scanFile(s scanner) (*model.UploadedFile, error) {
	var f model.UploadedFile
	var parsed sql.NullString
	err := s.Scan(&f.ID, &f.FileName, &f.FileType, &f.MimeType, &f.FileSize, &f.Path,
		&parsed, &f.ParseError, &f.SessionID, &f.UploadedAt)
	if err != nil {
		return nil, err
	}
	f.ParsedData = rawJSON(parsed)
	return &f, nil
}
