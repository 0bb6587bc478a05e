package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"viz-ai/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

const conversationColumns = "id, session_id, model_name, created_at, updated_at"

// GetOrCreateConversation returns the conversation of a session, creating it
// on first use. modelName is only recorded on creation.
func (r *sqliteRepository) GetOrCreateConversation(ctx context.Context, sessionID string, modelName *string, now time.Time) (*model.Conversation, error) {
	query := `
		INSERT INTO conversations (id, session_id, model_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, newID(), sessionID, modelName, now, now); err != nil {
		return nil, fmt.Errorf("could not create conversation: %w", err)
	}
	return r.GetConversationBySession(ctx, sessionID)
}

func (r *sqliteRepository) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+conversationColumns+" FROM conversations WHERE id = ?", id)
	return scanConversation(row)
}

func (r *sqliteRepository) GetConversationBySession(ctx context.Context, sessionID string) (*model.Conversation, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+conversationColumns+" FROM conversations WHERE session_id = ?", sessionID)
	return scanConversation(row)
}

func (r *sqliteRepository) ListConversations(ctx context.Context) ([]*model.Conversation, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+conversationColumns+" FROM conversations ORDER BY updated_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []*model.Conversation{}
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

func (r *sqliteRepository) DeleteConversation(ctx context.Context, id string) error {
	return r.deleteOne(ctx, "DELETE FROM conversations WHERE id = ?", id)
}

// AddMessage inserts a message and bumps the conversation's updated_at.
func (r *sqliteRepository) AddMessage(ctx context.Context, message *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertMessage(ctx, tx, message); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *sqliteRepository) ListMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	query := `
		SELECT id, conversation_id, message_type, content, metadata, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var msg model.Message
		var metadata sql.NullString
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Type, &msg.Content, &metadata, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.Metadata = rawJSON(metadata)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *sqliteRepository) SaveChatResult(ctx context.Context, message *model.Message, visualizations []model.Visualization) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertMessage(ctx, tx, message); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO visualizations (id, conversation_id, message_id, title, chart_type, chart_config, explanation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, v := range visualizations {
		if _, err := stmt.ExecContext(ctx, v.ID, v.ConversationID, v.MessageID, v.Title, v.ChartType, string(v.ChartConfig), v.Explanation, v.CreatedAt); err != nil {
			return fmt.Errorf("could not insert visualization %q: %w", v.Title, err)
		}
	}
	return tx.Commit()
}

func (r *sqliteRepository) ListVisualizations(ctx context.Context, conversationID string) ([]model.Visualization, error) {
	query := `
		SELECT id, conversation_id, message_id, title, chart_type, chart_config, explanation, created_at
		FROM visualizations
		WHERE conversation_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visualizations := []model.Visualization{}
	for rows.Next() {
		var v model.Visualization
		var messageID sql.NullString
		var config string
		if err := rows.Scan(&v.ID, &v.ConversationID, &messageID, &v.Title, &v.ChartType, &config, &v.Explanation, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.MessageID = messageID.String
		v.ChartConfig = json.RawMessage(config)
		visualizations = append(visualizations, v)
	}
	return visualizations, rows.Err()
}

func insertMessage(ctx context.Context, tx *sql.Tx, message *model.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, message_type, content, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		message.ID,
		message.ConversationID,
		message.Type,
		message.Content,
		nullJSON(message.Metadata),
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	_, err = tx.ExecContext(ctx, "UPDATE conversations SET updated_at = ? WHERE id = ?", message.CreatedAt, message.ConversationID)
	if err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversation(s scanner) (*model.Conversation, error) {
	var c model.Conversation
	var modelName sql.NullString
	if err := s.Scan(&c.ID, &c.SessionID, &modelName, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if modelName.Valid {
		c.ModelName = &modelName.String
	}
	return &c, nil
}

// deleteOne runs a delete and reports ErrNotFound when no row matched.
func (r *sqliteRepository) deleteOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// nullJSON stores empty and null documents as SQL NULL and everything else as text.
func nullJSON(raw json.RawMessage) sql.NullString {
	if len(raw) == 0 || string(raw) == "null" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

func rawJSON(s sql.NullString) json.RawMessage {
	if !s.Valid {
		return nil
	}
	return json.RawMessage(s.String)
}
