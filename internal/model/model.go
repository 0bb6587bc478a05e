package model

import (
	"encoding/json"
	"fmt"
	"time"

	app_errors "viz-ai/backend/internal/errors"
)

// ModelConfig is an Ollama model known to the application.
type ModelConfig struct {
	ID          string          `json:"id"`
	ModelName   string          `json:"model_name"`
	BaseURL     string          `json:"base_url"`
	IsAvailable bool            `json:"is_available"`
	IsActive    bool            `json:"is_active"`
	Parameters  json.RawMessage `json:"parameters,omitempty"` // size, modified_at, details
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FileType is the parser family of an upload.
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeJSON FileType = "json"
	FileTypeYAML FileType = "yaml"
	FileTypeXLSX FileType = "xlsx"
	FileTypePDF  FileType = "pdf"
)

// UploadedFile is a user upload and its parsed summary.
type UploadedFile struct {
	ID         string          `json:"id"`
	FileName   string          `json:"file_name"`
	FileType   FileType        `json:"file_type"`
	MimeType   string          `json:"mime_type"`
	FileSize   int64           `json:"file_size"`
	Path       string          `json:"-"`
	ParsedData json.RawMessage `json:"parsed_data,omitempty"`
	ParseError string          `json:"parse_error,omitempty"`
	SessionID  string          `json:"session_id"`
	UploadedAt time.Time       `json:"uploaded_at"`
}

// Conversation groups the messages of one session.
type Conversation struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	ModelName *string   `json:"model_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullConversation includes the conversation and its history.
type FullConversation struct {
	Conversation
	Messages       []Message       `json:"messages"`
	Visualizations []Visualization `json:"visualizations"`
}

type MessageType string

const (
	MessageTypeUser   MessageType = "user"
	MessageTypeAI     MessageType = "ai"
	MessageTypeSystem MessageType = "system"
)

// Message stores a single message in a conversation.
type Message struct {
	ID             string          `json:"id"`
	ConversationID string          `json:"conversation_id"`
	Type           MessageType     `json:"message_type"`
	Content        string          `json:"content"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Visualization is one persisted chart of an AI message.
type Visualization struct {
	ID             string          `json:"id"`
	ConversationID string          `json:"conversation_id"`
	MessageID      string          `json:"message_id"`
	Title          string          `json:"title"`
	ChartType      string          `json:"chart_type"`
	ChartConfig    json.RawMessage `json:"chart_config"`
	Explanation    string          `json:"explanation"`
	CreatedAt      time.Time       `json:"created_at"`
}

// JobStatus is the state of a ProcessingJob.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Terminal reports whether no further transition is possible.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

var transitions = map[JobStatus][]JobStatus{
	JobPending:    {JobProcessing},
	JobProcessing: {JobCompleted, JobFailed},
}

// CanTransition reports whether a job may move from s to next.
func (s JobStatus) CanTransition(next JobStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ProcessingJob tracks one chat turn.
type ProcessingJob struct {
	JobID          string          `json:"job_id"`
	ConversationID string          `json:"conversation_id"`
	Status         JobStatus       `json:"status"`
	Progress       int             `json:"progress"`
	EstimatedTime  *int            `json:"estimated_time,omitempty"` // seconds
	ErrorMessage   string          `json:"error_message,omitempty"`
	Result         json.RawMessage `json:"result,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	StartedAt      *time.Time      `json:"started_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

// Transition moves the job to next, stamping start and completion times.
// Jobs never leave a terminal state and are never retried.
func (j *ProcessingJob) Transition(next JobStatus, now time.Time) error {
	if !j.Status.CanTransition(next) {
		return fmt.Errorf("%w: job %s cannot move from %s to %s", app_errors.ErrInvalidTransition, j.JobID, j.Status, next)
	}
	j.Status = next
	switch {
	case next == JobProcessing:
		j.StartedAt = &now
	case next.Terminal():
		j.CompletedAt = &now
		if next == JobCompleted {
			j.Progress = 100
		}
	}
	return nil
}

// ElapsedTime is the time spent processing so far, or in total once finished.
func (j *ProcessingJob) ElapsedTime(now time.Time) time.Duration {
	if j.StartedAt == nil {
		return 0
	}
	end := now
	if j.CompletedAt != nil {
		end = *j.CompletedAt
	}
	return end.Sub(*j.StartedAt)
}
