package repository

import (
	"context"
	"time"

	"viz-ai/backend/internal/model"
)

// Repository defines the interface for data storage operations.
type Repository interface {
	GetOrCreateConversation(ctx context.Context, sessionID string, modelName *string, now time.Time) (*model.Conversation, error)
	GetConversation(ctx context.Context, id string) (*model.Conversation, error)
	GetConversationBySession(ctx context.Context, sessionID string) (*model.Conversation, error)
	ListConversations(ctx context.Context) ([]*model.Conversation, error)
	DeleteConversation(ctx context.Context, id string) error

	AddMessage(ctx context.Context, message *model.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]model.Message, error)

	// SaveChatResult stores an AI message and its charts atomically.
	SaveChatResult(ctx context.Context, message *model.Message, visualizations []model.Visualization) error
	ListVisualizations(ctx context.Context, conversationID string) ([]model.Visualization, error)

	CreateJob(ctx context.Context, job *model.ProcessingJob) error
	UpdateJob(ctx context.Context, job *model.ProcessingJob) error
	GetJob(ctx context.Context, jobID string) (*model.ProcessingJob, error)

	CreateFile(ctx context.Context, file *model.UploadedFile) error
	GetFile(ctx context.Context, id string) (*model.UploadedFile, error)
	ListFilesBySession(ctx context.Context, sessionID string) ([]*model.UploadedFile, error)
	ListFilesByIDs(ctx context.Context, ids []string) ([]*model.UploadedFile, error)
	DeleteFile(ctx context.Context, id string) error

	UpsertModelConfig(ctx context.Context, cfg *model.ModelConfig) error
	ListModelConfigs(ctx context.Context) ([]*model.ModelConfig, error)
	GetModelConfigByName(ctx context.Context, name string) (*model.ModelConfig, error)
}
