package interfaces

import (
	"context"

	"viz-ai/backend/internal/llm"
	"viz-ai/backend/internal/model"
	"viz-ai/backend/internal/service"
)

// The API layer depends on these contracts rather than on the concrete
// services, so handlers can be tested against mocks.

// ChatService runs chat turns and serves conversations and their jobs.
type ChatService interface {
	Chat(ctx context.Context, req *service.ChatRequest) (*service.ChatResponse, error)
	ListConversations(ctx context.Context) ([]*model.Conversation, error)
	GetConversation(ctx context.Context, id string) (*model.FullConversation, error)
	GetConversationBySession(ctx context.Context, sessionID string) (*model.FullConversation, error)
	DeleteConversation(ctx context.Context, id string) error
	GetJob(ctx context.Context, jobID string) (*model.ProcessingJob, error)
}

// FileService stores and parses uploads.
type FileService interface {
	Upload(ctx context.Context, sessionID string, uploads []service.Upload) (*service.UploadResult, error)
	ListBySession(ctx context.Context, sessionID string) ([]*model.UploadedFile, error)
	Get(ctx context.Context, id string) (*model.UploadedFile, error)
	Delete(ctx context.Context, id string) error
}

// ModelService defines the contract for model management logic.
type ModelService interface {
	List(ctx context.Context) (*llm.ListModelsResponse, error)
	Pull(ctx context.Context, req *llm.PullModelRequest, ch chan<- llm.PullStatus) error
	Delete(ctx context.Context, req *llm.DeleteModelRequest) error
	Show(ctx context.Context, req *llm.ShowModelRequest) (*llm.ModelInfo, error)
	Ping(ctx context.Context) error
	AutoDetect(ctx context.Context) ([]*model.ModelConfig, error)
	ListConfigs(ctx context.Context) ([]*model.ModelConfig, error)
	SetActive(ctx context.Context, name string) (*model.ModelConfig, error)
	Active(ctx context.Context) (*model.ModelConfig, error)
}

// SettingsService defines the contract for managing application settings.
type SettingsService interface {
	InitAndGet(ctx context.Context, defaultSystemPrompt string) (*service.Settings, error)
	Get(ctx context.Context) (*service.Settings, error)
	Save(ctx context.Context, settings *service.Settings) error
}

var (
	_ ChatService     = (*service.ChatService)(nil)
	_ FileService     = (*service.FileService)(nil)
	_ ModelService    = (*service.ModelService)(nil)
	_ SettingsService = (*service.SettingsService)(nil)
)
