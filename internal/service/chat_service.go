package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"viz-ai/backend/internal/chart"
	app_errors "viz-ai/backend/internal/errors"
	"viz-ai/backend/internal/llm"
	"viz-ai/backend/internal/model"
	"viz-ai/backend/internal/repository"
)

const completionAttempts = 2

// ChatRequest is one user turn.
type ChatRequest struct {
	Message   string   `json:"message" validate:"required"`
	SessionID string   `json:"session_id" validate:"required"`
	FileIDs   []string `json:"file_ids,omitempty"`
	Model     string   `json:"model,omitempty"`
}

// ChatResponse is the outcome of a turn. On failure Message is the stored
// apology and Error carries the reason.
type ChatResponse struct {
	JobID          string                `json:"job_id"`
	ConversationID string                `json:"conversation_id"`
	Message        *model.Message        `json:"message"`
	Visualizations []model.Visualization `json:"visualizations,omitempty"`
	Explanation    string                `json:"explanation,omitempty"`
	Repaired       bool                  `json:"repaired,omitempty"`
	Error          string                `json:"error,omitempty"`
}

// jobResult is stored on a completed job.
type jobResult struct {
	Explanation string                `json:"explanation"`
	Charts      []model.Visualization `json:"charts"`
}

type ChatService struct {
	repo      repository.Repository
	generator *llm.VisualizationGenerator
	settings  *SettingsService
}

func NewChatService(repo repository.Repository, generator *llm.VisualizationGenerator, settings *SettingsService) *ChatService {
	return &ChatService{repo: repo, generator: generator, settings: settings}
}

// Chat runs one turn: the user message is stored, the model is asked for a
// visualization document, the document is validated, repaired once if needed
// and themed, and the result is stored with its job. Every failure after the
// job exists marks it failed and stores an apology in the conversation.
func (s *ChatService) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if req.Message == "" || req.SessionID == "" {
		return nil, fmt.Errorf("%w: message and session_id are required", app_errors.ErrValidation)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	modelName := req.Model
	if modelName == "" {
		modelName = settings.ActiveModel
	}
	if modelName == "" {
		return nil, fmt.Errorf("%w: no model selected and no active model configured", app_errors.ErrValidation)
	}

	now := time.Now().UTC()
	conv, err := s.repo.GetOrCreateConversation(ctx, req.SessionID, &modelName, now)
	if err != nil {
		return nil, err
	}
	if conv.ModelName != nil && *conv.ModelName != "" && req.Model == "" {
		modelName = *conv.ModelName
	}

	userMessage := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		Type:           model.MessageTypeUser,
		Content:        req.Message,
		CreatedAt:      now,
	}
	if err := s.repo.AddMessage(ctx, userMessage); err != nil {
		return nil, fmt.Errorf("could not save user message: %w", err)
	}

	data, err := s.fileData(ctx, req)
	if err != nil {
		return nil, err
	}

	job := &model.ProcessingJob{
		JobID:          uuid.NewString(),
		ConversationID: conv.ID,
		Status:         model.JobPending,
		CreatedAt:      now,
	}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("could not create job: %w", err)
	}
	if err := job.Transition(model.JobProcessing, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return s.fail(ctx, job, fmt.Errorf("could not start job: %w", err))
	}
	log := slog.With("job_id", job.JobID, "conversation_id", conv.ID, "model", modelName)
	log.Info("Processing chat message", "files", len(data))

	raw, err := s.generator.Generate(ctx, modelName, data, req.Message, settings.SystemPrompt)
	if err != nil {
		return s.fail(ctx, job, err)
	}
	result, err := chart.Process(raw)
	if err != nil {
		return s.fail(ctx, job, err)
	}
	if result.Repaired {
		log.Warn("Generated document was repaired", "violation", result.InitialErr)
	}

	aiMessage, visualizations, err := s.buildResult(conv.ID, result)
	if err != nil {
		return s.fail(ctx, job, err)
	}
	if err := s.repo.SaveChatResult(ctx, aiMessage, visualizations); err != nil {
		return s.fail(ctx, job, fmt.Errorf("could not save visualizations: %w", err))
	}

	job.Result, err = json.Marshal(jobResult{Explanation: result.Document.Explanation, Charts: visualizations})
	if err != nil {
		return s.fail(ctx, job, err)
	}
	if err := job.Transition(model.JobCompleted, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.completeJob(ctx, job); err != nil {
		log.Error("Could not mark job completed", "error", err)
	}
	log.Info("Chat message processed", "charts", len(visualizations), "elapsed", job.ElapsedTime(time.Now().UTC()))

	return &ChatResponse{
		JobID:          job.JobID,
		ConversationID: conv.ID,
		Message:        aiMessage,
		Visualizations: visualizations,
		Explanation:    result.Document.Explanation,
		Repaired:       result.Repaired,
	}, nil
}

// fileData returns the parsed summaries keyed by file name, from the requested
// files or else every file of the session.
func (s *ChatService) fileData(ctx context.Context, req *ChatRequest) (map[string]any, error) {
	var files []*model.UploadedFile
	var err error
	if len(req.FileIDs) > 0 {
		files, err = s.repo.ListFilesByIDs(ctx, req.FileIDs)
	} else {
		files, err = s.repo.ListFilesBySession(ctx, req.SessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("could not load files: %w", err)
	}

	data := make(map[string]any, len(files))
	for _, f := range files {
		if len(f.ParsedData) == 0 {
			continue
		}
		var summary any
		if err := json.Unmarshal(f.ParsedData, &summary); err != nil {
			slog.Warn("Ignoring unreadable file summary", "file_id", f.ID, "error", err)
			continue
		}
		data[f.FileName] = summary
	}
	return data, nil
}

func (s *ChatService) buildResult(conversationID string, result *chart.Result) (*model.Message, []model.Visualization, error) {
	now := time.Now().UTC()
	doc := result.Document
	metadata, err := json.Marshal(map[string]any{
		"charts_count": len(doc.Charts),
		"repaired":     result.Repaired,
	})
	if err != nil {
		return nil, nil, err
	}
	msg := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Type:           model.MessageTypeAI,
		Content:        doc.Explanation,
		Metadata:       metadata,
		CreatedAt:      now,
	}

	visualizations := make([]model.Visualization, 0, len(doc.Charts))
	for _, c := range doc.Charts {
		config, err := json.Marshal(c)
		if err != nil {
			return nil, nil, fmt.Errorf("could not encode chart %q: %w", c.Title, err)
		}
		visualizations = append(visualizations, model.Visualization{
			ID:             uuid.NewString(),
			ConversationID: conversationID,
			MessageID:      msg.ID,
			Title:          c.Title,
			ChartType:      string(c.Type),
			ChartConfig:    config,
			Explanation:    doc.Explanation,
			CreatedAt:      now,
		})
	}
	return msg, visualizations, nil
}

// completeJob stores the completed job. The charts are already saved, so the
// write outlives a cancelled request and is attempted twice.
func (s *ChatService) completeJob(ctx context.Context, job *model.ProcessingJob) error {
	ctx = context.WithoutCancel(ctx)
	var err error
	for range completionAttempts {
		if err = s.repo.UpdateJob(ctx, job); err == nil {
			return nil
		}
	}
	return err
}

// fail marks the job failed, stores an apology and returns cause. The writes
// use a context detached from the request so a disconnected client still
// leaves a terminal job and the apology behind.
func (s *ChatService) fail(ctx context.Context, job *model.ProcessingJob, cause error) (*ChatResponse, error) {
	ctx = context.WithoutCancel(ctx)
	log := slog.With("job_id", job.JobID, "conversation_id", job.ConversationID)
	log.Error("Chat processing failed", "error", cause)

	job.ErrorMessage = cause.Error()
	if err := job.Transition(model.JobFailed, time.Now().UTC()); err != nil {
		log.Error("Could not fail job", "error", err)
	} else if err := s.repo.UpdateJob(ctx, job); err != nil {
		log.Error("Could not mark job failed", "error", err)
	}

	apology := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: job.ConversationID,
		Type:           model.MessageTypeSystem,
		Content:        "Sorry, I encountered an error: " + cause.Error(),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.AddMessage(ctx, apology); err != nil {
		log.Error("Could not save error message", "error", err)
	}

	return &ChatResponse{
		JobID:          job.JobID,
		ConversationID: job.ConversationID,
		Message:        apology,
		Error:          cause.Error(),
	}, cause
}

func (s *ChatService) ListConversations(ctx context.Context) ([]*model.Conversation, error) {
	return s.repo.ListConversations(ctx)
}

// GetConversation returns a conversation with its messages and charts.
func (s *ChatService) GetConversation(ctx context.Context, id string) (*model.FullConversation, error) {
	conv, err := s.repo.GetConversation(ctx, id)
	if err != nil {
		return nil, notFound(err, "conversation "+id)
	}
	return s.full(ctx, conv)
}

func (s *ChatService) GetConversationBySession(ctx context.Context, sessionID string) (*model.FullConversation, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session_id is required", app_errors.ErrValidation)
	}
	conv, err := s.repo.GetConversationBySession(ctx, sessionID)
	if err != nil {
		return nil, notFound(err, "conversation for session "+sessionID)
	}
	return s.full(ctx, conv)
}

func (s *ChatService) full(ctx context.Context, conv *model.Conversation) (*model.FullConversation, error) {
	messages, err := s.repo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	visualizations, err := s.repo.ListVisualizations(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get visualizations: %w", err)
	}
	return &model.FullConversation{Conversation: *conv, Messages: messages, Visualizations: visualizations}, nil
}

// DeleteConversation deletes a conversation and, by cascade, its history.
func (s *ChatService) DeleteConversation(ctx context.Context, id string) error {
	slog.Info("Deleting conversation", "conversation_id", id)
	return notFound(s.repo.DeleteConversation(ctx, id), "conversation "+id)
}

func (s *ChatService) GetJob(ctx context.Context, jobID string) (*model.ProcessingJob, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, notFound(err, "job "+jobID)
	}
	return job, nil
}
