package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "viz-ai/backend/internal/errors"
	"viz-ai/backend/internal/llm"
	"viz-ai/backend/internal/llm/mocks"
	"viz-ai/backend/internal/model"
	"viz-ai/backend/internal/repository"
	mock_repo "viz-ai/backend/internal/repository/mocks"
	"viz-ai/backend/internal/service"
)

const testOllamaURL = "http://ollama:11434"

func setupModelService(t *testing.T) (*service.ModelService, *mocks.MockLLMProvider) {
	modelService, mockLLMProvider, _, _ := setupModelServiceWithStore(t)
	return modelService, mockLLMProvider
}

func setupModelServiceWithStore(t *testing.T) (*service.ModelService, *mocks.MockLLMProvider, *mock_repo.MockRepository, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mockLLMProvider := mocks.NewMockLLMProvider(t)
	mockRepo := mock_repo.NewMockRepository(t)
	settingsService := service.NewSettingsService(db, mockLLMProvider)
	return service.NewModelService(mockLLMProvider, mockRepo, settingsService, testOllamaURL), mockLLMProvider, mockRepo, mockDB
}

func TestModelService_List(t *testing.T) {
	ctx := context.Background()
	modelService, mockLLMProvider := setupModelService(t)

	expectedResponse := &llm.ListModelsResponse{
		Models: []llm.Model{{Name: "test-model"}},
	}
	expectedError := errors.New("provider error")

	testCases := []struct {
		name         string
		setupMock    func()
		expectError  bool
		expectedResp *llm.ListModelsResponse
		expectedErr  error
	}{
		{
			name: "Success",
			setupMock: func() {

				mockLLMProvider.On("ListModels", ctx).Return(expectedResponse, nil).Once()
			},
			expectError:  false,
			expectedResp: expectedResponse,
		},
		{
			name: "Failure - Provider Error",
			setupMock: func() {

				mockLLMProvider.On("ListModels", ctx).Return(nil, expectedError).Once()
			},
			expectError: true,
			expectedErr: expectedError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			resp, err := modelService.List(ctx)

			if tc.expectError {
				assert.Error(t, err)
				assert.Equal(t, tc.expectedErr, err)
				assert.Nil(t, resp)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedResp, resp)
			}

			mockLLMProvider.AssertExpectations(t)
		})
	}
}

func TestModelService_Delete(t *testing.T) {
	ctx := context.Background()
	modelService, mockLLMProvider := setupModelService(t)

	req := &llm.DeleteModelRequest{Name: "test-model"}
	expectedError := errors.New("provider error")

	testCases := []struct {
		name        string
		setupMock   func()
		expectError bool
		expectedErr error
	}{
		{
			name: "Success",
			setupMock: func() {
				mockLLMProvider.On("DeleteModel", ctx, req).Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Failure - Provider Error",
			setupMock: func() {
				mockLLMProvider.On("DeleteModel", ctx, req).Return(expectedError).Once()
			},
			expectError: true,
			expectedErr: expectedError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			err := modelService.Delete(ctx, req)

			if tc.expectError {
				assert.Error(t, err)
				assert.Equal(t, tc.expectedErr, err)
			} else {
				assert.NoError(t, err)
			}
			mockLLMProvider.AssertExpectations(t)
		})
	}
}

func TestModelService_Show(t *testing.T) {
	ctx := context.Background()
	modelService, mockLLMProvider := setupModelService(t)

	req := &llm.ShowModelRequest{Name: "test-model"}
	expectedResponse := &llm.ModelInfo{Modelfile: "FROM scratch"}
	expectedError := errors.New("provider error")

	testCases := []struct {
		name         string
		setupMock    func()
		expectError  bool
		expectedResp *llm.ModelInfo
		expectedErr  error
	}{
		{
			name: "Success",
			setupMock: func() {
				mockLLMProvider.On("ShowModelInfo", ctx, req).Return(expectedResponse, nil).Once()
			},
			expectError:  false,
			expectedResp: expectedResponse,
		},
		{
			name: "Failure - Provider Error",
			setupMock: func() {
				mockLLMProvider.On("ShowModelInfo", ctx, req).Return(nil, expectedError).Once()
			},
			expectError: true,
			expectedErr: expectedError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			resp, err := modelService.Show(ctx, req)

			if tc.expectError {
				assert.Error(t, err)
				assert.Equal(t, tc.expectedErr, err)
				assert.Nil(t, resp)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedResp, resp)
			}
			mockLLMProvider.AssertExpectations(t)
		})
	}
}

func TestModelService_Pull(t *testing.T) {
	ctx := context.Background()
	modelService, mockLLMProvider := setupModelService(t)

	req := &llm.PullModelRequest{Name: "test-model"}
	expectedError := errors.New("provider error")

	testCases := []struct {
		name        string
		setupMock   func()
		expectError bool
		expectedErr error
	}{
		{
			name: "Success",
			setupMock: func() {

				mockLLMProvider.On("PullModel", ctx, req, mock.Anything).Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Failure - Provider Error",
			setupMock: func() {
				mockLLMProvider.On("PullModel", ctx, req, mock.Anything).Return(expectedError).Once()
			},
			expectError: true,
			expectedErr: expectedError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			testChan := make(chan llm.PullStatus, 1)

			go func() {
				for range testChan {
				}
			}()

			err := modelService.Pull(ctx, req, testChan)

			if tc.expectError {
				assert.Error(t, err)
				assert.Equal(t, tc.expectedErr, err)
			} else {
				assert.NoError(t, err)
			}
			mockLLMProvider.AssertExpectations(t)

			close(testChan)
		})
	}
}

func TestModelService_AutoDetect(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Upserts every installed model", func(t *testing.T) {
		modelService, mockLLM, mockRepo, mockDB := setupModelServiceWithStore(t)

		mockLLM.On("Ping", ctx).Return(nil).Once()
		mockLLM.On("ListModels", ctx).Return(&llm.ListModelsResponse{Models: []llm.Model{
			{Name: "llama3:8b", Size: 42, ModifiedAt: "2025-01-01T00:00:00Z", Details: llm.ModelDetails{Family: "llama"}},
			{Name: "mistral", Size: 7},
		}}, nil).Once()
		mockRepo.On("UpsertModelConfig", ctx, mock.MatchedBy(func(cfg *model.ModelConfig) bool {
			var params map[string]any
			if err := json.Unmarshal(cfg.Parameters, &params); err != nil {
				return false
			}
			return cfg.ModelName == "llama3:8b" && cfg.BaseURL == testOllamaURL && cfg.IsAvailable &&
				params["size"] == float64(42) && cfg.ID != ""
		})).Return(nil).Once()
		mockRepo.On("UpsertModelConfig", ctx, mock.MatchedBy(func(cfg *model.ModelConfig) bool {
			return cfg.ModelName == "mistral"
		})).Return(nil).Once()
		mockRepo.On("ListModelConfigs", ctx).Return([]*model.ModelConfig{
			{ModelName: "llama3:8b"}, {ModelName: "mistral"},
		}, nil).Once()
		expectSettingsRows(mockDB, "mistral", "p")

		configs, err := modelService.AutoDetect(ctx)
		require.NoError(t, err)
		require.Len(t, configs, 2)
		assert.False(t, configs[0].IsActive)
		assert.True(t, configs[1].IsActive)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - Ollama unreachable", func(t *testing.T) {
		modelService, mockLLM, _, _ := setupModelServiceWithStore(t)
		mockLLM.On("Ping", ctx).Return(errors.New("connection refused")).Once()

		configs, err := modelService.AutoDetect(ctx)
		assert.Nil(t, configs)
		assert.ErrorIs(t, err, app_errors.ErrServiceUnavailable)
	})
}

func TestModelService_SetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Known available model", func(t *testing.T) {
		modelService, _, mockRepo, mockDB := setupModelServiceWithStore(t)
		mockRepo.On("GetModelConfigByName", ctx, "mistral").
			Return(&model.ModelConfig{ModelName: "mistral", IsAvailable: true}, nil).Once()
		mockDB.ExpectBegin()
		prep := mockDB.ExpectPrepare("INSERT INTO settings")
		prep.ExpectExec().WithArgs("active_model", "mistral").WillReturnResult(sqlmock.NewResult(1, 1))
		mockDB.ExpectCommit()

		cfg, err := modelService.SetActive(ctx, "mistral")
		require.NoError(t, err)
		assert.True(t, cfg.IsActive)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - Unknown model", func(t *testing.T) {
		modelService, _, mockRepo, _ := setupModelServiceWithStore(t)
		mockRepo.On("GetModelConfigByName", ctx, "ghost").Return(nil, repository.ErrNotFound).Once()

		_, err := modelService.SetActive(ctx, "ghost")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})

	t.Run("Failure - Model no longer available", func(t *testing.T) {
		modelService, _, mockRepo, _ := setupModelServiceWithStore(t)
		mockRepo.On("GetModelConfigByName", ctx, "old").
			Return(&model.ModelConfig{ModelName: "old", IsAvailable: false}, nil).Once()

		_, err := modelService.SetActive(ctx, "old")
		assert.ErrorIs(t, err, app_errors.ErrConflict)
	})
}

func TestModelService_Active(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Returns the active configuration", func(t *testing.T) {
		modelService, _, mockRepo, mockDB := setupModelServiceWithStore(t)
		expectSettingsRows(mockDB, "llama3:8b", "p")
		mockRepo.On("GetModelConfigByName", ctx, "llama3:8b").
			Return(&model.ModelConfig{ModelName: "llama3:8b", IsAvailable: true}, nil).Once()

		cfg, err := modelService.Active(ctx)
		require.NoError(t, err)
		assert.Equal(t, "llama3:8b", cfg.ModelName)
		assert.True(t, cfg.IsActive)
	})

	t.Run("Failure - No active model and nothing to discover", func(t *testing.T) {
		modelService, mockLLM, _, mockDB := setupModelServiceWithStore(t)
		expectSettingsRows(mockDB, "", "p")
		mockLLM.On("ListModels", ctx).Return(&llm.ListModelsResponse{}, nil).Once()

		_, err := modelService.Active(ctx)
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}
