package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "viz-ai/backend/internal/errors"
	"viz-ai/backend/internal/model"
	"viz-ai/backend/internal/repository"
	mock_repo "viz-ai/backend/internal/repository/mocks"
	"viz-ai/backend/internal/service"
)

func setupFileService(t *testing.T) (*service.FileService, *mock_repo.MockRepository, string) {
	dir := t.TempDir()
	mockRepo := mock_repo.NewMockRepository(t)
	return service.NewFileService(mockRepo, dir, 2), mockRepo, dir
}

func TestFileService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Parses, summarizes and skips unsupported files", func(t *testing.T) {
		// ARRANGE
		fileService, mockRepo, dir := setupFileService(t)
		var stored []*model.UploadedFile
		mockRepo.On("CreateFile", ctx, mock.AnythingOfType("*model.UploadedFile")).
			Run(func(args mock.Arguments) { stored = append(stored, args.Get(1).(*model.UploadedFile)) }).
			Return(nil).Twice()

		uploads := []service.Upload{
			{Name: "sales.csv", Content: strings.NewReader("month,amount\nJan,10\nFeb,20\n")},
			{Name: "notes.docx", Content: strings.NewReader("binary")},
			{Name: "config.json", Content: strings.NewReader(`{"a": 1}`)},
		}

		// ACT
		result, err := fileService.Upload(ctx, "s1", uploads)

		// ASSERT
		require.NoError(t, err)
		assert.Equal(t, "s1", result.SessionID)
		assert.Equal(t, []string{"notes.docx"}, result.Skipped)
		require.Len(t, result.Files, 2)
		require.Len(t, stored, 2)

		csv := result.Files[0]
		assert.Equal(t, model.FileTypeCSV, csv.FileType)
		assert.Equal(t, int64(len("month,amount\nJan,10\nFeb,20\n")), csv.FileSize)
		assert.True(t, strings.HasPrefix(csv.MimeType, "text/"), csv.MimeType)
		assert.Empty(t, csv.ParseError)
		assert.True(t, strings.HasPrefix(csv.Path, dir))
		_, err = os.Stat(csv.Path)
		assert.NoError(t, err)

		var summary map[string]any
		require.NoError(t, json.Unmarshal(csv.ParsedData, &summary))
		assert.Contains(t, summary, "statistics")

		assert.Equal(t, model.FileTypeJSON, result.Files[1].FileType)
		assert.Equal(t, "s1", result.Files[1].SessionID)
	})

	t.Run("Success - Parse failure is recorded, not fatal", func(t *testing.T) {
		fileService, mockRepo, _ := setupFileService(t)
		mockRepo.On("CreateFile", ctx, mock.MatchedBy(func(f *model.UploadedFile) bool {
			return f.ParseError != "" && f.ParsedData == nil
		})).Return(nil).Once()

		result, err := fileService.Upload(ctx, "", []service.Upload{
			{Name: "broken.json", Content: strings.NewReader(`{"a":`)},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.SessionID)
	})

	t.Run("Failure - Write error removes files already stored", func(t *testing.T) {
		fileService, mockRepo, dir := setupFileService(t)

		_, err := fileService.Upload(ctx, "s1", []service.Upload{
			{Name: "sales.csv", Content: strings.NewReader("month,amount\nJan,10\n")},
			{Name: "cut.json", Content: iotest.ErrReader(errors.New("connection reset"))},
		})

		require.Error(t, err)
		assert.Empty(t, storedFiles(t, dir))
		mockRepo.AssertNotCalled(t, "CreateFile", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Record error removes unrecorded files", func(t *testing.T) {
		fileService, mockRepo, dir := setupFileService(t)
		var recorded *model.UploadedFile
		mockRepo.On("CreateFile", ctx, mock.Anything).
			Run(func(args mock.Arguments) { recorded = args.Get(1).(*model.UploadedFile) }).
			Return(nil).Once()
		mockRepo.On("CreateFile", ctx, mock.Anything).Return(errors.New("disk I/O error")).Once()

		_, err := fileService.Upload(ctx, "s1", []service.Upload{
			{Name: "a.csv", Content: strings.NewReader("x\n1\n")},
			{Name: "b.csv", Content: strings.NewReader("x\n2\n")},
		})

		require.Error(t, err)
		require.NotNil(t, recorded)
		assert.Equal(t, []string{recorded.Path}, storedFiles(t, dir))
	})
}

func TestFileService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Removes record and stored file", func(t *testing.T) {
		fileService, mockRepo, dir := setupFileService(t)
		path := filepath.Join(dir, "f1.csv")
		require.NoError(t, os.WriteFile(path, []byte("a\n1\n"), 0600))

		mockRepo.On("GetFile", ctx, "f1").Return(&model.UploadedFile{ID: "f1", Path: path}, nil).Once()
		mockRepo.On("DeleteFile", ctx, "f1").Return(nil).Once()

		require.NoError(t, fileService.Delete(ctx, "f1"))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Failure - Unknown file", func(t *testing.T) {
		fileService, mockRepo, _ := setupFileService(t)
		mockRepo.On("GetFile", ctx, "nope").Return(nil, repository.ErrNotFound).Once()

		assert.ErrorIs(t, fileService.Delete(ctx, "nope"), app_errors.ErrNotFound)
	})
}

func TestFileService_ListBySession(t *testing.T) {
	ctx := context.Background()
	fileService, mockRepo, _ := setupFileService(t)

	_, err := fileService.ListBySession(ctx, "")
	assert.ErrorIs(t, err, app_errors.ErrValidation)

	files := []*model.UploadedFile{{ID: "f1"}}
	mockRepo.On("ListFilesBySession", ctx, "s1").Return(files, nil).Once()
	got, err := fileService.ListBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, files, got)
}

// storedFiles lists the regular files under the upload root.
func storedFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}
