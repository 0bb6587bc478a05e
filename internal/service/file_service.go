package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	app_errors "viz-ai/backend/internal/errors"
	"viz-ai/backend/internal/model"
	"viz-ai/backend/internal/parser"
	"viz-ai/backend/internal/repository"
)

// DefaultParseWorkers bounds how many uploads are parsed at once.
const DefaultParseWorkers = 4

// Upload is one file of a multipart upload.
type Upload struct {
	Name    string
	Content io.Reader
}

// UploadResult lists the stored files and the names that were skipped.
type UploadResult struct {
	SessionID string                `json:"session_id"`
	Files     []*model.UploadedFile `json:"files"`
	Skipped   []string              `json:"skipped,omitempty"`
}

type FileService struct {
	repo      repository.Repository
	uploadDir string
	workers   int
}

func NewFileService(repo repository.Repository, uploadDir string, workers int) *FileService {
	if workers <= 0 {
		workers = DefaultParseWorkers
	}
	return &FileService{repo: repo, uploadDir: uploadDir, workers: workers}
}

// Upload stores the files under uploadDir/YYYY/MM/DD, parses them and records
// a summary of each. A file that fails to parse is kept with its parse error.
func (s *FileService) Upload(ctx context.Context, sessionID string, uploads []Upload) (*UploadResult, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	now := time.Now().UTC()
	dir := filepath.Join(s.uploadDir, now.Format("2006/01/02"))
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("could not create upload directory: %w", err)
	}

	result := &UploadResult{SessionID: sessionID, Files: []*model.UploadedFile{}}
	for _, u := range uploads {
		fileType, err := parser.DetectType(u.Name)
		if err != nil {
			slog.Warn("Skipping upload", "file", u.Name, "error", err)
			result.Skipped = append(result.Skipped, u.Name)
			continue
		}
		f, err := s.store(dir, u, fileType)
		if err != nil {
			removeStored(result.Files)
			return nil, err
		}
		f.SessionID = sessionID
		f.UploadedAt = now
		result.Files = append(result.Files, f)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, f := range result.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summarizeFile(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		removeStored(result.Files)
		return nil, err
	}

	for i, f := range result.Files {
		if err := s.repo.CreateFile(ctx, f); err != nil {
			// Files before i have records and stay.
			removeStored(result.Files[i:])
			return nil, fmt.Errorf("could not save file %s: %w", f.FileName, err)
		}
		slog.Info("Stored upload", "file_id", f.ID, "file", f.FileName, "type", f.FileType, "parse_error", f.ParseError)
	}
	return result, nil
}

func (s *FileService) store(dir string, u Upload, fileType model.FileType) (*model.UploadedFile, error) {
	id := uuid.NewString()
	path := filepath.Join(dir, id+strings.ToLower(filepath.Ext(u.Name)))

	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create %s: %w", path, err)
	}
	size, err := io.Copy(out, u.Content)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("could not write %s: %w", u.Name, err)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("could not detect type of %s: %w", u.Name, err)
	}
	return &model.UploadedFile{
		ID:       id,
		FileName: filepath.Base(u.Name),
		FileType: fileType,
		MimeType: mime.String(),
		FileSize: size,
		Path:     path,
	}, nil
}

// removeStored deletes files written by a batch that will not be recorded.
func removeStored(files []*model.UploadedFile) {
	for _, f := range files {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Could not remove orphaned upload", "path", f.Path, "error", err)
		}
	}
}

func summarizeFile(f *model.UploadedFile) {
	data, err := parser.ParseFile(f.Path, f.FileType)
	if err != nil {
		f.ParseError = err.Error()
		return
	}
	summary, err := json.Marshal(parser.Summarize(data))
	if err != nil {
		f.ParseError = err.Error()
		return
	}
	f.ParsedData = summary
}

func (s *FileService) ListBySession(ctx context.Context, sessionID string) ([]*model.UploadedFile, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session_id is required", app_errors.ErrValidation)
	}
	return s.repo.ListFilesBySession(ctx, sessionID)
}

func (s *FileService) Get(ctx context.Context, id string) (*model.UploadedFile, error) {
	f, err := s.repo.GetFile(ctx, id)
	if err != nil {
		return nil, notFound(err, "file "+id)
	}
	return f, nil
}

// Delete removes the record and then the stored file.
func (s *FileService) Delete(ctx context.Context, id string) error {
	f, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteFile(ctx, id); err != nil {
		return notFound(err, "file "+id)
	}
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Could not remove stored upload", "file_id", id, "path", f.Path, "error", err)
	}
	return nil
}

// notFound translates repository misses into the application sentinel.
func notFound(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", app_errors.ErrNotFound, what)
	}
	return err
}
