package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "viz-ai/backend/internal/errors"
	"viz-ai/backend/internal/interfaces"
	"viz-ai/backend/internal/service"
)

const multipartMemory = 32 << 20

// FileHandler serves uploads.
type FileHandler struct {
	service        interfaces.FileService
	maxUploadBytes int64
}

func NewFileHandler(svc interfaces.FileService, maxUploadBytes int64) *FileHandler {
	return &FileHandler{service: svc, maxUploadBytes: maxUploadBytes}
}

// HandleUpload godoc
// @Summary      Upload data files
// @Description  Accepts csv, json, yaml, xlsx and pdf files. Other types are skipped.
// @Tags         Files
// @Accept       multipart/form-data
// @Produce      json
// @Param        files       formData  file    true   "Files to upload"
// @Param        session_id  formData  string  false  "Session ID, generated when empty"
// @Success      201         {object}  service.UploadResult
// @Failure      400         {object}  ErrorResponse
// @Router       /v1/files/upload [post]
func (h *FileHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid multipart upload: %v", app_errors.ErrValidation, err))
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respondWithError(w, fmt.Errorf("%w: no files provided", app_errors.ErrValidation))
		return
	}

	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respondWithError(w, fmt.Errorf("could not open upload %s: %w", fh.Filename, err))
			return
		}
		defer f.Close()
		uploads = append(uploads, service.Upload{Name: fh.Filename, Content: f})
	}

	result, err := h.service.Upload(r.Context(), r.FormValue("session_id"), uploads)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, result)
}

// HandleListFiles godoc
// @Summary      List the files of a session
// @Tags         Files
// @Produce      json
// @Param        session_id  query     string  true  "Session ID"
// @Success      200         {array}   model.UploadedFile
// @Failure      400         {object}  ErrorResponse
// @Router       /v1/files [get]
func (h *FileHandler) HandleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.ListBySession(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, files)
}

// HandleGetFile godoc
// @Summary      Get an uploaded file and its summary
// @Tags         Files
// @Produce      json
// @Param        fileID  path      string  true  "File ID"
// @Success      200     {object}  model.UploadedFile
// @Failure      404     {object}  ErrorResponse
// @Router       /v1/files/{fileID} [get]
func (h *FileHandler) HandleGetFile(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.Get(r.Context(), chi.URLParam(r, "fileID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, f)
}

// HandleDeleteFile godoc
// @Summary      Delete an uploaded file
// @Tags         Files
// @Param        fileID  path  string  true  "File ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/files/{fileID} [delete]
func (h *FileHandler) HandleDeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "fileID")); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
