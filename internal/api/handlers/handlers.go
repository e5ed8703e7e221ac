// Package handlers implements the HTTP endpoints of the extraction service.
package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvoronin/iaa/internal/api/middleware"
	"github.com/dvoronin/iaa/internal/extract"
	"github.com/dvoronin/iaa/internal/jobs"
)

// maxUploadBytes bounds document uploads; processor limits are lower anyway.
const maxUploadBytes = 32 << 20

// DocumentsHandler handles document upload and processing endpoints.
type DocumentsHandler struct {
	publisher  jobs.Publisher
	stagingDir string
	log        zerolog.Logger
}

// NewDocumentsHandler creates a documents handler that stages uploads under
// stagingDir before enqueueing them.
func NewDocumentsHandler(publisher jobs.Publisher, stagingDir string, log zerolog.Logger) *DocumentsHandler {
	return &DocumentsHandler{
		publisher:  publisher,
		stagingDir: stagingDir,
		log:        log,
	}
}

// ProcessDocument handles POST /api/documents/process. The request is a
// multipart form with a "file" part and a "doc_type" field; the document is
// staged locally and a processing job is enqueued.
func (h *DocumentsHandler) ProcessDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	docType := r.FormValue("doc_type")
	if docType == "" {
		middleware.WriteError(w, http.StatusBadRequest, "doc_type is required")
		return
	}
	category, err := extract.ParseCategory(docType)
	if err != nil {
		middleware.WriteError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Unsupported document type %q", docType))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	localPath, err := h.stageUpload(file, header.Filename)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to stage upload")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}

	job := &jobs.ProcessDocumentJob{
		LocalPath: localPath,
		DocType:   category.String(),
	}
	if err := h.publisher.PublishProcessDocument(ctx, job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue processing job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue processing job")
		return
	}

	h.log.Info().
		Str("job_id", job.JobID).
		Str("doc_type", job.DocType).
		Str("filename", header.Filename).
		Msg("Processing job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id":   job.JobID,
		"doc_type": job.DocType,
		"status":   string(job.Status),
	})
}

// stageUpload copies the uploaded part into the staging directory under a
// collision-free name, preserving the original basename for traceability.
func (h *DocumentsHandler) stageUpload(src io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(h.stagingDir, 0o755); err != nil {
		return "", fmt.Errorf("stageUpload: create %q: %w", h.stagingDir, err)
	}

	name := uuid.NewString() + "_" + filepath.Base(filename)
	path := filepath.Join(h.stagingDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stageUpload: create %q: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("stageUpload: copy upload: %w", err)
	}
	return path, nil
}

// JobsHandler handles job status endpoints.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{store: store, log: log}
}

// GetJob handles GET /api/jobs/{id}.
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := jobs.JobFilter{
		DocType: query.Get("doc_type"),
		Status:  jobs.JobStatus(query.Get("status")),
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
