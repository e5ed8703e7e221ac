// Package jobs defines the asynchronous document-processing job model and
// the queue abstractions the API server builds on.
package jobs

import (
	"context"
	"time"
)

// JobType represents the type of job to be executed.
type JobType string

const (
	// JobTypeProcessDocument represents an end-to-end extraction job.
	JobTypeProcessDocument JobType = "process_document"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// ProcessDocumentJob carries one uploaded document through the extraction
// pipeline asynchronously.
type ProcessDocumentJob struct {
	JobID string `json:"job_id"`

	// LocalPath is the staged copy of the uploaded file.
	LocalPath string `json:"local_path"`

	// DocType is the caller-declared document category.
	DocType string `json:"doc_type"`

	Status JobStatus `json:"status"`

	// SourceURI and RowCount are populated once the pipeline has run.
	SourceURI string `json:"source_uri,omitempty"`
	RowCount  int    `json:"row_count,omitempty"`

	// DetailPath is the local detail report written for the document.
	DetailPath string `json:"detail_path,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`

	RetryCount int `json:"retry_count"`
	MaxRetries int `json:"max_retries"`
}

// Job is a generic interface for all job types.
type Job interface {
	GetID() string
	GetType() JobType
	GetStatus() JobStatus
}

func (j *ProcessDocumentJob) GetID() string        { return j.JobID }
func (j *ProcessDocumentJob) GetType() JobType     { return JobTypeProcessDocument }
func (j *ProcessDocumentJob) GetStatus() JobStatus { return j.Status }

// Publisher defines the interface for publishing jobs to a queue.
// This abstraction allows swapping the in-memory queue for Cloud Tasks or
// Pub/Sub without touching the handlers.
type Publisher interface {
	PublishProcessDocument(ctx context.Context, job *ProcessDocumentJob) error
	Close() error
}

// JobHandler is a function that processes a job. A returned error marks the
// job failed and eligible for retry.
type JobHandler func(ctx context.Context, job Job) error

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs; the handler is called per job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobStore defines the interface for storing and retrieving job status, so
// the API can answer status queries across the job's lifetime.
type JobStore interface {
	SaveJob(ctx context.Context, job *ProcessDocumentJob) error
	GetJob(ctx context.Context, jobID string) (*ProcessDocumentJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*ProcessDocumentJob, error)
	UpdateJobStatus(ctx context.Context, jobID string, status JobStatus, errorMsg string) error
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	// DocType filters jobs by declared document category.
	DocType string

	// Status filters jobs by status.
	Status JobStatus

	Limit  int
	Offset int
}
