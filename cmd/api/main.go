package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dvoronin/iaa/internal/api/handlers"
	"github.com/dvoronin/iaa/internal/api/middleware"
	"github.com/dvoronin/iaa/internal/config"
	"github.com/dvoronin/iaa/internal/docai"
	"github.com/dvoronin/iaa/internal/gcs"
	"github.com/dvoronin/iaa/internal/jobs"
	"github.com/dvoronin/iaa/internal/jobs/inmemory"
	"github.com/dvoronin/iaa/internal/logger"
	"github.com/dvoronin/iaa/internal/pipeline"
	"github.com/dvoronin/iaa/internal/report"
)

func main() {
	var (
		port       = flag.String("port", "8080", "HTTP server port")
		stagingDir = flag.String("staging-dir", os.TempDir(), "Directory for staged uploads")
		workers    = flag.Int("workers", 2, "Concurrent processing workers")
	)
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration failed")
	}

	ctx := context.Background()

	processor, err := docai.NewClient(ctx, cfg.Location)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create document-understanding client")
	}
	defer processor.Close()

	controller := pipeline.NewController(cfg, gcs.NewClient(cfg.RawBucket), processor)
	writer := report.NewWriter(cfg.OutputDir)

	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, *workers, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job jobs.Job) error {
		processJob, ok := job.(*jobs.ProcessDocumentJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		ctx = logger.WithContext(ctx, log)
		log.Info().
			Str("job_id", processJob.JobID).
			Str("doc_type", processJob.DocType).
			Msg("Processing document job")

		res, err := controller.Process(ctx, processJob.LocalPath, processJob.DocType)
		if err != nil {
			log.Error().Err(err).Str("job_id", processJob.JobID).Msg("Pipeline execution failed")
			return err
		}

		detailPath, err := writer.WriteDetailCSV(res.Rows, res.DocumentName, res.Category)
		if err != nil {
			return err
		}
		if _, err := writer.AppendSummaryCSV(detailPath, res.DocumentName, res.Category, res.Rows); err != nil {
			return err
		}

		processJob.SourceURI = res.SourceURI
		processJob.RowCount = len(res.Rows)
		processJob.DetailPath = detailPath

		// The staged copy is no longer needed once the raw file is retained
		// remotely and the reports are on disk.
		if err := os.Remove(processJob.LocalPath); err != nil {
			log.Warn().Err(err).Str("path", processJob.LocalPath).Msg("Failed to remove staged upload")
		}

		log.Info().
			Str("job_id", processJob.JobID).
			Int("rows", len(res.Rows)).
			Msg("Document job completed")
		return nil
	}

	go func() {
		log.Info().Int("workers", *workers).Msg("Starting job workers")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Job workers stopped with error")
		}
	}()

	documentsHandler := handlers.NewDocumentsHandler(jobQueue, *stagingDir, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/documents/process", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			documentsHandler.ProcessDocument(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}
