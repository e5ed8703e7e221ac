// Package pipeline drives one document through upload, remote extraction and
// row assembly. Each call is a single sequential operation; concurrent calls
// share nothing but the stateless collaborators.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dvoronin/iaa/internal/config"
	"github.com/dvoronin/iaa/internal/docai"
	"github.com/dvoronin/iaa/internal/extract"
	"github.com/dvoronin/iaa/internal/gcs"
	"github.com/dvoronin/iaa/internal/logger"
)

// rawPrefix is the object-key prefix for retained source documents.
const rawPrefix = "raw_documents"

// Result is the output of processing one document.
type Result struct {
	Category     extract.Category
	DocumentName string

	// SourceURI is where the raw file was retained.
	SourceURI string

	Rows []extract.Row

	// Document is the structured extraction response, kept so callers can
	// fold the entity list into a canonical transaction.
	Document *docai.Document
}

// Controller runs the extraction pipeline. Construct it once with a
// validated config; it holds no per-document state.
type Controller struct {
	cfg       *config.Config
	storage   gcs.Storage
	processor docai.Processor

	// now is swapped in tests to pin upload keys.
	now func() time.Time
}

// NewController wires the pipeline's collaborators.
func NewController(cfg *config.Config, storage gcs.Storage, processor docai.Processor) *Controller {
	return &Controller{
		cfg:       cfg,
		storage:   storage,
		processor: processor,
		now:       time.Now,
	}
}

// Process runs one document through the pipeline: resolve the category and
// its processor, retain the raw file, call the document-understanding
// service, and route the response to the category's extractor.
//
// The doc-type is validated before any collaborator is touched; an unknown
// or unconfigured type returns extract.ErrUnsupportedDocumentType without a
// single remote call.
func (c *Controller) Process(ctx context.Context, localPath, docType string) (*Result, error) {
	log := logger.FromContext(ctx)

	category, err := extract.ParseCategory(docType)
	if err != nil {
		return nil, err
	}
	processorName := c.cfg.ProcessorName(category)
	if processorName == "" {
		return nil, fmt.Errorf("%w: no processor configured for %q", extract.ErrUnsupportedDocumentType, category)
	}
	extractor, err := extract.ForCategory(category)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("%s/%s/%s_%s",
		rawPrefix, category, c.now().UTC().Format("20060102150405"), filepath.Base(localPath))
	sourceURI, err := c.storage.Put(ctx, localPath, objectName)
	if err != nil {
		return nil, &StorageError{Op: "upload", Err: err}
	}
	log.Info().Str("source_uri", sourceURI).Msg("Uploaded source document")

	content, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("Process: read %q: %w", localPath, err)
	}

	doc, err := c.processor.ProcessDocument(ctx, processorName, content, mimeTypeFor(localPath))
	if err != nil {
		return nil, &ExtractionServiceError{Processor: processorName, Err: err}
	}
	log.Info().Str("category", category.String()).Int("entities", len(doc.Entities)).Msg("Document processed")

	documentName := strings.TrimSuffix(filepath.Base(localPath), filepath.Ext(localPath))

	return &Result{
		Category:     category,
		DocumentName: documentName,
		SourceURI:    sourceURI,
		Rows:         extractor.Extract(doc, documentName),
		Document:     doc,
	}, nil
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/pdf"
	}
}
