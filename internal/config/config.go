// Package config holds the explicit runtime configuration. Settings are read
// from the environment once at startup and validated eagerly, so a missing or
// placeholder value fails the process before any document is touched.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/dvoronin/iaa/internal/extract"
)

// Config carries everything the pipeline needs. It is passed explicitly into
// constructors; nothing reads the environment after Load returns.
type Config struct {
	ProjectID string
	Location  string

	RawBucket string

	Dataset           string
	TransactionsTable string

	OutputDir string

	// ProcessorIDs maps each supported category to its document-understanding
	// processor ID.
	ProcessorIDs map[extract.Category]string
}

var processorEnvVars = map[extract.Category]string{
	extract.CategoryInvoice:         "DOCUMENT_AI_INVOICE_PROCESSOR_ID",
	extract.CategoryReceipt:         "DOCUMENT_AI_RECEIPT_PROCESSOR_ID",
	extract.CategoryW2:              "DOCUMENT_AI_W2_PROCESSOR_ID",
	extract.CategorySellerStatement: "DOCUMENT_AI_SELLER_STATEMENT_PROCESSOR_ID",
}

// Load reads configuration from the environment, honoring a .env file in the
// working directory when present.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		ProjectID:         os.Getenv("GCP_PROJECT_ID"),
		Location:          getenvDefault("GCP_REGION", "us"),
		RawBucket:         os.Getenv("GCS_RAW_DOCUMENTS_BUCKET"),
		Dataset:           getenvDefault("BQ_DATASET_ID", "accounting_data"),
		TransactionsTable: getenvDefault("BQ_TRANSACTIONS_TABLE", "transactions"),
		OutputDir:         getenvDefault("OUTPUT_DIR", "data/output"),
		ProcessorIDs:      make(map[extract.Category]string, len(processorEnvVars)),
	}

	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("config.Load: GCP_PROJECT_ID is not set")
	}
	if cfg.RawBucket == "" {
		return nil, fmt.Errorf("config.Load: GCS_RAW_DOCUMENTS_BUCKET is not set")
	}

	for cat, envVar := range processorEnvVars {
		id := os.Getenv(envVar)
		if id == "" || strings.HasPrefix(id, "your-") {
			return nil, fmt.Errorf("config.Load: processor ID for %q is not set or is a placeholder (%s)", cat, envVar)
		}
		cfg.ProcessorIDs[cat] = id
	}

	return cfg, nil
}

// ProcessorName returns the full resource name of the processor configured
// for a category, or "" when the category is unconfigured.
func (c *Config) ProcessorName(cat extract.Category) string {
	id, ok := c.ProcessorIDs[cat]
	if !ok || id == "" {
		return ""
	}
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.ProjectID, c.Location, id)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
