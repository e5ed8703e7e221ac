package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// CanonicalTransaction is the normalized, storage-ready representation of one
// processed document. It is created once by the entity mapper; the
// categorization and anomaly fields may be filled in later by downstream
// services, but the identity and core fields never change.
type CanonicalTransaction struct {
	DocumentID       string // freshly generated UUID, never reused
	OriginalFilePath string // gs:// URI of the uploaded source file
	DocumentType     string

	VendorName      *string
	TotalAmount     *float64 // nil when the amount could not be parsed
	Currency        *string
	TransactionDate *civil.Date
	InvoiceID       *string
	Description     string

	CategorizationAISuggested   *string
	CategorizationUserConfirmed *string

	IsAnomaly    bool
	AnomalyScore *float64

	TimestampProcessed time.Time
}
