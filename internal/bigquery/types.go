// Package bigquery persists canonical transactions to the analytics
// warehouse. The row layout mirrors the transactions table schema; amounts
// travel as NUMERIC to keep cents exact once they leave the process.
package bigquery

import (
	"math/big"
	"strconv"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/dvoronin/iaa/internal/domain"
)

// TransactionRow represents a canonical transaction record in BigQuery.
type TransactionRow struct {
	DocumentID       string `bigquery:"document_id"`        // REQUIRED
	OriginalFilePath string `bigquery:"original_file_path"` // REQUIRED
	DocumentType     string `bigquery:"document_type"`      // REQUIRED

	VendorName  bigquery.NullString `bigquery:"vendor_name"`  // NULLABLE
	TotalAmount *big.Rat            `bigquery:"total_amount"` // NULLABLE NUMERIC
	Currency    bigquery.NullString `bigquery:"currency"`     // NULLABLE

	TransactionDate bigquery.NullDate `bigquery:"transaction_date"` // NULLABLE

	InvoiceID   bigquery.NullString `bigquery:"invoice_id"` // NULLABLE
	Description string              `bigquery:"description"`

	CategorizationAISuggested   bigquery.NullString `bigquery:"categorization_ai_suggested"`
	CategorizationUserConfirmed bigquery.NullString `bigquery:"categorization_user_confirmed"`

	IsAnomaly    bool                 `bigquery:"is_anomaly"`
	AnomalyScore bigquery.NullFloat64 `bigquery:"anomaly_score"`

	TimestampProcessed time.Time `bigquery:"timestamp_processed"` // REQUIRED
}

// RowFromCanonical converts an in-memory canonical transaction into its
// warehouse row. Absent optional fields become NULL columns.
func RowFromCanonical(tx *domain.CanonicalTransaction) *TransactionRow {
	row := &TransactionRow{
		DocumentID:         tx.DocumentID,
		OriginalFilePath:   tx.OriginalFilePath,
		DocumentType:       tx.DocumentType,
		Description:        tx.Description,
		IsAnomaly:          tx.IsAnomaly,
		TimestampProcessed: tx.TimestampProcessed,
	}

	row.VendorName = nullString(tx.VendorName)
	row.Currency = nullString(tx.Currency)
	row.InvoiceID = nullString(tx.InvoiceID)
	row.CategorizationAISuggested = nullString(tx.CategorizationAISuggested)
	row.CategorizationUserConfirmed = nullString(tx.CategorizationUserConfirmed)

	if tx.TotalAmount != nil {
		row.TotalAmount = ratFromFloat(*tx.TotalAmount)
	}
	if tx.TransactionDate != nil {
		row.TransactionDate = bigquery.NullDate{Date: *tx.TransactionDate, Valid: true}
	}
	if tx.AnomalyScore != nil {
		row.AnomalyScore = bigquery.NullFloat64{Float64: *tx.AnomalyScore, Valid: true}
	}

	return row
}

func nullString(s *string) bigquery.NullString {
	if s == nil {
		return bigquery.NullString{}
	}
	return bigquery.NullString{StringVal: *s, Valid: true}
}

// ratFromFloat converts through the shortest decimal representation so
// 10.10 becomes exactly 101/10 rather than the float's binary neighbour.
func ratFromFloat(f float64) *big.Rat {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'f', -1, 64))
	if !ok {
		return new(big.Rat).SetFloat64(f)
	}
	return r
}
