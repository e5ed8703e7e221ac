package bigquery

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/dvoronin/iaa/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestRowFromCanonical(t *testing.T) {
	amount := 1234.56
	date := civil.Date{Year: 2024, Month: 3, Day: 15}
	processed := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tx := &domain.CanonicalTransaction{
		DocumentID:         "doc-1",
		OriginalFilePath:   "gs://bucket/raw_documents/invoice/x.pdf",
		DocumentType:       "invoice",
		VendorName:         strPtr("Acme Corp"),
		TotalAmount:        &amount,
		Currency:           strPtr("USD"),
		TransactionDate:    &date,
		InvoiceID:          strPtr("INV-42"),
		Description:        "Invoice from Acme Corp",
		IsAnomaly:          false,
		TimestampProcessed: processed,
	}

	row := RowFromCanonical(tx)

	if row.DocumentID != "doc-1" || row.DocumentType != "invoice" {
		t.Errorf("identity fields = %q/%q", row.DocumentID, row.DocumentType)
	}
	if !row.VendorName.Valid || row.VendorName.StringVal != "Acme Corp" {
		t.Errorf("VendorName = %+v", row.VendorName)
	}
	if row.TotalAmount == nil || row.TotalAmount.FloatString(2) != "1234.56" {
		t.Errorf("TotalAmount = %v", row.TotalAmount)
	}
	if !row.TransactionDate.Valid || row.TransactionDate.Date != date {
		t.Errorf("TransactionDate = %+v", row.TransactionDate)
	}
	if row.AnomalyScore.Valid {
		t.Error("AnomalyScore should be NULL when unset")
	}
	if !row.TimestampProcessed.Equal(processed) {
		t.Errorf("TimestampProcessed = %v", row.TimestampProcessed)
	}
}

func TestRowFromCanonical_AbsentOptionals(t *testing.T) {
	tx := &domain.CanonicalTransaction{
		DocumentID:       "doc-2",
		OriginalFilePath: "gs://bucket/raw_documents/w2/y.pdf",
		DocumentType:     "w2",
		Description:      "W2 from Unknown Vendor",
	}

	row := RowFromCanonical(tx)

	if row.VendorName.Valid || row.Currency.Valid || row.InvoiceID.Valid {
		t.Error("absent string fields must map to NULL")
	}
	if row.TotalAmount != nil {
		t.Errorf("TotalAmount = %v, want nil", row.TotalAmount)
	}
	if row.TransactionDate.Valid {
		t.Error("absent date must map to NULL")
	}
}

func TestRatFromFloat_Exact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10.10, "10.10"},
		{0.1, "0.10"},
		{-99.99, "-99.99"},
		{1000, "1000.00"},
	}
	for _, tt := range tests {
		if got := ratFromFloat(tt.in).FloatString(2); got != tt.want {
			t.Errorf("ratFromFloat(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
