package extract

import (
	"github.com/dvoronin/iaa/internal/docai"
)

// receiptExtractor reads the specialized receipt payload when the processor
// returned one. The payload is not page-indexed, so every row carries page 0.
type receiptExtractor struct{}

func (receiptExtractor) Extract(doc *docai.Document, documentName string) []Row {
	if doc.Receipt == nil {
		return nil
	}
	rec := doc.Receipt
	docType := CategoryReceipt.String()

	var rows []Row
	attrs := []struct {
		field string
		value string
	}{
		{"merchant_name", rec.MerchantName},
		{"merchant_address", rec.MerchantAddress},
		{"merchant_phone_number", rec.MerchantPhoneNumber},
		{"transaction_date", rec.TransactionDate},
		{"total_amount", rec.TotalAmount},
	}
	for _, a := range attrs {
		if a.value == "" {
			continue
		}
		rows = append(rows, Row{
			DocumentName: documentName,
			DocType:      docType,
			Field:        a.field,
			Value:        Clean(a.value),
		})
	}

	for _, li := range rec.LineItems {
		rows = append(rows, Row{
			DocumentName: documentName,
			DocType:      docType,
			Field:        "line_item",
			Value:        Clean(li.Description + ": " + li.Price),
		})
	}

	return rows
}
