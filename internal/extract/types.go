// Package extract turns document-understanding results into flat field rows.
package extract

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedDocumentType is returned for document types outside the
// closed category set. It is surfaced before any remote collaborator is
// called and is never retried.
var ErrUnsupportedDocumentType = errors.New("unsupported document type")

// Category is the closed set of supported document categories.
type Category int

const (
	CategoryInvoice Category = iota
	CategoryReceipt
	CategoryW2
	CategorySellerStatement
)

// String returns the wire/tag form of the category.
func (c Category) String() string {
	switch c {
	case CategoryInvoice:
		return "invoice"
	case CategoryReceipt:
		return "receipt"
	case CategoryW2:
		return "w2"
	case CategorySellerStatement:
		return "seller-statement"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory parses a caller-supplied document type tag. The tag is
// case-insensitive and the known upstream alias "sellers-statement" is
// accepted for "seller-statement".
func ParseCategory(docType string) (Category, error) {
	tag := strings.ToLower(strings.TrimSpace(docType))
	if tag == "sellers-statement" {
		tag = "seller-statement"
	}
	switch tag {
	case "invoice":
		return CategoryInvoice, nil
	case "receipt":
		return CategoryReceipt, nil
	case "w2":
		return CategoryW2, nil
	case "seller-statement":
		return CategorySellerStatement, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedDocumentType, docType)
}

// Row is one extracted field. Value always holds the cleaned representation,
// never raw OCR text. LineNumber is empty unless the source format encodes a
// numbered line (seller statements).
type Row struct {
	DocumentName string `json:"document_name"`
	DocType      string `json:"doc_type"`
	Field        string `json:"field"`
	Value        string `json:"value"`
	Page         int64  `json:"page"`
	LineNumber   string `json:"line_number"`
}
