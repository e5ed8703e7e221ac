// Package docai wraps the document-understanding service. It exposes a
// provider-neutral Document model so that extraction code and tests never
// depend on the wire protos.
package docai

import "strings"

// Entity is a single named field extracted from a document.
type Entity struct {
	Type        string
	MentionText string

	// NormalizedDate holds the provider-normalized date in YYYY-MM-DD form
	// when the processor recognized the entity as a date. Empty otherwise.
	NormalizedDate string

	// Page is the entity's first page reference, 0 when the processor did
	// not anchor the entity to a page.
	Page int64
}

// TextSegment is a half-open [Start, End) byte range into Document.Text.
type TextSegment struct {
	Start int64
	End   int64
}

// TextAnchor locates a span of the full document text.
type TextAnchor struct {
	Segments []TextSegment
}

// FormField is a label/value pair located on a page via text anchors.
type FormField struct {
	FieldName  TextAnchor
	FieldValue TextAnchor
}

// TableRow is one row of a detected table.
type TableRow struct {
	Cells []TextAnchor
}

// Table is a detected table; the first header row carries the column labels.
type Table struct {
	HeaderRows []TableRow
	BodyRows   []TableRow
}

// Page holds the per-page structures of a processed document.
type Page struct {
	Number     int64
	FormFields []FormField
	Tables     []Table
}

// LineItem is a single purchased item on a receipt.
type LineItem struct {
	Description string
	Price       string
}

// Receipt is the specialized structured payload some receipt processors
// return. It is not page-indexed.
type Receipt struct {
	MerchantName        string
	MerchantAddress     string
	MerchantPhoneNumber string
	TransactionDate     string
	TotalAmount         string
	LineItems           []LineItem
}

// Document is the structured result of one processing call.
type Document struct {
	Text     string
	Entities []Entity
	Pages    []Page

	// Receipt is non-nil only when the processor returned the specialized
	// receipt payload.
	Receipt *Receipt
}

// AnchorText resolves a text anchor against the full document text.
// Out-of-range segments are skipped rather than panicking; offsets come from
// the remote service and are not trusted.
func (d *Document) AnchorText(a TextAnchor) string {
	var b strings.Builder
	for _, s := range a.Segments {
		if s.Start < 0 || s.End > int64(len(d.Text)) || s.Start > s.End {
			continue
		}
		b.WriteString(d.Text[s.Start:s.End])
	}
	return b.String()
}
