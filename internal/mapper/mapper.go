// Package mapper folds an extracted entity list into one canonical
// transaction record. OCR output is inherently noisy, so mapping never
// fails: every malformed or missing field degrades to nil rather than
// aborting the document.
package mapper

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/dvoronin/iaa/internal/docai"
	"github.com/dvoronin/iaa/internal/domain"
	"github.com/dvoronin/iaa/internal/logger"
)

// amountTypes are the entity types treated as a document total, in no
// particular priority: the first entity of any of these types wins.
var amountTypes = map[string]bool{
	"total_amount": true,
	"net_amount":   true,
	"tax_amount":   true,
	"amount":       true,
}

// FieldParseError reports that a single field failed numeric or date
// coercion. It is always recovered locally: the caller logs it and keeps the
// field nil.
type FieldParseError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("parse field %q from %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldParseError) Unwrap() error {
	return e.Err
}

// MapEntities builds the canonical transaction for one document. A fresh
// document ID is generated on every call.
func MapEntities(ctx context.Context, entities []docai.Entity, fullText, sourceURI, docType string) *domain.CanonicalTransaction {
	log := logger.FromContext(ctx)

	tx := &domain.CanonicalTransaction{
		DocumentID:         uuid.NewString(),
		OriginalFilePath:   sourceURI,
		DocumentType:       strings.ToLower(docType),
		TimestampProcessed: time.Now().UTC(),
	}

	if e := firstEntity(entities, func(e docai.Entity) bool { return amountTypes[e.Type] }); e != nil {
		amount, err := parseAmount(e.Type, e.MentionText)
		if err != nil {
			log.Warn().Err(err).Str("source_uri", sourceURI).Msg("Amount entity could not be parsed, keeping nil")
		} else {
			tx.TotalAmount = &amount
		}
	}

	if e := firstEntity(entities, func(e docai.Entity) bool { return e.Type == "date" }); e != nil {
		if d, err := parseDate(e); err != nil {
			log.Warn().Err(err).Str("source_uri", sourceURI).Msg("Date entity could not be parsed, keeping nil")
		} else {
			tx.TransactionDate = &d
		}
	}

	tx.VendorName = entityText(entities, "vendor_name")
	tx.InvoiceID = entityText(entities, "invoice_id")
	tx.Currency = entityText(entities, "currency")

	// A bare currency glyph with no extracted amount is not trusted.
	if tx.Currency == nil && tx.TotalAmount != nil {
		if c := currencyFromGlyphs(fullText); c != "" {
			tx.Currency = &c
		}
	}

	tx.Description = buildDescription(entities, tx)

	return tx
}

func firstEntity(entities []docai.Entity, match func(docai.Entity) bool) *docai.Entity {
	for i := range entities {
		if match(entities[i]) {
			return &entities[i]
		}
	}
	return nil
}

func entityText(entities []docai.Entity, entityType string) *string {
	e := firstEntity(entities, func(e docai.Entity) bool { return e.Type == entityType })
	if e == nil {
		return nil
	}
	s := strings.TrimSpace(e.MentionText)
	if s == "" {
		return nil
	}
	return &s
}

// parseAmount strips currency symbols and thousands commas before float
// parsing. Malformed currency text is expected from OCR, hence the explicit
// error result instead of a panic or a silent zero.
func parseAmount(field, text string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", "€", "", ",", "").Replace(text)
	cleaned = strings.TrimSpace(cleaned)
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &FieldParseError{Field: field, Value: text, Err: err}
	}
	return amount, nil
}

// parseDate prefers the provider-normalized date, then tries the two common
// textual layouts.
func parseDate(e *docai.Entity) (civil.Date, error) {
	if e.NormalizedDate != "" {
		if d, err := civil.ParseDate(e.NormalizedDate); err == nil {
			return d, nil
		}
	}
	mention := strings.TrimSpace(e.MentionText)
	for _, layout := range []string{"2006-01-02", "01/02/2006"} {
		if t, err := time.Parse(layout, mention); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, &FieldParseError{Field: "date", Value: e.MentionText, Err: fmt.Errorf("unrecognized date format")}
}

// currencyFromGlyphs infers a currency from symbols anywhere in the document
// text, in fixed priority order.
func currencyFromGlyphs(fullText string) string {
	switch {
	case strings.Contains(fullText, "$"):
		return "USD"
	case strings.Contains(fullText, "€"):
		return "EUR"
	case strings.Contains(fullText, "£"):
		return "GBP"
	}
	return ""
}

func buildDescription(entities []docai.Entity, tx *domain.CanonicalTransaction) string {
	if d := entityText(entities, "description"); d != nil {
		return *d
	}
	if tx.VendorName != nil {
		return *tx.VendorName
	}

	vendor := "Unknown Vendor"
	if tx.VendorName != nil {
		vendor = *tx.VendorName
	}
	desc := fmt.Sprintf("%s from %s", capitalize(tx.DocumentType), vendor)
	if tx.TotalAmount != nil {
		desc += fmt.Sprintf(" for %s", strconv.FormatFloat(*tx.TotalAmount, 'f', -1, 64))
	}
	return desc
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
