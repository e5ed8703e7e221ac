package extract

import (
	"fmt"

	"github.com/dvoronin/iaa/internal/docai"
)

// Extractor converts one processed document into flat field rows. Rows are
// emitted in extraction order; zero rows is a valid result, the caller
// decides whether that is a failure.
type Extractor interface {
	Extract(doc *docai.Document, documentName string) []Row
}

// ForCategory returns the extraction strategy for a category. Every member
// of the closed Category set has a strategy; anything else is a hard error.
func ForCategory(c Category) (Extractor, error) {
	switch c {
	case CategoryInvoice, CategoryW2:
		return genericExtractor{category: c}, nil
	case CategorySellerStatement:
		return sellerStatementExtractor{}, nil
	case CategoryReceipt:
		return receiptExtractor{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedDocumentType, c)
}
