package extract

import (
	"github.com/dvoronin/iaa/internal/docai"
)

// genericExtractor emits one row per returned entity. Used for invoices and
// W-2 forms, where the processor's entity list is the whole story.
type genericExtractor struct {
	category Category
}

func (g genericExtractor) Extract(doc *docai.Document, documentName string) []Row {
	rows := make([]Row, 0, len(doc.Entities))
	for _, e := range doc.Entities {
		rows = append(rows, Row{
			DocumentName: documentName,
			DocType:      g.category.String(),
			Field:        e.Type,
			Value:        Clean(e.MentionText),
			Page:         e.Page,
		})
	}
	return rows
}
