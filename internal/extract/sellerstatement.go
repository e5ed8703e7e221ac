package extract

import (
	"regexp"
	"strings"

	"github.com/dvoronin/iaa/internal/docai"
)

// Seller statements number their form lines "3. Gross Amount Due to Seller".
var numberedLineRE = regexp.MustCompile(`^(\d+)\.\s*(.*)$`)

// sellerStatementExtractor walks every page's form fields and tables.
type sellerStatementExtractor struct{}

func (sellerStatementExtractor) Extract(doc *docai.Document, documentName string) []Row {
	var rows []Row
	docType := CategorySellerStatement.String()

	for _, page := range doc.Pages {
		for _, ff := range page.FormFields {
			rawName := strings.TrimSpace(doc.AnchorText(ff.FieldName))
			lineNumber, field := "", rawName
			if m := numberedLineRE.FindStringSubmatch(rawName); m != nil {
				lineNumber, field = m[1], m[2]
			}
			rawValue := strings.TrimSpace(doc.AnchorText(ff.FieldValue))
			rows = append(rows, Row{
				DocumentName: documentName,
				DocType:      docType,
				Field:        field,
				Value:        Clean(rawValue),
				Page:         page.Number,
				LineNumber:   lineNumber,
			})
		}

		for _, table := range page.Tables {
			if len(table.HeaderRows) == 0 {
				continue
			}
			headers := make([]string, 0, len(table.HeaderRows[0].Cells))
			for _, cell := range table.HeaderRows[0].Cells {
				headers = append(headers, strings.TrimSpace(doc.AnchorText(cell)))
			}
			for _, body := range table.BodyRows {
				// Zip against the header labels; a ragged row contributes
				// only as many pairs as it has cells.
				n := len(headers)
				if len(body.Cells) < n {
					n = len(body.Cells)
				}
				for i := 0; i < n; i++ {
					rows = append(rows, Row{
						DocumentName: documentName,
						DocType:      docType,
						Field:        headers[i],
						Value:        Clean(strings.TrimSpace(doc.AnchorText(body.Cells[i]))),
						Page:         page.Number,
					})
				}
			}
		}
	}

	return rows
}
