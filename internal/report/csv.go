// Package report writes local extraction artifacts: a per-document detail
// file and a rolling per-type summary list that links back to it.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dvoronin/iaa/internal/extract"
)

const detailsSubdir = "details"

// summaryFilenames maps each category to its rolling list file.
var summaryFilenames = map[extract.Category]string{
	extract.CategoryInvoice:         "Invoice-List.csv",
	extract.CategoryReceipt:         "Receipt-List.csv",
	extract.CategoryW2:              "W2-List.csv",
	extract.CategorySellerStatement: "Seller-Statement.csv",
}

// summaryFields lists, per category, which extracted fields are promoted
// into the summary row.
var summaryFields = map[extract.Category][]string{
	extract.CategoryInvoice:         {"invoice_number", "total_amount"},
	extract.CategoryReceipt:         {"merchant_name", "total_amount"},
	extract.CategoryW2:              {"WagesTipsOtherCompensation", "SocialSecurityTaxWithheld"},
	extract.CategorySellerStatement: {"Gross Amount Due to Seller", "Net to Seller"},
}

// Writer produces CSV artifacts under a fixed output directory.
type Writer struct {
	outputDir string

	// now is swapped in tests to pin filenames and timestamps.
	now func() time.Time
}

// NewWriter returns a Writer rooted at outputDir.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir, now: time.Now}
}

// WriteDetailCSV writes every extracted row of one document to
// <outputDir>/<category>/details/<ts>_<name>_<category>.csv and returns the
// path. A new timestamped file is written per run, nothing is overwritten.
func (w *Writer) WriteDetailCSV(rows []extract.Row, documentName string, category extract.Category) (string, error) {
	detailDir := filepath.Join(w.outputDir, category.String(), detailsSubdir)
	if err := os.MkdirAll(detailDir, 0o755); err != nil {
		return "", fmt.Errorf("WriteDetailCSV: create %q: %w", detailDir, err)
	}

	ts := w.now().UTC().Format("20060102150405")
	path := filepath.Join(detailDir, fmt.Sprintf("%s_%s_%s.csv", ts, documentName, category))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("WriteDetailCSV: create %q: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"field", "value", "page", "line_number"}); err != nil {
		return "", fmt.Errorf("WriteDetailCSV: write header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.Field, r.Value, strconv.FormatInt(r.Page, 10), r.LineNumber}
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("WriteDetailCSV: write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("WriteDetailCSV: flush: %w", err)
	}
	return path, nil
}

// AppendSummaryCSV appends one document's summary row to the category's
// rolling list file, creating it with a header on first use. The summary
// promotes the category's key fields and links to the detail file.
func (w *Writer) AppendSummaryCSV(detailPath, documentName string, category extract.Category, rows []extract.Row) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("AppendSummaryCSV: create %q: %w", w.outputDir, err)
	}
	summaryPath := filepath.Join(w.outputDir, summaryFilenames[category])

	writeHeader := false
	if _, err := os.Stat(summaryPath); os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(summaryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("AppendSummaryCSV: open %q: %w", summaryPath, err)
	}
	defer f.Close()

	fields := summaryFields[category]
	cw := csv.NewWriter(f)

	if writeHeader {
		header := append([]string{"filename", "insert_timestamp"}, fields...)
		header = append(header, "detail_link")
		if err := cw.Write(header); err != nil {
			return "", fmt.Errorf("AppendSummaryCSV: write header: %w", err)
		}
	}

	record := []string{documentName, w.now().UTC().Format(time.RFC3339)}
	for _, key := range fields {
		record = append(record, firstValue(rows, key))
	}
	absDetail, err := filepath.Abs(detailPath)
	if err != nil {
		absDetail = detailPath
	}
	record = append(record, "file://"+absDetail)

	if err := cw.Write(record); err != nil {
		return "", fmt.Errorf("AppendSummaryCSV: write row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("AppendSummaryCSV: flush: %w", err)
	}
	return summaryPath, nil
}

// firstValue returns the value of the first row whose field matches key, or
// "" when the document did not yield that field.
func firstValue(rows []extract.Row, key string) string {
	for _, r := range rows {
		if r.Field == key {
			return r.Value
		}
	}
	return ""
}
