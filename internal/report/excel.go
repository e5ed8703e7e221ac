package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/dvoronin/iaa/internal/extract"
)

// WriteDetailXLSX writes the extracted rows of one document as an XLSX
// workbook next to the CSV artifacts, for users who review extractions in a
// spreadsheet. Returns the workbook path.
func (w *Writer) WriteDetailXLSX(rows []extract.Row, documentName string, category extract.Category) (string, error) {
	detailDir := filepath.Join(w.outputDir, category.String(), detailsSubdir)
	if err := os.MkdirAll(detailDir, 0o755); err != nil {
		return "", fmt.Errorf("WriteDetailXLSX: create %q: %w", detailDir, err)
	}

	ts := w.now().UTC().Format("20060102150405")
	path := filepath.Join(detailDir, fmt.Sprintf("%s_%s_%s.xlsx", ts, documentName, category))

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Extraction"
	if _, err := f.NewSheet(sheet); err != nil {
		return "", fmt.Errorf("WriteDetailXLSX: create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("WriteDetailXLSX: drop default sheet: %w", err)
	}

	headers := []string{"Field", "Value", "Page", "Line Number"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return "", fmt.Errorf("WriteDetailXLSX: write header: %w", err)
		}
	}

	for i, r := range rows {
		rowNum := i + 2
		write := func(col int, v any) error {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			return f.SetCellValue(sheet, cell, v)
		}
		if err := write(1, r.Field); err != nil {
			return "", fmt.Errorf("WriteDetailXLSX: write row: %w", err)
		}
		_ = write(2, r.Value)
		_ = write(3, r.Page)
		_ = write(4, r.LineNumber)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("WriteDetailXLSX: save %q: %w", path, err)
	}
	return path, nil
}
