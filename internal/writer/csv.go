package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/phantom-ledger/internal/models"
)

// CSVWriter renders normalized ledger rows to CSV.
type CSVWriter struct{}

// WriteToFile writes rows to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, rows []models.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, rows)
}

// Write writes rows in CSV format to the given writer. Column order matches
// the export contract: date, cleaned name, signed amount, original memo,
// source file.
func (w *CSVWriter) Write(out io.Writer, rows []models.Row) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"Date", "Name", "Amount", "Original Description", "Source File"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Date,
			row.Clean,
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
			row.Original,
			row.SourceFile,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}
