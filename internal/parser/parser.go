// Package parser turns reconstructed statement lines into normalized
// transactions: it anchors partial dates, resolves column semantics from
// header lines, scans pages with a capture state machine, and derives
// per-file metadata.
package parser

import (
	"fmt"

	"github.com/insightdelivered/phantom-ledger/internal/layout"
	"github.com/insightdelivered/phantom-ledger/internal/models"
)

// Minimum extractable characters across all pages before a file is treated
// as image-based and rejected.
const minTextCharacters = 40

// ParseDocument runs the full per-file pipeline over a file's page
// fragments: line reconstruction, date anchoring, account label
// carry-forward, per-page scanning, and metadata collection.
//
// A file whose pages hold fewer than minTextCharacters of text fails with
// an ImageBased error; pages that individually yield no transactions only
// produce warnings.
func ParseDocument(fileName string, pages [][]models.Fragment) (*models.FileResult, error) {
	var pageLines [][]models.Line
	totalTextCharacters := 0

	for pageNumber, fragments := range pages {
		lines := layout.ReconstructLines(pageNumber+1, fragments)
		if len(lines) == 0 {
			continue
		}
		for _, line := range lines {
			totalTextCharacters += len(line.Text)
		}
		pageLines = append(pageLines, lines)
	}

	flattened := flattenPages(pageLines)
	dateContext := InferDateContext(flattened)

	result := &models.FileResult{FileName: fileName}
	currentAccount := ""

	for _, lines := range pageLines {
		for i := range lines {
			if label := detectAccountLabel(lines[i].Text); label != "" {
				currentAccount = label
			}
			lines[i].Account = currentAccount
		}

		pageNumber := lines[0].Page
		rows := ParsePage(lines, &dateContext)
		if len(rows) == 0 && len(lines) > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Page %d: no transactions recognized.", pageNumber))
		}
		for i := range rows {
			rows[i].SourceFile = fileName
		}
		result.Transactions = append(result.Transactions, rows...)
	}

	if totalTextCharacters < minTextCharacters {
		return nil, models.NewParseError(models.ErrImageBased,
			"No extractable text found. The PDF appears image-based and requires OCR.")
	}

	if len(result.Transactions) == 0 {
		result.Warnings = append(result.Warnings, "No transactions were detected in this statement.")
	}

	result.Metadata = CollectDocumentMetadata(flattenPages(pageLines), result.Transactions)
	return result, nil
}

func flattenPages(pages [][]models.Line) []models.Line {
	var out []models.Line
	for _, lines := range pages {
		out = append(out, lines...)
	}
	return out
}
