// Package extractor pulls positioned text fragments out of PDF statements.
// Downstream stages work purely on the fragment geometry, so this package
// is the only place that touches the PDF library.
package extractor

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/insightdelivered/phantom-ledger/internal/models"
)

// ExtractFile reads a PDF from disk and returns one fragment slice per page.
func ExtractFile(filePath string) ([][]models.Fragment, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, models.NewParseError(models.ErrOpenFailed, err.Error())
	}
	return Extract(data)
}

// Extract parses an in-memory PDF and returns one fragment slice per page.
// Failures come back as *models.ParseError so callers can classify them.
func Extract(data []byte) ([][]models.Fragment, error) {
	if len(data) == 0 {
		return nil, models.NewParseError(models.ErrEmptyFile, "uploaded file is empty")
	}

	pages, err := extractWithLibrary(data)
	if err != nil {
		if isPasswordError(err) {
			return nil, models.NewParseError(models.ErrPasswordProtected, "PDF is password protected")
		}
		return nil, models.NewParseError(models.ErrOpenFailed, err.Error())
	}
	return pages, nil
}

// extractWithLibrary walks every page's content stream. The library panics
// on some malformed files, so the whole walk runs under a recover guard.
func extractWithLibrary(data []byte) (pages [][]models.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	pages = make([][]models.Fragment, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		content := page.Content()
		fragments := make([]models.Fragment, 0, len(content.Text))
		for _, t := range content.Text {
			if t.S == "" {
				continue
			}
			fragments = append(fragments, models.Fragment{
				Text:  t.S,
				X:     t.X,
				Y:     t.Y,
				Width: t.W,
			})
		}
		pages = append(pages, fragments)
	}
	return pages, nil
}

func isPasswordError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "password") || strings.Contains(msg, "encrypt")
}
