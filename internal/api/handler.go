// Package api exposes the statement pipeline over HTTP.
package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/phantom-ledger/internal/account"
	"github.com/insightdelivered/phantom-ledger/internal/cleaner"
	"github.com/insightdelivered/phantom-ledger/internal/extractor"
	"github.com/insightdelivered/phantom-ledger/internal/models"
	"github.com/insightdelivered/phantom-ledger/internal/parser"
	"github.com/insightdelivered/phantom-ledger/internal/writer"
)

const (
	// MaxFiles caps how many PDFs one request may carry.
	MaxFiles = 60
	// DefaultMaxFileMB is the per-file size ceiling when MAX_FILE_MB is unset.
	DefaultMaxFileMB = 25

	previewRows    = 30
	headerByteCap  = 7000
	parallelism    = 4
	exportFileName = "PhantomLedgerExport.csv"
)

var pdfNamePattern = regexp.MustCompile(`(?i)\.pdf$`)

// Handler serves the batch processing endpoints.
type Handler struct {
	log       zerolog.Logger
	clean     cleaner.Cleaner
	maxFileMB int
}

// NewHandler wires the pipeline behind the HTTP surface.
func NewHandler(log zerolog.Logger, clean cleaner.Cleaner, maxFileMB int) *Handler {
	if maxFileMB <= 0 {
		maxFileMB = DefaultMaxFileMB
	}
	if clean == nil {
		clean = cleaner.NewRuleCleaner()
	}
	return &Handler{log: log, clean: clean, maxFileMB: maxFileMB}
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

type errorResponse struct {
	Error    string         `json:"error"`
	Summary  models.Summary `json:"summary"`
	Warnings []string       `json:"warnings"`
}

type fileOutcome struct {
	fileName string
	result   *models.FileResult
	err      error
}

// HandleProcess accepts a multipart batch of PDFs under field "pdfs" and
// responds with a CSV attachment plus base64-encoded summary headers.
// Per-file parse failures are suppressed into the summary's failedFiles.
func (h *Handler) HandleProcess(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, `Upload at least one PDF file using field name "pdfs".`, 0)
	}

	var files []*multipart.FileHeader
	for _, f := range form.File["pdfs"] {
		if pdfNamePattern.MatchString(f.Filename) {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return badRequest(c, `Upload at least one PDF file using field name "pdfs".`, 0)
	}
	if len(files) > MaxFiles {
		return badRequest(c, fmt.Sprintf("Too many files: limit is %d per request.", MaxFiles), len(files))
	}
	sizeLimit := int64(h.maxFileMB) << 20
	for _, f := range files {
		if f.Size > sizeLimit {
			return badRequest(c, fmt.Sprintf("A file exceeds the %dMB upload limit.", h.maxFileMB), len(files))
		}
	}

	outcomes := h.parseAll(files)

	var parsed []*models.FileResult
	var rows []models.Row
	processed := 0
	failed := 0
	for _, out := range outcomes {
		if out.err != nil {
			failed++
			h.log.Warn().Str("file", out.fileName).Err(out.err).Msg("suppressed parser file error")
			continue
		}
		processed++
		parsed = append(parsed, out.result)
		if len(out.result.Warnings) > 0 {
			h.log.Info().Str("file", out.fileName).
				Str("warnings", strings.Join(out.result.Warnings, " | ")).
				Msg("suppressed parser warnings")
		}
		for _, tx := range out.result.Transactions {
			rows = append(rows, models.Row{
				Date:       tx.Date,
				Amount:     tx.Amount,
				Original:   tx.Description,
				DateValue:  tx.DateValue,
				SourceFile: tx.SourceFile,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].DateValue < rows[j].DateValue })
	rows = finalizeRows(rows, h.clean)

	warnings := account.FindMismatchWarnings(parsed)
	if warnings == nil {
		warnings = []string{}
	}
	summary := buildSummary(len(files), processed, failed, rows)

	if len(rows) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(errorResponse{
			Error:    "No transactions were extracted from the uploaded PDFs.",
			Summary:  summary,
			Warnings: warnings,
		})
	}

	var buf bytes.Buffer
	var csvWriter writer.CSVWriter
	if err := csvWriter.Write(&buf, rows); err != nil {
		h.log.Error().Err(err).Msg("csv export failed")
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
			Error:    "Unexpected server error.",
			Summary:  summary,
			Warnings: warnings,
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exportFileName))
	setEncodedHeader(c, "X-Ledger-Summary", summary)
	setEncodedHeader(c, "X-Ledger-Warnings", warnings)
	setEncodedHeader(c, "X-Ledger-Preview", buildPreview(rows, previewRows))

	return c.Send(buf.Bytes())
}

// parseAll runs extraction and parsing for every file with a bounded worker
// pool, preserving input order in the result slice.
func (h *Handler) parseAll(files []*multipart.FileHeader) []fileOutcome {
	outcomes := make([]fileOutcome, len(files))
	sem := make(chan struct{}, parallelism)
	var wg sync.WaitGroup

	for i, f := range files {
		wg.Add(1)
		go func(i int, f *multipart.FileHeader) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[i] = h.parseOne(f)
		}(i, f)
	}
	wg.Wait()
	return outcomes
}

func (h *Handler) parseOne(f *multipart.FileHeader) fileOutcome {
	out := fileOutcome{fileName: f.Filename}

	src, err := f.Open()
	if err != nil {
		out.err = err
		return out
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		out.err = err
		return out
	}

	pages, err := extractor.Extract(data)
	if err != nil {
		out.err = err
		return out
	}

	result, err := parser.ParseDocument(f.Filename, pages)
	if err != nil {
		out.err = err
		return out
	}
	out.result = result
	return out
}

// finalizeRows drops incomplete rows and fills the cleaned description via
// one batch pass over the remaining memos.
func finalizeRows(rows []models.Row, clean cleaner.Cleaner) []models.Row {
	kept := rows[:0]
	for _, row := range rows {
		if row.Date == "" || strings.TrimSpace(row.Original) == "" {
			continue
		}
		if math.IsNaN(row.Amount) || math.IsInf(row.Amount, 0) {
			continue
		}
		row.Original = strings.TrimSpace(row.Original)
		kept = append(kept, row)
	}

	if len(kept) == 0 {
		return kept
	}
	memos := make([]string, len(kept))
	for i, row := range kept {
		memos[i] = row.Original
	}
	cleaned := clean.CleanBatch(memos)
	for i := range kept {
		kept[i].Clean = cleaned[i]
	}
	return kept
}

func buildSummary(totalFiles, processed, failed int, rows []models.Row) models.Summary {
	s := models.Summary{
		TotalFiles:        totalFiles,
		ProcessedFiles:    processed,
		FailedFiles:       failed,
		TotalTransactions: len(rows),
	}
	if len(rows) > 0 {
		s.DateRange = &models.DateRange{
			Start: rows[0].Date,
			End:   rows[len(rows)-1].Date,
		}
	}
	for _, row := range rows {
		s.Net += row.Amount
		switch {
		case row.Amount > 0:
			s.TotalCredits += row.Amount
			s.CreditCount++
		case row.Amount < 0:
			s.TotalDebits += row.Amount
			s.DebitCount++
		}
	}
	return s
}

func buildPreview(rows []models.Row, limit int) []models.PreviewRow {
	if limit <= 0 {
		limit = previewRows
	}
	if len(rows) < limit {
		limit = len(rows)
	}
	preview := make([]models.PreviewRow, limit)
	for i := 0; i < limit; i++ {
		preview[i] = models.PreviewRow{
			Date:        rows[i].Date,
			Amount:      rows[i].Amount,
			Description: rows[i].Original,
			SourceFile:  rows[i].SourceFile,
		}
	}
	return preview
}

// setEncodedHeader carries a JSON payload in a response header as base64.
// Oversized payloads degrade to an encoded empty list so the header never
// breaks proxies.
func setEncodedHeader(c *fiber.Ctx, key string, value interface{}) {
	encoded := encodeHeader(value)
	if len(encoded) <= headerByteCap {
		c.Set(key, encoded)
		return
	}
	c.Set(key, encodeHeader([]string{}))
}

func encodeHeader(value interface{}) string {
	data, err := json.Marshal(value)
	if err != nil {
		data = []byte("null")
	}
	return base64.StdEncoding.EncodeToString(data)
}

func badRequest(c *fiber.Ctx, message string, totalFiles int) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
		Error:    message,
		Summary:  models.Summary{TotalFiles: totalFiles},
		Warnings: []string{},
	})
}
