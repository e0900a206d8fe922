package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"math"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/phantom-ledger/internal/cleaner"
	"github.com/insightdelivered/phantom-ledger/internal/models"
)

func newTestApp() *fiber.App {
	return NewApp(zerolog.Nop(), cleaner.NewRuleCleaner(), DefaultMaxFileMB)
}

func multipartBody(t *testing.T, fieldName string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile(fieldName, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, "fiber", result["engine"])
}

func TestProcessRequiresPDFs(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/process", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestProcessIgnoresNonPDFNames(t *testing.T) {
	app := newTestApp()

	body, contentType := multipartBody(t, "pdfs", map[string][]byte{
		"notes.txt": []byte("plain text"),
	})
	req := httptest.NewRequest("POST", "/process", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var result errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Contains(t, result.Error, "pdfs")
}

func TestProcessSuppressesUnparseableFiles(t *testing.T) {
	app := newTestApp()

	body, contentType := multipartBody(t, "pdfs", map[string][]byte{
		"garbage.pdf": []byte("not really a pdf"),
	})
	req := httptest.NewRequest("POST", "/process", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)

	var result errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 1, result.Summary.TotalFiles)
	assert.Equal(t, 1, result.Summary.FailedFiles)
	assert.Equal(t, 0, result.Summary.TotalTransactions)
}

func TestFinalizeRows(t *testing.T) {
	rows := []models.Row{
		{Date: "01/15/2024", Original: "Zelle payment from JANE DOE Conf# 12345", Amount: 500},
		{Date: "", Original: "MISSING DATE", Amount: 10},
		{Date: "01/16/2024", Original: "   ", Amount: 10},
		{Date: "01/17/2024", Original: "BAD AMOUNT", Amount: math.NaN()},
	}

	got := finalizeRows(rows, cleaner.NewRuleCleaner())
	require.Len(t, got, 1)
	assert.Equal(t, "JANE DOE", got[0].Clean)
	assert.Equal(t, "Zelle payment from JANE DOE Conf# 12345", got[0].Original)
}

func TestBuildSummary(t *testing.T) {
	rows := []models.Row{
		{Date: "01/15/2024", Amount: 100},
		{Date: "01/16/2024", Amount: -40},
		{Date: "01/17/2024", Amount: 60},
	}
	s := buildSummary(2, 2, 0, rows)

	assert.Equal(t, 3, s.TotalTransactions)
	require.NotNil(t, s.DateRange)
	assert.Equal(t, "01/15/2024", s.DateRange.Start)
	assert.Equal(t, "01/17/2024", s.DateRange.End)
	assert.InDelta(t, 160, s.TotalCredits, 1e-9)
	assert.InDelta(t, -40, s.TotalDebits, 1e-9)
	assert.InDelta(t, 120, s.Net, 1e-9)
	assert.Equal(t, 2, s.CreditCount)
	assert.Equal(t, 1, s.DebitCount)
}

func TestBuildPreviewCapsRows(t *testing.T) {
	rows := make([]models.Row, 45)
	for i := range rows {
		rows[i] = models.Row{Date: "01/01/2024", Original: "MEMO", SourceFile: "a.pdf"}
	}
	preview := buildPreview(rows, previewRows)
	assert.Len(t, preview, 30)
	assert.Equal(t, "MEMO", preview[0].Description)
}

func TestEncodeHeaderRoundTrip(t *testing.T) {
	encoded := encodeHeader([]string{"warning one"})
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	var out []string
	require.NoError(t, json.Unmarshal(decoded, &out))
	assert.Equal(t, []string{"warning one"}, out)
}
