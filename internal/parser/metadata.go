package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/insightdelivered/phantom-ledger/internal/layout"
	"github.com/insightdelivered/phantom-ledger/internal/models"
)

var (
	directAccountLabelPattern = regexp.MustCompile(`(?i)(?:account|acct)\s*(?:number|no\.?|#)?\s*[:\-]?\s*([Xx*\d\-]{4,})`)

	businessNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:business|company|client|customer)\s*(?:number|no\.?|#|id)\s*[:\-]?\s*([A-Za-z0-9\-*]{4,})`),
		regexp.MustCompile(`(?i)\b(?:tax\s*id|ein|federal\s*id)\s*[:\-]?\s*([A-Za-z0-9\-]{4,})`),
	}

	businessNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:business|company)\s*name\s*[:\-]?\s*([A-Za-z0-9&.,'/\-\s]{3,80})`),
		regexp.MustCompile(`(?i)\bstatement\s+for\s+([A-Za-z0-9&.,'/\-\s]{3,80})`),
	}

	statementPeriodPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bstatement\s+period\s*[:\-]?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s*(?:to|-|through|thru)\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		regexp.MustCompile(`(?i)\bfrom\s+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s*(?:to|-|through|thru)\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	}

	businessNumberJunkPattern = regexp.MustCompile(`[^A-Za-z0-9*]`)
	nonBusinessNamePattern    = regexp.MustCompile(`(?i)^(?:page\s+\d+|member fdic|account summary|ending balance)$`)
	pipePattern               = regexp.MustCompile(`[|]+`)
)

// CollectDocumentMetadata derives per-file identity signals: ranked account,
// business-number, and business-name candidates plus the statement period.
func CollectDocumentMetadata(lines []models.Line, transactions []models.Transaction) models.DocumentMetadata {
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		texts = append(texts, layout.NormalizeSpaces(line.Text))
	}

	return models.DocumentMetadata{
		AccountCandidates:        collectAccountCandidates(texts, transactions),
		BusinessNumberCandidates: collectBusinessNumberCandidates(texts),
		BusinessNameCandidates:   collectBusinessNameCandidates(texts),
		StatementPeriod:          detectStatementPeriod(texts),
	}
}

func collectAccountCandidates(texts []string, transactions []models.Transaction) []string {
	counts := map[string]int{}
	for _, text := range texts {
		for _, m := range directAccountLabelPattern.FindAllStringSubmatch(text, -1) {
			addCandidate(counts, normalizeAccountToken(m[1]))
		}
	}
	for _, txn := range transactions {
		addCandidate(counts, normalizeAccountToken(txn.Account))
	}
	return sortCandidateCounts(counts)
}

func collectBusinessNumberCandidates(texts []string) []string {
	counts := map[string]int{}
	for _, text := range texts {
		for _, pattern := range businessNumberPatterns {
			for _, m := range pattern.FindAllStringSubmatch(text, -1) {
				addCandidate(counts, normalizeBusinessNumber(m[1]))
			}
		}
	}
	return sortCandidateCounts(counts)
}

func collectBusinessNameCandidates(texts []string) []string {
	counts := map[string]int{}
	for _, text := range texts {
		for _, pattern := range businessNamePatterns {
			for _, m := range pattern.FindAllStringSubmatch(text, -1) {
				addCandidate(counts, normalizeBusinessName(m[1]))
			}
		}
	}
	return sortCandidateCounts(counts)
}

func detectStatementPeriod(texts []string) *models.StatementPeriod {
	for _, text := range texts {
		for _, pattern := range statementPeriodPatterns {
			m := pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			start, okStart := normalizeDate(m[1], nil)
			end, okEnd := normalizeDate(m[2], nil)
			if okStart && okEnd {
				return &models.StatementPeriod{Start: start.Normalized, End: end.Normalized}
			}
		}
	}
	return nil
}

func addCandidate(counts map[string]int, candidate string) {
	if candidate == "" {
		return
	}
	counts[candidate]++
}

// sortCandidateCounts ranks candidates by frequency, alphabetical on ties.
func sortCandidateCounts(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for candidate := range counts {
		out = append(out, candidate)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

func normalizeBusinessNumber(raw string) string {
	compact := businessNumberJunkPattern.ReplaceAllString(raw, "")
	if len(compact) < 4 {
		return ""
	}
	if !hasDigitPattern.MatchString(compact) && !strings.Contains(compact, "*") {
		return ""
	}
	return strings.ToUpper(compact)
}

func normalizeBusinessName(raw string) string {
	cleaned := strings.TrimSpace(pipePattern.ReplaceAllString(layout.NormalizeSpaces(raw), ""))
	if len(cleaned) < 3 {
		return ""
	}
	if nonBusinessNamePattern.MatchString(cleaned) {
		return ""
	}
	return strings.ToUpper(cleaned)
}
