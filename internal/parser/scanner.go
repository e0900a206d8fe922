package parser

import (
	"math"
	"regexp"
	"strings"

	"github.com/insightdelivered/phantom-ledger/internal/layout"
	"github.com/insightdelivered/phantom-ledger/internal/models"
)

// Footer lines end capture mode: balance summaries, page numbers,
// regulatory boilerplate, continuation markers.
var footerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ending balance`),
	regexp.MustCompile(`(?i)beginning balance`),
	regexp.MustCompile(`(?i)account summary`),
	regexp.MustCompile(`(?i)daily balance`),
	regexp.MustCompile(`(?i)total (?:debits|credits|fees|withdrawals|deposits|payments)`),
	regexp.MustCompile(`(?i)page\s+\d+(?:\s+of\s+\d+)?`),
	regexp.MustCompile(`(?i)continued on (?:the )?next page`),
	regexp.MustCompile(`(?i)member fdic`),
	regexp.MustCompile(`(?i)^§?\s*page\s+\d+\s+of\s+\d+`),
	regexp.MustCompile(`(?i)account security you can see`),
	regexp.MustCompile(`(?i)security meter level`),
	regexp.MustCompile(`(?i)to learn more, visit`),
	regexp.MustCompile(`(?i)message and data rates may apply`),
	regexp.MustCompile(`(?i)monthly service fee summary`),
}

var (
	summaryLinePattern = regexp.MustCompile(`(?i)(daily balance|ending daily|balance summary|beginning balance|new balance|account summary)`)
	totalPrefixPattern = regexp.MustCompile(`(?i)^(?:total|subtotal|balance|page\s+\d+)`)

	noiseMarkerPattern    = regexp.MustCompile(`^(\*start\*|\*end\*)`)
	noiseContinuedPattern = regexp.MustCompile(`(?i)^(?:c\s*o\s*n\s*t\s*i\s*n\s*u\s*e\s*d|continued)$`)
	noiseBoilerplate      = regexp.MustCompile(`(?i)(account security you can see|security meter level|message and data rates may apply)`)

	depositKeywordPattern    = regexp.MustCompile(`(?i)(deposit|credit|addition|interest payment|interest earned)`)
	withdrawalKeywordPattern = regexp.MustCompile(`(?i)(withdrawal|debit|fee|service charge|payment to|wire out)`)
	negativeBannerPattern    = regexp.MustCompile(`(?i)(atm\s*&\s*debit\s*card\s*withdrawals|electronic withdrawals|other withdrawals, debits and service charges|fees(?: section)?|service charges)`)
	positiveBannerPattern    = regexp.MustCompile(`(?i)(deposits and additions|deposits, credits and interest|deposits and credits)`)

	strongPositivePattern = regexp.MustCompile(`(?i)(return|reverse|reversal|deposit|credit|payment from|transfer from|online transfer from|zelle from|wire in|interest)`)
	strongNegativePattern = regexp.MustCompile(`(?i)(payment to|transfer to|online transfer to|zelle to|withdrawal|debit|fee|purchase|wire out|service charge|overdraft|irs usataxpymt|taxpymt|harland clarke|^\d{3,6}\s+check\b|\bcheck\b)`)

	accountLabelPattern      = regexp.MustCompile(`(?i)(?:account|acct)\s*(?:number|no\.?|#)?\s*[:\-]?\s*([Xx*\d\-]{4,})`)
	typedAccountLabelPattern = regexp.MustCompile(`(?i)\b(?:checking|savings|business\s+checking|money\s*market)\b.*?([Xx*\d\-]{4,})`)
	accountTokenJunkPattern  = regexp.MustCompile(`[^A-Za-z0-9*]`)
	hasDigitPattern          = regexp.MustCompile(`\d`)

	leadingShortDatePrefix = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}\s+`)

	// Discarded outright when the amount is zero: known statement artifacts
	// that look like rows but are not transactions.
	nonTransactionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)prfd?\s+rwds\s+for\s+bus-?wire\s+fee\s+waiver`),
	}
)

// Margin, in document units, a continuation line may start to the left of
// the description column and still be appended.
const descriptionColumnMargin = 15

// pendingRow is a transaction under construction. Continuation lines extend
// Description until the row is flushed.
type pendingRow struct {
	date        string
	dateValue   int64
	description string
	amount      float64
	account     string
}

// scanState is the explicit per-page scanner context: capture mode, the
// accumulated header hints, the active section sign, and the pending row.
type scanState struct {
	capture     bool
	hints       HeaderHints
	sectionSign int
	pending     *pendingRow
}

func isFooterLine(lower string) bool {
	for _, p := range footerPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

func isLikelySummaryLine(text string) bool {
	return summaryLinePattern.MatchString(text)
}

func isLikelyNoiseLine(text string) bool {
	normalized := strings.ToLower(layout.NormalizeSpaces(text))
	if normalized == "" {
		return true
	}
	if noiseMarkerPattern.MatchString(normalized) {
		return true
	}
	if noiseContinuedPattern.MatchString(normalized) {
		return true
	}
	return noiseBoilerplate.MatchString(normalized)
}

// inferSectionSign classifies a section banner line: +1 for deposit-type
// sections, -1 for withdrawal-type, 0 when both keyword families appear
// (ambiguous banner resets the sign). Returns ok=false for lines that say
// nothing about section sign, including date-led transaction lines.
func inferSectionSign(text string) (int, bool) {
	normalized := strings.ToLower(layout.NormalizeSpaces(text))
	if normalized == "" || extractLeadingDate(normalized) != "" {
		return 0, false
	}

	hasDeposit := depositKeywordPattern.MatchString(normalized)
	hasWithdrawal := withdrawalKeywordPattern.MatchString(normalized)

	if hasDeposit && hasWithdrawal {
		return 0, true
	}
	if negativeBannerPattern.MatchString(normalized) {
		return -1, true
	}
	if positiveBannerPattern.MatchString(normalized) {
		return 1, true
	}
	if !hasDeposit && !hasWithdrawal {
		return 0, false
	}
	if hasWithdrawal {
		return -1, true
	}
	return 1, true
}

// applySectionSign resolves the sign of an amount whose token carried no
// explicit marker: strong description keywords first, then the active
// section sign, else the natural parsed sign stands.
func applySectionSign(amount float64, description string, sectionSign int) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return amount
	}
	normalized := strings.ToLower(layout.NormalizeSpaces(description))
	if strongPositivePattern.MatchString(normalized) {
		return math.Abs(amount)
	}
	if strongNegativePattern.MatchString(normalized) {
		return -math.Abs(amount)
	}
	if sectionSign == 0 {
		return amount
	}
	if sectionSign < 0 {
		return -math.Abs(amount)
	}
	return math.Abs(amount)
}

// detectAccountLabel finds an account identifier on a line, either behind an
// explicit "Account #"-style label or trailing a typed account name.
func detectAccountLabel(text string) string {
	if m := accountLabelPattern.FindStringSubmatch(text); m != nil {
		if normalized := normalizeAccountToken(m[1]); normalized != "" {
			return normalized
		}
	}
	if m := typedAccountLabelPattern.FindStringSubmatch(text); m != nil {
		if normalized := normalizeAccountToken(m[1]); normalized != "" {
			return normalized
		}
	}
	return ""
}

// normalizeAccountToken compacts an account identifier to alphanumerics and
// mask characters. Tokens under four characters, or with neither digits nor
// mask characters, are rejected.
func normalizeAccountToken(raw string) string {
	compact := accountTokenJunkPattern.ReplaceAllString(raw, "")
	if len(compact) < 4 {
		return ""
	}
	if !hasDigitPattern.MatchString(compact) && !strings.Contains(compact, "*") {
		return ""
	}
	return compact
}

// shouldAppendDescription decides whether a line continues the pending
// row's memo. Continuations only happen in capture mode, for lines that are
// not themselves rows, headers, footers, amounts, or layout noise, and that
// start at or right of the description column when one is known.
func shouldAppendDescription(line models.Line, capture bool, hints HeaderHints) bool {
	if !capture {
		return false
	}
	text := layout.NormalizeSpaces(line.Text)
	if text == "" {
		return false
	}
	if extractLeadingDate(text) != "" {
		return false
	}
	lower := strings.ToLower(text)
	if isHeaderLine(lower) || isFooterLine(lower) {
		return false
	}
	if lineHasAmountToken(line) {
		return false
	}
	if isLikelyNoiseLine(text) {
		return false
	}
	if hints.DescriptionX != nil {
		firstX := 0.0
		if len(line.Fragments) > 0 {
			firstX = line.Fragments[0].X
		}
		if firstX < *hints.DescriptionX-descriptionColumnMargin {
			return false
		}
	}
	return !totalPrefixPattern.MatchString(text)
}

// ParsePage walks one page's lines in order and emits finalized transaction
// rows. Capture toggles between header and footer boundaries; continuation
// lines extend the pending row; the pending row flushes on the next dated
// line, any boundary, and at end of page.
func ParsePage(lines []models.Line, ctx *DateContext) []models.Transaction {
	var rows []models.Transaction
	state := scanState{}

	flush := func() {
		if state.pending != nil {
			pushPendingRow(&rows, state.pending)
			state.pending = nil
		}
	}

	for _, line := range lines {
		text := layout.NormalizeSpaces(line.Text)
		lower := strings.ToLower(text)

		if sign, ok := inferSectionSign(text); ok {
			state.sectionSign = sign
		}

		if isHeaderLine(lower) {
			state.capture = true
			state.hints = mergeHeaderHints(state.hints, inferHeaderHints(line))
			flush()
			continue
		}

		if isFooterLine(lower) {
			state.capture = false
			flush()
			continue
		}

		dateToken := extractLeadingDate(text)
		hasAmount := lineHasAmountToken(line)
		fallbackWithoutHeader := !state.capture &&
			hasAmount &&
			countDateTokens(text) == 1 &&
			!isLikelySummaryLine(text)

		if dateToken != "" && (state.capture || fallbackWithoutHeader) {
			flush()
			state.pending = parseTransactionLine(line, dateToken, state.hints, ctx, state.sectionSign)
			continue
		}

		if state.pending != nil && shouldAppendDescription(line, state.capture, state.hints) {
			state.pending.description = layout.NormalizeSpaces(state.pending.description + " " + text)
		}
	}

	flush()

	final := rows[:0]
	for _, row := range rows {
		if row.Date != "" && row.Description != "" && !math.IsNaN(row.Amount) && !math.IsInf(row.Amount, 0) {
			final = append(final, row)
		}
	}
	return final
}

// parseTransactionLine opens a pending row from a dated line. Returns nil
// when the date, remainder, or amount cannot be resolved; ambiguous lines
// are dropped rather than guessed at.
func parseTransactionLine(line models.Line, dateToken string, hints HeaderHints, ctx *DateContext, sectionSign int) *pendingRow {
	normalized, ok := normalizeDate(dateToken, ctx)
	if !ok {
		return nil
	}

	start := strings.Index(line.Text, dateToken)
	if start < 0 {
		start = 0
	}
	remainder := strings.TrimSpace(line.Text[start+len(dateToken):])
	remainder = stripRepeatedLeadingDate(remainder, normalized.Normalized, ctx)
	if remainder == "" {
		return nil
	}

	result := extractAmount(line, remainder, hints)
	if math.IsNaN(result.amount) || math.IsInf(result.amount, 0) {
		return nil
	}

	description := strings.TrimSpace(trailingAmountPattern.ReplaceAllString(remainder, ""))
	if description == "" && result.rawToken != "" {
		description = strings.TrimSpace(strings.Replace(remainder, result.rawToken, "", 1))
	}
	description = leadingShortDatePrefix.ReplaceAllString(description, "")
	description = layout.NormalizeSpaces(description)
	if description == "" {
		return nil
	}

	amount := result.amount
	if !result.explicitSign {
		amount = applySectionSign(amount, description, sectionSign)
	}

	description = sanitizeDescription(description, amount)
	if description == "" || isNonTransactionDescription(description, amount) {
		return nil
	}

	return &pendingRow{
		date:        normalized.Normalized,
		dateValue:   normalized.Value,
		description: description,
		amount:      amount,
		account:     line.Account,
	}
}

// pushPendingRow finalizes a pending row. The description is re-sanitized
// because continuation lines may have appended more text since the row
// opened.
func pushPendingRow(rows *[]models.Transaction, row *pendingRow) {
	if row == nil {
		return
	}
	description := sanitizeDescription(row.description, row.amount)
	if description == "" || isNonTransactionDescription(description, row.amount) {
		return
	}
	*rows = append(*rows, models.Transaction{
		Date:        row.date,
		DateValue:   row.dateValue,
		Description: description,
		Amount:      row.amount,
		Account:     row.account,
	})
}

// isNonTransactionDescription matches known zero-amount statement artifacts.
func isNonTransactionDescription(description string, amount float64) bool {
	if !almostZero(amount) {
		return false
	}
	normalized := layout.NormalizeSpaces(description)
	for _, p := range nonTransactionPatterns {
		if p.MatchString(normalized) {
			return true
		}
	}
	return false
}
