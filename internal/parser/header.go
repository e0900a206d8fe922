package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/phantom-ledger/internal/layout"
	"github.com/insightdelivered/phantom-ledger/internal/models"
)

// HeaderHints records per-page column semantics derived from header lines.
// X positions stay nil until a header fragment resolves them; once set they
// never change (first writer wins across successive header lines).
type HeaderHints struct {
	HasDebitCredit bool
	HasBalance     bool
	DateX          *float64
	DescriptionX   *float64
	DebitX         *float64
	CreditX        *float64
	AmountX        *float64
	BalanceX       *float64
}

var (
	descriptionKeywordPattern = regexp.MustCompile(`(description|memo|transaction|details|narrative|activity)`)
	amountKeywordPattern      = regexp.MustCompile(`(amount|debit|credit|withdrawal|deposit|balance)`)
	dateWordPattern           = regexp.MustCompile(`\bdate\b`)
	balanceWordPattern        = regexp.MustCompile(`\bbalance\b`)
	amountWordPattern         = regexp.MustCompile(`\bamount\b`)
	debitKeywordPattern       = regexp.MustCompile(`(debit|withdrawal)`)
	creditKeywordPattern      = regexp.MustCompile(`(credit|deposit)`)
	nonLetterPattern          = regexp.MustCompile(`[^a-z]`)
)

// compactLetters lowercases and strips everything but letters. Headers with
// spread characters ("D a t e") still match through their compacted form.
func compactLetters(s string) string {
	return nonLetterPattern.ReplaceAllString(strings.ToLower(s), "")
}

// isHeaderLine reports whether a lowercased line looks like a transaction
// table header: a date column, a description-family column, and an
// amount-family column must all be present.
func isHeaderLine(lower string) bool {
	if lower == "" || len(lower) > 150 {
		return false
	}
	compact := compactLetters(lower)

	hasDate := dateWordPattern.MatchString(lower) || strings.Contains(compact, "date")
	hasDescription := descriptionKeywordPattern.MatchString(lower) ||
		strings.Contains(compact, "description") ||
		strings.Contains(compact, "transactionhistory")
	hasAmount := amountKeywordPattern.MatchString(lower) ||
		strings.Contains(compact, "amount") ||
		strings.Contains(compact, "debit") ||
		strings.Contains(compact, "credit") ||
		strings.Contains(compact, "balance")

	return hasDate && hasDescription && hasAmount
}

// inferHeaderHints derives column positions and flags from one header line.
func inferHeaderHints(line models.Line) HeaderHints {
	var hints HeaderHints
	lower := layout.NormalizeSpaces(strings.ToLower(line.Text))
	compact := compactLetters(lower)

	hints.HasDebitCredit = debitKeywordPattern.MatchString(lower) && creditKeywordPattern.MatchString(lower)
	if !hints.HasDebitCredit && strings.Contains(compact, "creditsdebits") {
		hints.HasDebitCredit = true
	}
	hints.HasBalance = balanceWordPattern.MatchString(lower) || strings.Contains(compact, "balance")

	for _, frag := range line.Fragments {
		text := layout.NormalizeSpaces(strings.ToLower(frag.Text))
		textCompact := compactLetters(text)
		x := frag.X

		if hints.DateX == nil && (dateWordPattern.MatchString(text) || strings.Contains(textCompact, "date")) {
			hints.DateX = ptr(x)
		}
		if hints.DescriptionX == nil &&
			(descriptionKeywordPattern.MatchString(text) || strings.Contains(textCompact, "description")) {
			hints.DescriptionX = ptr(x)
		}
		if hints.DebitX == nil && (debitKeywordPattern.MatchString(text) || strings.Contains(textCompact, "debit")) {
			hints.DebitX = ptr(x)
		}
		if hints.CreditX == nil && (creditKeywordPattern.MatchString(text) || strings.Contains(textCompact, "credit")) {
			hints.CreditX = ptr(x)
		}
		if hints.AmountX == nil && (amountWordPattern.MatchString(text) || strings.Contains(textCompact, "amount")) {
			hints.AmountX = ptr(x)
		}
		if hints.BalanceX == nil && (balanceWordPattern.MatchString(text) || strings.Contains(textCompact, "balance")) {
			hints.BalanceX = ptr(x)
		}
	}

	return hints
}

// mergeHeaderHints folds a newly inferred set of hints into the page's
// accumulated hints. Flags OR together; positions never regress to unset
// and never get overwritten.
func mergeHeaderHints(base, incoming HeaderHints) HeaderHints {
	return HeaderHints{
		HasDebitCredit: base.HasDebitCredit || incoming.HasDebitCredit,
		HasBalance:     base.HasBalance || incoming.HasBalance,
		DateX:          firstSet(base.DateX, incoming.DateX),
		DescriptionX:   firstSet(base.DescriptionX, incoming.DescriptionX),
		DebitX:         firstSet(base.DebitX, incoming.DebitX),
		CreditX:        firstSet(base.CreditX, incoming.CreditX),
		AmountX:        firstSet(base.AmountX, incoming.AmountX),
		BalanceX:       firstSet(base.BalanceX, incoming.BalanceX),
	}
}

func ptr(v float64) *float64 { return &v }

func firstSet(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}
