package parser

import (
	"math"
	"regexp"
	"strings"

	"github.com/insightdelivered/phantom-ledger/internal/layout"
)

var (
	checkingSummaryTrailer = regexp.MustCompile(`(?i)\s+CHECKING ACCOUNT MONTHLY SUMMARY.*$`)
	savingsSummaryTrailer  = regexp.MustCompile(`(?i)\s+SAVINGS ACCOUNT MONTHLY SUMMARY.*$`)
	duplicatedVerifyToken  = regexp.MustCompile(`(?i)\b(ACCTVERIFY\s+[A-Z0-9]+)\s+(ACCTVERIFY\s+[A-Z0-9]+)\b`)
	trailingDotPattern     = regexp.MustCompile(`\s+\.\s*$`)
	strayROnPattern        = regexp.MustCompile(`\bR\s+on\b`)
	trailingRPattern       = regexp.MustCompile(`\s+R$`)

	trailingMoneyPattern    = regexp.MustCompile(`(\$?\d{1,3}(?:,\d{3})*(?:\.\d{2}))\s*$`)
	trailingArtifactPattern = regexp.MustCompile(`(\$?\d{1,3}(?:,\d{3})*(?:\.\d{2}))\s+\d{12,}\s*$`)
)

// sanitizeDescription strips residual layout artifacts a captured memo tends
// to pick up: summary trailers, duplicated verification tokens, a trailing
// stray letter, and a trailing amount that repeats the row's own amount.
func sanitizeDescription(description string, amount float64) string {
	cleaned := layout.NormalizeSpaces(description)
	if cleaned == "" {
		return ""
	}

	cleaned = checkingSummaryTrailer.ReplaceAllString(cleaned, "")
	cleaned = savingsSummaryTrailer.ReplaceAllString(cleaned, "")
	// RE2 has no backreferences; collapse only when the two tokens match.
	if m := duplicatedVerifyToken.FindStringSubmatchIndex(cleaned); m != nil {
		first := cleaned[m[2]:m[3]]
		second := cleaned[m[4]:m[5]]
		if strings.EqualFold(first, second) {
			cleaned = cleaned[:m[0]] + first + cleaned[m[1]:]
		}
	}
	cleaned = trailingDotPattern.ReplaceAllString(cleaned, "")
	cleaned = strayROnPattern.ReplaceAllString(cleaned, " on")
	cleaned = trailingRPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	cleaned = removeTrailingRepeatedAmount(cleaned, amount)
	return layout.NormalizeSpaces(cleaned)
}

// removeTrailingRepeatedAmount drops a trailing amount substring that
// numerically matches the row's resolved amount. This guards against the
// amount token having been mis-captured as part of the description,
// including the variant where a long reference number trails the amount.
func removeTrailingRepeatedAmount(description string, amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return description
	}
	absAmount := math.Abs(amount)

	if loc := trailingMoneyPattern.FindStringSubmatchIndex(description); loc != nil {
		value := parseAmountToken(description[loc[2]:loc[3]], signNatural)
		if !math.IsNaN(value) && almostEqual(math.Abs(value), absAmount, 0.005) {
			return strings.TrimSpace(description[:loc[0]])
		}
	}

	if loc := trailingArtifactPattern.FindStringSubmatchIndex(description); loc != nil {
		value := parseAmountToken(description[loc[2]:loc[3]], signNatural)
		if !math.IsNaN(value) && almostEqual(math.Abs(value), absAmount, 0.005) {
			return strings.TrimSpace(description[:loc[0]])
		}
	}

	return description
}
