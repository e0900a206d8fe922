package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/insightdelivered/phantom-ledger/internal/models"
)

// The strict amount token grammar: optional parentheses, minus, currency
// sign, thousands groups, mandatory cents, optional CR/DR marker.
const amountTokenSource = `\(?-?\$?\s*\d{1,3}(?:,\d{3})*(?:\.\d{2})\)?\s*(?:CR|DR)?`

var (
	amountTokenPattern    = regexp.MustCompile(`(?i)` + amountTokenSource)
	amountLookupPattern   = regexp.MustCompile(`(?i)^` + amountTokenSource + `$`)
	trailingAmountPattern = regexp.MustCompile(`(?i)(?:\s*` + amountTokenSource + `)+$`)
	crDrMarkerPattern     = regexp.MustCompile(`(?i)CR|DR`)
	drMarkerPattern       = regexp.MustCompile(`(?i)DR`)
	crDrWordPattern       = regexp.MustCompile(`(?i)\b(?:CR|DR)\b`)
	amountStripPattern    = regexp.MustCompile(`[\s$,()]`)
)

// forcedSign tells parseAmountToken how to sign the parsed value.
type forcedSign int

const (
	signNatural forcedSign = iota // token's own markers decide
	signDebit                     // always negative
	signCredit                    // always positive
)

// Column-matching distance ceilings, in document units.
const (
	debitCreditColumnThreshold = 64
	amountColumnThreshold      = 90
	columnTieMargin            = 8
)

// amountResult is one resolved amount plus how confidently it was signed.
type amountResult struct {
	amount       float64
	rawToken     string
	explicitSign bool
}

// parseAmountToken parses one amount token. A DR marker, parentheses, or a
// leading minus make the natural value negative. Returns NaN when the token
// is not numeric.
func parseAmountToken(token string, force forcedSign) float64 {
	token = strings.TrimSpace(token)
	if token == "" {
		return math.NaN()
	}

	negative := drMarkerPattern.MatchString(token) ||
		(strings.Contains(token, "(") && strings.Contains(token, ")")) ||
		strings.HasPrefix(strings.TrimLeft(token, " "), "-")

	cleaned := crDrMarkerPattern.ReplaceAllString(token, "")
	cleaned = amountStripPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimPrefix(cleaned, "-")

	absolute, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return math.NaN()
	}

	switch force {
	case signDebit:
		return -math.Abs(absolute)
	case signCredit:
		return math.Abs(absolute)
	}
	if negative {
		return -math.Abs(absolute)
	}
	return math.Abs(absolute)
}

// tokenHasExplicitSign reports whether the token carries its own sign:
// a CR/DR word, parentheses, or a leading minus.
func tokenHasExplicitSign(token string) bool {
	return crDrWordPattern.MatchString(token) ||
		strings.Contains(token, "(") ||
		strings.Contains(token, ")") ||
		strings.HasPrefix(strings.TrimLeft(token, " "), "-")
}

func amountTokens(text string) []string {
	return amountTokenPattern.FindAllString(text, -1)
}

func lineHasAmountToken(line models.Line) bool {
	return amountTokenPattern.MatchString(line.Text)
}

// extractAmount resolves a candidate row's amount. Column positions win when
// the header exposed them and exactly one column claims the token; otherwise
// the remainder text is tokenized and the token picked by column layout
// convention (debit/credit pair, trailing balance, or last token).
func extractAmount(line models.Line, remainder string, hints HeaderHints) amountResult {
	if !hints.HasBalance {
		if byColumns, ok := extractAmountFromColumns(line, hints); ok {
			return byColumns
		}
	}

	tokens := amountTokens(remainder)
	if len(tokens) == 0 {
		return amountResult{amount: math.NaN()}
	}

	if hints.HasDebitCredit {
		working := tokens
		if hints.HasBalance && len(working) > 1 {
			working = working[:len(working)-1]
		}
		if len(working) >= 2 {
			debitValue := parseAmountToken(working[0], signDebit)
			creditValue := parseAmountToken(working[1], signCredit)
			debitZero := almostZero(debitValue)
			creditZero := almostZero(creditValue)

			if !debitZero && creditZero {
				return amountResult{amount: debitValue, rawToken: working[0], explicitSign: true}
			}
			if debitZero && !creditZero {
				return amountResult{amount: creditValue, rawToken: working[1], explicitSign: true}
			}
			return amountResult{amount: debitValue, rawToken: working[0], explicitSign: true}
		}
	}

	if hints.HasBalance && len(tokens) >= 2 {
		tok := tokens[len(tokens)-2]
		return amountResult{
			amount:       parseAmountToken(tok, signNatural),
			rawToken:     tok,
			explicitSign: tokenHasExplicitSign(tok),
		}
	}

	tok := tokens[len(tokens)-1]
	return amountResult{
		amount:       parseAmountToken(tok, signNatural),
		rawToken:     tok,
		explicitSign: tokenHasExplicitSign(tok),
	}
}

// extractAmountFromColumns picks the amount fragment nearest a known
// debit/credit/amount column. A fragment claimed by both debit and credit
// columns at near-equal distance is ambiguous and defers to token
// extraction.
func extractAmountFromColumns(line models.Line, hints HeaderHints) (amountResult, bool) {
	var candidates []models.Fragment
	for _, frag := range line.Fragments {
		if amountLookupPattern.MatchString(frag.Text) {
			candidates = append(candidates, frag)
		}
	}
	if len(candidates) == 0 {
		return amountResult{}, false
	}

	if hints.DebitX != nil || hints.CreditX != nil {
		var debitMatch, creditMatch *models.Fragment
		if hints.DebitX != nil {
			debitMatch = nearestFragment(candidates, *hints.DebitX)
		}
		if hints.CreditX != nil {
			creditMatch = nearestFragment(candidates, *hints.CreditX)
		}

		debitWithin := debitMatch != nil && math.Abs(debitMatch.X-*hints.DebitX) <= debitCreditColumnThreshold
		creditWithin := creditMatch != nil && math.Abs(creditMatch.X-*hints.CreditX) <= debitCreditColumnThreshold

		switch {
		case debitWithin && !creditWithin:
			return amountResult{
				amount:       parseAmountToken(debitMatch.Text, signDebit),
				rawToken:     debitMatch.Text,
				explicitSign: true,
			}, true
		case creditWithin && !debitWithin:
			return amountResult{
				amount:       parseAmountToken(creditMatch.Text, signCredit),
				rawToken:     creditMatch.Text,
				explicitSign: true,
			}, true
		case debitWithin && creditWithin:
			debitDistance := math.Abs(debitMatch.X - *hints.DebitX)
			creditDistance := math.Abs(creditMatch.X - *hints.CreditX)

			if debitMatch == creditMatch && math.Abs(debitDistance-creditDistance) < columnTieMargin {
				return amountResult{}, false
			}
			if debitDistance < creditDistance {
				return amountResult{
					amount:       parseAmountToken(debitMatch.Text, signDebit),
					rawToken:     debitMatch.Text,
					explicitSign: true,
				}, true
			}
			if creditDistance < debitDistance {
				return amountResult{
					amount:       parseAmountToken(creditMatch.Text, signCredit),
					rawToken:     creditMatch.Text,
					explicitSign: true,
				}, true
			}

			debitValue := parseAmountToken(debitMatch.Text, signDebit)
			creditValue := parseAmountToken(creditMatch.Text, signCredit)
			if !almostZero(debitValue) && almostZero(creditValue) {
				return amountResult{amount: debitValue, rawToken: debitMatch.Text, explicitSign: true}, true
			}
			if almostZero(debitValue) && !almostZero(creditValue) {
				return amountResult{amount: creditValue, rawToken: creditMatch.Text, explicitSign: true}, true
			}
			return amountResult{amount: debitValue, rawToken: debitMatch.Text, explicitSign: true}, true
		}
	}

	if hints.AmountX != nil {
		match := nearestFragment(candidates, *hints.AmountX)
		if match != nil && math.Abs(match.X-*hints.AmountX) <= amountColumnThreshold {
			return amountResult{
				amount:       parseAmountToken(match.Text, signNatural),
				rawToken:     match.Text,
				explicitSign: tokenHasExplicitSign(match.Text),
			}, true
		}
	}

	return amountResult{}, false
}

func nearestFragment(fragments []models.Fragment, targetX float64) *models.Fragment {
	var best *models.Fragment
	bestDistance := math.Inf(1)
	for i := range fragments {
		distance := math.Abs(fragments[i].X - targetX)
		if distance < bestDistance {
			best = &fragments[i]
			bestDistance = distance
		}
	}
	return best
}

func almostZero(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) < 0.00001
}

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}
