package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/insightdelivered/phantom-ledger/internal/layout"
	"github.com/insightdelivered/phantom-ledger/internal/models"
)

// Accepted full-date layouts, tried in order. Dates are treated as UTC so
// millisecond sort keys are stable across host timezones.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"01-02-2006",
	"1-2-2006",
	"01-02-06",
	"1-2-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"20060102",
}

var (
	leadingFullDatePattern  = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	leadingShortDatePattern = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}`)
	leadingLongDatePattern  = regexp.MustCompile(`^[A-Za-z]{3,9}\s+\d{1,2},\s+\d{4}`)
	leadingCompactPattern   = regexp.MustCompile(`^\d{8}`)
	inlineDatePattern       = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\b`)
	inlineFullDatePattern   = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	inlineLongDatePattern   = regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[A-Za-z]*\s+\d{1,2},\s+\d{4}\b`)
	bareMonthDayPattern     = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`)
)

// DateContext anchors year resolution for dates given without a year.
type DateContext struct {
	AnchorYear  int
	AnchorMonth time.Month
}

// NormalizedDate is a parsed date in canonical form plus its sort key.
type NormalizedDate struct {
	Normalized string // MM/DD/YYYY
	Value      int64  // Unix milliseconds
}

// extractLeadingDate returns the date token a line starts with, or "".
// Bare M/D tokens only match when not followed by another date component,
// so "01/15/2024" never yields "01/15".
func extractLeadingDate(text string) string {
	trimmed := strings.TrimLeft(text, " \t")
	if m := leadingFullDatePattern.FindString(trimmed); m != "" {
		return m
	}
	if m := leadingShortDatePattern.FindString(trimmed); m != "" {
		rest := trimmed[len(m):]
		if len(rest) < 2 || !strings.ContainsAny(rest[:1], "/-") || rest[1] < '0' || rest[1] > '9' {
			return m
		}
	}
	if m := leadingLongDatePattern.FindString(trimmed); m != "" {
		return m
	}
	return leadingCompactPattern.FindString(trimmed)
}

// countDateTokens counts inline date-like tokens anywhere in the text.
func countDateTokens(text string) int {
	return len(inlineDatePattern.FindAllString(text, -1))
}

// normalizeDate parses a raw date token to canonical MM/DD/YYYY form.
// Bare M/D tokens resolve against the date context's anchor.
func normalizeDate(raw string, ctx *DateContext) (NormalizedDate, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NormalizedDate{}, false
	}

	if m := bareMonthDayPattern.FindStringSubmatch(raw); m != nil {
		t, ok := resolveMonthDay(m[1], m[2], ctx)
		if !ok {
			return NormalizedDate{}, false
		}
		return NormalizedDate{Normalized: t.Format("01/02/2006"), Value: t.UnixMilli()}, true
	}

	for _, lay := range dateLayouts {
		t, err := time.ParseInLocation(lay, raw, time.UTC)
		if err != nil {
			continue
		}
		return NormalizedDate{Normalized: t.Format("01/02/2006"), Value: t.UnixMilli()}, true
	}
	return NormalizedDate{}, false
}

// resolveMonthDay turns a bare M/D into a full date using the anchor year.
// When the month is more than six months away from the anchor month, the
// year shifts by one toward the closest plausible occurrence, which handles
// statements spanning a year boundary.
func resolveMonthDay(monthStr, dayStr string, ctx *DateContext) (time.Time, bool) {
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	year := time.Now().UTC().Year()
	if ctx != nil && ctx.AnchorYear != 0 {
		year = ctx.AnchorYear
	}
	if ctx != nil && ctx.AnchorMonth != 0 {
		if month-int(ctx.AnchorMonth) > 6 {
			year--
		} else if int(ctx.AnchorMonth)-month > 6 {
			year++
		}
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(t.Month()) != month || t.Day() != day {
		// Overflowed into the next month, e.g. 2/30.
		return time.Time{}, false
	}
	return t, true
}

// InferDateContext scans all reconstructed lines once and anchors the
// statement at the latest fully-qualified date found anywhere. With no date
// at all, the current processing date anchors instead.
func InferDateContext(lines []models.Line) DateContext {
	var latest *time.Time

	consider := func(raw string) {
		nd, ok := normalizeDate(raw, nil)
		if !ok {
			return
		}
		t := time.UnixMilli(nd.Value).UTC()
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}

	for _, line := range lines {
		text := layout.NormalizeSpaces(line.Text)
		for _, m := range inlineFullDatePattern.FindAllString(text, -1) {
			consider(m)
		}
		for _, m := range inlineLongDatePattern.FindAllString(text, -1) {
			consider(m)
		}
	}

	if latest == nil {
		now := time.Now().UTC()
		return DateContext{AnchorYear: now.Year(), AnchorMonth: now.Month()}
	}
	return DateContext{AnchorYear: latest.Year(), AnchorMonth: latest.Month()}
}

// stripRepeatedLeadingDate drops a second copy of the row's own date from
// the remainder text. Statements often repeat the posting date in a second
// column; an unrelated date is left alone.
func stripRepeatedLeadingDate(text, normalized string, ctx *DateContext) string {
	remainder := layout.NormalizeSpaces(text)
	leading := extractLeadingDate(remainder)
	if leading == "" {
		return remainder
	}
	nd, ok := normalizeDate(leading, ctx)
	if !ok || nd.Normalized != normalized {
		return remainder
	}
	return layout.NormalizeSpaces(remainder[len(leading):])
}
