// Package layout reconstructs ordered text lines from the unordered
// positioned fragments the PDF decoder emits for a page.
package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/insightdelivered/phantom-ledger/internal/models"
)

const (
	// Fragments whose baselines differ by no more than this belong to the
	// same line.
	lineTolerance = 2.4
	// Horizontal gap between a fragment's right edge and the next
	// fragment's left edge that forces a space when joining.
	joinGapThreshold = 2.5
	// Fallback per-character width used when the decoder reports a zero
	// fragment width.
	approxCharWidth = 2.4
)

// ReconstructLines groups a page's fragments into baseline-ordered lines.
// Fragments are sorted top-to-bottom, then left-to-right; clustering is
// greedy, so a fragment equidistant between two existing lines joins the
// first one that matches. Lines whose joined text is empty are dropped.
func ReconstructLines(page int, fragments []models.Fragment) []models.Line {
	items := make([]models.Fragment, 0, len(fragments))
	for _, f := range fragments {
		f.Text = strings.TrimSpace(f.Text)
		if f.Text == "" {
			continue
		}
		items = append(items, f)
	}
	if len(items) == 0 {
		return nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		if math.Abs(items[j].Y-items[i].Y) > 1 {
			return items[i].Y > items[j].Y
		}
		return items[i].X < items[j].X
	})

	var lines []models.Line
	for _, item := range items {
		idx := -1
		for i := range lines {
			if math.Abs(lines[i].Y-item.Y) <= lineTolerance {
				idx = i
				break
			}
		}
		if idx < 0 {
			lines = append(lines, models.Line{Page: page, Y: item.Y})
			idx = len(lines) - 1
		}
		lines[idx].Fragments = append(lines[idx].Fragments, item)
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Y > lines[j].Y })

	out := lines[:0]
	for _, line := range lines {
		sort.SliceStable(line.Fragments, func(i, j int) bool {
			return line.Fragments[i].X < line.Fragments[j].X
		})
		line.Text = joinFragments(line.Fragments)
		if line.Text == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// joinFragments concatenates fragment text left to right, inserting a space
// when the horizontal gap between fragments is wide enough to indicate
// separate words or columns.
func joinFragments(fragments []models.Fragment) string {
	var b strings.Builder
	prevRight := math.Inf(-1)
	first := true

	for _, f := range fragments {
		if f.Text == "" {
			continue
		}
		if !first && f.X-prevRight > joinGapThreshold {
			b.WriteByte(' ')
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), " ") {
			b.WriteByte(' ')
		}
		b.WriteString(f.Text)
		prevRight = f.X + math.Max(f.Width, float64(len(f.Text))*approxCharWidth)
		first = false
	}
	return NormalizeSpaces(b.String())
}

// NormalizeSpaces collapses all runs of whitespace to single spaces and trims.
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
