// Package account cross-checks the account identifiers seen in a batch of
// parsed statements and reports when one file belongs to a different
// account than the rest.
package account

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/insightdelivered/phantom-ledger/internal/models"
)

var (
	nonAlnumPattern = regexp.MustCompile(`[^A-Za-z0-9]`)
	nonDigitPattern = regexp.MustCompile(`\D`)
	maskCharPattern = regexp.MustCompile(`[xX*]`)
	letterPattern   = regexp.MustCompile(`[A-WYZa-wyz]`)
	digitPattern    = regexp.MustCompile(`\d`)
	onlyDigits      = regexp.MustCompile(`^[0-9]+$`)
)

type matchContext struct {
	fileName   string
	keys       []string
	labelByKey map[string]string
}

// FindMismatchWarnings compares account identifiers across files and
// returns at most one warning naming the files whose identifiers disagree
// with the majority. Files without any identifier are left out of the vote.
func FindMismatchWarnings(files []*models.FileResult) []string {
	if len(files) <= 1 {
		return nil
	}

	var withAccount []matchContext
	for _, f := range files {
		ctx := buildMatchContext(f)
		if len(ctx.keys) > 0 {
			withAccount = append(withAccount, ctx)
		}
	}
	if len(withAccount) <= 1 {
		return nil
	}

	presence := make(map[string]int)
	for _, ctx := range withAccount {
		for _, key := range ctx.keys {
			presence[key]++
		}
	}

	expectedKey := pickMajorityKey(presence)
	if expectedKey == "" {
		return nil
	}

	var mismatched []matchContext
	var expectedLabels []string
	for _, ctx := range withAccount {
		if containsKey(ctx.keys, expectedKey) {
			expectedLabels = append(expectedLabels, ctx.labelByKey[expectedKey])
		} else {
			mismatched = append(mismatched, ctx)
		}
	}
	if len(mismatched) == 0 {
		return nil
	}

	rawLabel := pickBestLabel(expectedLabels)
	if rawLabel == "" {
		rawLabel = strings.TrimPrefix(expectedKey, "LAST4:")
	}
	expectedLabel := maskAccountNumber(rawLabel)

	details := make([]string, len(mismatched))
	for i, ctx := range mismatched {
		labels := make([]string, len(ctx.keys))
		for j, key := range ctx.keys {
			label := ctx.labelByKey[key]
			if label == "" {
				label = strings.TrimPrefix(key, "LAST4:")
			}
			labels[j] = maskAccountNumber(label)
		}
		details[i] = strings.Join(labels, "/") + " → " + ctx.fileName
	}

	return []string{fmt.Sprintf(
		"Account mismatch detected across uploaded statements. Expected ****%s; found %s.",
		expectedLabel, strings.Join(details, " | "),
	)}
}

func buildMatchContext(f *models.FileResult) matchContext {
	values := gatherAccountValues(f)
	labelByKey := make(map[string]string)
	var keys []string

	for _, value := range values {
		key := deriveMatchKey(value)
		if key == "" {
			continue
		}
		existing, ok := labelByKey[key]
		if !ok {
			keys = append(keys, key)
		}
		if !ok || scoreIdentifier(value) > scoreIdentifier(existing) {
			labelByKey[key] = value
		}
	}

	name := f.FileName
	if name == "" {
		name = "unknown.pdf"
	}
	return matchContext{fileName: name, keys: keys, labelByKey: labelByKey}
}

func gatherAccountValues(f *models.FileResult) []string {
	seen := make(map[string]bool)
	var values []string
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	for _, c := range f.Metadata.AccountCandidates {
		add(c)
	}
	for _, tx := range f.Transactions {
		add(tx.Account)
	}
	return values
}

// deriveMatchKey reduces an identifier to its comparable core. Identifiers
// carrying at least four digits compare by their trailing four, so masked
// and unmasked renderings of the same account collide as intended.
func deriveMatchKey(account string) string {
	compact := nonAlnumPattern.ReplaceAllString(account, "")
	if compact == "" {
		return ""
	}
	digits := nonDigitPattern.ReplaceAllString(compact, "")
	if len(digits) >= 4 {
		return "LAST4:" + digits[len(digits)-4:]
	}
	return strings.ToUpper(compact)
}

func pickBestLabel(values []string) string {
	seen := make(map[string]bool)
	var options []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !seen[v] {
			seen[v] = true
			options = append(options, v)
		}
	}
	if len(options) == 0 {
		return ""
	}
	sort.Slice(options, func(i, j int) bool {
		si, sj := scoreIdentifier(options[i]), scoreIdentifier(options[j])
		if si != sj {
			return si > sj
		}
		return options[i] < options[j]
	})
	return options[0]
}

// scoreIdentifier ranks how informative an identifier is: digits count for
// it, mask characters and letters against it, and an all-digit value gets
// a bonus over any masked rendering.
func scoreIdentifier(value string) int {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return -9999
	}
	digits := len(digitPattern.FindAllString(normalized, -1))
	masks := len(maskCharPattern.FindAllString(normalized, -1))
	letters := len(letterPattern.FindAllString(normalized, -1))

	score := digits*4 - masks*3 - letters*2
	if len(normalized) < 20 {
		score += len(normalized)
	} else {
		score += 20
	}
	if onlyDigits.MatchString(normalized) {
		score += 20
	}
	return score
}

func pickMajorityKey(presence map[string]int) string {
	selected := ""
	selectedCount := -1
	for key, count := range presence {
		if count > selectedCount {
			selected = key
			selectedCount = count
		}
	}
	return selected
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// maskAccountNumber renders an identifier as its trailing four digits when
// it is long enough to warrant masking.
func maskAccountNumber(value string) string {
	raw := strings.TrimSpace(value)
	digits := nonDigitPattern.ReplaceAllString(raw, "")
	if len(digits) >= 5 {
		return digits[len(digits)-4:]
	}
	return raw
}
