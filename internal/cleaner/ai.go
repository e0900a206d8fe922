package cleaner

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.0-flash-exp"
	batchSize    = 40
	batchTimeout = 15 * time.Second
)

const systemPrompt = `You clean bank transaction descriptions. For each numbered line I send, return ONLY the clean merchant or payee name on the same numbered line.

Rules:
- Extract the person, company, or merchant name only
- Remove bank codes, reference numbers, dates, card numbers, confirmation numbers
- Remove prefixes like "FUNDS TRANSFER WIRE FROM", "MISC DEPOSIT", "DEBIT CARD PURCH", etc.
- Keep it short, just the name, nothing else
- If the input is already a clean name, return it unchanged
- If it's a fee or service charge, return a short label like "Wire Fee", "Service Fee", "Overdraft Fee"
- Never return empty lines, if unsure return the input unchanged
- Return exactly the same number of lines as the input

Example input:
1. RICA RDO EL JAU HARI ABDEL
2. INCOMING WIRE FEE
3. WMT PLUS JEANETTE M

Example output:
1. Rica Rdo El Jau Hari Abdel
2. Incoming Wire Fee
3. WMT Plus Jeanette M`

var numberedLinePattern = regexp.MustCompile(`^(\d+)\.\s*(.+)`)

// AICleaner refines descriptions with a Gemini model in numbered batches.
// The rule catalog runs first; model output replaces an entry only when the
// response line carries a matching index. Failed batches keep the rule
// output, so a missing key or network fault never loses rows.
type AICleaner struct {
	model string
	rules *RuleCleaner
	log   zerolog.Logger
}

// NewAICleaner returns an AI-backed cleaner, or nil when GEMINI_API_KEY is
// not configured. Callers treat nil as "use the rule cleaner alone".
func NewAICleaner(model string, log zerolog.Logger) *AICleaner {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return nil
	}
	if model == "" {
		model = defaultModel
	}
	return &AICleaner{model: model, rules: NewRuleCleaner(), log: log}
}

func (c *AICleaner) CleanBatch(descriptions []string) []string {
	results := c.rules.CleanBatch(descriptions)
	if len(results) == 0 {
		return results
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("genai client init failed, keeping rule output")
		return results
	}

	batches := (len(results) + batchSize - 1) / batchSize
	for b := 0; b < batches; b++ {
		offset := b * batchSize
		end := offset + batchSize
		if end > len(results) {
			end = len(results)
		}
		if err := c.cleanOne(ctx, client, results, offset, end); err != nil {
			c.log.Warn().Err(err).
				Int("batch", b+1).
				Int("batches", batches).
				Msg("ai clean batch failed")
		}
	}
	return results
}

func (c *AICleaner) cleanOne(ctx context.Context, client *genai.Client, results []string, offset, end int) error {
	var sb strings.Builder
	for i := offset; i < end; i++ {
		fmt.Fprintf(&sb, "%d. %s\n", i-offset+1, results[i])
	}

	batchCtx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0)),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}
	resp, err := client.Models.GenerateContent(batchCtx, c.model, genai.Text(sb.String()), config)
	if err != nil {
		return err
	}

	for _, line := range strings.Split(resp.Text(), "\n") {
		sm := numberedLinePattern.FindStringSubmatch(strings.TrimSpace(line))
		if sm == nil {
			continue
		}
		idx, err := strconv.Atoi(sm[1])
		if err != nil {
			continue
		}
		cleaned := strings.TrimSpace(sm[2])
		pos := offset + idx - 1
		if idx >= 1 && pos < end && cleaned != "" {
			results[pos] = cleaned
		}
	}
	return nil
}
