package cleaner

// Cleaner rewrites a batch of raw transaction descriptions into clean
// payee names. Implementations must return a slice of the same length as
// the input, falling back to the original entry where cleaning fails.
type Cleaner interface {
	CleanBatch(descriptions []string) []string
}

// RuleCleaner is the deterministic implementation backed by the pattern
// catalog and alias table.
type RuleCleaner struct{}

func NewRuleCleaner() *RuleCleaner {
	return &RuleCleaner{}
}

func (c *RuleCleaner) CleanBatch(descriptions []string) []string {
	out := make([]string, len(descriptions))
	for i, d := range descriptions {
		out[i] = CleanDescription(d)
	}
	return out
}
