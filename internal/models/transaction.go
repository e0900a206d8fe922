package models

// Fragment is the smallest positioned text unit produced by the PDF decoder.
// X/Y are in document units; Y is the text baseline.
type Fragment struct {
	Text  string
	X     float64
	Y     float64
	Width float64
}

// Line is a group of fragments sharing a baseline, joined into one string.
// Account is assigned later by the scanner when an account label carries
// forward across lines; it is the only field mutated after construction.
type Line struct {
	Page      int
	Y         float64
	Fragments []Fragment
	Text      string
	Account   string
}

// Transaction is a single normalized statement transaction.
// Amount is signed: negative for debits, positive for credits.
// DateValue is the millisecond sort key for Date.
type Transaction struct {
	Date        string  `json:"date"` // MM/DD/YYYY
	DateValue   int64   `json:"dateValue"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Account     string  `json:"account,omitempty"`
	SourceFile  string  `json:"sourceFile,omitempty"`
}

// Row is the exported normalized row: a transaction carrying its cleaned
// description alongside the original one.
type Row struct {
	Date       string  `json:"date"`
	Clean      string  `json:"clean"`
	Amount     float64 `json:"amount"`
	Original   string  `json:"original"`
	DateValue  int64   `json:"dateValue"`
	SourceFile string  `json:"sourceFile"`
}

// StatementPeriod is the detected start/end of a statement.
type StatementPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DocumentMetadata aggregates identity signals found across a whole file.
// Candidate slices are ranked most-frequent first.
type DocumentMetadata struct {
	AccountCandidates        []string         `json:"accountCandidates"`
	BusinessNumberCandidates []string         `json:"businessNumberCandidates"`
	BusinessNameCandidates   []string         `json:"businessNameCandidates"`
	StatementPeriod          *StatementPeriod `json:"statementPeriod,omitempty"`
}

// PrimaryAccount returns the highest-ranked account candidate, or "".
func (m *DocumentMetadata) PrimaryAccount() string {
	if len(m.AccountCandidates) == 0 {
		return ""
	}
	return m.AccountCandidates[0]
}

// FileResult is the outcome of parsing one statement file.
type FileResult struct {
	FileName     string
	Transactions []Transaction
	Warnings     []string
	Metadata     DocumentMetadata
}

// DateRange is the span covered by a sorted row list.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary describes the outcome of one processed batch.
type Summary struct {
	TotalFiles        int        `json:"totalFiles"`
	ProcessedFiles    int        `json:"processedFiles"`
	FailedFiles       int        `json:"failedFiles"`
	TotalTransactions int        `json:"totalTransactions"`
	DateRange         *DateRange `json:"dateRange"`
	TotalCredits      float64    `json:"totalCredits"`
	TotalDebits       float64    `json:"totalDebits"`
	Net               float64    `json:"net"`
	CreditCount       int        `json:"creditCount"`
	DebitCount        int        `json:"debitCount"`
}

// PreviewRow is the trimmed transaction shape surfaced to the client preview.
type PreviewRow struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	SourceFile  string  `json:"sourceFile"`
}
