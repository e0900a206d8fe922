package parser

import (
	"math"
	"testing"

	"github.com/insightdelivered/phantom-ledger/internal/models"
)

func TestParseAmountToken(t *testing.T) {
	tests := []struct {
		token string
		force forcedSign
		want  float64
	}{
		{"1,234.56", signNatural, 1234.56},
		{"$15.25", signNatural, 15.25},
		{"(45.00)", signNatural, -45.00},
		{"-12.00", signNatural, -12.00},
		{"100.00 DR", signNatural, -100.00},
		{"99.00 CR", signNatural, 99.00},
		{"55.00", signDebit, -55.00},
		{"(55.00)", signCredit, 55.00},
	}
	for _, tt := range tests {
		got := parseAmountToken(tt.token, tt.force)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parseAmountToken(%q, %v) = %v, want %v", tt.token, tt.force, got, tt.want)
		}
	}

	if !math.IsNaN(parseAmountToken("not money", signNatural)) {
		t.Error("expected NaN for non-numeric token")
	}
	if !math.IsNaN(parseAmountToken("", signNatural)) {
		t.Error("expected NaN for empty token")
	}
}

func TestTokenHasExplicitSign(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"45.00", false},
		{"(45.00)", true},
		{"45.00 CR", true},
		{"45.00 DR", true},
		{"-45.00", true},
	}
	for _, tt := range tests {
		if got := tokenHasExplicitSign(tt.token); got != tt.want {
			t.Errorf("tokenHasExplicitSign(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestExtractAmountTokenPaths(t *testing.T) {
	tests := []struct {
		name      string
		remainder string
		hints     HeaderHints
		want      float64
		explicit  bool
	}{
		{
			name:      "plain last token",
			remainder: "OFFICE RENT 1,200.00",
			want:      1200.00,
		},
		{
			name:      "debit credit pair picks nonzero debit",
			remainder: "VENDOR PAYMENT 25.00 0.00",
			hints:     HeaderHints{HasDebitCredit: true},
			want:      -25.00,
			explicit:  true,
		},
		{
			name:      "debit credit pair picks nonzero credit",
			remainder: "CUSTOMER REFUND 0.00 40.00",
			hints:     HeaderHints{HasDebitCredit: true},
			want:      40.00,
			explicit:  true,
		},
		{
			name:      "balance column takes second to last",
			remainder: "UTILITY BILL 75.00 1,000.00",
			hints:     HeaderHints{HasBalance: true},
			want:      75.00,
		},
		{
			name:      "parenthesized token is explicit",
			remainder: "ADJUSTMENT (30.00)",
			want:      -30.00,
			explicit:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAmount(models.Line{Text: tt.remainder}, tt.remainder, tt.hints)
			if math.Abs(got.amount-tt.want) > 1e-9 {
				t.Errorf("amount = %v, want %v", got.amount, tt.want)
			}
			if got.explicitSign != tt.explicit {
				t.Errorf("explicitSign = %v, want %v", got.explicitSign, tt.explicit)
			}
		})
	}

	got := extractAmount(models.Line{}, "NO MONEY HERE", HeaderHints{})
	if !math.IsNaN(got.amount) {
		t.Errorf("expected NaN for remainder without amount, got %v", got.amount)
	}
}

func TestExtractAmountFromColumns(t *testing.T) {
	t.Run("debit column claims the token", func(t *testing.T) {
		line := makeLine(660,
			frag("01/15/2024", 50),
			frag("WIRE TO JOHN SMITH", 120),
			frag("500.00", 305),
		)
		hints := HeaderHints{DebitX: ptr(300), CreditX: ptr(400)}

		got, ok := extractAmountFromColumns(line, hints)
		if !ok {
			t.Fatal("expected a column match")
		}
		if got.amount != -500.00 {
			t.Errorf("amount = %v, want -500", got.amount)
		}
		if !got.explicitSign {
			t.Error("column picks must be explicit")
		}
	})

	t.Run("credit column claims the token", func(t *testing.T) {
		line := makeLine(660,
			frag("01/16/2024", 50),
			frag("REMOTE DEPOSIT", 120),
			frag("820.00", 396),
		)
		hints := HeaderHints{DebitX: ptr(300), CreditX: ptr(400)}

		got, ok := extractAmountFromColumns(line, hints)
		if !ok {
			t.Fatal("expected a column match")
		}
		if got.amount != 820.00 {
			t.Errorf("amount = %v, want 820", got.amount)
		}
	})

	t.Run("near-equal tie defers to token extraction", func(t *testing.T) {
		line := makeLine(660,
			frag("01/17/2024", 50),
			frag("AMBIGUOUS ROW", 120),
			frag("50.00", 350),
		)
		hints := HeaderHints{DebitX: ptr(346), CreditX: ptr(354)}

		if _, ok := extractAmountFromColumns(line, hints); ok {
			t.Error("ambiguous same-fragment tie should not resolve by column")
		}
	})

	t.Run("amount column with natural sign", func(t *testing.T) {
		line := makeLine(660,
			frag("01/18/2024", 50),
			frag("MISC ITEM", 120),
			frag("12.00", 310),
		)
		hints := HeaderHints{AmountX: ptr(300)}

		got, ok := extractAmountFromColumns(line, hints)
		if !ok {
			t.Fatal("expected a column match")
		}
		if got.amount != 12.00 {
			t.Errorf("amount = %v, want 12", got.amount)
		}
		if got.explicitSign {
			t.Error("unmarked token from the amount column is not explicit")
		}
	})

	t.Run("no amount fragment", func(t *testing.T) {
		line := makeLine(660, frag("JUST WORDS", 120))
		if _, ok := extractAmountFromColumns(line, HeaderHints{AmountX: ptr(300)}); ok {
			t.Error("expected no match without amount fragments")
		}
	})
}
