package parser

import (
	"strings"
	"testing"
)

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		lower string
		want  bool
	}{
		{"date description amount", true},
		{"date description debit credit balance", true},
		{"date memo withdrawal", true},
		{"d a t e description amount", true},
		{"date posted", false},
		{"description of charges", false},
		{"01/15/2024 wire to john smith 500.00", false},
		{"", false},
		{strings.Repeat("date description amount ", 10), false},
	}
	for _, tt := range tests {
		if got := isHeaderLine(tt.lower); got != tt.want {
			t.Errorf("isHeaderLine(%q) = %v, want %v", tt.lower, got, tt.want)
		}
	}
}

func TestInferHeaderHints(t *testing.T) {
	line := makeLine(680,
		frag("Date", 50),
		frag("Description", 120),
		frag("Debit", 300),
		frag("Credit", 360),
		frag("Balance", 420),
	)

	hints := inferHeaderHints(line)

	if !hints.HasDebitCredit {
		t.Error("expected HasDebitCredit")
	}
	if !hints.HasBalance {
		t.Error("expected HasBalance")
	}
	checkX := func(name string, got *float64, want float64) {
		t.Helper()
		if got == nil {
			t.Errorf("%s position not captured", name)
			return
		}
		if *got != want {
			t.Errorf("%s position = %v, want %v", name, *got, want)
		}
	}
	checkX("date", hints.DateX, 50)
	checkX("description", hints.DescriptionX, 120)
	checkX("debit", hints.DebitX, 300)
	checkX("credit", hints.CreditX, 360)
	checkX("balance", hints.BalanceX, 420)
}

func TestInferHeaderHintsAmountOnly(t *testing.T) {
	line := makeLine(680,
		frag("Date", 50),
		frag("Description", 120),
		frag("Amount", 300),
	)
	hints := inferHeaderHints(line)

	if hints.HasDebitCredit {
		t.Error("unexpected HasDebitCredit")
	}
	if hints.HasBalance {
		t.Error("unexpected HasBalance")
	}
	if hints.AmountX == nil || *hints.AmountX != 300 {
		t.Errorf("amount position = %v, want 300", hints.AmountX)
	}
	if hints.DebitX != nil {
		t.Error("unexpected debit position")
	}
}

func TestMergeHeaderHintsFirstWriterWins(t *testing.T) {
	base := HeaderHints{DateX: ptr(50), HasBalance: true}
	incoming := HeaderHints{DateX: ptr(99), AmountX: ptr(300), HasDebitCredit: true}

	merged := mergeHeaderHints(base, incoming)

	if *merged.DateX != 50 {
		t.Errorf("date position overwritten: %v", *merged.DateX)
	}
	if merged.AmountX == nil || *merged.AmountX != 300 {
		t.Error("new amount position not adopted")
	}
	if !merged.HasBalance || !merged.HasDebitCredit {
		t.Error("flags should OR together")
	}
}
