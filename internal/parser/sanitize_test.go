package parser

import (
	"math"
	"testing"
)

func TestSanitizeDescription(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		amount float64
		want   string
	}{
		{
			name:   "trailing repeated amount",
			in:     "WIRE FROM ACME 250.00",
			amount: 250.00,
			want:   "WIRE FROM ACME",
		},
		{
			name:   "trailing repeated amount on negative row",
			in:     "VENDOR PAYMENT 75.50",
			amount: -75.50,
			want:   "VENDOR PAYMENT",
		},
		{
			name:   "unrelated trailing amount kept",
			in:     "INVOICE 99.95",
			amount: 250.00,
			want:   "INVOICE 99.95",
		},
		{
			name:   "amount plus reference artifact",
			in:     "MERCHANT 45.00 123456789012",
			amount: 45.00,
			want:   "MERCHANT",
		},
		{
			name:   "checking summary trailer",
			in:     "DEPOSIT REF 12 CHECKING ACCOUNT MONTHLY SUMMARY continued",
			amount: 10.00,
			want:   "DEPOSIT REF 12",
		},
		{
			name:   "duplicated verification token collapses",
			in:     "ACCTVERIFY AB12 ACCTVERIFY AB12 PAYMENT",
			amount: 10.00,
			want:   "ACCTVERIFY AB12 PAYMENT",
		},
		{
			name:   "distinct verification tokens kept",
			in:     "ACCTVERIFY AB12 ACCTVERIFY CD34",
			amount: 10.00,
			want:   "ACCTVERIFY AB12 ACCTVERIFY CD34",
		},
		{
			name:   "stray R before on",
			in:     "PAYMENT R on 01/05",
			amount: 10.00,
			want:   "PAYMENT on 01/05",
		},
		{
			name:   "trailing stray R",
			in:     "TRANSFER REF 881 R",
			amount: 10.00,
			want:   "TRANSFER REF 881",
		},
		{
			name:   "collapses internal whitespace",
			in:     "  SPACED   OUT   MEMO ",
			amount: 10.00,
			want:   "SPACED OUT MEMO",
		},
		{
			name:   "empty stays empty",
			in:     "   ",
			amount: 10.00,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeDescription(tt.in, tt.amount); got != tt.want {
				t.Errorf("sanitizeDescription(%q, %v) = %q, want %q", tt.in, tt.amount, got, tt.want)
			}
		})
	}
}

func TestRemoveTrailingRepeatedAmountNaN(t *testing.T) {
	in := "MEMO 45.00"
	if got := removeTrailingRepeatedAmount(in, math.NaN()); got != in {
		t.Errorf("NaN amount must leave the memo alone, got %q", got)
	}
}
