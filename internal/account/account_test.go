package account

import (
	"strings"
	"testing"

	"github.com/insightdelivered/phantom-ledger/internal/models"
)

func fileWithAccounts(name string, accounts ...string) *models.FileResult {
	return &models.FileResult{
		FileName: name,
		Metadata: models.DocumentMetadata{AccountCandidates: accounts},
	}
}

func TestFindMismatchWarnings(t *testing.T) {
	t.Run("majority outvotes single outlier", func(t *testing.T) {
		files := []*models.FileResult{
			fileWithAccounts("jan.pdf", "Account Number: 000111234"),
			fileWithAccounts("feb.pdf", "xxxx1234"),
			fileWithAccounts("mar.pdf", "000115678"),
		}
		warnings := FindMismatchWarnings(files)
		if len(warnings) != 1 {
			t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
		}
		w := warnings[0]
		if !strings.Contains(w, "Expected ****1234") {
			t.Errorf("warning missing expected account: %q", w)
		}
		if !strings.Contains(w, "mar.pdf") {
			t.Errorf("warning does not name the outlier file: %q", w)
		}
		if strings.Contains(w, "feb.pdf") {
			t.Errorf("warning should not name a majority file: %q", w)
		}
	})

	t.Run("masked and unmasked renderings agree", func(t *testing.T) {
		files := []*models.FileResult{
			fileWithAccounts("a.pdf", "****1234"),
			fileWithAccounts("b.pdf", "999991234"),
		}
		if warnings := FindMismatchWarnings(files); len(warnings) != 0 {
			t.Errorf("unexpected warnings: %v", warnings)
		}
	})

	t.Run("single file never warns", func(t *testing.T) {
		files := []*models.FileResult{fileWithAccounts("only.pdf", "1234")}
		if warnings := FindMismatchWarnings(files); len(warnings) != 0 {
			t.Errorf("unexpected warnings: %v", warnings)
		}
	})

	t.Run("files without identifiers sit out the vote", func(t *testing.T) {
		files := []*models.FileResult{
			fileWithAccounts("a.pdf", "00001234"),
			fileWithAccounts("b.pdf"),
		}
		if warnings := FindMismatchWarnings(files); len(warnings) != 0 {
			t.Errorf("unexpected warnings: %v", warnings)
		}
	})

	t.Run("transaction accounts feed the vote", func(t *testing.T) {
		withTx := &models.FileResult{
			FileName: "tx.pdf",
			Transactions: []models.Transaction{
				{Account: "xxxx5678"},
			},
		}
		files := []*models.FileResult{
			fileWithAccounts("a.pdf", "00001234"),
			fileWithAccounts("b.pdf", "00001234"),
			withTx,
		}
		warnings := FindMismatchWarnings(files)
		if len(warnings) != 1 || !strings.Contains(warnings[0], "tx.pdf") {
			t.Fatalf("expected one warning naming tx.pdf, got %v", warnings)
		}
	})
}

func TestDeriveMatchKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Account Number: 000111234", "LAST4:1234"},
		{"xxxx1234", "LAST4:1234"},
		{"AB-12", "AB12"},
		{"----", ""},
	}
	for _, tt := range tests {
		if got := deriveMatchKey(tt.in); got != tt.want {
			t.Errorf("deriveMatchKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScoreIdentifierPrefersUnmasked(t *testing.T) {
	if scoreIdentifier("000111234") <= scoreIdentifier("xxxx1234") {
		t.Error("all-digit identifier should outscore masked rendering")
	}
}
