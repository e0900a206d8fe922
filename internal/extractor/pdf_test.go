package extractor

import (
	"errors"
	"testing"

	"github.com/insightdelivered/phantom-ledger/internal/models"
)

func TestExtractEmptyInput(t *testing.T) {
	_, err := Extract(nil)
	var perr *models.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *models.ParseError, got %v", err)
	}
	if perr.Kind != models.ErrEmptyFile {
		t.Errorf("kind = %q, want %q", perr.Kind, models.ErrEmptyFile)
	}
}

func TestExtractGarbageInput(t *testing.T) {
	_, err := Extract([]byte("not a pdf at all"))
	var perr *models.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *models.ParseError, got %v", err)
	}
	if perr.Kind != models.ErrOpenFailed {
		t.Errorf("kind = %q, want %q", perr.Kind, models.ErrOpenFailed)
	}
}

func TestIsPasswordError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"malformed PDF: encrypted, password required", true},
		{"file is Encrypted", true},
		{"unexpected EOF", false},
	}
	for _, tt := range tests {
		if got := isPasswordError(errors.New(tt.msg)); got != tt.want {
			t.Errorf("isPasswordError(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
