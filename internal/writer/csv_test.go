package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/insightdelivered/phantom-ledger/internal/models"
)

func TestCSVWriter_Write(t *testing.T) {
	rows := []models.Row{
		{Date: "01/15/2024", Clean: "John Smith", Amount: -500.00, Original: "WIRE TO JOHN SMITH", SourceFile: "jan.pdf"},
		{Date: "01/16/2024", Clean: "ACME SUPPLY CO", Amount: 1250.75, Original: "MISC DEPOSIT PAY ID 1 ORG ID 2 NAME ACME SUPPLY CO", SourceFile: "jan.pdf"},
	}

	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Date,Name,Amount,Original Description,Source File") {
		t.Error("expected column headers")
	}
	if !strings.Contains(output, "01/15/2024") {
		t.Error("expected first row date")
	}
	if !strings.Contains(output, "-500.00") {
		t.Error("expected signed debit amount")
	}
	if !strings.Contains(output, "1250.75") {
		t.Error("expected credit amount")
	}
	if !strings.Contains(output, "jan.pdf") {
		t.Error("expected source file column")
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 1 header + 2 rows = 3
	if len(lines) != 3 {
		t.Errorf("expected 3 lines, got %d", len(lines))
	}
}

func TestCSVWriter_WriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("expected header only, got %d lines", len(lines))
	}
}

func TestCSVWriter_QuotesCommas(t *testing.T) {
	rows := []models.Row{
		{Date: "02/01/2024", Clean: "Smith, John", Amount: 10, Original: "Transfer from Smith, John", SourceFile: "feb.pdf"},
	}

	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"Smith, John"`) {
		t.Error("expected comma-bearing field to be quoted")
	}
}
