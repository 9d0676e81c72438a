package handlers

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"example.com/cozyshare/backend/internal/models"
)

// TestWriteExpensesCSV verifies the export layout for a single expense.
func TestWriteExpensesCSV(t *testing.T) {
	expense := models.Expense{
		ID:            uuid.New(),
		HouseholdCode: "ABC234",
		Title:         "groceries",
		Amount:        decimal.RequireFromString("90"),
		PaidBy:        "alice",
		SplitWith:     []string{"alice", "bob", "carol"},
		PerPerson:     decimal.RequireFromString("30"),
		Type:          "one-time",
		PurchaseDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeExpensesCSV(writer, []models.Expense{expense}); err != nil {
		t.Fatalf("writeExpensesCSV: %v", err)
	}
	writer.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	if records[0][0] != "id" || records[0][4] != "split_with" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	row := records[1]
	if row[1] != "groceries" {
		t.Fatalf("expected title groceries, got %s", row[1])
	}
	if row[4] != "alice;bob;carol" {
		t.Fatalf("expected joined split list, got %s", row[4])
	}
	if row[5] != "30" {
		t.Fatalf("expected per-person 30, got %s", row[5])
	}
	if row[8] != "" {
		t.Fatalf("expected empty due date, got %s", row[8])
	}
}

// TestWriteExpensesCSVEmpty verifies that an empty ledger still exports a
// header.
func TestWriteExpensesCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeExpensesCSV(writer, nil); err != nil {
		t.Fatalf("writeExpensesCSV: %v", err)
	}
	writer.Flush()

	lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	if lines != 1 {
		t.Fatalf("expected header only, got %d lines", lines)
	}
}
