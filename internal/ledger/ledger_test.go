package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// TestNewExpenseEqualSplit checks the equal-split arithmetic.
func TestNewExpenseEqualSplit(t *testing.T) {
	expense, err := NewExpense(ExpenseInput{
		HouseholdCode: "EXNY2S",
		Title:         "Groceries",
		Amount:        decimal.NewFromInt(90),
		PaidBy:        "a",
		SplitWith:     []string{"a", "b", "c"},
	}, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !expense.PerPerson.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected perPerson 30, got %s", expense.PerPerson)
	}
	if expense.Type != DefaultExpenseType {
		t.Fatalf("expected default type, got %s", expense.Type)
	}
}

// TestNewExpenseRoundingEpsilon checks that shares summed back up stay within
// one rounding unit of the amount for an uneven division.
func TestNewExpenseRoundingEpsilon(t *testing.T) {
	amount := decimal.NewFromInt(100)
	expense, err := NewExpense(ExpenseInput{
		HouseholdCode: "EXNY2S",
		Title:         "Dinner",
		Amount:        amount,
		PaidBy:        "a",
		SplitWith:     []string{"a", "b", "c"},
	}, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	total := expense.PerPerson.Mul(decimal.NewFromInt(3))
	epsilon := decimal.New(1, -10)
	if amount.Sub(total).Abs().GreaterThan(epsilon) {
		t.Fatalf("expected sum within epsilon of amount, got %s", total)
	}
}

// TestNewExpenseValidation checks the required-field preconditions.
func TestNewExpenseValidation(t *testing.T) {
	base := ExpenseInput{
		HouseholdCode: "EXNY2S",
		Title:         "Rent",
		Amount:        decimal.NewFromInt(1200),
		PaidBy:        "a",
		SplitWith:     []string{"a", "b"},
	}

	missingTitle := base
	missingTitle.Title = " "
	if _, err := NewExpense(missingTitle, time.Now()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing title, got %v", err)
	}

	missingPayer := base
	missingPayer.PaidBy = ""
	if _, err := NewExpense(missingPayer, time.Now()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing payer, got %v", err)
	}

	zeroAmount := base
	zeroAmount.Amount = decimal.Zero
	if _, err := NewExpense(zeroAmount, time.Now()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero amount, got %v", err)
	}

	emptySplit := base
	emptySplit.SplitWith = nil
	if _, err := NewExpense(emptySplit, time.Now()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty splitWith, got %v", err)
	}
}

// TestNewExpenseTypeVerbatim checks that a non-default type is stored as-is,
// and that the payer does not have to appear in splitWith.
func TestNewExpenseTypeVerbatim(t *testing.T) {
	expense, err := NewExpense(ExpenseInput{
		HouseholdCode: "EXNY2S",
		Title:         "Internet",
		Amount:        decimal.NewFromInt(60),
		PaidBy:        "a",
		SplitWith:     []string{"b", "c"},
		Type:          "quarterly",
	}, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if expense.Type != "quarterly" {
		t.Fatalf("expected type quarterly, got %s", expense.Type)
	}
	if !expense.PerPerson.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected perPerson 30, got %s", expense.PerPerson)
	}
}

// TestNewExpensePurchaseDateDefault checks that a missing purchase date
// falls back to the creation time.
func TestNewExpensePurchaseDateDefault(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	expense, err := NewExpense(ExpenseInput{
		HouseholdCode: "EXNY2S",
		Title:         "Soap",
		Amount:        decimal.NewFromInt(4),
		PaidBy:        "a",
		SplitWith:     []string{"a"},
	}, now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !expense.PurchaseDate.Equal(now) {
		t.Fatalf("expected purchase date %v, got %v", now, expense.PurchaseDate)
	}
}

// TestNewSettlement checks settlement validation and its free-form nature.
func TestNewSettlement(t *testing.T) {
	settlement, err := NewSettlement("EXNY2S", "b", "a", decimal.NewFromFloat(12.5))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if settlement.From != "b" || settlement.To != "a" {
		t.Fatalf("unexpected parties %s -> %s", settlement.From, settlement.To)
	}

	// Self-settlements and balance-exceeding amounts are intentionally
	// not rejected.
	if _, err := NewSettlement("EXNY2S", "a", "a", decimal.NewFromInt(1000000)); err != nil {
		t.Fatalf("expected free-form settlement to pass, got %v", err)
	}

	if _, err := NewSettlement("", "b", "a", decimal.NewFromInt(1)); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing household, got %v", err)
	}
	if _, err := NewSettlement("EXNY2S", "", "a", decimal.NewFromInt(1)); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing debtor, got %v", err)
	}
	if _, err := NewSettlement("EXNY2S", "b", "a", decimal.Zero); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero amount, got %v", err)
	}
}
