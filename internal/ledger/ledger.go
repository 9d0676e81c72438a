// Package ledger implements expense recording with equal-split computation
// and settlement bookkeeping for a household.
package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"example.com/cozyshare/backend/internal/models"
)

// ErrValidation means a required ledger field is missing or malformed.
var ErrValidation = errors.New("invalid ledger input")

// DefaultExpenseType is used when the caller omits the expense type. Any
// other caller-supplied value is stored verbatim.
const DefaultExpenseType = "one-time"

// ExpenseInput carries the caller-supplied fields of a new expense. The
// per-person share is always derived here and never accepted from callers.
type ExpenseInput struct {
	HouseholdCode string
	Title         string
	Amount        decimal.Decimal
	PaidBy        string
	SplitWith     []string
	Type          string
	PurchaseDate  time.Time
	DueDate       *time.Time
	Notes         string
}

// NewExpense validates the input and computes the equal split.
//
// The per-person share is amount divided by the number of participants using
// decimal division. No remainder redistribution happens: the shares summed
// back up may differ from the amount by a rounding epsilon.
func NewExpense(in ExpenseInput, now time.Time) (models.Expense, error) {
	var expense models.Expense

	if strings.TrimSpace(in.Title) == "" {
		return expense, errValidation("title is required")
	}
	if strings.TrimSpace(in.PaidBy) == "" {
		return expense, errValidation("paidBy is required")
	}
	if strings.TrimSpace(in.HouseholdCode) == "" {
		return expense, errValidation("householdCode is required")
	}
	if !in.Amount.IsPositive() {
		return expense, errValidation("amount is required")
	}
	if len(in.SplitWith) == 0 {
		return expense, errValidation("splitWith must include at least one person")
	}

	expenseType := in.Type
	if expenseType == "" {
		expenseType = DefaultExpenseType
	}

	purchaseDate := in.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = now
	}

	return models.Expense{
		HouseholdCode: in.HouseholdCode,
		Title:         in.Title,
		Amount:        in.Amount,
		PaidBy:        in.PaidBy,
		SplitWith:     in.SplitWith,
		PerPerson:     in.Amount.Div(decimal.NewFromInt(int64(len(in.SplitWith)))),
		Type:          expenseType,
		PurchaseDate:  purchaseDate,
		DueDate:       in.DueDate,
		Notes:         in.Notes,
	}, nil
}

// NewSettlement validates a debt-repayment entry. Settlements are free-form:
// from and to may be equal, and the amount is not checked against any
// computed outstanding balance.
func NewSettlement(householdCode, from, to string, amount decimal.Decimal) (models.Settlement, error) {
	var settlement models.Settlement

	if strings.TrimSpace(householdCode) == "" {
		return settlement, errValidation("householdCode is required")
	}
	if strings.TrimSpace(from) == "" {
		return settlement, errValidation("from is required")
	}
	if strings.TrimSpace(to) == "" {
		return settlement, errValidation("to is required")
	}
	if !amount.IsPositive() {
		return settlement, errValidation("amount is required")
	}

	return models.Settlement{
		HouseholdCode: householdCode,
		From:          from,
		To:            to,
		Amount:        amount,
	}, nil
}

func errValidation(message string) error {
	return &validationError{message: message}
}

type validationError struct {
	message string
}

func (e *validationError) Error() string { return e.message }

func (e *validationError) Is(target error) bool { return target == ErrValidation }
