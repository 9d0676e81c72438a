package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/cozyshare/backend/internal/ledger"
	"example.com/cozyshare/backend/internal/notifications"
	"example.com/cozyshare/backend/internal/repository"
)

type ExpenseHandler struct {
	Expenses *repository.ExpenseRepository
	Users    *repository.UserRepository
	Hub      *notifications.Hub
}

// NewExpenseHandler creates the shared-expense handler.
func NewExpenseHandler(expenses *repository.ExpenseRepository, users *repository.UserRepository, hub *notifications.Hub) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses, Users: users, Hub: hub}
}

type CreateExpenseRequest struct {
	Title        string          `json:"title" validate:"required,max=200"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	PaidBy       string          `json:"paidBy" validate:"omitempty,max=100"`
	SplitWith    []string        `json:"splitWith" validate:"required,min=1,dive,required"`
	Type         string          `json:"type" validate:"omitempty,max=50"`
	PurchaseDate string          `json:"purchaseDate" validate:"omitempty"`
	DueDate      string          `json:"dueDate" validate:"omitempty"`
	Notes        string          `json:"notes" validate:"omitempty,max=2000"`
}

// List returns the caller's household expenses, newest first.
func (h *ExpenseHandler) List(c echo.Context) error {
	_, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	list, err := h.Expenses.ListByHousehold(c.Request().Context(), householdCode)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, list)
}

// Create records an expense. The equal split is computed by the ledger
// package; the per-person share is never accepted from the client.
func (h *ExpenseHandler) Create(c echo.Context) error {
	user, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	paidBy := strings.TrimSpace(req.PaidBy)
	if paidBy == "" {
		paidBy = memberName(user)
	}

	var purchaseDate time.Time
	if req.PurchaseDate != "" {
		purchaseDate, err = parseDate(req.PurchaseDate)
		if err != nil {
			return badRequest(c, "invalid purchase date")
		}
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := parseDate(req.DueDate)
		if err != nil {
			return badRequest(c, "invalid due date")
		}
		dueDate = &parsed
	}

	expense, err := ledger.NewExpense(ledger.ExpenseInput{
		HouseholdCode: householdCode,
		Title:         req.Title,
		Amount:        req.Amount,
		PaidBy:        paidBy,
		SplitWith:     req.SplitWith,
		Type:          req.Type,
		PurchaseDate:  purchaseDate,
		DueDate:       dueDate,
		Notes:         strings.TrimSpace(req.Notes),
	}, time.Now())
	if err != nil {
		if errors.Is(err, ledger.ErrValidation) {
			return badRequest(c, err.Error())
		}
		return serverError(c)
	}

	created, err := h.Expenses.Create(c.Request().Context(), expense)
	if err != nil {
		return serverError(c)
	}

	h.Hub.Publish(householdCode, notifications.Event{
		Type: "expense_added",
		Data: map[string]interface{}{
			"expenseId": created.ID.String(),
			"title":     created.Title,
			"amount":    created.Amount.String(),
			"paidBy":    created.PaidBy,
		},
	})

	return c.JSON(http.StatusCreated, created)
}

// Delete removes an expense.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	if _, _, err := currentMember(c, h.Users); err != nil {
		return memberError(c, err)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	if err := h.Expenses.Delete(c.Request().Context(), expenseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// parseDate accepts a plain date (local midnight) or RFC 3339.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if len(value) == len("2006-01-02") {
		return time.ParseInLocation("2006-01-02", value, time.Local)
	}
	return time.Parse(time.RFC3339, value)
}
