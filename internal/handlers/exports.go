package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/cozyshare/backend/internal/models"
)

const timeLayout = time.RFC3339

// ExportJSON downloads the household's expense ledger as a JSON file.
func (h *ExpenseHandler) ExportJSON(c echo.Context) error {
	_, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	expenses, err := h.Expenses.ListByHousehold(c.Request().Context(), householdCode)
	if err != nil {
		return serverError(c)
	}

	filename := "expenses-" + householdCode + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, expenses)
}

// ExportCSV downloads the household's expense ledger as a CSV file.
func (h *ExpenseHandler) ExportCSV(c echo.Context) error {
	_, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	expenses, err := h.Expenses.ListByHousehold(c.Request().Context(), householdCode)
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeExpensesCSV(writer, expenses); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "expenses-" + householdCode + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeExpensesCSV(writer *csv.Writer, expenses []models.Expense) error {
	header := []string{
		"id",
		"title",
		"amount",
		"paid_by",
		"split_with",
		"per_person",
		"type",
		"purchase_date",
		"due_date",
		"notes",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, expense := range expenses {
		dueDate := ""
		if expense.DueDate != nil {
			dueDate = expense.DueDate.Format(timeLayout)
		}

		record := []string{
			expense.ID.String(),
			expense.Title,
			expense.Amount.String(),
			expense.PaidBy,
			strings.Join(expense.SplitWith, ";"),
			expense.PerPerson.String(),
			expense.Type,
			expense.PurchaseDate.Format(timeLayout),
			dueDate,
			expense.Notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}
