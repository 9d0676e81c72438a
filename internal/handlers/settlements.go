package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/cozyshare/backend/internal/ledger"
	"example.com/cozyshare/backend/internal/notifications"
	"example.com/cozyshare/backend/internal/repository"
)

type SettlementHandler struct {
	Settlements *repository.SettlementRepository
	Users       *repository.UserRepository
	Hub         *notifications.Hub
}

// NewSettlementHandler creates the settlement handler.
func NewSettlementHandler(settlements *repository.SettlementRepository, users *repository.UserRepository, hub *notifications.Hub) *SettlementHandler {
	return &SettlementHandler{Settlements: settlements, Users: users, Hub: hub}
}

type CreateSettlementRequest struct {
	From   string          `json:"from" validate:"required,max=100"`
	To     string          `json:"to" validate:"required,max=100"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// List returns the caller's household settlements, newest first.
func (h *SettlementHandler) List(c echo.Context) error {
	_, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	list, err := h.Settlements.ListByHousehold(c.Request().Context(), householdCode)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, list)
}

// Create records a repayment between two members. The entry is free-form
// and not checked against any computed balance.
func (h *SettlementHandler) Create(c echo.Context) error {
	_, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	var req CreateSettlementRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	settlement, err := ledger.NewSettlement(householdCode, strings.TrimSpace(req.From), strings.TrimSpace(req.To), req.Amount)
	if err != nil {
		if errors.Is(err, ledger.ErrValidation) {
			return badRequest(c, err.Error())
		}
		return serverError(c)
	}

	created, err := h.Settlements.Create(c.Request().Context(), settlement)
	if err != nil {
		return serverError(c)
	}

	h.Hub.Publish(householdCode, notifications.Event{
		Type: "settlement_recorded",
		Data: map[string]interface{}{
			"settlementId": created.ID.String(),
			"from":         created.From,
			"to":           created.To,
			"amount":       created.Amount.String(),
		},
	})

	return c.JSON(http.StatusCreated, created)
}

// Delete undoes a settlement entry.
func (h *SettlementHandler) Delete(c echo.Context) error {
	if _, _, err := currentMember(c, h.Users); err != nil {
		return memberError(c, err)
	}

	settlementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid settlement id")
	}

	if err := h.Settlements.Delete(c.Request().Context(), settlementID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "settlement not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
