package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/cozyshare/backend/internal/models"
	"example.com/cozyshare/backend/internal/notifications"
	"example.com/cozyshare/backend/internal/repository"
)

type GroceryHandler struct {
	Groceries *repository.GroceryRepository
	Users     *repository.UserRepository
	Hub       *notifications.Hub
}

// NewGroceryHandler creates the grocery list handler.
func NewGroceryHandler(groceries *repository.GroceryRepository, users *repository.UserRepository, hub *notifications.Hub) *GroceryHandler {
	return &GroceryHandler{Groceries: groceries, Users: users, Hub: hub}
}

type CreateGroceryRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Category string `json:"category" validate:"omitempty,max=100"`
	Quantity string `json:"quantity" validate:"omitempty,max=50"`
}

// List returns the caller's household grocery list, unpurchased items first.
func (h *GroceryHandler) List(c echo.Context) error {
	_, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	list, err := h.Groceries.ListByHousehold(c.Request().Context(), householdCode)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, list)
}

// Create adds an item to the caller's household grocery list.
func (h *GroceryHandler) Create(c echo.Context) error {
	user, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	var req CreateGroceryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	grocery := models.Grocery{
		HouseholdCode: householdCode,
		Name:          strings.TrimSpace(req.Name),
		Category:      strings.TrimSpace(req.Category),
		Quantity:      strings.TrimSpace(req.Quantity),
		AddedBy:       memberName(user),
	}

	created, err := h.Groceries.Create(c.Request().Context(), grocery)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, created)
}

// Toggle flips an item's purchased flag. The purchase transition also
// records a history entry attributed to the caller.
func (h *GroceryHandler) Toggle(c echo.Context) error {
	user, _, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	groceryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid grocery id")
	}

	grocery, err := h.Groceries.TogglePurchased(c.Request().Context(), groceryID, memberName(user))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "grocery not found")
		}
		return serverError(c)
	}

	if grocery.IsPurchased {
		h.Hub.Publish(grocery.HouseholdCode, notifications.Event{
			Type: "grocery_purchased",
			Data: map[string]interface{}{
				"groceryId":   grocery.ID.String(),
				"name":        grocery.Name,
				"purchasedBy": memberName(user),
			},
		})
	}

	return c.JSON(http.StatusOK, grocery)
}

// Delete removes an item; its purchase history goes with it.
func (h *GroceryHandler) Delete(c echo.Context) error {
	if _, _, err := currentMember(c, h.Users); err != nil {
		return memberError(c, err)
	}

	groceryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid grocery id")
	}

	if err := h.Groceries.Delete(c.Request().Context(), groceryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "grocery not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// History returns the household's purchase history, newest first.
func (h *GroceryHandler) History(c echo.Context) error {
	_, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	history, err := h.Groceries.ListHistoryByHousehold(c.Request().Context(), householdCode)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, history)
}
