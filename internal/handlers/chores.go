package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/cozyshare/backend/internal/chores"
	"example.com/cozyshare/backend/internal/models"
	"example.com/cozyshare/backend/internal/notifications"
	"example.com/cozyshare/backend/internal/repository"
)

type ChoreHandler struct {
	Chores *repository.ChoreRepository
	Users  *repository.UserRepository
	Hub    *notifications.Hub
}

// NewChoreHandler creates the chore handler.
func NewChoreHandler(choreRepo *repository.ChoreRepository, users *repository.UserRepository, hub *notifications.Hub) *ChoreHandler {
	return &ChoreHandler{Chores: choreRepo, Users: users, Hub: hub}
}

type CreateChoreRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	AssignedTo  string `json:"assignedTo" validate:"omitempty,max=100"`
	DueDate     string `json:"dueDate" validate:"required"`
	Frequency   string `json:"frequency" validate:"omitempty,oneof=once daily weekly monthly"`
}

// List returns the caller's household chores, soonest due first.
func (h *ChoreHandler) List(c echo.Context) error {
	_, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	list, err := h.Chores.ListByHousehold(c.Request().Context(), householdCode)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, list)
}

// Create adds a chore to the caller's household.
func (h *ChoreHandler) Create(c echo.Context) error {
	user, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	var req CreateChoreRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	dueDate, err := chores.ParseDueDate(req.DueDate)
	if err != nil {
		return badRequest(c, "invalid due date")
	}

	frequency := models.Frequency(req.Frequency)
	if frequency == "" {
		frequency = models.FrequencyOnce
	}

	chore := models.Chore{
		HouseholdCode: householdCode,
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		CreatedBy:     memberName(user),
		AssignedTo:    strings.TrimSpace(req.AssignedTo),
		DueDate:       dueDate,
		Frequency:     frequency,
	}

	created, err := h.Chores.Create(c.Request().Context(), chore)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, created)
}

// Toggle records a completion attempt by the caller. One-time chores flip
// their completed flag; recurring chores roll their due date forward.
func (h *ChoreHandler) Toggle(c echo.Context) error {
	user, _, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	choreID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid chore id")
	}

	chore, err := h.Chores.AttemptComplete(c.Request().Context(), choreID, memberName(user), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, chores.ErrUnauthorized):
			return forbidden(c)
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "chore not found")
		default:
			return serverError(c)
		}
	}

	if chore.Frequency.Recurring() || chore.Completed {
		h.Hub.Publish(chore.HouseholdCode, notifications.Event{
			Type: "chore_completed",
			Data: map[string]interface{}{
				"choreId":     chore.ID.String(),
				"title":       chore.Title,
				"completedBy": memberName(user),
			},
		})
	}

	return c.JSON(http.StatusOK, chore)
}

// Delete removes a chore.
func (h *ChoreHandler) Delete(c echo.Context) error {
	if _, _, err := currentMember(c, h.Users); err != nil {
		return memberError(c, err)
	}

	choreID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid chore id")
	}

	if err := h.Chores.Delete(c.Request().Context(), choreID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "chore not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
