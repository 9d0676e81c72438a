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

type NoticeHandler struct {
	Notices *repository.NoticeRepository
	Users   *repository.UserRepository
	Hub     *notifications.Hub
}

// NewNoticeHandler creates the notice board handler.
func NewNoticeHandler(notices *repository.NoticeRepository, users *repository.UserRepository, hub *notifications.Hub) *NoticeHandler {
	return &NoticeHandler{Notices: notices, Users: users, Hub: hub}
}

type CreateNoticeRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type UpdateNoticeRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Message *string `json:"message" validate:"omitempty,max=5000"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// List returns the caller's household notices, newest first.
func (h *NoticeHandler) List(c echo.Context) error {
	_, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	list, err := h.Notices.ListByHousehold(c.Request().Context(), householdCode)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, list)
}

// Create posts a notice to the caller's household board.
func (h *NoticeHandler) Create(c echo.Context) error {
	user, householdCode, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	var req CreateNoticeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	notice := models.Notice{
		HouseholdCode: householdCode,
		Title:         strings.TrimSpace(req.Title),
		Message:       strings.TrimSpace(req.Message),
		CreatedBy:     memberName(user),
	}

	created, err := h.Notices.Create(c.Request().Context(), notice)
	if err != nil {
		return serverError(c)
	}

	h.Hub.Publish(householdCode, notifications.Event{
		Type: "notice_posted",
		Data: map[string]interface{}{
			"noticeId": created.ID.String(),
			"title":    created.Title,
			"postedBy": created.CreatedBy,
		},
	})

	return c.JSON(http.StatusCreated, created)
}

// Update edits a notice's title and/or message.
func (h *NoticeHandler) Update(c echo.Context) error {
	if _, _, err := currentMember(c, h.Users); err != nil {
		return memberError(c, err)
	}

	noticeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid notice id")
	}

	var req UpdateNoticeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}
	if req.Title == nil && req.Message == nil {
		return badRequest(c, "nothing to update")
	}

	updated, err := h.Notices.Update(c.Request().Context(), noticeID, req.Title, req.Message)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "notice not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, updated)
}

// Like toggles the caller's membership in a notice's like set.
func (h *NoticeHandler) Like(c echo.Context) error {
	user, _, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	noticeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid notice id")
	}

	notice, err := h.Notices.ToggleLike(c.Request().Context(), noticeID, memberName(user))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "notice not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, notice)
}

// Comment appends a comment to a notice.
func (h *NoticeHandler) Comment(c echo.Context) error {
	user, _, err := currentMember(c, h.Users)
	if err != nil {
		return memberError(c, err)
	}

	noticeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid notice id")
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	notice, err := h.Notices.AddComment(c.Request().Context(), noticeID, strings.TrimSpace(req.Text), memberName(user))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "notice not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, notice)
}

// Delete removes a notice with its likes and comments.
func (h *NoticeHandler) Delete(c echo.Context) error {
	if _, _, err := currentMember(c, h.Users); err != nil {
		return memberError(c, err)
	}

	noticeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid notice id")
	}

	if err := h.Notices.Delete(c.Request().Context(), noticeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "notice not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
