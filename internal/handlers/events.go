package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/cozyshare/backend/internal/notifications"
	"example.com/cozyshare/backend/internal/repository"
)

type EventHandler struct {
	Hub   *notifications.Hub
	Users *repository.UserRepository
}

// NewEventHandler creates the SSE event handler.
func NewEventHandler(hub *notifications.Hub, users *repository.UserRepository) *EventHandler {
	return &EventHandler{Hub: hub, Users: users}
}

// Stream opens an SSE stream of the caller's household events. The
// householdCode query parameter overrides the caller's own household, which
// lets a freshly joined client start streaming before its profile refresh.
func (h *EventHandler) Stream(c echo.Context) error {
	householdCode := strings.ToUpper(strings.TrimSpace(c.QueryParam("householdCode")))
	if householdCode == "" {
		_, code, err := currentMember(c, h.Users)
		if err != nil {
			return memberError(c, err)
		}
		householdCode = code
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return serverError(c)
	}

	ch, unsubscribe := h.Hub.Subscribe(householdCode)
	defer unsubscribe()

	_ = writeSSE(c, notifications.Event{Type: "connected", Data: map[string]string{"householdCode": householdCode}})
	flusher.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if err := writeSSE(c, event); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}

func writeSSE(c echo.Context, event notifications.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := c.Response().Write([]byte("event: " + event.Type + "\n")); err != nil {
		return err
	}
	if _, err := c.Response().Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
		return err
	}

	return nil
}
