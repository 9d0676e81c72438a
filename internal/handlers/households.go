package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/cozyshare/backend/internal/repository"
)

type HouseholdHandler struct {
	Households *repository.HouseholdRepository
	Users      *repository.UserRepository
}

// NewHouseholdHandler creates the household handler.
func NewHouseholdHandler(households *repository.HouseholdRepository, users *repository.UserRepository) *HouseholdHandler {
	return &HouseholdHandler{Households: households, Users: users}
}

type MembersResponse struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Members returns a household's member names. The users table is the source
// of truth; the household's cached member list serves only as a fallback
// when no user rows carry the code yet.
func (h *HouseholdHandler) Members(c echo.Context) error {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		return badRequest(c, "invalid household code")
	}

	household, err := h.Households.GetByCode(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "household not found")
		}
		return serverError(c)
	}

	users, err := h.Users.ListByHouseholdCode(c.Request().Context(), code)
	if err != nil {
		return serverError(c)
	}

	members := make([]string, 0, len(users))
	for _, user := range users {
		members = append(members, memberName(user))
	}
	if len(members) == 0 {
		members = household.Members
	}

	return c.JSON(http.StatusOK, MembersResponse{
		Code:    household.Code,
		Name:    household.Name,
		Members: members,
	})
}
