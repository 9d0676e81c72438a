package handlers

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/cozyshare/backend/internal/auth"
	"example.com/cozyshare/backend/internal/models"
	"example.com/cozyshare/backend/internal/repository"
)

var errNoHousehold = errors.New("user has no household")

// currentMember resolves the authenticated user and requires a household
// affiliation. Household-scoped handlers call this first.
func currentMember(c echo.Context, users *repository.UserRepository) (models.User, string, error) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return models.User{}, "", repository.ErrNotFound
	}

	user, err := users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return models.User{}, "", err
	}

	if user.HouseholdCode == nil || *user.HouseholdCode == "" {
		return user, "", errNoHousehold
	}

	return user, *user.HouseholdCode, nil
}

// memberName is the identity recorded on household records: display name
// when set, email otherwise.
func memberName(user models.User) string {
	if name := strings.TrimSpace(user.Name); name != "" {
		return name
	}
	return user.Email
}

func memberError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errNoHousehold):
		return badRequest(c, "user has no household")
	case errors.Is(err, repository.ErrNotFound):
		return unauthorized(c)
	default:
		return serverError(c)
	}
}
