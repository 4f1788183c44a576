package routes

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mlanys/roomsignal/internal/app/ports"
	"github.com/mlanys/roomsignal/internal/observability"
)

const bearerPrefix = "Bearer "

var errMissingToken = errors.New("missing access token")

// authedUser resolves the request's bearer access token to a user id and
// records the identity on the request context.
func authedUser(c echo.Context, users ports.UserDirectory) (string, error) {
	token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	userID, err := users.UserFromToken(c.Request().Context(), token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unknown access token")
	}
	if err != nil {
		return "", err
	}

	req := c.Request()
	c.SetRequest(req.WithContext(observability.WithRequestIdentity(req.Context(), userID)))
	return userID, nil
}

func bearerToken(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if !strings.HasPrefix(trimmed, bearerPrefix) {
		return "", errMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(trimmed, bearerPrefix))
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}
