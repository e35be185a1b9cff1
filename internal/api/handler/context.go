package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postmessages/board-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware
// and performs a fast-fail check before any service call: mail must be
// non-empty (presence proves the middleware ran and the credential
// carries an identity usable as authormail).
func ctxClaims(c echo.Context) (mail string, roles []domain.Role, err error) {
	mail, _ = c.Get("mail").(string)
	if mail == "" {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roles, _ = c.Get("roles").([]domain.Role)
	return mail, roles, nil
}
