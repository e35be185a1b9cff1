package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/postmessages/board-api/internal/core/domain"
)

// RequireRole enforces that the verified identity's role set contains
// the given role. Responds 403, distinct from the 401 the Auth
// middleware produces for an invalid credential.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get("roles").([]domain.Role)
			if !domain.HasRole(roles, role) {
				return echo.NewHTTPError(http.StatusForbidden, "user is not a "+strings.ToLower(string(role)))
			}
			return next(c)
		}
	}
}
