package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nlecomte/filegate/internal/tokens"
)

// RequireAuth guards a route with a standard bearer-token check and stores the
// parsed claims under "claims" for the handler.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := tokens.AccessClaimsFromToken(strings.TrimPrefix(header, prefix), secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("claims", claims)
			return next(c)
		}
	}
}
