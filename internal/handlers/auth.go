package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nlecomte/filegate/internal/logging"
	"github.com/nlecomte/filegate/internal/service"
	"github.com/nlecomte/filegate/internal/tokens"
)

type AuthHandler struct {
	Auth *service.AuthService
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login rejected", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password required")
	}

	res, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			return echo.NewHTTPError(http.StatusBadRequest, "Username and password required")
		case errors.Is(err, service.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   res.Token,
		"user":    res.User,
	})
}

// Me returns the identity asserted by the bearer token. The claims were put in
// the context by the auth middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := c.Get("claims").(*tokens.AccessClaims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":       claims.Subject,
		"username": claims.Username,
		"role":     claims.Role,
	})
}
