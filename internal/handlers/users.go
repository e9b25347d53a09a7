package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nlecomte/filegate/internal/logging"
	"github.com/nlecomte/filegate/internal/metrics"
	"github.com/nlecomte/filegate/internal/repo"
	"github.com/nlecomte/filegate/internal/service"
	"github.com/nlecomte/filegate/internal/validate"
)

type UserHandler struct {
	Users *service.UserService
	// Production hides persistence error detail from 500 responses.
	Production bool
}

func (h *UserHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_register")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		h.Users.Metrics.Registrations.WithLabelValues(metrics.StatusFailed).Inc()
		l.Warn("registration rejected", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	// req.Role is bound so clients can send it, and then ignored: the stored
	// role is always "user".

	email, fieldErrs := validate.Registration(req.Email, req.Password)
	if len(fieldErrs) > 0 {
		h.Users.Metrics.Registrations.WithLabelValues(metrics.StatusFailed).Inc()
		l.Warn("registration rejected", "status", 400, "violations", len(fieldErrs))
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": fieldErrs})
	}

	if _, err := h.Users.Register(ctx, email, req.Password); err != nil {
		if errors.Is(err, repo.ErrDuplicateUser) {
			// Deliberately silent about which column collided.
			return echo.NewHTTPError(http.StatusConflict, "Account already exists")
		}
		if h.Production {
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}
