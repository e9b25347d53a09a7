package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nlecomte/filegate/internal/safepath"
	"github.com/nlecomte/filegate/internal/service"
)

type FileHandler struct {
	Files *service.FileService
}

func (h *FileHandler) Download(c echo.Context) error {
	ctx := c.Request().Context()

	data, err := h.Files.Fetch(ctx, c.QueryParam("name"))
	if err != nil {
		switch {
		case errors.Is(err, safepath.ErrInvalidName):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid file name")
		case errors.Is(err, safepath.ErrOutsideRoot):
			return echo.NewHTTPError(http.StatusForbidden, "Access denied")
		case errors.Is(err, safepath.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "File not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	// Fixed content type: the bytes are user-reachable, so no sniffing.
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, data)
}
