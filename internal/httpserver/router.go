package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/nlecomte/filegate/internal/handlers"
	"github.com/nlecomte/filegate/internal/metrics"
	authmw "github.com/nlecomte/filegate/internal/middleware/auth"
)

type Deps struct {
	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler
	FileHandler *handlers.FileHandler
	Metrics     *metrics.Metrics
	JWTSecret   []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))

	api := e.Group("/api")

	api.GET("/health", handlers.Health)

	api.POST("/auth/login", d.AuthHandler.Login)
	api.GET("/auth/me", d.AuthHandler.Me, authmw.RequireAuth(d.JWTSecret))

	api.POST("/users", d.UserHandler.Register)

	api.GET("/files", d.FileHandler.Download)
}
