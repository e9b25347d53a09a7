// Package metrics holds the outcome counters for the three request flows plus
// the per-request HTTP counter. A Metrics value is injected into the services
// instead of being reached through a package-level singleton.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusSuccess  = "success"
	StatusFailed   = "failed"
	StatusDenied   = "denied"
	StatusNotFound = "not_found"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	LoginAttempts *prometheus.CounterVec
	Registrations *prometheus.CounterVec
	FileDownloads *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts",
		}, []string{"status"}),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "user_registrations_total",
			Help: "Total number of user registration attempts",
		}, []string{"status"}),
		FileDownloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "file_downloads_total",
			Help: "Total number of file download attempts",
		}, []string{"status"}),
	}
	reg.MustRegister(m.HTTPRequests, m.LoginAttempts, m.Registrations, m.FileDownloads)

	// Expose every outcome series at zero from the start.
	m.LoginAttempts.WithLabelValues(StatusSuccess)
	m.LoginAttempts.WithLabelValues(StatusFailed)
	m.Registrations.WithLabelValues(StatusSuccess)
	m.Registrations.WithLabelValues(StatusFailed)
	m.FileDownloads.WithLabelValues(StatusSuccess)
	m.FileDownloads.WithLabelValues(StatusDenied)
	m.FileDownloads.WithLabelValues(StatusNotFound)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts every finished request. It runs outside the request
// logger, which has already turned handler errors into committed statuses.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unknown"
			}
			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			m.HTTPRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			return err
		}
	}
}
