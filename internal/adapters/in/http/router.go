package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"tailoring/internal/generated/servers"
	"tailoring/internal/pkg/metrics"

	_ "tailoring/internal/generated/docs" // registers the swagger document

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const APIBaseURL = "/api/v1"

// HealthCheck is a dependency /health reports on.
type HealthCheck struct {
	Name    string
	Healthy func() bool
}

// NewRouter builds the echo instance with the API under /api/v1 and, for existing
// clients, under the root as well. /health answers 503 while any check fails.
func NewRouter(server servers.ServerInterface, logger *slog.Logger, checks ...HealthCheck) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.LogAttrs(c.Request().Context(), slog.LevelDebug, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(countRequests)

	e.GET("/health", health(checks))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlersWithBaseURL(e, server, APIBaseURL)
	servers.RegisterHandlers(e, server)

	return e
}

func health(checks []HealthCheck) echo.HandlerFunc {
	return func(c echo.Context) error {
		for _, check := range checks {
			if !check.Healthy() {
				return c.String(http.StatusServiceUnavailable, "Unhealthy: "+check.Name)
			}
		}
		return c.String(http.StatusOK, "Healthy")
	}
}

func countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)

		code := c.Response().Status
		if err != nil {
			code = http.StatusInternalServerError
			var he *echo.HTTPError
			if errors.As(err, &he) {
				code = he.Code
			}
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()

		return err
	}
}
