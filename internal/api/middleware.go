package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/ougirez/econdash/internal/pkg/logger"
)

// RequestIDMiddleware reuses the caller's X-Request-ID or mints one, echoes
// it back and tags every log line of the request with it.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		id := req.Header.Get(constants.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(constants.HeaderRequestID, id)

		ctx := logger.WithFields(req.Context(), "request_id", id)
		c.SetRequest(req.WithContext(ctx))

		return next(c)
	}
}

func AccessLogMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Infof(c.Request().Context(), "%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	})
}
