package api

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/billing-tracker/internal/pkg/constants"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
)

// requestIDMiddleware tags every request with an id and puts a logger carrying
// it into the request context.
func requestIDMiddleware() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: constants.HeaderRequestID,
		RequestIDHandler: func(c echo.Context, id string) {
			ctx := logger.ToContext(c.Request().Context(), constants.CtxKeyRequestID, id)
			c.SetRequest(c.Request().WithContext(ctx))
		},
	})
}

func requestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l := logger.FromContext(c.Request().Context())
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				l.Warnw("request failed", append(fields, "error", v.Error.Error())...)
				return nil
			}
			l.Infow("request", fields...)
			return nil
		},
	})
}

func echoLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error", "fatal", "panic":
		return log.ERROR
	default:
		return log.INFO
	}
}
