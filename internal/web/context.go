package web

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const loggerKey = "appLogger"

type AppContext struct {
	echo.Context
	AppLogger *zap.Logger
}

// CreateAppContext hands every handler a logger tagged with the request id.
func CreateAppContext(
	logger *zap.Logger,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestLogger := logger.With(zap.String("requestid", c.Response().Header().Get(echo.HeaderXRequestID)))
			c.Set(loggerKey, requestLogger)
			cc := &AppContext{c, requestLogger}
			return next(cc)
		}
	}
}

// RequestLogger returns the logger attached by CreateAppContext, or fallback.
func RequestLogger(c echo.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := c.Get(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return fallback
}
