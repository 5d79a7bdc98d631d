package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"assignment-bot/internal/apperror"
	"assignment-bot/internal/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

var responseBodies = map[int]string{
	http.StatusOK:                  "Success",
	http.StatusBadRequest:          "Bad Request",
	http.StatusInternalServerError: "Internal Server Error",
}

// NewServer builds the echo instance with the middleware chain and the error
// translation every webhook route shares. missing lists required settings
// that are absent; when non-empty every request fails before reaching a
// handler.
func NewServer(logger *zap.Logger, missing []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Pre(middleware.AddTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(CreateAppContext(logger))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogRemoteIP:  true,
		LogMethod:    true,
		LogRequestID: true,
		LogLatency:   true,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/metrics")
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("remoteip", v.RemoteIP),
				zap.String("requestid", v.RequestID),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(RequireConfiguration(missing))

	return e
}

// RequireConfiguration rejects every request while required settings are
// missing.
func RequireConfiguration(missing []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(missing) > 0 && !strings.HasPrefix(c.Path(), "/metrics") {
				return apperror.MissingConfiguration(missing)
			}
			return next(c)
		}
	}
}

// Respond writes one of the fixed JSON string bodies for status.
func Respond(c echo.Context, status int) error {
	body, ok := responseBodies[status]
	if !ok {
		body = http.StatusText(status)
	}
	metrics.WebhookDeliveries.WithLabelValues(c.Path(), strconv.Itoa(status)).Inc()
	return writeJSON(c, status, body)
}

// ErrorHandler is the single place where a failure becomes a status code.
// The cause is logged; the caller only sees the generic body.
func ErrorHandler(fallback *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		logger := RequestLogger(c, fallback)

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.Code == http.StatusNotFound {
				_ = writeJSON(c, http.StatusNotFound, map[string]string{"message": "Not found!"})
				return
			}
			_ = writeJSON(c, httpErr.Code, map[string]any{"message": httpErr.Message})
			return
		}

		status := apperror.StatusCode(err)
		logger.Error("webhook failed",
			zap.String("path", c.Path()),
			zap.String("kind", string(apperror.KindOf(err))),
			zap.Int("status", status),
			zap.Error(err),
		)
		_ = Respond(c, status)
	}
}

func writeJSON(c echo.Context, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.JSONBlob(status, body)
}
