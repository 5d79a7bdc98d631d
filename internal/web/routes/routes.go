package routes

import (
	"assignment-bot/internal/metrics"

	"github.com/labstack/echo/v4"
)

func CreateRoutes(e *echo.Echo, webhookController *WebhookController) {
	e.POST("/typeform/", webhookController.ReceiveTypeform)
	e.POST("/github/", webhookController.ReceiveGithub)
	e.GET("/metrics/", echo.WrapHandler(metrics.Handler()))
}
