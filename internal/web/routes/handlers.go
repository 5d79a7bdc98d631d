package routes

import (
	"context"
	"io"
	"net/http"

	"assignment-bot/internal/apperror"
	"assignment-bot/internal/web"
	"assignment-bot/internal/workflow"

	"github.com/google/go-github/v68/github"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type WebhookController struct {
	Forms         *workflow.FormSubmission
	Reviews       *workflow.ReviewRequest
	WebhookSecret []byte
}

// ReceiveTypeform runs the form-submission workflow for a Typeform delivery.
func (controller *WebhookController) ReceiveTypeform(e echo.Context) error {
	cc := e.(*web.AppContext)
	logger := cc.AppLogger.With(zap.String("handler", "typeform"))

	payload, err := io.ReadAll(e.Request().Body)
	if err != nil {
		return apperror.Validation("read body: %v", err)
	}

	if err := controller.Forms.Handle(detached(e), logger, payload); err != nil {
		return err
	}
	return web.Respond(e, http.StatusOK)
}

// ReceiveGithub runs the review-request workflow for a GitHub delivery. When
// a webhook secret is configured the payload signature must match it.
func (controller *WebhookController) ReceiveGithub(e echo.Context) error {
	cc := e.(*web.AppContext)
	req := e.Request()
	eventType := github.WebHookType(req)
	logger := cc.AppLogger.With(
		zap.String("handler", "github"),
		zap.String("event", eventType),
		zap.String("delivery", github.DeliveryID(req)),
	)

	var (
		payload []byte
		err     error
	)
	if len(controller.WebhookSecret) > 0 {
		payload, err = github.ValidatePayload(req, controller.WebhookSecret)
		if err != nil {
			return apperror.Validation("webhook signature: %v", err)
		}
	} else {
		payload, err = io.ReadAll(req.Body)
		if err != nil {
			return apperror.Validation("read body: %v", err)
		}
	}

	if err := controller.Reviews.Handle(detached(e), logger, eventType, payload); err != nil {
		return err
	}
	return web.Respond(e, http.StatusOK)
}

// detached keeps request values but not cancellation: once a workflow has
// started it runs to completion even if the sender hangs up.
func detached(e echo.Context) context.Context {
	return context.WithoutCancel(e.Request().Context())
}
