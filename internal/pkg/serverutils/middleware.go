package serverutils

import (
	"errors"
	"time"

	"mailreply-be/internal/pkg/apperror"
	"mailreply-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns handler errors into ErrorBody responses.
// Server-side failures are logged with their cause, which never reaches the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, log, err)
	}
}

// ErrorHandler is the app-level fallback for errors that bypass
// ErrorHandlerMiddleware, such as panics caught by the recover middleware.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		return WriteError(ctx, log, err)
	}
}

func WriteError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	if appErr, ok := apperror.As(err); ok {
		status := appErr.HTTPStatus()
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", appErr.Message, map[string]interface{}{
				"kind":   string(appErr.Kind),
				"path":   ctx.Path(),
				"status": status,
				"error":  err,
			})
		}
		return ctx.Status(status).JSON(ErrorResponse(appErr.Message, appErr.Details...))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
	}

	log.Error("HTTP", "unhandled error", map[string]interface{}{
		"path":  ctx.Path(),
		"error": err,
	})
	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
}

// RequestLogger logs one line per request. Request bodies are never logged.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		log.Info("HTTP", "request", map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		return err
	}
}
