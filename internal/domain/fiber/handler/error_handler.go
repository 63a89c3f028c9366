package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/fadilmartias/cv-matcher/internal/response"
	"github.com/fadilmartias/cv-matcher/internal/util"
)

// ErrorHandler renders framework errors (unknown routes, oversized bodies, recovered panics)
// in the same envelope as evaluations.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		if e.Message != "" {
			message = e.Message
		}
	}

	if code >= fiber.StatusInternalServerError {
		util.LoggerFromContext(c.UserContext()).Error("request failed", slog.Any("error", err))
	}

	return c.Status(code).JSON(response.EvaluationResponse{OK: false, Message: message})
}
