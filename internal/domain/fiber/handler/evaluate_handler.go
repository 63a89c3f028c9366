package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/fadilmartias/cv-matcher/internal/config"
	"github.com/fadilmartias/cv-matcher/internal/metrics"
	"github.com/fadilmartias/cv-matcher/internal/model"
	"github.com/fadilmartias/cv-matcher/internal/response"
	"github.com/fadilmartias/cv-matcher/internal/usecase"
	"github.com/fadilmartias/cv-matcher/internal/util"
)

type EvaluateHandler struct {
	uc             *usecase.EvaluationUsecase
	maxUploadBytes int64
}

func NewEvaluateHandler(uc *usecase.EvaluationUsecase, upload *config.UploadConfig) *EvaluateHandler {
	maxBytes := int64(config.DefaultMaxUploadBytes)
	if upload != nil && upload.MaxUploadBytes > 0 {
		maxBytes = upload.MaxUploadBytes
	}
	return &EvaluateHandler{uc: uc, maxUploadBytes: maxBytes}
}

func (h *EvaluateHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/evaluate", h.Evaluate)
}

func (h *EvaluateHandler) Evaluate(c *fiber.Ctx) error {
	ctx := c.UserContext()

	cv, jobDescription, err := readUploads(c, h.maxUploadBytes)
	if err != nil {
		var uerr *uploadError
		if !errors.As(err, &uerr) {
			return err
		}
		metrics.RecordEvaluation(string(model.FailureUploadRejected))
		util.LoggerFromContext(ctx).Info("upload rejected",
			slog.Int("status", uerr.status),
			slog.String("reason", uerr.Error()),
		)
		return c.Status(uerr.status).JSON(response.Failure(model.FailureUploadRejected, uerr.message))
	}

	res := h.uc.Evaluate(ctx, cv, jobDescription)
	return c.Status(statusFor(res.Kind)).JSON(res)
}

func statusFor(kind model.FailureKind) int {
	switch kind {
	case model.FailureNone:
		return fiber.StatusOK
	case model.FailureUploadRejected:
		return fiber.StatusBadRequest
	case model.FailureExtraction:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadGateway
	}
}
