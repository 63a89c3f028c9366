package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fadilmartias/cv-matcher/internal/dto"
	"github.com/fadilmartias/cv-matcher/internal/metrics"
	"github.com/fadilmartias/cv-matcher/internal/model"
	"github.com/fadilmartias/cv-matcher/internal/response"
	"github.com/fadilmartias/cv-matcher/internal/service"
	"github.com/fadilmartias/cv-matcher/internal/util"
)

type EvaluationUsecase struct {
	extractor service.PDFExtractor
	ai        service.AIClient
	prompts   *service.PromptTemplates
}

func NewEvaluationUsecase(extractor service.PDFExtractor, ai service.AIClient, prompts *service.PromptTemplates) *EvaluationUsecase {
	return &EvaluationUsecase{extractor: extractor, ai: ai, prompts: prompts}
}

// Evaluate extracts both documents, asks the model to compare them and validates the reply.
// It never returns an error: every failure is folded into the response envelope.
func (uc *EvaluationUsecase) Evaluate(ctx context.Context, cv, jobDescription dto.UploadedDocument) response.EvaluationResponse {
	res := uc.evaluate(ctx, cv, jobDescription)
	metrics.RecordEvaluation(string(res.Kind))
	return res
}

func (uc *EvaluationUsecase) evaluate(ctx context.Context, cv, jobDescription dto.UploadedDocument) response.EvaluationResponse {
	logger := util.LoggerFromContext(ctx)

	cvText, res, ok := uc.extract(ctx, cv)
	if !ok {
		return res
	}
	jdText, res, ok := uc.extract(ctx, jobDescription)
	if !ok {
		return res
	}

	prompt, err := service.BuildPrompt(uc.prompts, cvText, jdText)
	if err != nil {
		// templates are validated at startup, so this is a programming error
		logger.Error("build prompt", slog.Any("error", err))
		return response.Failure(model.FailureServiceUnavailable, model.MessageServiceUnavailable)
	}

	started := time.Now()
	reply, err := uc.ai.Generate(ctx, prompt)
	metrics.ObserveAIRequest(uc.ai.Name(), err, started)
	if err != nil {
		if errors.Is(err, service.ErrAIEmptyResponse) {
			logger.Warn("ai reply has no text", slog.String("provider", uc.ai.Name()))
			return response.Failure(model.FailureEmptyResponse, model.MessageEmptyResponse)
		}
		logger.Error("ai request failed", slog.String("provider", uc.ai.Name()), slog.Any("error", err))
		return response.Failure(model.FailureServiceUnavailable, model.MessageServiceUnavailable)
	}

	result, err := util.ParseEvaluation(reply)
	if err != nil {
		if errors.Is(err, util.ErrIncompleteAnalysis) {
			logger.Warn("ai reply is incomplete", slog.Any("error", err))
			return response.Failure(model.FailureIncompleteAnalysis, model.MessageIncompleteAnalysis)
		}
		logger.Warn("ai reply is not json", slog.Any("error", err), slog.Int("reply_chars", len(reply)))
		return response.Failure(model.FailureMalformedJSON, model.MessageMalformedJSON)
	}

	logger.Info("evaluation completed", slog.Float64("score", result.Score))
	return response.Success(result)
}

func (uc *EvaluationUsecase) extract(ctx context.Context, doc dto.UploadedDocument) (string, response.EvaluationResponse, bool) {
	started := time.Now()
	text, err := uc.extractor.ExtractText(ctx, doc.Data)
	metrics.ObserveExtraction(doc.Field, err, started)
	if err != nil {
		util.LoggerFromContext(ctx).Warn("pdf extraction failed",
			slog.String("field", doc.Field),
			slog.String("filename", doc.Filename),
			slog.Any("error", err),
		)
		msg := fmt.Sprintf("Could not read text from the %s PDF", dto.Label(doc.Field))
		return "", response.Failure(model.FailureExtraction, msg), false
	}
	return text, response.EvaluationResponse{}, true
}
