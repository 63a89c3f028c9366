package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fadilmartias/cv-matcher/internal/config"
)

var (
	// ErrAIUnavailable covers transport failures and non-2xx replies.
	ErrAIUnavailable = errors.New("ai service unavailable")
	// ErrAIEmptyResponse means the reply carried no text payload.
	ErrAIEmptyResponse = errors.New("ai service returned no text")
)

// AIClient sends one evaluation prompt and returns the raw reply text.
// Implementations only ever return errors wrapping ErrAIUnavailable or ErrAIEmptyResponse.
type AIClient interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
	Name() string
}

// NewAIClient builds the client for the configured provider.
func NewAIClient(ctx context.Context, ai *config.AIConfig, gemini *config.GeminiConfig, openRouter *config.OpenRouterConfig) (AIClient, error) {
	switch ai.Provider {
	case config.ProviderGemini:
		return NewGeminiRESTService(gemini.APIURL, gemini.APIKey, ai.Timeout, ai.Temperature, nil), nil
	case config.ProviderGeminiSDK:
		return NewGeminiService(ctx, gemini, ai.Timeout, ai.Temperature, nil)
	case config.ProviderOpenRouter:
		return NewOpenRouterService(openRouter, ai.Timeout, ai.Temperature, nil), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", ai.Provider)
	}
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAIUnavailable, fmt.Sprintf(format, args...))
}

func isSuccessStatus(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
