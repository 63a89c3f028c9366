package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fadilmartias/cv-matcher/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// OpenRouterService sends the evaluation through OpenRouter's OpenAI-compatible API.
type OpenRouterService struct {
	api         *openai.Client
	model       string
	timeout     time.Duration
	temperature float32
}

// NewOpenRouterService creates the client. httpClient may be nil.
func NewOpenRouterService(cfg *config.OpenRouterConfig, timeout time.Duration, temperature float32, httpClient *http.Client) *OpenRouterService {
	openaiCfg := openai.DefaultConfig(cfg.APIKey)
	openaiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if httpClient != nil {
		openaiCfg.HTTPClient = httpClient
	}

	return &OpenRouterService{
		api:         openai.NewClientWithConfig(openaiCfg),
		model:       cfg.Model,
		timeout:     timeout,
		temperature: temperature,
	}
}

func (s *OpenRouterService) Name() string { return "openrouter" }

func (s *OpenRouterService) Generate(ctx context.Context, prompt Prompt) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		Temperature: s.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := s.api.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return "", unavailable("openrouter: %v", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrAIEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
