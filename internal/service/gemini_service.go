package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fadilmartias/cv-matcher/internal/config"
	"google.golang.org/genai"
)

// GeminiService talks to Gemini through the official SDK.
type GeminiService struct {
	Client         *genai.Client
	Model          string
	RequestTimeout time.Duration
	Temperature    float32
}

// NewGeminiService creates the SDK client. httpClient may be nil.
func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, timeout time.Duration, temperature float32, httpClient *http.Client) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:         client,
		Model:          cfg.Model,
		RequestTimeout: timeout,
		Temperature:    temperature,
	}, nil
}

func (s *GeminiService) Name() string { return "gemini-sdk" }

func (s *GeminiService) Generate(ctx context.Context, prompt Prompt) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       genai.Ptr(s.Temperature),
		ResponseMIMEType:  "application/json",
	}

	result, err := s.Client.Models.GenerateContent(timeoutCtx, s.Model, genai.Text(prompt.User), genConfig)
	if err != nil {
		return "", unavailable("gemini sdk: %v", err)
	}

	text, ok := firstCandidateText(result)
	if !ok {
		return "", ErrAIEmptyResponse
	}
	return text, nil
}

// firstCandidateText reads candidates[0].content.parts[0].text.
func firstCandidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", false
	}
	text := content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
