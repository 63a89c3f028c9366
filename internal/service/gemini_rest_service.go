package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const geminiReplyPath = "candidates.0.content.parts.0.text"

// GeminiRESTService posts a generateContent request to a configured Gemini endpoint.
type GeminiRESTService struct {
	client      *resty.Client
	endpoint    string
	apiKey      string
	temperature float32
}

// NewGeminiRESTService creates the client. httpClient may be nil.
func NewGeminiRESTService(endpoint, apiKey string, timeout time.Duration, temperature float32, httpClient *http.Client) *GeminiRESTService {
	var client *resty.Client
	if httpClient != nil {
		client = resty.NewWithClient(httpClient)
	} else {
		client = resty.New()
	}
	client.SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &GeminiRESTService{
		client:      client,
		endpoint:    endpoint,
		apiKey:      apiKey,
		temperature: temperature,
	}
}

func (s *GeminiRESTService) Name() string { return "gemini" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      float32 `json:"temperature"`
	ResponseMIMEType string  `json:"responseMimeType"`
}

type geminiRequest struct {
	SystemInstruction geminiContent          `json:"systemInstruction"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

func (s *GeminiRESTService) Generate(ctx context.Context, prompt Prompt) (string, error) {
	body := geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: prompt.System}}},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt.User}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      s.temperature,
			ResponseMIMEType: "application/json",
		},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", s.apiKey).
		SetBody(body).
		Post(s.endpoint)
	if err != nil {
		return "", unavailable("gemini request: %v", err)
	}
	if !isSuccessStatus(resp.StatusCode()) {
		return "", unavailable("gemini status %d: %s", resp.StatusCode(), gjson.GetBytes(resp.Body(), "error.message").String())
	}

	text := gjson.GetBytes(resp.Body(), geminiReplyPath)
	if text.Type != gjson.String || strings.TrimSpace(text.Str) == "" {
		return "", ErrAIEmptyResponse
	}
	return text.Str, nil
}
