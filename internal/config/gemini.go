package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v10"
)

type GeminiConfig struct {
	// full generateContent URL, e.g. https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent
	APIURL string `env:"GEMINI_API_URL" validate:"required,url"`
	APIKey string `env:"GEMINI_API_KEY" validate:"required"`
	// only used by the SDK provider
	Model   string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	BaseURL string `env:"GEMINI_BASE_URL"`
}

var (
	geminiConfig *GeminiConfig
	geminiErr    error
	geminiOnce   sync.Once
)

func LoadGeminiConfig() (*GeminiConfig, error) {
	geminiOnce.Do(func() {
		geminiConfig, geminiErr = ParseGeminiConfig()
	})
	return geminiConfig, geminiErr
}

func ParseGeminiConfig() (*GeminiConfig, error) {
	cfg := &GeminiConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse gemini config: %w", err)
	}
	return cfg, nil
}
