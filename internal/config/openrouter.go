package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v10"
)

type OpenRouterConfig struct {
	APIKey  string `env:"OPENROUTER_API_KEY" validate:"required"`
	BaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1" validate:"required,url"`
	Model   string `env:"OPENROUTER_MODEL" envDefault:"google/gemini-2.5-flash" validate:"required"`
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterErr    error
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() (*OpenRouterConfig, error) {
	openRouterOnce.Do(func() {
		openRouterConfig, openRouterErr = ParseOpenRouterConfig()
	})
	return openRouterConfig, openRouterErr
}

func ParseOpenRouterConfig() (*OpenRouterConfig, error) {
	cfg := &OpenRouterConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse openrouter config: %w", err)
	}
	return cfg, nil
}
