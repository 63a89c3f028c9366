package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

const (
	ProviderGemini     = "gemini"
	ProviderGeminiSDK  = "gemini-sdk"
	ProviderOpenRouter = "openrouter"
)

type AIConfig struct {
	Provider    string        `env:"AI_PROVIDER" envDefault:"gemini" validate:"oneof=gemini gemini-sdk openrouter"`
	Timeout     time.Duration `env:"AI_TIMEOUT" envDefault:"90s" validate:"gt=0"`
	Temperature float32       `env:"AI_TEMPERATURE" envDefault:"0.2" validate:"gte=0,lte=2"`
}

var (
	aiConfig *AIConfig
	aiErr    error
	aiOnce   sync.Once

	validate = validator.New()
)

func LoadAIConfig() (*AIConfig, error) {
	aiOnce.Do(func() {
		aiConfig, aiErr = ParseAIConfig()
	})
	return aiConfig, aiErr
}

func ParseAIConfig() (*AIConfig, error) {
	cfg := &AIConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse ai config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid ai config: %w", err)
	}
	return cfg, nil
}

// ValidateProvider checks that the credentials required by the selected provider are present.
// The SDK provider builds its own URL from the model name, so GEMINI_API_URL is optional there.
func (c *AIConfig) ValidateProvider(gemini *GeminiConfig, openRouter *OpenRouterConfig) error {
	var err error
	switch c.Provider {
	case ProviderGemini:
		err = validate.Struct(gemini)
	case ProviderGeminiSDK:
		err = validate.StructExcept(gemini, "APIURL")
	case ProviderOpenRouter:
		err = validate.Struct(openRouter)
	default:
		err = fmt.Errorf("unknown provider %q", c.Provider)
	}
	if err != nil {
		return fmt.Errorf("provider %s: %w", c.Provider, err)
	}
	return nil
}
