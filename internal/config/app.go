package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/caarlos0/env/v10"
)

type AppConfig struct {
	Name     string `env:"APP_NAME" envDefault:"CV Matcher"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	Port     string `env:"APP_PORT" envDefault:":3000"`
	BaseURL  string `env:"APP_URL"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// comma separated, fed to the cors middleware as is
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin  int    `env:"RATE_LIMIT_PER_MIN" envDefault:"50"`
}

var (
	appConfig *AppConfig
	appErr    error
	appOnce   sync.Once
)

// LoadAppConfig parses the app settings once per process.
func LoadAppConfig() (*AppConfig, error) {
	appOnce.Do(func() {
		appConfig, appErr = ParseAppConfig()
	})
	return appConfig, appErr
}

func ParseAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse app config: %w", err)
	}
	return cfg, nil
}

func (c *AppConfig) IsProduction() bool { return strings.EqualFold(c.Env, "production") }

// ListenAddr accepts both "3000" and ":3000" in APP_PORT.
func (c *AppConfig) ListenAddr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
