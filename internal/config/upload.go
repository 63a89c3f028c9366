package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v10"
)

const DefaultMaxUploadBytes = 5 * 1024 * 1024

type UploadConfig struct {
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"5242880" validate:"gt=0"`
}

var (
	uploadConfig *UploadConfig
	uploadErr    error
	uploadOnce   sync.Once
)

func LoadUploadConfig() (*UploadConfig, error) {
	uploadOnce.Do(func() {
		uploadConfig, uploadErr = ParseUploadConfig()
	})
	return uploadConfig, uploadErr
}

func ParseUploadConfig() (*UploadConfig, error) {
	cfg := &UploadConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse upload config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid upload config: %w", err)
	}
	return cfg, nil
}

// BodyLimit is the request body ceiling handed to fiber: two files plus multipart overhead.
func (c *UploadConfig) BodyLimit() int {
	return int(2*c.MaxUploadBytes) + 1024*1024
}
