package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v10"
)

const (
	ExtractorFitz   = "fitz"
	ExtractorNative = "native"
)

type ExtractorConfig struct {
	Kind string `env:"PDF_EXTRACTOR" envDefault:"fitz" validate:"oneof=fitz native"`
	// OCR kicks in for scanned PDFs without a text layer (fitz only)
	OCREnabled   bool   `env:"OCR_ENABLED" envDefault:"false"`
	OCRLanguage  string `env:"OCR_LANGUAGE" envDefault:"eng"`
	TesseractBin string `env:"TESSERACT_BIN" envDefault:"tesseract"`
}

var (
	extractorConfig *ExtractorConfig
	extractorErr    error
	extractorOnce   sync.Once
)

func LoadExtractorConfig() (*ExtractorConfig, error) {
	extractorOnce.Do(func() {
		extractorConfig, extractorErr = ParseExtractorConfig()
	})
	return extractorConfig, extractorErr
}

func ParseExtractorConfig() (*ExtractorConfig, error) {
	cfg := &ExtractorConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse extractor config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid extractor config: %w", err)
	}
	return cfg, nil
}
