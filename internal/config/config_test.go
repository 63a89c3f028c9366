package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test, restoring them afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestParseAppConfig_Defaults(t *testing.T) {
	unsetEnv(t, "APP_PORT", "APP_ENV")

	cfg, err := ParseAppConfig()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.ListenAddr())
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
}

func TestAppConfig_ListenAddr(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "Production")

	cfg, err := ParseAppConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.True(t, cfg.IsProduction())
}

func TestParseAIConfig(t *testing.T) {
	unsetEnv(t, "AI_PROVIDER")
	t.Setenv("AI_TIMEOUT", "15s")

	cfg, err := ParseAIConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, 15*time.Second, cfg.Timeout)

	t.Setenv("AI_PROVIDER", "claude")
	_, err = ParseAIConfig()
	require.Error(t, err)
}

func TestAIConfig_ValidateProvider(t *testing.T) {
	t.Parallel()

	full := &GeminiConfig{APIURL: "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent", APIKey: "k"}
	noURL := &GeminiConfig{APIKey: "k"}
	noKey := &GeminiConfig{APIURL: full.APIURL}
	badURL := &GeminiConfig{APIURL: "not a url", APIKey: "k"}
	router := &OpenRouterConfig{APIKey: "k", BaseURL: "https://openrouter.ai/api/v1", Model: "m"}

	tests := []struct {
		name     string
		provider string
		gemini   *GeminiConfig
		router   *OpenRouterConfig
		wantErr  bool
	}{
		{name: "gemini_ok", provider: ProviderGemini, gemini: full, router: &OpenRouterConfig{}},
		{name: "gemini_missing_url", provider: ProviderGemini, gemini: noURL, router: router, wantErr: true},
		{name: "gemini_missing_key", provider: ProviderGemini, gemini: noKey, router: router, wantErr: true},
		{name: "gemini_bad_url", provider: ProviderGemini, gemini: badURL, router: router, wantErr: true},
		{name: "sdk_without_url", provider: ProviderGeminiSDK, gemini: noURL, router: router},
		{name: "sdk_missing_key", provider: ProviderGeminiSDK, gemini: noKey, router: router, wantErr: true},
		{name: "openrouter_ok", provider: ProviderOpenRouter, gemini: &GeminiConfig{}, router: router},
		{name: "openrouter_missing_key", provider: ProviderOpenRouter, gemini: full, router: &OpenRouterConfig{BaseURL: router.BaseURL, Model: "m"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &AIConfig{Provider: tt.provider, Timeout: time.Second}
			err := cfg.ValidateProvider(tt.gemini, tt.router)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseUploadConfig(t *testing.T) {
	unsetEnv(t, "MAX_UPLOAD_BYTES")

	cfg, err := ParseUploadConfig()
	require.NoError(t, err)
	assert.EqualValues(t, DefaultMaxUploadBytes, cfg.MaxUploadBytes)
	assert.Greater(t, cfg.BodyLimit(), int(2*DefaultMaxUploadBytes))

	t.Setenv("MAX_UPLOAD_BYTES", "0")
	_, err = ParseUploadConfig()
	require.Error(t, err)
}

func TestParseExtractorConfig(t *testing.T) {
	t.Setenv("PDF_EXTRACTOR", "native")

	cfg, err := ParseExtractorConfig()
	require.NoError(t, err)
	assert.Equal(t, ExtractorNative, cfg.Kind)
	assert.False(t, cfg.OCREnabled)

	t.Setenv("PDF_EXTRACTOR", "poppler")
	_, err = ParseExtractorConfig()
	require.Error(t, err)
}
