package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadilmartias/cv-matcher/internal/config"
)

func newTestGeminiService(t *testing.T, handler http.HandlerFunc) *GeminiService {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewGeminiService(context.Background(), &config.GeminiConfig{
		APIKey:  "secret",
		Model:   "gemini-2.5-flash",
		BaseURL: srv.URL + "/",
	}, 5*time.Second, 0.2, srv.Client())
	require.NoError(t, err)
	return svc
}

func TestNewGeminiService_RequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewGeminiService(context.Background(), &config.GeminiConfig{Model: "m"}, time.Second, 0, nil)
	require.Error(t, err)
}

func TestGeminiService_Generate_Success(t *testing.T) {
	t.Parallel()

	svc := newTestGeminiService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"score\":70}"}]}}]}`))
	})

	got, err := svc.Generate(context.Background(), testPrompt)
	require.NoError(t, err)
	assert.Equal(t, `{"score":70}`, got)
	assert.Equal(t, "gemini-sdk", svc.Name())
}

func TestGeminiService_Generate_ServerError(t *testing.T) {
	t.Parallel()

	svc := newTestGeminiService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))
	})

	_, err := svc.Generate(context.Background(), testPrompt)
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestGeminiService_Generate_NoCandidates(t *testing.T) {
	t.Parallel()

	svc := newTestGeminiService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := svc.Generate(context.Background(), testPrompt)
	assert.ErrorIs(t, err, ErrAIEmptyResponse)
}
