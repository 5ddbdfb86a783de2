package ai_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triagehq/mailtriage/internal/ai"
	"github.com/triagehq/mailtriage/internal/config"
	"github.com/triagehq/mailtriage/pkg/models"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantName string
	}{
		{"groq", "groq", "groq"},
		{"openai", "openai", "openai"},
		{"ollama", "ollama", "ollama"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ai.NewProvider(config.AIConfig{
				Provider: tt.provider,
				Groq:     config.GroqConfig{APIKey: "k", BaseURL: "http://groq", Model: "m"},
				OpenAI:   config.OpenAIConfig{APIKey: "k", BaseURL: "http://openai", Model: "m"},
				Ollama:   config.OllamaConfig{BaseURL: "http://ollama", Model: "m"},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := ai.NewProvider(config.AIConfig{Provider: "bard"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bard")
}

func TestNewProvider_Empty(t *testing.T) {
	_, err := ai.NewProvider(config.AIConfig{})
	assert.Error(t, err)
}

// Factory-built providers must surface the shared sentinel errors so callers
// can branch on them without knowing the concrete provider.
func TestNewProvider_SentinelErrorsSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	p, err := ai.NewProvider(config.AIConfig{
		Provider: "groq",
		Groq:     config.GroqConfig{APIKey: "k", BaseURL: srv.URL, Model: "m"},
	})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), models.CompletionRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
}
