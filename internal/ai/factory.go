package ai

import (
	"fmt"

	"github.com/triagehq/mailtriage/internal/ai/groq"
	"github.com/triagehq/mailtriage/internal/ai/ollama"
	"github.com/triagehq/mailtriage/internal/ai/openai"
	"github.com/triagehq/mailtriage/internal/config"
	"github.com/triagehq/mailtriage/pkg/models"
)

// NewProvider constructs the appropriate chat provider based on config.
// Called once at server startup.
func NewProvider(cfg config.AIConfig) (models.ChatProvider, error) {
	switch cfg.Provider {
	case "groq":
		return groq.NewProvider(cfg.Groq), nil
	case "openai":
		return openai.NewProvider(cfg.OpenAI), nil
	case "ollama":
		return ollama.NewProvider(cfg.Ollama), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of groq, openai, ollama", cfg.Provider)
	}
}
