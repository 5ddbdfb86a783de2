package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triagehq/mailtriage/internal/config"
)

// setEnv is a helper that sets environment variables for a test and restores them after.
func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
}

// validEnv returns the minimum set of valid environment variables.
func validEnv() map[string]string {
	return map[string]string{
		"AI_PROVIDER":  "groq",
		"GROQ_API_KEY": "gsk_test_key",
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	setEnv(t, validEnv())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "groq", cfg.AI.Provider)
	assert.Equal(t, "gsk_test_key", cfg.AI.Groq.APIKey)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.AI.Groq.BaseURL)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.AI.Groq.Model)
	assert.Equal(t, 5*time.Second, cfg.AI.InferenceTimeout)
	assert.Equal(t, 4, cfg.Triage.BatchWorkers)
	assert.Equal(t, 60, cfg.Triage.RequestsPerMin)
	assert.Equal(t, "mailtriage.ticket-outcomes", cfg.Kafka.Topic)
}

func TestLoad_CustomPort(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("MAILTRIAGE_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_CustomInferenceTimeout(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("AI_INFERENCE_TIMEOUT_SECS", "12")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, cfg.AI.InferenceTimeout)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("MAILTRIAGE_PORT", "not-a-port")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_KafkaBrokersList(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092 ,")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_RedisAndKafkaOptional(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("REDIS_URL", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoad_MissingProvider(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("AI_PROVIDER", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_PROVIDER")
}

func TestLoad_UnknownProvider(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("AI_PROVIDER", "bard")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_PROVIDER")
}

func TestLoad_GroqRequiresAPIKey(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("GROQ_API_KEY", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestLoad_OpenAIRequiresAPIKey(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_OllamaNeedsNoKey(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("AI_PROVIDER", "ollama")
	t.Setenv("GROQ_API_KEY", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434", cfg.AI.Ollama.BaseURL)
}

func TestLoad_BatchWorkersMustBePositive(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("TRIAGE_BATCH_WORKERS", "0")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRIAGE_BATCH_WORKERS")
}
