package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the MailTriage server.
type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	AI     AIConfig
	Triage TriageConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

// RedisConfig is optional: an empty URL disables the classification cache
// and the HTTP rate limiter.
type RedisConfig struct {
	URL string
}

// KafkaConfig is optional: no brokers means ticket outcomes are not published.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type AIConfig struct {
	Provider         string
	InferenceTimeout time.Duration
	Groq             GroqConfig
	OpenAI           OpenAIConfig
	Ollama           OllamaConfig
}

type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type OllamaConfig struct {
	BaseURL string
	Model   string
}

type TriageConfig struct {
	PolicyFile     string // optional YAML overriding the built-in policy
	BatchWorkers   int
	RequestsPerMin int
}

var validProviders = map[string]bool{
	"groq":   true,
	"openai": true,
	"ollama": true,
}

// Load reads configuration from environment variables and returns a validated
// Config. A missing provider credential is a startup error, never a
// per-ticket one.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("MAILTRIAGE_PORT", 8080),
			Env:  envString("MAILTRIAGE_ENV", "development"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: envList("KAFKA_BROKERS"),
			Topic:   envString("KAFKA_TOPIC", "mailtriage.ticket-outcomes"),
		},
		AI: AIConfig{
			Provider:         os.Getenv("AI_PROVIDER"),
			InferenceTimeout: envDurationSecs("AI_INFERENCE_TIMEOUT_SECS", 5*time.Second),
			Groq: GroqConfig{
				APIKey:  os.Getenv("GROQ_API_KEY"),
				BaseURL: envString("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
				Model:   envString("GROQ_MODEL", "llama-3.1-8b-instant"),
			},
			OpenAI: OpenAIConfig{
				APIKey:  os.Getenv("OPENAI_API_KEY"),
				BaseURL: envString("OPENAI_BASE_URL", "https://api.openai.com/v1"),
				Model:   envString("OPENAI_MODEL", "gpt-4o-mini"),
			},
			Ollama: OllamaConfig{
				BaseURL: envString("OLLAMA_BASE_URL", "http://localhost:11434"),
				Model:   envString("OLLAMA_MODEL", "llama3"),
			},
		},
		Triage: TriageConfig{
			PolicyFile:     os.Getenv("TRIAGE_POLICY_FILE"),
			BatchWorkers:   envInt("TRIAGE_BATCH_WORKERS", 4),
			RequestsPerMin: envInt("TRIAGE_RATE_LIMIT_PER_MIN", 60),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.AI.Provider == "" {
		return fmt.Errorf("AI_PROVIDER is required")
	}
	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("AI_PROVIDER must be one of groq, openai, ollama; got %q", c.AI.Provider)
	}

	if c.AI.Provider == "groq" && c.AI.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required when AI_PROVIDER is groq")
	}
	if c.AI.Provider == "openai" && c.AI.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when AI_PROVIDER is openai")
	}

	if c.Triage.BatchWorkers < 1 {
		return fmt.Errorf("TRIAGE_BATCH_WORKERS must be at least 1; got %d", c.Triage.BatchWorkers)
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
