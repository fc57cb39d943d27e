package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	LLM       LLMConfig
	Embedding EmbeddingConfig
	Ingest    IngestConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret    string
	APIKeyHeader string
	APIKeys      []string
}

type LLMConfig struct {
	MistralKey       string
	MistralBaseURL   string
	AnthropicKey     string
	OllamaURL        string
	DefaultProvider  string
	DefaultModel     string
	FallbackProvider string
	MaxRetries       int
}

// EmbeddingConfig is the explicit configuration for the embedding layer.
// Credentials are passed in here rather than read ambiently by the service.
type EmbeddingConfig struct {
	APIKey          string // remote provider credential; empty means not configured
	Model           string
	BaseURL         string
	FallbackEnabled bool
	LocalBaseURL    string
	LocalModel      string
	RetryAttempts   int
}

type IngestConfig struct {
	CourtListenerToken string
	Collection         string
	BatchSize          int
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxRetries, err := getEnvInt("LLM_MAX_RETRIES", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_RETRIES: %w", err)
	}

	embedRetries, err := getEnvInt("EMBEDDING_RETRY_ATTEMPTS", 6)
	if err != nil {
		return nil, fmt.Errorf("invalid EMBEDDING_RETRY_ATTEMPTS: %w", err)
	}

	batchSize, err := getEnvInt("INGEST_BATCH_SIZE", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid INGEST_BATCH_SIZE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: maxConns,
			MinConns: minConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			APIKeyHeader: getEnv("API_KEY_HEADER", "X-API-Key"),
			APIKeys:      splitList(getEnv("API_KEYS", "")),
		},
		LLM: LLMConfig{
			MistralKey:       getEnv("MISTRAL_API_KEY", ""),
			MistralBaseURL:   getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
			AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
			OllamaURL:        getEnv("OLLAMA_URL", "http://localhost:11434"),
			DefaultProvider:  getEnv("LLM_DEFAULT_PROVIDER", "mistral"),
			DefaultModel:     getEnv("LLM_DEFAULT_MODEL", "mistral-large-latest"),
			FallbackProvider: getEnv("LLM_FALLBACK_PROVIDER", ""),
			MaxRetries:       maxRetries,
		},
		Embedding: EmbeddingConfig{
			APIKey:          getEnv("MISTRAL_API_KEY", ""),
			Model:           getEnv("EMBEDDING_MODEL", "mistral-embed"),
			BaseURL:         getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
			FallbackEnabled: getEnvBool("EMBEDDING_FALLBACK_ENABLED", true),
			LocalBaseURL:    getEnv("OLLAMA_URL", "http://localhost:11434"),
			LocalModel:      getEnv("EMBEDDING_LOCAL_MODEL", "nomic-embed-text"),
			RetryAttempts:   embedRetries,
		},
		Ingest: IngestConfig{
			CourtListenerToken: getEnv("COURTLISTENER_TOKEN", ""),
			Collection:         getEnv("DOCUMENT_COLLECTION", "legal_documents"),
			BatchSize:          batchSize,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
