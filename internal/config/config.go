package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// Coach LLM
	LLMProvider  string // "gemini" (default) or "openai"
	ChatModel    string // empty means the provider's default model
	OpenAIAPIKey string // OpenAI API key for GPT models
	GeminiAPIKey string // Google Gemini API key

	// Audio generation
	ElevenLabsAPIKey string
	ElevenLabsURL    string
	AudioStore       string // "local" or "s3"
	AudioOutputDir   string
	AudioS3Bucket    string
	AudioS3Region    string
	AudioS3Key       string // empty means the default AWS credential chain
	AudioS3Secret    string
	AudioTimeout     time.Duration
	AudioRateLimit   time.Duration // minimum spacing between vendor calls

	// Drafts
	DBType      string // "sqlite" or "postgres"
	DatabaseURL string

	// Workspaces
	SessionSecret string
	MaxWorkspaces int

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

const (
	defaultAudioTimeout   = 120 * time.Second
	defaultAudioRateLimit = 2 * time.Second
	defaultMaxWorkspaces  = 256
)

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
		ChatModel:         getEnv("CHAT_MODEL", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		ElevenLabsAPIKey:  getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsURL:     getEnv("ELEVENLABS_URL", "https://api.elevenlabs.io/v1/music"),
		AudioStore:        getEnv("AUDIO_STORE", "local"),
		AudioOutputDir:    getEnv("AUDIO_OUTPUT_DIR", "assets/audio/generated"),
		AudioS3Bucket:     getEnv("AUDIO_S3_BUCKET", ""),
		AudioS3Region:     getEnv("AUDIO_S3_REGION", "us-east-1"),
		AudioS3Key:        getEnv("AUDIO_S3_KEY", ""),
		AudioS3Secret:     getEnv("AUDIO_S3_SECRET", ""),
		AudioTimeout:      getEnvDuration("AUDIO_TIMEOUT", defaultAudioTimeout),
		AudioRateLimit:    getEnvDuration("AUDIO_RATE_LIMIT", defaultAudioRateLimit),
		DBType:            getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:       getEnv("DATABASE_URL", "drafts.db"),
		SessionSecret:     getEnv("SESSION_SECRET", "echo-dev-session-secret"),
		MaxWorkspaces:     getEnvInt("MAX_WORKSPACES", defaultMaxWorkspaces),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
