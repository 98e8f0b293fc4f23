package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Ai        AIConfig
	Draft     DraftConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type AIConfig struct {
	LLMProvider      string // "openai", "gemini" or "ollama"
	APIKey           string
	BaseURL          string
	TranslationModel string // used by translate and translate-to-english
	ReplyModel       string // used by generate
	Timeout          time.Duration
	TranslationCache time.Duration // 0 disables the English translation cache
}

type DraftConfig struct {
	CatalogFile    string // empty uses the bundled catalog
	BlockAddPolicy string // "toggle", "unique" or "multi"
}

type TelemetryConfig struct {
	Enabled  bool
	Endpoint string
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Ai: AIConfig{
			LLMProvider:      getEnv("LLM_PROVIDER", "openai"),
			APIKey:           firstNonEmpty(getEnv("LLM_API_KEY", ""), getEnv("OPENAI_API_KEY", "")),
			BaseURL:          getEnv("LLM_BASE_URL", ""),
			TranslationModel: getEnv("TRANSLATION_MODEL", ""),
			ReplyModel:       getEnv("REPLY_MODEL", ""),
			Timeout:          time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
			TranslationCache: time.Duration(getEnvAsInt("TRANSLATION_CACHE_TTL_SECONDS", 600)) * time.Second,
		},
		Draft: DraftConfig{
			CatalogFile:    getEnv("CATALOG_FILE", ""),
			BlockAddPolicy: getEnv("BLOCK_ADD_POLICY", "toggle"),
		},
		Telemetry: TelemetryConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
