package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Retrieval RetrievalConfig
	Limits    LimitsConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini        string
	WidgetJWTSecret     string
	OfferNormalizeTopic string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "gemini"
	LLMModel          string // e.g. "llama3", "gemini-1.5-flash"
}

type RetrievalConfig struct {
	VectorWeight        float64
	SimilarityThreshold float64
	Limit               int
	ContextKeywordsMax  int
	ContextLastTurns    int
}

type LimitsConfig struct {
	QueriesPerMinute int
	LanguageCacheTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini:        getEnv("GOOGLE_GEMINI_API_KEY", ""),
			WidgetJWTSecret:     getEnv("WIDGET_JWT_SECRET", ""),
			OfferNormalizeTopic: getEnv("OFFER_NORMALIZE_TOPIC_NAME", "OFFER_NORMALIZE"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
		},
		Retrieval: RetrievalConfig{
			VectorWeight:        getEnvAsFloat("RETRIEVAL_VECTOR_WEIGHT", 0.7),
			SimilarityThreshold: getEnvAsFloat("RETRIEVAL_SIMILARITY_THRESHOLD", 0.3),
			Limit:               getEnvAsInt("RETRIEVAL_LIMIT", 8),
			ContextKeywordsMax:  getEnvAsInt("CONTEXT_KEYWORDS_MAX", 15),
			ContextLastTurns:    getEnvAsInt("CONTEXT_LAST_TURNS", 2),
		},
		Limits: LimitsConfig{
			QueriesPerMinute: getEnvAsInt("WIDGET_QUERIES_PER_MINUTE", 20),
			LanguageCacheTTL: time.Duration(getEnvAsInt("LANGUAGE_CACHE_TTL_MINUTES", 30)) * time.Minute,
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
