package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Topics   TopicConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	// Connection is the relational store DSN.
	Connection string
	// VectorConnection is the vector index DSN. The index is always
	// accessed over its own connection so the two stores fail
	// independently; empty means "same DSN as Connection".
	VectorConnection string
}

type AIConfig struct {
	OllamaBaseURL  string
	EmbeddingModel string
	LLMModel       string
}

type TopicConfig struct {
	VectorCleanup string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection:       getEnv("DB_CONNECTION_STRING", "host=localhost user=postgres password=postgres dbname=chat_vector port=5432 sslmode=disable"),
			VectorConnection: getEnv("VECTOR_DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMModel:       getEnv("LLM_MODEL", "llama2"),
		},
		Topics: TopicConfig{
			VectorCleanup: getEnv("VECTOR_CLEANUP_TOPIC", "VECTOR_CLEANUP"),
		},
	}
}

// VectorDSN returns the DSN the vector index connection should use.
func (c *Config) VectorDSN() string {
	if c.Database.VectorConnection != "" {
		return c.Database.VectorConnection
	}
	return c.Database.Connection
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
