package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
	Sandbox  SandboxConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret         string
	AccessTokenExpiry int // minutes
}

type AIConfig struct {
	Provider        string // "anthropic" or "ollama"
	AnthropicKey    string
	AnthropicModel  string
	OllamaBaseURL   string
	OllamaModel     string
	MaxQuestions    int
	SystemPrompt    string
	MaxOutputTokens int
}

type SandboxConfig struct {
	Image          string
	TimeoutSeconds int
	MemoryLimitMB  int
	MaxConcurrent  int
	MaxPerUser     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret:         getEnv("JWT_SECRET", ""),
			AccessTokenExpiry: getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24),
		},
		Ai: AIConfig{
			Provider:        getEnv("LLM_PROVIDER", "anthropic"),
			AnthropicKey:    getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:     getEnv("OLLAMA_MODEL", "llama3"),
			MaxQuestions:    getEnvAsInt("MAX_QUESTIONS", 10),
			SystemPrompt:    getEnv("AI_SYSTEM_PROMPT", defaultSystemPrompt),
			MaxOutputTokens: getEnvAsInt("AI_MAX_OUTPUT_TOKENS", 1024),
		},
		Sandbox: SandboxConfig{
			Image:          getEnv("SANDBOX_IMAGE", "python:3.12-alpine"),
			TimeoutSeconds: getEnvAsInt("SANDBOX_TIMEOUT_SECONDS", 5),
			MemoryLimitMB:  getEnvAsInt("SANDBOX_MEMORY_LIMIT_MB", 50),
			MaxConcurrent:  getEnvAsInt("SANDBOX_MAX_CONCURRENT", 50),
			MaxPerUser:     getEnvAsInt("SANDBOX_MAX_PER_USER", 10),
		},
	}
}

// The assistant tutors without revealing full solutions.
const defaultSystemPrompt = "You are a world-class teaching assistant for an introductory " +
	"programming course. Guide the student from zero to hero, but never hand over the " +
	"final answer outright. Teach step by step, keep it concise, and make sure the " +
	"student actually understands."

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
