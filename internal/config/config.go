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
	SMTP     SMTPConfig
	Ai       AIConfig
	Chat     ChatConfig
	Billing  BillingConfig
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
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret string // Shared secret of the external identity provider (HS256)
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	LLMProvider       string // "openrouter" or "ollama"
	LLMModel          string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OllamaBaseURL     string
	Temperature       float64
	MaxTokens         int
	TimeoutSeconds    int
	AppTitle          string // Sent as X-Title to OpenRouter
}

type ChatConfig struct {
	SystemPromptFile   string // Optional versioned prompt override (YAML)
	AtomicNewSession   bool   // Wrap session create + first message + title in one transaction
	RateLimitPerMinute int
	EventTopic         string
}

type BillingConfig struct {
	MidtransServerKey    string
	MidtransIsProduction bool
	FinishRedirectURL    string
	PlanCacheTTLMinutes  int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "EmotiCore"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openrouter"),
			LLMModel:          getEnv("LLM_MODEL", "deepseek/deepseek-r1-0528:free"),
			OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
			OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.6),
			MaxTokens:         getEnvAsInt("LLM_MAX_TOKENS", 2500),
			TimeoutSeconds:    getEnvAsInt("LLM_TIMEOUT_SECONDS", 120),
			AppTitle:          getEnv("LLM_APP_TITLE", "EmotiCore AI Therapist"),
		},
		Chat: ChatConfig{
			SystemPromptFile:   getEnv("SYSTEM_PROMPT_FILE", ""),
			AtomicNewSession:   getEnvAsBool("CHAT_ATOMIC_NEW_SESSION", false),
			RateLimitPerMinute: getEnvAsInt("CHAT_RATE_LIMIT_PER_MINUTE", 30),
			EventTopic:         getEnv("CHAT_EVENT_TOPIC", "chat.turn.completed"),
		},
		Billing: BillingConfig{
			MidtransServerKey:    getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransIsProduction: getEnvAsBool("MIDTRANS_IS_PRODUCTION", false),
			FinishRedirectURL:    getEnv("BILLING_FINISH_URL", "http://localhost:5173/success"),
			PlanCacheTTLMinutes:  getEnvAsInt("PLAN_CACHE_TTL_MINUTES", 10),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
