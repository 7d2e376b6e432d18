package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=pricing port=5432 sslmode=disable"

type Config struct {
	Environment string
	LogLevel    string
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	SerpAPIKey     string
	SerpAPIURL     string
	SerpRatePerSec float64

	ExchangeRateAPIURL string
	BaseCurrency       string
	TargetCurrency     string

	GeminiAPIKey string
	GeminiAPIURL string
	GeminiModel  string

	// heuristic | ai
	PricingStrategy string

	// Empty RedisAddr keeps write locks in process.
	RedisAddr     string
	RedisPassword string
	LockTTL       time.Duration

	HTTPClientTimeout time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		HTTPPort:    getEnv("HTTP_PORT", getEnv("PORT", "8000")),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),

		SerpAPIKey:     getEnv("SERP_API_KEY", ""),
		SerpAPIURL:     getEnv("SERP_API_URL", "https://serpapi.com/search.json"),
		SerpRatePerSec: getEnvFloat("SERP_RATE_PER_SEC", 1),

		ExchangeRateAPIURL: getEnv("EXCHANGE_RATE_API_URL", "https://api.exchangerate-api.com/v4/latest"),
		BaseCurrency:       strings.ToUpper(getEnv("BASE_CURRENCY", "USD")),
		TargetCurrency:     strings.ToUpper(getEnv("TARGET_CURRENCY", "INR")),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiAPIURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-pro"),

		PricingStrategy: strings.ToLower(getEnv("PRICING_STRATEGY", "heuristic")),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		LockTTL:       getEnvDuration("LOCK_TTL", 10*time.Second),

		HTTPClientTimeout: getEnvDuration("HTTP_CLIENT_TIMEOUT", 15*time.Second),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres DSN for production")
	}
	if cfg.SerpAPIKey == "" {
		log.Println("[WARN] SERP_API_KEY is empty, product search requests will fail")
	}
	if cfg.PricingStrategy == "ai" && cfg.GeminiAPIKey == "" {
		log.Println("[WARN] PRICING_STRATEGY=ai but GEMINI_API_KEY is empty, every suggested price will be null")
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("[WARN] %s is invalid (%q), using default %v", key, v, def)
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("[WARN] %s is invalid (%q), using default %v", key, v, def)
	}
	return def
}
