package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Model gateway
	ModelAPIKey         string
	ModelBaseURL        string
	ModelID             string
	ModelConcurrentReqs int

	// Transcript egress proxy (residential, optional)
	ProxyUsername string
	ProxyPassword string

	// Sessions
	RedisURL          string // empty = in-memory store
	SessionTTLMinutes int
	SessionCapacity   int

	// Rate limiting
	APIRequestsPerMin int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "8000"),
		Env:                 getEnvOrDefault("ENV", "development"),
		ModelAPIKey:         mustGetFirstEnv("DATAWIZZ_API_KEY", "OPENAI_API_KEY"),
		ModelBaseURL:        getEnvOrDefault("MODEL_BASE_URL", "https://gw.datawizz.app/47dc517053c5e9dc/openai/v1"),
		ModelID:             getEnvOrDefault("MODEL_ID", "production"),
		ModelConcurrentReqs: getEnvAsIntOrDefault("MODEL_CONCURRENT_REQUESTS", 5),
		ProxyUsername:       getEnvOrDefault("PROXY_USERNAME", ""),
		ProxyPassword:       getEnvOrDefault("PROXY_PASSWORD", ""),
		RedisURL:            getEnvOrDefault("REDIS_URL", ""),
		SessionTTLMinutes:   getEnvAsIntOrDefault("SESSION_TTL_MINUTES", 120),
		SessionCapacity:     getEnvAsIntOrDefault("SESSION_CAPACITY", 1000),
		APIRequestsPerMin:   getEnvAsIntOrDefault("API_REQUESTS_PER_MINUTE", 30),
		FrontendURL:         getEnvOrDefault("FRONTEND_URL", "*"),
	}

	return cfg
}

// mustGetFirstEnv returns the first non-empty variable among keys; the
// first present wins even when a later one is also set.
func mustGetFirstEnv(keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	panic(fmt.Sprintf("one of the environment variables %v is required", keys))
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
