package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var (
	instance *Config
	once     sync.Once
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	AppURL      string
	ApiURL      string

	// Encryption key for stored integration secrets (must be exactly 32 bytes for AES-256)
	EncryptionKey string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string

	// CORS
	CorsOrigins string
}

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		instance = &Config{
			Port:          getEnv("PORT", "8080"),
			DatabaseURL:   getEnv("DATABASE_URL", ""),
			JWTSecret:     getEnv("JWT_SECRET", ""),
			AppURL:        getEnv("APP_URL", "http://localhost:3000"),
			ApiURL:        getEnv("API_URL", "http://localhost:8080/api"),
			EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisUsername: getEnv("REDIS_USERNAME", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			CorsOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		}
	})
	return instance
}

// Get returns the loaded config instance
func Get() *Config {
	return instance
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
