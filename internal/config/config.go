package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	JWTSecret    string
	KafkaBrokers []string
	KafkaTopic   string
	SwaggerHost  string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		MySQLDSN:     getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/marketplace?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		KafkaBrokers: getEnvList("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_ORDER_TOPIC", "order-events"),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvList splits a comma-separated env var; empty means unset.
func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
