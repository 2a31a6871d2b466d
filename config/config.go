package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                    string
	Port                   string
	DBURL                  string
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	JWTSecret              string
	JWTIssuer              string
	JWTAudience            string
	AccessExpiryMin        int
	RefreshExpiryMin       int
	CacheTTLSeconds        int
	MaxActiveRefreshTokens int
}

func Load() *Config {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	return &Config{
		Env:                    getEnv("ENV", "development"),
		Port:                   getEnv("PORT", "8080"),
		DBURL:                  mustGetEnv("DB_URL"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		JWTSecret:              mustGetEnv("JWT_SECRET"),
		JWTIssuer:              getEnv("JWT_ISSUER", "ExpenseTrackerApi"),
		JWTAudience:            getEnv("JWT_AUDIENCE", "ExpenseTrackerClient"),
		AccessExpiryMin:        getEnvAsInt("ACCESS_TOKEN_EXPIRY", 60),
		RefreshExpiryMin:       getEnvAsInt("REFRESH_TOKEN_EXPIRY", 10080),
		CacheTTLSeconds:        getEnvAsInt("CACHE_TTL", 60),
		MaxActiveRefreshTokens: getEnvAsInt("MAX_ACTIVE_REFRESH_TOKENS", 5),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
