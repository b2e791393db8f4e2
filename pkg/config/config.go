package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	AIService AIServiceConfig
	Directory DirectoryConfig
	Import    ImportConfig
	OTEL      OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host        string
	Port        int
	Environment string
	BearerToken string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AIServiceConfig holds AI analysis service configuration
type AIServiceConfig struct {
	BaseURL         string
	APIKey          string
	TimeoutSeconds  int
	CacheTTLSeconds int
	RateLimitRPM    int
	RateLimitBurst  int
}

// DirectoryConfig holds employee directory configuration
type DirectoryConfig struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

// ImportConfig holds spreadsheet import limits
type ImportConfig struct {
	MaxUploadBytes int64
	MaxWarnings    int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			Environment: getEnv("APP_ENV", "development"),
			BearerToken: getEnv("API_BEARER_TOKEN", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		AIService: AIServiceConfig{
			BaseURL:         getEnv("AI_SERVICE_URL", ""),
			APIKey:          getEnv("AI_SERVICE_API_KEY", ""),
			TimeoutSeconds:  getEnvAsInt("AI_SERVICE_TIMEOUT_SECONDS", 30),
			CacheTTLSeconds: getEnvAsInt("AI_RESPONSE_CACHE_TTL_SECONDS", 300),
			RateLimitRPM:    getEnvAsInt("AI_SERVICE_RATE_LIMIT_RPM", 60),
			RateLimitBurst:  getEnvAsInt("AI_SERVICE_RATE_LIMIT_BURST", 5),
		},
		Directory: DirectoryConfig{
			BaseURL:        getEnv("DIRECTORY_URL", ""),
			APIKey:         getEnv("DIRECTORY_API_KEY", ""),
			TimeoutSeconds: getEnvAsInt("DIRECTORY_TIMEOUT_SECONDS", 10),
		},
		Import: ImportConfig{
			MaxUploadBytes: int64(getEnvAsInt("IMPORT_MAX_UPLOAD_BYTES", 10*1024*1024)),
			MaxWarnings:    getEnvAsInt("IMPORT_MAX_WARNINGS", 10),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "wellness-backend"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
