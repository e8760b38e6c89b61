package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tair/fuel-control/pkg/database"
)

// Sequence backends
const (
	SequenceBackendTable = "table"
	SequenceBackendRedis = "redis"
)

// Config is the runtime configuration of the fuel service and its CLI.
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	HTTPPort       string
	RequestTimeout time.Duration

	Database database.Config

	KafkaBrokers []string
	KafkaGroupID string

	RedisAddr     string
	RedisPassword string

	SequenceBackend string
	SequencePrefix  string
	SequencePadding int

	FuelCategory   string
	JWTSecret      string
	JaegerEndpoint string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// take precedence over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "fuel-service"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPPort:       getEnv("HTTP_PORT", "8085"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "fueldb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaGroupID:    getEnv("KAFKA_GROUP_ID", "fuel-service"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		SequenceBackend: strings.ToLower(getEnv("SEQUENCE_BACKEND", SequenceBackendTable)),
		SequencePrefix:  getEnv("SEQUENCE_PREFIX", "RFL/"),
		SequencePadding: getEnvInt("SEQUENCE_PADDING", 5),
		FuelCategory:    getEnv("FUEL_CATEGORY", "Fuel"),
		JWTSecret:       getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JaegerEndpoint:  getEnv("JAEGER_ENDPOINT", ""),
	}
}

// IsDevelopment reports whether the service runs in the development environment.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
