package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	AWS      AWSConfig
}

// AppConfig holds HTTP server configuration
type AppConfig struct {
	Port              string
	GinMode           string
	CORSAllowedOrigin string
	SchemaFile        string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AuthConfig holds session and token configuration
type AuthConfig struct {
	JWTSecret           string
	TokenTTL            time.Duration
	SecureSessionCookie bool
}

// AWSConfig holds the optional AWS integrations. Empty values disable them.
type AWSConfig struct {
	Region              string
	SESRegion           string
	SESFromEmail        string
	SNSRegion           string
	OrderEventsTopicARN string
	ReportBucket        string
}

// Load loads configuration from an optional .env file and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	region := getEnv("AWS_REGION", getEnv("AWS_DEFAULT_REGION", "eu-central-1"))

	cfg := &Config{
		App: AppConfig{
			Port:              getEnv("PORT", "5000"),
			GinMode:           os.Getenv("GIN_MODE"),
			CORSAllowedOrigin: os.Getenv("CORS_ALLOWED_ORIGIN"),
			SchemaFile:        os.Getenv("SCHEMA_FILE"),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "supplychain"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnv("DB_NAME", "inventory"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret:           os.Getenv("JWT_SECRET"),
			TokenTTL:            time.Duration(getEnvInt("JWT_EXPIRATION_MINUTES", 120)) * time.Minute,
			SecureSessionCookie: getEnvBool("SESSION_COOKIE_SECURE", false),
		},
		AWS: AWSConfig{
			Region:              region,
			SESRegion:           getEnv("SES_AWS_REGION", region),
			SESFromEmail:        os.Getenv("SES_FROM_EMAIL"),
			SNSRegion:           getEnv("SNS_AWS_REGION", region),
			OrderEventsTopicARN: os.Getenv("ORDER_EVENTS_TOPIC_ARN"),
			ReportBucket:        os.Getenv("REPORT_S3_BUCKET"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET not set; sessions and API tokens are disabled")
	}

	return cfg, nil
}

// DSN returns the pgx connection string, preferring DATABASE_URL when set
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	if c.Password == "" {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.DBName, c.SSLMode)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s value: %s, using default %d", key, v, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid %s value: %s, using default %t", key, v, defaultValue)
		return defaultValue
	}
	return b
}
