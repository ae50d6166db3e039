// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Client    ClientConfig
}

// DatabaseConfig holds database connection settings
//
// Path is used by the sqlite3 driver, the remaining fields by mysql.
type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port           int
	MaxRequestSize int64
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds per-IP rate limit settings. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int
}

// ClientConfig holds settings for the command-line client
type ClientConfig struct {
	APIURL string
	Origin string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	if err := loadDatabase(cfg); err != nil {
		return nil, err
	}

	// Server configuration
	serverPort, err := intEnv("SERVER_PORT", 3001)
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = serverPort

	maxSizeMB, err := intEnv("MAX_REQUEST_SIZE_MB", 50)
	if err != nil {
		return nil, err
	}
	if maxSizeMB <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_SIZE_MB must be positive")
	}
	cfg.Server.MaxRequestSize = int64(maxSizeMB) * 1024 * 1024

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	rate, err := intEnv("RATE_LIMIT_PER_MINUTE", 0)
	if err != nil {
		return nil, err
	}
	if rate < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	cfg.RateLimit.RequestsPerMinute = rate

	cfg.Client = LoadClient()

	return cfg, nil
}

// LoadClient reads the client settings only. It never fails.
func LoadClient() ClientConfig {
	godotenv.Load()

	client := ClientConfig{
		APIURL: os.Getenv("STUDY_API_URL"),
		Origin: os.Getenv("STUDY_ORIGIN"),
	}
	if client.APIURL == "" {
		client.APIURL = "http://localhost:3001"
	}
	client.APIURL = strings.TrimRight(client.APIURL, "/")
	return client
}

func loadDatabase(cfg *Config) error {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = DriverSQLite
	}
	cfg.Database.Driver = driver

	switch driver {
	case DriverSQLite:
		dbPath := os.Getenv("DB_PATH")
		if dbPath == "" {
			dbPath = "study.db"
		}
		cfg.Database.Path = dbPath
		return nil
	case DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", driver)
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	return nil
}

// intEnv reads an integer variable, falling back to def when unset
func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// parseOrigins splits a comma-separated origin list, defaulting to all origins
func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// DSN returns the database connection string for the configured driver
func (c *Config) DSN() string {
	if c.Database.Driver == DriverMySQL {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.DBName,
		)
	}
	if c.Database.Path == "" {
		return ""
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.Database.Path)
}
