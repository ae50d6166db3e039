package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration for integration tests.
//
// TEST_DB_DRIVER selects the engine (sqlite3 by default). For sqlite3, TEST_DB_PATH is used when set,
// otherwise the Path stays empty and tests pick a temporary file. For mysql, missing TEST_DB_* values
// return a Config with empty fields so tests can fall back to a default DSN.
func LoadTestConfig() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	_ = godotenv.Load("./../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Database.Driver = os.Getenv("TEST_DB_DRIVER")
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverSQLite
	}

	if cfg.Database.Driver == DriverSQLite {
		cfg.Database.Path = os.Getenv("TEST_DB_PATH")
		return cfg, nil
	}

	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		return cfg, nil
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("TEST_DB_PORT")
	if dbPortStr == "" {
		return cfg, nil
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	cfg.Database.User = os.Getenv("TEST_DB_USER")
	cfg.Database.Password = os.Getenv("TEST_DB_PASSWORD")
	cfg.Database.DBName = os.Getenv("TEST_DB_NAME")

	return cfg, nil
}
