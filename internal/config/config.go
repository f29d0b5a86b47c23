package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds server settings, read from the environment
type Config struct {
	Port        string // listen port
	JWTSecret   string // token signing secret
	DatabaseURL string // postgres URL; when empty the sqlite path is used
	DBPath      string // sqlite database file

	// Logging configuration
	LogLevel   string // DEBUG, INFO, WARN, ERROR
	LogFile    string // path to log file
	LogConsole bool   // enable console logging
}

// FromEnv builds a Config from environment variables with defaults
func FromEnv() *Config {
	home, _ := os.UserHomeDir()
	dbPath := "ironplan.db"
	logPath := ""
	if home != "" {
		dbPath = filepath.Join(home, ".ironplan", "ironplan.db")
		logPath = filepath.Join(home, ".ironplan", "logs", "ironplan.log")
	}

	return &Config{
		Port:        getEnv("PORT", "5000"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBPath:      getEnv("IRONPLAN_DB", dbPath),
		LogLevel:    getEnv("IRONPLAN_LOG_LEVEL", "INFO"),
		LogFile:     getEnv("IRONPLAN_LOG_FILE", logPath),
		LogConsole:  getEnv("IRONPLAN_LOG_CONSOLE", "false") == "true",
	}
}

// Validate checks that required settings are present
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	return nil
}

// StoreDSN returns the store driver and DSN selected by the config.
// DATABASE_URL picks postgres; otherwise the local sqlite file is used.
func (c *Config) StoreDSN() (driver, dsn string) {
	if c.DatabaseURL != "" {
		return "postgres", c.DatabaseURL
	}
	return "sqlite", c.DBPath
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
