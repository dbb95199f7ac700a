package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Ledger LedgerConfig
	Store  StoreConfig
	Server ServerConfig
	Oracle OracleConfig
}

// LedgerConfig holds connection settings for the business ledger database.
type LedgerConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// StoreConfig holds settings for the local extraction store.
type StoreConfig struct {
	Path string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr string
}

// OracleConfig holds settings for the content-matching LLM service.
type OracleConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Ledger: LedgerConfig{
			DSN:              getEnv("LEDGER_DB_URL", ""),
			MaxConns:         getEnvAsInt32("LEDGER_DB_MAX_CONNS", 20),
			MinConns:         getEnvAsInt32("LEDGER_DB_MIN_CONNS", 5),
			MaxConnLifetime:  getEnvAsDuration("LEDGER_DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("LEDGER_DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("LEDGER_DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("LEDGER_DB_STATEMENT_TIMEOUT", 0),
		},
		Store: StoreConfig{
			Path: getEnv("EXTRACTION_STORE_PATH", "./reconciler.db"),
		},
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		Oracle: OracleConfig{
			BaseURL:     getEnv("ORACLE_BASE_URL", "https://api.anthropic.com"),
			Model:       getEnv("ORACLE_MODEL", "claude-3-5-sonnet-20241022"),
			APIKey:      getEnv("ORACLE_API_KEY", ""),
			MaxTokens:   getEnvAsInt("ORACLE_MAX_TOKENS", 4000),
			Temperature: getEnvAsFloat32("ORACLE_TEMPERATURE", 0.1),
			Timeout:     getEnvAsDuration("ORACLE_TIMEOUT", 45*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
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

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.Ledger.DSN == "" {
		return NewAppError("CONFIG_ERROR", "LEDGER_DB_URL is required", ErrValidation)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrValidation)
	}
	if c.Store.Path == "" {
		return NewAppError("CONFIG_ERROR", "EXTRACTION_STORE_PATH is required", ErrValidation)
	}
	return nil
}
