// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the server and the batch tools.
type Config struct {
	// Database
	DatabaseDSN string
	AutoMigrate bool

	// HTTP
	ListenAddr     string
	UploadBase     string
	MaxUploadBytes int64

	// Recognition
	TesseractLang  string
	TessdataPrefix string

	// Matching and review
	FuzzyMatchThreshold int
	ReviewConfidence    float64

	Workers  int
	LogLevel string
}

// Load reads .env (if present) without overriding variables already set, then
// builds and validates the Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		DatabaseDSN:         os.Getenv("DB_DSN"),
		AutoMigrate:         getEnvAsBoolOrDefault("DB_AUTO_MIGRATE", true),
		ListenAddr:          getEnvOrDefault("LISTEN_ADDR", ":8081"),
		UploadBase:          getEnvOrDefault("UPLOAD_BASE", "uploads"),
		MaxUploadBytes:      getEnvAsInt64OrDefault("MAX_UPLOAD_BYTES", 5*1024*1024),
		TesseractLang:       getEnvOrDefault("TESSERACT_LANG", "eng"),
		TessdataPrefix:      os.Getenv("TESSDATA_PREFIX"),
		FuzzyMatchThreshold: getEnvAsIntOrDefault("FUZZY_MATCH_THRESHOLD", 80),
		ReviewConfidence:    getEnvAsFloatOrDefault("REVIEW_CONFIDENCE", 0.75),
		Workers:             getEnvAsIntOrDefault("WORKERS", runtime.NumCPU()),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.FuzzyMatchThreshold < 1 || c.FuzzyMatchThreshold > 100 {
		return fmt.Errorf("FUZZY_MATCH_THRESHOLD must be between 1 and 100, got %d", c.FuzzyMatchThreshold)
	}
	if c.ReviewConfidence < 0 || c.ReviewConfidence > 1 {
		return fmt.Errorf("REVIEW_CONFIDENCE must be between 0 and 1, got %v", c.ReviewConfidence)
	}
	if c.MaxUploadBytes < 1024 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be at least 1KB, got %d", c.MaxUploadBytes)
	}
	if c.Workers < 1 || c.Workers > 256 {
		return fmt.Errorf("WORKERS must be between 1 and 256, got %d", c.Workers)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// RequireDatabase reports an error when no DSN is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DB_DSN is not set. This tool requires a Postgres DSN in DB_DSN")
	}
	return nil
}

// Logger returns a text logger on stderr at the configured level.
func (c *Config) Logger() *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBoolOrDefault treats false/0/no (any case) as false and anything else set as true.
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	switch strings.ToLower(v) {
	case "false", "0", "no":
		return false
	}
	return true
}
