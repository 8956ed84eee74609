package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the server settings. Everything comes from the environment,
// optionally seeded from a .env file in the working directory.
type Config struct {
	DBPath       string
	HTTPAddr     string
	RPCSocket    string
	LogLevel     string
	ExpiringDays int
	LowThreshold int
}

func Defaults() Config {
	return Config{
		DBPath:       "pantry.db",
		HTTPAddr:     ":8080",
		RPCSocket:    "/tmp/pantry.sock",
		LogLevel:     "info",
		ExpiringDays: 7,
		LowThreshold: 2,
	}
}

// Load reads .env (when present) and the PANTRY_* variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	d := Defaults()
	cfg := Config{
		DBPath:       getEnv("PANTRY_DB_PATH", d.DBPath),
		HTTPAddr:     getEnv("PANTRY_HTTP_ADDR", d.HTTPAddr),
		RPCSocket:    getEnv("PANTRY_RPC_SOCKET", d.RPCSocket),
		LogLevel:     getEnv("PANTRY_LOG_LEVEL", d.LogLevel),
		ExpiringDays: d.ExpiringDays,
		LowThreshold: d.LowThreshold,
	}

	var err error
	if cfg.ExpiringDays, err = getEnvAsInt("PANTRY_EXPIRING_DAYS", d.ExpiringDays); err != nil {
		return Config{}, err
	}
	if cfg.LowThreshold, err = getEnvAsInt("PANTRY_LOW_THRESHOLD", d.LowThreshold); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("PANTRY_DB_PATH is required")
	}
	if c.ExpiringDays < 0 {
		return fmt.Errorf("PANTRY_EXPIRING_DAYS must not be negative, got %d", c.ExpiringDays)
	}
	if c.LowThreshold < 0 {
		return fmt.Errorf("PANTRY_LOW_THRESHOLD must not be negative, got %d", c.LowThreshold)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
