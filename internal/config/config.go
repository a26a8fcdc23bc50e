// ABOUTME: Configuration loader for the skillsync CLI
// ABOUTME: Loads settings from environment variables and optional .env file

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIURL     string // Backend API base URL
	ConfigDir  string // Directory holding the persisted session
	StudyLimit int    // Default number of due cards fetched per session
}

const (
	defaultAPIURL     = "http://localhost:8080"
	defaultStudyLimit = 10
)

// Load builds the configuration from the environment. A .env file in the
// working directory is applied first without overriding real env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:     getEnv("SKILLSYNC_API_URL", defaultAPIURL),
		ConfigDir:  getEnv("SKILLSYNC_CONFIG_DIR", DefaultConfigDir()),
		StudyLimit: getEnvInt("SKILLSYNC_STUDY_LIMIT", defaultStudyLimit),
	}

	if cfg.StudyLimit < 1 || cfg.StudyLimit > 100 {
		return nil, fmt.Errorf("SKILLSYNC_STUDY_LIMIT must be between 1 and 100, got %d", cfg.StudyLimit)
	}

	return cfg, nil
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "skillsync")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "skillsync")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
