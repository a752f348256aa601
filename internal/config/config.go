package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

const (
	StorageMemory    = "memory"
	StorageFirestore = "firestore"
	StorageSQLite    = "sqlite"
)

type Config struct {
	Mode Mode

	Port     string
	LogLevel string

	UserID   string
	Location *time.Location
	SeedPath string // empty = built-in seed

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	StorageBackend string // "memory", "firestore" or "sqlite"
	SQLitePath     string
	UseMockLLM     bool // true = use mock even on GCP

	AutosaveEvery    time.Duration
	CelebrationDelay time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}

// Load reads all env vars and builds the config
func Load() (*Config, error) {
	modeStr := getEnv("FILLCUP_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port:     getEnv("FILLCUP_PORT", "8080"),
		LogLevel: getEnv("FILLCUP_LOG_LEVEL", "info"),

		UserID:   getEnv("FILLCUP_USER_ID", "local"),
		SeedPath: getEnv("FILLCUP_SEED_PATH", ""),

		GCPProjectID: getEnv("FILLCUP_GCP_PROJECT", ""),
		GCPLocation:  getEnv("FILLCUP_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("FILLCUP_MODEL_NAME", "gemini-2.5-flash-lite"),

		StorageBackend: strings.ToLower(getEnv("FILLCUP_STORAGE_BACKEND", StorageMemory)),
		SQLitePath:     getEnv("FILLCUP_SQLITE_PATH", "fillcup.db"),
		UseMockLLM:     getBoolEnv("FILLCUP_USE_MOCK_LLM", mode == ModeLocal),
	}

	tz := getEnv("FILLCUP_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("FILLCUP_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.AutosaveEvery, err = getDurationEnv("FILLCUP_AUTOSAVE_EVERY", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.AutosaveEvery%time.Second != 0 {
		return nil, fmt.Errorf("FILLCUP_AUTOSAVE_EVERY must be a whole number of seconds, got %s", cfg.AutosaveEvery)
	}
	if cfg.CelebrationDelay, err = getDurationEnv("FILLCUP_CELEBRATION_DELAY", 1200*time.Millisecond); err != nil {
		return nil, err
	}

	switch cfg.StorageBackend {
	case StorageMemory, StorageSQLite:
	case StorageFirestore:
		if cfg.GCPProjectID == "" {
			return nil, fmt.Errorf("FILLCUP_GCP_PROJECT is required for firestore storage")
		}
	default:
		return nil, fmt.Errorf("unknown FILLCUP_STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	// Minimal validation in GCP mode
	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("FILLCUP_GCP_PROJECT must be set in gcp mode")
	}

	return cfg, nil
}
