package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/folio/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvAPIURL       = "FOLIO_API_URL"
	EnvPublicAPIURL = "NEXT_PUBLIC_API_URL"
	EnvSessionDB    = "FOLIO_SESSION_DB"
	EnvTimeout      = "FOLIO_TIMEOUT"
	EnvLogLevel     = "FOLIO_LOG_LEVEL"
)

// loadDotEnv exports the variables of path without overriding ones that
// are already set. A missing file is fine.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays cfg with the environment. FOLIO_API_URL takes precedence
// over NEXT_PUBLIC_API_URL, which older deployments set.
func parseEnv(cfg *Config) {
	cfg.BaseURL = flagx.EnvOrDefault(cfg.BaseURL, EnvAPIURL, EnvPublicAPIURL)
	cfg.SessionDB = flagx.EnvOrDefault(cfg.SessionDB, EnvSessionDB)
	cfg.LogLevel = flagx.EnvOrDefault(cfg.LogLevel, EnvLogLevel)

	if v := flagx.EnvOrDefault("", EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.Timeout = d
	}
}
