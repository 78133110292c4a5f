package config

import (
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
)

// Config holds runtime settings for the folio client.
//
// Timeout zero means requests are bounded only by the transport defaults.
type Config struct {
	BaseURL   string
	SessionDB string
	Timeout   time.Duration
	LogLevel  string
}

func (c *Config) LoadDefaults() {
	c.BaseURL = common.DefaultAPIURL
	c.SessionDB = "folio.db"
	c.Timeout = 0
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then .env and the environment, then the
// config file, then flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv(".env")
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
