package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/folio/internal/flagx"
	"github.com/dmitrijs2005/folio/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the DTO for JSON and YAML config files. Empty fields leave
// the current value alone.
type FileConfig struct {
	APIURL    string          `json:"api_url" yaml:"api_url"`
	SessionDB string          `json:"session_db" yaml:"session_db"`
	Timeout   *timex.Duration `json:"timeout" yaml:"timeout"`
	LogLevel  string          `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. The format is
// picked by extension: .yaml and .yml are YAML, anything else is JSON.
// Read and decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.APIURL != "" {
		cfg.BaseURL = fc.APIURL
	}
	if fc.SessionDB != "" {
		cfg.SessionDB = fc.SessionDB
	}
	if fc.Timeout != nil {
		cfg.Timeout = fc.Timeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
