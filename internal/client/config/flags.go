package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/folio/internal/flagx"
)

// parseFlags populates cfg from the flags it owns, ignoring the rest of
// os.Args. A malformed value panics.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the REST API")
	fs.StringVar(&cfg.SessionDB, "s", cfg.SessionDB, "session database path")
	fs.DurationVar(&cfg.Timeout, "t", cfg.Timeout, "request timeout (0 = none)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
