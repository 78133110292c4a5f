// Package config loads runtime configuration for the folio terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, if present.
//  3. Environment variables (see parseEnv).
//  4. Optional JSON or YAML file selected via -c or -config.
//  5. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-s string   path of the session database
//	-t duration request timeout, 0 for none
//	-l string   log level
//
// # File schema
//
// Timeouts use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds:
//
//	{
//	  "api_url": "https://api.example.com",
//	  "session_db": "/home/me/.folio/session.db",
//	  "timeout": "10s",
//	  "log_level": "debug"
//	}
//
// The same keys work in YAML when the file ends in .yaml or .yml.
package config
