package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/folio/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvAddr        = "APP_ADDR"
	EnvDatabaseDSN = "DATABASE_DSN"
	EnvDatabaseURL = "DATABASE_URL"
	EnvSecretKey   = "JWT_SECRET"
	EnvRedisURL    = "REDIS_URL"
	EnvAccessTTL   = "ACCESS_TOKEN_TTL"
	EnvRefreshTTL  = "REFRESH_TOKEN_TTL"
	EnvLogLevel    = "LOG_LEVEL"
)

func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

func parseEnv(cfg *Config) {
	cfg.Addr = flagx.EnvOrDefault(cfg.Addr, EnvAddr)
	cfg.DatabaseDSN = flagx.EnvOrDefault(cfg.DatabaseDSN, EnvDatabaseDSN, EnvDatabaseURL)
	cfg.SecretKey = flagx.EnvOrDefault(cfg.SecretKey, EnvSecretKey)
	cfg.RedisAddr = flagx.EnvOrDefault(cfg.RedisAddr, EnvRedisURL)
	cfg.LogLevel = flagx.EnvOrDefault(cfg.LogLevel, EnvLogLevel)

	cfg.AccessTokenValidityDuration = envDuration(EnvAccessTTL, cfg.AccessTokenValidityDuration)
	cfg.RefreshTokenValidityDuration = envDuration(EnvRefreshTTL, cfg.RefreshTokenValidityDuration)
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := flagx.EnvOrDefault("", key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}
