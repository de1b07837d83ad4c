package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AccountsFile string
	Database     string // sqlite path or MySQL DSN
	RedisURL     string // optional; empty disables event publishing
	CommandRate  time.Duration
}

func Load() Config {
	rate := 30 * time.Second
	if v := os.Getenv("COMMAND_RATE_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			rate = time.Duration(secs) * time.Second
		}
	}

	return Config{
		AccountsFile: getenv("ACCOUNTS_FILE", "accounts.json"),
		Database:     getenv("REPORT_DB", "reports.db"),
		RedisURL:     os.Getenv("REDIS_URL"),
		CommandRate:  rate,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
