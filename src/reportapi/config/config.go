package config

import (
	"log"
	"os"
)

type Config struct {
	Port          string
	Database      string
	JWTSecret     []byte
	OperatorToken string // bcrypt hash of the operator token
}

func Load() Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	tokenHash := os.Getenv("OPERATOR_TOKEN_HASH")
	if tokenHash == "" {
		log.Fatal("OPERATOR_TOKEN_HASH not set")
	}

	return Config{
		Port:          getenv("PORT", "8080"),
		Database:      getenv("REPORT_DB", "reports.db"),
		JWTSecret:     []byte(secret),
		OperatorToken: tokenHash,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
