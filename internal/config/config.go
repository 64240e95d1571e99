package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	Addr        string
	DBPath      string
	JWTSecret   string
	CORSOrigins []string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	dbPath := os.Getenv("RECIPESHARE_DB_PATH")
	if dbPath == "" {
		return nil, fmt.Errorf("RECIPESHARE_DB_PATH environment variable not set")
	}

	jwtSecret := os.Getenv("RECIPESHARE_JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("RECIPESHARE_JWT_SECRET environment variable not set")
	}

	addr := os.Getenv("RECIPESHARE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	corsOrigins := []string{"*"}
	if raw := os.Getenv("RECIPESHARE_CORS_ORIGINS"); raw != "" {
		corsOrigins = corsOrigins[:0]
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				corsOrigins = append(corsOrigins, origin)
			}
		}
	}

	return &Config{
		Addr:        addr,
		DBPath:      dbPath,
		JWTSecret:   jwtSecret,
		CORSOrigins: corsOrigins,
	}, nil
}
