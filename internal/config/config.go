package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	MongoDBURI      string
	MongoDBPassword string
	JWTSecret       string
	TokenTTL        time.Duration
	Environment     string
	LogLevel        string

	// OperatorEmails is the allow-list of identities permitted to delete
	// events and toggle login access. Injected here instead of living as a
	// hardcoded list in the handlers.
	OperatorEmails []string

	// OrganizerOnlyUpdates gates event updates behind per-event organizer
	// membership. Off by default: any authenticated user may update.
	OrganizerOnlyUpdates bool
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                 getEnvWithDefault("PORT", "8080"),
		MongoDBURI:           os.Getenv("MONGODB_URI"),
		MongoDBPassword:      os.Getenv("MONGODB_PASSWORD"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		Environment:          getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:             getEnvWithDefault("LOG_LEVEL", "info"),
		OperatorEmails:       splitList(os.Getenv("OPERATOR_EMAILS")),
		OrganizerOnlyUpdates: getEnvBool("ORGANIZER_ONLY_UPDATES", false),
	}

	ttl, err := time.ParseDuration(getEnvWithDefault("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %v", err)
	}
	cfg.TokenTTL = ttl

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func (c *Config) IsOperator(email string) bool {
	for _, op := range c.OperatorEmails {
		if strings.EqualFold(op, email) {
			return true
		}
	}
	return false
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
