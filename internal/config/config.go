package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// NATS configuration
	NatsURL            string
	NatsAnalyzeSubject string
	NatsApproveSubject string
	NatsRejectSubject  string
	NatsTimeout        time.Duration

	// Redis configuration
	RedisURL   string
	SessionTTL time.Duration

	// Approval gate configuration
	ApprovalTTL       time.Duration
	ApprovalSecret    string
	ConfirmationStyle string
	AlwaysConfirm     []string

	// Fallback model configuration. An empty API key disables the fallback.
	AnthropicAPIKey  string
	AnthropicModel   string
	AnthropicTimeout time.Duration

	// Service configuration
	ServiceName string
}

func Load() (*Config, error) {
	cfg := &Config{
		// NATS settings
		NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		NatsAnalyzeSubject: getEnv("NATS_ANALYZE_SUBJECT", "home.intent.analyze"),
		NatsApproveSubject: getEnv("NATS_APPROVE_SUBJECT", "home.command.approve"),
		NatsRejectSubject:  getEnv("NATS_REJECT_SUBJECT", "home.command.reject"),
		NatsTimeout:        getDurationEnv("NATS_TIMEOUT", 30*time.Second),

		// Redis settings
		RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionTTL: getDurationEnv("SESSION_TTL", 30*time.Minute),

		// Approval settings
		ApprovalTTL:       getDurationEnv("APPROVAL_TTL", 2*time.Minute),
		ApprovalSecret:    getEnv("APPROVAL_SIGNING_SECRET", ""),
		ConfirmationStyle: getEnv("CONFIRMATION_STYLE", "always_ask"),
		AlwaysConfirm:     getListEnv("ALWAYS_CONFIRM_ENTITIES", []string{"shopping"}),

		// Anthropic settings
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:   getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		AnthropicTimeout: getDurationEnv("ANTHROPIC_TIMEOUT", 30*time.Second),

		// Service settings
		ServiceName: getEnv("SERVICE_NAME", "hearth-intent"),
	}

	if cfg.ApprovalSecret == "" {
		return nil, fmt.Errorf("APPROVAL_SIGNING_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
