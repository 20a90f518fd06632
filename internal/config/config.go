package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pycarrot2/rebrickable-bot/internal/keychain"
)

// Config holds all process configuration.
type Config struct {
	RebrickToken  string
	TelegramToken string
	BotUsername   string
	HealthAddr    string
	LogLevel      string
}

// Load reads configuration from environment variables. Credentials fall
// back to the system keychain before failing.
func Load() (*Config, error) {
	rebrickToken, err := secret("REBRICK_TOKEN")
	if err != nil {
		return nil, err
	}
	telegramToken, err := secret("TELEGRAM_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	return &Config{
		RebrickToken:  rebrickToken,
		TelegramToken: telegramToken,
		BotUsername:   getEnv("TELEGRAM_BOT_USERNAME", "rebrickable_bot"),
		HealthAddr:    os.Getenv("HEALTH_ADDR"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}, nil
}

// secret reads a required credential: environment first, then the
// system keychain under the same account name.
func secret(name string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v, nil
	}
	if v, err := keychain.Get(name); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}
	return "", fmt.Errorf("%s is required", name)
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
