package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"mealmash/internal/match"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string

	// Suggestion engine settings. The two admission policies are inherited
	// from the two generations of the matching logic and never reconciled,
	// so both stay configurable.
	SuggestMode       match.Mode
	SuggestMinPercent int
	SuggestMinCount   int

	// Ingredient submissions allowed per user per hour.
	IngredientSubmitLimit int

	// Telegram Config (optional for the CLI, required for the bot)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramListenAddr     string
	TelegramAllowedUserIDs []int64
}

// NewFromEnv creates a new Config object from environment variables. A .env
// file in the working directory is loaded first when present.
func NewFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	cfg := &Config{
		DatabasePath:          getEnvWithDefault("MEALMASH_DB_PATH", "data/mealmash.db"),
		SuggestMode:           match.ModeFraction,
		SuggestMinPercent:     50,
		SuggestMinCount:       3,
		IngredientSubmitLimit: 10,
		TelegramBotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:    os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramListenAddr:    getEnvWithDefault("TELEGRAM_LISTEN_ADDR", ":8080"),
	}

	switch mode := os.Getenv("SUGGEST_MODE"); mode {
	case "", string(match.ModeFraction):
		cfg.SuggestMode = match.ModeFraction
	case string(match.ModeCount):
		cfg.SuggestMode = match.ModeCount
	default:
		return nil, fmt.Errorf("SUGGEST_MODE must be %q or %q, got %q", match.ModeFraction, match.ModeCount, mode)
	}

	var err error
	if cfg.SuggestMinPercent, err = intEnv("SUGGEST_MIN_PERCENT", cfg.SuggestMinPercent); err != nil {
		return nil, err
	}
	if cfg.SuggestMinCount, err = intEnv("SUGGEST_MIN_COUNT", cfg.SuggestMinCount); err != nil {
		return nil, err
	}
	if cfg.IngredientSubmitLimit, err = intEnv("INGREDIENT_SUBMIT_LIMIT", cfg.IngredientSubmitLimit); err != nil {
		return nil, err
	}

	if ids := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); ids != "" {
		for _, part := range strings.Split(ids, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS contains invalid id %q: %w", part, err)
			}
			cfg.TelegramAllowedUserIDs = append(cfg.TelegramAllowedUserIDs, id)
		}
	}

	return cfg, nil
}

// SuggestOptions translates config values into ranker options.
func (c *Config) SuggestOptions() match.Options {
	return match.Options{
		Mode:       c.SuggestMode,
		MinPercent: c.SuggestMinPercent,
		MinCount:   c.SuggestMinCount,
	}
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

// getEnvWithDefault returns the value of the environment variable or the
// default value.
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
