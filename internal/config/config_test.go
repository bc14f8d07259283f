package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealmash/internal/match"
)

func TestNewFromEnvDefaults(t *testing.T) {
	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "data/mealmash.db", cfg.DatabasePath)
	assert.Equal(t, match.ModeFraction, cfg.SuggestMode)
	assert.Equal(t, 50, cfg.SuggestMinPercent)
	assert.Equal(t, 3, cfg.SuggestMinCount)
	assert.Equal(t, 10, cfg.IngredientSubmitLimit)
	assert.Equal(t, ":8080", cfg.TelegramListenAddr)
	assert.Empty(t, cfg.TelegramAllowedUserIDs)
}

func TestNewFromEnvOverrides(t *testing.T) {
	t.Setenv("MEALMASH_DB_PATH", "/tmp/other.db")
	t.Setenv("SUGGEST_MODE", "count")
	t.Setenv("SUGGEST_MIN_COUNT", "5")
	t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123, 456")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.DatabasePath)
	assert.Equal(t, match.ModeCount, cfg.SuggestMode)
	assert.Equal(t, 5, cfg.SuggestMinCount)
	assert.Equal(t, []int64{123, 456}, cfg.TelegramAllowedUserIDs)

	opts := cfg.SuggestOptions()
	assert.Equal(t, match.ModeCount, opts.Mode)
	assert.Equal(t, 5, opts.MinCount)
}

func TestNewFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("SUGGEST_MODE", "vibes")
	_, err := NewFromEnv()
	assert.Error(t, err)
}

func TestNewFromEnvRejectsBadInt(t *testing.T) {
	t.Setenv("SUGGEST_MIN_PERCENT", "half")
	_, err := NewFromEnv()
	assert.Error(t, err)
}

func TestNewFromEnvRejectsBadUserID(t *testing.T) {
	t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123,abc")
	_, err := NewFromEnv()
	assert.Error(t, err)
}
