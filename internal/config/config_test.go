package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/config"
)

func TestGetConfigDefaults(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg := config.GetConfig()

	assert.Equal(t, "maison", cfg.AppName)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, config.Development, cfg.Environment)
	assert.Equal(t, 30, cfg.InsightTimeoutSeconds)
	assert.Equal(t, 90, cfg.EventsRetentionDays)
	assert.Equal(t, "meta-llama/llama-3.3-70b-instruct:free", cfg.InsightModel)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouterBaseURL)
	assert.True(t, cfg.IsDevelopment())
}

func TestGetConfigEnvOverrides(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("MAISON_ENV", config.Test)
	t.Setenv("MAISON_APP_PORT", "4242")
	t.Setenv("MAISON_INSIGHT_MODEL", "test-model")
	t.Setenv("OPENROUTER_API_KEY", "secret")

	cfg := config.GetConfig()

	assert.Equal(t, "4242", cfg.AppPort)
	assert.Equal(t, "test-model", cfg.InsightModel)
	assert.Equal(t, "secret", cfg.OpenRouterAPIKey)
	assert.True(t, cfg.IsTest())
}

func TestTestEnvironmentPoolSizing(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("MAISON_ENV", config.Test)

	cfg := config.GetConfig()

	assert.Equal(t, 1, cfg.GetMaxOpenConns())
	assert.Equal(t, 1, cfg.GetMaxIdleConns())
}

func TestDatabasePathDerivation(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("MAISON_STORAGE_PATH", "data")
	t.Setenv("MAISON_ENV", config.Test)

	cfg := config.GetConfig()

	assert.Equal(t, "data/maison-test.db", cfg.GetDatabasePath())
}
