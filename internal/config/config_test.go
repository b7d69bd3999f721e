package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newTestViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg := FromViper(newTestViper(nil))

	assert.Equal(t, "5001", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, int32(4096), cfg.Gemini.MaxOutputTokens)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, PacingFixed, cfg.Batch.Pacing)
	assert.Equal(t, time.Second, cfg.Batch.PacingInterval)
	assert.Equal(t, 15*time.Minute, cfg.Batch.Timeout)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.False(t, cfg.Report.ValidateMinimums)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg := FromViper(newTestViper(map[string]any{
		"GEMINI_MODEL":          "gemini-2.5-pro",
		"GEMINI_API_KEY":        "  secret  ",
		"BATCH_PACING":          "RateLimit",
		"BATCH_PACING_INTERVAL": "250ms",
		"VALIDATE_MINIMUMS":     true,
		"ENV":                   "production",
	}))

	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, PacingRateLimit, cfg.Batch.Pacing)
	assert.Equal(t, 250*time.Millisecond, cfg.Batch.PacingInterval)
	assert.True(t, cfg.Report.ValidateMinimums)
	assert.False(t, cfg.IsDevelopment())
}

func TestFromViper_UnknownPacingFallsBackToFixed(t *testing.T) {
	cfg := FromViper(newTestViper(map[string]any{"BATCH_PACING": "exponential"}))
	assert.Equal(t, PacingFixed, cfg.Batch.Pacing)
}
