package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ";", cfg.Delimiter)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("XES_LOGGER_LEVEL", "debug")
	t.Setenv("XES_DELIMITER", ",")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ",", cfg.Delimiter)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggerConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = NewLogger(LoggerConfig{Level: "nope", Format: "console"})
	assert.Error(t, err)
}
