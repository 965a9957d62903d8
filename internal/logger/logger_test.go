package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stucom/basketball-fans-service/internal/logger"
)

func TestNew_DefaultsToProdJSON(t *testing.T) {
	cfg := &logger.LoggerConfig{}
	_, err := logger.New(cfg)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestNew_DevDefaultsToConsoleDebug(t *testing.T) {
	cfg := &logger.LoggerConfig{Env: "dev"}
	_, err := logger.New(cfg)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
}

func TestNew_RejectsBadLevel(t *testing.T) {
	_, err := logger.New(&logger.LoggerConfig{Level: "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestNew_RejectsBadEnv(t *testing.T) {
	_, err := logger.New(&logger.LoggerConfig{Env: "local"})
	require.Error(t, err)
}
