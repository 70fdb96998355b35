package clog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewVerboseEnablesDebugLevel(t *testing.T) {
	logger, err := New(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewQuietDisablesDebugLevel(t *testing.T) {
	logger, err := New(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

// TestNopDiscardsEverything exercises the no-op logger library callers
// (ceval, cparse) fall back to before cmd/gocc installs a real one.
func TestNopDiscardsEverything(t *testing.T) {
	logger := Nop()
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Debug("discarded")
		logger.Info("discarded")
	})
}
