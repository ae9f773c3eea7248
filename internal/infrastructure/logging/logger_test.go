package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("cornscan", "debug")
	require.NoError(t, err)
	require.True(t, logger.Desugar().Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger("cornscan", "warn")
	require.NoError(t, err)
	require.False(t, logger.Desugar().Core().Enabled(zapcore.InfoLevel))
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := NewLogger("cornscan", "loud")
	require.ErrorContains(t, err, "parse log level")
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(zapcore.InfoLevel)
	require.Equal(t, "console", cfg.Encoding)
	require.Equal(t, []string{"stderr"}, cfg.OutputPaths)
	require.True(t, cfg.DisableStacktrace)
}
