package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/tradecheck/tradecheck/internal/adapters/outbound/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logging.ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, logging.ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, logging.ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, logging.ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, logging.ParseLevel("loud"))
}

func TestNew(t *testing.T) {
	log, err := logging.New("warn")
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}
