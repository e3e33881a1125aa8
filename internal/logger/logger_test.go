package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	tests := map[string]zap.AtomicLevel{
		"debug": zap.NewAtomicLevelAt(zap.DebugLevel),
		"warn":  zap.NewAtomicLevelAt(zap.WarnLevel),
		"error": zap.NewAtomicLevelAt(zap.ErrorLevel),
		"bogus": zap.NewAtomicLevelAt(zap.InfoLevel),
		"":      zap.NewAtomicLevelAt(zap.InfoLevel),
	}
	for level, want := range tests {
		l, err := New(level, "production")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(want.Level()), level)
		if want.Level() > zap.DebugLevel {
			assert.False(t, l.Core().Enabled(want.Level()-1), level)
		}
	}
}

func TestNew_Development(t *testing.T) {
	l, err := New("info", "development")
	require.NoError(t, err)
	assert.NotNil(t, l)
}
