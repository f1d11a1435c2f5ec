package applog

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsSilent(t *testing.T) {
	SetLogger(nil)
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewText(&buf, slog.LevelDebug))
	t.Cleanup(func() { SetLogger(nil) })

	WithComponent("mesh").Debug("Builder: triangulated", "triangles", 2)
	assert.Contains(t, buf.String(), "component=mesh")
	assert.Contains(t, buf.String(), "triangles=2")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetLevelAdjustsExistingLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewText(&buf, slog.LevelWarn))
	t.Cleanup(func() { SetLogger(nil); SetLevel(slog.LevelInfo) })

	Logger().Info("hidden")
	assert.Empty(t, buf.String())

	SetLevel(slog.LevelDebug)
	assert.Equal(t, slog.LevelDebug, Level())
	Logger().Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
