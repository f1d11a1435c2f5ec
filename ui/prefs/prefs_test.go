package prefs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), "nope", "state.yaml"))
	assert.Equal(t, "", p.String(KeyLastLayer))
	w, h := p.WindowSize(1280, 800)
	assert.Equal(t, 1280.0, w)
	assert.Equal(t, 800.0, h)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "state.yaml")
	p := LoadFrom(path)
	p.SetString(KeyLastLayer, "slope")
	p.SetString(KeyLastTool, "rotate-scale")
	p.SetWindowSize(1024, 700)
	require.NoError(t, p.Save())

	q := LoadFrom(path)
	assert.Equal(t, "slope", q.String(KeyLastLayer))
	assert.Equal(t, "rotate-scale", q.String(KeyLastTool))
	w, h := q.WindowSize(1, 1)
	assert.Equal(t, 1024.0, w)
	assert.Equal(t, 700.0, h)
}

func TestWrongTypeFallsBack(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), "state.yaml"))
	p.SetString(KeyWindowWidth, "wide")
	assert.Equal(t, 640.0, p.FloatWithFallback(KeyWindowWidth, 640))
}
