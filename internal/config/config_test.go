package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map-annotator/pkg/colorutil"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"wall", "slope"}, cfg.LayerNames())
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
camera:
  fov: 60
drawing:
  snap_radius: 0
layers:
  - name: roof
    color: "#112233"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60.0, cfg.Camera.FOV)
	assert.Equal(t, 0.1, cfg.Camera.Near, "unset fields keep defaults")
	assert.Zero(t, cfg.Drawing.SnapRadius)
	assert.Equal(t, []string{"roof"}, cfg.LayerNames())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"fov":       "camera: {fov: 200}",
		"heights":   "camera: {min_height: 50, max_height: 10}",
		"opacity":   "drawing: {fill_opacity: 2}",
		"color":     "drawing: {outline_color: nope}",
		"no color":  "drawing: {line_color: ''}",
		"duplicate": "layers: [{name: a, color: '#000000'}, {name: a, color: '#ffffff'}]",
		"unnamed":   "layers: [{color: '#000000'}]",
		"empty":     "layers: []",
		"tolerance": "picking: {line_tolerance: -1}",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("camera: [1, 2"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Picking.LineTolerance = 7
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", colorutil.Red},
		{"#f00", colorutil.Red},
		{"red", colorutil.Red},
		{"#00ff0080", color.RGBA{G: 255, A: 0x80}},
		{"bogus", colorutil.Green},
		{"", colorutil.Green},
		{"  ", colorutil.Green},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Color(tt.in, colorutil.Green))
		})
	}
}

func TestValidateAcceptsNamedColors(t *testing.T) {
	cfg := Default()
	cfg.Drawing.OutlineColor = "white"
	cfg.Layers[0].Color = "orange"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, colorutil.Orange, Color(cfg.Layers[0].Color, colorutil.Black))
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Default().Save(path))

	got := make(chan *Config, 4)
	w := NewWatcher(path, 20*time.Millisecond)
	w.OnChange(func(c *Config) { got <- c })
	require.NoError(t, w.Start())
	defer w.Stop()

	cfg := Default()
	cfg.Drawing.SnapRadius = 42
	require.NoError(t, cfg.Save(path))

	select {
	case c := <-got:
		assert.Equal(t, 42.0, c.Drawing.SnapRadius)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "config.yaml"), time.Millisecond)
	require.NoError(t, w.Start())
	w.Stop()
	w.Stop()
}
