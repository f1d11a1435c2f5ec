// Package config loads and validates the editor's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/colors"
	"gopkg.in/yaml.v3"

	"map-annotator/internal/applog"
	"map-annotator/pkg/colorutil"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const fileName = "config.yaml"

// Config is the complete editor configuration.
type Config struct {
	Camera  CameraConfig  `yaml:"camera"`
	Drawing DrawingConfig `yaml:"drawing"`
	Picking PickingConfig `yaml:"picking"`
	Layers  []LayerConfig `yaml:"layers"`
	Map     MapConfig     `yaml:"map"`
	Log     LogConfig     `yaml:"log"`
}

// CameraConfig holds the perspective camera parameters and zoom range.
type CameraConfig struct {
	FOV       float64 `yaml:"fov"`
	Near      float64 `yaml:"near"`
	Far       float64 `yaml:"far"`
	MinHeight float64 `yaml:"min_height"`
	MaxHeight float64 `yaml:"max_height"`
}

// DrawingConfig styles captured and committed geometry.
type DrawingConfig struct {
	SnapRadius   float64 `yaml:"snap_radius"`
	FillOpacity  float64 `yaml:"fill_opacity"`
	OutlineColor string  `yaml:"outline_color"`
	LineColor    string  `yaml:"line_color"`
	MarkerRadius float64 `yaml:"marker_radius"`
	LineWidth    float64 `yaml:"line_width"`
	ClearColor   string  `yaml:"clear_color"`
}

// PickingConfig tunes hit testing.
type PickingConfig struct {
	LineTolerance float64 `yaml:"line_tolerance"`
}

// LayerConfig declares one annotation layer.
type LayerConfig struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// MapConfig locates the background image.
type MapConfig struct {
	Path         string `yaml:"path"`
	MaxDimension int    `yaml:"max_dimension"`
	// Placeholder size used when Path is empty.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{FOV: 75, Near: 0.1, Far: 10000, MinHeight: 10, MaxHeight: 8000},
		Drawing: DrawingConfig{
			SnapRadius:   10,
			FillOpacity:  0.5,
			OutlineColor: "#ffffff",
			LineColor:    "#ffff00",
			MarkerRadius: 4,
			LineWidth:    2,
			ClearColor:   "#444444",
		},
		Picking: PickingConfig{LineTolerance: 3},
		Layers: []LayerConfig{
			{Name: "wall", Color: "#00ffff"},
			{Name: "slope", Color: "#ff8800"},
		},
		Map: MapConfig{MaxDimension: 4096, Width: 1024, Height: 768},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns ~/.config/map-annotator/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "map-annotator", fileName)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		applog.WithComponent("config").Debug("Config: no file, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks ranges, colors and layer names.
func (c *Config) Validate() error {
	cam := c.Camera
	if cam.FOV <= 0 || cam.FOV >= 180 {
		return invalid("camera.fov %v outside (0, 180)", cam.FOV)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return invalid("camera near %v / far %v", cam.Near, cam.Far)
	}
	if cam.MinHeight <= 0 || cam.MaxHeight < cam.MinHeight {
		return invalid("camera height range [%v, %v]", cam.MinHeight, cam.MaxHeight)
	}
	if c.Drawing.SnapRadius < 0 {
		return invalid("drawing.snap_radius %v is negative", c.Drawing.SnapRadius)
	}
	if c.Drawing.FillOpacity < 0 || c.Drawing.FillOpacity > 1 {
		return invalid("drawing.fill_opacity %v outside [0, 1]", c.Drawing.FillOpacity)
	}
	for field, s := range map[string]string{
		"drawing.outline_color": c.Drawing.OutlineColor,
		"drawing.line_color":    c.Drawing.LineColor,
		"drawing.clear_color":   c.Drawing.ClearColor,
	} {
		if _, err := parseColor(s); err != nil {
			return invalid("%s: %v", field, err)
		}
	}
	if c.Picking.LineTolerance < 0 {
		return invalid("picking.line_tolerance %v is negative", c.Picking.LineTolerance)
	}
	if len(c.Layers) == 0 {
		return invalid("no layers")
	}
	seen := make(map[string]bool)
	for i, l := range c.Layers {
		if l.Name == "" {
			return invalid("layers[%d] has no name", i)
		}
		if seen[l.Name] {
			return invalid("duplicate layer %q", l.Name)
		}
		seen[l.Name] = true
		if _, err := parseColor(l.Color); err != nil {
			return invalid("layer %q: %v", l.Name, err)
		}
	}
	if c.Map.Path == "" && (c.Map.Width <= 0 || c.Map.Height <= 0) {
		return invalid("map placeholder size %dx%d", c.Map.Width, c.Map.Height)
	}
	return nil
}

// parseColor accepts anything colors.FromString does: hex ("#0ff",
// "#00ffff", "#00ffff80"), rgb()/hsl() forms and color names.
func parseColor(s string) (color.RGBA, error) {
	if strings.TrimSpace(s) == "" {
		return color.RGBA{}, errors.New("empty color")
	}
	return colors.FromString(s, colorutil.Black)
}

// Color parses a validated color field, falling back to fallback.
func Color(s string, fallback color.RGBA) color.RGBA {
	c, err := parseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// LayerNames returns the configured layer names in order.
func (c *Config) LayerNames() []string {
	names := make([]string, len(c.Layers))
	for i, l := range c.Layers {
		names[i] = l.Name
	}
	return names
}
