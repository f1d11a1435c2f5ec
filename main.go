// Package main provides the entry point for the Map Annotator application.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"map-annotator/internal/app"
	"map-annotator/internal/applog"
	"map-annotator/internal/asset"
	"map-annotator/internal/config"
	"map-annotator/internal/input"
	"map-annotator/internal/version"
	"map-annotator/pkg/colorutil"
	"map-annotator/ui/mainwindow"
	"map-annotator/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "io.github.map-annotator"

func main() {
	configPath := flag.String("config", config.DefaultPath(), "Path to config.yaml")
	mapPath := flag.String("map", "", "Background map image (overrides map.path)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := applog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	if *debug {
		level = slog.LevelDebug
		cfg.Log.Level = "debug"
	}
	applog.SetLogger(applog.NewText(os.Stderr, level))
	log := applog.WithComponent("main")
	log.Info("Starting Map Annotator", "version", version.String(), "config", *configPath)

	if *mapPath != "" {
		cfg.Map.Path = *mapPath
	}
	m, err := loadMap(cfg)
	if err != nil {
		log.Error("Map: load failed", "path", cfg.Map.Path, "error", err)
		os.Exit(1)
	}

	editor, err := app.NewEditor(cfg, m)
	if err != nil {
		log.Error("Editor: init failed", "error", err)
		os.Exit(1)
	}
	dispatcher := input.NewDispatcher()
	stop := editor.Start(dispatcher)
	defer stop()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.EditorTheme{})

	win := mainwindow.New(fyneApp, editor, dispatcher, prefs.Load(), *configPath)

	watcher := setupConfigReload(*configPath, *debug, win)
	if watcher != nil {
		defer watcher.Stop()
	}

	win.ShowAndRun()
}

func loadMap(cfg *config.Config) (*asset.Map, error) {
	if cfg.Map.Path == "" {
		return asset.Placeholder(cfg.Map.Width, cfg.Map.Height, config.Color(cfg.Drawing.ClearColor, colorutil.Black)), nil
	}
	return asset.Load(cfg.Map.Path, cfg.Map.MaxDimension)
}

// setupConfigReload applies edits to the config file while the editor runs.
// With -debug the level stays at debug regardless of log.level.
func setupConfigReload(path string, debug bool, win *mainwindow.MainWindow) *config.Watcher {
	log := applog.WithComponent("main")
	w := config.NewWatcher(path, 300*time.Millisecond)
	w.OnChange(func(cfg *config.Config) {
		if debug {
			cfg.Log.Level = "debug"
		}
		log.Info("Config: reloaded", "path", path)
		win.ReloadConfig(cfg)
	})
	if err := w.Start(); err != nil {
		log.Warn("Config: watch failed", "path", path, "error", err)
		return nil
	}
	return w
}
