package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bbredesen/obj-viewer/config"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath  = flag.String("config", "", "YAML config file overlaid on the built-in defaults")
		writeConfig = flag.String("write-config", "", "write the effective config to this file and exit")
		verbose     = flag.Bool("v", false, "log at debug level")
		width       = flag.Int("width", 0, "window width, overrides the config")
		height      = flag.Int("height", 0, "window height, overrides the config")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [mesh.obj|mesh.gltf ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "error reading config: %s\n", err.Error())
			os.Exit(1)
		}
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	for _, path := range flag.Args() {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if added := cfg.AddMesh(name, path); added != name {
			logger.Info("mesh name already in use, renamed", "path", path, "name", added)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %s\n", err.Error())
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := config.Save(*writeConfig, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error writing config %s: %s\n", *writeConfig, err.Error())
			os.Exit(1)
		}
		return
	}

	app := NewApp(cfg, logger)
	if err := app.Initialize(); err != nil {
		app.Teardown()
		fmt.Fprintf(os.Stderr, "error initializing viewer: %s\n", err.Error())
		os.Exit(1)
	}

	app.Run()

	app.Teardown()
}
