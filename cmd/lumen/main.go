// lumen - terminal ray tracer
// Renders planes and spheres lit by point lights with Phong shading and hard
// shadows, either to a PNG file or live in the terminal.
//
// Controls:
//
//	Up/Down     - Light intensity multiplier
//	Left/Right  - Phong exponent
//	Shift+Arrow - Pan camera
//	PgUp/PgDn   - Dolly camera in/out
//	T           - Re-render
//	R           - Reset knobs and camera
//	S           - Save a PNG snapshot at the configured output size, plus
//	              the scene and a config that reproduce it
//	H or ?      - Toggle HUD overlay
//	Esc / Q     - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/taigrr/lumen/internal/config"
	"github.com/taigrr/lumen/internal/logger"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "lumen - terminal ray tracer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: lumen [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Up/Down     - Light intensity\n")
		fmt.Fprintf(os.Stderr, "  Left/Right  - Phong exponent\n")
		fmt.Fprintf(os.Stderr, "  Shift+Arrow - Pan camera\n")
		fmt.Fprintf(os.Stderr, "  PgUp/PgDn   - Dolly camera\n")
		fmt.Fprintf(os.Stderr, "  T           - Re-render\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset knobs and camera\n")
		fmt.Fprintf(os.Stderr, "  S           - Save PNG snapshot\n")
		fmt.Fprintf(os.Stderr, "  H / ?       - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc / Q     - Quit\n")
	}
	flag.Parse()

	if err := run(flags); err != nil {
		logger.Error("lumen failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *config.Flags) error {
	cfg, err := config.Load(flags.Config)
	if err != nil {
		return err
	}
	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if flags.SaveConfig {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "config saved to %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return nil
	}

	interactive := cfg.Render.Output == ""
	if err := initLogging(cfg.Logging, interactive); err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, err := loadScene(cfg.Scene)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	logger.Info("scene loaded",
		zap.String("scene", sceneName(cfg.Scene)),
		zap.Int("surfaces", len(sc.Surfaces)),
		zap.Int("lights", len(sc.Lights)),
	)

	r := newRenderer(cfg, logger.Named("render"))

	if !interactive {
		if err := renderToFile(ctx, r, sc, cfg.Render.Width, cfg.Render.Height, cfg.Render.Output); err != nil {
			return err
		}
		logger.Info("image written",
			zap.String("path", cfg.Render.Output),
			zap.Int("width", cfg.Render.Width),
			zap.Int("height", cfg.Render.Height),
			zap.Duration("elapsed", r.LastFrame()),
		)
		return nil
	}

	return runViewer(ctx, newViewer(cfg, sc, r, logger.Named("viewer")))
}
