package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/lumen/internal/config"
	"github.com/taigrr/lumen/internal/logger"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
)

// loadScene returns the built-in scene or the one described by cfg.Path,
// chosen by file extension.
func loadScene(cfg config.SceneConfig) (*scene.Scene, error) {
	sc, err := readScene(cfg)
	if err != nil {
		return nil, err
	}
	if len(sc.Lights) == 0 {
		logger.Warn("scene has no lights, rendering ambient only", zap.String("scene", sceneName(cfg)))
	}
	return sc, nil
}

func readScene(cfg config.SceneConfig) (*scene.Scene, error) {
	if cfg.Path == "" {
		logger.Debug("using built-in scene")
		return scene.Default(), nil
	}

	ext := strings.ToLower(filepath.Ext(cfg.Path))
	logger.Debug("reading scene", zap.String("path", cfg.Path), zap.String("format", ext))
	switch ext {
	case ".yaml", ".yml":
		return scene.LoadYAML(cfg.Path)
	case ".gltf", ".glb":
		im := scene.NewGLTFImporter()
		if cfg.LightIntensity > 0 {
			im.DefaultIntensity = cfg.LightIntensity
		}
		return im.Load(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported scene format: %s (use .yaml, .gltf or .glb)", ext)
	}
}

// sceneName is the label shown in the HUD and logs.
func sceneName(cfg config.SceneConfig) string {
	if cfg.Path == "" {
		return "default scene"
	}
	return filepath.Base(cfg.Path)
}

// newRenderer builds a renderer from the camera, shading and render sections.
func newRenderer(cfg *config.Config, log *zap.Logger) *render.Renderer {
	r := render.NewRenderer()

	r.Camera.Eye = vec(cfg.Camera.Eye)
	r.Camera.View = render.ViewPlane{
		Min:    vec(cfg.Camera.ViewMin),
		Width:  cfg.Camera.ViewWidth,
		Height: cfg.Camera.ViewHeight,
	}

	r.Shader.Ambient = cfg.Shading.Ambient
	r.Shader.IntensityScale = cfg.Shading.Intensity
	r.Shader.Shininess = cfg.Shading.Shininess
	r.Shader.ShadowBias = cfg.Shading.ShadowBias

	bg := cfg.Render.Background
	r.Background = color.RGBA{bg[0], bg[1], bg[2], 255}
	if cfg.Render.Workers > 0 {
		r.Workers = cfg.Render.Workers
	}
	r.Logger = log
	return r
}

// initLogging configures the global logger. The viewer owns the terminal, so
// interactive runs log to the file only.
func initLogging(cfg config.LoggingConfig, interactive bool) error {
	if !interactive {
		return logger.Init(cfg.Level, cfg.LogFile)
	}
	var fileCfg logger.FileConfig
	if cfg.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.LogFile)
	}
	return logger.InitWithFileConfig(cfg.Level, fileCfg, false)
}

func vec(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}
