package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Render.Width != 600 || cfg.Render.Height != 400 {
		t.Errorf("expected 600x400, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Shading.Intensity != 0.2 {
		t.Errorf("expected intensity 0.2, got %g", cfg.Shading.Intensity)
	}
	if cfg.Shading.Shininess != 100 {
		t.Errorf("expected shininess 100, got %g", cfg.Shading.Shininess)
	}
	if cfg.Shading.Ambient != 0.05 {
		t.Errorf("expected ambient 0.05, got %g", cfg.Shading.Ambient)
	}
	if cfg.Camera.Eye != [3]float64{0, 0, 10} {
		t.Errorf("expected eye (0,0,10), got %v", cfg.Camera.Eye)
	}
	if cfg.Camera.ViewMin != [3]float64{-3, -2, 5} || cfg.Camera.ViewWidth != 6 || cfg.Camera.ViewHeight != 4 {
		t.Errorf("unexpected view window %v %gx%g", cfg.Camera.ViewMin, cfg.Camera.ViewWidth, cfg.Camera.ViewHeight)
	}
	if cfg.Render.Background != [3]uint8{} {
		t.Errorf("expected black background, got %v", cfg.Render.Background)
	}
	if cfg.Scene.Path != "" {
		t.Errorf("expected built-in scene, got %q", cfg.Scene.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "lumen.yaml")

	yamlContent := `
render:
  width: 320
  height: 200
  background: [10, 20, 30]

shading:
  intensity: 0.5
  shininess: 2000

scene:
  path: scenes/room.gltf

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Render.Width != 320 || cfg.Render.Height != 200 {
		t.Errorf("expected 320x200, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.Background != [3]uint8{10, 20, 30} {
		t.Errorf("unexpected background %v", cfg.Render.Background)
	}
	if cfg.Shading.Intensity != 0.5 || cfg.Shading.Shininess != 2000 {
		t.Errorf("unexpected shading %+v", cfg.Shading)
	}
	if cfg.Scene.Path != "scenes/room.gltf" {
		t.Errorf("unexpected scene path %q", cfg.Scene.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}

	// Untouched sections keep their defaults.
	if cfg.Shading.Ambient != 0.05 {
		t.Errorf("expected default ambient, got %g", cfg.Shading.Ambient)
	}
	if cfg.Camera.Eye != [3]float64{0, 0, 10} {
		t.Errorf("expected default eye, got %v", cfg.Camera.Eye)
	}
	if cfg.Viewer.FPS != 60 {
		t.Errorf("expected default fps, got %d", cfg.Viewer.FPS)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("/nonexistent/lumen.yaml"); err == nil {
		t.Error("expected error for missing explicit config")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("render: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Width != 600 {
		t.Errorf("expected defaults, got width %d", cfg.Render.Width)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lumen.yaml")

	cfg := Default()
	cfg.Shading.Shininess = 500
	cfg.Scene.Path = "scene.yaml"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Shading.Shininess != 500 || loaded.Scene.Path != "scene.yaml" {
		t.Errorf("reloaded config lost values: %+v", loaded)
	}
}

func TestFlagsApply(t *testing.T) {
	fs := flag.NewFlagSet("lumen", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	args := []string{"-debug", "-width", "1024", "-intensity", "0.7", "-scene", "a.glb", "-out", "x.png"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg := Default()
	flags.Apply(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
	if cfg.Render.Width != 1024 || cfg.Render.Height != 400 {
		t.Errorf("expected 1024x400, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Shading.Intensity != 0.7 {
		t.Errorf("expected intensity 0.7, got %g", cfg.Shading.Intensity)
	}
	if cfg.Shading.Shininess != 100 {
		t.Errorf("unset flag changed shininess to %g", cfg.Shading.Shininess)
	}
	if cfg.Scene.Path != "a.glb" || cfg.Render.Output != "x.png" {
		t.Errorf("unexpected scene/output %q %q", cfg.Scene.Path, cfg.Render.Output)
	}
}

func TestFlagsApplyZeroIntensity(t *testing.T) {
	fs := flag.NewFlagSet("lumen", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-intensity", "0"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg := Default()
	flags.Apply(cfg)

	if cfg.Shading.Intensity != 0 {
		t.Errorf("explicit -intensity 0 ignored, got %g", cfg.Shading.Intensity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("ambient-only config rejected: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Render.Width = 0 }, "render size"},
		{"negative workers", func(c *Config) { c.Render.Workers = -1 }, "workers"},
		{"intensity too high", func(c *Config) { c.Shading.Intensity = 101 }, "intensity"},
		{"negative intensity", func(c *Config) { c.Shading.Intensity = -0.1 }, "intensity"},
		{"shininess too low", func(c *Config) { c.Shading.Shininess = 0.5 }, "shininess"},
		{"negative ambient", func(c *Config) { c.Shading.Ambient = -1 }, "ambient"},
		{"negative bias", func(c *Config) { c.Shading.ShadowBias = -1 }, "shadow bias"},
		{"flat window", func(c *Config) { c.Camera.ViewHeight = 0 }, "view window"},
		{"zero fps", func(c *Config) { c.Viewer.FPS = 0 }, "fps"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}

	cfg := Default()
	cfg.Shading.Intensity = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero intensity should be valid: %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	if dir := ConfigDir(); !strings.Contains(strings.ToLower(dir), "lumen") {
		t.Errorf("ConfigDir %q should be lumen-specific", dir)
	}
}
