// Package config handles lumen configuration loading and management.
package config

// Config holds all lumen settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Shading ShadingConfig `yaml:"shading"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Workers    int      `yaml:"workers"` // 0 = one per CPU
	Background [3]uint8 `yaml:"background"`
	Output     string   `yaml:"output"` // PNG path; non-empty renders once without the viewer
}

// ShadingConfig holds the lighting model knobs.
type ShadingConfig struct {
	Ambient    float64 `yaml:"ambient"`
	Intensity  float64 `yaml:"intensity"` // multiplier on every light
	Shininess  float64 `yaml:"shininess"` // Phong exponent
	ShadowBias float64 `yaml:"shadow_bias"`
}

// CameraConfig holds the eye position and the view window.
type CameraConfig struct {
	Eye        [3]float64 `yaml:"eye"`
	ViewMin    [3]float64 `yaml:"view_min"`
	ViewWidth  float64    `yaml:"view_width"`
	ViewHeight float64    `yaml:"view_height"`
}

// SceneConfig selects the scene to render.
type SceneConfig struct {
	// Path to a .yaml/.yml scene description or a .gltf/.glb file.
	// Empty means the built-in scene.
	Path string `yaml:"path"`
	// LightIntensity is used for glTF lights without an intensity extra.
	LightIntensity float64 `yaml:"light_intensity"`
}

// ViewerConfig holds interactive viewer settings.
type ViewerConfig struct {
	FPS             int     `yaml:"fps"`
	ShowHUD         bool    `yaml:"show_hud"`
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
	SnapshotDir     string  `yaml:"snapshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config reproducing the classic scene setup.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:  600,
			Height: 400,
		},
		Shading: ShadingConfig{
			Ambient:    0.05,
			Intensity:  0.2,
			Shininess:  100,
			ShadowBias: 1e-4,
		},
		Camera: CameraConfig{
			Eye:        [3]float64{0, 0, 10},
			ViewMin:    [3]float64{-3, -2, 5},
			ViewWidth:  6,
			ViewHeight: 4,
		},
		Scene: SceneConfig{
			LightIntensity: 1000,
		},
		Viewer: ViewerConfig{
			FPS:             60,
			ShowHUD:         true,
			SpringFrequency: 6.0,
			SpringDamping:   1.0,
			SnapshotDir:     ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
