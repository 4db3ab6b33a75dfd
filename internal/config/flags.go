package config

import "flag"

// Flags holds command-line overrides. Unset flags leave the config untouched.
type Flags struct {
	Config    string
	Scene     string
	Output    string
	LogFile   string
	Debug     bool
	Width     int
	Height    int
	Workers   int
	Intensity float64
	Shininess float64

	// SaveConfig writes the effective config to the user config dir.
	SaveConfig bool

	fs *flag.FlagSet
}

// RegisterFlags binds the lumen flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Scene, "scene", "", "Scene file (.yaml, .gltf or .glb); empty uses the built-in scene")
	fs.StringVar(&f.Output, "out", "", "Render once to this PNG file and exit")
	fs.StringVar(&f.LogFile, "log", "", "Log file path")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Output width in pixels")
	fs.IntVar(&f.Height, "height", 0, "Output height in pixels")
	fs.IntVar(&f.Workers, "workers", 0, "Concurrent render rows (0 = one per CPU)")
	fs.Float64Var(&f.Intensity, "intensity", 0, "Light intensity multiplier")
	fs.Float64Var(&f.Shininess, "shininess", 0, "Phong exponent")
	fs.BoolVar(&f.SaveConfig, "save-config", false, "Save the effective config to the user config dir and exit")
	return f
}

// isSet reports whether the named flag was given on the command line.
func (f *Flags) isSet(name string) bool {
	if f.fs == nil {
		return false
	}
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// Apply applies flag overrides to the config.
func (f *Flags) Apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Scene != "" {
		cfg.Scene.Path = f.Scene
	}
	if f.Output != "" {
		cfg.Render.Output = f.Output
	}
	if f.Width > 0 {
		cfg.Render.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Render.Height = f.Height
	}
	if f.Workers > 0 {
		cfg.Render.Workers = f.Workers
	}
	if f.isSet("intensity") {
		cfg.Shading.Intensity = f.Intensity
	}
	if f.isSet("shininess") {
		cfg.Shading.Shininess = f.Shininess
	}
}
