package config

import (
	"errors"
	"fmt"
)

// Knob limits accepted by Validate. The viewer's springs use the same ranges.
const (
	MinIntensity = 0.0
	MaxIntensity = 100.0
	MinShininess = 1.0
	MaxShininess = 1e5
)

// Validate reports every setting that cannot be rendered.
func (c *Config) Validate() error {
	var errs []error

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size %dx%d must be positive", c.Render.Width, c.Render.Height))
	}
	if c.Render.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", c.Render.Workers))
	}
	if c.Shading.Intensity < MinIntensity || c.Shading.Intensity > MaxIntensity {
		errs = append(errs, fmt.Errorf("intensity %g outside [%g, %g]", c.Shading.Intensity, MinIntensity, MaxIntensity))
	}
	if c.Shading.Shininess < MinShininess || c.Shading.Shininess > MaxShininess {
		errs = append(errs, fmt.Errorf("shininess %g outside [%g, %g]", c.Shading.Shininess, MinShininess, MaxShininess))
	}
	if c.Shading.Ambient < 0 {
		errs = append(errs, fmt.Errorf("ambient %g must not be negative", c.Shading.Ambient))
	}
	if c.Shading.ShadowBias < 0 {
		errs = append(errs, fmt.Errorf("shadow bias %g must not be negative", c.Shading.ShadowBias))
	}
	if c.Camera.ViewWidth <= 0 || c.Camera.ViewHeight <= 0 {
		errs = append(errs, fmt.Errorf("view window %gx%g must be positive", c.Camera.ViewWidth, c.Camera.ViewHeight))
	}
	if c.Viewer.FPS <= 0 {
		errs = append(errs, fmt.Errorf("viewer fps %d must be positive", c.Viewer.FPS))
	}

	return errors.Join(errs...)
}
