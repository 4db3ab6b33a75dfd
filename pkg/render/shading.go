package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/scene"
)

// Shading defaults.
const (
	DefaultAmbient        = 0.05
	DefaultShininess      = 100
	DefaultIntensityScale = 0.2
	DefaultShadowBias     = 1e-4
)

// Shader evaluates ambient, Lambertian diffuse and Blinn-Phong specular
// lighting at a surface hit, with hard shadows.
type Shader struct {
	// Ambient is the fraction of the diffuse color always present.
	Ambient float64
	// Shininess is the Phong exponent applied to max(0, n·h).
	Shininess float64
	// IntensityScale multiplies every light's intensity.
	IntensityScale float64
	// ShadowBias offsets shadow rays off the surface.
	ShadowBias float64
}

// NewShader creates a shader with default settings.
func NewShader() *Shader {
	return &Shader{
		Ambient:        DefaultAmbient,
		Shininess:      DefaultShininess,
		IntensityScale: DefaultIntensityScale,
		ShadowBias:     DefaultShadowBias,
	}
}

// Shade returns the unclamped linear color of hit as seen from eye. hit must
// come from sc.Nearest; a hit that names no surface of sc shades to black.
func (sh *Shader) Shade(sc *scene.Scene, eye math3d.Vec3, hit scene.Hit) math3d.Vec3 {
	if hit.Surface < 0 || hit.Surface >= len(sc.Surfaces) {
		return math3d.Zero3()
	}
	surf := &sc.Surfaces[hit.Surface]
	color := surf.Diffuse.Scale(sh.Ambient)

	p, n := hit.Point, hit.Normal
	view := eye.Sub(p).Normalize()

	for _, light := range sc.Lights {
		toLight := light.Position.Sub(p)
		d := toLight.Len()
		if d < 1e-12 {
			continue
		}
		l := toLight.Scale(1 / d)

		if Occluded(sc, hit, l, d, sh.ShadowBias) {
			continue
		}

		falloff := light.Intensity * sh.IntensityScale / (d * d)

		if ndotl := n.Dot(l); ndotl > 0 {
			color = color.Add(surf.Diffuse.Scale(falloff * ndotl))
		}

		h := l.Add(view).Normalize()
		if ndoth := n.Dot(h); ndoth > 0 {
			color = color.Add(surf.Specular.Scale(falloff * math.Pow(ndoth, sh.Shininess)))
		}
	}

	return color
}
