package scene

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Light is a point light. It has no color of its own; it contributes through
// the diffuse and specular colors of the surfaces it reaches.
type Light struct {
	Name      string
	Position  math3d.Vec3
	Intensity float64
}

// Scene is an ordered list of surfaces and lights. A surface's identity is
// its index in Surfaces.
type Scene struct {
	Surfaces []Surface
	Lights   []Light
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		Surfaces: make([]Surface, 0),
		Lights:   make([]Light, 0),
	}
}

// Add appends a surface and returns its index.
func (sc *Scene) Add(s Surface) int {
	sc.Surfaces = append(sc.Surfaces, s)
	return len(sc.Surfaces) - 1
}

// AddLight appends a light.
func (sc *Scene) AddLight(l Light) {
	sc.Lights = append(sc.Lights, l)
}

// Nearest tests ray against every surface and returns the hit with the
// smallest positive parameter. Hit.Surface holds the surface index.
func (sc *Scene) Nearest(ray math3d.Ray) (Hit, bool) {
	best := Hit{T: math.Inf(1), Surface: -1}
	for i := range sc.Surfaces {
		hit, ok := sc.Surfaces[i].Intersect(ray)
		if !ok || hit.T >= best.T {
			continue
		}
		hit.Surface = i
		best = hit
	}
	return best, best.Surface >= 0
}

// RGB converts 8-bit channel values to a linear color in [0, 1].
func RGB(r, g, b uint8) math3d.Vec3 {
	return math3d.V3(float64(r)/255, float64(g)/255, float64(b)/255)
}

// Default builds the demo scene: a ground plane and a back wall, three
// overlapping spheres and three point lights.
//
// Light intensities are radiant powers; with inverse-square falloff and the
// default 0.2 intensity multiplier each light delivers roughly 0.55 at the
// origin.
func Default() *Scene {
	sc := New()

	sc.Add(NewPlane("ground", math3d.V3(0, -5, 0), math3d.V3(0, 1, 0), RGB(0, 0, 139), 600, 400))
	sc.Add(NewPlane("wall", math3d.V3(0, 1, -50), math3d.V3(0, 0, 1), RGB(169, 169, 169), 600, 400))
	sc.Add(NewSphere("purple", math3d.V3(0, 1, -2), 1, RGB(128, 0, 128)))
	sc.Add(NewSphere("blue", math3d.V3(-1, 0, 1), 1, RGB(0, 0, 255)))
	sc.Add(NewSphere("green", math3d.V3(0.5, 0, 0), 1, RGB(0, 128, 0)))

	sc.AddLight(Light{Name: "top right", Position: math3d.V3(100, 150, 150), Intensity: 150000})
	sc.AddLight(Light{Name: "top left", Position: math3d.V3(-200, 300, 450), Intensity: 900000})
	sc.AddLight(Light{Name: "bottom", Position: math3d.V3(-25, 1, 100), Intensity: 30000})

	return sc
}
