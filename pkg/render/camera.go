package render

import (
	"github.com/taigrr/lumen/pkg/math3d"
)

// ViewPlane is the axis-aligned view window rays are cast through. It lies at
// z = Min.Z and spans Min.X..Min.X+Width horizontally and Min.Y..Min.Y+Height
// vertically.
type ViewPlane struct {
	Min    math3d.Vec3
	Width  float64
	Height float64
}

// ToWorld maps normalized window coordinates to a world point. (0, 0) is the
// bottom-left corner and (1, 1) the top-right.
func (vp ViewPlane) ToWorld(u, v float64) math3d.Vec3 {
	return math3d.V3(
		vp.Min.X+u*vp.Width,
		vp.Min.Y+v*vp.Height,
		vp.Min.Z,
	)
}

// Aspect returns Width / Height, or 0 for a degenerate window.
func (vp ViewPlane) Aspect() float64 {
	if vp.Height == 0 {
		return 0
	}
	return vp.Width / vp.Height
}

// FitAspect returns a window with the given width/height ratio and the same
// center. One side grows so the original window stays fully visible.
func (vp ViewPlane) FitAspect(aspect float64) ViewPlane {
	if aspect <= 0 || vp.Height == 0 {
		return vp
	}
	w, h := vp.Width, vp.Height
	if aspect > vp.Aspect() {
		w = h * aspect
	} else {
		h = w / aspect
	}
	return ViewPlane{
		Min:    math3d.V3(vp.Min.X+(vp.Width-w)/2, vp.Min.Y+(vp.Height-h)/2, vp.Min.Z),
		Width:  w,
		Height: h,
	}
}

// Camera is a pinhole at Eye looking through View.
type Camera struct {
	Eye  math3d.Vec3
	View ViewPlane
}

// NewCamera creates a camera with the default pose: eye at (0, 0, 10) looking
// through a 6x4 window whose lower-left corner is (-3, -2, 5).
func NewCamera() *Camera {
	return &Camera{
		Eye: math3d.V3(0, 0, 10),
		View: ViewPlane{
			Min:    math3d.V3(-3, -2, 5),
			Width:  6,
			Height: 4,
		},
	}
}

// Ray returns the primary ray through window coordinates (u, v).
func (c *Camera) Ray(u, v float64) math3d.Ray {
	return math3d.NewRay(c.Eye, c.View.ToWorld(u, v).Sub(c.Eye))
}

// Move translates the eye and the view window together.
func (c *Camera) Move(delta math3d.Vec3) {
	c.Eye = c.Eye.Add(delta)
	c.View.Min = c.View.Min.Add(delta)
}
