// Package scene describes the static world lumen renders: bounded planes,
// spheres and point lights.
package scene

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// parallelEpsilon is the smallest |dir·normal| still treated as a crossing.
const parallelEpsilon = 1e-8

// Kind identifies the geometry variant of a Surface.
type Kind int

const (
	KindPlane  Kind = iota // Bounded rectangle
	KindSphere             // Sphere
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// DefaultSpecular is the specular color surfaces get unless overridden (light gray).
var DefaultSpecular = RGB(211, 211, 211)

// Surface is one renderable object. It is a tagged variant: Kind selects
// which of the geometry fields are meaningful.
type Surface struct {
	Name     string
	Kind     Kind
	Position math3d.Vec3 // Plane center or sphere center
	Diffuse  math3d.Vec3 // Linear RGB in [0, 1]
	Specular math3d.Vec3 // Linear RGB in [0, 1]

	// CastsShadow marks the surface as an occluder for shadow rays.
	CastsShadow bool

	// Plane
	Normal math3d.Vec3 // Unit normal
	Axis   math3d.Vec3 // Direction of Width; zero picks one from the normal
	Width  float64     // Extent along the plane's U axis
	Height float64     // Extent along the plane's V axis

	// Sphere
	Radius float64
}

// Hit is the result of a successful ray-surface intersection.
type Hit struct {
	T       float64     // Ray parameter of the hit
	Point   math3d.Vec3 // World-space hit point
	Normal  math3d.Vec3 // Unit surface normal at Point
	Surface int         // Index into Scene.Surfaces, set by Scene.Nearest
}

// NewPlane creates a bounded plane centered on position. The normal is
// normalized.
func NewPlane(name string, position, normal math3d.Vec3, diffuse math3d.Vec3, width, height float64) Surface {
	return Surface{
		Name:        name,
		Kind:        KindPlane,
		Position:    position,
		Normal:      normal.Normalize(),
		Diffuse:     diffuse,
		Specular:    DefaultSpecular,
		CastsShadow: true,
		Width:       width,
		Height:      height,
	}
}

// NewSphere creates a sphere.
func NewSphere(name string, center math3d.Vec3, radius float64, diffuse math3d.Vec3) Surface {
	return Surface{
		Name:        name,
		Kind:        KindSphere,
		Position:    center,
		Diffuse:     diffuse,
		Specular:    DefaultSpecular,
		CastsShadow: true,
		Radius:      radius,
	}
}

// Intersect returns the closest hit of ray with s at a positive parameter.
// The returned Hit has Surface set to -1 since s does not know its index;
// use Scene.Nearest for hits that can be shaded.
func (s Surface) Intersect(ray math3d.Ray) (Hit, bool) {
	switch s.Kind {
	case KindPlane:
		return s.intersectPlane(ray)
	case KindSphere:
		return s.intersectSphere(ray)
	default:
		return Hit{}, false
	}
}

// NormalAt returns the unit surface normal at point p.
func (s Surface) NormalAt(p math3d.Vec3) math3d.Vec3 {
	if s.Kind == KindSphere {
		return p.Sub(s.Position).Normalize()
	}
	return s.Normal
}

func (s Surface) intersectPlane(ray math3d.Ray) (Hit, bool) {
	denom := ray.Dir.Dot(s.Normal)
	if math.Abs(denom) < parallelEpsilon {
		return Hit{}, false
	}

	t := s.Position.Sub(ray.Origin).Dot(s.Normal) / denom
	if t <= 0 {
		return Hit{}, false
	}

	p := ray.At(t)
	if !s.withinBounds(p) {
		return Hit{}, false
	}

	return Hit{T: t, Point: p, Normal: s.Normal, Surface: -1}, true
}

// withinBounds reports whether p (assumed on the plane) lies strictly inside
// the rectangle. Points on an edge are outside.
func (s Surface) withinBounds(p math3d.Vec3) bool {
	u, v := s.PlaneAxes()
	d := p.Sub(s.Position)
	a := d.Dot(u)
	b := d.Dot(v)
	halfW := s.Width / 2
	halfH := s.Height / 2
	return a > -halfW && a < halfW && b > -halfH && b < halfH
}

// PlaneAxes returns the in-plane unit axes (u, v) that Width and Height are
// measured along. u is Axis projected into the plane. Without a usable Axis
// it is world X projected instead (world Z when the normal is close to X).
// v = normal × u. For a ground plane with normal +Y this yields the X and Z
// axes.
func (s Surface) PlaneAxes() (u, v math3d.Vec3) {
	n := s.Normal
	u = s.Axis.Sub(n.Scale(s.Axis.Dot(n)))
	if u.LenSq() < 1e-12 {
		ref := math3d.V3(1, 0, 0)
		if math.Abs(n.X) > 0.9 {
			ref = math3d.V3(0, 0, 1)
		}
		u = ref.Sub(n.Scale(ref.Dot(n)))
	}
	u = u.Normalize()
	v = n.Cross(u)
	return u, v
}

func (s Surface) intersectSphere(ray math3d.Ray) (Hit, bool) {
	// Quadratic equation coefficients: at² + 2bt + c = 0
	oc := ray.Origin.Sub(s.Position)
	a := ray.Dir.Dot(ray.Dir)
	halfB := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	// Grazing rays (zero discriminant) count as misses.
	disc := halfB*halfB - a*c
	if disc <= 0 || a == 0 {
		return Hit{}, false
	}

	sqrtD := math.Sqrt(disc)
	t := (-halfB - sqrtD) / a
	if t <= 0 {
		// Origin inside the sphere: the far root is the hit.
		t = (-halfB + sqrtD) / a
		if t <= 0 {
			return Hit{}, false
		}
	}

	p := ray.At(t)
	return Hit{T: t, Point: p, Normal: s.NormalAt(p), Surface: -1}, true
}
