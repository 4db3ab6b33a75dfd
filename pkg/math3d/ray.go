package math3d

// Ray is a half-line with an origin and a unit-length direction.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// NewRay creates a ray from origin along dir. The direction is normalized.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// At returns the point origin + t*dir.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}
