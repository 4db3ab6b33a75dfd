package render

import (
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/scene"
)

// Occluded reports whether a shadow-casting surface other than the one hit
// blocks the segment from hit.Point toward a light at distance dist along the
// unit direction l. The shadow ray starts bias along l to avoid self-hits.
// A hit with no valid surface index skips nothing and relies on the bias.
func Occluded(sc *scene.Scene, hit scene.Hit, l math3d.Vec3, dist, bias float64) bool {
	ray := math3d.Ray{Origin: hit.Point.Add(l.Scale(bias)), Dir: l}
	limit := dist - bias

	for i := range sc.Surfaces {
		if i == hit.Surface || !sc.Surfaces[i].CastsShadow {
			continue
		}
		if h, ok := sc.Surfaces[i].Intersect(ray); ok && h.T > 0 && h.T < limit {
			return true
		}
	}
	return false
}
