package render

import (
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

func TestViewPlaneToWorld(t *testing.T) {
	vp := NewCamera().View

	tests := []struct {
		name string
		u, v float64
		want math3d.Vec3
	}{
		{"bottom left", 0, 0, math3d.V3(-3, -2, 5)},
		{"top right", 1, 1, math3d.V3(3, 2, 5)},
		{"center", 0.5, 0.5, math3d.V3(0, 0, 5)},
		{"top left", 0, 1, math3d.V3(-3, 2, 5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := vp.ToWorld(tc.u, tc.v); !got.ApproxEqual(tc.want, 1e-12) {
				t.Errorf("ToWorld(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}

	if vp.Aspect() != 1.5 {
		t.Errorf("Aspect = %v, want 1.5", vp.Aspect())
	}
	if (ViewPlane{Width: 1}).Aspect() != 0 {
		t.Error("zero-height window should report aspect 0")
	}
}

func TestViewPlaneFitAspect(t *testing.T) {
	vp := NewCamera().View

	tests := []struct {
		name   string
		aspect float64
		w, h   float64
	}{
		{"same", 1.5, 6, 4},
		{"wider", 3, 12, 4},
		{"taller", 1, 6, 6},
		{"invalid", 0, 6, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := vp.FitAspect(tc.aspect)
			if math.Abs(got.Width-tc.w) > 1e-12 || math.Abs(got.Height-tc.h) > 1e-12 {
				t.Errorf("size = %vx%v, want %vx%v", got.Width, got.Height, tc.w, tc.h)
			}
			if !got.ToWorld(0.5, 0.5).ApproxEqual(vp.ToWorld(0.5, 0.5), 1e-12) {
				t.Errorf("center moved to %v", got.ToWorld(0.5, 0.5))
			}
		})
	}
}

func TestCameraRay(t *testing.T) {
	cam := NewCamera()

	center := cam.Ray(0.5, 0.5)
	if center.Origin != cam.Eye {
		t.Errorf("origin = %v, want eye %v", center.Origin, cam.Eye)
	}
	if !center.Dir.ApproxEqual(math3d.V3(0, 0, -1), 1e-12) {
		t.Errorf("center dir = %v, want (0, 0, -1)", center.Dir)
	}

	corner := cam.Ray(1, 1)
	want := math3d.V3(3, 2, -5).Normalize()
	if !corner.Dir.ApproxEqual(want, 1e-12) {
		t.Errorf("corner dir = %v, want %v", corner.Dir, want)
	}
	if !corner.At(math3d.V3(3, 2, -5).Len()).ApproxEqual(math3d.V3(3, 2, 5), 1e-9) {
		t.Error("corner ray does not pass through the window corner")
	}
}

func TestCameraMove(t *testing.T) {
	cam := NewCamera()
	before := cam.Ray(0.25, 0.75).Dir

	cam.Move(math3d.V3(1, 2, 3))
	if cam.Eye != math3d.V3(1, 2, 13) {
		t.Errorf("eye = %v, want (1, 2, 13)", cam.Eye)
	}
	if after := cam.Ray(0.25, 0.75).Dir; !after.ApproxEqual(before, 1e-12) {
		t.Errorf("moving should not change ray directions: %v vs %v", after, before)
	}
}
