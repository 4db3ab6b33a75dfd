package render

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/lumen/pkg/math3d"
)

func TestToRGBAClamps(t *testing.T) {
	tests := []struct {
		name string
		in   math3d.Vec3
		want color.RGBA
	}{
		{"black", math3d.Zero3(), color.RGBA{0, 0, 0, 255}},
		{"white", math3d.V3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"overexposed", math3d.V3(7, 1.5, 1), color.RGBA{255, 255, 255, 255}},
		{"negative", math3d.V3(-1, -0.1, 0), color.RGBA{0, 0, 0, 255}},
		{"mixed", math3d.V3(2, -1, 0.5), color.RGBA{255, 0, 128, 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToRGBA(tc.in); got != tc.want {
				t.Errorf("ToRGBA(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	red := color.RGBA{255, 0, 0, 255}

	fb.SetPixel(-1, 0, red)
	fb.SetPixel(4, 0, red)
	fb.SetPixel(0, 3, red)
	for i, p := range fb.Pixels {
		if p != (color.RGBA{}) {
			t.Fatalf("out-of-bounds write landed at %d", i)
		}
	}

	fb.SetColor(3, 2, math3d.V3(1, 0, 0))
	if fb.GetPixel(3, 2) != red {
		t.Errorf("GetPixel = %v, want red", fb.GetPixel(3, 2))
	}
	if fb.GetPixel(10, 10) != (color.RGBA{}) {
		t.Error("out-of-bounds read should be transparent")
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.Resize(4, 5)
	if fb.Width != 4 || fb.Height != 5 || len(fb.Pixels) != 20 {
		t.Errorf("after shrink: %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
	fb.Resize(20, 20)
	if len(fb.Pixels) != 400 {
		t.Errorf("after grow: %d pixels, want 400", len(fb.Pixels))
	}
	fb.Resize(-1, 5)
	if fb.Width != 0 || len(fb.Pixels) != 0 {
		t.Errorf("negative resize should empty the buffer, got %dx%d", fb.Width, fb.Height)
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(color.RGBA{0, 0, 139, 255})
	fb.SetColor(2, 1, math3d.V3(1, 1, 0))

	path := filepath.Join(t.TempDir(), "out.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}
	if got := color.RGBAModel.Convert(img.At(2, 1)).(color.RGBA); got != (color.RGBA{255, 255, 0, 255}) {
		t.Errorf("pixel (2,1) = %v, want yellow", got)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	if err := NewFramebuffer(1, 1).SavePNG("/nonexistent/dir/out.png"); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestDrawHalfBlocks(t *testing.T) {
	fb := NewFramebuffer(2, 4)
	top := color.RGBA{255, 0, 0, 255}
	bottom := color.RGBA{0, 0, 255, 255}
	fb.SetPixel(1, 2, top)
	fb.SetPixel(1, 3, bottom)

	scr := uv.NewScreenBuffer(4, 3)
	fb.Draw(scr, uv.Rect(1, 0, 3, 3))

	cell := scr.CellAt(2, 1)
	if cell == nil || cell.Content != "▀" {
		t.Fatalf("cell (2,1) = %+v, want half block", cell)
	}
	if cell.Style.Fg != top || cell.Style.Bg != bottom {
		t.Errorf("cell colors fg=%v bg=%v, want %v over %v", cell.Style.Fg, cell.Style.Bg, top, bottom)
	}

	// Framebuffer is 2 columns wide and 2 cell rows tall.
	if c := scr.CellAt(3, 0); c != nil && c.Content == "▀" {
		t.Error("draw spilled past the framebuffer width")
	}
	if c := scr.CellAt(1, 2); c != nil && c.Content == "▀" {
		t.Error("draw spilled past the framebuffer height")
	}
}
