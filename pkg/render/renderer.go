package render

import (
	"context"
	"image/color"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/lumen/pkg/scene"
)

// Renderer drives one frame: a primary ray per pixel center, nearest hit,
// shading, and a clamped write into the framebuffer.
type Renderer struct {
	Camera     *Camera
	Shader     *Shader
	Background color.RGBA

	// Workers bounds how many rows render concurrently. Zero or less means
	// runtime.NumCPU().
	Workers int

	// Logger receives per-frame debug output. Nil disables logging.
	Logger *zap.Logger

	lastFrame time.Duration
}

// NewRenderer creates a renderer with the default camera and shader.
func NewRenderer() *Renderer {
	return &Renderer{
		Camera:     NewCamera(),
		Shader:     NewShader(),
		Background: color.RGBA{0, 0, 0, 255},
		Workers:    runtime.NumCPU(),
	}
}

// LastFrame returns how long the most recent Render call took.
func (r *Renderer) LastFrame() time.Duration {
	return r.lastFrame
}

// Render fills fb with the image of sc. Rows are rendered in parallel and
// write disjoint pixels. The only error is ctx.Err() after cancellation, in
// which case fb may be partially written.
func (r *Renderer) Render(ctx context.Context, sc *scene.Scene, fb *Framebuffer) error {
	start := time.Now()
	w, h := fb.Width, fb.Height
	if w <= 0 || h <= 0 {
		return nil
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for j := 0; j < h; j++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.renderRow(sc, fb, j)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.lastFrame = time.Since(start)
	if r.Logger != nil {
		r.Logger.Debug("frame rendered",
			zap.Int("width", w),
			zap.Int("height", h),
			zap.Int("surfaces", len(sc.Surfaces)),
			zap.Int("lights", len(sc.Lights)),
			zap.Duration("elapsed", r.lastFrame),
		)
	}
	return nil
}

func (r *Renderer) renderRow(sc *scene.Scene, fb *Framebuffer, j int) {
	w, h := float64(fb.Width), float64(fb.Height)
	v := 1 - (float64(j)+0.5)/h

	for i := 0; i < fb.Width; i++ {
		u := (float64(i) + 0.5) / w
		ray := r.Camera.Ray(u, v)

		hit, ok := sc.Nearest(ray)
		if !ok {
			fb.SetPixel(i, j, r.Background)
			continue
		}
		fb.SetColor(i, j, r.Shader.Shade(sc, r.Camera.Eye, hit))
	}
}
