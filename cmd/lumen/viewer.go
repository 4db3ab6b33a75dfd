package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/lumen/internal/config"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
)

// action is a viewer command bound to a key.
type action int

const (
	actionNone action = iota
	actionQuit
	actionRerender
	actionToggleHUD
	actionIntensityUp
	actionIntensityDown
	actionExponentUp
	actionExponentDown
	actionReset
	actionSnapshot
	actionPanLeft
	actionPanRight
	actionPanUp
	actionPanDown
	actionDollyIn
	actionDollyOut
)

// moveStep is how far one camera key press moves the eye, in world units.
const moveStep = 0.5

func keyAction(ev uv.KeyPressEvent) action {
	switch {
	case ev.MatchString("escape", "ctrl+c", "q"):
		return actionQuit
	case ev.MatchString("t"):
		return actionRerender
	case ev.MatchString("h", "?", "shift+/"):
		return actionToggleHUD
	case ev.MatchString("shift+left"):
		return actionPanLeft
	case ev.MatchString("shift+right"):
		return actionPanRight
	case ev.MatchString("shift+up"):
		return actionPanUp
	case ev.MatchString("shift+down"):
		return actionPanDown
	case ev.MatchString("pgup", "+", "="):
		return actionDollyIn
	case ev.MatchString("pgdown", "-"):
		return actionDollyOut
	case ev.MatchString("up"):
		return actionIntensityUp
	case ev.MatchString("down"):
		return actionIntensityDown
	case ev.MatchString("right"):
		return actionExponentUp
	case ev.MatchString("left"):
		return actionExponentDown
	case ev.MatchString("r"):
		return actionReset
	case ev.MatchString("s"):
		return actionSnapshot
	}
	return actionNone
}

// viewer holds the interactive state. Everything runs on the main loop
// goroutine; the terminal only feeds it events.
type viewer struct {
	cfg      *config.Config
	scene    *scene.Scene
	renderer *render.Renderer
	fb       *render.Framebuffer
	knobs    *Knobs
	hud      *HUD
	log      *zap.Logger

	// baseView is the configured window before fitting it to the terminal.
	baseView render.ViewPlane
	homeEye  math3d.Vec3
	homeView render.ViewPlane
	dirty    bool
}

func newViewer(cfg *config.Config, sc *scene.Scene, r *render.Renderer, log *zap.Logger) *viewer {
	return &viewer{
		cfg:      cfg,
		scene:    sc,
		renderer: r,
		fb:       render.NewFramebuffer(0, 0),
		knobs: NewKnobs(cfg.Shading.Intensity, cfg.Shading.Shininess,
			cfg.Viewer.FPS, cfg.Viewer.SpringFrequency, cfg.Viewer.SpringDamping),
		hud:      NewHUD(sceneName(cfg.Scene), len(sc.Surfaces), len(sc.Lights), cfg.Viewer.ShowHUD),
		log:      log,
		baseView: r.Camera.View,
		homeEye:  r.Camera.Eye,
		homeView: r.Camera.View,
		dirty:    true,
	}
}

// resize fits the framebuffer and view window to a terminal of cols x rows
// cells. Each cell holds two pixel rows.
func (v *viewer) resize(cols, rows int) {
	v.fb.Resize(cols, rows*2)
	if cols > 0 && rows > 0 {
		v.renderer.Camera.View = v.baseView.FitAspect(float64(cols) / float64(rows*2))
	}
	v.dirty = true
}

// apply runs a command and reports whether the viewer should quit.
func (v *viewer) apply(ctx context.Context, a action) bool {
	switch a {
	case actionQuit:
		return true
	case actionRerender:
		v.dirty = true
	case actionToggleHUD:
		v.hud.Visible = !v.hud.Visible
	case actionIntensityUp:
		v.knobs.Intensity.Nudge(intensityStep)
	case actionIntensityDown:
		v.knobs.Intensity.Nudge(-intensityStep)
	case actionExponentUp:
		v.knobs.Exponent.Scale(exponentStep)
	case actionExponentDown:
		v.knobs.Exponent.Scale(1 / exponentStep)
	case actionReset:
		v.knobs.Reset()
		v.move(v.homeEye.Sub(v.renderer.Camera.Eye))
		v.baseView = v.homeView
	case actionPanLeft:
		v.move(math3d.V3(-moveStep, 0, 0))
	case actionPanRight:
		v.move(math3d.V3(moveStep, 0, 0))
	case actionPanUp:
		v.move(math3d.V3(0, moveStep, 0))
	case actionPanDown:
		v.move(math3d.V3(0, -moveStep, 0))
	case actionDollyIn:
		v.move(math3d.V3(0, 0, -moveStep))
	case actionDollyOut:
		v.move(math3d.V3(0, 0, moveStep))
	case actionSnapshot:
		base := filepath.Join(v.cfg.Viewer.SnapshotDir, "lumen-"+time.Now().Format("20060102-150405"))
		if err := v.snapshot(ctx, base); err != nil {
			v.log.Error("snapshot failed", zap.String("path", base), zap.Error(err))
		} else {
			v.log.Info("snapshot saved", zap.String("path", base))
		}
	}
	return false
}

// move translates the camera and its unfitted window by delta.
func (v *viewer) move(delta math3d.Vec3) {
	v.renderer.Camera.Move(delta)
	v.baseView.Min = v.baseView.Min.Add(delta)
	v.dirty = true
}

// tick advances the knobs and re-renders when something changed. It reports
// whether the framebuffer was updated.
func (v *viewer) tick(ctx context.Context) (bool, error) {
	if v.knobs.Update() {
		v.dirty = true
	}
	if !v.dirty {
		return false, nil
	}

	v.renderer.Shader.IntensityScale = v.knobs.Intensity.Value
	v.renderer.Shader.Shininess = v.knobs.Exponent.Value
	if err := v.renderer.Render(ctx, v.scene, v.fb); err != nil {
		return false, err
	}
	v.hud.SetFrameTime(v.renderer.LastFrame())
	v.dirty = false
	return true, nil
}

// snapshot renders the current knob and camera settings at the configured
// output size and writes base.png. Next to it go base.yaml with the scene and
// base.config.yaml with a config that reproduces the image headless.
func (v *viewer) snapshot(ctx context.Context, base string) error {
	r := *v.renderer
	cam := *v.renderer.Camera
	cam.View = v.baseView
	shader := *v.renderer.Shader
	r.Camera, r.Shader = &cam, &shader

	if err := renderToFile(ctx, &r, v.scene, v.cfg.Render.Width, v.cfg.Render.Height, base+".png"); err != nil {
		return err
	}

	data, err := scene.MarshalYAML(v.scene)
	if err != nil {
		return err
	}
	if err := os.WriteFile(base+".yaml", data, 0o644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	cfg := *v.cfg
	cfg.Scene.Path = base + ".yaml"
	cfg.Render.Output = ""
	cfg.Shading.Intensity = shader.IntensityScale
	cfg.Shading.Shininess = shader.Shininess
	cfg.Camera.Eye = [3]float64{cam.Eye.X, cam.Eye.Y, cam.Eye.Z}
	cfg.Camera.ViewMin = [3]float64{cam.View.Min.X, cam.View.Min.Y, cam.View.Min.Z}
	cfg.Camera.ViewWidth, cfg.Camera.ViewHeight = cam.View.Width, cam.View.Height
	return cfg.SaveTo(base + ".config.yaml")
}

// renderToFile renders one frame of width x height pixels and saves it as PNG.
func renderToFile(ctx context.Context, r *render.Renderer, sc *scene.Scene, width, height int, path string) error {
	fb := render.NewFramebuffer(width, height)
	if err := r.Render(ctx, sc, fb); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return fb.SavePNG(path)
}

// runViewer takes over the terminal until the user quits or ctx is cancelled.
func runViewer(ctx context.Context, v *viewer) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		return fmt.Errorf("resize terminal: %w", err)
	}

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		_ = term.Shutdown(context.Background())
	}()

	v.resize(width, height)
	v.log.Info("viewer started", zap.Int("cols", width), zap.Int("rows", height))

	ticker := time.NewTicker(time.Second / time.Duration(v.cfg.Viewer.FPS))
	defer ticker.Stop()

	redraw := true
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-term.Events():
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				if err := term.Resize(width, height); err != nil {
					return fmt.Errorf("resize terminal: %w", err)
				}
				v.resize(width, height)
			case uv.KeyPressEvent:
				if v.apply(ctx, keyAction(ev)) {
					return nil
				}
				redraw = true
			}

		case <-ticker.C:
			updated, err := v.tick(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			v.hud.UpdateFPS()
			if !updated && !redraw && !v.hud.Visible {
				continue
			}
			redraw = false

			area := uv.Rect(0, 0, width, height)
			term.Draw(v.fb)
			v.hud.Draw(term, area, v.knobs)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
