package main

import (
	"fmt"
	"image/color"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
)

var (
	hudBg     = color.RGBA{0, 0, 0, 255}
	hudWhite  = color.RGBA{240, 240, 240, 255}
	hudGreen  = color.RGBA{80, 250, 123, 255}
	hudCyan   = color.RGBA{139, 233, 253, 255}
	hudYellow = color.RGBA{241, 250, 140, 255}
	hudDim    = color.RGBA{130, 130, 130, 255}
)

// HUD renders an overlay with scene info, knob values and key hints.
type HUD struct {
	Visible bool

	title    string
	surfaces int
	lights   int

	fps       float64
	fpsFrames int
	fpsTime   time.Time
	frameTime time.Duration
}

// NewHUD creates a new HUD
func NewHUD(title string, surfaces, lights int, visible bool) *HUD {
	return &HUD{
		Visible:  visible,
		title:    title,
		surfaces: surfaces,
		lights:   lights,
		fpsTime:  time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per loop iteration).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// SetFrameTime records how long the last ray-traced frame took.
func (h *HUD) SetFrameTime(d time.Duration) {
	h.frameTime = d
}

// Draw paints the top and bottom rows of area.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, knobs *Knobs) {
	if !h.Visible || area.Dy() < 2 {
		return
	}
	top, bottom := area.Min.Y, area.Max.Y-1
	width := area.Dx()

	fillRow(scr, area, top)
	fillRow(scr, area, bottom)

	drawText(scr, area, area.Min.X, top, fmt.Sprintf(" %.0f FPS  %s/frame ", h.fps, h.frameTime.Round(time.Millisecond)), hudGreen, false)

	title := " " + h.title + " "
	drawText(scr, area, area.Min.X+max((width-len(title))/2, 0), top, title, hudWhite, true)

	counts := fmt.Sprintf(" %d surfaces  %d lights ", h.surfaces, h.lights)
	drawText(scr, area, area.Min.X+max(width-len(counts), 0), top, counts, hudCyan, false)

	knobText := fmt.Sprintf(" intensity %.2f  exponent %.0f ", knobs.Intensity.Value, knobs.Exponent.Value)
	drawText(scr, area, area.Min.X, bottom, knobText, hudYellow, true)

	hint := " ↑↓ intensity  ←→ exponent  ⇧ move  r reset  s snapshot  ? hud "
	drawText(scr, area, area.Min.X+max(width-len([]rune(hint)), 0), bottom, hint, hudDim, false)
}

func fillRow(scr uv.Screen, area uv.Rectangle, y int) {
	for x := area.Min.X; x < area.Max.X; x++ {
		scr.SetCell(x, y, &uv.Cell{Content: " ", Width: 1, Style: uv.Style{Bg: hudBg}})
	}
}

// drawText writes single-width runes starting at (x, y), clipped to area.
func drawText(scr uv.Screen, area uv.Rectangle, x, y int, s string, fg color.Color, bold bool) {
	style := uv.Style{Fg: fg, Bg: hudBg}
	if bold {
		style.Attrs = uv.AttrBold
	}
	for _, r := range s {
		if x >= area.Max.X {
			return
		}
		if x >= area.Min.X {
			scr.SetCell(x, y, &uv.Cell{Content: string(r), Width: 1, Style: style})
		}
		x++
	}
}
