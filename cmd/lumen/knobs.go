package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/lumen/internal/config"
)

// Knob steps. The ranges are the ones config.Validate accepts, so a viewer
// session starts from exactly what a headless render would use.
const (
	intensityStep = 0.05
	exponentStep  = 1.25 // multiplicative, the exponent spans five decades

	// settleEpsilon is the relative distance below which a knob snaps to its target.
	settleEpsilon = 1e-3
)

// Knob eases a scalar toward a target with a critically damped spring, so
// key presses glide instead of jumping.
type Knob struct {
	Value  float64
	Target float64
	Min    float64
	Max    float64

	initial  float64
	velocity float64
	spring   harmonica.Spring
}

// NewKnob creates a knob resting at value. frequency and damping configure
// the spring; damping 1.0 is critically damped (no overshoot).
func NewKnob(value, lo, hi float64, fps int, frequency, damping float64) *Knob {
	value = clamp(value, lo, hi)
	return &Knob{
		Value:   value,
		Target:  value,
		Min:     lo,
		Max:     hi,
		initial: value,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// Set moves the target, clamped to the knob range.
func (k *Knob) Set(target float64) {
	k.Target = clamp(target, k.Min, k.Max)
}

// Nudge adds delta to the target.
func (k *Knob) Nudge(delta float64) {
	k.Set(k.Target + delta)
}

// Scale multiplies the target by factor.
func (k *Knob) Scale(factor float64) {
	k.Set(k.Target * factor)
}

// Reset glides back to the initial value.
func (k *Knob) Reset() {
	k.Set(k.initial)
}

// Settled reports whether the knob has reached its target.
func (k *Knob) Settled() bool {
	return k.Value == k.Target
}

// Update advances the spring by one frame and reports whether Value changed.
func (k *Knob) Update() bool {
	if k.Settled() {
		return false
	}

	k.Value, k.velocity = k.spring.Update(k.Value, k.velocity, k.Target)
	k.Value = clamp(k.Value, k.Min, k.Max)

	scale := math.Max(math.Abs(k.Target), 0.01)
	if math.Abs(k.Value-k.Target)/scale < settleEpsilon && math.Abs(k.velocity)/scale < settleEpsilon {
		k.Value = k.Target
		k.velocity = 0
	}
	return true
}

// Knobs holds the two user-facing render parameters.
type Knobs struct {
	Intensity *Knob
	Exponent  *Knob
}

// NewKnobs creates the intensity and exponent knobs.
func NewKnobs(intensity, exponent float64, fps int, frequency, damping float64) *Knobs {
	return &Knobs{
		Intensity: NewKnob(intensity, config.MinIntensity, config.MaxIntensity, fps, frequency, damping),
		Exponent:  NewKnob(exponent, config.MinShininess, config.MaxShininess, fps, frequency, damping),
	}
}

// Update advances both knobs and reports whether either moved.
func (k *Knobs) Update() bool {
	a := k.Intensity.Update()
	b := k.Exponent.Update()
	return a || b
}

// Reset sends both knobs back to their initial values.
func (k *Knobs) Reset() {
	k.Intensity.Reset()
	k.Exponent.Reset()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
