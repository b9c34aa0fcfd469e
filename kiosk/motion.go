/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

import (
	"math"
	"math/rand/v2"
)

const (
	DefaultMinSpeed = 170.0
	DefaultMaxSpeed = 230.0
	// MaxStep bounds a single simulation step, in seconds.
	MaxStep = 0.05
)

// Size is a width and height in pixels.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Bounds is the space the screensaver glyph moves in.
type Bounds struct {
	Viewport Size
	Glyph    Size
}

func (b Bounds) known() bool {
	return b.Viewport.W > 0 && b.Viewport.H > 0
}

func (b Bounds) maxX() float64 {
	return max(0, b.Viewport.W-b.Glyph.W)
}

func (b Bounds) maxY() float64 {
	return max(0, b.Viewport.H-b.Glyph.H)
}

// MotionState is the position and velocity of the screensaver glyph, in
// pixels and pixels per second.
type MotionState struct {
	X, Y   float64
	VX, VY float64
	Hue    float64
	HasHue bool
}

// Bounce reports which edges were hit during a step.
type Bounce struct {
	X, Y bool
}

func (b Bounce) Corner() bool {
	return b.X && b.Y
}

// StartMotion centers the glyph and gives it a diagonal velocity: one speed
// in [minSpeed, maxSpeed) shared by both axes, each with a random sign.
func StartMotion(b Bounds, minSpeed, maxSpeed float64, rng *rand.Rand) MotionState {
	speed := minSpeed + rng.Float64()*(maxSpeed-minSpeed)

	s := MotionState{
		X:  max(0, math.Floor((b.Viewport.W-b.Glyph.W)/2)),
		Y:  max(0, math.Floor((b.Viewport.H-b.Glyph.H)/2)),
		VX: speed,
		VY: speed,
	}
	if rng.Float64() <= 0.5 {
		s.VX = -s.VX
	}
	if rng.Float64() <= 0.5 {
		s.VY = -s.VY
	}

	return s
}

// Advance moves the glyph by dt seconds, reflecting off the viewport edges.
// A step that hits both axes picks a new hue.
func Advance(s MotionState, dt float64, b Bounds, rng *rand.Rand) (MotionState, Bounce) {
	var hit Bounce

	if !b.known() {
		return s, hit
	}

	dt = min(max(dt, 0), MaxStep)

	s.X += s.VX * dt
	s.Y += s.VY * dt

	if s.X <= 0 {
		s.X = 0
		s.VX = math.Abs(s.VX)
		hit.X = true
	} else if s.X >= b.maxX() {
		s.X = b.maxX()
		s.VX = -math.Abs(s.VX)
		hit.X = true
	}

	if s.Y <= 0 {
		s.Y = 0
		s.VY = math.Abs(s.VY)
		hit.Y = true
	} else if s.Y >= b.maxY() {
		s.Y = b.maxY()
		s.VY = -math.Abs(s.VY)
		hit.Y = true
	}

	if hit.Corner() {
		s.Hue = float64(rng.IntN(360))
		s.HasHue = true
	}

	return s, hit
}

// Reclamp keeps the glyph inside new bounds without touching its velocity.
func Reclamp(s MotionState, b Bounds) MotionState {
	s.X = min(max(0, s.X), b.maxX())
	s.Y = min(max(0, s.Y), b.maxY())

	return s
}
