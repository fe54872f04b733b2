package simulation

import (
	"image/color"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// Action is a user intent, independent of the physical key bound to it.
type Action int

const (
	Forward Action = iota
	Back
	Left
	Right
	Exit
	ToggleTrails
	TogglePanel
	Reseed
)

// Input is polled once per frame by Simulation.Tick.
type Input interface {
	// Pressed reports whether the action is held down.
	Pressed(a Action) bool
	// JustPressed reports whether the action started this frame.
	JustPressed(a Action) bool
	// CursorDelta is the cursor displacement since the previous frame, in pixels.
	CursorDelta() (dx, dy float64)
	// FrameTime is the wall time elapsed since the previous frame, in seconds.
	FrameTime() float64
}

// Canvas is the drawing surface of one frame. Coordinates are pixels, Y down.
type Canvas interface {
	Clear(c color.Color)
	FillTriangle(a, b, c geometry.Vector2D, clr color.Color)
	Line(a, b geometry.Vector2D, width float64, clr color.Color)
	Size() (width, height float64)
}

// Colors of the scene.
var (
	BackgroundColor = color.RGBA{R: 36, G: 42, B: 54, A: 255}
	BoidColor       = color.RGBA{R: 129, G: 161, B: 193, A: 255}
	TrailColor      = color.RGBA{R: 139, G: 171, B: 243, A: 255}
	CubeColor       = color.RGBA{R: 216, G: 222, B: 233, A: 255}
)
