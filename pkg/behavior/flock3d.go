package behavior

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// Palette is the set of colors a 3D boid is painted with at birth.
var Palette = []color.RGBA{
	{R: 129, G: 161, B: 193, A: 255},
	{R: 191, G: 97, B: 106, A: 255},
	{R: 208, G: 135, B: 112, A: 255},
	{R: 163, G: 190, B: 140, A: 255},
	{R: 235, G: 203, B: 139, A: 255},
	{R: 143, G: 188, B: 187, A: 255},
	{R: 136, G: 192, B: 208, A: 255},
}

// defaultHeading is used when a boid is born without velocity.
var defaultHeading = geometry.Vector3D{X: 1, Y: 1, Z: 1}.Normalize()

// Boid3D is an agent of the volume, drawn as a short segment P1-P2 along its velocity.
type Boid3D struct {
	Position geometry.Vector3D
	Velocity geometry.Vector3D
	P1, P2   geometry.Vector3D
	Color    color.RGBA

	heading geometry.Vector3D // last non-zero direction of travel
}

// NewBoid3D creates a boid and derives its segment from the velocity.
func NewBoid3D(pos, vel geometry.Vector3D, clr color.RGBA, halfLength float64) Boid3D {
	b := Boid3D{Position: pos, Velocity: vel, Color: clr, heading: defaultHeading}
	b.reshape(halfLength)
	return b
}

// Heading is the unit direction the segment is drawn along.
func (b *Boid3D) Heading() geometry.Vector3D { return b.heading }

// reshape recomputes the segment endpoints around Position.
// A zero velocity keeps the previous heading instead of producing NaN.
func (b *Boid3D) reshape(halfLength float64) {
	if dir := b.Velocity.Normalize(); dir.LenSqr() > 0 {
		b.heading = dir
	}
	offset := b.heading.Mul(halfLength)
	b.P1 = b.Position.Add(offset)
	b.P2 = b.Position.Sub(offset)
}

// Settings3D holds the constants of the volumetric flock.
type Settings3D struct {
	Rules
	HalfExtent   float64 `json:"halfExtent"`   // the volume is the cube [-HalfExtent, HalfExtent]³
	Margin       float64 `json:"margin"`       // distance from each face where turning starts
	TurnFactor   float64 `json:"turnFactor"`   // Face turning strength, per axis
	MaxSpeed     float64 `json:"maxSpeed"`
	SpawnSpeed   float64 `json:"spawnSpeed"`
	HalfLength   float64 `json:"halfLength"`   // distance from position to each segment endpoint
	ViewerRadius float64 `json:"viewerRadius"` // boids closer than this to the camera move away
	ViewerWeight float64 `json:"viewerWeight"`
}

// DefaultSettings3D returns the constants of the reference volumetric flock.
func DefaultSettings3D() Settings3D {
	return Settings3D{
		Rules: Rules{
			CohesionRadius:   2.7,
			SeparationRadius: 0.5,
			CohesionFactor:   0.001,
			AlignmentFactor:  0.05,
			SeparationFactor: 0.05,
		},
		HalfExtent:   12,
		Margin:       3.5,
		TurnFactor:   0.005,
		MaxSpeed:     0.2,
		SpawnSpeed:   0.2,
		HalfLength:   0.2,
		ViewerRadius: 0.5,
		ViewerWeight: 1.3,
	}
}

// steerInside nudges each axis of v independently when p is within a margin of a face.
func (s Settings3D) steerInside(p, v geometry.Vector3D) geometry.Vector3D {
	for axis := 0; axis < 3; axis++ {
		c := p.Axis(axis)
		if c >= s.HalfExtent-s.Margin {
			v = v.WithAxis(axis, v.Axis(axis)-s.TurnFactor)
		}
		if c <= -s.HalfExtent+s.Margin {
			v = v.WithAxis(axis, v.Axis(axis)+s.TurnFactor)
		}
	}
	return v
}

// viewerPush is the extra separation a boid feels from the camera.
func (s Settings3D) viewerPush(p, viewer geometry.Vector3D) geometry.Vector3D {
	d := p.Sub(viewer)
	if d.Len() < s.ViewerRadius {
		return d.Mul(s.ViewerWeight)
	}
	return geometry.Vector3D{}
}

// Flock3D is an ordered arena of volumetric boids.
type Flock3D struct {
	Boids    []Boid3D
	Settings Settings3D
	Order    UpdateOrder

	frame frame[geometry.Vector3D]
}

// NewFlock3D spawns n boids uniformly inside the volume.
func NewFlock3D(n int, s Settings3D, rng *rand.Rand) *Flock3D {
	f := &Flock3D{
		Boids:    make([]Boid3D, 0, n),
		Settings: s,
	}
	spread := func(half float64) float64 { return (rng.Float64()*2 - 1) * half }
	for i := 0; i < n; i++ {
		pos := geometry.Vector3D{X: spread(s.HalfExtent), Y: spread(s.HalfExtent), Z: spread(s.HalfExtent)}
		vel := geometry.Vector3D{X: spread(s.SpawnSpeed), Y: spread(s.SpawnSpeed), Z: spread(s.SpawnSpeed)}
		clr := Palette[rng.IntN(len(Palette))]
		f.Boids = append(f.Boids, NewBoid3D(pos, vel, clr, s.HalfLength))
	}
	return f
}

// Len, Position and Velocity expose the live state to the rule kernel.
func (f *Flock3D) Len() int                         { return len(f.Boids) }
func (f *Flock3D) Position(i int) geometry.Vector3D { return f.Boids[i].Position }
func (f *Flock3D) Velocity(i int) geometry.Vector3D { return f.Boids[i].Velocity }

// Step advances every boid once. viewer is the camera position, which acts as
// an extra neighbour for separation only.
func (f *Flock3D) Step(viewer geometry.Vector3D) {
	var hood neighborhood[geometry.Vector3D] = f
	if f.Order == Snapshot {
		f.frame.capture(len(f.Boids), func(i int) (geometry.Vector3D, geometry.Vector3D) {
			return f.Boids[i].Position, f.Boids[i].Velocity
		})
		hood = &f.frame
	}
	for i := range f.Boids {
		f.update(i, hood, viewer)
	}
}

func (f *Flock3D) update(i int, hood neighborhood[geometry.Vector3D], viewer geometry.Vector3D) {
	b := &f.Boids[i]
	s := f.Settings

	vel := steer(s.Rules, i, b.Position, b.Velocity, hood, s.viewerPush(b.Position, viewer))
	vel = s.steerInside(b.Position, vel)
	b.Velocity = vel.ClampLen(s.MaxSpeed)

	b.Position = b.Position.Add(b.Velocity)
	b.reshape(s.HalfLength)
}

// Positions returns a copy of every position, in flock order.
func (f *Flock3D) Positions() []geometry.Vector3D {
	out := make([]geometry.Vector3D, len(f.Boids))
	for i := range f.Boids {
		out[i] = f.Boids[i].Position
	}
	return out
}

// Velocities returns a copy of every velocity, in flock order.
func (f *Flock3D) Velocities() []geometry.Vector3D {
	out := make([]geometry.Vector3D, len(f.Boids))
	for i := range f.Boids {
		out[i] = f.Boids[i].Velocity
	}
	return out
}

// Bounds returns two opposite corners of the volume.
func (s Settings3D) Bounds() (lo, hi geometry.Vector3D) {
	h := math.Abs(s.HalfExtent)
	return geometry.Vector3D{X: -h, Y: -h, Z: -h}, geometry.Vector3D{X: h, Y: h, Z: h}
}
