package behavior

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// Boid2D is a flat agent drawn as a triangle.
// Centroid is its position; the three points always surround it and are
// rotated so that the triangle follows the velocity.
type Boid2D struct {
	P1, P2, P3 geometry.Vector2D
	Centroid   geometry.Vector2D
	Velocity   geometry.Vector2D
	Angle      float64 // current facing, radians, Y axis up
}

// NewBoid2D builds the triangle spawn, spawn+(5,-15), spawn+(10,0) pointing up the screen.
func NewBoid2D(spawn, velocity geometry.Vector2D) Boid2D {
	p1 := spawn
	p2 := spawn.Add(geometry.Vector2D{X: 5, Y: -15})
	p3 := spawn.Add(geometry.Vector2D{X: 10, Y: 0})
	return Boid2D{
		P1:       p1,
		P2:       p2,
		P3:       p3,
		Centroid: geometry.Centroid(p1, p2, p3),
		Velocity: velocity,
		Angle:    math.Pi / 2,
	}
}

// Rotate turns the triangle around its centroid so that it faces angle.
func (b *Boid2D) Rotate(angle float64) {
	delta := angle - b.Angle
	b.Angle = angle
	b.P1 = b.P1.RotateScreen(delta, b.Centroid)
	b.P2 = b.P2.RotateScreen(delta, b.Centroid)
	b.P3 = b.P3.RotateScreen(delta, b.Centroid)
}

// translate moves the whole shape by d.
func (b *Boid2D) translate(d geometry.Vector2D) {
	b.Centroid = b.Centroid.Add(d)
	b.P1 = b.P1.Add(d)
	b.P2 = b.P2.Add(d)
	b.P3 = b.P3.Add(d)
}

// Settings2D holds the constants of the flat flock.
type Settings2D struct {
	Rules
	Margin     float64 `json:"margin"`     // distance from each edge where turning starts
	TurnFactor float64 `json:"turnFactor"` // Edge turning strength
	MaxSpeed   float64 `json:"maxSpeed"`
	SpawnSpeed float64 `json:"spawnSpeed"` // initial velocity components are drawn in [-SpawnSpeed, SpawnSpeed)
}

// DefaultSettings2D returns the constants of the reference flat flock.
func DefaultSettings2D() Settings2D {
	return Settings2D{
		Rules: Rules{
			CohesionRadius:   75,
			SeparationRadius: 25,
			CohesionFactor:   0.005,
			AlignmentFactor:  0.05,
			SeparationFactor: 0.05,
		},
		Margin:     80,
		TurnFactor: 1,
		MaxSpeed:   5.5,
		SpawnSpeed: 5,
	}
}

// steerInside nudges v back towards the viewport when p is inside a margin.
func (s Settings2D) steerInside(p, v geometry.Vector2D, width, height float64) geometry.Vector2D {
	if p.X < s.Margin {
		v.X += s.TurnFactor
	}
	if p.X > width-s.Margin {
		v.X -= s.TurnFactor
	}
	if p.Y < s.Margin {
		v.Y += s.TurnFactor
	}
	if p.Y > height-s.Margin {
		v.Y -= s.TurnFactor
	}
	return v
}

// Flock2D is an ordered arena of flat boids.
type Flock2D struct {
	Boids    []Boid2D
	Settings Settings2D
	Order    UpdateOrder

	frame frame[geometry.Vector2D]
}

// NewFlock2D spawns n boids uniformly inside a width x height viewport.
func NewFlock2D(n int, width, height float64, s Settings2D, rng *rand.Rand) *Flock2D {
	f := &Flock2D{
		Boids:    make([]Boid2D, 0, n),
		Settings: s,
	}
	for i := 0; i < n; i++ {
		spawn := geometry.Vector2D{X: rng.Float64() * width, Y: rng.Float64() * height}
		vel := geometry.Vector2D{
			X: (rng.Float64()*2 - 1) * s.SpawnSpeed,
			Y: (rng.Float64()*2 - 1) * s.SpawnSpeed,
		}
		f.Boids = append(f.Boids, NewBoid2D(spawn, vel))
	}
	return f
}

// Len, Position and Velocity expose the live state to the rule kernel.
func (f *Flock2D) Len() int                         { return len(f.Boids) }
func (f *Flock2D) Position(i int) geometry.Vector2D { return f.Boids[i].Centroid }
func (f *Flock2D) Velocity(i int) geometry.Vector2D { return f.Boids[i].Velocity }

// Step advances every boid once inside a width x height viewport.
func (f *Flock2D) Step(width, height float64) {
	var hood neighborhood[geometry.Vector2D] = f
	if f.Order == Snapshot {
		f.frame.capture(len(f.Boids), func(i int) (geometry.Vector2D, geometry.Vector2D) {
			return f.Boids[i].Centroid, f.Boids[i].Velocity
		})
		hood = &f.frame
	}
	for i := range f.Boids {
		f.update(i, hood, width, height)
	}
}

func (f *Flock2D) update(i int, hood neighborhood[geometry.Vector2D], width, height float64) {
	b := &f.Boids[i]
	s := f.Settings

	vel := steer(s.Rules, i, b.Centroid, b.Velocity, hood, geometry.Vector2D{})
	vel = s.steerInside(b.Centroid, vel, width, height)
	b.Velocity = vel.ClampLen(s.MaxSpeed)

	b.translate(b.Velocity)
	b.Rotate(b.Velocity.Heading())
}

// Positions returns a copy of every centroid, in flock order.
func (f *Flock2D) Positions() []geometry.Vector2D {
	out := make([]geometry.Vector2D, len(f.Boids))
	for i := range f.Boids {
		out[i] = f.Boids[i].Centroid
	}
	return out
}

// Velocities returns a copy of every velocity, in flock order.
func (f *Flock2D) Velocities() []geometry.Vector2D {
	out := make([]geometry.Vector2D, len(f.Boids))
	for i := range f.Boids {
		out[i] = f.Boids[i].Velocity
	}
	return out
}
