// Package simulation drives a flock frame by frame: it polls input, decides
// how many steps to run, keeps the 2D trails and draws the scene on a Canvas.
package simulation

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/camera"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// ErrExit is returned by Tick when the user asked to quit.
var ErrExit = errors.New("exit requested")

// statsEvery is the number of steps between two debug log lines.
const statsEvery = 600

// Simulation owns everything that changes while the program runs.
type Simulation struct {
	cfg    *Config
	logger log.Logger
	mode   Mode
	seed   uint64
	rng    *rand.Rand

	flat   *behavior.Flock2D
	trails []*behavior.Trail
	volume *behavior.Flock3D
	cam    *camera.Camera

	stepper    *behavior.Stepper
	order      behavior.UpdateOrder
	showTrails bool
	showPanel  bool

	width, height float64 // viewport of the last tick
	steps         uint64
	lastSteps     int // steps run by the last tick
}

// New builds a simulation from a validated copy of cfg.
func New(cfg *Config, logger log.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, _ := ParseMode(cfg.Mode)
	timing, _ := behavior.ParseTiming(cfg.Timing)
	order, _ := behavior.ParseUpdateOrder(cfg.UpdateOrder)

	c := *cfg
	s := &Simulation{
		cfg:        &c,
		logger:     logger,
		mode:       mode,
		order:      order,
		showTrails: cfg.Trails,
		showPanel:  true,
		width:      float64(cfg.WindowWidth),
		height:     float64(cfg.WindowHeight),
		stepper: &behavior.Stepper{
			Timing:   timing,
			Step:     cfg.FixedStep,
			MaxSteps: cfg.MaxCatchUpSteps,
		},
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	s.spawn(seed)
	logger.Infof("simulation ready: mode=%s boids=%d timing=%s order=%s seed=%d",
		mode, cfg.NumBoids, timing, order, seed)
	return s, nil
}

// spawn recreates the flock and its trails from seed. The camera survives a reseed.
func (s *Simulation) spawn(seed uint64) {
	s.seed = seed
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s.steps = 0
	s.stepper.Reset()

	switch s.mode {
	case Mode2D:
		s.flat = behavior.NewFlock2D(s.cfg.NumBoids, s.width, s.height, s.cfg.Flat, s.rng)
		s.flat.Order = s.order
		s.trails = make([]*behavior.Trail, len(s.flat.Boids))
		for i := range s.trails {
			s.trails[i] = behavior.NewTrail(s.cfg.TrailLength)
		}
	case Mode3D:
		s.volume = behavior.NewFlock3D(s.cfg.NumBoids, s.cfg.Volume, s.rng)
		s.volume.Order = s.order
		if s.cam == nil {
			s.cam = camera.New()
			s.cam.MoveSpeed = s.cfg.Camera.MoveSpeed
			s.cam.LookSpeed = s.cfg.Camera.LookSpeed
			s.cam.FovY = s.cfg.Camera.FovDegrees * math.Pi / 180
		}
	}
}

// Reseed replaces the flock with a fresh one drawn from a new seed.
func (s *Simulation) Reseed() {
	seed := s.rng.Uint64()
	s.spawn(seed)
	s.logger.Infof("reseeded flock with seed %d", seed)
}

// Tick processes one rendered frame on a width x height viewport.
func (s *Simulation) Tick(in Input, width, height float64) error {
	if in.JustPressed(Exit) {
		return ErrExit
	}
	if in.JustPressed(ToggleTrails) {
		s.SetTrails(!s.showTrails)
	}
	if in.JustPressed(TogglePanel) {
		s.showPanel = !s.showPanel
	}
	s.width, s.height = width, height
	if in.JustPressed(Reseed) {
		s.Reseed()
	}

	if s.mode == Mode3D {
		s.cam.Move(in.Pressed(Forward), in.Pressed(Back), in.Pressed(Left), in.Pressed(Right))
		dx, dy := in.CursorDelta()
		s.cam.Look(dx, dy, in.FrameTime())
	}

	s.lastSteps = s.stepper.Advance(in.FrameTime())
	for i := 0; i < s.lastSteps; i++ {
		s.step()
	}
	return nil
}

// step advances the flock once and records the 2D trails.
func (s *Simulation) step() {
	switch s.mode {
	case Mode2D:
		s.flat.Step(s.width, s.height)
		for i := range s.flat.Boids {
			s.trails[i].Push(s.flat.Boids[i].Centroid)
		}
	case Mode3D:
		s.volume.Step(s.cam.Position)
	}
	s.steps++
	if s.steps%statsEvery == 0 {
		s.logger.Debugf("step %d: %s", s.steps, s.Stats())
	}
}

// Draw renders the current state on c.
func (s *Simulation) Draw(c Canvas) {
	c.Clear(BackgroundColor)
	switch s.mode {
	case Mode2D:
		s.draw2D(c)
	case Mode3D:
		s.draw3D(c)
	}
}

func (s *Simulation) draw2D(c Canvas) {
	for i := range s.flat.Boids {
		b := &s.flat.Boids[i]
		c.FillTriangle(b.P1, b.P2, b.P3, BoidColor)
		if !s.showTrails {
			continue
		}
		s.trails[i].Segments(func(j int, from, to geometry.Vector2D) {
			c.Line(from, to, 1, trailColor(j))
		})
	}
}

// trailColor fades TrailColor out along the trail, i = 0 being the newest segment.
func trailColor(i int) color.NRGBA {
	return color.NRGBA{R: TrailColor.R, G: TrailColor.G, B: TrailColor.B, A: behavior.TrailAlpha(i)}
}

func (s *Simulation) draw3D(c Canvas) {
	w, h := c.Size()
	for i := range s.volume.Boids {
		b := &s.volume.Boids[i]
		if a, z, ok := s.cam.ProjectSegment(b.P1, b.P2, w, h); ok {
			c.Line(a, z, 1, b.Color)
		}
	}
	for _, e := range camera.CubeEdges(geometry.Vector3D{}, 2*s.cfg.Volume.HalfExtent) {
		if a, z, ok := s.cam.ProjectSegment(e[0], e[1], w, h); ok {
			c.Line(a, z, 1, CubeColor)
		}
	}
}

// SetTrails turns the 2D trails on or off. Trails keep recording while hidden.
func (s *Simulation) SetTrails(on bool) {
	if on != s.showTrails {
		s.logger.Infof("trails %s", onOff(on))
	}
	s.showTrails = on
}

// SetTiming switches between one step per frame and fixed steps.
func (s *Simulation) SetTiming(t behavior.Timing) {
	if t != s.stepper.Timing {
		s.logger.Infof("timing %s", t)
	}
	s.stepper.Timing = t
	s.stepper.Reset()
}

// SetOrder changes what boids see of their neighbours from the next step on.
func (s *Simulation) SetOrder(o behavior.UpdateOrder) {
	if o != s.order {
		s.logger.Infof("update order %s", o)
	}
	s.order = o
	if s.flat != nil {
		s.flat.Order = o
	}
	if s.volume != nil {
		s.volume.Order = o
	}
}

func (s *Simulation) Mode() Mode                        { return s.mode }
func (s *Simulation) Seed() uint64                      { return s.seed }
func (s *Simulation) Steps() uint64                     { return s.steps }
func (s *Simulation) LastSteps() int                    { return s.lastSteps }
func (s *Simulation) TrailsEnabled() bool               { return s.showTrails }
func (s *Simulation) PanelVisible() bool                { return s.showPanel }
func (s *Simulation) Timing() behavior.Timing           { return s.stepper.Timing }
func (s *Simulation) Order() behavior.UpdateOrder       { return s.order }
func (s *Simulation) Flat() *behavior.Flock2D           { return s.flat }
func (s *Simulation) Volume() *behavior.Flock3D         { return s.volume }
func (s *Simulation) Camera() *camera.Camera            { return s.cam }
func (s *Simulation) Trail(i int) *behavior.Trail       { return s.trails[i] }
func (s *Simulation) Config() Config                    { return *s.cfg }
func (s *Simulation) Viewport() (width, height float64) { return s.width, s.height }

// Stats measures the flock of the current mode.
func (s *Simulation) Stats() behavior.Stats {
	if s.mode == Mode3D {
		return s.volume.Stats()
	}
	return s.flat.Stats()
}

// Status is the one line summary shown in the debug overlay.
func (s *Simulation) Status() string {
	return fmt.Sprintf("%s %s %s seed=%d step=%d", s.mode, s.stepper.Timing, s.order, s.seed, s.steps)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
