package simulation

import (
	"errors"
	"image/color"
	"testing"

	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// fakeInput replays a scripted frame.
type fakeInput struct {
	held   map[Action]bool
	just   map[Action]bool
	dx, dy float64
	frame  float64
}

func (f *fakeInput) Pressed(a Action) bool           { return f.held[a] }
func (f *fakeInput) JustPressed(a Action) bool       { return f.just[a] }
func (f *fakeInput) CursorDelta() (float64, float64) { return f.dx, f.dy }
func (f *fakeInput) FrameTime() float64              { return f.frame }

func idle(frame float64) *fakeInput { return &fakeInput{frame: frame} }

func press(a Action) *fakeInput {
	return &fakeInput{just: map[Action]bool{a: true}, held: map[Action]bool{a: true}, frame: 1.0 / 60}
}

// recordingCanvas counts what was drawn.
type recordingCanvas struct {
	w, h      float64
	cleared   color.Color
	triangles int
	lines     []color.Color
}

func (c *recordingCanvas) Clear(clr color.Color) { c.cleared = clr }
func (c *recordingCanvas) FillTriangle(_, _, _ geometry.Vector2D, _ color.Color) {
	c.triangles++
}
func (c *recordingCanvas) Line(_, _ geometry.Vector2D, _ float64, clr color.Color) {
	c.lines = append(c.lines, clr)
}
func (c *recordingCanvas) Size() (float64, float64) { return c.w, c.h }

func testConfig(mode string) *Config {
	cfg := DefaultConfig()
	cfg.Mode = mode
	cfg.NumBoids = 40
	cfg.Seed = 1234
	cfg.Timing = "variable"
	return cfg
}

func newTestSimulation(t *testing.T, cfg *Config) *Simulation {
	t.Helper()
	s, err := New(cfg, log.DiscardLogger)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig("2d")
	cfg.Timing = "sometimes"
	if _, err := New(cfg, log.DiscardLogger); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestSimulation_Tick2D(t *testing.T) {
	s := newTestSimulation(t, testConfig("2d"))

	for i := 0; i < 30; i++ {
		if err := s.Tick(idle(1.0/60), 1024, 720); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	if s.Steps() != 30 || s.LastSteps() != 1 {
		t.Errorf("Expected one step per frame, got %d steps (%d last)", s.Steps(), s.LastSteps())
	}
	for i, b := range s.Flat().Boids {
		tr := s.Trail(i)
		if tr.Len() != 20 {
			t.Errorf("trail %d: expected 20 positions, got %d", i, tr.Len())
		}
		if tr.At(0) != b.Centroid {
			t.Errorf("trail %d: head %v, boid at %v", i, tr.At(0), b.Centroid)
		}
	}
}

func TestSimulation_FixedTiming(t *testing.T) {
	cfg := testConfig("2d")
	cfg.Timing = "fixed"
	cfg.MaxCatchUpSteps = 3
	s := newTestSimulation(t, cfg)

	steps := []struct {
		frame float64
		want  int
	}{
		{0.004, 0},
		{0.04, 2},
		{2, 3},
	}
	for _, st := range steps {
		if err := s.Tick(idle(st.frame), 1024, 720); err != nil {
			t.Fatal(err)
		}
		if s.LastSteps() != st.want {
			t.Errorf("frame of %fs: expected %d steps, got %d", st.frame, st.want, s.LastSteps())
		}
	}
}

func TestSimulation_Actions(t *testing.T) {
	s := newTestSimulation(t, testConfig("2d"))

	if err := s.Tick(press(Exit), 1024, 720); !errors.Is(err, ErrExit) {
		t.Errorf("Expected ErrExit on Escape, got %v", err)
	}

	trails := s.TrailsEnabled()
	_ = s.Tick(press(ToggleTrails), 1024, 720)
	if s.TrailsEnabled() == trails {
		t.Errorf("Expected trails to toggle")
	}

	panel := s.PanelVisible()
	_ = s.Tick(press(TogglePanel), 1024, 720)
	if s.PanelVisible() == panel {
		t.Errorf("Expected the panel to toggle")
	}

	seed := s.Seed()
	_ = s.Tick(press(Reseed), 1024, 720)
	if s.Seed() == seed {
		t.Errorf("Expected a new seed after reseeding")
	}
	if s.Steps() != 1 || len(s.Flat().Boids) != 40 {
		t.Errorf("Expected a fresh flock of 40 stepped once, got %d boids after %d steps", len(s.Flat().Boids), s.Steps())
	}
}

func TestSimulation_Deterministic(t *testing.T) {
	a := newTestSimulation(t, testConfig("2d"))
	b := newTestSimulation(t, testConfig("2d"))

	for i := 0; i < 50; i++ {
		_ = a.Tick(idle(1.0/60), 800, 600)
		_ = b.Tick(idle(1.0/60), 800, 600)
	}
	pa, pb := a.Flat().Positions(), b.Flat().Positions()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("boid %d diverged: %v vs %v", i, pa[i], pb[i])
		}
	}
}

func TestSimulation_ReseedAfterResize(t *testing.T) {
	s := newTestSimulation(t, testConfig("2d"))

	_ = s.Tick(press(Reseed), 400, 300)
	if w, h := s.Viewport(); w != 400 || h != 300 {
		t.Fatalf("Expected a 400x300 viewport, got %vx%v", w, h)
	}
	// spawn offset and one step of travel on top of the viewport
	for i, b := range s.Flat().Boids {
		if b.Centroid.X > 420 || b.Centroid.Y > 320 {
			t.Errorf("boid %d spawned outside the new viewport at %v", i, b.Centroid)
		}
	}
}

func TestSimulation_SetOrder(t *testing.T) {
	s := newTestSimulation(t, testConfig("2d"))

	s.SetOrder(behavior.Snapshot)
	s.SetTiming(behavior.Fixed)
	if s.Flat().Order != behavior.Snapshot || s.Order() != behavior.Snapshot || s.Timing() != behavior.Fixed {
		t.Errorf("Expected snapshot order and fixed timing")
	}
	s.Reseed()
	if s.Flat().Order != behavior.Snapshot {
		t.Errorf("Expected the order to survive a reseed")
	}
}

func TestSimulation_Draw2D(t *testing.T) {
	s := newTestSimulation(t, testConfig("2d"))
	for i := 0; i < 5; i++ {
		_ = s.Tick(idle(1.0/60), 1024, 720)
	}

	c := &recordingCanvas{w: 1024, h: 720}
	s.Draw(c)
	if c.cleared != BackgroundColor {
		t.Errorf("Expected the background color, got %v", c.cleared)
	}
	if c.triangles != 40 {
		t.Errorf("Expected 40 triangles, got %d", c.triangles)
	}
	// 5 positions per trail give 3 segments, the oldest position is not drawn
	if len(c.lines) != 40*3 {
		t.Fatalf("Expected %d trail segments, got %d", 40*3, len(c.lines))
	}
	for i, clr := range c.lines {
		r, g, b, a := clr.RGBA()
		if r > a || g > a || b > a {
			t.Errorf("segment %d: color %d,%d,%d is brighter than its alpha %d", i, r, g, b, a)
		}
		want := uint8(255 - 10*(i%3))
		if n := color.NRGBAModel.Convert(clr).(color.NRGBA); n.A != want || n.B != TrailColor.B {
			t.Errorf("segment %d: expected %v with alpha %d, got %v", i, TrailColor, want, n)
		}
	}

	s.SetTrails(false)
	c = &recordingCanvas{w: 1024, h: 720}
	s.Draw(c)
	if len(c.lines) != 0 {
		t.Errorf("Expected no trails when disabled, got %d lines", len(c.lines))
	}
}

func TestSimulation_Tick3D(t *testing.T) {
	s := newTestSimulation(t, testConfig("3d"))
	cam := s.Camera()
	start := cam.Position

	in := &fakeInput{held: map[Action]bool{Forward: true}, dx: 10, frame: 0.5}
	if err := s.Tick(in, 1024, 720); err != nil {
		t.Fatal(err)
	}
	if moved := cam.Position.Sub(start).Len(); moved < 0.29 || moved > 0.31 {
		t.Errorf("Expected the camera to move 0.3 forward, moved %f", moved)
	}
	if cam.Yaw <= 1.18 {
		t.Errorf("Expected the camera to turn right, yaw %f", cam.Yaw)
	}
	for i, b := range s.Volume().Boids {
		if b.Velocity.Len() > s.Config().Volume.MaxSpeed+1e-12 {
			t.Errorf("boid %d too fast: %f", i, b.Velocity.Len())
		}
	}

	c := &recordingCanvas{w: 1024, h: 720}
	s.Draw(c)
	cube := 0
	for _, clr := range c.lines {
		if clr == color.Color(CubeColor) {
			cube++
		}
	}
	if cube == 0 || cube > 12 {
		t.Errorf("Expected some of the 12 cube edges to be visible from inside, got %d", cube)
	}
	if c.triangles != 0 {
		t.Errorf("Expected no triangles in 3D, got %d", c.triangles)
	}
	if st := s.Stats(); st.Count != 40 {
		t.Errorf("Expected stats over 40 boids, got %v", st)
	}
}
