package sweep

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

// ErrInvalidPlan is wrapped by every plan validation failure.
var ErrInvalidPlan = errors.New("invalid sweep plan")

// Plan describes a batch of headless runs: every seed is run once per update order.
type Plan struct {
	Mode   string   // "2d" or "3d"
	Boids  int      // flock size of every run
	Steps  int      // steps per run
	Sample int      // steps between two statistics samples
	Seeds  []uint64 // one run per seed and order
	Orders []string // "sequential", "snapshot"

	// 2D viewport
	Width  float64
	Height float64

	Parallel int      // maximum number of runs stepping at once, 0 for all
	Timeout  duration // per sample request
}

// duration lets plan files write timeouts as "5s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Run is one cell of the plan matrix.
type Run struct {
	Seed  uint64
	Order behavior.UpdateOrder
}

// DefaultPlan compares both update orders on three seeds of the default 2D flock.
func DefaultPlan() *Plan {
	return &Plan{
		Mode:     "2d",
		Boids:    100,
		Steps:    1200,
		Sample:   300,
		Seeds:    []uint64{1, 2, 3},
		Orders:   []string{"sequential", "snapshot"},
		Width:    1024,
		Height:   720,
		Parallel: 0,
		Timeout:  duration{10 * time.Second},
	}
}

// LoadPlan parses the TOML plan file whose path is provided.
// Keys absent from the file keep their DefaultPlan value.
func LoadPlan(path string) (*Plan, error) {
	p := DefaultPlan()
	if _, err := toml.DecodeFile(path, p); err != nil {
		return nil, fmt.Errorf("failed to decode plan %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the plan can be run.
func (p *Plan) Validate() error {
	if _, err := simulation.ParseMode(p.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	for _, o := range p.Orders {
		if _, err := behavior.ParseUpdateOrder(o); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPlan, err)
		}
	}
	switch {
	case p.Boids < 1:
		return fmt.Errorf("%w: boids must be positive, got %d", ErrInvalidPlan, p.Boids)
	case p.Steps < 1:
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidPlan, p.Steps)
	case p.Sample < 1 || p.Sample > p.Steps:
		return fmt.Errorf("%w: sample must be within [1, %d], got %d", ErrInvalidPlan, p.Steps, p.Sample)
	case len(p.Seeds) == 0 || len(p.Orders) == 0:
		return fmt.Errorf("%w: at least one seed and one order are required", ErrInvalidPlan)
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: viewport %gx%g", ErrInvalidPlan, p.Width, p.Height)
	case p.Timeout.Duration <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidPlan)
	}
	return nil
}

// Runs expands the plan matrix, orders first.
func (p *Plan) Runs() []Run {
	runs := make([]Run, 0, len(p.Orders)*len(p.Seeds))
	for _, o := range p.Orders {
		order, _ := behavior.ParseUpdateOrder(o)
		for _, seed := range p.Seeds {
			runs = append(runs, Run{Seed: seed, Order: order})
		}
	}
	return runs
}

// Checkpoints returns the step counts to request between two samples.
// They add up to Steps; the last one may be shorter than Sample.
func (p *Plan) Checkpoints() []int {
	var out []int
	for left := p.Steps; left > 0; left -= p.Sample {
		out = append(out, min(left, p.Sample))
	}
	return out
}
