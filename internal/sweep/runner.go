package sweep

import (
	"fmt"
	"math/rand/v2"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

// flock is what a runner steps, regardless of its dimension.
type flock interface {
	step()
	stats() behavior.Stats
}

type flatFlock struct {
	*behavior.Flock2D
	width, height float64
}

func (f flatFlock) step()                 { f.Step(f.width, f.height) }
func (f flatFlock) stats() behavior.Stats { return f.Stats() }

// volumeFlock has no camera; the viewer sits far outside the volume.
type volumeFlock struct {
	*behavior.Flock3D
}

var outsideViewer = geometry.Vector3D{X: 1e9, Y: 1e9, Z: 1e9}

func (f volumeFlock) step()                 { f.Step(outsideViewer) }
func (f volumeFlock) stats() behavior.Stats { return f.Stats() }

// newFlock builds the flock of one run the same way the interactive program does.
func newFlock(p *Plan, r Run) flock {
	rng := rand.New(rand.NewPCG(r.Seed, r.Seed^0x9e3779b97f4a7c15))
	if mode, _ := simulation.ParseMode(p.Mode); mode == simulation.Mode3D {
		f := behavior.NewFlock3D(p.Boids, behavior.DefaultSettings3D(), rng)
		f.Order = r.Order
		return volumeFlock{f}
	}
	f := behavior.NewFlock2D(p.Boids, p.Width, p.Height, behavior.DefaultSettings2D(), rng)
	f.Order = r.Order
	return flatFlock{Flock2D: f, width: p.Width, height: p.Height}
}

// Runner is the actor owning one flock. Asked with a UInt32Value it advances
// that many steps and replies with a Struct of statistics.
type Runner struct {
	plan  *Plan
	run   Run
	flock flock
	steps int
}

var _ actor.Actor = (*Runner)(nil)

func NewRunner(p *Plan, r Run) *Runner {
	return &Runner{plan: p, run: r}
}

func (r *Runner) PreStart(ctx *actor.Context) error {
	r.flock = newFlock(r.plan, r.run)
	ctx.ActorSystem().Logger().Debugf("Runner %s: %d boids, seed %d, %s order",
		ctx.ActorName(), r.plan.Boids, r.run.Seed, r.run.Order)
	return nil
}

func (r *Runner) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Debugf("%s started", ctx.Self().Name())
	case *wrapperspb.UInt32Value:
		r.advance(int(msg.GetValue()))
		reply, err := encodeSample(Sample{Step: r.steps, Stats: r.flock.stats()})
		if err != nil {
			ctx.Err(err)
			return
		}
		ctx.Response(reply)
	default:
		ctx.Unhandled()
	}
}

func (r *Runner) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Debugf("Runner %s stopped after %d steps", ctx.ActorName(), r.steps)
	return nil
}

func (r *Runner) advance(n int) {
	for i := 0; i < n; i++ {
		r.flock.step()
	}
	r.steps += n
}

// Sample is the state of a run after Step steps.
type Sample struct {
	Step int
	behavior.Stats
}

func encodeSample(s Sample) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"step":         s.Step,
		"count":        s.Count,
		"meanSpeed":    s.MeanSpeed,
		"speedStdDev":  s.SpeedStdDev,
		"polarization": s.Polarization,
		"meanNearest":  s.MeanNearest,
	})
}

func decodeSample(m *structpb.Struct) (Sample, error) {
	f := m.GetFields()
	for _, key := range []string{"step", "count", "meanSpeed", "speedStdDev", "polarization", "meanNearest"} {
		if _, ok := f[key]; !ok {
			return Sample{}, fmt.Errorf("sample is missing %q", key)
		}
	}
	return Sample{
		Step: int(f["step"].GetNumberValue()),
		Stats: behavior.Stats{
			Count:        int(f["count"].GetNumberValue()),
			MeanSpeed:    f["meanSpeed"].GetNumberValue(),
			SpeedStdDev:  f["speedStdDev"].GetNumberValue(),
			Polarization: f["polarization"].GetNumberValue(),
			MeanNearest:  f["meanNearest"].GetNumberValue(),
		},
	}, nil
}
