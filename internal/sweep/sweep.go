// Package sweep runs many headless flocks side by side, one goakt actor per
// run, and collects their statistics so update orders can be compared.
package sweep

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
)

// Result holds every sample of one run, oldest first.
type Result struct {
	ID      string
	Run     Run
	Samples []Sample
}

// Final is the last sample of the run.
func (r Result) Final() Sample {
	if len(r.Samples) == 0 {
		return Sample{}
	}
	return r.Samples[len(r.Samples)-1]
}

// RunPlan executes the plan and returns one Result per run, in plan order.
func RunPlan(ctx context.Context, p *Plan, logger log.Logger) ([]Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	system, err := actor.NewActorSystem("flocksweep", actor.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}
	defer func() {
		if err := system.Stop(context.WithoutCancel(ctx)); err != nil {
			logger.Warnf("actor system stop: %v", err)
		}
	}()

	runs := p.Runs()
	results := make([]Result, len(runs))
	checkpoints := p.Checkpoints()

	g, gctx := errgroup.WithContext(ctx)
	if p.Parallel > 0 {
		g.SetLimit(p.Parallel)
	}
	for i, run := range runs {
		id := fmt.Sprintf("flock-%s-%d-%s", run.Order, run.Seed, uuid.NewString()[:8])
		results[i] = Result{ID: id, Run: run}

		g.Go(func() error {
			pid, err := system.Spawn(gctx, id, NewRunner(p, run))
			if err != nil {
				return fmt.Errorf("failed to spawn %s: %w", id, err)
			}
			for _, n := range checkpoints {
				reply, err := actor.Ask(gctx, pid, wrapperspb.UInt32(uint32(n)), p.Timeout.Duration)
				if err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
				m, ok := reply.(*structpb.Struct)
				if !ok {
					return fmt.Errorf("%s: unexpected reply %T", id, reply)
				}
				sample, err := decodeSample(m)
				if err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
				results[i].Samples = append(results[i].Samples, sample)
			}
			logger.Infof("%s done: %s", id, results[i].Final().Stats)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates the final samples of all runs sharing an update order.
type Summary struct {
	Order            behavior.UpdateOrder
	Runs             int
	MeanPolarization float64
	StdPolarization  float64
	MeanNearest      float64
	MeanSpeed        float64
}

// Summarize groups results by update order, sequential first.
func Summarize(results []Result) []Summary {
	groups := map[behavior.UpdateOrder][]Sample{}
	var orders []behavior.UpdateOrder
	for _, r := range results {
		if _, seen := groups[r.Run.Order]; !seen {
			orders = append(orders, r.Run.Order)
		}
		groups[r.Run.Order] = append(groups[r.Run.Order], r.Final())
	}
	sort.SliceStable(orders, func(a, b int) bool { return orders[a] < orders[b] })

	out := make([]Summary, 0, len(orders))
	for _, o := range orders {
		samples := groups[o]
		polar := make([]float64, len(samples))
		nearest := make([]float64, len(samples))
		speed := make([]float64, len(samples))
		for i, s := range samples {
			polar[i], nearest[i], speed[i] = s.Polarization, s.MeanNearest, s.MeanSpeed
		}
		sum := Summary{
			Order:       o,
			Runs:        len(samples),
			MeanNearest: stat.Mean(nearest, nil),
			MeanSpeed:   stat.Mean(speed, nil),
		}
		sum.MeanPolarization = stat.Mean(polar, nil)
		if len(samples) > 1 {
			sum.StdPolarization = stat.StdDev(polar, nil)
		}
		out = append(out, sum)
	}
	return out
}
