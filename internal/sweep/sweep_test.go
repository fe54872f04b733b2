package sweep

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func tinyPlan() *Plan {
	p := DefaultPlan()
	p.Boids = 12
	p.Steps = 25
	p.Sample = 10
	p.Seeds = []uint64{1, 2}
	p.Timeout = duration{5 * time.Second}
	return p
}

func TestSample_RoundTrip(t *testing.T) {
	in := Sample{Step: 300, Stats: behavior.Stats{Count: 12, MeanSpeed: 3.5, SpeedStdDev: 0.25, Polarization: 0.8, MeanNearest: 17}}
	m, err := encodeSample(in)
	if err != nil {
		t.Fatalf("encodeSample failed: %v", err)
	}
	out, err := decodeSample(m)
	if err != nil {
		t.Fatalf("decodeSample failed: %v", err)
	}
	if out != in {
		t.Errorf("Expected %+v, got %+v", in, out)
	}

	delete(m.Fields, "polarization")
	if _, err := decodeSample(m); err == nil || !strings.Contains(err.Error(), "polarization") {
		t.Errorf("Expected a missing key error, got %v", err)
	}
}

func TestRunner_Advance(t *testing.T) {
	p := tinyPlan()
	run := Run{Seed: 9, Order: behavior.Snapshot}

	a, b := NewRunner(p, run), NewRunner(p, run)
	a.flock, b.flock = newFlock(p, run), newFlock(p, run)
	a.advance(7)
	a.advance(3)
	b.advance(10)
	if a.steps != 10 {
		t.Errorf("Expected 10 steps, got %d", a.steps)
	}
	if sa, sb := a.flock.stats(), b.flock.stats(); sa != sb {
		t.Errorf("Expected identical flocks, got %v and %v", sa, sb)
	}
	if got := a.flock.(flatFlock).Order; got != behavior.Snapshot {
		t.Errorf("Expected the run order on the flock, got %v", got)
	}
}

func TestNewFlock_3D(t *testing.T) {
	p := tinyPlan()
	p.Mode = "3d"
	f := newFlock(p, Run{Seed: 4})
	if _, ok := f.(volumeFlock); !ok {
		t.Fatalf("Expected a volume flock, got %T", f)
	}
	f.step()
	if st := f.stats(); st.Count != 12 {
		t.Errorf("Expected 12 boids, got %d", st.Count)
	}
}

func TestRun(t *testing.T) {
	results, err := RunPlan(context.Background(), tinyPlan(), log.DiscardLogger)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}
	ids := map[string]bool{}
	for _, r := range results {
		if ids[r.ID] {
			t.Errorf("duplicate run id %s", r.ID)
		}
		ids[r.ID] = true
		if len(r.Samples) != 3 {
			t.Errorf("%s: expected 3 samples, got %d", r.ID, len(r.Samples))
			continue
		}
		if r.Final().Step != 25 || r.Samples[0].Step != 10 {
			t.Errorf("%s: expected samples at 10..25, got %+v", r.ID, r.Samples)
		}
		if r.Final().Count != 12 {
			t.Errorf("%s: expected 12 boids, got %d", r.ID, r.Final().Count)
		}
	}

	// the same seed and order always gives the same flock
	again, err := RunPlan(context.Background(), tinyPlan(), log.DiscardLogger)
	if err != nil {
		t.Fatal(err)
	}
	for i := range results {
		if results[i].Final() != again[i].Final() {
			t.Errorf("run %d: expected %+v, got %+v", i, results[i].Final(), again[i].Final())
		}
	}
}

func TestRun_InvalidPlan(t *testing.T) {
	p := tinyPlan()
	p.Boids = 0
	if _, err := RunPlan(context.Background(), p, log.DiscardLogger); !errors.Is(err, ErrInvalidPlan) {
		t.Errorf("Expected ErrInvalidPlan, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	final := func(order behavior.UpdateOrder, polar, speed float64) Result {
		return Result{
			Run:     Run{Order: order},
			Samples: []Sample{{Step: 10, Stats: behavior.Stats{Polarization: polar, MeanSpeed: speed, MeanNearest: 5}}},
		}
	}
	got := Summarize([]Result{
		final(behavior.Snapshot, 0.5, 4),
		final(behavior.Sequential, 0.2, 2),
		final(behavior.Sequential, 0.4, 4),
	})
	if len(got) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(got))
	}
	seq := got[0]
	if seq.Order != behavior.Sequential || seq.Runs != 2 {
		t.Errorf("Expected 2 sequential runs first, got %+v", seq)
	}
	if !floatEquals(seq.MeanPolarization, 0.3) || !floatEquals(seq.MeanSpeed, 3) || !floatEquals(seq.MeanNearest, 5) {
		t.Errorf("Expected means 0.3/3/5, got %+v", seq)
	}
	if !floatEquals(seq.StdPolarization, math.Sqrt(0.02)) {
		t.Errorf("Expected a sample std dev of %f, got %f", math.Sqrt(0.02), seq.StdPolarization)
	}
	if got[1].StdPolarization != 0 {
		t.Errorf("Expected no spread for a single run, got %f", got[1].StdPolarization)
	}
}
