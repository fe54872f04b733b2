package behavior

import (
	"fmt"
	"strings"
)

// UpdateOrder selects what an agent sees of its neighbours during a step.
type UpdateOrder int

const (
	// Sequential updates agents in place, one after the other: an agent
	// processed later in the pass sees neighbours already moved this step.
	Sequential UpdateOrder = iota
	// Snapshot reads every neighbour from a copy taken at the start of the
	// step, so all agents react to the same frame.
	Snapshot
)

func (o UpdateOrder) String() string {
	switch o {
	case Sequential:
		return "sequential"
	case Snapshot:
		return "snapshot"
	}
	return fmt.Sprintf("UpdateOrder(%d)", int(o))
}

// ParseUpdateOrder converts "sequential" or "snapshot" (case-insensitive).
func ParseUpdateOrder(s string) (UpdateOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return Sequential, nil
	case "snapshot":
		return Snapshot, nil
	}
	return Sequential, fmt.Errorf("unknown update order %q", s)
}

// frame is a frozen copy of a flock's kinematic state.
type frame[V any] struct {
	pos []V
	vel []V
}

func (f *frame[V]) Len() int         { return len(f.pos) }
func (f *frame[V]) Position(i int) V { return f.pos[i] }
func (f *frame[V]) Velocity(i int) V { return f.vel[i] }

// capture refills the frame, reusing the backing arrays.
func (f *frame[V]) capture(n int, at func(i int) (V, V)) {
	f.pos = f.pos[:0]
	f.vel = f.vel[:0]
	for i := 0; i < n; i++ {
		p, v := at(i)
		f.pos = append(f.pos, p)
		f.vel = append(f.vel, v)
	}
}
