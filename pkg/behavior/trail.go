package behavior

import "github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"

// DefaultTrailLength is the number of past positions kept per boid.
const DefaultTrailLength = 20

// Trail is a fixed-capacity ring of past positions, newest first.
type Trail struct {
	data []geometry.Vector2D
	pos  int // slot the next Push writes to
	full bool
}

// NewTrail creates an empty Trail holding at most capacity positions.
func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{data: make([]geometry.Vector2D, capacity)}
}

// Push records p as the newest position, dropping the oldest one when full.
func (t *Trail) Push(p geometry.Vector2D) {
	t.data[t.pos] = p
	t.pos++
	if t.pos >= len(t.data) {
		t.pos = 0
		t.full = true
	}
}

// Len returns the number of positions held.
func (t *Trail) Len() int {
	if t.full {
		return len(t.data)
	}
	return t.pos
}

// Cap returns the maximum number of positions held.
func (t *Trail) Cap() int { return len(t.data) }

// At returns the i-th newest position; At(0) is the latest one pushed.
func (t *Trail) At(i int) geometry.Vector2D {
	n := len(t.data)
	return t.data[((t.pos-1-i)%n+n)%n]
}

// Points returns the contents newest first.
func (t *Trail) Points() []geometry.Vector2D {
	out := make([]geometry.Vector2D, t.Len())
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

// Reset empties the trail.
func (t *Trail) Reset() {
	t.pos = 0
	t.full = false
}

// TrailAlpha is the opacity of the i-th trail segment counted from the newest one.
func TrailAlpha(i int) uint8 {
	a := 255 - i*10
	switch {
	case a < 0:
		return 0
	case a > 255:
		return 255
	}
	return uint8(a)
}

// Segments calls fn for every drawable trail segment, newest first.
// The oldest position is never drawn: n positions give n-2 segments.
func (t *Trail) Segments(fn func(i int, from, to geometry.Vector2D)) {
	n := t.Len()
	for i := 0; i+2 < n; i++ {
		fn(i, t.At(i), t.At(i+1))
	}
}
