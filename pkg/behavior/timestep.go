package behavior

import (
	"fmt"
	"strings"
)

// Timing selects how simulation steps are tied to rendered frames.
type Timing int

const (
	// Variable runs exactly one step per rendered frame.
	Variable Timing = iota
	// Fixed runs steps of a constant duration, carrying leftover frame time over.
	Fixed
)

// DefaultFixedStep is the duration of one fixed step, in seconds.
const DefaultFixedStep = 1.0 / 60.0

func (t Timing) String() string {
	switch t {
	case Variable:
		return "variable"
	case Fixed:
		return "fixed"
	}
	return fmt.Sprintf("Timing(%d)", int(t))
}

// ParseTiming converts "variable" or "fixed" (case-insensitive).
func ParseTiming(s string) (Timing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "variable":
		return Variable, nil
	case "fixed":
		return Fixed, nil
	}
	return Variable, fmt.Errorf("unknown timing %q", s)
}

// Stepper decides how many simulation steps a frame must run.
type Stepper struct {
	Timing   Timing
	Step     float64 // seconds per fixed step
	MaxSteps int     // cap on catch-up steps per frame, 0 means no cap

	acc float64
}

// NewStepper returns a Stepper using the default fixed step.
func NewStepper(t Timing, maxSteps int) *Stepper {
	return &Stepper{Timing: t, Step: DefaultFixedStep, MaxSteps: maxSteps}
}

// Advance accounts for frame seconds of elapsed time and returns the number of
// steps to run now. When the cap is hit the surplus time is discarded so a
// slow frame cannot snowball into ever longer catch-up bursts.
func (s *Stepper) Advance(frame float64) int {
	if s.Timing == Variable {
		return 1
	}
	if frame > 0 {
		s.acc += frame
	}
	steps := 0
	for s.acc >= s.Step {
		if s.MaxSteps > 0 && steps >= s.MaxSteps {
			s.acc = 0
			break
		}
		s.acc -= s.Step
		steps++
	}
	return steps
}

// Leftover returns the accumulated time not yet consumed by a step.
func (s *Stepper) Leftover() float64 { return s.acc }

// Reset drops any accumulated time.
func (s *Stepper) Reset() { s.acc = 0 }
