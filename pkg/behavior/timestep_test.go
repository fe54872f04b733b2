package behavior

import "testing"

func TestStepper_Variable(t *testing.T) {
	s := NewStepper(Variable, 8)
	for _, frame := range []float64{0, 0.001, 1.0 / 60, 2} {
		if got := s.Advance(frame); got != 1 {
			t.Errorf("Advance(%f) = %d, want 1", frame, got)
		}
	}
}

func TestStepper_Fixed(t *testing.T) {
	s := NewStepper(Fixed, 8)

	if got := s.Advance(DefaultFixedStep / 2); got != 0 {
		t.Errorf("Expected no step for half a step of time, got %d", got)
	}
	if got := s.Advance(DefaultFixedStep / 2); got != 1 {
		t.Errorf("Expected the accumulated halves to make one step, got %d", got)
	}
	if got := s.Advance(3.5 * DefaultFixedStep); got != 3 {
		t.Errorf("Expected 3 steps, got %d", got)
	}
	if left := s.Leftover(); left < 0.49*DefaultFixedStep || left > 0.51*DefaultFixedStep {
		t.Errorf("Expected half a step left over, got %f", left)
	}
}

func TestStepper_CatchUpCap(t *testing.T) {
	s := NewStepper(Fixed, 4)

	if got := s.Advance(1); got != 4 {
		t.Errorf("Expected the cap of 4 steps after a long stall, got %d", got)
	}
	if s.Leftover() != 0 {
		t.Errorf("Expected surplus time to be dropped, got %f", s.Leftover())
	}
	if got := s.Advance(-1); got != 0 {
		t.Errorf("Expected negative frame time to be ignored, got %d", got)
	}
}

func TestParseTiming(t *testing.T) {
	for in, want := range map[string]Timing{"": Variable, "variable": Variable, "FIXED": Fixed} {
		got, err := ParseTiming(in)
		if err != nil || got != want {
			t.Errorf("ParseTiming(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseTiming("adaptive"); err == nil {
		t.Errorf("Expected an error for an unknown timing")
	}
}
