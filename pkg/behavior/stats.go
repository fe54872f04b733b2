package behavior

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the state of a flock at one instant.
type Stats struct {
	Count        int     `json:"count"`
	MeanSpeed    float64 `json:"meanSpeed"`
	SpeedStdDev  float64 `json:"speedStdDev"`
	Polarization float64 `json:"polarization"` // |mean unit velocity|, 1 when everyone flies the same way
	MeanNearest  float64 `json:"meanNearest"`  // mean distance to the closest other boid
}

func (s Stats) String() string {
	return fmt.Sprintf("n=%d speed=%.3f±%.3f polar=%.3f nearest=%.3f",
		s.Count, s.MeanSpeed, s.SpeedStdDev, s.Polarization, s.MeanNearest)
}

// unit is the subset of vector behaviour the statistics need.
type unit[V any] interface {
	vector[V]
	Normalize() V
}

// Measure computes Stats over parallel position and velocity slices.
func Measure[V unit[V]](pos, vel []V) Stats {
	n := len(vel)
	if n == 0 || len(pos) != n {
		return Stats{}
	}
	speeds := make([]float64, n)
	var heading V
	for i, v := range vel {
		speeds[i] = v.Len()
		heading = heading.Add(v.Normalize())
	}
	mean, std := stat.MeanStdDev(speeds, nil)
	if n == 1 {
		std = 0
	}

	st := Stats{
		Count:        n,
		MeanSpeed:    mean,
		SpeedStdDev:  std,
		Polarization: heading.Len() / float64(n),
	}
	if n > 1 {
		nearest := make([]float64, n)
		for i := range pos {
			best := math.Inf(1)
			for j := range pos {
				if i == j {
					continue
				}
				best = math.Min(best, pos[i].Sub(pos[j]).Len())
			}
			nearest[i] = best
		}
		st.MeanNearest = floats.Sum(nearest) / float64(n)
	}
	return st
}

// Stats returns the current statistics of the flat flock.
func (f *Flock2D) Stats() Stats { return Measure(f.Positions(), f.Velocities()) }

// Stats returns the current statistics of the volumetric flock.
func (f *Flock3D) Stats() Stats { return Measure(f.Positions(), f.Velocities()) }
