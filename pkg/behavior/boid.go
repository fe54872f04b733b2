// Package behavior implements the boids flocking rules.
//
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// The name "boid" corresponds to a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
//
// The same rule kernel drives a 2D flock of triangles (Flock2D) and a 3D flock
// of short segments (Flock3D). Neighbours are found with a plain O(n²) scan.
package behavior

// vector is the arithmetic the rule kernel needs from a position/velocity type.
// geometry.Vector2D and geometry.Vector3D both satisfy it.
type vector[V any] interface {
	Add(V) V
	Sub(V) V
	Mul(float64) V
	Len() float64
}

// Rules controls the neighbourhood radii and the blending weights of the three
// Reynolds rules. Passing this into a step allows rules to change at runtime.
type Rules struct {
	CohesionRadius   float64 `json:"cohesionRadius"`   // How far can they see?
	SeparationRadius float64 `json:"separationRadius"` // Personal space radius

	CohesionFactor   float64 `json:"cohesionFactor"`   // Pull towards the local center
	AlignmentFactor  float64 `json:"alignmentFactor"`  // Match the local average velocity
	SeparationFactor float64 `json:"separationFactor"` // Push away from close neighbours
}

// neighborhood gives read access to the positions and velocities the kernel scans.
// Index self is skipped by the kernel.
type neighborhood[V any] interface {
	Len() int
	Position(i int) V
	Velocity(i int) V
}

// steer returns the velocity of agent self once separation, cohesion and
// alignment have been applied. pos and vel are the agent's own state.
// push is an extra separation term folded into the accumulator after the
// neighbour scan (the 3D viewer uses it); pass the zero vector otherwise.
func steer[V vector[V]](r Rules, self int, pos, vel V, hood neighborhood[V], push V) V {
	var center, avgVel, away V
	neighbors := 0

	for j := 0; j < hood.Len(); j++ {
		if j == self {
			continue
		}
		other := hood.Position(j)
		dist := pos.Sub(other).Len()

		// Cohesion and alignment share the larger radius
		if dist < r.CohesionRadius {
			center = center.Add(other)
			avgVel = avgVel.Add(hood.Velocity(j))
			neighbors++
		}

		// Separation is accumulated regardless of the neighbour count
		if dist < r.SeparationRadius {
			away = away.Add(pos.Sub(other))
		}
	}
	away = away.Add(push)

	vel = vel.Add(away.Mul(r.SeparationFactor))

	if neighbors > 0 {
		inv := 1 / float64(neighbors)
		center = center.Mul(inv)
		avgVel = avgVel.Mul(inv)
		vel = vel.Add(center.Sub(pos).Mul(r.CohesionFactor))
		vel = vel.Add(avgVel.Sub(vel).Mul(r.AlignmentFactor))
	}
	return vel
}
