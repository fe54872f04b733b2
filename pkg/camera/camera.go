// Package camera implements the free-fly first person camera of the 3D flock
// and the perspective projection used to draw it on a flat canvas.
package camera

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

const (
	defaultMoveSpeed = 0.3  // world units per frame
	defaultLookSpeed = 0.14 // radians per pixel per second
	maxPitch         = 1.5
	defaultFovY      = 45 * math.Pi / 180
	defaultNear      = 0.1
)

// Camera is a yaw/pitch camera. Front, Right and Up are kept orthonormal.
type Camera struct {
	Position geometry.Vector3D
	Front    geometry.Vector3D
	Right    geometry.Vector3D
	Up       geometry.Vector3D

	Yaw   float64
	Pitch float64

	MoveSpeed float64
	LookSpeed float64
	FovY      float64 // vertical field of view, radians
	Near      float64 // distance of the near clipping plane
}

// New returns a camera standing at (0,1,0) inside the flock volume.
func New() *Camera {
	c := &Camera{
		Position:  geometry.Vector3D{X: 0, Y: 1, Z: 0},
		Yaw:       1.18,
		MoveSpeed: defaultMoveSpeed,
		LookSpeed: defaultLookSpeed,
		FovY:      defaultFovY,
		Near:      defaultNear,
	}
	c.refresh()
	return c
}

// refresh recomputes the basis from yaw and pitch.
func (c *Camera) refresh() {
	cp := math.Cos(c.Pitch)
	c.Front = geometry.Vector3D{
		X: math.Cos(c.Yaw) * cp,
		Y: math.Sin(c.Pitch),
		Z: math.Sin(c.Yaw) * cp,
	}.Normalize()
	c.Right = c.Front.Cross(geometry.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// Move translates the camera along its current front and right vectors.
// Opposite keys held together cancel out.
func (c *Camera) Move(forward, back, left, right bool) {
	if forward {
		c.Position = c.Position.Add(c.Front.Mul(c.MoveSpeed))
	}
	if back {
		c.Position = c.Position.Sub(c.Front.Mul(c.MoveSpeed))
	}
	if left {
		c.Position = c.Position.Sub(c.Right.Mul(c.MoveSpeed))
	}
	if right {
		c.Position = c.Position.Add(c.Right.Mul(c.MoveSpeed))
	}
}

// Look turns the camera by a cursor displacement (dx, dy) measured over dt seconds.
// Moving the cursor down tilts the view down.
func (c *Camera) Look(dx, dy, dt float64) {
	c.Yaw += dx * dt * c.LookSpeed
	c.Pitch += dy * dt * -c.LookSpeed
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch))
	c.refresh()
}

// Target is the point the camera looks at.
func (c *Camera) Target() geometry.Vector3D { return c.Position.Add(c.Front) }

// view expresses p in camera space: x to the right, y up, z the depth in front of the camera.
func (c *Camera) view(p geometry.Vector3D) geometry.Vector3D {
	d := p.Sub(c.Position)
	return geometry.Vector3D{X: d.Dot(c.Right), Y: d.Dot(c.Up), Z: d.Dot(c.Front)}
}

// screen maps a camera space point with positive depth to pixel coordinates.
func (c *Camera) screen(v geometry.Vector3D, width, height float64) geometry.Vector2D {
	f := (height / 2) / math.Tan(c.FovY/2)
	return geometry.Vector2D{
		X: width/2 + v.X/v.Z*f,
		Y: height/2 - v.Y/v.Z*f,
	}
}

// Project returns the pixel position of p on a width x height canvas.
// ok is false when p lies behind the near plane.
func (c *Camera) Project(p geometry.Vector3D, width, height float64) (geometry.Vector2D, bool) {
	v := c.view(p)
	if v.Z < c.Near {
		return geometry.Vector2D{}, false
	}
	return c.screen(v, width, height), true
}

// ProjectSegment clips the segment a-b against the near plane and projects what
// is left. ok is false when the whole segment is behind the camera.
func (c *Camera) ProjectSegment(a, b geometry.Vector3D, width, height float64) (geometry.Vector2D, geometry.Vector2D, bool) {
	va, vb := c.view(a), c.view(b)
	inA, inB := va.Z >= c.Near, vb.Z >= c.Near
	switch {
	case !inA && !inB:
		return geometry.Vector2D{}, geometry.Vector2D{}, false
	case !inA:
		va = clip(vb, va, c.Near)
	case !inB:
		vb = clip(va, vb, c.Near)
	}
	return c.screen(va, width, height), c.screen(vb, width, height), true
}

// clip returns the point of segment in-out lying on the plane z = near.
func clip(in, out geometry.Vector3D, near float64) geometry.Vector3D {
	t := (in.Z - near) / (in.Z - out.Z)
	return in.Add(out.Sub(in).Mul(t))
}

// CubeEdges returns the 12 edges of the axis aligned cube centered on center.
func CubeEdges(center geometry.Vector3D, size float64) [12][2]geometry.Vector3D {
	h := size / 2
	var corners [8]geometry.Vector3D
	for i := range corners {
		corner := geometry.Vector3D{X: -h, Y: -h, Z: -h}
		if i&1 != 0 {
			corner.X = h
		}
		if i&2 != 0 {
			corner.Y = h
		}
		if i&4 != 0 {
			corner.Z = h
		}
		corners[i] = center.Add(corner)
	}
	var edges [12][2]geometry.Vector3D
	n := 0
	for i := range corners {
		for bit := 1; bit < 8; bit <<= 1 {
			if j := i | bit; j != i {
				edges[n] = [2]geometry.Vector3D{corners[i], corners[j]}
				n++
			}
		}
	}
	return edges
}
