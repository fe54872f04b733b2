package geometry

import (
	"math"
	"testing"
)

func TestVector3D_Arithmetic(t *testing.T) {
	a := Vector3D{1, 2, 3}
	b := Vector3D{4, 5, 6}

	if got, want := a.Add(b), (Vector3D{5, 7, 9}); !got.Eq(want) {
		t.Errorf("Add = %v; want %v", got, want)
	}
	if got, want := a.Sub(b), (Vector3D{-3, -3, -3}); !got.Eq(want) {
		t.Errorf("Sub = %v; want %v", got, want)
	}
	if got, want := a.Mul(2), (Vector3D{2, 4, 6}); !got.Eq(want) {
		t.Errorf("Mul = %v; want %v", got, want)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v; want 32", got)
	}
}

func TestVector3D_Cross(t *testing.T) {
	x := Vector3D{1, 0, 0}
	y := Vector3D{0, 1, 0}
	if got, want := x.Cross(y), (Vector3D{0, 0, 1}); !got.Eq(want) {
		t.Errorf("x × y = %v; want %v", got, want)
	}
}

func TestVector3D_Normalize(t *testing.T) {
	v := Vector3D{0, 3, 4}
	if got, want := v.Normalize(), (Vector3D{0, 0.6, 0.8}); !got.Eq(want) {
		t.Errorf("Normalize = %v; want %v", got, want)
	}

	got := Vector3D{}.Normalize()
	if math.IsNaN(got.X) || !got.Eq(Vector3D{}) {
		t.Errorf("Normalize(zero) = %v; want zero vector", got)
	}
}

func TestVector3D_ClampLen(t *testing.T) {
	v := Vector3D{0, 3, 4}
	if got := v.ClampLen(0.2); !floatEquals(got.Len(), 0.2) {
		t.Errorf("ClampLen(0.2) length = %v; want 0.2", got.Len())
	}
	if got := v.ClampLen(10); !got.Eq(v) {
		t.Errorf("ClampLen(10) = %v; want %v", got, v)
	}
}

func TestVector3D_Axis(t *testing.T) {
	v := Vector3D{1, 2, 3}
	for i, want := range []float64{1, 2, 3} {
		if got := v.Axis(i); got != want {
			t.Errorf("Axis(%d) = %v; want %v", i, got, want)
		}
	}
	if got, want := v.WithAxis(2, 9), (Vector3D{1, 2, 9}); !got.Eq(want) {
		t.Errorf("WithAxis = %v; want %v", got, want)
	}
}
