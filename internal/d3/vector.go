package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// R3 vector helpers not covered by gonum's r3 package.

// Elem returns a vector with all components set to v.
func Elem(v float64) r3.Vec {
	return r3.Vec{X: v, Y: v, Z: v}
}

// EqualWithin reports whether all components of a and b differ by at most tol.
func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

// AddScaled returns a + k*b.
func AddScaled(a r3.Vec, k float64, b r3.Vec) r3.Vec {
	return r3.Vec{
		X: a.X + k*b.X,
		Y: a.Y + k*b.Y,
		Z: a.Z + k*b.Z,
	}
}

// UnitOrZero returns the unit vector of v. Unlike r3.Unit it returns
// the zero vector when v has no length instead of NaN components.
func UnitOrZero(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// IsZero reports whether v is the zero vector.
func IsZero(v r3.Vec) bool { return v == r3.Vec{} }

// Finite reports whether no component of v is NaN or infinite.
func Finite(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// Angle returns the angle between a and b in radians. Zero length
// vectors have an angle of zero with anything.
func Angle(a, b r3.Vec) float64 {
	na, nb := r3.Norm(a), r3.Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	c := r3.Dot(a, b) / (na * nb)
	// Clamp rounding error so Acos never sees |c| > 1.
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

type Set []r3.Vec

// Mean returns the arithmetic mean of the set. The set must not be empty.
func (a Set) Mean() r3.Vec {
	var sum r3.Vec
	for _, v := range a {
		sum = r3.Add(sum, v)
	}
	return r3.Scale(1/float64(len(a)), sum)
}

// Bounds returns the bounding box of the set.
func (a Set) Bounds() Box {
	b := EmptyBox()
	for _, v := range a {
		b = b.Include(v)
	}
	return b
}
