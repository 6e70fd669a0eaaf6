// Package render moves tessellated mesh geometry to its consumers: triangle
// streams, binary STL files, float32 GPU style buffers and preview images.
package render

import (
	"github.com/soypat/hemesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams triangles. ReadTriangles fills t and returns the number
// of triangles written. It returns io.EOF once no triangles remain.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle with counter-clockwise vertices.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle. It is NaN for degenerate triangles.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if any two vertices are within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t.V[0], t.V[1], tol) ||
		d3.EqualWithin(t.V[1], t.V[2], tol) ||
		d3.EqualWithin(t.V[2], t.V[0], tol)
}

// Centroid returns the mean of the triangle vertices.
func (t Triangle3) Centroid() r3.Vec {
	return d3.Set(t.V[:]).Mean()
}
