package render

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/hemesh"
)

// Flat holds tessellated geometry as the float32 arrays a GPU upload takes.
// Vertices and Normals hold 3 floats per vertex, Indices 3 per triangle.
type Flat struct {
	Vertices []float32 // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 // [nx0,ny0,nz0, ...]
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (f *Flat) VertexCount() int { return len(f.Vertices) / 3 }

// TriangleCount returns the number of triangles.
func (f *Flat) TriangleCount() int { return len(f.Indices) / 3 }

// IsEmpty returns true if there is no geometry.
func (f *Flat) IsEmpty() bool { return len(f.Vertices) == 0 }

var errFlatRange = errors.New("coordinate does not fit in float32")

// ToFlat converts tessellated buffers to float32 arrays. Normals are
// renormalized after rounding so unit normals stay unit length in float32.
// It fails if a coordinate overflows float32.
func ToFlat(b hemesh.Buffers) (Flat, error) {
	if len(b.Positions) != len(b.Normals) {
		return Flat{}, fmt.Errorf("got %d positions and %d normals", len(b.Positions), len(b.Normals))
	}
	f := Flat{
		Vertices: make([]float32, 0, 3*len(b.Positions)),
		Normals:  make([]float32, 0, 3*len(b.Normals)),
		Indices:  append([]uint32(nil), b.Indices...),
	}
	for i, p := range b.Positions {
		v := f32From(p)
		if bad3F32(v) {
			return Flat{}, fmt.Errorf("vertex %d: %w", i, errFlatRange)
		}
		f.Vertices = append(f.Vertices, v[:]...)
		n := f32From(b.Normals[i])
		if bad3F32(n) {
			return Flat{}, fmt.Errorf("normal %d: %w", i, errFlatRange)
		}
		if l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]); l != 0 {
			n[0], n[1], n[2] = n[0]/l, n[1]/l, n[2]/l
		}
		f.Normals = append(f.Normals, n[:]...)
	}
	nv := uint32(len(b.Positions))
	for _, idx := range f.Indices {
		if idx >= nv {
			return Flat{}, fmt.Errorf("index %d out of range of %d vertices", idx, nv)
		}
	}
	return f, nil
}
