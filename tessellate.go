package hemesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/hemesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// NormalMode selects which normal is emitted with each tessellated vertex.
type NormalMode uint8

const (
	// FlatNormals emits the face normal for every vertex of a face.
	FlatNormals NormalMode = iota
	// SmoothNormals emits a caller supplied normal per mesh vertex.
	SmoothNormals
)

// TessParms configures Tessellate. The zero value tessellates with flat normals.
type TessParms struct {
	Normals NormalMode
	// VertexNormals is indexed by VertexID and required by SmoothNormals.
	// See Mesh.VertexNormals.
	VertexNormals []r3.Vec
}

// Buffers holds tessellated geometry ready to be handed to a renderer.
// Positions and Normals have the same length; every three consecutive
// Indices form a counter-clockwise triangle when faces were wound that way.
type Buffers struct {
	Positions []r3.Vec
	Normals   []r3.Vec
	Indices   []uint32
}

// TriangleCount returns the number of triangles in the buffers.
func (b *Buffers) TriangleCount() int { return len(b.Indices) / 3 }

// Triangle returns the corner positions of the ith triangle.
func (b *Buffers) Triangle(i int) [3]r3.Vec {
	return [3]r3.Vec{
		b.Positions[b.Indices[3*i]],
		b.Positions[b.Indices[3*i+1]],
		b.Positions[b.Indices[3*i+2]],
	}
}

var errNormalCount = errors.New("hemesh: smooth normals need one normal per vertex")

// Tessellate emits every face of the mesh, in face order, as a fan of
// triangles anchored at the face's first loop vertex. Each face emits its own
// copy of its vertices so flat normals are not shared between faces.
//
// A face whose first three vertices are collinear gets a zero normal and is
// reported in the returned error as a *FaceError wrapping ErrDegenerateFace;
// the buffers are complete regardless.
func (m *Mesh) Tessellate(parms TessParms) (Buffers, error) {
	if parms.Normals == SmoothNormals && len(parms.VertexNormals) != len(m.verts) {
		return Buffers{}, fmt.Errorf("%w: got %d normals for %d vertices", errNormalCount, len(parms.VertexNormals), len(m.verts))
	}
	nv, nt := 0, 0
	for f := range m.faces {
		n := m.FaceDegree(FaceID(f))
		nv += n
		nt += n - 2
	}
	if uint64(nv) > math.MaxUint32 {
		return Buffers{}, errors.New("hemesh: mesh too large for 32 bit indices")
	}
	out := Buffers{
		Positions: make([]r3.Vec, 0, nv),
		Normals:   make([]r3.Vec, 0, nv),
		Indices:   make([]uint32, 0, 3*nt),
	}
	var errs []error
	for i := range m.faces {
		f := FaceID(i)
		normal, ok := m.FaceNormal(f)
		if !ok {
			errs = append(errs, &FaceError{Face: f, Err: ErrDegenerateFace})
		}
		start := uint32(len(out.Positions))
		for v := range m.FaceVertices(f) {
			out.Positions = append(out.Positions, m.verts[v].Pos)
			if parms.Normals == SmoothNormals {
				out.Normals = append(out.Normals, parms.VertexNormals[v])
			} else {
				out.Normals = append(out.Normals, normal)
			}
		}
		n := uint32(len(out.Positions)) - start
		for j := uint32(0); j+2 < n; j++ {
			out.Indices = append(out.Indices, start, start+j+1, start+j+2)
		}
	}
	return out, errors.Join(errs...)
}

// FaceNormal returns the unit normal of face f computed from its first
// three loop vertices. ok is false and the normal zero if those vertices
// are collinear or coincident.
func (m *Mesh) FaceNormal(f FaceID) (n r3.Vec, ok bool) {
	e0 := m.faces[f].Edge
	e1 := m.edges[e0].Next
	e2 := m.edges[e1].Next
	p0 := m.verts[m.edges[e0].Dest].Pos
	p1 := m.verts[m.edges[e1].Dest].Pos
	p2 := m.verts[m.edges[e2].Dest].Pos
	n = d3.UnitOrZero(r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0)))
	return n, !d3.IsZero(n)
}

// NormalWeighting selects how face normals contribute to vertex normals.
type NormalWeighting uint8

const (
	// AngleWeighted weights each face normal by the face's corner angle at the vertex.
	AngleWeighted NormalWeighting = iota
	// AreaWeighted weights each face normal by the face area.
	AreaWeighted
)

// VertexNormals returns one unit normal per vertex, averaged from the
// normals of the faces around it. Vertices not used by any face, or whose
// faces cancel out, get a zero normal.
func (m *Mesh) VertexNormals(weight NormalWeighting) []r3.Vec {
	normals := make([]r3.Vec, len(m.verts))
	var corners []VertexID
	for i := range m.faces {
		f := FaceID(i)
		corners = corners[:0]
		for v := range m.FaceVertices(f) {
			corners = append(corners, v)
		}
		switch weight {
		case AreaWeighted:
			// Sum of fan triangle cross products is twice the area vector
			// of a planar polygon.
			p0 := m.verts[corners[0]].Pos
			var area r3.Vec
			for j := 1; j+1 < len(corners); j++ {
				a := r3.Sub(m.verts[corners[j]].Pos, p0)
				b := r3.Sub(m.verts[corners[j+1]].Pos, p0)
				area = r3.Add(area, r3.Cross(a, b))
			}
			for _, v := range corners {
				normals[v] = r3.Add(normals[v], area)
			}
		default:
			fn, ok := m.FaceNormal(f)
			if !ok {
				continue
			}
			n := len(corners)
			for j, v := range corners {
				p := m.verts[v].Pos
				prev := m.verts[corners[(j+n-1)%n]].Pos
				next := m.verts[corners[(j+1)%n]].Pos
				alpha := d3.Angle(r3.Sub(prev, p), r3.Sub(next, p))
				normals[v] = d3.AddScaled(normals[v], alpha, fn)
			}
		}
	}
	for i := range normals {
		normals[i] = d3.UnitOrZero(normals[i])
	}
	return normals
}
