// Package hemesh implements a half-edge polygon mesh built from polygon soup,
// along with one-ring traversal, uniform Laplacian smoothing and fan
// tessellation into flat vertex/index buffers ready for rasterization.
//
// Vertices, faces and half-edges live in arenas owned by a Mesh and are
// addressed by index. Optional links hold None when absent.
package hemesh

import (
	"errors"
	"fmt"

	"github.com/soypat/hemesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// None marks an absent link, such as the twin of a boundary half-edge.
const None = -1

// VertexID indexes a vertex in a Mesh.
type VertexID int32

// FaceID indexes a face in a Mesh.
type FaceID int32

// EdgeID indexes a half-edge in a Mesh.
type EdgeID int32

// Vertex is a mesh vertex.
type Vertex struct {
	Pos r3.Vec
	// Edge is a half-edge leaving the vertex, used to seed one-ring walks.
	// None for vertices not referenced by any face.
	Edge EdgeID
}

// Face is a polygon of the mesh.
type Face struct {
	// Edge is the first half-edge of the face's boundary loop.
	Edge EdgeID
}

// HalfEdge is one directed side of a mesh edge, owned by a single face.
type HalfEdge struct {
	Dest VertexID // vertex the half-edge points to.
	Face FaceID
	Next EdgeID
	Prev EdgeID
	// Twin is the reversed half-edge on the adjacent face, None on
	// boundary edges and on edges whose twin could not be resolved.
	Twin EdgeID
}

// Mesh is a half-edge mesh. Its topology is fixed once built;
// only vertex positions may change afterwards.
//
// A Mesh is not safe for concurrent use when positions are being written.
type Mesh struct {
	verts []Vertex
	faces []Face
	edges []HalfEdge
	// shells holds the first face of each shell after the first.
	shells []FaceID
}

// NumVertices returns the number of vertices in the mesh.
func (m *Mesh) NumVertices() int { return len(m.verts) }

// NumFaces returns the number of faces in the mesh.
func (m *Mesh) NumFaces() int { return len(m.faces) }

// NumEdges returns the number of half-edges in the mesh.
func (m *Mesh) NumEdges() int { return len(m.edges) }

// NumShells returns the number of independent face groups the mesh was built from.
func (m *Mesh) NumShells() int {
	if len(m.faces) == 0 {
		return 0
	}
	return len(m.shells) + 1
}

// Vertex returns the vertex record for v.
func (m *Mesh) Vertex(v VertexID) Vertex { return m.verts[v] }

// Face returns the face record for f.
func (m *Mesh) Face(f FaceID) Face { return m.faces[f] }

// HalfEdge returns the half-edge record for e.
func (m *Mesh) HalfEdge(e EdgeID) HalfEdge { return m.edges[e] }

// Position returns the position of vertex v.
func (m *Mesh) Position(v VertexID) r3.Vec { return m.verts[v].Pos }

// SetPosition moves vertex v to p. Topology is unaffected.
func (m *Mesh) SetPosition(v VertexID, p r3.Vec) { m.verts[v].Pos = p }

// Tail returns the vertex half-edge e leaves from.
func (m *Mesh) Tail(e EdgeID) VertexID { return m.edges[m.edges[e].Prev].Dest }

// IsBoundary reports whether half-edge e has no twin.
func (m *Mesh) IsBoundary(e EdgeID) bool { return m.edges[e].Twin == None }

// Positions returns a copy of all vertex positions indexed by VertexID.
func (m *Mesh) Positions() []r3.Vec {
	pos := make([]r3.Vec, len(m.verts))
	for i := range m.verts {
		pos[i] = m.verts[i].Pos
	}
	return pos
}

// Bounds returns the bounding box of all vertex positions.
func (m *Mesh) Bounds() r3.Box {
	b := d3.EmptyBox()
	for i := range m.verts {
		b = b.Include(m.verts[i].Pos)
	}
	return r3.Box(b)
}

// ShellFaces returns the range [start, end) of faces belonging to shell s.
func (m *Mesh) ShellFaces(s int) (start, end FaceID) {
	if s > 0 {
		start = m.shells[s-1]
	}
	end = FaceID(len(m.faces))
	if s < len(m.shells) {
		end = m.shells[s]
	}
	return start, end
}

// BoundaryEdges returns the number of half-edges with no twin.
func (m *Mesh) BoundaryEdges() (n int) {
	for i := range m.edges {
		if m.edges[i].Twin == None {
			n++
		}
	}
	return n
}

var errBrokenMesh = errors.New("broken half-edge mesh")

// Check verifies the structural invariants of the mesh: half-edge loops are
// consistent and close after as many steps as the face has vertices, and
// twins are mutual and run between the same two vertices in reverse.
// It returns an error describing the first violation found.
func (m *Mesh) Check() error {
	ne := EdgeID(len(m.edges))
	valid := func(e EdgeID) bool { return e >= 0 && e < ne }
	for i := range m.edges {
		e := EdgeID(i)
		he := m.edges[e]
		if !valid(he.Next) || !valid(he.Prev) {
			return fmt.Errorf("%w: half-edge %d has out of range loop link", errBrokenMesh, e)
		}
		if m.edges[he.Next].Prev != e || m.edges[he.Prev].Next != e {
			return fmt.Errorf("%w: half-edge %d next/prev inconsistent", errBrokenMesh, e)
		}
		if he.Dest < 0 || int(he.Dest) >= len(m.verts) {
			return fmt.Errorf("%w: half-edge %d destination out of range", errBrokenMesh, e)
		}
		if m.edges[he.Next].Face != he.Face {
			return fmt.Errorf("%w: half-edge %d loop crosses faces", errBrokenMesh, e)
		}
		if he.Twin == None {
			continue
		}
		if !valid(he.Twin) {
			return fmt.Errorf("%w: half-edge %d twin out of range", errBrokenMesh, e)
		}
		tw := m.edges[he.Twin]
		if tw.Twin != e {
			return fmt.Errorf("%w: half-edge %d twin %d is not mutual", errBrokenMesh, e, he.Twin)
		}
		if tw.Dest != m.Tail(e) || he.Dest != m.Tail(he.Twin) {
			return fmt.Errorf("%w: half-edge %d and twin %d do not share endpoints", errBrokenMesh, e, he.Twin)
		}
	}
	for i := range m.faces {
		f := FaceID(i)
		start := m.faces[f].Edge
		if !valid(start) || m.edges[start].Face != f {
			return fmt.Errorf("%w: face %d boundary edge not on face", errBrokenMesh, f)
		}
		e, n := start, 0
		for {
			e = m.edges[e].Next
			n++
			if e == start {
				break
			}
			if n > len(m.edges) {
				return fmt.Errorf("%w: face %d loop does not close", errBrokenMesh, f)
			}
		}
		if n < 3 {
			return fmt.Errorf("%w: face %d has %d sides", errBrokenMesh, f, n)
		}
	}
	for i := range m.verts {
		e := m.verts[i].Edge
		if e == None {
			continue
		}
		if !valid(e) || m.Tail(e) != VertexID(i) {
			return fmt.Errorf("%w: vertex %d seed edge does not leave the vertex", errBrokenMesh, i)
		}
	}
	return nil
}
