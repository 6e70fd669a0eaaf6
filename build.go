package hemesh

import (
	"log/slog"
	"math"

	"github.com/soypat/hemesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Soup is unstructured polygon input: positions and faces that index them.
type Soup struct {
	Positions []r3.Vec
	// Faces lists each polygon as at least 3 indices into Positions,
	// all faces wound the same way.
	Faces [][]int
	// Shells holds the index of the first face of every face group after
	// the first one. Twins are only resolved between faces of the same
	// shell. Nil means all faces form a single shell.
	Shells []int
}

// EdgeKey identifies an oriented edge by its end vertices.
type EdgeKey struct {
	Tail, Head VertexID
}

func (k EdgeKey) reverse() EdgeKey { return EdgeKey{Tail: k.Head, Head: k.Tail} }

// undirected returns the key with the lower vertex first.
func (k EdgeKey) undirected() EdgeKey {
	if k.Tail > k.Head {
		return k.reverse()
	}
	return k
}

// BuildReport holds diagnostics gathered while building a mesh.
type BuildReport struct {
	// NonManifold lists undirected edges (lower vertex first) used by more than
	// two faces, or twice in the same direction. Their half-edges are left without twin.
	NonManifold []EdgeKey
	// Boundary is the number of half-edges without twin once the build completes.
	Boundary int
}

// twinSlot is the value of the twin lookup table. A slot is either
// absent from the table, holds one half-edge, or is in conflict.
type twinSlot struct {
	e        EdgeID
	conflict bool
}

// Build creates a half-edge mesh from polygon soup. Vertex i of the
// mesh corresponds to s.Positions[i] and face j to s.Faces[j]. Half-edge
// k of a face points at the face's vertex k+1, wrapping around.
//
// Malformed input is rejected with an *InputError before anything is built.
// Edges shared by more than two faces are not an error; they are left
// unpaired and listed in the returned report.
func Build(s Soup) (*Mesh, BuildReport, error) {
	nhe, err := validateSoup(s)
	if err != nil {
		return nil, BuildReport{}, err
	}
	m := &Mesh{
		verts: make([]Vertex, len(s.Positions)),
		faces: make([]Face, 0, len(s.Faces)),
		edges: make([]HalfEdge, 0, nhe),
	}
	for i, p := range s.Positions {
		m.verts[i] = Vertex{Pos: p, Edge: None}
	}
	b := builder{m: m, seen: make(map[EdgeKey]struct{})}
	shellStart := 0
	for si := 0; si <= len(s.Shells); si++ {
		end := len(s.Faces)
		if si < len(s.Shells) {
			end = s.Shells[si]
		}
		if si > 0 {
			m.shells = append(m.shells, FaceID(shellStart))
		}
		b.twins = make(map[EdgeKey]twinSlot, 2*(end-shellStart))
		for _, face := range s.Faces[shellStart:end] {
			b.addFace(face)
		}
		Logger().Debug("hemesh: built shell", slog.Int("shell", si),
			slog.Int("faces", end-shellStart), slog.Int("edgeKeys", len(b.twins)))
		shellStart = end
	}
	rep := BuildReport{NonManifold: b.conflicts, Boundary: m.BoundaryEdges()}
	for _, k := range rep.NonManifold {
		Logger().Warn("hemesh: non-manifold edge left unpaired",
			slog.Int("v0", int(k.Tail)), slog.Int("v1", int(k.Head)))
	}
	return m, rep, nil
}

type builder struct {
	m     *Mesh
	twins map[EdgeKey]twinSlot
	// seen deduplicates conflicts across the whole build.
	seen      map[EdgeKey]struct{}
	conflicts []EdgeKey
}

func (b *builder) addFace(face []int) {
	m := b.m
	f := FaceID(len(m.faces))
	first := EdgeID(len(m.edges))
	n := EdgeID(len(face))
	m.faces = append(m.faces, Face{Edge: first})
	for k := EdgeID(0); k < n; k++ {
		tail := VertexID(face[k])
		head := VertexID(face[(k+1)%n])
		e := first + k
		m.edges = append(m.edges, HalfEdge{
			Dest: head,
			Face: f,
			Next: first + (k+1)%n,
			Prev: first + (k+n-1)%n,
			Twin: None,
		})
		m.verts[tail].Edge = e
		b.resolveTwin(e, EdgeKey{Tail: tail, Head: head})
	}
}

// resolveTwin records half-edge e under key k and pairs it with the
// half-edge stored under the reversed key, if any.
func (b *builder) resolveTwin(e EdgeID, k EdgeKey) {
	rev := k.reverse()
	if s, ok := b.twins[k]; ok {
		// Same oriented edge seen twice: either a third face on this edge
		// or two faces with opposing winding. No pairing is trustworthy.
		if !s.conflict {
			b.unpair(s.e)
			b.twins[k] = twinSlot{conflict: true}
		}
		if r, ok := b.twins[rev]; ok && !r.conflict {
			b.unpair(r.e)
			b.twins[rev] = twinSlot{conflict: true}
		}
		b.markConflict(k)
		return
	}
	r, ok := b.twins[rev]
	if ok && r.conflict {
		b.twins[k] = twinSlot{conflict: true}
		return
	}
	b.twins[k] = twinSlot{e: e}
	if ok {
		b.m.edges[e].Twin = r.e
		b.m.edges[r.e].Twin = e
	}
}

func (b *builder) unpair(e EdgeID) {
	t := b.m.edges[e].Twin
	if t == None {
		return
	}
	b.m.edges[t].Twin = None
	b.m.edges[e].Twin = None
}

func (b *builder) markConflict(k EdgeKey) {
	u := k.undirected()
	if _, ok := b.seen[u]; ok {
		return
	}
	b.seen[u] = struct{}{}
	b.conflicts = append(b.conflicts, u)
}

// validateSoup checks s for malformed input and returns the number of
// half-edges a mesh built from it will hold.
func validateSoup(s Soup) (nhe int, err error) {
	if len(s.Positions) > math.MaxInt32 || len(s.Faces) > math.MaxInt32 {
		return 0, &InputError{Face: -1, Vertex: -1, Reason: "too many positions or faces"}
	}
	for i, p := range s.Positions {
		if !d3.Finite(p) {
			return 0, &InputError{Face: -1, Vertex: i, Reason: "non-finite coordinate"}
		}
	}
	nv := len(s.Positions)
	for i, face := range s.Faces {
		if len(face) < 3 {
			return 0, &InputError{Face: i, Vertex: -1, Reason: "fewer than 3 vertices"}
		}
		for k, idx := range face {
			if idx < 0 || idx >= nv {
				return 0, &InputError{Face: i, Vertex: -1, Reason: "vertex index out of range"}
			}
			if idx == face[(k+1)%len(face)] {
				return 0, &InputError{Face: i, Vertex: -1, Reason: "repeated consecutive vertex"}
			}
		}
		nhe += len(face)
		if nhe > math.MaxInt32 {
			return 0, &InputError{Face: i, Vertex: -1, Reason: "too many half-edges"}
		}
	}
	last := 0
	for _, start := range s.Shells {
		if start <= last || start >= len(s.Faces) {
			return 0, &InputError{Face: -1, Vertex: -1, Reason: "shell offsets must be increasing and within face range"}
		}
		last = start
	}
	return nhe, nil
}
