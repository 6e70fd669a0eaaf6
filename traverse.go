package hemesh

import (
	"iter"

	"gonum.org/v1/gonum/spatial/r3"
)

// FaceLoop returns the half-edges of face f in loop order starting at
// the face's first half-edge. The sequence can be ranged over any
// number of times.
func (m *Mesh) FaceLoop(f FaceID) iter.Seq[EdgeID] {
	return func(yield func(EdgeID) bool) {
		start := m.faces[f].Edge
		e := start
		for {
			if !yield(e) {
				return
			}
			e = m.edges[e].Next
			if e == start {
				return
			}
		}
	}
}

// FaceVertices returns the vertices of face f in loop order. The first
// vertex yielded is the destination of the face's first half-edge.
func (m *Mesh) FaceVertices(f FaceID) iter.Seq[VertexID] {
	return func(yield func(VertexID) bool) {
		for e := range m.FaceLoop(f) {
			if !yield(m.edges[e].Dest) {
				return
			}
		}
	}
}

// FaceDegree returns the number of vertices of face f.
func (m *Mesh) FaceDegree(f FaceID) (n int) {
	for range m.FaceLoop(f) {
		n++
	}
	return n
}

// Ring returns a walker over the one-ring of vertex v.
func (m *Mesh) Ring(v VertexID) *RingWalker {
	w := &RingWalker{}
	w.Reset(m, v)
	return w
}

// RingWalker visits the vertices sharing an edge with a center vertex, in
// angular order. It is used like bufio.Scanner:
//
//	w := m.Ring(v)
//	for w.Next() {
//		use(w.Vertex())
//	}
//	if err := w.Err(); err != nil {
//		// v is on a boundary or the mesh is broken around it.
//	}
//
// The walk stops with an error instead of looping forever when it runs
// into a boundary edge or fails to close within NumEdges steps.
type RingWalker struct {
	m      *Mesh
	center VertexID
	seed   EdgeID
	cur    EdgeID
	steps  int
	state  uint8
	err    error
}

const (
	ringReady = iota
	ringWalking
	ringDone
)

// Reset restarts the walker around vertex v of m.
func (w *RingWalker) Reset(m *Mesh, v VertexID) {
	*w = RingWalker{m: m, center: v, seed: m.verts[v].Edge, cur: None}
}

// Next advances to the next neighbor. It returns false once the ring
// closes or an error stops the walk.
func (w *RingWalker) Next() bool {
	switch w.state {
	case ringDone:
		return false
	case ringReady:
		w.state = ringWalking
		if w.seed == None {
			return w.fail(ErrIsolatedVertex)
		}
		w.cur = w.seed
		return true
	}
	edges := w.m.edges
	t := edges[edges[w.cur].Prev].Twin
	switch {
	case t == None:
		return w.fail(ErrBoundaryVertex)
	case t == w.seed:
		w.state = ringDone
		return false
	}
	w.steps++
	if w.steps >= len(edges) {
		return w.fail(ErrRingNotClosed)
	}
	w.cur = t
	return true
}

func (w *RingWalker) fail(err error) bool {
	w.err = &VertexError{Vertex: w.center, Err: err}
	w.state = ringDone
	return false
}

// Vertex returns the current neighbor.
func (w *RingWalker) Vertex() VertexID { return w.m.edges[w.cur].Dest }

// Position returns the position of the current neighbor.
func (w *RingWalker) Position() r3.Vec { return w.m.verts[w.m.edges[w.cur].Dest].Pos }

// Edge returns the current half-edge, which leaves the center vertex.
func (w *RingWalker) Edge() EdgeID { return w.cur }

// Err returns the error that stopped the walk, if any. It is a
// *VertexError wrapping ErrBoundaryVertex, ErrRingNotClosed or ErrIsolatedVertex.
func (w *RingWalker) Err() error { return w.err }

// OneRing appends the one-ring neighbors of v to dst. On error the
// neighbors found before the walk stopped are still returned.
func (m *Mesh) OneRing(v VertexID, dst []VertexID) ([]VertexID, error) {
	var w RingWalker
	w.Reset(m, v)
	for w.Next() {
		dst = append(dst, w.Vertex())
	}
	return dst, w.Err()
}

// BoundaryFan appends the neighbors of v to dst, walking around v in both
// directions until a boundary edge is met on each side. For interior
// vertices the result is the same as OneRing's.
func (m *Mesh) BoundaryFan(v VertexID, dst []VertexID) ([]VertexID, error) {
	seed := m.verts[v].Edge
	if seed == None {
		return dst, &VertexError{Vertex: v, Err: ErrIsolatedVertex}
	}
	budget := len(m.edges)
	e := seed
	for steps := 0; ; steps++ {
		if steps >= budget {
			return dst, &VertexError{Vertex: v, Err: ErrRingNotClosed}
		}
		dst = append(dst, m.edges[e].Dest)
		in := m.edges[e].Prev
		t := m.edges[in].Twin
		if t == seed {
			return dst, nil // Closed ring, v is interior.
		}
		if t == None {
			// Incoming boundary edge: its tail is the last neighbor on this side.
			dst = append(dst, m.Tail(in))
			break
		}
		e = t
	}
	e = seed
	for steps := 0; m.edges[e].Twin != None; steps++ {
		if steps >= budget {
			return dst, &VertexError{Vertex: v, Err: ErrRingNotClosed}
		}
		e = m.edges[m.edges[e].Twin].Next
		dst = append(dst, m.edges[e].Dest)
	}
	return dst, nil
}
