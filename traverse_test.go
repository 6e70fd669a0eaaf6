package hemesh_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/soypat/hemesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestOneRingIcosahedron(t *testing.T) {
	soup := hemesh.Icosahedron()
	m, _ := mustBuild(t, soup)
	const edgeLen = 2
	for i := range soup.Positions {
		v := hemesh.VertexID(i)
		got, err := m.OneRing(v, nil)
		if err != nil {
			t.Fatalf("vertex %d: %v", v, err)
		}
		var want []hemesh.VertexID
		for j, p := range soup.Positions {
			if math.Abs(r3.Norm(r3.Sub(p, soup.Positions[i]))-edgeLen) < 1e-9 {
				want = append(want, hemesh.VertexID(j))
			}
		}
		slices.Sort(got)
		if !slices.Equal(got, want) {
			t.Errorf("vertex %d: one-ring %v, want %v", v, got, want)
		}
	}
}

func TestRingWalkerAngularOrder(t *testing.T) {
	m, _ := mustBuild(t, hemesh.Icosahedron())
	w := m.Ring(0)
	var ring []hemesh.VertexID
	for w.Next() {
		if m.Tail(w.Edge()) != 0 {
			t.Fatalf("walker edge %d does not leave the center", w.Edge())
		}
		if w.Position() != m.Position(w.Vertex()) {
			t.Fatal("walker position mismatch")
		}
		ring = append(ring, w.Vertex())
	}
	if w.Err() != nil {
		t.Fatal(w.Err())
	}
	// Consecutive ring vertices share an edge in angular order.
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		nb, _ := m.OneRing(a, nil)
		if !slices.Contains(nb, b) {
			t.Errorf("ring neighbors %d and %d not adjacent", a, b)
		}
	}
	// Walker restarts from the seed.
	w.Reset(m, 0)
	var again []hemesh.VertexID
	for w.Next() {
		again = append(again, w.Vertex())
	}
	if !slices.Equal(ring, again) {
		t.Errorf("restarted walk %v differs from %v", again, ring)
	}
}

func TestOneRingBoundary(t *testing.T) {
	m, _ := mustBuild(t, hemesh.Grid(2, 2, 1))
	_, err := m.OneRing(0, nil)
	if !errors.Is(err, hemesh.ErrBoundaryVertex) {
		t.Fatalf("corner vertex: got %v, want ErrBoundaryVertex", err)
	}
	var verr *hemesh.VertexError
	if !errors.As(err, &verr) || verr.Vertex != 0 {
		t.Errorf("error does not identify vertex 0: %v", err)
	}
	// Center vertex of a 2x2 grid is interior.
	ring, err := m.OneRing(4, nil)
	if err != nil {
		t.Fatal(err)
	}
	slices.Sort(ring)
	if !slices.Equal(ring, []hemesh.VertexID{1, 3, 5, 7}) {
		t.Errorf("center ring %v, want [1 3 5 7]", ring)
	}
}

func TestBoundaryFan(t *testing.T) {
	m, _ := mustBuild(t, hemesh.Grid(2, 2, 1))
	for _, test := range []struct {
		v    hemesh.VertexID
		want []hemesh.VertexID
	}{
		{v: 0, want: []hemesh.VertexID{1, 3}},       // corner
		{v: 1, want: []hemesh.VertexID{0, 2, 4}},    // edge midpoint
		{v: 4, want: []hemesh.VertexID{1, 3, 5, 7}}, // interior
	} {
		got, err := m.BoundaryFan(test.v, nil)
		if err != nil {
			t.Fatalf("vertex %d: %v", test.v, err)
		}
		slices.Sort(got)
		if !slices.Equal(got, test.want) {
			t.Errorf("vertex %d fan %v, want %v", test.v, got, test.want)
		}
	}
}

func TestOneRingIsolated(t *testing.T) {
	soup := hemesh.Pyramid()
	soup.Positions = append(soup.Positions, r3.Vec{X: 10})
	m, _ := mustBuild(t, soup)
	_, err := m.OneRing(5, nil)
	if !errors.Is(err, hemesh.ErrIsolatedVertex) {
		t.Errorf("got %v, want ErrIsolatedVertex", err)
	}
	_, err = m.BoundaryFan(5, nil)
	if !errors.Is(err, hemesh.ErrIsolatedVertex) {
		t.Errorf("fan: got %v, want ErrIsolatedVertex", err)
	}
}

func TestFaceLoop(t *testing.T) {
	m, _ := mustBuild(t, hemesh.Pyramid())
	var loop []hemesh.EdgeID
	for e := range m.FaceLoop(0) {
		loop = append(loop, e)
	}
	if len(loop) != 4 {
		t.Fatalf("base loop has %d half-edges, want 4", len(loop))
	}
	for i, e := range loop {
		if m.HalfEdge(e).Next != loop[(i+1)%4] {
			t.Errorf("loop out of order at %d", i)
		}
		if m.HalfEdge(e).Face != 0 {
			t.Errorf("half-edge %d not on face 0", e)
		}
	}
	if loop[0] != m.Face(0).Edge {
		t.Error("loop does not start at the face's edge")
	}
	n := 0
	for range m.FaceLoop(0) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Error("early break not honored")
	}
}
