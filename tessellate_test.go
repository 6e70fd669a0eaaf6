package hemesh_test

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/soypat/hemesh"
	"github.com/soypat/hemesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTessellateQuad(t *testing.T) {
	m, _ := mustBuild(t, hemesh.Soup{
		Positions: []r3.Vec{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
		Faces:     [][]int{{0, 1, 2, 3}},
	})
	b, err := m.Tessellate(hemesh.TessParms{})
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Positions) != 4 || len(b.Normals) != 4 || b.TriangleCount() != 2 {
		t.Fatalf("got %d positions, %d normals, %d triangles; want 4, 4, 2", len(b.Positions), len(b.Normals), b.TriangleCount())
	}
	if !slices.Equal(b.Indices, []uint32{0, 1, 2, 0, 2, 3}) {
		t.Errorf("got indices %v", b.Indices)
	}
	want := r3.Vec{Z: 1}
	for i, n := range b.Normals {
		if !d3.EqualWithin(n, want, 1e-12) {
			t.Errorf("normal %d: got %v, want %v", i, n, want)
		}
	}
}

func TestTessellatePyramid(t *testing.T) {
	m, _ := mustBuild(t, hemesh.Pyramid())
	b, err := m.Tessellate(hemesh.TessParms{})
	if err != nil {
		t.Fatal(err)
	}
	if b.TriangleCount() != 6 || len(b.Indices) != 18 {
		t.Fatalf("got %d triangles, %d indices; want 6, 18", b.TriangleCount(), len(b.Indices))
	}
	if len(b.Positions) != 16 || len(b.Normals) != 16 {
		t.Fatalf("got %d positions, %d normals; want 16", len(b.Positions), len(b.Normals))
	}
	for _, idx := range b.Indices {
		if int(idx) >= len(b.Positions) {
			t.Fatalf("index %d out of range", idx)
		}
	}
	// Base faces down, every side face leans outward from the apex axis.
	for i := 0; i < 4; i++ {
		if !d3.EqualWithin(b.Normals[i], r3.Vec{Y: -1}, 1e-12) {
			t.Errorf("base normal %v, want -Y", b.Normals[i])
		}
	}
	center := r3.Vec{X: 0.5, Y: 0.25, Z: 0.5}
	for tri := 2; tri < b.TriangleCount(); tri++ {
		corners := b.Triangle(tri)
		c := d3.Set(corners[:]).Mean()
		n := b.Normals[b.Indices[3*tri]]
		if r3.Dot(n, r3.Sub(c, center)) <= 0 {
			t.Errorf("triangle %d normal %v points inward", tri, n)
		}
	}
}

func TestTessellateRepeatable(t *testing.T) {
	m, _ := mustBuild(t, hemesh.Icosahedron())
	a, err := m.Tessellate(hemesh.TessParms{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.Tessellate(hemesh.TessParms{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("tessellating an unmodified mesh twice gave different buffers")
	}
}

func TestTessellateDegenerate(t *testing.T) {
	m, _ := mustBuild(t, hemesh.Soup{
		Positions: []r3.Vec{{}, {X: 1}, {X: 2}, {Y: 1}},
		Faces:     [][]int{{0, 1, 2}, {0, 1, 3}},
	})
	b, err := m.Tessellate(hemesh.TessParms{})
	var ferr *hemesh.FaceError
	if !errors.Is(err, hemesh.ErrDegenerateFace) || !errors.As(err, &ferr) {
		t.Fatalf("got %v, want degenerate face error", err)
	}
	if ferr.Face != 0 {
		t.Errorf("blamed face %d, want 0", ferr.Face)
	}
	if b.TriangleCount() != 2 {
		t.Fatalf("degenerate face aborted tessellation: %d triangles", b.TriangleCount())
	}
	for i := 0; i < 3; i++ {
		if !d3.IsZero(b.Normals[i]) {
			t.Errorf("degenerate face normal %v, want zero", b.Normals[i])
		}
	}
	if !d3.EqualWithin(b.Normals[3], r3.Vec{Z: 1}, 1e-12) {
		t.Errorf("healthy face normal %v, want +Z", b.Normals[3])
	}
}

func TestTessellateSmoothNormals(t *testing.T) {
	soup := hemesh.Icosahedron()
	m, _ := mustBuild(t, soup)
	for _, w := range []hemesh.NormalWeighting{hemesh.AngleWeighted, hemesh.AreaWeighted} {
		vn := m.VertexNormals(w)
		for i, n := range vn {
			if want := r3.Unit(soup.Positions[i]); !d3.EqualWithin(n, want, 1e-9) {
				t.Errorf("weighting %d vertex %d: normal %v, want %v", w, i, n, want)
			}
		}
		b, err := m.Tessellate(hemesh.TessParms{Normals: hemesh.SmoothNormals, VertexNormals: vn})
		if err != nil {
			t.Fatal(err)
		}
		for i, p := range b.Positions {
			if !d3.EqualWithin(b.Normals[i], r3.Unit(p), 1e-9) {
				t.Fatalf("emitted vertex %d normal %v does not match its position direction", i, b.Normals[i])
			}
		}
	}
	_, err := m.Tessellate(hemesh.TessParms{Normals: hemesh.SmoothNormals, VertexNormals: make([]r3.Vec, 3)})
	if err == nil {
		t.Error("expected error for short normal slice")
	}
}

func TestTessellateAfterSmooth(t *testing.T) {
	m, _ := mustBuild(t, hemesh.Pyramid())
	before, _ := m.Tessellate(hemesh.TessParms{})
	if err := m.Smooth(hemesh.SmoothParms{}); err != nil {
		t.Fatal(err)
	}
	after, err := m.Tessellate(hemesh.TessParms{})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(before.Indices, after.Indices) {
		t.Error("smoothing changed the triangle indices")
	}
	if reflect.DeepEqual(before.Positions, after.Positions) {
		t.Error("tessellation did not pick up smoothed positions")
	}
}
