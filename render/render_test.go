package render_test

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/fogleman/fauxgl"
	"github.com/soypat/hemesh"
	"github.com/soypat/hemesh/internal/d3"
	"github.com/soypat/hemesh/render"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

func tessellated(t testing.TB, s hemesh.Soup, parms hemesh.TessParms) hemesh.Buffers {
	t.Helper()
	m, _, err := hemesh.Build(s)
	if err != nil {
		t.Fatal(err)
	}
	if parms.Normals == hemesh.SmoothNormals {
		parms.VertexNormals = m.VertexNormals(hemesh.AngleWeighted)
	}
	b, err := m.Tessellate(parms)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestBufferRenderer(t *testing.T) {
	b := tessellated(t, hemesh.Icosahedron(), hemesh.TessParms{})
	r := render.NewBufferRenderer(b)
	buf := make([]render.Triangle3, 3)
	var got []render.Triangle3
	for {
		n, err := r.ReadTriangles(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	want := render.Triangles(b)
	if len(got) != 20 || len(want) != 20 {
		t.Fatalf("got %d triangles streamed, %d listed; want 20", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triangle %d: got %v, want %v", i, got[i], want[i])
		}
	}
	all, err := render.RenderAll(render.NewBufferRenderer(b))
	if err != nil || len(all) != 20 {
		t.Errorf("RenderAll got %d triangles, err %v", len(all), err)
	}
}

func TestSTLWriteReadback(t *testing.T) {
	b := tessellated(t, hemesh.Pyramid(), hemesh.TessParms{})
	input := render.Triangles(b)
	var buf bytes.Buffer
	if err := render.WriteSTL(&buf, input); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 84+50*len(input) {
		t.Fatalf("STL size %d, want %d", buf.Len(), 84+50*len(input))
	}
	output, err := render.ReadSTL(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(output) != len(input) {
		t.Fatal("length of triangles written/read not equal")
	}
	for i := range input {
		for j := range input[i].V {
			if !d3.EqualWithin(output[i].V[j], input[i].V[j], 1e-6) {
				t.Errorf("triangle %d vertex %d: got %v, want %v", i, j, output[i].V[j], input[i].V[j])
			}
		}
	}
}

func TestReadSTLNormalMismatch(t *testing.T) {
	b := tessellated(t, hemesh.Pyramid(), hemesh.TessParms{})
	var buf bytes.Buffer
	if err := render.WriteSTL(&buf, render.Triangles(b)); err != nil {
		t.Fatal(err)
	}
	raw := buf.Bytes()
	// Overwrite the first triangle's normal with a sideways unit vector.
	copy(raw[84:96], []byte{0, 0, 0x80, 0x3f, 0, 0, 0, 0, 0, 0, 0, 0})
	got, err := render.ReadSTL(bytes.NewReader(raw))
	if !errors.Is(err, render.ErrNormalMismatch) {
		t.Fatalf("got %v, want ErrNormalMismatch", err)
	}
	if len(got) != b.TriangleCount() {
		t.Errorf("mismatch dropped triangles: got %d", len(got))
	}
	if _, err := render.ReadSTL(bytes.NewReader(raw[:40])); err == nil {
		t.Error("truncated header read without error")
	}
}

func TestCreateSTL(t *testing.T) {
	b := tessellated(t, hemesh.Icosahedron(), hemesh.TessParms{})
	path := filepath.Join(t.TempDir(), "ico.stl")
	if err := render.CreateSTL(path, render.NewBufferRenderer(b)); err != nil {
		t.Fatal(err)
	}
	created, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var written bytes.Buffer
	if err := render.WriteSTL(&written, render.Triangles(b)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(created, written.Bytes()) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
	mesh, err := fauxgl.LoadSTL(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Triangles) != b.TriangleCount() {
		t.Errorf("fauxgl loaded %d triangles, want %d", len(mesh.Triangles), b.TriangleCount())
	}
}

func TestToFlat(t *testing.T) {
	b := tessellated(t, hemesh.Icosahedron(), hemesh.TessParms{Normals: hemesh.SmoothNormals})
	f, err := render.ToFlat(b)
	if err != nil {
		t.Fatal(err)
	}
	if f.VertexCount() != len(b.Positions) || f.TriangleCount() != 20 || f.IsEmpty() {
		t.Fatalf("got %d vertices, %d triangles", f.VertexCount(), f.TriangleCount())
	}
	for i := 0; i < f.VertexCount(); i++ {
		n := f.Normals[3*i : 3*i+3]
		l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if math32.Abs(l-1) > 1e-6 {
			t.Errorf("normal %d length %g", i, l)
		}
	}
	b.Indices = append(b.Indices, uint32(len(b.Positions)))
	if _, err := render.ToFlat(b); err == nil {
		t.Error("out of range index accepted")
	}
}

func encodePNG(t *testing.T, b hemesh.Buffers) []byte {
	t.Helper()
	img, err := render.Preview(b, render.PreviewParms{Width: 160, Height: 90, Supersample: 2})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Dx(); got != 160 {
		t.Fatalf("preview width %d, want 160", got)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPreviewRepeatable(t *testing.T) {
	b := tessellated(t, hemesh.Icosahedron(), hemesh.TessParms{Normals: hemesh.SmoothNormals})
	first := encodePNG(t, b)
	second := encodePNG(t, b)
	equal, err := cmpimg.EqualApprox("png", first, second, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("rendering the same buffers twice produced different images")
	}
	img, err := render.Preview(b, render.PreviewParms{})
	if err != nil {
		t.Fatal(err)
	}
	if err := render.SavePNG(filepath.Join(t.TempDir(), "ico.png"), img); err != nil {
		t.Fatal(err)
	}
	if _, err := render.Preview(hemesh.Buffers{}, render.PreviewParms{}); err == nil {
		t.Error("empty buffers previewed without error")
	}
}

func TestTriangleIndexNearest(t *testing.T) {
	b := tessellated(t, hemesh.Icosahedron(), hemesh.TessParms{})
	tris := render.Triangles(b)
	idx := render.NewTriangleIndex(tris)
	for i, tri := range tris {
		// Pushing a centroid outward keeps its own triangle closest on a convex solid.
		q := r3.Add(tri.Centroid(), r3.Scale(0.1, tri.Normal()))
		got, dist2 := idx.Nearest(q)
		if got != i {
			t.Errorf("query near triangle %d found %d", i, got)
		}
		if math.Abs(dist2-0.01) > 1e-9 {
			t.Errorf("triangle %d: squared distance %g, want 0.01", i, dist2)
		}
		if idx.Triangle(got) != tri {
			t.Errorf("triangle %d not retained", i)
		}
	}
	if got, _ := render.NewTriangleIndex(nil).Nearest(r3.Vec{}); got != -1 {
		t.Errorf("empty index returned %d", got)
	}
}
