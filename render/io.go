package render

import (
	"io"

	"github.com/soypat/hemesh"
)

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var err error
	var nt int
	result := make([]Triangle3, 0, 1<<12)
	buf := make([]Triangle3, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// bufferRenderer streams the triangles of tessellated buffers.
type bufferRenderer struct {
	b    hemesh.Buffers
	next int
}

// NewBufferRenderer returns a Renderer over the triangles of b.
// b is not copied and must not be modified while reading.
func NewBufferRenderer(b hemesh.Buffers) Renderer {
	return &bufferRenderer{b: b}
}

func (r *bufferRenderer) ReadTriangles(dst []Triangle3) (n int, err error) {
	nt := r.b.TriangleCount()
	for n < len(dst) && r.next < nt {
		dst[n] = Triangle3{V: r.b.Triangle(r.next)}
		n++
		r.next++
	}
	if r.next == nt {
		err = io.EOF
	}
	return n, err
}

// Triangles returns all triangles of b.
func Triangles(b hemesh.Buffers) []Triangle3 {
	out := make([]Triangle3, b.TriangleCount())
	for i := range out {
		out[i] = Triangle3{V: b.Triangle(i)}
	}
	return out
}
