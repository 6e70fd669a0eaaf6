package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/hemesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// PreviewParms configures Preview. Zero fields take the defaults noted.
type PreviewParms struct {
	Width, Height int // output size in pixels, default 640x360.
	// Supersample renders at this multiple of the output size and scales
	// down for antialiasing. Default 1.
	Supersample int
	// Eye is the camera position, default (3,3,3). The mesh is first fit
	// in a bi-unit cube centered at the origin.
	Eye    r3.Vec
	LookAt r3.Vec // view center position.
	Up     r3.Vec // default +Z.
	FovY   float64 // vertical field of view in degrees, default 30.
	Near   float64 // default 1.
	Far    float64 // default 10.
	Color  string  // object color hex, default "#468966".
}

func (p *PreviewParms) setDefaults() {
	if p.Width <= 0 || p.Height <= 0 {
		p.Width, p.Height = 640, 360
	}
	if p.Supersample <= 0 {
		p.Supersample = 1
	}
	if p.Eye == (r3.Vec{}) {
		p.Eye = r3.Vec{X: 3, Y: 3, Z: 3}
	}
	if p.Up == (r3.Vec{}) {
		p.Up = r3.Vec{Z: 1}
	}
	if p.FovY == 0 {
		p.FovY = 30
	}
	if p.Near == 0 {
		p.Near = 1
	}
	if p.Far == 0 {
		p.Far = 10
	}
	if p.Color == "" {
		p.Color = "#468966"
	}
}

// Preview rasterizes tessellated buffers with a phong shader using the
// buffer normals. It is meant for eyeballing results, not for display.
func Preview(b hemesh.Buffers, parms PreviewParms) (image.Image, error) {
	if b.TriangleCount() == 0 {
		return nil, errors.New("no triangles to preview")
	}
	parms.setDefaults()
	tris := make([]*fauxgl.Triangle, b.TriangleCount())
	for i := range tris {
		var v [3]fauxgl.Vertex
		for j := range v {
			idx := b.Indices[3*i+j]
			v[j] = fauxgl.Vertex{
				Position: fauxglVec(b.Positions[idx]),
				Normal:   fauxglVec(b.Normals[idx]),
			}
		}
		// Zero normals from degenerate faces are replaced by the triangle's own.
		tris[i] = fauxgl.NewTriangle(v[0], v[1], v[2])
	}
	mesh := fauxgl.NewTriangleMesh(tris)
	mesh.BiUnitCube()

	w, h := parms.Width*parms.Supersample, parms.Height*parms.Supersample
	context := fauxgl.NewContext(w, h)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(parms.Width) / float64(parms.Height)
	eye := fauxglVec(parms.Eye)
	matrix := fauxgl.LookAt(eye, fauxglVec(parms.LookAt), fauxglVec(parms.Up)).
		Perspective(parms.FovY, aspect, parms.Near, parms.Far)
	light := fauxgl.V(-0.75, 1, 0.25).Normalize()
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(parms.Color)
	context.Shader = shader
	context.DrawMesh(mesh)

	img := context.Image()
	if parms.Supersample > 1 {
		img = resize.Resize(uint(parms.Width), uint(parms.Height), img, resize.Bilinear)
	}
	return img, nil
}

// SavePNG writes an image to a PNG file at path.
func SavePNG(path string, img image.Image) error {
	return fauxgl.SavePNG(path, img)
}

func fauxglVec(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}
