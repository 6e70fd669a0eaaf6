// Package matter compensates meshes for the way printing materials
// deform once they cool.
package matter

import (
	"github.com/soypat/hemesh"
	"github.com/soypat/hemesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
)

type ViscousMaterial struct {
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage.
	pullShrink float64
}

// Scale enlarges the mesh about its bounding box center so the printed
// part shrinks back to the modeled size.
func (m ViscousMaterial) Scale(mesh *hemesh.Mesh) {
	bb := d3.Box(mesh.Bounds())
	if bb.Empty() {
		return
	}
	scale := 1 / (1 - m.shrink)
	center := bb.Center()
	for i := range mesh.NumVertices() {
		v := hemesh.VertexID(i)
		p := r3.Sub(mesh.Position(v), center)
		mesh.SetPosition(v, r3.Add(center, r3.Scale(scale, p)))
	}
}

// InternalDimScale returns the modeled size a hole must have to print
// at the real size.
func (m ViscousMaterial) InternalDimScale(real float64) float64 {
	if real <= 0 {
		panic("InternalDimScale only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + m.pullShrink
}
