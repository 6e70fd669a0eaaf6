// Package sdfxsoup meshes github.com/deadsy/sdfx solids into polygon soup
// so they can be built into half-edge meshes.
package sdfxsoup

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/hemesh"
	"github.com/soypat/hemesh/helpers/meshio"
	hrender "github.com/soypat/hemesh/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// Parms configures FromSDF.
type Parms struct {
	// Cells is the number of marching cubes cells along the longest side
	// of the solid's bounding box. Default 64.
	Cells int
	// Tolerance is the weld tolerance. If zero it is 1/1000th of a cell.
	Tolerance float64
}

// FromSDF runs uniform marching cubes over s and welds the resulting
// triangles into shared vertices.
func FromSDF(s sdf.SDF3, parms Parms) (hemesh.Soup, error) {
	if parms.Cells <= 0 {
		parms.Cells = 64
	}
	if parms.Tolerance == 0 {
		size := s.BoundingBox().Size()
		parms.Tolerance = max(size.X, size.Y, size.Z) / float64(parms.Cells) / 1000
	}
	mc := render.NewMarchingCubesUniform(parms.Cells)
	sdfxTris := render.ToTriangles(s, mc)
	if len(sdfxTris) == 0 {
		return hemesh.Soup{}, errors.New("marching cubes produced no triangles")
	}
	tris := make([]hrender.Triangle3, 0, len(sdfxTris))
	for _, tri := range sdfxTris {
		var t hrender.Triangle3
		for j := range t.V {
			t.V[j] = r3From(tri[j])
		}
		tris = append(tris, t)
	}
	soup, err := meshio.Weld(tris, meshio.WeldParms{Tolerance: parms.Tolerance})
	if err != nil {
		return hemesh.Soup{}, fmt.Errorf("welding %d marching cubes triangles: %w", len(tris), err)
	}
	hemesh.Logger().Debug("sdfxsoup: meshed solid", slog.Int("triangles", len(tris)), slog.Int("vertices", len(soup.Positions)))
	return soup, nil
}

// Sphere meshes a sphere of radius centered at the origin.
func Sphere(radius float64, parms Parms) (hemesh.Soup, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return hemesh.Soup{}, err
	}
	return FromSDF(s, parms)
}

// Box meshes a box of the given size centered at the origin with edges
// rounded by round.
func Box(size r3.Vec, round float64, parms Parms) (hemesh.Soup, error) {
	s, err := sdf.Box3D(v3.Vec{X: size.X, Y: size.Y, Z: size.Z}, round)
	if err != nil {
		return hemesh.Soup{}, err
	}
	return FromSDF(s, parms)
}

func r3From(v v3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
