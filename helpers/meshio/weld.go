package meshio

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/soypat/hemesh"
	"github.com/soypat/hemesh/internal/d3"
	"github.com/soypat/hemesh/render"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// WeldParms configures Weld.
type WeldParms struct {
	// Tolerance is the distance under which two corners are the same vertex.
	// It should be of the order of 1/1000th of the smallest triangle side.
	// If zero it is inferred from the shortest side.
	Tolerance float64
}

// Weld merges the corners of a triangle soup, such as the one read from an
// STL file, into shared vertices. The first corner seen within tolerance of
// a vertex wins. Triangles with two corners welded together are dropped.
func Weld(tris []render.Triangle3, parms WeldParms) (hemesh.Soup, error) {
	if len(tris) == 0 {
		return hemesh.Soup{}, errors.New("no triangles to weld")
	}
	minSide2, maxSide2 := math.MaxFloat64, 0.0
	for i := range tris {
		for j, v := range tris[i].V {
			if !d3.Finite(v) {
				return hemesh.Soup{}, fmt.Errorf("triangle %d: non-finite vertex", i)
			}
			side2 := r3.Norm2(r3.Sub(v, tris[i].V[(j+1)%3]))
			if side2 > 0 {
				minSide2 = math.Min(minSide2, side2)
			}
			maxSide2 = math.Max(maxSide2, side2)
		}
	}
	if maxSide2 == 0 {
		return hemesh.Soup{}, errors.New("all triangles collapse to points")
	}
	suggested := math.Sqrt(minSide2) / 256
	tol := parms.Tolerance
	switch {
	case tol < 0:
		return hemesh.Soup{}, errors.New("negative weld tolerance")
	case tol > math.Sqrt(maxSide2)/2:
		return hemesh.Soup{}, fmt.Errorf("weld tolerance is too large to generate appropriate mesh, suggested tolerance: %g", suggested)
	case tol == 0:
		tol = suggested
	}
	tol2 := tol * tol

	var (
		soup    hemesh.Soup
		dropped int
	)
	tree := &kdtree.Tree{}
	for i := range tris {
		var face [3]int
		for j, v := range tris[i].V {
			got, dist2 := tree.Nearest(d3.KDPoint{Vec: v})
			if got != nil && dist2 <= tol2 {
				face[j] = got.(d3.KDPoint).Index
				continue
			}
			face[j] = len(soup.Positions)
			tree.Insert(d3.KDPoint{Vec: v, Index: face[j]}, false)
			soup.Positions = append(soup.Positions, v)
		}
		if face[0] == face[1] || face[1] == face[2] || face[2] == face[0] {
			dropped++
			continue
		}
		soup.Faces = append(soup.Faces, face[:])
	}
	if dropped > 0 {
		hemesh.Logger().Debug("meshio: weld dropped collapsed triangles", slog.Int("dropped", dropped), slog.Float64("tolerance", tol))
	}
	if len(soup.Faces) == 0 {
		return hemesh.Soup{}, errors.New("every triangle collapsed while welding")
	}
	return soup, nil
}
