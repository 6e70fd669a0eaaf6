package render

import (
	"github.com/soypat/hemesh/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// TriangleIndex answers nearest-triangle queries over a fixed triangle list
// using a kd-tree of triangle centroids.
type TriangleIndex struct {
	tree kdtree.Tree
	tris []Triangle3
}

// NewTriangleIndex builds an index over model. The slice is retained, not copied.
func NewTriangleIndex(model []Triangle3) *TriangleIndex {
	pts := make(d3.KDPoints, len(model))
	for i, tri := range model {
		pts[i] = d3.KDPoint{Vec: tri.Centroid(), Index: i}
	}
	return &TriangleIndex{tree: *kdtree.New(pts, false), tris: model}
}

// Nearest returns the index of the triangle whose centroid is closest to p
// and the squared distance to that centroid. It returns -1 for an empty index.
func (ti *TriangleIndex) Nearest(p r3.Vec) (int, float64) {
	if len(ti.tris) == 0 {
		return -1, 0
	}
	got, dist2 := ti.tree.Nearest(d3.KDPoint{Vec: p})
	return got.(d3.KDPoint).Index, dist2
}

// Triangle returns the ith indexed triangle.
func (ti *TriangleIndex) Triangle(i int) Triangle3 { return ti.tris[i] }
