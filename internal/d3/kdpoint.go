package d3

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = KDPoints{}
	_ kdtree.Comparable = KDPoint{}
)

// KDPoint is a kd-tree point carrying the index of whatever it was taken from.
type KDPoint struct {
	r3.Vec
	Index int
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
//
// Given c = a.Compare(b, d):
//
//	c = a_d - b_d
func (a KDPoint) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a.Vec, b.(KDPoint).Vec, d)
}

// Dims returns the number of dimensions described in the Comparable.
func (a KDPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a KDPoint) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.Vec, b.(KDPoint).Vec))
}

// KDPoints is a list of points that kdtree.New can partition.
type KDPoints []KDPoint

// Index returns the ith element of the list of points.
func (k KDPoints) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k KDPoints) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k KDPoints) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: d, points: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k KDPoints) Slice(start, end int) kdtree.Interface { return k[start:end] }

func kdComp(a, b r3.Vec, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return a.X - b.X
	case 1:
		return a.Y - b.Y
	case 2:
		return a.Z - b.Z
	}
	panic("illegal dimension")
}

type kdPlane struct {
	dim    kdtree.Dim
	points KDPoints
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.points[i].Vec, p.points[j].Vec, p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p kdPlane) Len() int {
	return len(p.points)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
