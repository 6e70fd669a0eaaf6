package hemesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Pyramid returns a closed square based pyramid: one quad base on the y=0
// plane and four triangles meeting at the apex, all wound to face outward.
// Built, it has 5 vertices, 5 faces and 16 half-edges, every one with a twin.
func Pyramid() Soup {
	return Soup{
		Positions: []r3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 1},
			{X: 0, Y: 0, Z: 1},
			{X: 0.5, Y: 1, Z: 0.5},
		},
		Faces: [][]int{
			{0, 1, 2, 3},
			{1, 0, 4},
			{2, 1, 4},
			{3, 2, 4},
			{0, 3, 4},
		},
	}
}

// Icosahedron returns a closed regular icosahedron with 12 vertices and 20
// outward facing triangles. Every vertex has exactly 5 neighbors.
func Icosahedron() Soup {
	t := (1 + math.Sqrt(5)) / 2
	return Soup{
		Positions: []r3.Vec{
			{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
			{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
			{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
		},
		Faces: [][]int{
			{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
			{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
			{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
			{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
		},
	}
}

// Grid returns a flat nx by nz grid of square quads with side spacing on
// the y=0 plane, facing +Y. Vertex (i,j) sits at index i*(nz+1)+j.
// Rim vertices are on the mesh boundary.
func Grid(nx, nz int, spacing float64) Soup {
	idx := func(i, j int) int { return i*(nz+1) + j }
	s := Soup{
		Positions: make([]r3.Vec, 0, (nx+1)*(nz+1)),
		Faces:     make([][]int, 0, nx*nz),
	}
	for i := 0; i <= nx; i++ {
		for j := 0; j <= nz; j++ {
			s.Positions = append(s.Positions, r3.Vec{X: float64(i) * spacing, Z: float64(j) * spacing})
		}
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < nz; j++ {
			s.Faces = append(s.Faces, []int{idx(i, j), idx(i, j+1), idx(i+1, j+1), idx(i+1, j)})
		}
	}
	return s
}
