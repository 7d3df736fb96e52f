// Package mcubes32 is the single precision counterpart of package mcubes
// for scalar fields evaluated in float32, i.e. on the GPU.
package mcubes32

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes/internal/mctable"
)

const (
	// Epsilon is the tolerance below which two scalar values are
	// considered equal during edge interpolation.
	Epsilon = 1e-5

	// MaxCubeTriangles is the maximum amount of triangles Polygonise writes.
	MaxCubeTriangles = mctable.MaxCubeTriangles
	// MaxTetTriangles is the maximum amount of triangles PolygonizeTet writes.
	MaxTetTriangles = mctable.MaxTetTriangles
	// MaxCubeTetTriangles is the maximum amount of triangles PolygoniseTets writes.
	MaxCubeTetTriangles = 6 * mctable.MaxTetTriangles
)

// GridCell is a cube with a scalar value sampled at each of its corners.
type GridCell struct {
	P   [8]ms3.Vec
	Val [8]float32
}

// Tetrahedron is a tetrahedron with a scalar value sampled at each of its corners.
type Tetrahedron struct {
	P   [4]ms3.Vec
	Val [4]float32
}

// SDF3 evaluates a scalar field at many positions in a single call.
type SDF3 interface {
	Evaluate(pos []ms3.Vec, dist []float32, userData any) error
}

// NewGridCell evaluates s at the corners of the axis aligned box and
// returns the resulting cell with corners in marching cubes order. Min and
// Max may be given in any order. A box with no volume is an error.
func NewGridCell(box ms3.Box, s SDF3) (GridCell, error) {
	var grid GridCell
	box = box.Canon()
	if box.Empty() {
		return grid, errors.New("zero volume cell")
	}
	copy(grid.P[:], box.Vertices())
	err := s.Evaluate(grid.P[:], grid.Val[:], nil)
	if err != nil {
		return GridCell{}, err
	}
	return grid, nil
}

// VertexInterp linearly interpolates the position where an isosurface
// cuts the edge between p1 and p2 with respective scalar values valp1 and valp2.
// Degenerate edges resolve to an endpoint the same way as mcubes.VertexInterp.
func VertexInterp(isolevel float32, p1, p2 ms3.Vec, valp1, valp2 float32) ms3.Vec {
	if math32.Abs(isolevel-valp1) < Epsilon {
		return p1
	}
	if math32.Abs(isolevel-valp2) < Epsilon {
		return p2
	}
	if math32.Abs(valp1-valp2) < Epsilon {
		return p1
	}
	mu := (isolevel - valp1) / (valp2 - valp1)
	return ms3.Add(p1, ms3.Scale(mu, ms3.Sub(p2, p1)))
}

// CubeIndex returns the marching cubes case index of the cell.
func CubeIndex(grid GridCell, isolevel float32) uint8 {
	var index uint8
	for i, v := range grid.Val {
		if v < isolevel {
			index |= 1 << i
		}
	}
	return index
}

// Polygonise writes the triangles of the isosurface through the cell to
// triangles and returns the amount written. triangles must have length of
// at least MaxCubeTriangles.
func Polygonise(grid GridCell, isolevel float32, triangles []ms3.Triangle) int {
	if len(triangles) < MaxCubeTriangles {
		panic("mcubes32: Polygonise triangle buffer shorter than MaxCubeTriangles")
	}
	index := CubeIndex(grid, isolevel)
	edges := mctable.EdgeTable[index]
	if edges == 0 {
		return 0
	}
	var vertList [12]ms3.Vec
	for e, ends := range mctable.CubeEdges {
		if edges&(1<<e) != 0 {
			a, b := ends[0], ends[1]
			vertList[e] = VertexInterp(isolevel, grid.P[a], grid.P[b], grid.Val[a], grid.Val[b])
		}
	}
	tris := &mctable.TriangleTable[index]
	n := 0
	for i := 0; tris[i] != -1; i += 3 {
		triangles[n] = ms3.Triangle{
			vertList[tris[i]],
			vertList[tris[i+1]],
			vertList[tris[i+2]],
		}
		n++
	}
	return n
}

// TetIndex returns the marching tetrahedra case index.
func TetIndex(tet Tetrahedron, isolevel float32) uint8 {
	var index uint8
	for i, v := range tet.Val {
		if v < isolevel {
			index |= 1 << i
		}
	}
	return index
}

// PolygonizeTet writes the triangles of the isosurface through the
// tetrahedron to triangles and returns the amount written. triangles must
// have length of at least MaxTetTriangles.
func PolygonizeTet(tet Tetrahedron, isolevel float32, triangles []ms3.Triangle) int {
	if len(triangles) < MaxTetTriangles {
		panic("mcubes32: PolygonizeTet triangle buffer shorter than MaxTetTriangles")
	}
	tris := &mctable.TetTriangleTable[TetIndex(tet, isolevel)]
	n := 0
	for i := 0; tris[i] != -1; i += 3 {
		var t ms3.Triangle
		for j := range t {
			ends := mctable.TetEdges[tris[i+j]]
			a, b := ends[0], ends[1]
			t[j] = VertexInterp(isolevel, tet.P[a], tet.P[b], tet.Val[a], tet.Val[b])
		}
		triangles[n] = t
		n++
	}
	return n
}

// Tetrahedra splits the cell into six tetrahedra that partition it.
func (grid GridCell) Tetrahedra() (tets [6]Tetrahedron) {
	for i, corners := range mctable.CubeTetrahedra {
		for j, c := range corners {
			tets[i].P[j] = grid.P[c]
			tets[i].Val[j] = grid.Val[c]
		}
	}
	return tets
}

// PolygoniseTets triangulates the cell using marching tetrahedra. triangles
// must have length of at least MaxCubeTetTriangles.
func PolygoniseTets(grid GridCell, isolevel float32, triangles []ms3.Triangle) int {
	if len(triangles) < MaxCubeTetTriangles {
		panic("mcubes32: PolygoniseTets triangle buffer shorter than MaxCubeTetTriangles")
	}
	n := 0
	for _, tet := range grid.Tetrahedra() {
		n += PolygonizeTet(tet, isolevel, triangles[n:])
	}
	return n
}
