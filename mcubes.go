// Package mcubes implements the per-cell isosurface triangulation primitives
// of the marching cubes and marching tetrahedra algorithms.
//
// A cell is a cube (or tetrahedron) with a scalar field sampled at its corners.
// Given an isolevel the functions in this package emit the triangles that
// approximate the surface where the field crosses that level within the cell.
// Corners are expected in the following order for a unit cube:
//
//	0:(0,0,0) 1:(1,0,0) 2:(1,1,0) 3:(0,1,0)
//	4:(0,0,1) 5:(1,0,1) 6:(1,1,1) 7:(0,1,1)
//
// Traversal of a volume and stitching of the resulting triangles is left
// to the caller.
package mcubes

import (
	"math"

	"github.com/soypat/mcubes/internal/d3"
	"github.com/soypat/mcubes/internal/mctable"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Epsilon is the tolerance below which two scalar values are
	// considered equal during edge interpolation.
	Epsilon = 1e-5
	// MaxCubeTriangles is the maximum amount of triangles Polygonise writes.
	MaxCubeTriangles = mctable.MaxCubeTriangles
	// MaxTetTriangles is the maximum amount of triangles PolygonizeTet writes.
	MaxTetTriangles = mctable.MaxTetTriangles
)

// GridCell is a cube with a scalar value sampled at each of its corners.
type GridCell struct {
	P   [8]r3.Vec
	Val [8]float64
}

// Tetrahedron is a tetrahedron with a scalar value sampled at each of its corners.
type Tetrahedron struct {
	P   [4]r3.Vec
	Val [4]float64
}

// Triangle3 is a 3D triangle.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle following the right hand rule.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if two of the triangle's vertices are within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t.V[0], t.V[1], tol) ||
		d3.EqualWithin(t.V[1], t.V[2], tol) ||
		d3.EqualWithin(t.V[2], t.V[0], tol)
}

// VertexInterp linearly interpolates the position where an isosurface
// cuts the edge between p1 and p2 with respective scalar values valp1 and valp2.
// If the isolevel is within Epsilon of an endpoint value that endpoint is returned.
// If the edge values are within Epsilon of each other p1 is returned.
func VertexInterp(isolevel float64, p1, p2 r3.Vec, valp1, valp2 float64) r3.Vec {
	if math.Abs(isolevel-valp1) < Epsilon {
		return p1
	}
	if math.Abs(isolevel-valp2) < Epsilon {
		return p2
	}
	if math.Abs(valp1-valp2) < Epsilon {
		return p1
	}
	mu := (isolevel - valp1) / (valp2 - valp1)
	return r3.Add(p1, r3.Scale(mu, r3.Sub(p2, p1)))
}

// CubeIndex returns the marching cubes case index of the cell. Bit i is set
// when corner i lies below the isolevel.
func CubeIndex(grid GridCell, isolevel float64) uint8 {
	var index uint8
	for i, v := range grid.Val {
		if v < isolevel {
			index |= 1 << i
		}
	}
	return index
}

// Polygonise calculates the triangles representing the isosurface through the
// cell and writes them to triangles, returning the amount written. It returns 0 if the
// cell lies entirely above or below the isolevel. triangles must have
// length of at least MaxCubeTriangles.
func Polygonise(grid GridCell, isolevel float64, triangles []Triangle3) int {
	if len(triangles) < MaxCubeTriangles {
		panic("mcubes: Polygonise triangle buffer shorter than MaxCubeTriangles")
	}
	index := CubeIndex(grid, isolevel)
	edges := mctable.EdgeTable[index]
	if edges == 0 {
		return 0
	}
	var vertList [12]r3.Vec
	for e, ends := range mctable.CubeEdges {
		if edges&(1<<e) != 0 {
			a, b := ends[0], ends[1]
			vertList[e] = VertexInterp(isolevel, grid.P[a], grid.P[b], grid.Val[a], grid.Val[b])
		}
	}
	tris := &mctable.TriangleTable[index]
	n := 0
	for i := 0; tris[i] != -1; i += 3 {
		triangles[n] = Triangle3{V: [3]r3.Vec{
			vertList[tris[i]],
			vertList[tris[i+1]],
			vertList[tris[i+2]],
		}}
		n++
	}
	return n
}

// TetIndex returns the marching tetrahedra case index. Bit i is set
// when corner i lies below the isolevel.
func TetIndex(tet Tetrahedron, isolevel float64) uint8 {
	var index uint8
	for i, v := range tet.Val {
		if v < isolevel {
			index |= 1 << i
		}
	}
	return index
}

// PolygonizeTet calculates the triangles representing the isosurface through
// the tetrahedron and writes them to triangles, returning the amount written.
// It returns 0 if the tetrahedron lies entirely above or below the isolevel.
// triangles must have length of at least MaxTetTriangles.
func PolygonizeTet(tet Tetrahedron, isolevel float64, triangles []Triangle3) int {
	if len(triangles) < MaxTetTriangles {
		panic("mcubes: PolygonizeTet triangle buffer shorter than MaxTetTriangles")
	}
	tris := &mctable.TetTriangleTable[TetIndex(tet, isolevel)]
	n := 0
	for i := 0; tris[i] != -1; i += 3 {
		var t Triangle3
		for j := range t.V {
			ends := mctable.TetEdges[tris[i+j]]
			a, b := ends[0], ends[1]
			t.V[j] = VertexInterp(isolevel, tet.P[a], tet.P[b], tet.Val[a], tet.Val[b])
		}
		triangles[n] = t
		n++
	}
	return n
}
