package mcubes

import (
	"errors"

	"github.com/soypat/mcubes/internal/d3"
	"github.com/soypat/mcubes/internal/mctable"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxCubeTetTriangles is the maximum amount of triangles PolygoniseTets writes.
const MaxCubeTetTriangles = 6 * MaxTetTriangles

// Field is a scalar field in 3D space.
type Field interface {
	// Evaluate returns the value of the field at p.
	Evaluate(p r3.Vec) float64
}

// FieldFunc adapts an ordinary function to the Field interface.
type FieldFunc func(p r3.Vec) float64

// Evaluate returns f(p).
func (f FieldFunc) Evaluate(p r3.Vec) float64 { return f(p) }

// NewGridCell samples f at the corners of the axis aligned box and returns
// the resulting cell with corners in marching cubes order. Min and Max may
// be given in any order. A box with no volume is an error.
func NewGridCell(box r3.Box, f Field) (GridCell, error) {
	var grid GridCell
	b := d3.Box(box).Canon()
	if b.Empty() {
		return grid, errors.New("zero volume cell")
	}
	grid.P = b.Corners()
	for i, p := range grid.P {
		grid.Val[i] = f.Evaluate(p)
	}
	return grid, nil
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

// PolygoniseTets triangulates the isosurface through the cell by means of
// marching tetrahedra over the split returned by GridCell.Tetrahedra.
// It returns the amount of triangles written to triangles, which must
// have length of at least MaxCubeTetTriangles.
func PolygoniseTets(grid GridCell, isolevel float64, triangles []Triangle3) int {
	if len(triangles) < MaxCubeTetTriangles {
		panic("mcubes: PolygoniseTets triangle buffer shorter than MaxCubeTetTriangles")
	}
	n := 0
	for _, tet := range grid.Tetrahedra() {
		n += PolygonizeTet(tet, isolevel, triangles[n:])
	}
	return n
}
