package d3

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// d3.Box is a 3d bounding box.
type Box r3.Box

// Canon returns the box with Min and Max ordered component-wise.
func (a Box) Canon() Box {
	return Box{Min: MinElem(a.Min, a.Max), Max: MaxElem(a.Min, a.Max)}
}

// Empty returns true if the box has zero volume or a Min component is
// greater than its Max component.
func (a Box) Empty() bool {
	return a.Min.X >= a.Max.X || a.Min.Y >= a.Max.Y || a.Min.Z >= a.Max.Z
}

// Corners returns the box corners in marching cubes order: counter-clockwise
// around the Min.Z face starting at Min, then the same around the Max.Z face.
func (a Box) Corners() [8]r3.Vec {
	lo, hi := a.Min, a.Max
	return [8]r3.Vec{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}
