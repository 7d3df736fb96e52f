package mcubes32_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/mcubes32"
	"gonum.org/v1/gonum/spatial/r3"
)

type sphere struct{ r float32 }

func (s sphere) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errors.New("position and distance buffer length mismatch")
	}
	for i, p := range pos {
		dist[i] = ms3.Norm(p) - s.r
	}
	return nil
}

type failSDF struct{}

func (failSDF) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	return errors.New("device lost")
}

func unitCell() mcubes32.GridCell {
	grid, err := mcubes32.NewGridCell(ms3.Box{Max: ms3.Vec{X: 1, Y: 1, Z: 1}}, sphere{r: 100})
	if err != nil {
		panic(err)
	}
	return grid
}

func TestVertexInterp(t *testing.T) {
	p1 := ms3.Vec{X: 1}
	p2 := ms3.Vec{X: 3}
	if got := mcubes32.VertexInterp(0, p1, p2, 1, 1); got != p1 {
		t.Errorf("flat edge: got %v, want p1", got)
	}
	if got := mcubes32.VertexInterp(2, p1, p2, 1, 2); got != p2 {
		t.Errorf("isolevel at valp2: got %v, want p2", got)
	}
	got := mcubes32.VertexInterp(0.25, p1, p2, 0, 1)
	if math32.Abs(got.X-1.5) > 1e-6 || got.Y != 0 || got.Z != 0 {
		t.Errorf("got %v, want (1.5,0,0)", got)
	}
}

func TestPolygoniseHorizontalSlab(t *testing.T) {
	grid := unitCell()
	grid.Val = [8]float32{0, 0, 0, 0, 1, 1, 1, 1}
	var dst [mcubes32.MaxCubeTriangles]ms3.Triangle
	n := mcubes32.Polygonise(grid, 0.5, dst[:])
	if n != 2 {
		t.Fatalf("got %d triangles, want 2", n)
	}
	for _, tri := range dst[:n] {
		for _, v := range tri {
			if v.Z != 0.5 {
				t.Errorf("vertex %v not at z=0.5", v)
			}
		}
	}
	grid.Val = [8]float32{}
	if n := mcubes32.Polygonise(grid, 1, dst[:]); n != 0 {
		t.Errorf("uniform cell: got %d triangles, want 0", n)
	}
}

func TestNewGridCell(t *testing.T) {
	box := ms3.Box{Min: ms3.Vec{X: 1, Y: 1, Z: 1}, Max: ms3.Vec{X: -1, Y: -1, Z: -1}}
	grid, err := mcubes32.NewGridCell(box, sphere{r: 1})
	if err != nil {
		t.Fatal(err)
	}
	wantP := [8]ms3.Vec{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
	}
	if grid.P != wantP {
		t.Errorf("corners not in canonical order: %v", grid.P)
	}
	for i, v := range grid.Val {
		if math32.Abs(v-(math32.Sqrt(3)-1)) > 1e-6 {
			t.Errorf("corner %d: got value %g", i, v)
		}
	}
	for _, flat := range []ms3.Box{
		{Max: ms3.Vec{X: 1, Y: 1}},
		{Min: ms3.Vec{X: 1, Y: 2, Z: 3}, Max: ms3.Vec{X: 1, Y: -2, Z: -3}},
	} {
		if _, err = mcubes32.NewGridCell(flat, failSDF{}); err == nil || err.Error() != "zero volume cell" {
			t.Errorf("box %v: got error %v, want zero volume cell", flat, err)
		}
	}
	_, err = mcubes32.NewGridCell(box, failSDF{})
	if err == nil {
		t.Error("expected evaluation error to be propagated")
	}
}

// TestMatchesFloat64 checks single and double precision implementations
// produce the same triangles.
func TestMatchesFloat64(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	grid32 := unitCell()
	var grid64 mcubes.GridCell
	for i, p := range grid32.P {
		grid64.P[i] = r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
	}
	var (
		dst32 [mcubes32.MaxCubeTetTriangles]ms3.Triangle
		dst64 [mcubes.MaxCubeTetTriangles]mcubes.Triangle3
	)
	opt := cmpopts.EquateApprox(0, 1e-5)
	for index := 0; index < 256; index++ {
		for i := range grid32.Val {
			// Keep values away from the isolevel so both precisions classify equally.
			v := 0.1 + 0.9*rng.Float32()
			if index&(1<<i) != 0 {
				v = -v
			}
			grid32.Val[i] = v
			grid64.Val[i] = float64(v)
		}
		if got := mcubes32.CubeIndex(grid32, 0); int(got) != index {
			t.Fatalf("CubeIndex: got %d, want %d", got, index)
		}
		for name, pair := range map[string]struct {
			f32 func(mcubes32.GridCell, float32, []ms3.Triangle) int
			f64 func(mcubes.GridCell, float64, []mcubes.Triangle3) int
		}{
			"cubes":      {f32: mcubes32.Polygonise, f64: mcubes.Polygonise},
			"tetrahedra": {f32: mcubes32.PolygoniseTets, f64: mcubes.PolygoniseTets},
		} {
			n32 := pair.f32(grid32, 0, dst32[:])
			n64 := pair.f64(grid64, 0, dst64[:])
			if n32 != n64 {
				t.Fatalf("%s case %d: float32 wrote %d triangles, float64 wrote %d", name, index, n32, n64)
			}
			got := make([][3][3]float64, n32)
			want := make([][3][3]float64, n64)
			for i := 0; i < n32; i++ {
				for j := 0; j < 3; j++ {
					v32, v64 := dst32[i][j], dst64[i].V[j]
					got[i][j] = [3]float64{float64(v32.X), float64(v32.Y), float64(v32.Z)}
					want[i][j] = [3]float64{v64.X, v64.Y, v64.Z}
				}
			}
			if diff := cmp.Diff(want, got, opt); diff != "" {
				t.Fatalf("%s case %d mismatch (-float64 +float32):\n%s", name, index, diff)
			}
		}
	}
}

func TestPolygonizeTet(t *testing.T) {
	tet := mcubes32.Tetrahedron{
		P:   [4]ms3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}},
		Val: [4]float32{-1, -1, 1, 1},
	}
	var dst [mcubes32.MaxTetTriangles]ms3.Triangle
	if n := mcubes32.PolygonizeTet(tet, 0, dst[:]); n != 2 {
		t.Errorf("got %d triangles, want 2", n)
	}
	if idx := mcubes32.TetIndex(tet, 0); idx != 3 {
		t.Errorf("got case %d, want 3", idx)
	}
	tet.Val = [4]float32{1, 1, 1, 1}
	if n := mcubes32.PolygonizeTet(tet, 0, dst[:]); n != 0 {
		t.Errorf("got %d triangles, want 0", n)
	}
}

func TestUniformLeavesBufferUntouched(t *testing.T) {
	sentinel := ms3.Triangle{{X: 42}, {Y: 42}, {Z: 42}}
	var dst [mcubes32.MaxCubeTetTriangles]ms3.Triangle
	reset := func() {
		for i := range dst {
			dst[i] = sentinel
		}
	}
	check := func(name string, n int) {
		t.Helper()
		if n != 0 {
			t.Errorf("%s: got %d triangles, want 0", name, n)
		}
		for i := range dst {
			if dst[i] != sentinel {
				t.Fatalf("%s: triangle buffer written at %d", name, i)
			}
		}
	}
	grid := unitCell()
	tet := grid.Tetrahedra()[0]
	for _, test := range []struct {
		val, iso float32
	}{
		{val: 0, iso: 1},
		{val: 1, iso: 0.5},
		{val: -3, iso: 0},
		// Corners equal to the isolevel count as above it.
		{val: 2, iso: 2},
	} {
		for i := range grid.Val {
			grid.Val[i] = test.val
		}
		for i := range tet.Val {
			tet.Val[i] = test.val
		}
		reset()
		check("Polygonise", mcubes32.Polygonise(grid, test.iso, dst[:]))
		check("PolygonizeTet", mcubes32.PolygonizeTet(tet, test.iso, dst[:]))
		check("PolygoniseTets", mcubes32.PolygoniseTets(grid, test.iso, dst[:]))
	}
}

func TestShortBufferPanics(t *testing.T) {
	grid := unitCell()
	for name, fn := range map[string]func(){
		"Polygonise":     func() { mcubes32.Polygonise(grid, 1, make([]ms3.Triangle, mcubes32.MaxCubeTriangles-1)) },
		"PolygonizeTet":  func() { mcubes32.PolygonizeTet(mcubes32.Tetrahedron{}, 1, make([]ms3.Triangle, mcubes32.MaxTetTriangles-1)) },
		"PolygoniseTets": func() { mcubes32.PolygoniseTets(grid, 1, make([]ms3.Triangle, mcubes32.MaxCubeTetTriangles-1)) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic on short buffer", name)
				}
			}()
			fn()
		}()
	}
}

func BenchmarkPolygonise(b *testing.B) {
	grid := unitCell()
	grid.Val = [8]float32{-1, 0.5, -0.3, 2, 1, -2, 0.7, -0.1}
	var dst [mcubes32.MaxCubeTriangles]ms3.Triangle
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		mcubes32.Polygonise(grid, 0, dst[:])
	}
}
