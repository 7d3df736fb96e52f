package mctable

import "testing"

func TestEdgeTableMatchesTriangleTable(t *testing.T) {
	for index, tris := range TriangleTable {
		var mask uint16
		for _, e := range tris {
			if e == -1 {
				break
			}
			mask |= 1 << e
		}
		if mask != EdgeTable[index] {
			t.Errorf("case %d: triangle table uses edges %#03x, edge table has %#03x", index, mask, EdgeTable[index])
		}
	}
}

func TestEdgeTableCrossings(t *testing.T) {
	for index, mask := range EdgeTable {
		for e, ends := range CubeEdges {
			crossed := (index>>ends[0])&1 != (index>>ends[1])&1
			if crossed != (mask&(1<<e) != 0) {
				t.Errorf("case %d edge %d: crossed=%v but edge table disagrees", index, e, crossed)
			}
		}
	}
}

func TestTriangleTableTermination(t *testing.T) {
	for index, tris := range TriangleTable {
		n := 0
		for n < len(tris) && tris[n] != -1 {
			n++
		}
		if n%3 != 0 {
			t.Errorf("case %d: %d edge indices is not a multiple of 3", index, n)
		}
		if n/3 > MaxCubeTriangles {
			t.Errorf("case %d: %d triangles exceeds maximum", index, n/3)
		}
		for _, e := range tris[n:] {
			if e != -1 {
				t.Errorf("case %d: garbage after terminator", index)
			}
		}
	}
	if TriangleTable[0] != TriangleTable[255] {
		t.Error("empty cases should match")
	}
}

func TestTetTriangleTable(t *testing.T) {
	for index, tris := range TetTriangleTable {
		if tris != TetTriangleTable[15-index] {
			t.Errorf("case %d should share triangulation with complement %d", index, 15-index)
		}
		n := 0
		for tris[n] != -1 {
			e := tris[n]
			ends := TetEdges[e]
			if (index>>ends[0])&1 == (index>>ends[1])&1 {
				t.Errorf("case %d: edge %d is not crossed", index, e)
			}
			n++
		}
		if n%3 != 0 || n/3 > MaxTetTriangles {
			t.Errorf("case %d: bad triangle entry count %d", index, n)
		}
	}
}

func TestTetQuadWinding(t *testing.T) {
	for index, tris := range TetTriangleTable {
		if tris[3] == -1 {
			continue
		}
		a := [3]int8{tris[0], tris[1], tris[2]}
		b := [3]int8{tris[3], tris[4], tris[5]}
		shared := 0
		for i := range a {
			for j := range b {
				// Edge a[i]->a[i+1] must appear as b[j+1]->b[j].
				if a[i] == b[(j+1)%3] && a[(i+1)%3] == b[j] {
					shared++
				}
				if a[i] == b[j] && a[(i+1)%3] == b[(j+1)%3] {
					t.Errorf("case %d: both triangles traverse %d->%d", index, a[i], a[(i+1)%3])
				}
			}
		}
		if shared != 1 {
			t.Errorf("case %d: triangles %v and %v share %d oppositely wound edges, want 1", index, a, b, shared)
		}
	}
}

func TestCubeTetrahedraCorners(t *testing.T) {
	var seen [8]bool
	for i, tet := range CubeTetrahedra {
		var used [8]bool
		for _, c := range tet {
			if c > 7 {
				t.Fatalf("tetrahedron %d: invalid corner %d", i, c)
			}
			if used[c] {
				t.Errorf("tetrahedron %d: repeated corner %d", i, c)
			}
			used[c] = true
			seen[c] = true
		}
	}
	for c, ok := range seen {
		if !ok {
			t.Errorf("corner %d unused", c)
		}
	}
}
