package world

import "testing"

func TestDirectionTableIsExhaustive(t *testing.T) {
	seen := make(map[[3]int]Direction)
	counts := map[NeighborKind]int{}
	for d := range Direction(NumDirections) {
		dx, dy, dz := d.Offset()
		o := [3]int{dx, dy, dz}
		if o == [3]int{} {
			t.Fatalf("%s has zero offset", d)
		}
		if prev, dup := seen[o]; dup {
			t.Fatalf("%s and %s share offset %v", prev, d, o)
		}
		seen[o] = d

		nonZero := 0
		for _, c := range o {
			if c != 0 {
				nonZero++
			}
		}
		if want := NeighborKind(nonZero - 1); d.Kind() != want {
			t.Errorf("%s: kind %d, want %d", d, d.Kind(), want)
		}
		counts[d.Kind()]++

		back, ok := DirectionFromOffset(dx, dy, dz)
		if !ok || back != d {
			t.Errorf("DirectionFromOffset(%v) = %s, %v; want %s", o, back, ok, d)
		}
		if opp := d.Opposite(); opp.Opposite() != d {
			t.Errorf("%s: opposite of opposite is %s", d, opp.Opposite())
		}
	}
	if counts[FaceNeighbor] != 6 || counts[EdgeNeighbor] != 12 || counts[CornerNeighbor] != 8 {
		t.Fatalf("kind counts: %v", counts)
	}
}

func TestDirectionFromOffsetRejects(t *testing.T) {
	for _, o := range [][3]int{{0, 0, 0}, {2, 0, 0}, {0, -2, 1}} {
		if d, ok := DirectionFromOffset(o[0], o[1], o[2]); ok {
			t.Errorf("DirectionFromOffset(%v) = %s, want none", o, d)
		}
	}
}

func TestNamedFaces(t *testing.T) {
	tests := []struct {
		d          Direction
		dx, dy, dz int
	}{
		{DirWest, -1, 0, 0},
		{DirEast, 1, 0, 0},
		{DirDown, 0, -1, 0},
		{DirUp, 0, 1, 0},
		{DirSouth, 0, 0, -1},
		{DirNorth, 0, 0, 1},
		{DirUpNorthEast, 1, 1, 1},
		{DirDownSouthWest, -1, -1, -1},
		{DirSouthEast, 1, 0, -1},
	}
	for _, tt := range tests {
		dx, dy, dz := tt.d.Offset()
		if dx != tt.dx || dy != tt.dy || dz != tt.dz {
			t.Errorf("%s offset: got (%d,%d,%d), want (%d,%d,%d)", tt.d, dx, dy, dz, tt.dx, tt.dy, tt.dz)
		}
	}
}

func TestNeighborsInterior(t *testing.T) {
	g := NewGrid(12, 12, 12, 4)
	ns := g.Neighbors(1, 1, 1)
	if ns.Count() != 26 {
		t.Fatalf("interior volume: got %d neighbours, want 26", ns.Count())
	}
	for d := range Direction(NumDirections) {
		n, ok := ns.Get(d)
		if !ok {
			t.Fatalf("%s missing", d)
		}
		dx, dy, dz := d.Offset()
		if want := g.Volume(1+dx, 1+dy, 1+dz); n != want {
			t.Fatalf("%s: wrong volume %d, want %d", d, n.Index, want.Index)
		}
	}
}

func TestNeighborsAtGridCorner(t *testing.T) {
	g := NewGrid(8, 8, 8, 4)
	ns := g.Neighbors(0, 0, 0)
	// 2x2x2 grid: a corner sees 3 faces, 3 edges, 1 corner
	if ns.Count() != 7 {
		t.Fatalf("corner volume: got %d neighbours, want 7", ns.Count())
	}
	for _, d := range []Direction{DirWest, DirDown, DirSouth, DirDownSouthWest, DirUpWest} {
		if ns.Has(d) {
			t.Errorf("%s should be absent outside the grid", d)
		}
	}
	if n, ok := ns.Get(DirUpNorthEast); !ok || n != g.Volume(1, 1, 1) {
		t.Fatal("UpNorthEast should be volume (1,1,1)")
	}
}

func TestNeighborsSingleVolumeGrid(t *testing.T) {
	g := NewGrid(4, 4, 4, 4)
	ns := g.NeighborsOf(g.At(0))
	if ns.Count() != 0 {
		t.Fatalf("lone volume: got %d neighbours, want 0", ns.Count())
	}
}
