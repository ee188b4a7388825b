package meshing

import (
	"fmt"

	"voxmesh/internal/world"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Face is the normal id baked into every vertex.
type Face uint8

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ

	NumFaces = 6
)

// MaxAO is the largest occlusion count a vertex can carry.
const MaxAO = 4

// axisPerm maps (w, u, v) scan axes to x/y/z indices per face axis.
// u × v always points along +w.
var axisPerm = [3][3]int{
	{0, 1, 2}, // X: w=x, u=y, v=z
	{1, 2, 0}, // Y: w=y, u=z, v=x
	{2, 0, 1}, // Z: w=z, u=x, v=y
}

// faceNeighbors is the neighbour that shares each face of a volume.
var faceNeighbors = [NumFaces]world.Direction{
	FacePosX: world.DirEast,
	FaceNegX: world.DirWest,
	FacePosY: world.DirUp,
	FaceNegY: world.DirDown,
	FacePosZ: world.DirNorth,
	FaceNegZ: world.DirSouth,
}

var faceNames = [NumFaces]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

// Axis returns 0, 1 or 2 for x, y or z.
func (f Face) Axis() int {
	return int(f) / 2
}

// Sign returns +1 for a forward face and -1 for a backward face.
func (f Face) Sign() int {
	if f%2 == 0 {
		return 1
	}
	return -1
}

// Normal returns the outward unit normal.
func (f Face) Normal() mgl32.Vec3 {
	var n mgl32.Vec3
	n[f.Axis()] = float32(f.Sign())
	return n
}

// Neighbor returns the neighbour direction across this face of a volume.
func (f Face) Neighbor() world.Direction {
	return faceNeighbors[f]
}

func (f Face) String() string {
	if f >= NumFaces {
		return "invalid"
	}
	return faceNames[f]
}

// sampler answers solidity queries for cells in and around one volume.
type sampler struct {
	owner *world.Volume
	ns    *world.NeighborSet
	side  int
}

func newSampler(owner *world.Volume, ns *world.NeighborSet) sampler {
	checkNeighbors(owner, ns)
	return sampler{owner: owner, ns: ns, side: owner.Side()}
}

// checkNeighbors asserts that every present neighbour has the owner's side length.
func checkNeighbors(owner *world.Volume, ns *world.NeighborSet) {
	side := owner.Side()
	ns.Each(func(d world.Direction, n *world.Volume) {
		if n.Side() != side {
			panic(fmt.Errorf("%w: %s neighbour has side %d, volume has %d", world.ErrDimensionMismatch, d, n.Side(), side))
		}
	})
}

func (s *sampler) overflow(c int) int {
	switch {
	case c < 0:
		return -1
	case c >= s.side:
		return 1
	default:
		return 0
	}
}

// solid reports whether the local cell c is filled. Cells outside the owner
// are read from the matching face, edge or corner neighbour; a missing
// neighbour is open air.
func (s *sampler) solid(c [3]int) bool {
	if s.owner.InBounds(c[0], c[1], c[2]) {
		return s.owner.Solid(c[0], c[1], c[2])
	}
	ox, oy, oz := s.overflow(c[0]), s.overflow(c[1]), s.overflow(c[2])
	d, _ := world.DirectionFromOffset(ox, oy, oz)
	n, ok := s.ns.Get(d)
	if !ok {
		return false
	}
	return n.Solid(c[0]-ox*s.side, c[1]-oy*s.side, c[2]-oz*s.side)
}

// corner counts the solid cells touching lattice point p on the outward side of face f.
func (s *sampler) corner(p [3]int, f Face) uint8 {
	perm := axisPerm[f.Axis()]
	a, u, v := perm[0], perm[1], perm[2]

	var c [3]int
	c[a] = p[a]
	if f.Sign() < 0 {
		c[a] = p[a] - 1
	}

	var n uint8
	for du := -1; du <= 0; du++ {
		for dv := -1; dv <= 0; dv++ {
			c[u] = p[u] + du
			c[v] = p[v] + dv
			if s.solid(c) {
				n++
			}
		}
	}
	return n
}

// SampleAO returns the occlusion count (0-4) at a world-space lattice point on
// a face pointing in direction f. The point is snapped to the nearest lattice
// vertex of owner and must lie within [0, side] on every axis.
func SampleAO(point mgl32.Vec3, f Face, ns world.NeighborSet, owner *world.Volume) uint8 {
	s := newSampler(owner, &ns)
	local := point.Sub(owner.Origin)

	var p [3]int
	for i := range p {
		p[i] = int(math32.Floor(local[i] + 0.5))
		if p[i] < 0 || p[i] > s.side {
			panic(fmt.Errorf("%w: sample point %v outside volume at %v", world.ErrOutOfRange, point, owner.Origin))
		}
	}
	return s.corner(p, f)
}
