package world

// Direction identifies one of the 26 volumes surrounding a volume in a grid.
type Direction uint8

const (
	// Faces
	DirWest  Direction = iota // -X
	DirEast                   // +X
	DirDown                   // -Y
	DirUp                     // +Y
	DirSouth                  // -Z
	DirNorth                  // +Z

	// Edges
	DirDownWest
	DirDownEast
	DirUpWest
	DirUpEast
	DirDownSouth
	DirDownNorth
	DirUpSouth
	DirUpNorth
	DirSouthWest
	DirSouthEast
	DirNorthWest
	DirNorthEast

	// Corners
	DirDownSouthWest
	DirDownSouthEast
	DirDownNorthWest
	DirDownNorthEast
	DirUpSouthWest
	DirUpSouthEast
	DirUpNorthWest
	DirUpNorthEast

	NumDirections = 26
)

// NeighborKind classifies a direction by how much of a boundary it shares.
type NeighborKind uint8

const (
	FaceNeighbor NeighborKind = iota
	EdgeNeighbor
	CornerNeighbor
)

var directionOffsets = [NumDirections][3]int{
	DirWest:  {-1, 0, 0},
	DirEast:  {1, 0, 0},
	DirDown:  {0, -1, 0},
	DirUp:    {0, 1, 0},
	DirSouth: {0, 0, -1},
	DirNorth: {0, 0, 1},

	DirDownWest:  {-1, -1, 0},
	DirDownEast:  {1, -1, 0},
	DirUpWest:    {-1, 1, 0},
	DirUpEast:    {1, 1, 0},
	DirDownSouth: {0, -1, -1},
	DirDownNorth: {0, -1, 1},
	DirUpSouth:   {0, 1, -1},
	DirUpNorth:   {0, 1, 1},
	DirSouthWest: {-1, 0, -1},
	DirSouthEast: {1, 0, -1},
	DirNorthWest: {-1, 0, 1},
	DirNorthEast: {1, 0, 1},

	DirDownSouthWest: {-1, -1, -1},
	DirDownSouthEast: {1, -1, -1},
	DirDownNorthWest: {-1, -1, 1},
	DirDownNorthEast: {1, -1, 1},
	DirUpSouthWest:   {-1, 1, -1},
	DirUpSouthEast:   {1, 1, -1},
	DirUpNorthWest:   {-1, 1, 1},
	DirUpNorthEast:   {1, 1, 1},
}

var directionNames = [NumDirections]string{
	"West", "East", "Down", "Up", "South", "North",
	"DownWest", "DownEast", "UpWest", "UpEast",
	"DownSouth", "DownNorth", "UpSouth", "UpNorth",
	"SouthWest", "SouthEast", "NorthWest", "NorthEast",
	"DownSouthWest", "DownSouthEast", "DownNorthWest", "DownNorthEast",
	"UpSouthWest", "UpSouthEast", "UpNorthWest", "UpNorthEast",
}

// offsetDirections maps (dx+1, dy+1, dz+1) back to a direction.
// The centre cell holds NumDirections and is never a valid neighbour.
var offsetDirections [3][3][3]Direction

func init() {
	offsetDirections[1][1][1] = NumDirections
	for d, o := range directionOffsets {
		offsetDirections[o[0]+1][o[1]+1][o[2]+1] = Direction(d)
	}
}

// Offset returns the grid offset of the direction.
func (d Direction) Offset() (dx, dy, dz int) {
	o := directionOffsets[d]
	return o[0], o[1], o[2]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	dx, dy, dz := d.Offset()
	o, _ := DirectionFromOffset(-dx, -dy, -dz)
	return o
}

// Kind reports whether the direction is a face, edge or corner neighbour.
func (d Direction) Kind() NeighborKind {
	switch {
	case d < DirDownWest:
		return FaceNeighbor
	case d < DirDownSouthWest:
		return EdgeNeighbor
	default:
		return CornerNeighbor
	}
}

func (d Direction) String() string {
	if d >= NumDirections {
		return "Invalid"
	}
	return directionNames[d]
}

// DirectionFromOffset returns the direction for a grid offset whose components
// are each -1, 0 or 1. The zero offset has no direction.
func DirectionFromOffset(dx, dy, dz int) (Direction, bool) {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 || dz < -1 || dz > 1 {
		return NumDirections, false
	}
	d := offsetDirections[dx+1][dy+1][dz+1]
	return d, d != NumDirections
}

// NeighborSet is a borrowed view of the volumes surrounding one volume.
// Absent neighbours are nil.
type NeighborSet struct {
	volumes [NumDirections]*Volume
}

// Get returns the neighbour in direction d, if present.
func (ns *NeighborSet) Get(d Direction) (*Volume, bool) {
	v := ns.volumes[d]
	return v, v != nil
}

// Has reports whether a neighbour is present in direction d.
func (ns *NeighborSet) Has(d Direction) bool {
	return ns.volumes[d] != nil
}

// Set stores (or clears, with nil) the neighbour in direction d.
func (ns *NeighborSet) Set(d Direction, v *Volume) {
	ns.volumes[d] = v
}

// Count returns the number of present neighbours.
func (ns *NeighborSet) Count() int {
	n := 0
	for _, v := range ns.volumes {
		if v != nil {
			n++
		}
	}
	return n
}

// Each calls fn for every present neighbour in direction order.
func (ns *NeighborSet) Each(fn func(d Direction, v *Volume)) {
	for d, v := range ns.volumes {
		if v != nil {
			fn(Direction(d), v)
		}
	}
}
