package tilemap

import "strconv"

// Coord addresses a cell by zero-based row and column.
type Coord struct {
	Row, Col int
}

// String renders a Coord as "(row,col)" for error messages and logs.
func (c Coord) String() string {
	return "(" + strconv.Itoa(c.Row) + "," + strconv.Itoa(c.Col) + ")"
}

// CellKind classifies a single map cell.
type CellKind uint8

const (
	// KindObstacle cells are impassable and never decided by the solver.
	KindObstacle CellKind = iota
	// KindOpen cells are plain ground, eligible for any assignment.
	KindOpen
	// KindRoot is the origin cell; exactly one per map.
	KindRoot
	// KindCherry is a reward bonus cell; never a barrier.
	KindCherry
	// KindToxin is a penalty bonus cell.
	KindToxin
	// KindPortal cells carry a digit id; equal ids are mutually linked.
	KindPortal
)

// String returns the kind name used in errors and logs.
func (k CellKind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindOpen:
		return "open"
	case KindRoot:
		return "root"
	case KindCherry:
		return "cherry"
	case KindToxin:
		return "toxin"
	case KindPortal:
		return "portal"
	default:
		return "unknown"
	}
}

// Grid is an immutable rectangular tile map. Construct one with Parse,
// ParseString or ParseFile; the zero value is not usable.
type Grid struct {
	width, height int
	kinds         [][]CellKind
	root          Coord
	portals       map[int][]Coord
	portalIDs     map[Coord]int
	cherries      []Coord
	toxins        []Coord
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Root returns the coordinate of the single root cell.
func (g *Grid) Root() Coord { return g.root }

// KindAt returns the kind of the cell at c. Out-of-bounds coordinates
// report KindObstacle, so callers can treat the map edge as impassable.
func (g *Grid) KindAt(c Coord) CellKind {
	if !g.InBounds(c) {
		return KindObstacle
	}
	return g.kinds[c.Row][c.Col]
}

// InBounds reports whether c lies within the map rectangle.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

// OnBoundary reports whether c lies on the outermost row or column.
func (g *Grid) OnBoundary(c Coord) bool {
	return c.Row == 0 || c.Row == g.height-1 || c.Col == 0 || c.Col == g.width-1
}

// Neighbors4 returns the in-bounds orthogonal neighbors of c in a fixed
// order: up, down, left, right. Deterministic neighbor order keeps model
// generation reproducible.
func (g *Grid) Neighbors4(c Coord) []Coord {
	deltas := [4]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	out := make([]Coord, 0, 4)
	for _, d := range deltas {
		n := Coord{c.Row + d.Row, c.Col + d.Col}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// PortalID returns the portal-group id of c and whether c is a portal cell.
func (g *Grid) PortalID(c Coord) (int, bool) {
	id, ok := g.portalIDs[c]
	return id, ok
}

// PortalGroups returns a copy of the portal-group map: digit id to member
// coordinates in scan order.
func (g *Grid) PortalGroups() map[int][]Coord {
	out := make(map[int][]Coord, len(g.portals))
	for id, members := range g.portals {
		cp := make([]Coord, len(members))
		copy(cp, members)
		out[id] = cp
	}
	return out
}

// Cherries returns a copy of all cherry coordinates in scan order.
func (g *Grid) Cherries() []Coord {
	out := make([]Coord, len(g.cherries))
	copy(out, g.cherries)
	return out
}

// Toxins returns a copy of all toxin coordinates in scan order.
func (g *Grid) Toxins() []Coord {
	out := make([]Coord, len(g.toxins))
	copy(out, g.toxins)
	return out
}

// SymbolAt returns the text-format rune for the cell at c.
func (g *Grid) SymbolAt(c Coord) rune {
	switch g.KindAt(c) {
	case KindObstacle:
		return '~'
	case KindOpen:
		return '.'
	case KindRoot:
		return 'H'
	case KindCherry:
		return 'C'
	case KindToxin:
		return 'T'
	case KindPortal:
		return rune('0' + g.portalIDs[c])
	default:
		return '?'
	}
}

// String renders the map back into its text form, one line per row.
// Parse(g.String()) reproduces an equivalent Grid.
func (g *Grid) String() string {
	buf := make([]rune, 0, (g.width+1)*g.height)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			buf = append(buf, g.SymbolAt(Coord{r, c}))
		}
		if r < g.height-1 {
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}
