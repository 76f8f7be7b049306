package graph

import (
	"sort"

	"github.com/gridpen/enclose/tilemap"
)

// NodeID is a dense candidate-node index, assigned in row-major scan order.
type NodeID int

// Edge is an undirected candidate-graph edge with U < V.
type Edge struct {
	U, V NodeID
}

// Arc is a directed candidate-graph arc.
type Arc struct {
	From, To NodeID
}

// Graph is the candidate graph of a tile map. It is immutable once built.
type Graph struct {
	grid  *tilemap.Grid
	nodes []tilemap.Coord
	ids   map[tilemap.Coord]NodeID
	adj   [][]NodeID
	root  NodeID
}

// Build constructs the candidate graph of grid: one node per non-obstacle
// cell and adjacency from 4-neighborhood plus portal cliques. Neighbor
// lists keep insertion order (grid scan, then portal scan) and never
// contain self-edges. A portal member that is also grid-adjacent to
// another member appears once; duplicates are dropped at insertion.
func Build(grid *tilemap.Grid) *Graph {
	g := &Graph{
		grid: grid,
		ids:  make(map[tilemap.Coord]NodeID),
	}
	for r := 0; r < grid.Height(); r++ {
		for c := 0; c < grid.Width(); c++ {
			at := tilemap.Coord{Row: r, Col: c}
			if grid.KindAt(at) == tilemap.KindObstacle {
				continue
			}
			g.ids[at] = NodeID(len(g.nodes))
			g.nodes = append(g.nodes, at)
		}
	}
	g.root = g.ids[grid.Root()]

	g.adj = make([][]NodeID, len(g.nodes))
	seen := make(map[Arc]bool)
	link := func(u, v NodeID) {
		if u == v {
			return
		}
		if a := (Arc{u, v}); !seen[a] {
			seen[a] = true
			g.adj[u] = append(g.adj[u], v)
		}
	}
	for id, at := range g.nodes {
		for _, n := range grid.Neighbors4(at) {
			if v, ok := g.ids[n]; ok {
				link(NodeID(id), v)
			}
		}
	}
	// Portal cliques: iterate group ids in ascending order so edge order
	// does not depend on map iteration.
	groups := grid.PortalGroups()
	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, pid := range ids {
		members := groups[pid]
		for i, src := range members {
			su, ok := g.ids[src]
			if !ok {
				continue
			}
			for _, dst := range members[i+1:] {
				if dv, ok := g.ids[dst]; ok {
					link(su, dv)
					link(dv, su)
				}
			}
		}
	}
	return g
}

// Grid returns the tile map this graph was built from.
func (g *Graph) Grid() *tilemap.Grid { return g.grid }

// Len returns the number of candidate nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Root returns the node id of the root cell.
func (g *Graph) Root() NodeID { return g.root }

// Coord returns the coordinate of node id.
func (g *Graph) Coord(id NodeID) tilemap.Coord { return g.nodes[id] }

// ID returns the node id of the candidate at c, if any.
func (g *Graph) ID(c tilemap.Coord) (NodeID, bool) {
	id, ok := g.ids[c]
	return id, ok
}

// Neighbors returns the neighbor list of id in insertion order. The
// returned slice is shared; callers must not modify it.
func (g *Graph) Neighbors(id NodeID) []NodeID { return g.adj[id] }

// UndirectedEdges returns every undirected edge exactly once (U < V),
// in first-seen adjacency order.
func (g *Graph) UndirectedEdges() []Edge {
	var out []Edge
	emitted := make(map[Edge]bool)
	for u := range g.adj {
		for _, v := range g.adj[u] {
			e := Edge{NodeID(u), v}
			if e.U > e.V {
				e.U, e.V = e.V, e.U
			}
			if !emitted[e] {
				emitted[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// DirectedArcs returns both orientations of every undirected edge, in
// adjacency order. Arcs carry the flow variables of the flow encoding.
func (g *Graph) DirectedArcs() []Arc {
	var out []Arc
	for u := range g.adj {
		for _, v := range g.adj[u] {
			out = append(out, Arc{NodeID(u), v})
		}
	}
	return out
}

// InArcs returns, for each node, the indexes into DirectedArcs of its
// incoming arcs; OutArcs the outgoing ones. Both follow DirectedArcs
// order, so encodings can address flow variables without a second map.
func (g *Graph) InArcs() [][]int {
	in := make([][]int, len(g.nodes))
	for i, a := range g.DirectedArcs() {
		in[a.To] = append(in[a.To], i)
	}
	return in
}

// OutArcs returns the outgoing-arc index lists; see InArcs.
func (g *Graph) OutArcs() [][]int {
	out := make([][]int, len(g.nodes))
	for i, a := range g.DirectedArcs() {
		out[a.From] = append(out[a.From], i)
	}
	return out
}
