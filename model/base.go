package model

import (
	"fmt"

	"github.com/gridpen/enclose/graph"
	"github.com/gridpen/enclose/tilemap"
)

// nodeVars holds the shared two-variable skeleton used by the flow and
// order encodings.
type nodeVars struct {
	barrier  []int
	enclosed []int
}

// buildNodeVars emits barrier/enclosed binaries for every candidate node
// together with the structural constraints common to all encodings:
// mutual exclusion, forbidden barriers (root, portal, cherry), boundary
// exclusion, the pinned root, and the barrier budget.
func buildNodeVars(m *Model, g *graph.Graph, budget int) nodeVars {
	grid := g.Grid()
	nv := nodeVars{
		barrier:  make([]int, g.Len()),
		enclosed: make([]int, g.Len()),
	}
	budgetTerms := make([]LinTerm, 0, g.Len())
	for n := 0; n < g.Len(); n++ {
		at := g.Coord(graph.NodeID(n))
		b := m.AddBool(fmt.Sprintf("barrier_%d_%d", at.Row, at.Col))
		x := m.AddBool(fmt.Sprintf("enclosed_%d_%d", at.Row, at.Col))
		nv.barrier[n], nv.enclosed[n] = b, x

		m.AddLe(fmt.Sprintf("excl_%d_%d", at.Row, at.Col),
			[]LinTerm{{b, 1}, {x, 1}}, 1)

		switch grid.KindAt(at) {
		case tilemap.KindRoot, tilemap.KindPortal, tilemap.KindCherry:
			m.Fix(b, 0)
		}
		if grid.OnBoundary(at) && at != grid.Root() {
			m.Fix(x, 0)
		}
		budgetTerms = append(budgetTerms, LinTerm{b, 1})
	}
	root := int(g.Root())
	m.Fix(nv.enclosed[root], 1)
	m.AddLe("budget", budgetTerms, float64(budget))
	return nv
}

// addSeparation emits, per undirected edge, the pair of inequalities
// forbidding an enclosed/non-enclosed boundary without a barrier on
// either endpoint:
//
//	enclosed[u] − enclosed[v] ≤ barrier[u] + barrier[v]   (and symmetric)
//
// Separation alone does not rule out detached enclosed islands; the
// calling encoding must add its own connectivity constraints.
func addSeparation(m *Model, g *graph.Graph, nv nodeVars) {
	for i, e := range g.UndirectedEdges() {
		xu, xv := nv.enclosed[e.U], nv.enclosed[e.V]
		bu, bv := nv.barrier[e.U], nv.barrier[e.V]
		m.AddLe(fmt.Sprintf("sep_%d_a", i),
			[]LinTerm{{xu, 1}, {xv, -1}, {bu, -1}, {bv, -1}}, 0)
		m.AddLe(fmt.Sprintf("sep_%d_b", i),
			[]LinTerm{{xv, 1}, {xu, -1}, {bu, -1}, {bv, -1}}, 0)
	}
}

// addObjective sets the maximization objective over enclosed variables:
// base weight per cell plus bonus-kind adjustments.
func addObjective(m *Model, g *graph.Graph, enclosed []int, w Weights) {
	grid := g.Grid()
	terms := make([]LinTerm, 0, g.Len())
	for n := 0; n < g.Len(); n++ {
		coef := w.Cell
		switch grid.KindAt(g.Coord(graph.NodeID(n))) {
		case tilemap.KindCherry:
			coef += w.Cherry
		case tilemap.KindToxin:
			coef += w.Toxin
		}
		terms = append(terms, LinTerm{enclosed[n], coef})
	}
	m.Objective = terms
	m.Maximize = true
}
