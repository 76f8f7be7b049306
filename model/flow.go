package model

import (
	"fmt"

	"github.com/gridpen/enclose/graph"
)

// FlowEncoding is the primary formulation. Connectivity is enforced by a
// single-commodity flow: the root emits one synthetic unit per enclosed
// node, every other enclosed node consumes exactly one, and arc
// capacities are switched off (big-M) unless the arc's source is an
// enclosed non-barrier node. A feasible flow therefore certifies that
// every enclosed node is reachable from the root through enclosed,
// non-barrier cells.
type FlowEncoding struct{}

// Name implements Encoding.
func (FlowEncoding) Name() string { return "flow" }

// Build implements Encoding.
//
// Variables: 2 binaries per node plus one continuous flow per directed
// arc in [0, M], M = |nodes|+1. Constraints: the shared skeleton,
// separation, per-arc capacity (flow ≤ M·enclosed[src],
// flow ≤ M·(1−barrier[src])) and per-node conservation.
func (FlowEncoding) Build(g *graph.Graph, budget int, w Weights) (*Model, *VarMap) {
	m := New()
	nv := buildNodeVars(m, g, budget)
	addSeparation(m, g, nv)

	arcs := g.DirectedArcs()
	bigM := float64(g.Len() + 1)
	flow := make([]int, len(arcs))
	for i, a := range arcs {
		from, to := g.Coord(a.From), g.Coord(a.To)
		f := m.AddVar(fmt.Sprintf("flow_%d_%d__%d_%d", from.Row, from.Col, to.Row, to.Col),
			0, bigM, false)
		flow[i] = f
		// Flow can only leave an enclosed, non-barrier source.
		m.AddLe(fmt.Sprintf("cap_enc_%d", i),
			[]LinTerm{{f, 1}, {nv.enclosed[a.From], -bigM}}, 0)
		m.AddLe(fmt.Sprintf("cap_bar_%d", i),
			[]LinTerm{{f, 1}, {nv.barrier[a.From], bigM}}, bigM)
	}

	in, out := g.InArcs(), g.OutArcs()
	root := int(g.Root())
	for n := 0; n < g.Len(); n++ {
		at := g.Coord(graph.NodeID(n))
		if n == root {
			// outflow − inflow = Σ enclosed[v≠root]: one unit sourced per
			// enclosed node.
			terms := make([]LinTerm, 0, len(out[n])+len(in[n])+g.Len())
			for _, ai := range out[n] {
				terms = append(terms, LinTerm{flow[ai], 1})
			}
			for _, ai := range in[n] {
				terms = append(terms, LinTerm{flow[ai], -1})
			}
			for v := 0; v < g.Len(); v++ {
				if v != root {
					terms = append(terms, LinTerm{nv.enclosed[v], -1})
				}
			}
			m.AddEq(fmt.Sprintf("cons_root_%d_%d", at.Row, at.Col), terms, 0)
			continue
		}
		// inflow − outflow = enclosed[n]: each enclosed node consumes one unit.
		terms := make([]LinTerm, 0, len(in[n])+len(out[n])+1)
		for _, ai := range in[n] {
			terms = append(terms, LinTerm{flow[ai], 1})
		}
		for _, ai := range out[n] {
			terms = append(terms, LinTerm{flow[ai], -1})
		}
		terms = append(terms, LinTerm{nv.enclosed[n], -1})
		m.AddEq(fmt.Sprintf("cons_%d_%d", at.Row, at.Col), terms, 0)
	}

	addObjective(m, g, nv.enclosed, w)
	return m, &VarMap{Barrier: nv.barrier, Enclosed: nv.enclosed}
}
