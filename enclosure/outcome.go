package enclosure

import (
	"github.com/gridpen/enclose/backend"
	"github.com/gridpen/enclose/graph"
	"github.com/gridpen/enclose/model"
	"github.com/gridpen/enclose/tilemap"
)

// Assignment is the decided category of one candidate cell.
type Assignment uint8

const (
	// Excluded cells are outside the enclosure and carry no barrier.
	Excluded Assignment = iota
	// Enclosed cells belong to the root-connected enclosure.
	Enclosed
	// Barrier cells seal the enclosure.
	Barrier
)

// String returns the assignment name.
func (a Assignment) String() string {
	switch a {
	case Enclosed:
		return "enclosed"
	case Barrier:
		return "barrier"
	default:
		return "excluded"
	}
}

// Outcome is the interpreted result of one solve call.
type Outcome struct {
	// Status is the backend's termination state.
	Status backend.Status
	// Objective is the achieved score; meaningful only when HasObjective
	// is true (Status Optimal or Feasible).
	Objective    float64
	HasObjective bool
	// Cells assigns every candidate cell; obstacle cells are absent.
	Cells map[tilemap.Coord]Assignment
	// BarriersUsed and EnclosedCount are counted from Cells.
	BarriersUsed  int
	EnclosedCount int
}

// AssignmentAt returns the assignment of c; obstacle (non-candidate)
// cells report Excluded.
func (o *Outcome) AssignmentAt(c tilemap.Coord) Assignment {
	return o.Cells[c]
}

// interpret discretizes raw backend values into an Outcome. Values come
// from continuous relaxations and are never assumed to be exactly 0 or
// 1; a fixed 0.5 threshold absorbs rounding artifacts.
func interpret(g *graph.Graph, vm *model.VarMap, res backend.Result) *Outcome {
	out := &Outcome{
		Status: res.Status,
		Cells:  make(map[tilemap.Coord]Assignment, g.Len()),
	}
	if res.Status == backend.Optimal || res.Status == backend.Feasible {
		out.Objective = res.Objective
		out.HasObjective = res.HasObjective
	}
	for n := 0; n < g.Len(); n++ {
		at := g.Coord(graph.NodeID(n))
		var a Assignment
		switch {
		case res.Values == nil:
			a = Excluded
		case res.Values[vm.Barrier[n]] >= 0.5:
			a = Barrier
		case res.Values[vm.Enclosed[n]] >= 0.5:
			a = Enclosed
		}
		out.Cells[at] = a
		switch a {
		case Barrier:
			out.BarriersUsed++
		case Enclosed:
			out.EnclosedCount++
		}
	}
	return out
}
