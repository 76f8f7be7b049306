// Package glpkmip adapts the GLPK mixed-integer optimizer to the
// backend.Solver capability.
//
// The model maps one-to-one: every model variable becomes a GLPK column
// (continuous or integer kind, double or fixed bounds), every constraint
// a row with sparse coefficients, and the objective the column objective
// vector. Solving uses branch-and-cut (Intopt) with presolve, so no
// separate simplex warm start is required.
//
// The Go binding exposes no MIP time or node limit, so Options limits
// are ignored here; bound the search with the fdprop backend or an
// external watchdog when wall-clock guarantees matter.
package glpkmip

import (
	"math"
	"sort"

	"github.com/lukpank/go-glpk/glpk"

	"github.com/gridpen/enclose/backend"
	"github.com/gridpen/enclose/model"
)

// Backend solves models with GLPK. The zero value is ready to use; one
// Backend may serve concurrent calls, as every call builds its own
// problem object.
type Backend struct{}

// New returns a GLPK-backed solver.
func New() *Backend { return &Backend{} }

// Solve implements backend.Solver.
func (*Backend) Solve(m *model.Model, _ backend.Options) (backend.Result, error) {
	lp := glpk.New()
	defer lp.Delete()
	lp.SetProbName("enclose")
	if m.Maximize {
		lp.SetObjDir(glpk.MAX)
	} else {
		lp.SetObjDir(glpk.MIN)
	}

	lp.AddCols(len(m.Vars))
	for i, v := range m.Vars {
		j := i + 1 // GLPK indices are 1-based
		lp.SetColName(j, v.Name)
		if v.Lo == v.Hi {
			lp.SetColBnds(j, glpk.FX, v.Lo, v.Hi)
		} else {
			lp.SetColBnds(j, glpk.DB, v.Lo, v.Hi)
		}
		if v.Integer {
			lp.SetColKind(j, glpk.IV)
		} else {
			lp.SetColKind(j, glpk.CV)
		}
	}

	obj := make([]float64, len(m.Vars))
	for _, t := range m.Objective {
		obj[t.Var] += t.Coef
	}
	for i, c := range obj {
		if c != 0 {
			lp.SetObjCoef(i+1, c)
		}
	}

	if len(m.Cons) > 0 {
		lp.AddRows(len(m.Cons))
	}
	for i, con := range m.Cons {
		r := i + 1
		lp.SetRowName(r, con.Name)
		switch {
		case math.IsInf(con.Lo, -1) && math.IsInf(con.Hi, 1):
			lp.SetRowBnds(r, glpk.FR, 0, 0)
		case math.IsInf(con.Lo, -1):
			lp.SetRowBnds(r, glpk.UP, 0, con.Hi)
		case math.IsInf(con.Hi, 1):
			lp.SetRowBnds(r, glpk.LO, con.Lo, 0)
		case con.Lo == con.Hi:
			lp.SetRowBnds(r, glpk.FX, con.Lo, con.Hi)
		default:
			lp.SetRowBnds(r, glpk.DB, con.Lo, con.Hi)
		}
		ind, val := sparseRow(con.Terms)
		lp.SetMatRow(r, ind, val)
	}

	iocp := glpk.NewIocp()
	iocp.SetPresolve(true)
	err := lp.Intopt(iocp)

	switch lp.MipStatus() {
	case glpk.OPT:
		return resultWithValues(lp, len(m.Vars), backend.Optimal), nil
	case glpk.FEAS:
		return resultWithValues(lp, len(m.Vars), backend.Feasible), nil
	case glpk.NOFEAS:
		return backend.Result{Status: backend.Infeasible}, nil
	default:
		if err != nil {
			// Presolve proves infeasibility through the error path and
			// leaves the MIP status undefined.
			return backend.Result{Status: backend.Infeasible}, nil
		}
		return backend.Result{Status: backend.Unknown}, nil
	}
}

// sparseRow merges duplicate variable references and emits the 1-based
// sparse row GLPK expects (index 0 of both slices is unused).
func sparseRow(terms []model.LinTerm) ([]int32, []float64) {
	merged := make(map[int]float64, len(terms))
	for _, t := range terms {
		merged[t.Var] += t.Coef
	}
	vars := make([]int, 0, len(merged))
	for v := range merged {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	ind := make([]int32, 1, len(vars)+1)
	val := make([]float64, 1, len(vars)+1)
	for _, v := range vars {
		ind = append(ind, int32(v+1))
		val = append(val, merged[v])
	}
	return ind, val
}

func resultWithValues(lp *glpk.Prob, nvars int, st backend.Status) backend.Result {
	values := make([]float64, nvars)
	for i := range values {
		values[i] = lp.MipColVal(i + 1)
	}
	return backend.Result{
		Status:       st,
		Objective:    lp.MipObjVal(),
		HasObjective: true,
		Values:       values,
	}
}
