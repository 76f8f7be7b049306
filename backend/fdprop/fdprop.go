// Package fdprop adapts the gokando finite-domain constraint engine to
// the backend.Solver capability.
//
// Encoding differences from the integer-programming backend are purely
// syntactic, as required of any backend: gokando domains start at 1, so
// every model variable x ∈ [lo,hi] is shifted to x' = x − lo + 1, and
// each linear constraint becomes a LinearSum equality into a fresh total
// variable whose domain carries the constraint bounds. A unit variable
// pinned to 1 absorbs the constant offset needed to keep every total
// positive. Continuous variables are integerized; the flow encoding's
// conservation system is integral at any vertex solution, so this loses
// no optima.
//
// Optimization runs gokando's branch-and-bound (SolveOptimal). Hitting a
// configured node or time limit returns the incumbent as Feasible, or
// Unknown when none was found, matching the anytime contract.
package fdprop

import (
	"context"
	"errors"
	"math"

	mk "github.com/gitrdm/gokando/pkg/minikanren"

	"github.com/gridpen/enclose/backend"
	"github.com/gridpen/enclose/model"
)

// Backend solves models with gokando's FD engine. Each call builds a
// fresh FD model, so one Backend may serve concurrent calls.
//
// Branch-and-bound over big-M constraints propagates weakly; this
// backend is intended for small instances and for cross-checking the
// MIP backend, not for large maps.
type Backend struct{}

// New returns a constraint-propagation-backed solver.
func New() *Backend { return &Backend{} }

// translation is the FD image of one model.
type translation struct {
	fdm    *mk.Model
	vars   []*mk.FDVariable // per model var
	shift  []int            // fd value − shift[i] = model value
	unit   *mk.FDVariable   // pinned to 1, carries constant offsets
	objVar *mk.FDVariable   // objective total, nil when objective empty
	objOff int              // model objective = fd objective − objOff
	// infeasible is set when a constraint's bounds exclude every
	// achievable sum; the model needs no search to be rejected.
	infeasible bool
	invalid    bool
}

// Solve implements backend.Solver.
func (*Backend) Solve(m *model.Model, opts backend.Options) (backend.Result, error) {
	tr := translate(m)
	if tr.invalid {
		return backend.Result{Status: backend.ModelInvalid}, nil
	}
	if tr.infeasible {
		return backend.Result{Status: backend.Infeasible}, nil
	}

	solver := mk.NewSolver(tr.fdm)
	if tr.objVar == nil {
		// Constant objective: any solution is optimal.
		sols, err := solver.Solve(context.Background(), 1)
		if err != nil || len(sols) == 0 {
			return backend.Result{Status: backend.Infeasible}, nil
		}
		return backend.Result{
			Status:       backend.Optimal,
			HasObjective: true,
			Values:       tr.values(sols[0]),
		}, nil
	}

	var mkOpts []mk.OptimizeOption
	if opts.TimeLimit > 0 {
		mkOpts = append(mkOpts, mk.WithTimeLimit(opts.TimeLimit))
	}
	if opts.NodeLimit > 0 {
		mkOpts = append(mkOpts, mk.WithNodeLimit(opts.NodeLimit))
	}
	sol, objVal, err := solver.SolveOptimalWithOptions(
		context.Background(), tr.objVar, !m.Maximize, mkOpts...)
	switch {
	case err == nil && sol == nil:
		return backend.Result{Status: backend.Infeasible}, nil
	case err == nil:
		return backend.Result{
			Status:       backend.Optimal,
			Objective:    float64(objVal - tr.objOff),
			HasObjective: true,
			Values:       tr.values(sol),
		}, nil
	case errors.Is(err, mk.ErrSearchLimitReached) || errors.Is(err, context.DeadlineExceeded):
		if sol == nil {
			return backend.Result{Status: backend.Unknown}, nil
		}
		return backend.Result{
			Status:       backend.Feasible,
			Objective:    float64(objVal - tr.objOff),
			HasObjective: true,
			Values:       tr.values(sol),
		}, nil
	default:
		return backend.Result{Status: backend.ModelInvalid}, nil
	}
}

// values maps an FD solution (indexed by FD variable id) back to model
// variable values.
func (tr *translation) values(sol []int) []float64 {
	out := make([]float64, len(tr.vars))
	for i, v := range tr.vars {
		out[i] = float64(sol[v.ID()] - tr.shift[i])
	}
	return out
}

func translate(m *model.Model) *translation {
	tr := &translation{fdm: mk.NewModel()}
	tr.vars = make([]*mk.FDVariable, len(m.Vars))
	tr.shift = make([]int, len(m.Vars))
	for i, v := range m.Vars {
		lo := int(math.Ceil(v.Lo))
		hi := int(math.Floor(v.Hi))
		if hi < lo {
			tr.infeasible = true
			return tr
		}
		width := hi - lo + 1
		tr.vars[i] = tr.fdm.NewVariableWithName(mk.NewBitSetDomain(width), v.Name)
		tr.shift[i] = 1 - lo
	}
	tr.unit = tr.fdm.NewVariableWithName(mk.NewBitSetDomainFromValues(1, []int{1}), "one")

	for _, con := range m.Cons {
		if !tr.addLinear(con.Terms, con.Lo, con.Hi, nil) {
			return tr
		}
	}
	if len(m.Objective) > 0 {
		var objVar *mk.FDVariable
		if !tr.addLinear(m.Objective, math.Inf(-1), math.Inf(1), &objVar) {
			return tr
		}
		tr.objVar = objVar
	}
	return tr
}

// addLinear posts lo ≤ Σ terms ≤ hi as a LinearSum equality into a fresh
// total variable. When totalOut is non-nil the total is returned for use
// as an optimization objective, with tr.objOff recording the offset from
// FD total back to model value. Returns false when translation stopped
// (invalid or proven infeasible).
func (tr *translation) addLinear(terms []model.LinTerm, lo, hi float64, totalOut **mk.FDVariable) bool {
	merged := make(map[int]int, len(terms))
	for _, t := range terms {
		if t.Coef != math.Trunc(t.Coef) {
			tr.invalid = true
			return false
		}
		merged[t.Var] += int(t.Coef)
	}

	// Achievable FD-sum range and the model-to-FD offset S = Σ a·shift.
	fdMin, fdMax, offset := 0, 0, 0
	vars := make([]*mk.FDVariable, 0, len(merged)+1)
	coeffs := make([]int, 0, len(merged)+1)
	for i, v := range tr.vars {
		a, ok := merged[i]
		if !ok || a == 0 {
			continue
		}
		width := v.Domain().Count()
		if a > 0 {
			fdMin += a
			fdMax += a * width
		} else {
			fdMin += a * width
			fdMax += a
		}
		offset += a * tr.shift[i]
		vars = append(vars, v)
		coeffs = append(coeffs, a)
	}
	if len(vars) == 0 {
		if (!math.IsInf(lo, -1) && lo > 0) || (!math.IsInf(hi, 1) && hi < 0) {
			tr.infeasible = true
			return false
		}
		return true
	}

	effLo, effHi := fdMin, fdMax
	if !math.IsInf(lo, -1) {
		if b := int(math.Ceil(lo)) + offset; b > effLo {
			effLo = b
		}
	}
	if !math.IsInf(hi, 1) {
		if b := int(math.Floor(hi)) + offset; b < effHi {
			effHi = b
		}
	}
	if effLo > effHi {
		tr.infeasible = true
		return false
	}

	// Shift totals positive through the pinned unit variable.
	k := 1 - fdMin
	vars = append(vars, tr.unit)
	coeffs = append(coeffs, k)
	totalVals := make([]int, 0, effHi-effLo+1)
	for t := effLo + k; t <= effHi+k; t++ {
		totalVals = append(totalVals, t)
	}
	total := tr.fdm.NewVariable(mk.NewBitSetDomainFromValues(effHi+k, totalVals))
	ls, err := mk.NewLinearSum(vars, coeffs, total)
	if err != nil {
		tr.invalid = true
		return false
	}
	tr.fdm.AddConstraint(ls)
	if totalOut != nil {
		*totalOut = total
		tr.objOff = offset + k
	}
	return true
}
