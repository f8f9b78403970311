package milp

import (
	"context"
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// milpProblem is the dense numerical standard form of a Problem:
//
//	minimize    c^T x
//	subject to  G x <= h
//	            A x  = b
type milpProblem struct {
	c []float64
	A *mat.Dense
	b []float64
	G *mat.Dense
	h []float64

	// integralityConstraints has the same order as c; true marks a variable
	// that must take an integer value in any accepted solution.
	integralityConstraints []bool

	branchingHeuristic BranchHeuristic
}

// ErrNoIntegerFeasibleSolution is returned when branch-and-bound exhausts
// the enumeration tree without finding any point that satisfies every
// integrality constraint.
var ErrNoIntegerFeasibleSolution = errors.New("milp: no integer-feasible solution found")

// expectedFailures maps LP-relaxation failure modes that are a routine
// part of branch-and-bound (not evidence of a bug) onto the corresponding
// search decision.
var expectedFailures = map[error]bnbDecision{
	lp.ErrInfeasible: decisionSubproblemInfeasible,
	lp.ErrSingular:   decisionSubproblemDegenerate,
}

// toInitialSubproblem converts the inequality-form model into the
// equality-only form (via slack variables) branch-and-bound operates on.
func (p *milpProblem) toInitialSubproblem() subProblem {
	c, A, b := p.c, p.A, p.b
	integrality := p.integralityConstraints

	if p.G != nil {
		c, A, b = convertToEqualities(p.c, p.A, p.b, p.G, p.h)

		integrality = make([]bool, len(c))
		copy(integrality, p.integralityConstraints)
	}

	return subProblem{
		id:                     0,
		c:                      c,
		A:                      A,
		b:                      b,
		integralityConstraints: integrality,
		branchHeuristic:        p.branchingHeuristic,
	}
}

// solve runs the branch-and-bound search and strips the slack variables
// introduced by toInitialSubproblem from the returned solution vector.
func (p *milpProblem) solve(ctx context.Context, workers int, instrumentation BnbMiddleware) (solution, error) {
	if workers < 1 {
		panic("milp: workers must be >= 1")
	}
	if len(p.integralityConstraints) != len(p.c) {
		panic("milp: integrality constraints vector is not the same length as c")
	}
	if instrumentation == nil {
		instrumentation = dummyMiddleware{}
	}

	initial := p.toInitialSubproblem()

	tree := newSearchTree(initial, instrumentation)
	incumbent, err := tree.search(ctx, workers)

	if incumbent == nil {
		if err != nil {
			return solution{}, err
		}
		return solution{}, ErrNoIntegerFeasibleSolution
	}

	// An unexpected solver failure is surfaced even when an incumbent
	// exists; only a reached deadline keeps the incumbent.
	if err != nil && ctx.Err() == nil {
		return solution{}, err
	}

	out := *incumbent
	out.x = out.x[:len(p.c)]

	// err is non-nil exactly when the deadline was reached before the
	// search could prove optimality; the caller still gets the best
	// incumbent found, matching the Feasible (not Infeasible) status.
	return out, err
}
