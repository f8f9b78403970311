package milp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// subProblem is one node of the branch-and-bound enumeration tree: the
// original equality-form model plus whatever extra bnbConstraints this
// node's ancestors branched in.
type subProblem struct {
	id     int64
	parent int64

	// Inherited from the root problem; never modified in place.
	c []float64
	A *mat.Dense
	b []float64
	G *mat.Dense
	h []float64

	integralityConstraints []bool
	branchHeuristic        BranchHeuristic

	// bnbConstraints accumulates one entry per ancestor branch decision.
	bnbConstraints []bnbConstraint
}

// bnbConstraint is a single branch-and-bound inequality of the form
// gsharp·x <= hsharp, restricting one variable's value.
type bnbConstraint struct {
	branchedVariable int
	hsharp           float64
	gsharp           []float64
}

// solution is the result of relaxing and solving a single subProblem.
type solution struct {
	problem *subProblem
	x       []float64
	z       float64
	err     error
}

// combineInequalities merges the subProblem's inherited G/h with the
// inequalities accumulated from branch-and-bound decisions along this
// node's path from the root.
func (p subProblem) combineInequalities() (*mat.Dense, []float64) {
	if len(p.bnbConstraints) == 0 {
		if p.G != nil {
			return mat.DenseCopyOf(p.G), p.h
		}
		return nil, nil
	}

	h := append([]float64{}, p.h...)
	var bnbRows []float64
	for _, constr := range p.bnbConstraints {
		bnbRows = append(bnbRows, constr.gsharp...)
		h = append(h, constr.hsharp)
	}
	bnbG := mat.NewDense(len(p.bnbConstraints), len(p.c), bnbRows)

	if p.G == nil || p.G.IsZero() {
		return bnbG, h
	}

	origRows, _ := p.G.Dims()
	bnbCount, _ := bnbG.Dims()
	combined := mat.NewDense(origRows+bnbCount, len(p.c), nil)
	combined.Stack(p.G, bnbG)

	return combined, h
}

// convertToEqualities rewrites a model with inequalities (G, h) into an
// equivalent one with only equalities (A, b), introducing one
// non-negative slack variable per inequality row.
func convertToEqualities(c []float64, A *mat.Dense, b []float64, G *mat.Dense, h []float64) (cNew []float64, aNew *mat.Dense, bNew []float64) {
	if G == nil {
		panic("milp: convertToEqualities called with a nil G matrix")
	}
	if err := sanityCheckDimensions(c, A, b, G, h); err != nil {
		panic(err)
	}

	nVar := len(c)
	nCons := len(b)
	nIneq := len(h)
	nNewVar := nVar + nIneq
	nNewCons := nCons + nIneq

	cNew = make([]float64, nNewVar)
	copy(cNew, c)

	bNew = make([]float64, nNewCons)
	copy(bNew, b)
	copy(bNew[nCons:], h)

	aNew = mat.NewDense(nNewCons, nNewVar, nil)
	if A != nil {
		aNew.Slice(0, nCons, 0, nVar).(*mat.Dense).Copy(A)
	}
	aNew.Slice(nCons, nNewCons, 0, nVar).(*mat.Dense).Copy(G)

	slackBlock := aNew.Slice(nCons, nNewCons, nVar, nNewVar).(*mat.Dense)
	for i := 0; i < nIneq; i++ {
		slackBlock.Set(i, i, 1)
	}

	return
}

// solve relaxes this subProblem's integrality constraints and solves the
// resulting LP with the simplex method.
func (p subProblem) solve() solution {
	G, h := p.combineInequalities()

	var z float64
	var x []float64
	var err error

	if G != nil {
		c, A, b := convertToEqualities(p.c, p.A, p.b, G, h)
		z, x, err = lp.Simplex(c, A, b, 0, nil)
		if err == nil && len(x) != len(p.c) {
			x = x[:len(p.c)]
		}
	} else {
		z, x, err = lp.Simplex(p.c, p.A, p.b, 0, nil)
	}

	return solution{problem: &p, x: x, z: z, err: err}
}

// branch splits this node's solution into two child subProblems that
// bound the chosen variable away from its current relaxed value, one
// from below and one from above. BranchMaxFun and BranchMostInfeasible
// choose a fractional variable; BranchNaive follows declaration order
// and may choose one whose relaxed value is already integral.
func (s solution) branch(nextID int64) (p1, p2 subProblem) {
	var branchOn int
	switch s.problem.branchHeuristic {
	case BranchMaxFun:
		fractional := make([]bool, len(s.problem.integralityConstraints))
		for i, isInt := range s.problem.integralityConstraints {
			_, frac := math.Modf(s.x[i])
			fractional[i] = isInt && frac > integerTolerance && frac < 1-integerTolerance
		}
		branchOn = maxFunBranchPoint(s.problem.c, fractional)
	case BranchMostInfeasible:
		branchOn = mostInfeasibleBranchPoint(s.x, s.problem.integralityConstraints)
	case BranchNaive:
		branchOn = s.naiveBranchPoint()
	default:
		panic("milp: unknown branching heuristic")
	}

	currentValue := s.x[branchOn]

	p1 = s.problem.getChild(branchOn, 1, math.Floor(currentValue))
	p2 = s.problem.getChild(branchOn, -1, -(math.Floor(currentValue) + 1))

	p1.id = nextID
	p2.id = nextID + 1

	return p1, p2
}

// getChild copies the parent subProblem and appends one more
// branch-and-bound inequality restricting the chosen variable.
func (p subProblem) getChild(branchOn int, factor float64, smallerOrEqualThan float64) subProblem {
	child := p.copy()

	gsharp := make([]float64, len(p.c))
	gsharp[branchOn] = factor

	child.bnbConstraints = append(child.bnbConstraints, bnbConstraint{
		branchedVariable: branchOn,
		hsharp:           smallerOrEqualThan,
		gsharp:           gsharp,
	})
	child.parent = p.id

	return child
}

// copy returns a shallow copy of p with its own bnbConstraints backing
// array, so that appending to a child's constraints never mutates a
// sibling's.
func (p *subProblem) copy() subProblem {
	dup := subProblem{
		id:                     p.id,
		parent:                 p.parent,
		c:                      p.c,
		A:                      p.A,
		b:                      p.b,
		G:                      p.G,
		h:                      p.h,
		integralityConstraints: p.integralityConstraints,
		branchHeuristic:        p.branchHeuristic,
		bnbConstraints:         make([]bnbConstraint, len(p.bnbConstraints)),
	}
	copy(dup.bnbConstraints, p.bnbConstraints)
	return dup
}

// sanityCheckDimensions verifies that the matrices and vectors describing
// a linear model are mutually consistent in shape.
func sanityCheckDimensions(c []float64, A *mat.Dense, b []float64, G *mat.Dense, h []float64) error {
	if G == nil && A == nil {
		return errors.New("milp: no constraint matrices provided")
	}

	if G != nil {
		if h == nil {
			return errors.New("milp: h vector is nil while G matrix is provided")
		}
		rG, cG := G.Dims()
		if rG != len(h) {
			return errors.New("milp: number of rows in G does not match length of h")
		}
		if cG != len(c) {
			return errors.New("milp: number of columns in G does not match number of variables")
		}
	}
	if h != nil && G == nil {
		return errors.New("milp: h vector is provided while G matrix is nil")
	}

	if A != nil {
		rA, cA := A.Dims()
		if rA != len(b) {
			return errors.New("milp: number of rows in A does not match length of b")
		}
		if cA != len(c) {
			return errors.New("milp: number of columns in A does not match number of variables")
		}
	}
	if b != nil && A == nil {
		return errors.New("milp: b vector is provided while A matrix is nil")
	}

	return nil
}
