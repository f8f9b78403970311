package milp

import "math"

// BranchHeuristic selects which fractional integer-constrained variable
// branch-and-bound splits on at each node.
type BranchHeuristic int

const (
	// BranchMaxFun picks, among the integer-constrained variables that are
	// fractional in the current relaxation, the one with the largest
	// absolute objective coefficient.
	BranchMaxFun BranchHeuristic = iota
	// BranchMostInfeasible picks the integer-constrained variable whose
	// relaxed value is closest to a half-integer.
	BranchMostInfeasible
	// BranchNaive cycles through integer-constrained variables in
	// declaration order, independent of the current relaxed solution.
	BranchNaive
)

// naiveBranchPoint picks the next integer-constrained variable after the
// one branched on last, wrapping around to the start once the end of the
// variable vector is reached.
func (s solution) naiveBranchPoint() int {
	integrality := s.problem.integralityConstraints

	if len(s.problem.bnbConstraints) == 0 {
		branchOn := 0
		for i, isInt := range integrality {
			if isInt {
				branchOn = i
			}
		}
		return branchOn
	}

	last := s.problem.bnbConstraints[len(s.problem.bnbConstraints)-1].branchedVariable
	cursor := last
	for {
		cursor++
		if cursor == len(integrality) {
			cursor = 0
		}
		if integrality[cursor] {
			return cursor
		}
	}
}

// maxFunBranchPoint chooses the integer-constrained variable with the
// largest absolute objective coefficient, so branching concentrates on
// the variables that move the objective most.
func maxFunBranchPoint(c []float64, integralityConstraints []bool) int {
	if len(c) != len(integralityConstraints) {
		panic("milp: number of variables does not match number of integrality constraints")
	}

	candidate := 0
	var candidateValue float64
	for i, coef := range c {
		if integralityConstraints[i] && math.Abs(coef) >= candidateValue {
			candidate = i
			candidateValue = math.Abs(coef)
		}
	}
	return candidate
}

// mostInfeasibleBranchPoint chooses the integer-constrained variable
// whose relaxed value has a fractional part closest to one half, the
// point at which rounding gives the weakest guidance.
func mostInfeasibleBranchPoint(x []float64, integralityConstraints []bool) int {
	if len(x) != len(integralityConstraints) {
		panic("milp: number of variables does not match number of integrality constraints")
	}

	candidate := 0
	candidateRemainder := math.Inf(1)
	for i, v := range x {
		if !integralityConstraints[i] {
			continue
		}
		_, frac := math.Modf(v)
		dist := math.Abs(0.5 - frac)
		if dist <= candidateRemainder {
			candidate = i
			candidateRemainder = dist
		}
	}
	return candidate
}
