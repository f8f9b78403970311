// Package milp is a small from-scratch mixed-integer linear programming
// engine: a fluent builder for variables, linear constraints and a linear
// objective, backed by a branch-and-bound search over gonum's simplex LP
// solver. It has no notion of students or teams; callers describe their
// own domain in terms of variables and constraints.
package milp

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Problem is the abstract, mutable representation of a MILP model under
// construction. The zero value is not usable; create one with NewProblem.
type Problem struct {
	maximize bool

	variables   []*Variable
	constraints []*Constraint

	// branching heuristic used during branch-and-bound. Defaults to BranchMaxFun.
	branchingHeuristic BranchHeuristic

	// number of workers the search may use to explore the enumeration tree concurrently.
	workers int

	// optional hook receiving every branch-and-bound decision, for diagnostics.
	instrumentation BnbMiddleware
}

// Variable is one decision variable of the Problem.
type Variable struct {
	name string

	coefficient float64
	integer     bool

	upper float64
	lower float64
}

// expression is a single term (coefficient * variable) inside a Constraint's
// left-hand side.
type expression struct {
	coef     float64
	variable *Variable
}

// Constraint is a single linear inequality or equality over a Problem's
// variables.
type Constraint struct {
	expressions []expression
	rhs         float64

	// inequality selects <=. The zero value is an equality constraint.
	inequality bool

	problem *Problem
}

// NewProblem creates an empty MILP model. Minimizes by default.
func NewProblem() *Problem {
	return &Problem{
		workers:         1,
		instrumentation: dummyMiddleware{},
	}
}

// AddVariable declares a new decision variable with a human-readable name
// for diagnostics. It defaults to continuous, non-negative, unbounded
// above, with a zero objective coefficient.
func (p *Problem) AddVariable(name string) *Variable {
	v := &Variable{
		name:  name,
		upper: math.Inf(1),
		lower: 0,
	}
	p.variables = append(p.variables, v)
	return v
}

// SetCoeff sets this variable's coefficient in the objective function.
func (v *Variable) SetCoeff(coef float64) *Variable {
	v.coefficient = coef
	return v
}

// IsInteger marks the variable as integer-constrained.
func (v *Variable) IsInteger() *Variable {
	v.integer = true
	return v
}

// UpperBound sets the variable's inclusive upper bound.
func (v *Variable) UpperBound(bound float64) *Variable {
	v.upper = bound
	return v
}

// LowerBound sets the variable's inclusive lower bound.
func (v *Variable) LowerBound(bound float64) *Variable {
	v.lower = bound
	return v
}

// AddConstraint starts a new constraint on the Problem. Chain
// AddExpression calls followed by EqualTo or SmallerThanOrEqualTo to
// complete it.
func (p *Problem) AddConstraint() *Constraint {
	c := &Constraint{problem: p}
	p.constraints = append(p.constraints, c)
	return c
}

// EqualTo finalizes the constraint as an equality with the given
// right-hand side.
func (c *Constraint) EqualTo(val float64) *Constraint {
	c.inequality = false
	c.rhs = val
	return c
}

// SmallerThanOrEqualTo finalizes the constraint as a <= inequality with
// the given right-hand side.
func (c *Constraint) SmallerThanOrEqualTo(val float64) *Constraint {
	c.inequality = true
	c.rhs = val
	return c
}

// GreaterThanOrEqualTo finalizes the constraint as a >= inequality by
// negating both sides into a <= form.
func (c *Constraint) GreaterThanOrEqualTo(val float64) *Constraint {
	for i := range c.expressions {
		c.expressions[i].coef = -c.expressions[i].coef
	}
	c.inequality = true
	c.rhs = -val
	return c
}

// AddExpression appends a (coefficient * variable) term to the
// constraint's left-hand side. Panics if the variable does not belong to
// this constraint's Problem.
func (c *Constraint) AddExpression(coef float64, v *Variable) *Constraint {
	c.problem.mustIndexOf(v)
	c.expressions = append(c.expressions, expression{coef: coef, variable: v})
	return c
}

// Minimize sets the Problem to minimize its objective (the default).
func (p *Problem) Minimize() { p.maximize = false }

// Maximize sets the Problem to maximize its objective.
func (p *Problem) Maximize() { p.maximize = true }

// BranchingHeuristic selects the branch-and-bound variable-selection
// strategy.
func (p *Problem) BranchingHeuristic(choice BranchHeuristic) { p.branchingHeuristic = choice }

// Workers sets how many goroutines the branch-and-bound search may use to
// explore the enumeration tree. Must be >= 1.
func (p *Problem) Workers(n int) {
	if n < 1 {
		panic("milp: workers must be >= 1")
	}
	p.workers = n
}

// Instrument attaches a BnbMiddleware that observes every branch-and-bound
// decision as the search progresses.
func (p *Problem) Instrument(m BnbMiddleware) {
	if m == nil {
		m = dummyMiddleware{}
	}
	p.instrumentation = m
}

// indexOf returns the position of v in p.variables, or -1 if not found.
func (p *Problem) indexOf(v *Variable) int {
	for i, candidate := range p.variables {
		if candidate == v {
			return i
		}
	}
	return -1
}

func (p *Problem) mustIndexOf(v *Variable) int {
	i := p.indexOf(v)
	if i < 0 {
		panic("milp: variable does not belong to this Problem")
	}
	return i
}

// toStandardForm flattens the builder representation into the dense
// numerical standard form min cᵀx s.t. Gx<=h, Ax=b, folding variable
// bounds into G/h.
func (p *Problem) toStandardForm() *milpProblem {
	n := len(p.variables)

	c := make([]float64, n)
	integrality := make([]bool, n)
	for i, v := range p.variables {
		k := v.coefficient
		if p.maximize {
			k = -k
		}
		c[i] = k
		integrality[i] = v.integer
	}

	var b []float64
	var Adata []float64
	var h []float64
	var Gdata []float64

	for _, constraint := range p.constraints {
		row := make([]float64, n)
		for _, e := range constraint.expressions {
			row[p.mustIndexOf(e.variable)] += e.coef
		}

		if constraint.inequality {
			Gdata = append(Gdata, row...)
			h = append(h, constraint.rhs)
		} else {
			Adata = append(Adata, row...)
			b = append(b, constraint.rhs)
		}
	}

	for _, v := range p.variables {
		i := p.mustIndexOf(v)

		if !math.IsInf(v.upper, 1) {
			row := make([]float64, n)
			row[i] = 1
			Gdata = append(Gdata, row...)
			h = append(h, v.upper)
		}

		if v.lower > 0 {
			row := make([]float64, n)
			row[i] = -1
			Gdata = append(Gdata, row...)
			h = append(h, -v.lower)
		}
	}

	var A *mat.Dense
	if len(b) > 0 {
		A = mat.NewDense(len(b), n, Adata)
	}

	var G *mat.Dense
	if len(h) > 0 {
		G = mat.NewDense(len(h), n, Gdata)
	}

	return &milpProblem{
		c:                      c,
		A:                      A,
		b:                      b,
		G:                      G,
		h:                      h,
		integralityConstraints: integrality,
		branchingHeuristic:     p.branchingHeuristic,
	}
}

// Solve runs branch-and-bound to completion or until ctx is done,
// whichever comes first, and returns the best solution found.
//
// If ctx carries no deadline, the search runs to optimality (or proven
// infeasibility) with no time limit.
func (p *Problem) Solve(ctx context.Context) (*Solution, error) {
	fixed := p.presolveFixedVariables()

	milp := p.toStandardForm()

	soln, err := milp.solve(ctx, p.workers, p.instrumentation)
	if err != nil && soln.x == nil {
		return nil, err
	}

	out := &Solution{
		Objective: soln.z,
		TimedOut:  err != nil,
		byName:    make(map[string]float64, len(p.variables)+len(fixed)),
	}
	if p.maximize {
		out.Objective = -out.Objective
	}

	for i, v := range p.variables {
		out.Coefficients = append(out.Coefficients, NamedValue{Name: v.name, Value: soln.x[i]})
		out.byName[v.name] = soln.x[i]
	}
	for name, value := range fixed {
		out.Coefficients = append(out.Coefficients, NamedValue{Name: name, Value: value})
		out.byName[name] = value
	}

	return out, nil
}

// NamedValue pairs a decision variable's name with its solved value.
type NamedValue struct {
	Name  string
	Value float64
}

// Solution is the result of a solved Problem.
type Solution struct {
	Objective float64

	// TimedOut is true when the search deadline was reached before the
	// search could prove optimality; the solution returned is then the
	// best incumbent found within the deadline.
	TimedOut bool

	// Coefficients holds every variable's solved value, in declaration order.
	Coefficients []NamedValue

	byName map[string]float64
}

// GetValueFor retrieves a decision variable's solved value by name.
func (s *Solution) GetValueFor(varName string) (float64, error) {
	val, ok := s.byName[varName]
	if !ok {
		return 0, fmt.Errorf("milp: variable %q not found in solution", varName)
	}
	return val, nil
}
