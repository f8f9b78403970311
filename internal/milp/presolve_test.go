package milp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresolveFixedVariables(t *testing.T) {
	p := NewProblem()
	free := p.AddVariable("free").SetCoeff(1)
	fixed := p.AddVariable("fixed").SetCoeff(2).LowerBound(3).UpperBound(3)

	c := p.AddConstraint().AddExpression(1, free).AddExpression(1, fixed).SmallerThanOrEqualTo(10)

	got := p.presolveFixedVariables()

	assert.Equal(t, map[string]float64{"fixed": 3}, got)
	assert.Len(t, p.variables, 1)
	assert.Equal(t, free, p.variables[0])
	assert.Equal(t, 7.0, c.rhs)
}

func TestPresolveFixedVariables_NoneFixed(t *testing.T) {
	p := NewProblem()
	p.AddVariable("a").UpperBound(10)
	p.AddVariable("b").UpperBound(5)

	got := p.presolveFixedVariables()
	assert.Empty(t, got)
	assert.Len(t, p.variables, 2)
}
