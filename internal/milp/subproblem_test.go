package milp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestConvertToEqualities(t *testing.T) {
	c := []float64{1, 2}
	G := mat.NewDense(1, 2, []float64{1, 1})
	h := []float64{10}

	cNew, aNew, bNew := convertToEqualities(c, nil, nil, G, h)

	require.Len(t, cNew, 3)
	assert.Equal(t, []float64{1, 2, 0}, cNew)
	assert.Equal(t, []float64{10}, bNew)

	r, cc := aNew.Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, 3, cc)
	assert.Equal(t, 1.0, aNew.At(0, 2))
}

func TestSubProblem_CombineInequalities_NoBnbConstraints(t *testing.T) {
	G := mat.NewDense(1, 2, []float64{1, 0})
	h := []float64{5}
	sp := subProblem{c: []float64{1, 1}, G: G, h: h}

	gotG, gotH := sp.combineInequalities()
	assert.Equal(t, h, gotH)
	assert.True(t, mat.Equal(G, gotG))
}

func TestSubProblem_CombineInequalities_WithBnbConstraints(t *testing.T) {
	sp := subProblem{
		c: []float64{1, 1},
		bnbConstraints: []bnbConstraint{
			{branchedVariable: 0, hsharp: 3, gsharp: []float64{1, 0}},
		},
	}

	gotG, gotH := sp.combineInequalities()
	require.Equal(t, []float64{3}, gotH)
	r, c := gotG.Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 1.0, gotG.At(0, 0))
}

func TestSubProblem_Copy_IsIndependent(t *testing.T) {
	sp := subProblem{
		id: 1,
		bnbConstraints: []bnbConstraint{
			{branchedVariable: 0, hsharp: 1, gsharp: []float64{1}},
		},
	}

	dup := sp.copy()
	dup.bnbConstraints = append(dup.bnbConstraints, bnbConstraint{branchedVariable: 1})

	assert.Len(t, sp.bnbConstraints, 1)
	assert.Len(t, dup.bnbConstraints, 2)
}

func TestSanityCheckDimensions(t *testing.T) {
	c := []float64{1, 2}

	assert.Error(t, sanityCheckDimensions(c, nil, nil, nil, nil))

	G := mat.NewDense(1, 2, []float64{1, 1})
	assert.Error(t, sanityCheckDimensions(c, nil, nil, G, nil))

	h := []float64{1}
	assert.NoError(t, sanityCheckDimensions(c, nil, nil, G, h))
}
