package milp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreeLogger_RecordsDecisions(t *testing.T) {
	tl := NewTreeLogger()

	root := subProblem{id: 0, parent: 0}
	tl.NewSubProblem(root)

	s := solution{problem: &root, x: []float64{1, 2}, z: 1.5}
	tl.ProcessDecision(s, decisionNewIncumbent)

	node := tl.nodes[0]
	assert.True(t, node.solved)
	assert.Equal(t, decisionNewIncumbent, node.decision)
	assert.Equal(t, 1.5, node.z)
}

func TestTreeLogger_NewSubProblem_PanicsOnDuplicateID(t *testing.T) {
	tl := NewTreeLogger()
	tl.NewSubProblem(subProblem{id: 5})

	assert.Panics(t, func() {
		tl.NewSubProblem(subProblem{id: 5})
	})
}

func TestTreeLogger_ToDOT(t *testing.T) {
	tl := NewTreeLogger()
	root := subProblem{id: 0, parent: 0}
	tl.NewSubProblem(root)
	tl.ProcessDecision(solution{problem: &root, x: nil, z: 2}, decisionNewIncumbent)

	var buf bytes.Buffer
	tl.ToDOT(&buf)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph enumtree {"))
	assert.Contains(t, out, "new incumbent")
}
