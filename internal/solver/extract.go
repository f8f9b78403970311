package solver

import (
	"sort"

	"github.com/tk42/sortinghat/internal/milp"
	"github.com/tk42/sortinghat/internal/roster"
)

// assignmentTolerance accounts for floating-point slack on what is
// mathematically a 0/1 value coming back from the LP relaxation at the
// leaves of the search tree.
const assignmentTolerance = 0.5

// Assignment is one real student's resolved team, in the caller's
// original (pre-padding) indexing.
type Assignment struct {
	StudentIndex int
	Team         int
}

// extractAssignment reads the solved x[i][t] variables and returns, for
// every real (non-dummy) student, the team it was assigned to. Dummy
// padding students are dropped.
func extractAssignment(soln *milp.Solution, v *vars, n *roster.Normalized) ([]Assignment, error) {
	out := make([]Assignment, 0, n.RealCount)

	for i := 0; i < n.RealCount; i++ {
		team := -1
		for t := 0; t < n.TeamCount; t++ {
			val, err := soln.GetValueFor(varName("x", i, t))
			if err != nil {
				return nil, err
			}
			if val >= assignmentTolerance {
				team = t
				break
			}
		}
		if team < 0 {
			return nil, &SolverError{Err: errUnassignedStudent(i)}
		}
		out = append(out, Assignment{StudentIndex: i, Team: team})
	}

	sort.Slice(out, func(a, b int) bool { return out[a].StudentIndex < out[b].StudentIndex })
	return out, nil
}

// teamsOf groups an assignment list into a map from team index to the
// real student indices assigned to it, in ascending order.
func teamsOf(assignments []Assignment, teamCount int) map[int][]int {
	teams := make(map[int][]int, teamCount)
	for _, a := range assignments {
		teams[a.Team] = append(teams[a.Team], a.StudentIndex)
	}
	for t := range teams {
		sort.Ints(teams[t])
	}
	return teams
}
