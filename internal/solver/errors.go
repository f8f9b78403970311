package solver

import (
	"errors"
	"fmt"
)

// ErrInfeasible is returned when no assignment satisfies every hard
// constraint — the search exhausted the enumeration tree, or ran out of
// time, without ever finding one.
var ErrInfeasible = errors.New("no feasible solution")

// SolverError wraps an unexpected failure inside the branch-and-bound
// engine itself (an LP relaxation error other than the routine
// infeasible or singular outcomes, or a solved model that leaves a
// student without a team), as distinct from a model that is simply
// infeasible.
type SolverError struct {
	Err error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver: internal failure: %v", e.Err)
}

func (e *SolverError) Unwrap() error { return e.Err }

func errUnassignedStudent(i int) error {
	return fmt.Errorf("student %d has no assigned team in the solved model", i)
}
