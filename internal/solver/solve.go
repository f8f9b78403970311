package solver

import (
	"context"
	"errors"
	"time"

	"github.com/tk42/sortinghat/internal/milp"
	"github.com/tk42/sortinghat/internal/roster"
)

// Status classifies how a Result was reached.
type Status int

const (
	// StatusOptimal means branch-and-bound proved the returned assignment
	// optimal before the timeout.
	StatusOptimal Status = iota
	// StatusFeasible means the timeout was reached before optimality could
	// be proven; the returned assignment is the best incumbent found.
	StatusFeasible
)

func (s Status) String() string {
	if s == StatusOptimal {
		return "optimal"
	}
	return "feasible"
}

// Result is the outcome of a successful Match: a team assignment plus
// the objective value and search status it was found under.
type Result struct {
	Status    Status
	Objective float64
	Teams     []TeamReport
}

// Match normalizes the roster, builds the MILP model, solves it within
// cfg.Timeout seconds, and projects the solution back into per-team
// reports. It returns ErrInfeasible when no assignment satisfies every
// hard constraint, wraps unexpected solver failures in a *SolverError,
// and otherwise propagates roster validation errors (ErrMalformedInput,
// ErrRatioGuard) unchanged.
func Match(ctx context.Context, students []roster.Student, cfg roster.Constraints, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}

	normalized, err := roster.Normalize(students, cfg)
	if err != nil {
		return nil, err
	}

	prob, v, err := buildModel(normalized, cfg)
	if err != nil {
		return nil, err
	}
	assembleObjective(v, normalized, cfg)

	prob.Minimize()
	prob.BranchingHeuristic(o.branching)
	prob.Workers(o.workers)
	if o.instrumentation != nil {
		prob.Instrument(o.instrumentation)
	}

	solveCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Timeout)*time.Second)
	defer cancel()

	soln, err := prob.Solve(solveCtx)
	if err != nil {
		if errors.Is(err, milp.ErrNoIntegerFeasibleSolution) ||
			errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, context.Canceled) {
			return nil, ErrInfeasible
		}
		return nil, &SolverError{Err: err}
	}

	assignments, err := extractAssignment(soln, v, normalized)
	if err != nil {
		return nil, err
	}

	status := StatusOptimal
	if soln.TimedOut {
		status = StatusFeasible
	}

	return &Result{
		Status:    status,
		Objective: soln.Objective,
		Teams:     projectTeams(normalized.Students, assignments, normalized.TeamCount),
	}, nil
}

// Option configures a Match call beyond the roster/constraint bundle.
type Option func(*options)

type options struct {
	branching       milp.BranchHeuristic
	workers         int
	instrumentation milp.BnbMiddleware
}

func defaultOptions() options {
	return options{
		branching: milp.BranchMaxFun,
		workers:   1,
	}
}

// WithBranching overrides the branch-and-bound variable-selection
// heuristic. Defaults to milp.BranchMaxFun.
func WithBranching(h milp.BranchHeuristic) Option {
	return func(o *options) { o.branching = h }
}

// WithWorkers sets how many goroutines the search may use concurrently.
// Defaults to 1.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithInstrumentation attaches a BnbMiddleware for diagnostics, e.g.
// milp.NewTreeLogger to export the search tree as Graphviz DOT.
func WithInstrumentation(m milp.BnbMiddleware) Option {
	return func(o *options) { o.instrumentation = m }
}
