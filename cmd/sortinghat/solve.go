package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tk42/sortinghat/internal/config"
	"github.com/tk42/sortinghat/internal/milp"
	"github.com/tk42/sortinghat/internal/solver"
)

func solveCmd() *cobra.Command {
	var scenarioPath string
	var workers int
	var debugTreePath string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a scenario file and print the resulting team assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			correlationID := uuid.New().String()
			logger := a.logger.With(zap.String("correlation_id", correlationID))

			scenario, err := config.LoadScenario(scenarioPath)
			if err != nil {
				logger.Error("failed to load scenario", zap.Error(err))
				return err
			}

			if workers <= 0 {
				workers = a.cliCfg.Workers
			}

			logger.Info("starting solve",
				zap.Int("students", len(scenario.Students)),
				zap.Int("members_per_team", scenario.Constraints.MembersPerTeam),
				zap.Int("workers", workers),
			)

			opts := []solver.Option{
				solver.WithWorkers(workers),
				solver.WithBranching(a.cliCfg.BranchHeuristic()),
			}

			var tree *milp.TreeLogger
			if debugTreePath != "" {
				tree = milp.NewTreeLogger()
				opts = append(opts, solver.WithInstrumentation(tree))
			}

			result, err := solver.Match(context.Background(), scenario.Students, scenario.Constraints, opts...)
			if tree != nil {
				if writeErr := writeDebugTree(tree, debugTreePath); writeErr != nil {
					logger.Error("failed to write debug tree", zap.Error(writeErr))
				} else {
					logger.Info("wrote branch-and-bound debug tree", zap.String("path", debugTreePath))
				}
			}
			if err != nil {
				logger.Error("solve failed", zap.Error(err))
				if errors.Is(err, solver.ErrInfeasible) {
					fmt.Println("no feasible team assignment exists for these constraints")
				}
				return err
			}

			logger.Info("solve finished",
				zap.String("status", result.Status.String()),
				zap.Float64("objective", result.Objective),
			)

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "path to the scenario YAML file")
	cmd.MarkFlagRequired("scenario")
	cmd.Flags().IntVar(&workers, "workers", 0, "branch-and-bound worker count (0 = use config default)")
	cmd.Flags().StringVar(&debugTreePath, "debug-tree", "", "write the branch-and-bound enumeration tree as Graphviz DOT to this path")

	return cmd
}

// writeDebugTree renders tree as Graphviz DOT to path, for feeding into
// `dot -Tpng` when diagnosing a slow or surprising solve.
func writeDebugTree(tree *milp.TreeLogger, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create debug tree file: %w", err)
	}
	defer f.Close()

	tree.ToDOT(f)
	return nil
}

func printResult(result *solver.Result) {
	fmt.Printf("status: %s  objective: %.2f\n\n", result.Status, result.Objective)
	for _, team := range result.Teams {
		fmt.Printf("team %d (%d members): %v\n", team.Team, len(team.Members), team.Members)
		fmt.Printf("  MI total: %d  male: %d  female: %d\n", sumTotal(team.MITotal), team.Males, team.Females)
	}
}

func sumTotal(mi [8]int) int {
	total := 0
	for _, v := range mi {
		total += v
	}
	return total
}
