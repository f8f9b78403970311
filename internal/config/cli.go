package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tk42/sortinghat/internal/milp"
)

// CLIConfig holds the operator-tunable defaults for the sortinghat binary
// that a scenario file has no business specifying: how many workers the
// branch-and-bound search may use and which branching heuristic it
// defaults to. Entirely optional; LoadCLIConfig returns sensible
// defaults when no file is present.
type CLIConfig struct {
	Workers    int    `yaml:"workers"`
	Branching  string `yaml:"branching"`
	LogDir     string `yaml:"log_dir"`
}

// DefaultCLIConfig mirrors what a fresh checkout runs with: a single
// worker, the max-coefficient branching heuristic, logs under ./logs.
func DefaultCLIConfig() CLIConfig {
	return CLIConfig{
		Workers:   1,
		Branching: "max-fun",
		LogDir:    "logs",
	}
}

// LoadCLIConfig reads path if it exists, overlaying it onto
// DefaultCLIConfig; a missing file is not an error.
func LoadCLIConfig(path string) (CLIConfig, error) {
	cfg := DefaultCLIConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read CLI config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse CLI config file: %w", err)
	}

	return cfg, nil
}

// BranchHeuristic maps the config's human-readable branching name to the
// milp package's enum, defaulting to BranchMaxFun on an unrecognized or
// empty value.
func (c CLIConfig) BranchHeuristic() milp.BranchHeuristic {
	switch c.Branching {
	case "most-infeasible":
		return milp.BranchMostInfeasible
	case "naive":
		return milp.BranchNaive
	default:
		return milp.BranchMaxFun
	}
}
