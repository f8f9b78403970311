// Package config loads the YAML scenario and CLI configuration files
// cmd/sortinghat reads, mirroring the load-then-validate pattern of
// jakec-github-ilford-drop-in's internal/config package.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tk42/sortinghat/internal/roster"
)

var validate = validator.New()

// Scenario is the on-disk shape of a solve request: a roster and the
// constraint bundle to partition it under. Field shapes mirror
// roster.Student and roster.Constraints exactly; this is not a generic
// envelope, since there is exactly one request shape.
type Scenario struct {
	Students    []roster.Student  `yaml:"students" validate:"required,min=1,dive"`
	Constraints roster.Constraints `yaml:"constraints" validate:"required"`
}

// LoadScenario reads and validates a scenario file from path. Struct-tag
// validation catches shape errors (missing required fields, out-of-range
// scores); roster.Normalize performs the rest of the semantic validation
// once the solve actually runs.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &s, nil
}
