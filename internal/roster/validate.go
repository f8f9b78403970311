package roster

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStudents checks every student's struct tags, its Dislikes
// indices against the roster it belongs to, and its Previous team
// against maxTeam (when maxTeam > 0).
// Dislikes/Previous are cross-slice references validator's struct tags
// cannot express, so they are checked procedurally here.
func ValidateStudents(students []Student, maxTeam int) error {
	for i, s := range students {
		if err := validate.Struct(s); err != nil {
			return fmt.Errorf("%w: student %d: %v", ErrMalformedInput, i, err)
		}

		for _, d := range s.Dislikes {
			if d == i {
				return fmt.Errorf("%w: student %d dislikes itself", ErrMalformedInput, i)
			}
			if d < 0 || d >= len(students) {
				return fmt.Errorf("%w: student %d has an out-of-range dislikes index %d", ErrMalformedInput, i, d)
			}
		}

		if s.Previous != nil {
			if *s.Previous < 0 || (maxTeam > 0 && *s.Previous >= maxTeam) {
				return fmt.Errorf("%w: student %d has an out-of-range previous team %d", ErrMalformedInput, i, *s.Previous)
			}
		}
	}
	return nil
}

// ValidateConstraints checks struct tags and cross-field quota
// contradictions (e.g. requiring at least one leader while also capping
// leaders at zero).
func ValidateConstraints(c Constraints) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: constraints: %v", ErrMalformedInput, err)
	}

	if c.AtLeastOneLeader && c.MaxLeader == 0 {
		return fmt.Errorf("%w: at_least_one_leader requires max_leader > 0", ErrMalformedInput)
	}

	return nil
}
