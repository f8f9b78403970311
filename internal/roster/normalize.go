package roster

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// maxRosterToTeamRatio is the ratio guard of spec §4.1: a roster more
// than this many times the target team size is rejected outright, since
// padding it out would create an absurd number of dummy students.
const maxRosterToTeamRatio = 10

// Normalized is the padded roster and the dense adjacency matrices the
// model builder reads from. Students[0:RealCount] are the caller's real
// students in their original order; the remainder are dummy padding.
type Normalized struct {
	Students  []Student
	RealCount int
	TeamSize  int
	TeamCount int

	// Dislikes is N'xN', Dislikes.At(i,j) == 1 iff student i listed
	// student j as disliked. Asymmetric by construction; constraint
	// generation must apply it to both (i,t) and (j,t).
	Dislikes *mat.Dense

	// Previous is N'xN' and symmetric, zero on the diagonal: 1 iff i != j
	// and students i,j shared a prior team.
	Previous *mat.Dense
}

// PaddedCount returns the padded roster size N' = TeamCount * TeamSize.
func (n *Normalized) PaddedCount() int {
	return n.TeamCount * n.TeamSize
}

// Normalize validates the roster and constraint bundle, pads the roster
// with dummy students up to a whole multiple of the target team size,
// and builds the dislike and previous-team co-membership matrices.
func Normalize(students []Student, cfg Constraints) (*Normalized, error) {
	if err := ValidateConstraints(cfg); err != nil {
		return nil, err
	}

	teamSize := cfg.MembersPerTeam
	n := len(students)

	if n > maxRosterToTeamRatio*teamSize {
		return nil, ErrRatioGuard
	}

	teamCount := cfg.MaxNumTeams
	if teamCount == 0 {
		teamCount = int(math.Ceil(float64(n) / float64(teamSize)))
	}

	if err := ValidateStudents(students, teamCount); err != nil {
		return nil, err
	}

	padded := teamCount * teamSize
	if n > padded {
		return nil, ErrRatioGuard
	}

	roster := make([]Student, padded)
	copy(roster, students)
	for i := n; i < padded; i++ {
		roster[i] = dummyStudent()
	}

	dislikes := mat.NewDense(padded, padded, nil)
	for i := 0; i < n; i++ {
		for _, j := range roster[i].Dislikes {
			dislikes.Set(i, j, 1)
		}
	}

	previous := mat.NewDense(padded, padded, nil)
	for i := 0; i < n; i++ {
		if roster[i].Previous == nil {
			continue
		}
		for j := i + 1; j < n; j++ {
			if roster[j].Previous == nil {
				continue
			}
			if *roster[i].Previous == *roster[j].Previous {
				previous.Set(i, j, 1)
				previous.Set(j, i, 1)
			}
		}
	}

	return &Normalized{
		Students:  roster,
		RealCount: n,
		TeamSize:  teamSize,
		TeamCount: teamCount,
		Dislikes:  dislikes,
		Previous:  previous,
	}, nil
}
