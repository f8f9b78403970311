package solver

import "github.com/tk42/sortinghat/internal/roster"

// TeamReport summarizes one resolved team for the caller: the roster
// positions assigned to it plus the aggregate figures a human reviewing
// the matching would want to see without re-deriving them.
type TeamReport struct {
	Team    int
	Members []int

	MITotal [8]int
	Males   int
	Females int

	// PreviousOverlaps counts, for each member, how many other members of
	// this team were also their prior teammate.
	PreviousOverlaps map[int]int

	// DislikedPairs lists member pairs where one disliked the other and
	// both ended up on this team regardless. buildModel always adds the
	// dislike constraints, so this is empty for any solved assignment.
	DislikedPairs [][2]int
}

// projectTeams turns a raw assignment into one TeamReport per team,
// computing the same aggregate figures the original matching service
// reported per team: MI totals, sex composition, previous-team overlap,
// and disliked-pair sanity check.
func projectTeams(students []roster.Student, assignments []Assignment, teamCount int) []TeamReport {
	byTeam := teamsOf(assignments, teamCount)

	reports := make([]TeamReport, teamCount)
	for t := 0; t < teamCount; t++ {
		members := byTeam[t]
		r := TeamReport{
			Team:             t,
			Members:          members,
			PreviousOverlaps: make(map[int]int, len(members)),
		}

		for _, i := range members {
			values := students[i].MI.Values()
			for s, val := range values {
				r.MITotal[s] += val
			}
			switch students[i].Sex {
			case roster.SexMale:
				r.Males++
			case roster.SexFemale:
				r.Females++
			}
		}

		for _, i := range members {
			if students[i].Previous == nil {
				continue
			}
			overlap := 0
			for _, j := range members {
				if i == j || students[j].Previous == nil {
					continue
				}
				if *students[i].Previous == *students[j].Previous {
					overlap++
				}
			}
			r.PreviousOverlaps[i] = overlap
		}

		for _, i := range members {
			for _, d := range students[i].Dislikes {
				if !contains(members, d) {
					continue
				}
				pair := [2]int{i, d}
				if pair[0] > pair[1] {
					pair[0], pair[1] = pair[1], pair[0]
				}
				if !containsPair(r.DislikedPairs, pair) {
					r.DislikedPairs = append(r.DislikedPairs, pair)
				}
			}
		}

		reports[t] = r
	}

	return reports
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func containsPair(pairs [][2]int, p [2]int) bool {
	for _, existing := range pairs {
		if existing == p {
			return true
		}
	}
	return false
}
