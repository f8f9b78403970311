package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tk42/sortinghat/internal/roster"
)

// spread8 builds an MIScore whose eight components sum to total, spread
// round-robin across all eight so each stays within the valid [1,8]
// range, for tests that only care about the total.
func spread8(total int) roster.MIScore {
	vals := [8]int{1, 1, 1, 1, 1, 1, 1, 1}
	remaining := total - 8
	for i := 0; remaining > 0; i = (i + 1) % 8 {
		if vals[i] < 8 {
			vals[i]++
			remaining--
		}
	}
	return roster.MIScore{A: vals[0], B: vals[1], C: vals[2], D: vals[3], E: vals[4], F: vals[5], G: vals[6], H: vals[7]}
}

func baseConstraints(membersPerTeam int) roster.Constraints {
	return roster.Constraints{
		MembersPerTeam: membersPerTeam,
		MaxSubLeader:   8,
		MinMember:      0,
		Timeout:        5,
	}
}

func TestMatch_SixStudentsBalancedTeams(t *testing.T) {
	totals := []int{20, 22, 18, 24, 21, 19}
	sexes := []int{roster.SexMale, roster.SexFemale, roster.SexMale, roster.SexFemale, roster.SexMale, roster.SexFemale}

	students := make([]roster.Student, 6)
	for i := range students {
		students[i] = roster.Student{
			MI:       spread8(totals[i]),
			Leader:   roster.LeaderNone,
			Eyesight: roster.EyesightNoPreference,
			Sex:      sexes[i],
		}
	}

	cfg := baseConstraints(3)
	cfg.AtLeastOnePairSex = true
	cfg.GroupDiffCoeff = 1.0

	result, err := Match(context.Background(), students, cfg)
	require.NoError(t, err)
	require.Len(t, result.Teams, 2)

	for _, team := range result.Teams {
		assert.Len(t, team.Members, 3)
		assert.GreaterOrEqual(t, team.Males, 1)
		assert.GreaterOrEqual(t, team.Females, 1)
	}

	sum := func(r TeamReport) int {
		s := 0
		for _, v := range r.MITotal {
			s += v
		}
		return s
	}
	spread := sum(result.Teams[0]) - sum(result.Teams[1])
	if spread < 0 {
		spread = -spread
	}
	assert.LessOrEqual(t, spread, 4)
}

func TestMatch_HardDislikeSeparatesPair(t *testing.T) {
	students := make([]roster.Student, 6)
	for i := range students {
		students[i] = roster.Student{
			MI:       spread8(20),
			Leader:   roster.LeaderNone,
			Eyesight: roster.EyesightNoPreference,
			Sex:      roster.SexMale,
		}
	}
	students[0].Dislikes = []int{1}
	students[1].Dislikes = []int{0}
	// give every team at least one female so at_least_one_pair_sex is
	// satisfiable alongside the dislike separation.
	students[2].Sex = roster.SexFemale
	students[3].Sex = roster.SexFemale

	cfg := baseConstraints(3)
	cfg.AtLeastOnePairSex = true

	result, err := Match(context.Background(), students, cfg)
	require.NoError(t, err)

	teamOf := make(map[int]int)
	for _, team := range result.Teams {
		for _, m := range team.Members {
			teamOf[m] = team.Team
		}
	}
	assert.NotEqual(t, teamOf[0], teamOf[1])
}

func TestMatch_RatioGuard(t *testing.T) {
	students := make([]roster.Student, 41)
	for i := range students {
		students[i] = roster.Student{
			MI:       spread8(20),
			Leader:   roster.LeaderNone,
			Eyesight: roster.EyesightNoPreference,
			Sex:      roster.SexMale,
		}
	}
	cfg := baseConstraints(4)

	_, err := Match(context.Background(), students, cfg)
	assert.ErrorIs(t, err, roster.ErrRatioGuard)
}

func TestMatch_InfeasibleAllMale(t *testing.T) {
	students := make([]roster.Student, 4)
	for i := range students {
		students[i] = roster.Student{
			MI:       spread8(20),
			Leader:   roster.LeaderNone,
			Eyesight: roster.EyesightNoPreference,
			Sex:      roster.SexMale,
		}
	}
	cfg := baseConstraints(4)
	cfg.AtLeastOnePairSex = true

	_, err := Match(context.Background(), students, cfg)
	assert.True(t, errors.Is(err, ErrInfeasible))
}

func TestMatch_VisionAccommodation(t *testing.T) {
	students := make([]roster.Student, 9)
	for i := range students {
		students[i] = roster.Student{
			MI:       spread8(20),
			Leader:   roster.LeaderNone,
			Eyesight: roster.EyesightNoPreference,
			Sex:      roster.SexMale,
		}
	}
	students[0].Eyesight = roster.EyesightMustBeFront
	students[1].Eyesight = roster.EyesightMustBeFront
	students[2].Eyesight = roster.EyesightMustBeFront
	for i := 3; i < 6; i++ {
		students[i].Sex = roster.SexFemale
	}

	cfg := baseConstraints(3)

	result, err := Match(context.Background(), students, cfg)
	require.NoError(t, err)

	counts := make(map[int]int)
	for _, team := range result.Teams {
		for _, m := range team.Members {
			if m == 0 || m == 1 || m == 2 {
				counts[team.Team]++
			}
		}
	}

	atLeastTwo := false
	for _, c := range counts {
		if c >= 2 {
			atLeastTwo = true
		}
		assert.LessOrEqual(t, c, 3)
	}
	assert.True(t, atLeastTwo, "expected some team to hold >=2 must-front students, got %v", counts)
}

// TestMatch_PreviousTeamDispersion exercises the per-student dispersion
// formulation (the spec's recommended reading of unique_previous, not
// the group-based alternative it explicitly rejects): the constraint
// "∀t, ∀i, Σ_{k: P[i,k]=1} x[k,t] ≤ unique_previous" binds unconditionally
// for every student i and team t, regardless of whether i itself lands in
// t. With unique_previous=1, a size-4 prior group spread over 4 new teams
// of size 3 can place at most one of its members per team: if two of its
// members shared a team, any third member (wherever assigned) would see
// two of its own former teammates co-located, exceeding the limit.
func TestMatch_PreviousTeamDispersion(t *testing.T) {
	students := make([]roster.Student, 12)
	for i := range students {
		prior := i / 4
		students[i] = roster.Student{
			MI:       spread8(20),
			Leader:   roster.LeaderNone,
			Eyesight: roster.EyesightNoPreference,
			Sex:      roster.SexMale,
			Previous: &prior,
		}
	}
	one := 1
	cfg := baseConstraints(3)
	cfg.UniquePrevious = &one

	result, err := Match(context.Background(), students, cfg)
	require.NoError(t, err)
	require.Len(t, result.Teams, 4)

	for _, team := range result.Teams {
		byPrior := make(map[int]int)
		for _, m := range team.Members {
			byPrior[*students[m].Previous]++
		}
		for _, count := range byPrior {
			assert.LessOrEqual(t, count, 1, "team %v should hold at most one member of any prior team under unique_previous=1", team.Members)
		}
	}
}
