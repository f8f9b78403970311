package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkStudent(sex int) Student {
	return Student{
		MI:       MIScore{A: 4, B: 4, C: 4, D: 4, E: 4, F: 4, G: 4, H: 4},
		Leader:   LeaderNone,
		Eyesight: EyesightNoPreference,
		Sex:      sex,
	}
}

func TestNormalize_PadsToWholeMultiple(t *testing.T) {
	students := []Student{mkStudent(SexMale), mkStudent(SexFemale), mkStudent(SexMale)}
	cfg := Constraints{MembersPerTeam: 2, Timeout: 10}

	got, err := Normalize(students, cfg)
	require.NoError(t, err)

	assert.Equal(t, 3, got.RealCount)
	assert.Equal(t, 2, got.TeamCount) // ceil(3/2)
	assert.Equal(t, 4, got.PaddedCount())
	assert.Len(t, got.Students, 4)
	assert.Equal(t, SexDummy, got.Students[3].Sex)
	assert.Equal(t, 1, got.Students[3].MI.A)
}

func TestNormalize_RespectsExplicitTeamCount(t *testing.T) {
	students := make([]Student, 6)
	for i := range students {
		students[i] = mkStudent(SexMale)
	}
	cfg := Constraints{MembersPerTeam: 3, MaxNumTeams: 2, Timeout: 10}

	got, err := Normalize(students, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TeamCount)
	assert.Equal(t, 6, got.PaddedCount())
}

func TestNormalize_RatioGuard(t *testing.T) {
	students := make([]Student, 41)
	for i := range students {
		students[i] = mkStudent(SexMale)
	}
	cfg := Constraints{MembersPerTeam: 4, Timeout: 10}

	_, err := Normalize(students, cfg)
	assert.ErrorIs(t, err, ErrRatioGuard)
}

func TestNormalize_DislikesMatrix_Asymmetric(t *testing.T) {
	s0 := mkStudent(SexMale)
	s0.Dislikes = []int{1}
	s1 := mkStudent(SexMale)
	students := []Student{s0, s1}
	cfg := Constraints{MembersPerTeam: 2, Timeout: 10}

	got, err := Normalize(students, cfg)
	require.NoError(t, err)

	assert.Equal(t, 1.0, got.Dislikes.At(0, 1))
	assert.Equal(t, 0.0, got.Dislikes.At(1, 0))
}

func TestNormalize_DislikesOutOfRange(t *testing.T) {
	s0 := mkStudent(SexMale)
	s0.Dislikes = []int{5}
	cfg := Constraints{MembersPerTeam: 2, Timeout: 10}

	_, err := Normalize([]Student{s0, mkStudent(SexFemale)}, cfg)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestNormalize_PreviousMatrix_Symmetric(t *testing.T) {
	prevA, prevB := 0, 0
	s0 := mkStudent(SexMale)
	s0.Previous = &prevA
	s1 := mkStudent(SexFemale)
	s1.Previous = &prevB
	s2 := mkStudent(SexMale)

	cfg := Constraints{MembersPerTeam: 3, Timeout: 10}
	got, err := Normalize([]Student{s0, s1, s2}, cfg)
	require.NoError(t, err)

	assert.Equal(t, 1.0, got.Previous.At(0, 1))
	assert.Equal(t, 1.0, got.Previous.At(1, 0))
	assert.Equal(t, 0.0, got.Previous.At(0, 2))
	assert.Equal(t, 0.0, got.Previous.At(0, 0))
}

func TestNormalize_ContradictoryQuota(t *testing.T) {
	cfg := Constraints{MembersPerTeam: 2, Timeout: 10, AtLeastOneLeader: true, MaxLeader: 0}
	_, err := Normalize([]Student{mkStudent(SexMale), mkStudent(SexFemale)}, cfg)
	assert.ErrorIs(t, err, ErrMalformedInput)
}
