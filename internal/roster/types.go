// Package roster holds the student/constraint data model and the
// normalization step (dummy padding, dislike/previous-team matrices) that
// the model builder consumes.
package roster

// SexMale and SexFemale are the two real sex categories a student can
// report. SexDummy is the sentinel assigned to padding students so that
// sex-balance constraints can never be satisfied by a dummy.
const (
	SexMale   = 0
	SexFemale = 1
	SexDummy  = -1
)

// Leader self-selection categories.
const (
	LeaderNone      = 1
	LeaderSubLeader = 3
	LeaderCandidate = 8
)

// Eyesight self-selection categories.
const (
	EyesightNoPreference = 1
	EyesightPreferFront  = 3
	EyesightMustBeFront  = 8
)

// MIScore is a student's eight-dimensional multiple-intelligences
// self-rating, each component an integer in [1,8].
type MIScore struct {
	A int `yaml:"a" validate:"min=1,max=8"`
	B int `yaml:"b" validate:"min=1,max=8"`
	C int `yaml:"c" validate:"min=1,max=8"`
	D int `yaml:"d" validate:"min=1,max=8"`
	E int `yaml:"e" validate:"min=1,max=8"`
	F int `yaml:"f" validate:"min=1,max=8"`
	G int `yaml:"g" validate:"min=1,max=8"`
	H int `yaml:"h" validate:"min=1,max=8"`
}

// Total returns the sum of the eight MI components.
func (m MIScore) Total() int {
	return m.A + m.B + m.C + m.D + m.E + m.F + m.G + m.H
}

// Values returns the eight MI components in A..H order, for code that
// needs to iterate skills rather than name them individually.
func (m MIScore) Values() [8]int {
	return [8]int{m.A, m.B, m.C, m.D, m.E, m.F, m.G, m.H}
}

// Student is one real participant in the class being partitioned into
// teams. Indices referenced by Dislikes and Previous are positions in the
// slice this Student belongs to / the team range, respectively.
type Student struct {
	MI       MIScore `yaml:"mi" validate:"required"`
	Leader   int     `yaml:"leader" validate:"oneof=1 3 8"`
	Eyesight int     `yaml:"eyesight" validate:"oneof=1 3 8"`
	Sex      int     `yaml:"sex" validate:"oneof=0 1"`

	// Previous is the 0-indexed team this student was assigned to in a
	// prior matching round, or nil if they have no prior assignment.
	Previous *int `yaml:"previous,omitempty"`

	// Dislikes holds 0-indexed positions, into the same roster this
	// Student belongs to, of students this one cannot share a team with.
	Dislikes []int `yaml:"dislikes,omitempty"`
}

// isDummy reports whether this Student is synthetic padding rather than a
// real participant.
func (s Student) isDummy() bool {
	return s.Sex == SexDummy
}

// dummyStudent returns a synthetic filler student: every MI score at the
// floor, ordinary leader/eyesight categories, and the sentinel sex so it
// can never satisfy a sex-balance constraint.
func dummyStudent() Student {
	return Student{
		MI:       MIScore{A: 1, B: 1, C: 1, D: 1, E: 1, F: 1, G: 1, H: 1},
		Leader:   LeaderNone,
		Eyesight: EyesightNoPreference,
		Sex:      SexDummy,
	}
}

// Constraints is the configuration bundle controlling team construction.
type Constraints struct {
	// MaxNumTeams is the target team count. Zero means "derive from
	// MembersPerTeam and the roster size".
	MaxNumTeams int `yaml:"max_num_teams" validate:"min=0"`

	// MembersPerTeam is the target team size.
	MembersPerTeam int `yaml:"members_per_team" validate:"required,min=1"`

	AtLeastOnePairSex bool `yaml:"at_least_one_pair_sex"`
	GirlGeqBoy        bool `yaml:"girl_geq_boy"`
	BoyGeqGirl        bool `yaml:"boy_geq_girl"`
	AtLeastOneLeader  bool `yaml:"at_least_one_leader"`

	MaxLeader    int `yaml:"max_leader" validate:"min=0"`
	MaxSubLeader int `yaml:"max_sub_leader" validate:"min=0"`
	MinMember    int `yaml:"min_member" validate:"min=0"`

	// UniquePrevious bounds, per team and per student, how many of that
	// student's former teammates may co-locate in the new team. Nil
	// disables the constraint.
	UniquePrevious *int `yaml:"unique_previous,omitempty"`

	// GroupDiffCoeff weights the aggregate-score span term in the
	// objective relative to the per-team intra-skill span.
	GroupDiffCoeff float64 `yaml:"group_diff_coeff"`

	// Timeout is the solver wall-clock budget, in seconds.
	Timeout int `yaml:"timeout" validate:"required,min=1"`
}
