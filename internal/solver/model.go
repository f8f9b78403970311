// Package solver builds the MILP model for a roster/constraint bundle,
// drives the solve, and extracts a team assignment from the result. It is
// the only package in this module with any notion of students or teams;
// everything it does is expressed through internal/milp's generic
// builder API.
package solver

import (
	"github.com/tk42/sortinghat/internal/milp"
	"github.com/tk42/sortinghat/internal/roster"
)

// minMIScore and maxMIScore bound every MI component by construction
// (roster.MIScore validation enforces [1,8]); they size the y/z envelope
// variables' domains the way the original model sized them from the
// observed roster's min/max.
const (
	minMIScore = 1
	maxMIScore = 8
	numSkills  = 8
)

// term is a (coefficient, variable) pair collected before a constraint's
// shape (equality, <=, >=) is decided, so the same per-team sum can
// feed more than one inequality without the Constraint builder's
// in-place negation on GreaterThanOrEqualTo getting in the way.
type term struct {
	coef float64
	v    *milp.Variable
}

type termList []term

func (ts termList) into(c *milp.Constraint) *milp.Constraint {
	for _, t := range ts {
		c.AddExpression(t.coef, t.v)
	}
	return c
}

func (ts termList) negate() termList {
	out := make(termList, len(ts))
	for i, t := range ts {
		out[i] = term{coef: -t.coef, v: t.v}
	}
	return out
}

func (ts termList) plus(other termList) termList {
	out := make(termList, 0, len(ts)+len(other))
	out = append(out, ts...)
	out = append(out, other...)
	return out
}

// vars holds every decision and auxiliary variable the model builder
// creates, keyed the way the Objective Assembler and Assignment Extractor
// need to read them back.
type vars struct {
	// x[i][t] is 1 iff student i is assigned to team t.
	x [][]*milp.Variable

	// yLo[t], yHi[t] bound the per-skill team sums of team t.
	yLo []*milp.Variable
	yHi []*milp.Variable

	// zLo, zHi bound every team's aggregate MI total.
	zLo *milp.Variable
	zHi *milp.Variable

	// absorb[t] indicates team t has been chosen to hold >=2 must-front
	// vision students. Empty when no student requires it.
	absorb []*milp.Variable

	// visionGap[i][j] (i<j, both in the vision-affinity group) is a
	// non-negative integer >= |team(i) - team(j)|.
	visionGap map[[2]int]*milp.Variable
	// visionGroup lists, in ascending order, the indices the visionGap
	// pairs range over.
	visionGroup []int
}

// buildModel instantiates every decision variable and structural
// constraint on a fresh milp.Problem. It does not set objective
// coefficients; that is assembleObjective's job.
func buildModel(n *roster.Normalized, cfg roster.Constraints) (*milp.Problem, *vars, error) {
	padded := n.PaddedCount()
	teams := n.TeamCount
	teamSize := n.TeamSize

	prob := milp.NewProblem()
	v := &vars{
		x:         make([][]*milp.Variable, padded),
		yLo:       make([]*milp.Variable, teams),
		yHi:       make([]*milp.Variable, teams),
		visionGap: make(map[[2]int]*milp.Variable),
	}

	for i := 0; i < padded; i++ {
		v.x[i] = make([]*milp.Variable, teams)
		for t := 0; t < teams; t++ {
			v.x[i][t] = prob.AddVariable(varName("x", i, t)).IsInteger().UpperBound(1)
		}
	}

	for t := 0; t < teams; t++ {
		v.yLo[t] = prob.AddVariable(varName("y_lo", t)).IsInteger().
			LowerBound(float64(minMIScore * teamSize)).UpperBound(float64(maxMIScore * teamSize))
		v.yHi[t] = prob.AddVariable(varName("y_hi", t)).IsInteger().
			LowerBound(float64(minMIScore * teamSize)).UpperBound(float64(maxMIScore * teamSize))
	}

	v.zLo = prob.AddVariable("z_lo").IsInteger().
		LowerBound(float64(numSkills * minMIScore * teamSize)).UpperBound(float64(numSkills * maxMIScore * teamSize))
	v.zHi = prob.AddVariable("z_hi").IsInteger().
		LowerBound(float64(numSkills * minMIScore * teamSize)).UpperBound(float64(numSkills * maxMIScore * teamSize))

	addAssignmentConstraints(prob, v, padded, teams)
	addTeamSizeConstraints(prob, v, padded, teams, teamSize)
	addLeaderConstraints(prob, v, n, cfg)
	addSexBalanceConstraints(prob, v, n, cfg)
	addDislikeConstraints(prob, v, n, teams)
	addPreviousDispersionConstraints(prob, v, n, cfg)
	addBalanceEnvelopeConstraints(prob, v, n, teams)
	addVisionAccommodationConstraints(prob, v, n, teamSize)
	addVisionAffinityVariables(prob, v, n, teams)

	return prob, v, nil
}

func varName(prefix string, idx ...int) string {
	name := prefix
	for _, i := range idx {
		name += "_" + itoa(i)
	}
	return name
}

// itoa avoids pulling in strconv for a single call-site pattern repeated
// a few hundred times during model construction.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// addAssignmentConstraints: every student (real or dummy) is assigned to
// exactly one team.
func addAssignmentConstraints(prob *milp.Problem, v *vars, padded, teams int) {
	for i := 0; i < padded; i++ {
		c := prob.AddConstraint()
		for t := 0; t < teams; t++ {
			c.AddExpression(1, v.x[i][t])
		}
		c.EqualTo(1)
	}
}

// addTeamSizeConstraints: every team holds exactly teamSize members. The
// roster is padded to a whole multiple of teamSize specifically so this
// can be an equality rather than a [T-1,T] slack form.
func addTeamSizeConstraints(prob *milp.Problem, v *vars, padded, teams, teamSize int) {
	for t := 0; t < teams; t++ {
		c := prob.AddConstraint()
		for i := 0; i < padded; i++ {
			c.AddExpression(1, v.x[i][t])
		}
		c.EqualTo(float64(teamSize))
	}
}

func addLeaderConstraints(prob *milp.Problem, v *vars, n *roster.Normalized, cfg roster.Constraints) {
	padded := n.PaddedCount()

	for t := 0; t < n.TeamCount; t++ {
		var leaders, subLeaders, nonLeaders termList
		for i := 0; i < padded; i++ {
			switch n.Students[i].Leader {
			case roster.LeaderCandidate:
				leaders = append(leaders, term{1, v.x[i][t]})
			case roster.LeaderSubLeader:
				subLeaders = append(subLeaders, term{1, v.x[i][t]})
			case roster.LeaderNone:
				nonLeaders = append(nonLeaders, term{1, v.x[i][t]})
			}
		}

		if cfg.AtLeastOneLeader {
			leaders.into(prob.AddConstraint()).GreaterThanOrEqualTo(1)
		} else {
			leaders.into(prob.AddConstraint()).SmallerThanOrEqualTo(float64(cfg.MaxLeader))
		}
		subLeaders.into(prob.AddConstraint()).SmallerThanOrEqualTo(float64(cfg.MaxSubLeader))
		nonLeaders.into(prob.AddConstraint()).GreaterThanOrEqualTo(float64(cfg.MinMember))
	}
}

func addSexBalanceConstraints(prob *milp.Problem, v *vars, n *roster.Normalized, cfg roster.Constraints) {
	padded := n.PaddedCount()

	for t := 0; t < n.TeamCount; t++ {
		var male, female termList
		for i := 0; i < padded; i++ {
			switch n.Students[i].Sex {
			case roster.SexMale:
				male = append(male, term{1, v.x[i][t]})
			case roster.SexFemale:
				female = append(female, term{1, v.x[i][t]})
			}
		}

		if cfg.AtLeastOnePairSex {
			male.into(prob.AddConstraint()).GreaterThanOrEqualTo(1)
			female.into(prob.AddConstraint()).GreaterThanOrEqualTo(1)
		}
		if cfg.GirlGeqBoy {
			// female - male >= 0
			female.plus(male.negate()).into(prob.AddConstraint()).GreaterThanOrEqualTo(0)
		}
		if cfg.BoyGeqGirl {
			male.plus(female.negate()).into(prob.AddConstraint()).GreaterThanOrEqualTo(0)
		}
	}
}

func addDislikeConstraints(prob *milp.Problem, v *vars, n *roster.Normalized, teams int) {
	for i := 0; i < n.RealCount; i++ {
		for j := 0; j < n.RealCount; j++ {
			if n.Dislikes.At(i, j) == 0 {
				continue
			}
			for t := 0; t < teams; t++ {
				prob.AddConstraint().
					AddExpression(1, v.x[i][t]).
					AddExpression(1, v.x[j][t]).
					SmallerThanOrEqualTo(1)
			}
		}
	}
}

// addPreviousDispersionConstraints bounds, per student i and per team t,
// how many of i's former teammates may land in t: unconditionally, not
// only when i itself lands in t. This is the literal reading of
// spec.md's "∀t, ∀i, Σ_{k: P[i,k]=1} x[k,t] ≤ unique_previous" — there is
// no Big-M coupling on i's own assignment anywhere in that formula, so
// the bound binds on every team regardless of where i ends up.
func addPreviousDispersionConstraints(prob *milp.Problem, v *vars, n *roster.Normalized, cfg roster.Constraints) {
	if cfg.UniquePrevious == nil {
		return
	}
	limit := float64(*cfg.UniquePrevious)

	for i := 0; i < n.RealCount; i++ {
		hasAny := false
		for k := 0; k < n.RealCount; k++ {
			if n.Previous.At(i, k) != 0 {
				hasAny = true
				break
			}
		}
		if !hasAny {
			continue
		}

		for t := 0; t < n.TeamCount; t++ {
			var peers termList
			for k := 0; k < n.RealCount; k++ {
				if n.Previous.At(i, k) != 0 {
					peers = append(peers, term{1, v.x[k][t]})
				}
			}
			peers.into(prob.AddConstraint()).SmallerThanOrEqualTo(limit)
		}
	}
}

// addBalanceEnvelopeConstraints bounds, for every team, each of the eight
// per-skill sums within [yLo[t], yHi[t]], and the team's aggregate MI
// total within [zLo, zHi]. The Objective Assembler minimizes the width
// of these envelopes.
func addBalanceEnvelopeConstraints(prob *milp.Problem, v *vars, n *roster.Normalized, teams int) {
	padded := n.PaddedCount()

	for t := 0; t < teams; t++ {
		var skillSum [numSkills]termList
		var total termList

		for i := 0; i < padded; i++ {
			values := n.Students[i].MI.Values()
			for s, val := range values {
				if val == 0 {
					continue
				}
				skillSum[s] = append(skillSum[s], term{float64(val), v.x[i][t]})
			}
			if sum := n.Students[i].MI.Total(); sum != 0 {
				total = append(total, term{float64(sum), v.x[i][t]})
			}
		}

		for s := 0; s < numSkills; s++ {
			// sum_s(t) >= yLo[t]  <=>  yLo[t] - sum_s(t) <= 0
			skillSum[s].negate().plus(termList{{1, v.yLo[t]}}).into(prob.AddConstraint()).SmallerThanOrEqualTo(0)
			// sum_s(t) <= yHi[t]
			skillSum[s].plus(termList{{-1, v.yHi[t]}}).into(prob.AddConstraint()).SmallerThanOrEqualTo(0)
		}

		total.negate().plus(termList{{1, v.zLo}}).into(prob.AddConstraint()).SmallerThanOrEqualTo(0)
		total.plus(termList{{-1, v.zHi}}).into(prob.AddConstraint()).SmallerThanOrEqualTo(0)
	}
}

// addVisionAccommodationConstraints forces at least one team to absorb
// every pair (or more) of must-front-vision students so the remaining
// teams hold at most one each, via a Big-M formulation.
func addVisionAccommodationConstraints(prob *milp.Problem, v *vars, n *roster.Normalized, teamSize int) {
	var mustFront []int
	for i := 0; i < n.PaddedCount(); i++ {
		if n.Students[i].Eyesight == roster.EyesightMustBeFront {
			mustFront = append(mustFront, i)
		}
	}
	if len(mustFront) == 0 {
		return
	}

	v.absorb = make([]*milp.Variable, n.TeamCount)
	for t := 0; t < n.TeamCount; t++ {
		v.absorb[t] = prob.AddVariable(varName("absorb", t)).IsInteger().UpperBound(1)
	}

	for t := 0; t < n.TeamCount; t++ {
		var sum termList
		for _, i := range mustFront {
			sum = append(sum, term{1, v.x[i][t]})
		}

		// sum >= 2*absorb[t]  <=>  2*absorb[t] - sum <= 0
		termList{{2, v.absorb[t]}}.plus(sum.negate()).into(prob.AddConstraint()).SmallerThanOrEqualTo(0)
		// sum <= teamSize*absorb[t] + 1
		sum.plus(termList{{-float64(teamSize), v.absorb[t]}}).into(prob.AddConstraint()).SmallerThanOrEqualTo(1)
	}

	var atLeastOne termList
	for t := 0; t < n.TeamCount; t++ {
		atLeastOne = append(atLeastOne, term{1, v.absorb[t]})
	}
	atLeastOne.into(prob.AddConstraint()).GreaterThanOrEqualTo(1)
}

// addVisionAffinityVariables creates the d[i,j] absolute-value
// linearization variables for every pair of eyesight-sensitive students,
// constraining each to bound the two students' team-index difference.
func addVisionAffinityVariables(prob *milp.Problem, v *vars, n *roster.Normalized, teams int) {
	var group []int
	for i := 0; i < n.PaddedCount(); i++ {
		e := n.Students[i].Eyesight
		if e == roster.EyesightPreferFront || e == roster.EyesightMustBeFront {
			group = append(group, i)
		}
	}
	v.visionGroup = group

	for a := 0; a < len(group); a++ {
		for bIdx := a + 1; bIdx < len(group); bIdx++ {
			i, j := group[a], group[bIdx]

			d := prob.AddVariable(varName("d", i, j)).IsInteger().LowerBound(0).UpperBound(float64(teams - 1))
			v.visionGap[[2]int{i, j}] = d

			var posI, posJ termList
			for t := 0; t < teams; t++ {
				posI = append(posI, term{float64(t), v.x[i][t]})
				posJ = append(posJ, term{float64(t), v.x[j][t]})
			}

			// team(i) - team(j) <= d
			posI.plus(posJ.negate()).plus(termList{{-1, d}}).into(prob.AddConstraint()).SmallerThanOrEqualTo(0)
			// team(j) - team(i) <= d
			posJ.plus(posI.negate()).plus(termList{{-1, d}}).into(prob.AddConstraint()).SmallerThanOrEqualTo(0)
		}
	}
}
