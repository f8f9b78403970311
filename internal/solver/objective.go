package solver

import "github.com/tk42/sortinghat/internal/roster"

// assembleObjective sets the objective coefficients buildModel's
// variables are still zero on; the caller selects the minimize
// direction:
//
//	minimize  sum_t (yHi[t] - yLo[t])  +  group_diff_coeff * (zHi - zLo)  +  sum_{i<j in vision group} (eye(i)+eye(j)) * d[i,j]
//
// The first term rewards tight per-team intra-skill spread, the second
// rewards tight aggregate-score spread across teams, and the third
// rewards seating eyesight-sensitive students in the same or adjacent
// teams.
func assembleObjective(v *vars, n *roster.Normalized, cfg roster.Constraints) {
	for t := range v.yLo {
		v.yLo[t].SetCoeff(-1)
		v.yHi[t].SetCoeff(1)
	}

	v.zLo.SetCoeff(-cfg.GroupDiffCoeff)
	v.zHi.SetCoeff(cfg.GroupDiffCoeff)

	for pair, d := range v.visionGap {
		weight := n.Students[pair[0]].Eyesight + n.Students[pair[1]].Eyesight
		d.SetCoeff(float64(weight))
	}
}
