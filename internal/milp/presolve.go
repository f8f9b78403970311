package milp

// presolveFixedVariables removes every variable whose bounds have
// collapsed to a single point (lower == upper) from the model before it
// reaches branch-and-bound: such a variable contributes a known constant
// to every constraint and to the objective, so carrying it through the
// simplex solves at each search node is wasted work.
//
// It returns the fixed variables' names and values so Solve can fold them
// back into the returned Solution.
func (p *Problem) presolveFixedVariables() map[string]float64 {
	fixed := make(map[string]float64)

	var kept []*Variable
	for _, v := range p.variables {
		if v.lower == v.upper {
			fixed[v.name] = v.lower
		} else {
			kept = append(kept, v)
		}
	}
	if len(fixed) == 0 {
		return fixed
	}
	p.variables = kept

	for _, c := range p.constraints {
		var keptExpr []expression
		for _, e := range c.expressions {
			if val, isFixed := fixed[e.variable.name]; isFixed {
				c.rhs -= e.coef * val
			} else {
				keptExpr = append(keptExpr, e)
			}
		}
		c.expressions = keptExpr
	}

	return fixed
}
