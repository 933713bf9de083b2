package gradecalc

import "math"

// HiddenEpsilon is the smallest change in the overall percentage, in
// percentage points, that counts as a hidden assignment. Smaller deltas
// are treated as rounding in the portal's reported totals. Tunable.
const HiddenEpsilon = 0.0001

// FlowedAssignment is an assignment annotated with how much it moved the
// overall percentage. GradePercentageChange is nil for assignments that
// do not take part in the calculation.
type FlowedAssignment struct {
	Assignment
	GradePercentageChange *float64 `json:"gradePercentageChange,omitempty"`
}

// Flow computes each assignment's marginal effect on the grade. The list
// is expected newest-first, so it is walked from the end and every
// assignment is measured against the ones older than it. In weighted mode
// assignments whose category is unknown pass through unchanged.
func Flow(assignments []Assignment, categories []Category) []FlowedAssignment {
	out := make([]FlowedAssignment, len(assignments))
	acc := newAccumulator(categories)
	for i := len(assignments) - 1; i >= 0; i-- {
		out[i] = FlowedAssignment{Assignment: assignments[i]}
		s, ok := assignments[i].Scored()
		if !ok || !acc.accepts(s) {
			continue
		}
		before := acc.percentage()
		acc.add(s)
		change := acc.percentage() - before
		out[i].GradePercentageChange = &change
	}
	return out
}

// HiddenAssignments compares each category's reported totals with the sum
// of its visible assignments and emits a placeholder for every difference
// that moves the weighted percentage by at least HiddenEpsilon. Deltas are
// applied cumulatively in category order, so the changes add up to the
// gap between the visible and reported grade.
func HiddenAssignments(assignments []Assignment, categories []Category) []FlowedAssignment {
	if !IsWeighted(categories) {
		return nil
	}
	acc := newAccumulator(categories)
	for _, a := range assignments {
		if s, ok := a.Scored(); ok && acc.accepts(s) {
			acc.add(s)
		}
	}

	var hidden []FlowedAssignment
	seen := map[string]bool{}
	for _, c := range categories {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true

		i := acc.index[c.Name]
		visible := acc.cats[i]
		earned := c.PointsEarned - visible.Earned
		possible := c.PointsPossible - visible.Possible

		before := acc.percentage()
		acc.cats[i].Earned += earned
		acc.cats[i].Possible += possible
		change := acc.percentage() - before
		if math.Abs(change) < HiddenEpsilon {
			acc.cats[i] = visible
			continue
		}

		hidden = append(hidden, FlowedAssignment{
			Assignment: Assignment{
				Name:           "Hidden " + c.Name + " Assignments",
				Category:       c.Name,
				PointsEarned:   &earned,
				PointsPossible: &possible,
				Hidden:         true,
			},
			GradePercentageChange: &change,
		})
	}
	return hidden
}
