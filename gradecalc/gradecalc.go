// Package gradecalc rebuilds course percentages from assignment records:
// category-weighted and unweighted rollups, per-assignment grade impact,
// and inference of assignments the portal counts but does not show.
package gradecalc

import "math"

// Category is the portal's rollup for one assignment type in a mark.
type Category struct {
	Name               string  `json:"name"`
	WeightPercentage   float64 `json:"weightPercentage"`
	PointsEarned       float64 `json:"pointsEarned"`
	PointsPossible     float64 `json:"pointsPossible"`
	WeightedPercentage float64 `json:"weightedPercentage"`
	GradeLetter        string  `json:"gradeLetter,omitempty"`
}

// CategoryTotals accumulates points for one weighted category.
type CategoryTotals struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Earned   float64 `json:"earned"`
	Possible float64 `json:"possible"`
}

func (c CategoryTotals) Percentage() float64 {
	return Percentage(c.Earned, c.Possible)
}

// Percentage returns earned/possible as a percentage, or 0 whenever the
// quotient is not finite.
func Percentage(earned, possible float64) float64 {
	p := earned * 100 / possible
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

// WeightedPercentage averages category percentages by weight. Categories
// without possible points are left out of both sums.
func WeightedPercentage(cats []CategoryTotals) float64 {
	var sum, weights float64
	for _, c := range cats {
		if c.Possible <= 0 {
			continue
		}
		sum += c.Percentage() * c.Weight
		weights += c.Weight
	}
	if weights == 0 {
		return 0
	}
	return sum / weights
}

// Totals sums earned and possible points over the calculable assignments.
// Extra credit adds to earned only.
func Totals(assignments []Assignment) (earned, possible float64) {
	for _, a := range assignments {
		if s, ok := a.Scored(); ok {
			earned += s.Earned
			possible += s.Possible
		}
	}
	return earned, possible
}

// TotalsPercentage is the unweighted percentage over all assignments.
func TotalsPercentage(assignments []Assignment) float64 {
	return Percentage(Totals(assignments))
}

// IsWeighted reports whether categories carry any weighting metadata.
func IsWeighted(categories []Category) bool {
	for _, c := range categories {
		if c.WeightPercentage > 0 {
			return true
		}
	}
	return false
}

// CategoryTotalsFor sums the visible calculable assignments into one
// CategoryTotals per category, in category order.
func CategoryTotalsFor(assignments []Assignment, categories []Category) []CategoryTotals {
	acc := newAccumulator(categories)
	for _, a := range assignments {
		if s, ok := a.Scored(); ok && acc.accepts(s) {
			acc.add(s)
		}
	}
	return acc.cats
}

// CoursePercentage uses the weighted rollup when categories carry weights
// and the unweighted totals otherwise.
func CoursePercentage(assignments []Assignment, categories []Category) float64 {
	if IsWeighted(categories) {
		return WeightedPercentage(CategoryTotalsFor(assignments, categories))
	}
	return TotalsPercentage(assignments)
}

// accumulator is the running state shared by the flow and hidden-inference
// walks, so both use the same percentage function for every snapshot.
type accumulator struct {
	weighted bool
	index    map[string]int
	cats     []CategoryTotals
	total    CategoryTotals
}

func newAccumulator(categories []Category) *accumulator {
	acc := &accumulator{weighted: IsWeighted(categories), index: map[string]int{}}
	for _, c := range categories {
		if _, dup := acc.index[c.Name]; dup {
			continue
		}
		acc.index[c.Name] = len(acc.cats)
		acc.cats = append(acc.cats, CategoryTotals{Name: c.Name, Weight: c.WeightPercentage})
	}
	return acc
}

func (a *accumulator) accepts(s Scored) bool {
	if !a.weighted {
		return true
	}
	_, ok := a.index[s.Category]
	return ok
}

func (a *accumulator) add(s Scored) {
	a.total.Earned += s.Earned
	a.total.Possible += s.Possible
	if i, ok := a.index[s.Category]; ok {
		a.cats[i].Earned += s.Earned
		a.cats[i].Possible += s.Possible
	}
}

func (a *accumulator) percentage() float64 {
	if a.weighted {
		return WeightedPercentage(a.cats)
	}
	return a.total.Percentage()
}

// CourseSummary is everything the engine derives for one mark.
type CourseSummary struct {
	Percentage  float64            `json:"percentage"`
	Weighted    bool               `json:"weighted"`
	Categories  []CategoryTotals   `json:"categories,omitempty"`
	Assignments []FlowedAssignment `json:"assignments"`
	Hidden      []FlowedAssignment `json:"hidden,omitempty"`
}

// Summarize computes the course percentage, per-category totals, the
// per-assignment flow and any inferred hidden assignments.
func Summarize(assignments []Assignment, categories []Category) CourseSummary {
	summary := CourseSummary{
		Percentage:  CoursePercentage(assignments, categories),
		Weighted:    IsWeighted(categories),
		Assignments: Flow(assignments, categories),
		Hidden:      HiddenAssignments(assignments, categories),
	}
	if summary.Weighted {
		summary.Categories = CategoryTotalsFor(assignments, categories)
	}
	return summary
}
