package synergy

import (
	"strconv"
	"strings"

	"synergyApi/gradecalc"
)

type ReportPeriod struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Mark struct {
	Name            string                 `json:"name"`
	CalculatedScore string                 `json:"calculatedScore"`
	RawScore        float64                `json:"rawScore"`
	Categories      []gradecalc.Category   `json:"categories"`
	Assignments     []gradecalc.Assignment `json:"assignments"`
}

// Summary recomputes the mark from its assignments.
func (m Mark) Summary() gradecalc.CourseSummary {
	return gradecalc.Summarize(m.Assignments, m.Categories)
}

type Course struct {
	Period     string `json:"period"`
	Title      string `json:"title"`
	Room       string `json:"room"`
	Staff      string `json:"staff"`
	StaffEmail string `json:"staffEmail"`
	Marks      []Mark `json:"marks"`
}

type Gradebook struct {
	ReportingPeriod  ReportPeriod   `json:"reportingPeriod"`
	ReportingPeriods []ReportPeriod `json:"reportingPeriods"`
	Courses          []Course       `json:"courses"`
}

// ParseGradebook maps the unwrapped Gradebook node into typed courses.
func ParseGradebook(node Result) Gradebook {
	gb := Gradebook{
		ReportingPeriod:  parseReportPeriod(node.Map("ReportingPeriod")),
		ReportingPeriods: []ReportPeriod{},
		Courses:          []Course{},
	}
	for _, rp := range node.Map("ReportingPeriods").List("ReportPeriod") {
		gb.ReportingPeriods = append(gb.ReportingPeriods, parseReportPeriod(rp))
	}

	for _, c := range node.Map("Courses").List("Course") {
		course := Course{
			Period:     c.String("_Period"),
			Title:      c.String("_Title"),
			Room:       c.String("_Room"),
			Staff:      c.String("_Staff"),
			StaffEmail: c.String("_StaffEMail"),
			Marks:      []Mark{},
		}
		for _, m := range c.Map("Marks").List("Mark") {
			course.Marks = append(course.Marks, parseMark(m))
		}
		gb.Courses = append(gb.Courses, course)
	}
	return gb
}

func parseReportPeriod(rp Result) ReportPeriod {
	index, _ := strconv.Atoi(rp.String("_Index"))
	return ReportPeriod{
		Index:     index,
		Name:      rp.String("_GradePeriod"),
		StartDate: rp.String("_StartDate"),
		EndDate:   rp.String("_EndDate"),
	}
}

func parseMark(m Result) Mark {
	mark := Mark{
		Name:            m.String("_MarkName"),
		CalculatedScore: m.String("_CalculatedScoreString"),
		RawScore:        parsePercent(m.String("_CalculatedScoreRaw")),
		Categories:      []gradecalc.Category{},
		Assignments:     []gradecalc.Assignment{},
	}
	for _, row := range m.Map("GradeCalculationSummary").List("AssignmentGradeCalc") {
		if strings.EqualFold(row.String("_Type"), "TOTAL") {
			continue
		}
		mark.Categories = append(mark.Categories, gradecalc.Category{
			Name:               row.String("_Type"),
			WeightPercentage:   parsePercent(row.String("_Weight")),
			PointsEarned:       parsePercent(row.String("_Points")),
			PointsPossible:     parsePercent(row.String("_PointsPossible")),
			WeightedPercentage: parsePercent(row.String("_WeightedPct")),
			GradeLetter:        row.String("_CalculatedMark"),
		})
	}
	for _, a := range m.Map("Assignments").List("Assignment") {
		mark.Assignments = append(mark.Assignments, gradecalc.NormalizeAssignment(a))
	}
	return mark
}

// parsePercent reads values like "30%", "1,024.50" or "87.0"; anything
// unparsable is 0.
func parsePercent(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}
