package gradecalc

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	notForGradingMarker = "(Not For Grading)"
	barePointsPossible  = "Points Possible"
)

var (
	pointsPossiblePattern = regexp.MustCompile(`^\s*(-?[\d,]*\.?\d+)\s+Points Possible\s*$`)
	pointsRatioPattern    = regexp.MustCompile(`^\s*(-?[\d,]*\.?\d+)\s*/\s*(-?[\d,]*\.?\d+)\s*$`)
)

// Points is a raw earned/possible pair.
type Points struct {
	Earned   *float64 `json:"earned,omitempty"`
	Possible *float64 `json:"possible,omitempty"`
}

// Assignment is one normalized gradebook record.
type Assignment struct {
	Name           string   `json:"name"`
	ID             string   `json:"id,omitempty"`
	PointsEarned   *float64 `json:"pointsEarned,omitempty"`
	PointsPossible *float64 `json:"pointsPossible,omitempty"`
	// UnscaledPoints is set only when the portal scaled the score.
	UnscaledPoints *Points `json:"unscaledPoints,omitempty"`
	ExtraCredit    bool    `json:"extraCredit"`
	NotForGrade    bool    `json:"notForGrade"`
	Hidden         bool    `json:"hidden"`
	Category       string  `json:"category,omitempty"`
	Date           string  `json:"date"`
	Comments       string  `json:"comments,omitempty"`
}

// Scored is the calculable form of an assignment.
type Scored struct {
	Category string
	Earned   float64
	Possible float64
}

// Scored returns the points that count toward a grade. Assignments marked
// not-for-grading, without an earned score, or without a possible value
// (unless extra credit) are not calculable.
func (a Assignment) Scored() (Scored, bool) {
	if a.NotForGrade || a.PointsEarned == nil {
		return Scored{}, false
	}
	s := Scored{Category: a.Category, Earned: *a.PointsEarned}
	switch {
	case a.ExtraCredit:
	case a.PointsPossible != nil:
		s.Possible = *a.PointsPossible
	default:
		return Scored{}, false
	}
	return s, true
}

// NormalizeAssignment converts a decoded Assignment element (attributes
// keyed with a leading underscore) into an Assignment.
func NormalizeAssignment(raw map[string]any) Assignment {
	notes := rawString(raw, "_Notes")
	a := Assignment{
		Name:        rawString(raw, "_Measure"),
		ID:          rawString(raw, "_GradebookID"),
		Category:    rawString(raw, "_Type"),
		Date:        rawString(raw, "_Date"),
		NotForGrade: strings.Contains(notes, notForGradingMarker),
		Comments:    strings.TrimSpace(strings.ReplaceAll(notes, notForGradingMarker, "")),
	}
	if a.Date == "" {
		a.Date = rawString(raw, "_DueDate")
	}
	a.PointsPossible, a.ExtraCredit = resolvePointsPossible(raw)
	a.PointsEarned = resolvePointsEarned(raw)

	point, hasPoint := rawLookup(raw, "_Point")
	unscaled, hasUnscaled := rawLookup(raw, "_ScoreCalValue")
	if hasPoint && hasUnscaled && point != unscaled {
		a.UnscaledPoints = &Points{
			Earned:   parseNumber(unscaled),
			Possible: parseNumber(rawString(raw, "_ScoreMaxValue")),
		}
	}
	return a
}

// resolvePointsPossible reads the possible value in fixed priority:
// _PointPossible, then _ScoreMaxValue, then the "<N> Points Possible" or
// "<earned> / <possible>" forms of _Points. An empty explicit field marks
// extra credit.
func resolvePointsPossible(raw map[string]any) (*float64, bool) {
	for _, key := range []string{"_PointPossible", "_ScoreMaxValue"} {
		if v, ok := rawLookup(raw, key); ok {
			if strings.TrimSpace(v) == "" {
				return nil, true
			}
			return parseNumber(v), false
		}
	}

	points, ok := rawLookup(raw, "_Points")
	if !ok || strings.TrimSpace(points) == barePointsPossible {
		return nil, false
	}
	if m := pointsPossiblePattern.FindStringSubmatch(points); m != nil {
		return parseNumber(m[1]), false
	}
	if m := pointsRatioPattern.FindStringSubmatch(points); m != nil {
		return parseNumber(m[2]), false
	}
	return nil, false
}

func resolvePointsEarned(raw map[string]any) *float64 {
	for _, key := range []string{"_Point", "_ScoreCalValue"} {
		if v, ok := rawLookup(raw, key); ok {
			return parseNumber(v)
		}
	}
	if m := pointsRatioPattern.FindStringSubmatch(rawString(raw, "_Points")); m != nil {
		return parseNumber(m[1])
	}
	return nil
}

func rawLookup(raw map[string]any, key string) (string, bool) {
	v, ok := raw[key].(string)
	return v, ok
}

func rawString(raw map[string]any, key string) string {
	v, _ := rawLookup(raw, key)
	return strings.TrimSpace(v)
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
