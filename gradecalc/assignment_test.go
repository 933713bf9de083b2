package gradecalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAssignment_PointsPriority(t *testing.T) {
	tests := []struct {
		name         string
		raw          map[string]any
		wantEarned   *float64
		wantPossible *float64
		wantExtra    bool
	}{
		{
			name:         "PointPossible wins",
			raw:          map[string]any{"_Point": "8", "_PointPossible": "10", "_ScoreMaxValue": "20", "_Points": "8 / 30"},
			wantEarned:   f(8),
			wantPossible: f(10),
		},
		{
			name:         "ScoreMaxValue next",
			raw:          map[string]any{"_ScoreCalValue": "17", "_ScoreMaxValue": "20", "_Points": "8 / 30"},
			wantEarned:   f(17),
			wantPossible: f(20),
		},
		{
			name:       "empty PointPossible is extra credit",
			raw:        map[string]any{"_Point": "3", "_PointPossible": ""},
			wantEarned: f(3),
			wantExtra:  true,
		},
		{
			name:       "empty ScoreMaxValue is extra credit",
			raw:        map[string]any{"_Point": "3", "_ScoreMaxValue": " "},
			wantEarned: f(3),
			wantExtra:  true,
		},
		{
			name: "bare Points Possible",
			raw:  map[string]any{"_Points": "Points Possible"},
		},
		{
			name:         "N Points Possible",
			raw:          map[string]any{"_Points": "25 Points Possible"},
			wantPossible: f(25),
		},
		{
			name:         "earned over possible",
			raw:          map[string]any{"_Points": "1,018.5 / 1,100.0000"},
			wantEarned:   f(1018.5),
			wantPossible: f(1100),
		},
		{
			name: "nothing usable",
			raw:  map[string]any{"_Points": "Not graded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NormalizeAssignment(tt.raw)
			assertPoints(t, tt.wantEarned, a.PointsEarned)
			assertPoints(t, tt.wantPossible, a.PointsPossible)
			assert.Equal(t, tt.wantExtra, a.ExtraCredit)
		})
	}
}

func assertPoints(t *testing.T, want, got *float64) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.InDelta(t, *want, *got, 1e-9)
}

func TestNormalizeAssignment_Metadata(t *testing.T) {
	a := NormalizeAssignment(map[string]any{
		"_Measure":       " Lab Report ",
		"_GradebookID":   "7731",
		"_Type":          "Labs",
		"_DueDate":       "2/3/2025",
		"_Notes":         "(Not For Grading) resubmit by Friday",
		"_Point":         "9",
		"_PointPossible": "10",
		"_ScoreCalValue": "4.5",
		"_ScoreMaxValue": "5",
	})

	assert.Equal(t, "Lab Report", a.Name)
	assert.Equal(t, "7731", a.ID)
	assert.Equal(t, "Labs", a.Category)
	assert.Equal(t, "2/3/2025", a.Date)
	assert.True(t, a.NotForGrade)
	assert.Equal(t, "resubmit by Friday", a.Comments)

	require.NotNil(t, a.UnscaledPoints)
	assertPoints(t, f(4.5), a.UnscaledPoints.Earned)
	assertPoints(t, f(5), a.UnscaledPoints.Possible)

	_, ok := a.Scored()
	assert.False(t, ok, "not-for-grading assignments are not calculable")
}

func TestNormalizeAssignment_UnscaledOnlyWhenDifferent(t *testing.T) {
	a := NormalizeAssignment(map[string]any{
		"_Date":          "1/10/2025",
		"_DueDate":       "1/12/2025",
		"_Point":         "9",
		"_ScoreCalValue": "9",
		"_PointPossible": "10",
	})
	assert.Nil(t, a.UnscaledPoints)
	assert.Equal(t, "1/10/2025", a.Date)

	s, ok := a.Scored()
	require.True(t, ok)
	assert.Equal(t, Scored{Earned: 9, Possible: 10}, s)
}
