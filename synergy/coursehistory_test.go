package synergy

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCourseHistory_ScriptJSON(t *testing.T) {
	page := `<html><head>
<script src="/js/pxp.js"></script>
<script>
  var PXP = window.PXP || {};
  PXP.CourseHistory = [
    {"CourseGU":"G1","TermName":"2023-2024 S1","CourseID":"MA101","CourseTitle":"Algebra I","Mark":"A","CreditAttempted":0.5,"CreditCompleted":"0.5"},
    {"CourseGU":"G2","TermName":"2023-2024 S1","CourseID":"EN101","CourseTitle":"English I","Mark":null,"CreditAttempted":1,"CreditCompleted":0}
  ];
  PXP.GraduationRequirements = [{"Subject":"Math","Required":3,"Completed":1.5,"InProgress":"0.5","Remaining":1}];
  PXP.init();
</script>
</head><body><table><tr data-guid="ignored"><td>X</td><td>Y</td></tr></table></body></html>`

	got, err := ParseCourseHistory(strings.NewReader(page))
	require.NoError(t, err)

	want := CourseHistory{
		Courses: []HistoryCourse{
			{GUID: "G1", Term: "2023-2024 S1", CourseID: "MA101", Title: "Algebra I", Mark: "A", CreditsAttempted: "0.5", CreditsCompleted: "0.5"},
			{GUID: "G2", Term: "2023-2024 S1", CourseID: "EN101", Title: "English I", CreditsAttempted: "1", CreditsCompleted: "0"},
		},
		Requirements: []GradRequirement{
			{Subject: "Math", Required: "3", Completed: "1.5", InProgress: "0.5", Remaining: "1"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseCourseHistory mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCourseHistory_TableRows(t *testing.T) {
	page := `<html><body>
<div data-term="2022-2023 S2">
  <table>
    <tr><th>Course</th><th>Title</th><th>Mark</th></tr>
    <tr data-guid="g-1"><td>EN201</td><td>English II <span class="tip">Honors</span></td><td>B+</td><td>1.0</td><td>1.0</td></tr>
  </table>
</div>
<table>
  <caption>  Fall
     2021 </caption>
  <tr data-guid="g-2"><td>SC100</td><td>Biology</td><td> A- </td></tr>
  <tr data-guid="g-3"><td>only-one-cell</td></tr>
</table>
</body></html>`

	got, err := ParseCourseHistory(strings.NewReader(page))
	require.NoError(t, err)

	want := []HistoryCourse{
		{GUID: "g-1", Term: "2022-2023 S2", CourseID: "EN201", Title: "English II", Mark: "B+", CreditsAttempted: "1.0", CreditsCompleted: "1.0"},
		{GUID: "g-2", Term: "Fall 2021", CourseID: "SC100", Title: "Biology", Mark: "A-"},
	}
	if diff := cmp.Diff(want, got.Courses); diff != "" {
		t.Errorf("courses mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, got.Requirements)
	assert.NotNil(t, got.Requirements)
}

func TestParseCourseHistory_EmptyPage(t *testing.T) {
	got, err := ParseCourseHistory(strings.NewReader(`<html><body><p>No history</p></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, CourseHistory{Courses: []HistoryCourse{}, Requirements: []GradRequirement{}}, got)
}
