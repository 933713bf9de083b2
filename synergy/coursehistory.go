package synergy

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	courseHistoryVar = regexp.MustCompile(`PXP\.CourseHistory\s*=\s*`)
	gradReqsVar      = regexp.MustCompile(`PXP\.GraduationRequirements\s*=\s*`)
)

// flexString accepts JSON strings and numbers alike.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type historyEntry struct {
	CourseGU        flexString `json:"CourseGU"`
	TermName        flexString `json:"TermName"`
	CourseID        flexString `json:"CourseID"`
	CourseTitle     flexString `json:"CourseTitle"`
	Mark            flexString `json:"Mark"`
	CreditAttempted flexString `json:"CreditAttempted"`
	CreditCompleted flexString `json:"CreditCompleted"`
}

type requirementEntry struct {
	Subject    flexString `json:"Subject"`
	Required   flexString `json:"Required"`
	Completed  flexString `json:"Completed"`
	InProgress flexString `json:"InProgress"`
	Remaining  flexString `json:"Remaining"`
}

// ParseCourseHistory reads the course history page. Script-embedded JSON
// wins; when the page has none, courses come from the data-guid rows.
func ParseCourseHistory(r io.Reader) (CourseHistory, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return CourseHistory{}, fmt.Errorf("parse course history HTML: %w", err)
	}

	history := CourseHistory{Courses: []HistoryCourse{}, Requirements: []GradRequirement{}}
	var entries []historyEntry
	var reqs []requirementEntry
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		script := s.Text()
		if entries == nil {
			decodeScriptVar(script, courseHistoryVar, &entries)
		}
		if reqs == nil {
			decodeScriptVar(script, gradReqsVar, &reqs)
		}
	})

	for _, e := range entries {
		history.Courses = append(history.Courses, HistoryCourse{
			GUID:             string(e.CourseGU),
			Term:             string(e.TermName),
			CourseID:         string(e.CourseID),
			Title:            string(e.CourseTitle),
			Mark:             string(e.Mark),
			CreditsAttempted: string(e.CreditAttempted),
			CreditsCompleted: string(e.CreditCompleted),
		})
	}
	for _, e := range reqs {
		history.Requirements = append(history.Requirements, GradRequirement{
			Subject:    string(e.Subject),
			Required:   string(e.Required),
			Completed:  string(e.Completed),
			InProgress: string(e.InProgress),
			Remaining:  string(e.Remaining),
		})
	}

	if entries == nil {
		history.Courses = parseHistoryRows(doc)
	}
	return history, nil
}

// decodeScriptVar decodes the JSON value assigned to the variable matched
// by pattern. Decoding stops at the end of the first value, so whatever
// follows in the script does not matter.
func decodeScriptVar(script string, pattern *regexp.Regexp, v any) bool {
	loc := pattern.FindStringIndex(script)
	if loc == nil {
		return false
	}
	dec := json.NewDecoder(strings.NewReader(script[loc[1]:]))
	return dec.Decode(v) == nil
}

func parseHistoryRows(doc *goquery.Document) []HistoryCourse {
	courses := []HistoryCourse{}
	doc.Find("tr[data-guid]").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Children().Filter("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, cellText(td))
		})
		if len(cells) < 2 {
			return
		}

		course := HistoryCourse{GUID: row.AttrOr("data-guid", ""), Term: termFor(row)}
		columns := []*string{&course.CourseID, &course.Title, &course.Mark, &course.CreditsAttempted, &course.CreditsCompleted}
		for i, col := range columns {
			if i < len(cells) {
				*col = cells[i]
			}
		}
		courses = append(courses, course)
	})
	return courses
}

func termFor(row *goquery.Selection) string {
	if term, ok := row.Closest("[data-term]").Attr("data-term"); ok {
		return strings.TrimSpace(term)
	}
	return collapse(row.Closest("table").Find("caption").First().Text())
}

// cellText keeps the cell's own text nodes so tooltip spans nested in a
// cell do not leak into the value. Cells with no direct text fall back to
// their full text.
func cellText(td *goquery.Selection) string {
	var parts []string
	td.Contents().Each(func(_ int, s *goquery.Selection) {
		if n := s.Get(0); n != nil && n.Type == html.TextNode {
			if text := strings.TrimSpace(s.Text()); text != "" {
				parts = append(parts, text)
			}
		}
	})
	if len(parts) == 0 {
		return collapse(td.Text())
	}
	return collapse(strings.Join(parts, " "))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
