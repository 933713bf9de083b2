package main

import (
	"synergyApi/gradecalc"
	"synergyApi/synergy"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Host     string `json:"host" binding:"required,districthost"`
}

type LoginResponse struct {
	Name        string `json:"name"`
	PermID      string `json:"permId"`
	Grade       string `json:"grade"`
	School      string `json:"school"`
	DisplayName string `json:"displayName"`
}

type hostHeader struct {
	Host string `header:"X-Synergy-Host" binding:"required,districthost"`
}

type gradebookQuery struct {
	ReportPeriod *int `form:"reportPeriod" binding:"omitempty,min=0"`
}

type MarkGrades struct {
	Mark          string                  `json:"mark"`
	PortalScore   string                  `json:"portalScore"`
	PortalRaw     float64                 `json:"portalRaw"`
	Summary       gradecalc.CourseSummary `json:"summary"`
	MatchesPortal gradecalc.Match         `json:"matchesPortal"`
}

type CourseGrades struct {
	Title  string       `json:"title"`
	Period string       `json:"period"`
	Staff  string       `json:"staff"`
	Marks  []MarkGrades `json:"marks"`
}

type GradebookResponse struct {
	Name      string               `json:"name"`
	Gradebook synergy.Result       `json:"gradebook"`
	Period    synergy.ReportPeriod `json:"reportingPeriod"`
	Courses   []CourseGrades       `json:"courses"`
}

type CalculateRequest struct {
	Assignments    []gradecalc.Assignment `json:"assignments"`
	RawAssignments []map[string]any       `json:"rawAssignments"`
	Categories     []gradecalc.Category   `json:"categories"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
