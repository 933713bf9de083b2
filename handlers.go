package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"synergyApi/gradecalc"
	"synergyApi/synergy"
)

// @Summary Validates district credentials
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "District credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /login [post]
func (s *Server) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	client := s.client(synergy.Credentials{Username: req.Username, Password: req.Password, Host: req.Host})
	info, err := s.repeatLoginReq(c.Request.Context(), client, 0)
	if err != nil {
		s.fail(c, err)
		return
	}

	resp := LoginResponse{
		Name:   info.String("FormattedName"),
		PermID: info.String("PermID"),
		Grade:  info.String("Grade"),
		School: info.String("CurrentSchool"),
	}
	resp.DisplayName = info.String("NickName")
	if resp.DisplayName == "" {
		resp.DisplayName = resp.Name
	}
	c.JSON(http.StatusOK, resp)
}

// repeatLoginReq retries StudentInfo on connection-level failures only.
// Bad credentials, timeouts and remote errors are returned at once.
func (s *Server) repeatLoginReq(ctx context.Context, client *synergy.Client, count int) (synergy.Result, error) {
	info, err := client.StudentInfo(ctx)
	if err == nil {
		return info, nil
	}
	if !retryable(err) || count >= s.cfg.LoginRetries {
		return nil, err
	}
	s.logger.Info("retrying login", zap.Int("attempt", count+1), zap.Error(err))
	return s.repeatLoginReq(ctx, client, count+1)
}

func retryable(err error) bool {
	if errors.Is(err, synergy.ErrTimeout) || errors.Is(err, context.Canceled) {
		return false
	}
	var httpErr *synergy.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	return errors.Is(err, synergy.ErrTransport)
}

// @Summary Gradebook with recomputed grades
// @Tags Synergy
// @Produce json
// @Param reportPeriod query int false "Reporting period index"
// @Param X-Synergy-Host header string true "District host"
// @Success 200 {object} GradebookResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /gradebook [get]
// @Security BasicAuth
func (s *Server) handleGradebook(c *gin.Context) {
	var q gradebookQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid reportPeriod"})
		return
	}
	creds := credentials(c)

	var raw synergy.Result
	var name synergy.StudentName
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		raw, err = s.client(creds).Gradebook(ctx, q.ReportPeriod)
		return err
	})
	g.Go(func() error {
		n, err := s.sessionClient(creds).StudentName(ctx)
		if err != nil {
			// the gradebook is still useful without a display name
			s.logger.Debug("name lookup failed", zap.Error(err))
			return nil
		}
		name = n
		return nil
	})
	if err := g.Wait(); err != nil {
		s.fail(c, err)
		return
	}

	gb := synergy.ParseGradebook(raw)
	resp := GradebookResponse{
		Name:      name.Display(),
		Gradebook: raw,
		Period:    gb.ReportingPeriod,
		Courses:   make([]CourseGrades, 0, len(gb.Courses)),
	}
	for _, course := range gb.Courses {
		cg := CourseGrades{Title: course.Title, Period: course.Period, Staff: course.Staff, Marks: []MarkGrades{}}
		for _, mark := range course.Marks {
			summary := mark.Summary()
			cg.Marks = append(cg.Marks, MarkGrades{
				Mark:          mark.Name,
				PortalScore:   mark.CalculatedScore,
				PortalRaw:     mark.RawScore,
				Summary:       summary,
				MatchesPortal: gradecalc.CompareDisplayed(summary.Percentage, mark.RawScore),
			})
		}
		resp.Courses = append(resp.Courses, cg)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) respond(c *gin.Context, res synergy.Result, err error) {
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Attendance record
// @Tags Synergy
// @Produce json
// @Param X-Synergy-Host header string true "District host"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /attendance [get]
// @Security BasicAuth
func (s *Server) handleAttendance(c *gin.Context) {
	res, err := s.client(credentials(c)).Attendance(c.Request.Context())
	s.respond(c, res, err)
}

// @Summary Student information
// @Tags Synergy
// @Produce json
// @Param X-Synergy-Host header string true "District host"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /student-info [get]
// @Security BasicAuth
func (s *Server) handleStudentInfo(c *gin.Context) {
	res, err := s.client(credentials(c)).StudentInfo(c.Request.Context())
	s.respond(c, res, err)
}

// @Summary Document listing
// @Tags Synergy
// @Produce json
// @Param X-Synergy-Host header string true "District host"
// @Success 200 {object} map[string]interface{}
// @Router /documents [get]
// @Security BasicAuth
func (s *Server) handleDocuments(c *gin.Context) {
	res, err := s.client(credentials(c)).Documents(c.Request.Context())
	s.respond(c, res, err)
}

// @Summary Attached document content
// @Tags Synergy
// @Produce json
// @Param guid path string true "Document GUID"
// @Param X-Synergy-Host header string true "District host"
// @Success 200 {object} map[string]interface{}
// @Router /documents/{guid} [get]
// @Security BasicAuth
func (s *Server) handleDocument(c *gin.Context) {
	res, err := s.client(credentials(c)).Document(c.Request.Context(), c.Param("guid"))
	s.respond(c, res, err)
}

// @Summary Report card document
// @Tags Synergy
// @Produce json
// @Param guid path string true "Document GUID"
// @Param X-Synergy-Host header string true "District host"
// @Success 200 {object} map[string]interface{}
// @Router /report-card/{guid} [get]
// @Security BasicAuth
func (s *Server) handleReportCard(c *gin.Context) {
	res, err := s.client(credentials(c)).ReportCard(c.Request.Context(), c.Param("guid"))
	s.respond(c, res, err)
}

// @Summary Synergy mail folders and messages
// @Tags Synergy
// @Produce json
// @Param X-Synergy-Host header string true "District host"
// @Success 200 {object} map[string]interface{}
// @Router /mail [get]
// @Security BasicAuth
func (s *Server) handleMail(c *gin.Context) {
	res, err := s.client(credentials(c)).MailData(c.Request.Context())
	s.respond(c, res, err)
}

// @Summary Course history and graduation requirements
// @Tags Session
// @Produce json
// @Param X-Synergy-Host header string true "District host"
// @Success 200 {object} synergy.CourseHistory
// @Failure 502 {object} ErrorResponse
// @Router /course-history [get]
// @Security BasicAuth
func (s *Server) handleCourseHistory(c *gin.Context) {
	history, err := s.sessionClient(credentials(c)).CourseHistory(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// @Summary Student display name
// @Tags Session
// @Produce json
// @Param X-Synergy-Host header string true "District host"
// @Success 200 {object} map[string]interface{}
// @Router /name [get]
// @Security BasicAuth
func (s *Server) handleName(c *gin.Context) {
	name, err := s.sessionClient(credentials(c)).StudentName(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "displayName": name.Display()})
}

// @Summary Standardized test analysis
// @Tags Session
// @Produce json
// @Param X-Synergy-Host header string true "District host"
// @Success 200 {array} synergy.TestResult
// @Router /test-analysis [get]
// @Security BasicAuth
func (s *Server) handleTestAnalysis(c *gin.Context) {
	results, err := s.sessionClient(credentials(c)).TestAnalysis(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if results == nil {
		results = []synergy.TestResult{}
	}
	c.JSON(http.StatusOK, results)
}

// @Summary Recomputes a course grade from assignments
// @Tags Grades
// @Accept json
// @Produce json
// @Param body body CalculateRequest true "Assignments and categories"
// @Success 200 {object} gradecalc.CourseSummary
// @Failure 400 {object} ErrorResponse
// @Router /grades/calculate [post]
func (s *Server) handleCalculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	assignments := req.Assignments
	for _, raw := range req.RawAssignments {
		assignments = append(assignments, gradecalc.NormalizeAssignment(raw))
	}
	if len(assignments) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no assignments"})
		return
	}
	c.JSON(http.StatusOK, gradecalc.Summarize(assignments, req.Categories))
}
