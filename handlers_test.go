package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"synergyApi/synergy"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

var methodNamePattern = regexp.MustCompile(`<methodName>([^<]*)</methodName>`)

const studentInfoXML = `<StudentInfo>
  <FormattedName>Ada Lovelace</FormattedName>
  <PermID>900123</PermID>
  <Grade>11</Grade>
  <CurrentSchool>Central High</CurrentSchool>
  <NickName>Addie</NickName>
</StudentInfo>`

const gradebookXML = `<Gradebook>
  <ReportingPeriod GradePeriod="Quarter 2" StartDate="10/28/2024" EndDate="1/17/2025"/>
  <Courses>
    <Course Period="1" Title="Algebra II" Staff="J. Smith">
      <Marks>
        <Mark MarkName="Quarter 2" CalculatedScoreString="B" CalculatedScoreRaw="84.0">
          <GradeCalculationSummary>
            <AssignmentGradeCalc Type="Tests" Weight="60%" Points="80.00" PointsPossible="100.00"/>
            <AssignmentGradeCalc Type="Homework" Weight="40%" Points="45.00" PointsPossible="50.00"/>
          </GradeCalculationSummary>
          <Assignments>
            <Assignment Measure="Unit 3 Test" Type="Tests" Points="80.00 / 100.0000"/>
          </Assignments>
        </Mark>
      </Marks>
    </Course>
  </Courses>
</Gradebook>`

func soapResult(inner string) string {
	return `<?xml version="1.0" encoding="utf-8"?>` +
		`<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope"><soap:Body>` +
		`<ProcessWebServiceRequestResponse xmlns="http://edupoint.com/webservices/">` +
		`<ProcessWebServiceRequestResult>` + synergy.EscapeText(inner) + `</ProcessWebServiceRequestResult>` +
		`</ProcessWebServiceRequestResponse></soap:Body></soap:Envelope>`
}

// mockDistrict answers SOAP calls from results keyed by method name and
// serves the name summary page for session requests.
type mockDistrict struct {
	srv     *httptest.Server
	calls   atomic.Int32
	status  int
	results map[string]string
}

func newMockDistrict(t *testing.T, results map[string]string) *mockDistrict {
	t.Helper()
	d := &mockDistrict{status: http.StatusOK, results: results}
	d.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		switch r.URL.Path {
		case "/Service/PXPCommunication.asmx":
			d.calls.Add(1)
			if d.status != http.StatusOK {
				w.WriteHeader(d.status)
				return
			}
			w.Header().Add("Set-Cookie", "ASP.NET_SessionId=abcdefghijklmnopqrstuvwx; path=/")
			method := ""
			if m := methodNamePattern.FindSubmatch(body); m != nil {
				method = string(m[1])
			}
			w.Write([]byte(soapResult(d.results[method])))
		case "/Service/PXPCommunication.asmx/ProcessClientSideData":
			w.Write([]byte(`<JSON_RESPONSE><![CDATA[{"FirstName":"Ada","LastName":"Lovelace"}]]></JSON_RESPONSE>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(d.srv.Close)
	return d
}

func (d *mockDistrict) host() string {
	return strings.TrimPrefix(d.srv.URL, "http://")
}

func newTestRouter() *gin.Engine {
	cfg := Config{
		RequestTimeout: 2 * time.Second,
		LoginRetries:   2,
		InsecureHTTP:   true,
	}
	return NewServer(cfg, zap.NewNop()).Router()
}

func perform(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func loginRequest(t *testing.T, host string) *http.Request {
	t.Helper()
	body, err := json.Marshal(LoginRequest{Username: "stu", Password: "pw", Host: host})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestPing(t *testing.T) {
	w := perform(newTestRouter(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := perform(newTestRouter(), req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestLogin(t *testing.T) {
	d := newMockDistrict(t, map[string]string{"StudentInfo": studentInfoXML})

	w := perform(newTestRouter(), loginRequest(t, "http://"+d.host()+"/"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, LoginResponse{
		Name:        "Ada Lovelace",
		PermID:      "900123",
		Grade:       "11",
		School:      "Central High",
		DisplayName: "Addie",
	}, resp)
}

func TestLogin_InvalidCredentialsNotRetried(t *testing.T) {
	d := newMockDistrict(t, map[string]string{
		"StudentInfo": `<RT_ERROR ERROR_MESSAGE="Invalid user id or password: Login failed"/>`,
	})

	w := perform(newTestRouter(), loginRequest(t, d.host()))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid user id or password")
	assert.Equal(t, int32(1), d.calls.Load())
}

func TestLogin_RetriesServerErrors(t *testing.T) {
	d := newMockDistrict(t, nil)
	d.status = http.StatusServiceUnavailable

	w := perform(newTestRouter(), loginRequest(t, d.host()))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, int32(3), d.calls.Load())
}

func TestLogin_BadRequest(t *testing.T) {
	router := newTestRouter()

	w := perform(router, loginRequest(t, "district host/with spaces"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"stu"}`))
	req.Header.Set("Content-Type", "application/json")
	w = perform(router, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	router := newTestRouter()

	w := perform(router, httptest.NewRequest(http.MethodGet, "/gradebook", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/gradebook", nil)
	req.SetBasicAuth("stu", "pw")
	w = perform(router, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGradebook(t *testing.T) {
	d := newMockDistrict(t, map[string]string{
		"Gradebook":   gradebookXML,
		"StudentInfo": studentInfoXML,
	})

	req := httptest.NewRequest(http.MethodGet, "/gradebook?reportPeriod=1", nil)
	req.SetBasicAuth("stu", "pw")
	req.Header.Set("X-Synergy-Host", d.host())
	w := perform(newTestRouter(), req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp GradebookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ada Lovelace", resp.Name)
	assert.Equal(t, "Quarter 2", resp.Period.Name)
	require.Len(t, resp.Courses, 1)
	require.Len(t, resp.Courses[0].Marks, 1)

	mark := resp.Courses[0].Marks[0]
	assert.Equal(t, "B", mark.PortalScore)
	assert.InDelta(t, 80, mark.Summary.Percentage, 1e-9)
	require.Len(t, mark.Summary.Hidden, 1)
	assert.Equal(t, "Hidden Homework Assignments", mark.Summary.Hidden[0].Name)
	assert.False(t, mark.MatchesPortal.Any())
}

func TestGradebook_InvalidReportPeriod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/gradebook?reportPeriod=first", nil)
	req.SetBasicAuth("stu", "pw")
	req.Header.Set("X-Synergy-Host", "district.example.org")
	w := perform(newTestRouter(), req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentInfo(t *testing.T) {
	d := newMockDistrict(t, map[string]string{"StudentInfo": studentInfoXML})

	req := httptest.NewRequest(http.MethodGet, "/student-info", nil)
	req.SetBasicAuth("stu", "pw")
	req.Header.Set("X-Synergy-Host", d.host())
	w := perform(newTestRouter(), req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "900123", resp["PermID"])
}

func TestName(t *testing.T) {
	d := newMockDistrict(t, map[string]string{"StudentInfo": studentInfoXML})

	req := httptest.NewRequest(http.MethodGet, "/name", nil)
	req.SetBasicAuth("stu", "pw")
	req.Header.Set("X-Synergy-Host", d.host())
	w := perform(newTestRouter(), req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"displayName":"Ada Lovelace"`)
}

func TestCalculate(t *testing.T) {
	body := `{
		"assignments": [{"name": "Quiz", "category": "Tests", "pointsEarned": 9, "pointsPossible": 10}],
		"rawAssignments": [{"_Measure": "HW 1", "_Type": "Homework", "_Points": "4 / 5"}],
		"categories": [
			{"name": "Tests", "weightPercentage": 50},
			{"name": "Homework", "weightPercentage": 50}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/grades/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := perform(newTestRouter(), req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Percentage  float64 `json:"percentage"`
		Weighted    bool    `json:"weighted"`
		Assignments []struct {
			Name   string   `json:"name"`
			Change *float64 `json:"gradePercentageChange"`
		} `json:"assignments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Weighted)
	assert.InDelta(t, 85, resp.Percentage, 1e-9)
	require.Len(t, resp.Assignments, 2)
	assert.Equal(t, "HW 1", resp.Assignments[1].Name)
	require.NotNil(t, resp.Assignments[1].Change)
}

func TestCalculate_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/grades/calculate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := perform(newTestRouter(), req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&synergy.RemoteError{Message: "Invalid user id or password"}, http.StatusUnauthorized},
		{&synergy.RemoteError{Message: "Module disabled"}, http.StatusUnprocessableEntity},
		{fmt.Errorf("call: %w", synergy.ErrTimeout), http.StatusGatewayTimeout},
		{fmt.Errorf("call: %w", synergy.ErrTransport), http.StatusBadGateway},
		{fmt.Errorf("call: %w", synergy.ErrProtocol), http.StatusBadGateway},
		{&synergy.HTTPError{StatusCode: 500}, http.StatusBadGateway},
		{synergy.ErrNoSession, http.StatusBadGateway},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
