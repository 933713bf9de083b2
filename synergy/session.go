package synergy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const (
	sessionCookieName = "ASP.NET_SessionId"

	courseHistoryPath = "/PXP2_CourseHistory.aspx?AGU=0"
	nameSummaryPath   = "/Service/PXPCommunication.asmx/ProcessClientSideData"
	testAnalysisPath  = "/api/GB/ClientSideData/Transfer?action=pxp.test.analysis-LoadTestAnalysis"

	cdataOpen  = "<JSON_RESPONSE><![CDATA["
	cdataClose = "]]></JSON_RESPONSE>"
)

// ASP.NET session ids are 24 lowercase alphanumerics.
var sessionIDPattern = regexp.MustCompile(`ASP\.NET_SessionId=([a-z0-9]{24})(?:;|$)`)

// ExtractSessionID finds the session id in raw Set-Cookie values. The
// regex covers well-formed ids; anything else falls back to the text
// between the cookie name and the next semicolon.
func ExtractSessionID(setCookies []string) (string, bool) {
	for _, v := range setCookies {
		if m := sessionIDPattern.FindStringSubmatch(v); m != nil {
			return m[1], true
		}
	}
	marker := sessionCookieName + "="
	for _, v := range setCookies {
		i := strings.Index(v, marker)
		if i < 0 {
			continue
		}
		rest := v[i+len(marker):]
		if j := strings.IndexByte(rest, ';'); j >= 0 {
			rest = rest[:j]
		}
		if id := strings.TrimSpace(rest); id != "" {
			return id, true
		}
	}
	return "", false
}

// ExtractCDATAJSON decodes the JSON between the JSON_RESPONSE CDATA
// markers into v. It reports false when the markers are missing or the
// payload does not parse.
func ExtractCDATAJSON(text string, v any) bool {
	start := strings.Index(text, cdataOpen)
	if start < 0 {
		return false
	}
	rest := text[start+len(cdataOpen):]
	end := strings.Index(rest, cdataClose)
	if end < 0 {
		return false
	}
	return json.Unmarshal([]byte(rest[:end]), v) == nil
}

// SessionClient reaches the pages that only accept a browser session.
// Every operation harvests its own session and drops it afterwards.
type SessionClient struct {
	creds Credentials
	t     *transport
	// session requests must see redirects to the login page as failures
	noRedirect *http.Client
}

func NewSessionClient(creds Credentials, opts ...Option) *SessionClient {
	creds.Host = NormalizeHost(creds.Host)
	t := newTransport(opts)
	noRedirect := *t.httpClient
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &SessionClient{creds: creds, t: t, noRedirect: &noRedirect}
}

// EstablishSession performs a StudentInfo SOAP call only for its
// Set-Cookie header. The body is discarded.
func (s *SessionClient) EstablishSession(ctx context.Context) (SessionHandle, error) {
	envelope, err := BuildEnvelope(OpRequest, "StudentInfo", childParams(), s.creds)
	if err != nil {
		return SessionHandle{}, err
	}
	resp, err := s.t.soap(ctx, s.creds.Host, envelope)
	if err != nil {
		return SessionHandle{}, err
	}
	if err := resp.check(); err != nil {
		return SessionHandle{}, err
	}

	id, ok := ExtractSessionID(resp.header.Values("Set-Cookie"))
	if !ok {
		return SessionHandle{}, fmt.Errorf("%w: StudentInfo on %s", ErrNoSession, s.creds.Host)
	}
	return SessionHandle{SessionID: id}, nil
}

// fetch sends a session-bearing request to the configured host and, if
// that host carries a student. label and rejects the request, retries
// exactly once without it. When both fail the first error is returned.
func (s *SessionClient) fetch(ctx context.Context, h SessionHandle, method, path string, header http.Header, body string) (*response, error) {
	if header == nil {
		header = http.Header{}
	}
	header.Set("Cookie", h.Cookie())

	resp, err := s.sessionDo(ctx, s.creds.Host, method, path, header, body)
	if err == nil {
		return resp, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	fallback, ok := StripStudentSubdomain(s.creds.Host)
	if !ok {
		return nil, err
	}

	s.t.logger.Info("retrying session request without student subdomain",
		zap.String("host", s.creds.Host),
		zap.String("fallback", fallback),
		zap.Error(err),
	)
	resp, fallbackErr := s.sessionDo(ctx, fallback, method, path, header, body)
	if fallbackErr != nil {
		s.t.logger.Warn("session fallback failed", zap.String("fallback", fallback), zap.Error(fallbackErr))
		return nil, err
	}
	return resp, nil
}

func (s *SessionClient) sessionDo(ctx context.Context, host, method, path string, header http.Header, body string) (*response, error) {
	resp, err := s.t.do(ctx, s.noRedirect, method, s.t.url(host, path), header, body)
	if err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp, nil
}

// CourseHistory returns past courses and graduation requirement progress.
func (s *SessionClient) CourseHistory(ctx context.Context) (CourseHistory, error) {
	h, err := s.EstablishSession(ctx)
	if err != nil {
		return CourseHistory{}, err
	}
	resp, err := s.fetch(ctx, h, http.MethodGet, courseHistoryPath, nil, "")
	if err != nil {
		return CourseHistory{}, fmt.Errorf("fetch course history: %w", err)
	}
	return ParseCourseHistory(strings.NewReader(resp.body))
}

const nameSummaryRequest = `<?xml version="1.0" encoding="utf-8"?><REQUEST><ACTION>NameSummary</ACTION><PARAMS/></REQUEST>`

// StudentName resolves the student's display name. A payload that cannot
// be decoded yields a zero StudentName and no error.
func (s *SessionClient) StudentName(ctx context.Context) (StudentName, error) {
	h, err := s.EstablishSession(ctx)
	if err != nil {
		return StudentName{}, err
	}
	header := http.Header{}
	header.Set("Content-Type", "text/xml; charset=utf-8")
	resp, err := s.fetch(ctx, h, http.MethodPost, nameSummaryPath, header, nameSummaryRequest)
	if err != nil {
		return StudentName{}, fmt.Errorf("fetch name summary: %w", err)
	}

	var name StudentName
	if !ExtractCDATAJSON(resp.body, &name) {
		s.t.logger.Debug("name summary had no usable payload")
		return StudentName{}, nil
	}
	return name, nil
}

type testAnalysisRequest struct {
	FriendlyName string `json:"FriendlyName"`
	Method       string `json:"Method"`
	Parameters   string `json:"Parameters"`
}

// TestAnalysis returns standardized test results. A payload that cannot
// be decoded yields nil and no error.
func (s *SessionClient) TestAnalysis(ctx context.Context) ([]TestResult, error) {
	h, err := s.EstablishSession(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(testAnalysisRequest{
		FriendlyName: "pxp.test.analysis",
		Method:       "LoadTestAnalysis",
		Parameters:   "{}",
	})
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json; charset=utf-8")
	header.Set("X-Requested-With", "XMLHttpRequest")
	resp, err := s.fetch(ctx, h, http.MethodPost, testAnalysisPath, header, string(payload))
	if err != nil {
		return nil, fmt.Errorf("fetch test analysis: %w", err)
	}

	var results []TestResult
	if !ExtractCDATAJSON(resp.body, &results) {
		s.t.logger.Debug("test analysis had no usable payload")
		return nil, nil
	}
	return results, nil
}
