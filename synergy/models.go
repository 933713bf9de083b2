package synergy

import "strings"

const studentSubdomain = "student."

// Credentials identify one student against one district host. They are
// supplied per call and never stored.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
}

// NormalizeHost strips the scheme, surrounding whitespace and trailing
// slashes from a district host.
func NormalizeHost(raw string) string {
	host := strings.TrimSpace(raw)
	lower := strings.ToLower(host)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			host = host[len(scheme):]
			break
		}
	}
	return strings.TrimRight(host, "/")
}

// StripStudentSubdomain removes one leading "student." label.
func StripStudentSubdomain(host string) (string, bool) {
	if len(host) > len(studentSubdomain) && strings.EqualFold(host[:len(studentSubdomain)], studentSubdomain) {
		return host[len(studentSubdomain):], true
	}
	return host, false
}

// SessionHandle is an ASP.NET session harvested for a single operation.
type SessionHandle struct {
	SessionID string
}

// Cookie renders the Cookie header value.
func (h SessionHandle) Cookie() string {
	return sessionCookieName + "=" + h.SessionID
}

// StudentName is the name summary behind the session-only endpoint.
type StudentName struct {
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	NickName  string `json:"NickName"`
}

// Display prefers the nickname, then "First Last".
func (n StudentName) Display() string {
	if nick := strings.TrimSpace(n.NickName); nick != "" {
		return nick
	}
	return strings.TrimSpace(strings.TrimSpace(n.FirstName) + " " + strings.TrimSpace(n.LastName))
}

type TestPart struct {
	Name  string `json:"PartName"`
	Score string `json:"Score"`
}

type TestResult struct {
	Name  string     `json:"TestName"`
	Date  string     `json:"TestDate"`
	Score string     `json:"Score"`
	Level string     `json:"PerformanceLevel"`
	Parts []TestPart `json:"Parts"`
}

type HistoryCourse struct {
	GUID             string `json:"guid"`
	Term             string `json:"term"`
	CourseID         string `json:"courseId"`
	Title            string `json:"title"`
	Mark             string `json:"mark"`
	CreditsAttempted string `json:"creditsAttempted"`
	CreditsCompleted string `json:"creditsCompleted"`
}

type GradRequirement struct {
	Subject    string `json:"subject"`
	Required   string `json:"required"`
	Completed  string `json:"completed"`
	InProgress string `json:"inProgress"`
	Remaining  string `json:"remaining"`
}

type CourseHistory struct {
	Courses      []HistoryCourse   `json:"courses"`
	Requirements []GradRequirement `json:"requirements"`
}
