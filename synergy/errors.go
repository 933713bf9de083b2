package synergy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTimeout means the district server did not answer before the deadline.
	ErrTimeout = errors.New("synergy: district server timed out")
	// ErrTransport covers connection-level failures (DNS, refused, reset).
	ErrTransport = errors.New("synergy: connection failed")
	// ErrProtocol means the response did not have the expected SOAP/XML shape.
	ErrProtocol = errors.New("synergy: unexpected response format")
	// ErrNoSession means no ASP.NET_SessionId could be harvested.
	ErrNoSession = errors.New("synergy: no session id in response")
	// ErrInvalidCredentials is matched by a RemoteError carrying the
	// portal's bad-login message.
	ErrInvalidCredentials = errors.New("invalid user id or password")
)

const invalidCredentialsMessage = "Invalid user id or password"

// HTTPError is returned for any non-2xx answer.
type HTTPError struct {
	StatusCode int
	URL        string
	Snippet    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("synergy: unexpected status code %d for %s: %s", e.StatusCode, e.URL, e.Snippet)
}

// RemoteError carries the message of an RT_ERROR node verbatim.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrInvalidCredentials && strings.HasPrefix(e.Message, invalidCredentialsMessage)
}

func snippet(body string, n int) string {
	body = strings.Join(strings.Fields(body), " ")
	if len(body) <= n {
		return body
	}
	return body[:n] + "..."
}
