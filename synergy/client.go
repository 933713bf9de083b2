package synergy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36 synergyApi/1.0"

	servicePath     = "/Service/PXPCommunication.asmx"
	soapContentType = "application/soap+xml; charset=utf-8"
	snippetLength   = 200
)

// Option configures a Client or SessionClient.
type Option func(*transport)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *transport) { t.httpClient = c }
}

// WithTimeout bounds every request. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(t *transport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(t *transport) {
		if ua != "" {
			t.userAgent = ua
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(t *transport) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithScheme switches from https, for local mock districts.
func WithScheme(scheme string) Option {
	return func(t *transport) {
		if scheme != "" {
			t.scheme = scheme
		}
	}
}

type transport struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	scheme     string
	logger     *zap.Logger
}

func newTransport(opts []Option) *transport {
	t := &transport{
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		userAgent:  DefaultUserAgent,
		scheme:     "https",
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *transport) url(host, path string) string {
	return t.scheme + "://" + host + path
}

type response struct {
	status int
	header http.Header
	body   string
	url    string
}

func (r *response) check() error {
	if r.status < 200 || r.status > 299 {
		return &HTTPError{StatusCode: r.status, URL: r.url, Snippet: snippet(r.body, snippetLength)}
	}
	return nil
}

// do issues one request under the transport deadline and reads the whole
// body before the deadline's context is released.
func (t *transport) do(ctx context.Context, client *http.Client, method, url string, header http.Header, body string) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("synergy: build request for %s: %w", url, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("User-Agent", t.userAgent)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, t.classify(ctx, method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, t.classify(ctx, method, url, err)
	}

	t.logger.Debug("synergy request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return &response{status: resp.StatusCode, header: resp.Header, body: string(data), url: url}, nil
}

func (t *transport) classify(ctx context.Context, method, url string, err error) error {
	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		t.logger.Warn("synergy request timed out", zap.String("url", url), zap.Duration("timeout", t.timeout))
		return fmt.Errorf("%w: %s %s after %s", ErrTimeout, method, url, t.timeout)
	}
	t.logger.Warn("synergy request failed", zap.String("url", url), zap.Error(err))
	return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, url, err)
}

func (t *transport) soap(ctx context.Context, host, envelope string) (*response, error) {
	header := http.Header{}
	header.Set("Content-Type", soapContentType)
	return t.do(ctx, t.httpClient, http.MethodPost, t.url(host, servicePath), header, envelope)
}

// Client talks to the stateless SOAP surface. It holds nothing but the
// credentials it was built with.
type Client struct {
	creds Credentials
	t     *transport
}

func NewClient(creds Credentials, opts ...Option) *Client {
	creds.Host = NormalizeHost(creds.Host)
	return &Client{creds: creds, t: newTransport(opts)}
}

// Call invokes methodName through ProcessWebServiceRequest and returns the
// decoded inner result.
func (c *Client) Call(ctx context.Context, methodName string, params map[string]any) (Result, error) {
	return c.call(ctx, OpRequest, methodName, params)
}

func (c *Client) call(ctx context.Context, op Operation, methodName string, params map[string]any) (Result, error) {
	envelope, err := BuildEnvelope(op, methodName, params, c.creds)
	if err != nil {
		return nil, err
	}

	resp, err := c.t.soap(ctx, c.creds.Host, envelope)
	if err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}

	outer, err := Decode(resp.body)
	if err != nil {
		return nil, fmt.Errorf("decode %s envelope: %w", methodName, err)
	}
	inner, ok := outer.Map("Envelope").Map("Body").Map(string(op)+"Response").Lookup(string(op) + "Result")
	if !ok || inner == "" {
		return nil, fmt.Errorf("%w: %s response has no %sResult", ErrProtocol, methodName, op)
	}

	result, err := Decode(inner)
	if err != nil {
		return nil, fmt.Errorf("decode %s result: %w", methodName, err)
	}
	if err := remoteError(result); err != nil {
		c.t.logger.Debug("synergy remote error", zap.String("method", methodName), zap.Error(err))
		return nil, err
	}
	return result, nil
}

const (
	rtErrorKey         = "RT_ERROR"
	rtErrorMessage     = "_ERROR_MESSAGE"
	rtErrorUserMessage = "_USER_ERROR_MESSAGE"
	rtErrorFallback    = "The district server returned an error"
)

// remoteError looks for an RT_ERROR node anywhere in the tree.
func remoteError(node any) error {
	switch v := node.(type) {
	case map[string]any:
		if rt, ok := v[rtErrorKey]; ok {
			return newRemoteError(rt)
		}
		for _, child := range v {
			if err := remoteError(child); err != nil {
				return err
			}
		}
	case Result:
		return remoteError(map[string]any(v))
	case []any:
		for _, child := range v {
			if err := remoteError(child); err != nil {
				return err
			}
		}
	}
	return nil
}

func newRemoteError(node any) *RemoteError {
	rt := Result{}
	switch v := node.(type) {
	case map[string]any:
		rt = v
	case []any:
		if len(v) > 0 {
			if m, ok := v[0].(map[string]any); ok {
				rt = m
			}
		}
	}
	for _, key := range []string{rtErrorMessage, rtErrorUserMessage} {
		if msg := strings.TrimSpace(rt.String(key)); msg != "" {
			return &RemoteError{Message: msg}
		}
	}
	return &RemoteError{Message: rtErrorFallback}
}

func (c *Client) unwrap(ctx context.Context, methodName string, params map[string]any, root string) (Result, error) {
	res, err := c.Call(ctx, methodName, params)
	if err != nil {
		return nil, err
	}
	if node := res.Map(root); node != nil {
		return node, nil
	}
	return Result{}, nil
}

func childParams() map[string]any {
	return map[string]any{"ChildIntID": 0}
}

// Gradebook returns the Gradebook node, optionally for a specific
// reporting period index.
func (c *Client) Gradebook(ctx context.Context, reportPeriod *int) (Result, error) {
	params := childParams()
	if reportPeriod != nil {
		params["ReportPeriod"] = *reportPeriod
	}
	return c.unwrap(ctx, "Gradebook", params, "Gradebook")
}

func (c *Client) Attendance(ctx context.Context) (Result, error) {
	return c.unwrap(ctx, "Attendance", childParams(), "Attendance")
}

func (c *Client) StudentInfo(ctx context.Context) (Result, error) {
	return c.unwrap(ctx, "StudentInfo", childParams(), "StudentInfo")
}

func (c *Client) Documents(ctx context.Context) (Result, error) {
	return c.unwrap(ctx, "GetStudentDocumentInitialData", childParams(), "StudentDocuments")
}

func (c *Client) ReportCard(ctx context.Context, documentGUID string) (Result, error) {
	return c.unwrap(ctx, "GetReportCardDocumentData", map[string]any{"DocumentGU": documentGUID}, "DocumentData")
}

func (c *Client) MailData(ctx context.Context) (Result, error) {
	return c.unwrap(ctx, "SynergyMailGetData", childParams(), "SynergyMailDataXML")
}

func (c *Client) Document(ctx context.Context, attachmentGUID string) (Result, error) {
	return c.unwrap(ctx, "GetContentOfAttachedDoc", map[string]any{"DocumentGU": attachmentGUID}, "StudentAttachedDocumentData")
}

// GenerateAuthToken asks the multi-web operation for a class-website
// token and returns the encrypted token string.
func (c *Client) GenerateAuthToken(ctx context.Context) (string, error) {
	params := map[string]any{
		"Username":             c.creds.Username,
		"TokenForClassWebSite": true,
		"Usertype":             0,
		"IsParentStudent":      0,
		"DataString":           "",
		"DocumentID":           "",
		"AssignmentID":         "",
	}
	res, err := c.call(ctx, OpMultiWeb, "GenerateAuthToken", params)
	if err != nil {
		return "", err
	}
	token := res.Map("AuthToken").String("_EncyToken")
	if token == "" {
		return "", fmt.Errorf("%w: GenerateAuthToken returned no token", ErrProtocol)
	}
	return token, nil
}
