// Package http sends authenticated requests to the FortiFlex API and renews
// the access token when the server reports it as invalid.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/internal/tracelog"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

// TokenManager supplies and renews the bearer token.
type TokenManager interface {
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Token() string
	Authenticated() bool
}

// Client is an HTTP client for the FortiFlex API.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	transport    *retryablehttp.Client
	tokenManager TokenManager
	logger       flexvm.Logger
	trace        *tracelog.Logger
	rewrite      func(string) string
	userAgent    string
	retryLimit   int
	debug        bool
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger flexvm.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response debug logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryLimit bounds the re-sends after an invalid token response.
func WithRetryLimit(limit int) Option {
	return func(c *Client) {
		c.retryLimit = limit
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}

		c.httpClient.Timeout = timeout
	}
}

// WithTraceLog records every request and response to the trace log.
func WithTraceLog(trace *tracelog.Logger) Option {
	return func(c *Client) {
		c.trace = trace
	}
}

// WithMessageRewriter transforms error messages that mention parameter ids.
func WithMessageRewriter(rewrite func(string) string) Option {
	return func(c *Client) {
		c.rewrite = rewrite
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a new HTTP client for baseURL.
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:      baseURL,
		tokenManager: tokenManager,
		userAgent:    constants.DefaultUserAgent,
		retryLimit:   constants.DefaultRetryLimit,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.retryLimit < 0 {
		client.retryLimit = 0
	}

	client.transport = NewTransport(client.httpClient, client.logger)

	return client
}

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Payload map[string]interface{}
	// IgnoreErrors returns HTTP error responses instead of a RequestError.
	IgnoreErrors bool
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	// Data is the decoded body, nil when it is not a JSON object.
	Data flexvm.Response
}

// Do sends req and retries it while the server reports an invalid token.
// The loop allows retryLimit+1 re-sends after the first attempt; only the
// last one is preceded by a logout and a fresh login.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	method := strings.ToUpper(req.Method)
	if method != http.MethodPost && method != http.MethodGet {
		return nil, fmt.Errorf("%w: %s", flexvm.ErrUnsupportedMethod, req.Method)
	}

	if c.tokenManager != nil && !c.tokenManager.Authenticated() {
		if err := c.tokenManager.Login(ctx); err != nil {
			return nil, err
		}
	}

	target := c.resolve(req.Path)

	resp, err := c.send(ctx, method, target, req.Payload)
	if err != nil {
		return nil, err
	}

	for retry := 0; retry <= c.retryLimit && invalidToken(resp.Body); retry++ {
		if retry == c.retryLimit && c.tokenManager != nil {
			c.log("info", "access token rejected, logging in again", map[string]interface{}{"retry": retry})

			if err := c.tokenManager.Logout(ctx); err != nil {
				c.log("warn", "failed to remove stored session", map[string]interface{}{"error": err.Error()})
			}

			if err := c.tokenManager.Login(ctx); err != nil {
				return nil, err
			}
		}

		resp, err = c.send(ctx, method, target, req.Payload)
		if err != nil {
			return nil, err
		}
	}

	if !req.IgnoreErrors && resp.StatusCode >= constants.HTTPStatusBadRequest {
		return resp, c.requestError(resp)
	}

	return resp, nil
}

// Get performs a GET request with payload encoded as the query string.
func (c *Client) Get(ctx context.Context, path string, payload map[string]interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Payload: payload})
}

// Post performs a POST request with payload encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, payload map[string]interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Payload: payload})
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) send(ctx context.Context, method, target string, payload map[string]interface{}) (*Response, error) {
	c.trace.Request(method, target, payload)

	var body interface{}

	if method == http.MethodGet {
		if query := encodeQuery(payload); query != "" {
			target += "?" + query
		}
	} else {
		if payload == nil {
			payload = map[string]interface{}{}
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		body = data
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if c.tokenManager != nil {
		httpReq.Header.Set("Authorization", "Bearer "+c.tokenManager.Token())
	}

	if c.debug {
		c.log("debug", "HTTP request", map[string]interface{}{"method": method, "url": target})
	}

	httpResp, err := c.transport.Do(httpReq)
	if err != nil {
		return nil, &flexvm.TransportError{Method: method, URL: target, Err: err}
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &flexvm.TransportError{Method: method, URL: target, Err: err}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	var data map[string]interface{}
	if json.Unmarshal(respBody, &data) == nil {
		resp.Data = data
	}

	c.trace.Response(resp.StatusCode, resp.Data)

	if c.debug {
		c.log("debug", "HTTP response", map[string]interface{}{"status": resp.StatusCode, "body": string(respBody)})
	}

	return resp, nil
}

func (c *Client) requestError(resp *Response) error {
	message := gjson.GetBytes(resp.Body, "message").String()

	if message != "" && strings.Contains(strings.ToLower(message), constants.ParameterIDMarker) {
		if rewritten, ok := c.rewriteMessage(message); ok {
			message = rewritten

			if resp.Data != nil {
				resp.Data["message"] = rewritten
			}
		}
	}

	return &flexvm.RequestError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Body:       resp.Data,
	}
}

// rewriteMessage is best effort: a panicking rewriter leaves the message
// unchanged.
func (c *Client) rewriteMessage(message string) (rewritten string, ok bool) {
	if c.rewrite == nil {
		return "", false
	}

	defer func() {
		if r := recover(); r != nil {
			rewritten, ok = "", false
		}
	}()

	return c.rewrite(message), true
}

func (c *Client) log(level, msg string, fields map[string]interface{}) {
	if c.logger == nil {
		return
	}

	switch level {
	case "debug":
		c.logger.Debug(msg, fields)
	case "warn":
		c.logger.Warn(msg, fields)
	case "error":
		c.logger.Error(msg, fields)
	default:
		c.logger.Info(msg, fields)
	}
}

// invalidToken reports whether body is the "Invalid security token." reply.
func invalidToken(body []byte) bool {
	status := gjson.GetBytes(body, "status")

	return status.Exists() &&
		status.Int() == constants.InvalidTokenStatus &&
		gjson.GetBytes(body, "message").String() == constants.InvalidTokenMessage
}

// encodeQuery renders payload as a query string. Lists repeat the key.
func encodeQuery(payload map[string]interface{}) string {
	values := url.Values{}

	for key, value := range payload {
		switch v := value.(type) {
		case nil:
			continue
		case []interface{}:
			for _, item := range v {
				values.Add(key, fmt.Sprint(item))
			}
		case []string:
			for _, item := range v {
				values.Add(key, item)
			}
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}

	return values.Encode()
}
