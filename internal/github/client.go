package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com/"

const defaultMaxWorkers = 5

// Client is the single point of contact with the GitHub repositories API.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	maxWorkers int
}

type clientOptions struct {
	baseURL    string
	transport  http.RoundTripper
	limiter    *rate.Limiter
	logger     *slog.Logger
	maxWorkers int
}

// Option configures a Client.
type Option func(*clientOptions)

// WithBaseURL points the client at another API root, e.g. a GitHub Enterprise
// "https://ghe.example.com/api/v3/".
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTransport replaces the underlying HTTP transport. The auth headers are
// still applied on top of it.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// WithRateLimiter paces outgoing requests. Nil disables pacing.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(o *clientOptions) {
		o.limiter = l
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = l
	}
}

// WithMaxWorkers bounds the concurrency of batch operations.
func WithMaxWorkers(n int) Option {
	return func(o *clientOptions) {
		o.maxWorkers = n
	}
}

// NewClient builds a client authenticating with source. A nil source makes
// every request unauthenticated (and logs a warning per request).
func NewClient(source oauth2.TokenSource, opts ...Option) (*Client, error) {
	o := clientOptions{
		baseURL:    DefaultBaseURL,
		transport:  http.DefaultTransport,
		logger:     slog.Default(),
		maxWorkers: defaultMaxWorkers,
	}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := parseBaseURL(o.baseURL)
	if err != nil {
		return nil, err
	}
	if o.maxWorkers <= 0 {
		o.maxWorkers = defaultMaxWorkers
	}

	o.logger.Debug("Initializing GitHub client", "baseUrl", base.String(), "authenticated", source != nil)

	return &Client{
		baseURL: base,
		http: &http.Client{
			Transport: &authTransport{
				source: source,
				base:   &loggingTransport{base: o.transport, logger: o.logger},
				logger: o.logger,
			},
		},
		limiter:    o.limiter,
		logger:     o.logger,
		maxWorkers: o.maxWorkers,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be an absolute http(s) URL", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// BaseURL returns the API root requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// do performs one exchange and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{Op: op, Err: err}
		}
	}

	ref, err := url.Parse(path)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("build URL: %w", err)}
	}
	u := c.baseURL.ResolveReference(ref)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RejectedError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Status:     StatusFromCode(resp.StatusCode),
			Message:    errorMessage(respBody),
		}
	}
	return respBody, nil
}

// errorMessage extracts GitHub's {"message": "..."} from an error body.
func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if len(body) == 0 || json.Unmarshal(body, &e) != nil {
		return ""
	}
	return e.Message
}

// callLog tracks one operation from pending to its terminal state in the logs.
type callLog struct {
	logger *slog.Logger
}

func (c *Client) begin(op string, args ...any) callLog {
	l := c.logger.With(append([]any{"callId", uuid.NewString(), "op", op}, args...)...)
	l.Debug("Call pending")
	return callLog{logger: l}
}

// end logs the terminal state and returns err unchanged.
func (c callLog) end(err error, args ...any) error {
	if err == nil {
		c.logger.Debug("Call succeeded", args...)
		return nil
	}
	args = append(args, "kind", Classify(err).String(), "error", err)
	if code := StatusCode(err); code != 0 {
		args = append(args, "status", code)
	}
	c.logger.Debug("Call failed", args...)
	return err
}
