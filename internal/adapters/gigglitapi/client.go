// Package gigglitapi is the HTTP client for the Gigglit REST backend.
//
// Every call returns either the decoded value or an *errors.AppError carrying
// the backend's own error message; nothing is retried and no failure is
// surfaced any other way.
package gigglitapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/ports"
	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 4 << 20
	defaultListExpr  = "type(@) == 'array' && @ || bookmarks"
)

var _ ports.GigglitAPI = (*Client)(nil)

// ClientOptions configures a Client.
type ClientOptions struct {
	// BaseURL is the backend root, e.g. "https://api.gigglit.example" (required).
	BaseURL string
	// Timeout bounds each request. Defaults to 15s.
	Timeout time.Duration
	// Transport is the base round tripper (optional, defaults to http.DefaultTransport).
	Transport http.RoundTripper
	// BookmarkListExpr selects the bookmark list from the GET /bookmarks body.
	BookmarkListExpr string
	// Logger receives debug logs for failed calls (optional).
	Logger *slog.Logger
	// Metrics observes every call (optional).
	Metrics CallObserver
}

// CallObserver is told the outcome and latency of each backend call.
type CallObserver interface {
	ObserveCall(op string, status int, err error, d time.Duration)
}

// Client talks to the Gigglit backend.
type Client struct {
	baseURL      *url.URL
	timeout      time.Duration
	transport    http.RoundTripper
	bookmarkExpr string
	logger       *slog.Logger
	metrics      CallObserver
}

// NewClient validates options and builds a Client.
func NewClient(opts ClientOptions) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("gigglit api base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse gigglit api base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid gigglit api URL scheme: %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("invalid gigglit api URL: missing host")
	}

	expr := strings.TrimSpace(opts.BookmarkListExpr)
	if expr == "" {
		expr = defaultListExpr
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid bookmark list expression: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL:      u,
		timeout:      timeout,
		transport:    transport,
		bookmarkExpr: expr,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
	}, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// call describes a single backend request.
type call struct {
	op     string
	method string
	path   string
	token  string
	authed bool
	body   any
	out    any
}

// httpClient returns a client that attaches the bearer token when authed.
func (c *Client) httpClient(cl call) (*http.Client, error) {
	if !cl.authed {
		return &http.Client{Timeout: c.timeout, Transport: c.transport}, nil
	}
	if strings.TrimSpace(cl.token) == "" {
		return nil, apperrors.Unauthorized("Please log in to continue")
	}
	return &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Base:   c.transport,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cl.token, TokenType: "Bearer"}),
		},
	}, nil
}

// endpoint joins an already-escaped path onto the base URL.
func (c *Client) endpoint(escapedPath string) string {
	u := *c.baseURL
	u.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + escapedPath
	if p, err := url.PathUnescape(u.RawPath); err == nil {
		u.Path = p
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, cl call) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, cl)
	if c.metrics != nil {
		c.metrics.ObserveCall(cl.op, status, err, time.Since(start))
	}
	return err
}

// roundTrip performs cl and returns the response status (0 when none arrived).
func (c *Client) roundTrip(ctx context.Context, cl call) (int, error) {
	client, err := c.httpClient(cl)
	if err != nil {
		return 0, err
	}

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return 0, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "%s: build request", cl.op)
	}

	resp, err := client.Do(req)
	if err != nil {
		c.logFailure(cl, 0, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, apperrors.Wrap(ctxErr, apperrors.ErrCodeCanceled, apperrors.GenericMessage)
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return 0, apperrors.Wrap(err, apperrors.ErrCodeTimeout, "The Gigglit service took too long to respond")
		}
		return 0, apperrors.Wrap(err, apperrors.ErrCodeUpstream, apperrors.GenericMessage)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logFailure(cl, resp.StatusCode, err)
		return resp.StatusCode, apperrors.Wrap(err, apperrors.ErrCodeUpstream, apperrors.GenericMessage)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := apperrors.FromStatus(resp.StatusCode, errorMessage(payload))
		c.logFailure(cl, resp.StatusCode, appErr)
		return resp.StatusCode, appErr
	}

	if cl.out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(payload, cl.out); err != nil {
		c.logFailure(cl, resp.StatusCode, err)
		return resp.StatusCode, apperrors.Wrap(err, apperrors.ErrCodeUpstream, apperrors.GenericMessage)
	}
	return resp.StatusCode, nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	var body io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.endpoint(cl.path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) logFailure(cl call, status int, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Debug("gigglit api call failed",
		slog.String("op", cl.op),
		slog.String("method", cl.method),
		slog.String("path", cl.path),
		slog.Int("status", status),
		slog.Any("error", err),
	)
}

// errorMessage extracts the backend's error text from a failure body.
func errorMessage(payload []byte) string {
	var body struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}

	if len(body.Error) > 0 {
		var s string
		if err := json.Unmarshal(body.Error, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body.Error, &nested); err == nil && strings.TrimSpace(nested.Message) != "" {
			return strings.TrimSpace(nested.Message)
		}
	}
	return strings.TrimSpace(body.Message)
}

// idPath builds "<prefix>/<escaped id><suffix>".
func idPath(prefix string, id fmt.Stringer, suffix string) string {
	return prefix + "/" + url.PathEscape(id.String()) + suffix
}
