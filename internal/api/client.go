// Package api is the HTTP client for the interview assistant backend.
//
// Every call issues exactly one request. There is no retry, backoff or
// client-side timeout; callers cancel through the context.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// DefaultBaseURL is the backend the client talks to unless configured
// otherwise. It is set via ldflags at build time.
var DefaultBaseURL = "http://localhost:8000"

// TokenSource yields the current bearer token, or "" when logged out.
// *session.Store satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// ProgressFunc returns a writer that observes an upload body of the given
// size as it is sent. The writer is closed when it implements io.Closer.
type ProgressFunc func(description string, size int64) io.Writer

// Client calls the backend API.
type Client struct {
	baseURL  string
	tokens   TokenSource
	client   *http.Client
	logger   *log.Logger
	progress ProgressFunc
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithLogger enables request logging.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUploadProgress reports multipart upload progress.
func WithUploadProgress(fn ProgressFunc) Option {
	return func(c *Client) { c.progress = fn }
}

// New creates a Client for baseURL. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// request describes one backend call.
type request struct {
	method      string
	path        string
	auth        bool
	body        []byte
	contentType string
	progress    string // upload description; empty disables progress
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, auth: true}, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, auth bool, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshalling %s request: %w", path, err)
	}
	return c.do(ctx, request{
		method:      method,
		path:        path,
		auth:        auth,
		body:        body,
		contentType: "application/json",
	}, out)
}

func (c *Client) sendForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, out)
}

// sendFile posts f as the multipart field "file". The part carries the
// file's own content type, which the backend checks.
func (c *Client) sendFile(ctx context.Context, path string, f File, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(f.Name)))
	h.Set("Content-Type", f.ContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("creating multipart part: %w", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return fmt.Errorf("writing multipart part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		auth:        true,
		body:        buf.Bytes(),
		contentType: mw.FormDataContentType(),
		progress:    f.Name,
	}, out)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

// do sends r and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
		if r.progress != "" && c.progress != nil {
			w := c.progress(r.progress, int64(len(r.body)))
			if closer, ok := w.(io.Closer); ok {
				defer closer.Close()
			}
			body = io.TeeReader(body, w)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if r.body != nil {
		// Keep the length known even when the body is wrapped for progress.
		httpReq.ContentLength = int64(len(r.body))
	}
	if r.contentType != "" {
		httpReq.Header.Set("Content-Type", r.contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	if r.auth && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("reading session token: %w", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logf("%s %s (request %s)", r.method, r.path, requestID)

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return &TransportError{Method: r.method, Path: r.path, Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return &TransportError{Method: r.method, Path: r.path, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.logf("%s %s -> %d (%d bytes)", r.method, r.path, httpResp.StatusCode, len(respBody))

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return &Error{
			Method:     r.method,
			Path:       r.path,
			StatusCode: httpResp.StatusCode,
			Detail:     parseDetail(respBody),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &TransportError{Method: r.method, Path: r.path, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
