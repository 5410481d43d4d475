// Package remote is the HTTP client for the document ingestion and
// answering service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/liliang-cn/askdesk/internal/domain"
)

// Default field names and paths used by the service
const (
	DefaultUploadField = "file"
	DefaultQueryField  = "question"
	DefaultHealthPath  = "/health"

	uploadPath = "/upload"
	queryPath  = "/ask"
)

// Client submits artifacts and questions to the remote service
type Client struct {
	BaseURL     string
	APIKey      string
	UploadField string
	QueryField  string
	HealthPath  string
	HTTPClient  *http.Client

	logger *zap.Logger
}

// Option configures the client
type Option func(*Client)

// WithAPIKey sets the key sent in the X-API-Key header
func WithAPIKey(key string) Option {
	return func(c *Client) { c.APIKey = key }
}

// WithTimeout sets the HTTP timeout. Zero means no client-side deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithFields overrides the multipart and form field names
func WithFields(upload, query string) Option {
	return func(c *Client) {
		if upload != "" {
			c.UploadField = upload
		}
		if query != "" {
			c.QueryField = query
		}
	}
}

// WithHealthPath overrides the path probed by Ping
func WithHealthPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.HealthPath = path
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a new Client
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		UploadField: DefaultUploadField,
		QueryField:  DefaultQueryField,
		HealthPath:  DefaultHealthPath,
		HTTPClient:  &http.Client{},
		logger:      zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type requestIDKey struct{}

// WithRequestID attaches the id sent as X-Request-ID on calls made with ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id attached to ctx, generating one if absent
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// SubmitArtifact uploads the artifact as a multipart body.
// The file is read again at submission time: if it can no longer be read,
// or now exceeds the size ceiling, a *domain.ValidationError is returned
// and nothing is sent. Any other error is a *domain.TransportError;
// server-reported failures come back in the result's Error field.
func (c *Client) SubmitArtifact(ctx context.Context, a *domain.Artifact) (*domain.UploadResult, error) {
	const op = "upload"
	if a == nil {
		return nil, &domain.ValidationError{Field: "file", Err: domain.ErrNoFile}
	}

	body, contentType, err := c.multipartBody(a)
	if err != nil {
		return nil, err
	}

	var out domain.UploadResult
	status, err := c.post(ctx, op, uploadPath, contentType, body, &out)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest && out.Error == "" && out.Message == "" {
		out.Error = statusMessage(status)
	}
	return &out, nil
}

// SubmitQuery sends the question as a form-encoded body. A payload with
// neither an answer nor an error is reported as a malformed response.
func (c *Client) SubmitQuery(ctx context.Context, text string) (*domain.QueryResult, error) {
	const op = "ask"

	form := url.Values{}
	form.Set(c.QueryField, text)

	var out domain.QueryResult
	status, err := c.post(ctx, op, queryPath, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &out)
	if err != nil {
		return nil, err
	}
	if out.Answer == "" && out.Error == "" {
		if status >= http.StatusBadRequest {
			out.Error = statusMessage(status)
			return &out, nil
		}
		return nil, &domain.TransportError{Op: op, Err: domain.ErrMalformedResponse}
	}
	return &out, nil
}

// Ping probes the health endpoint
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+c.HealthPath, nil)
	if err != nil {
		return &domain.TransportError{Op: "ping", Err: err}
	}
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &domain.TransportError{Op: "ping", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return &domain.TransportError{Op: "ping", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return nil
}

func (c *Client) post(ctx context.Context, op, path, contentType string, body io.Reader, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, body)
	if err != nil {
		return 0, &domain.TransportError{Op: op, Err: err}
	}
	id := RequestID(ctx)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", id)
	c.authorize(req)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Warn("Request failed",
			zap.String("op", op),
			zap.String("request_id", id),
			zap.Error(err),
		)
		return 0, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("Request completed",
		zap.String("op", op),
		zap.String("request_id", id),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	// The body is decoded whatever the status; the service reports
	// failures as {"error": "..."} payloads.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &domain.TransportError{
			Op:  op,
			Err: fmt.Errorf("%w (status %d): %v", domain.ErrMalformedResponse, resp.StatusCode, err),
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) multipartBody(a *domain.Artifact) (io.Reader, string, error) {
	f, err := os.Open(a.Path)
	if err != nil {
		return nil, "", &domain.ValidationError{
			Field: "file",
			Err:   fmt.Errorf("%w: %v", domain.ErrUnreadable, err),
		}
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(c.UploadField), escapeQuotes(a.Name)))
	h.Set("Content-Type", a.MIMEType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", &domain.TransportError{Op: "upload", Err: fmt.Errorf("failed to create form part: %w", err)}
	}
	// the file may have changed since it was picked
	n, err := io.Copy(part, io.LimitReader(f, domain.MaxArtifactSize+1))
	if err != nil {
		return nil, "", &domain.ValidationError{
			Field: "file",
			Err:   fmt.Errorf("%w: %v", domain.ErrUnreadable, err),
		}
	}
	if n > domain.MaxArtifactSize {
		return nil, "", &domain.ValidationError{Field: "file", Err: domain.ErrTooLarge}
	}
	if err := w.Close(); err != nil {
		return nil, "", &domain.TransportError{Op: "upload", Err: fmt.Errorf("failed to finish form: %w", err)}
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *Client) authorize(req *http.Request) {
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("server returned %d %s", status, text)
	}
	return fmt.Sprintf("server returned %d", status)
}
