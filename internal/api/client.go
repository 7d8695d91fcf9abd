// Package api provides the HTTP client for the document-audit backend. Each
// method is a single request/response round trip: no retries, no backoff, no
// session state. All state lives in the callers (workflow controller and
// connection manager).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/coderite/auditor/internal/debug"
	"github.com/coderite/auditor/internal/domain"
)

// Client is the gateway to the backend. The workflow controller and the
// connection manager depend on this interface; HTTPClient is the real
// implementation and Mock the test double.
type Client interface {
	// Connection store + tester.
	ListConnections(ctx context.Context) ([]domain.Connection, error)
	CreateConnection(ctx context.Context, draft domain.Connection) error
	UpdateConnection(ctx context.Context, id int, draft domain.Connection) error
	TestConnection(ctx context.Context, draft domain.Connection) error
	ActivateConnection(ctx context.Context, id int) error
	DeleteConnection(ctx context.Context, id int) error

	// Audit workflow.
	Upload(ctx context.Context, filename string, content io.Reader) (*domain.Document, error)
	Categories(ctx context.Context) ([]string, error)
	Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.ReviewResponse, error)

	// Health probe.
	Health(ctx context.Context) error
}

// HTTPClient talks to the backend over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the backend rooted at baseURL
// (e.g. "http://localhost:8000/api"). A timeout of 0 means no timeout;
// analysis calls can take minutes on large documents.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) ListConnections(ctx context.Context) ([]domain.Connection, error) {
	var conns []domain.Connection
	if err := c.getJSON(ctx, "/connections", &conns); err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return conns, nil
}

func (c *HTTPClient) CreateConnection(ctx context.Context, draft domain.Connection) error {
	if err := c.sendJSON(ctx, http.MethodPost, "/connections", draft.Draft(), nil); err != nil {
		return fmt.Errorf("create connection: %w", err)
	}
	return nil
}

func (c *HTTPClient) UpdateConnection(ctx context.Context, id int, draft domain.Connection) error {
	path := fmt.Sprintf("/connections/%d", id)
	if err := c.sendJSON(ctx, http.MethodPut, path, draft.Draft(), nil); err != nil {
		return fmt.Errorf("update connection %d: %w", id, err)
	}
	return nil
}

// TestConnection issues a live connectivity probe for the given draft. It is
// side-effect-free with respect to stored records. A rejection surfaces the
// backend's reason via StatusError.Detail.
func (c *HTTPClient) TestConnection(ctx context.Context, draft domain.Connection) error {
	return c.sendJSON(ctx, http.MethodPost, "/connections/test", draft.Draft(), nil)
}

func (c *HTTPClient) ActivateConnection(ctx context.Context, id int) error {
	path := fmt.Sprintf("/connections/%d/activate", id)
	if err := c.sendJSON(ctx, http.MethodPut, path, nil, nil); err != nil {
		return fmt.Errorf("activate connection %d: %w", id, err)
	}
	return nil
}

func (c *HTTPClient) DeleteConnection(ctx context.Context, id int) error {
	path := fmt.Sprintf("/connections/%d", id)
	if err := c.sendJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete connection %d: %w", id, err)
	}
	return nil
}

// Upload sends the file as multipart form data and returns the extracted
// document text.
func (c *HTTPClient) Upload(ctx context.Context, filename string, content io.Reader) (*domain.Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read file for upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var doc domain.Document
	if err := c.do(req, &doc); err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	return &doc, nil
}

func (c *HTTPClient) Categories(ctx context.Context) ([]string, error) {
	var result struct {
		Categories []string `json:"categories"`
	}
	if err := c.getJSON(ctx, "/checklists", &result); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return result.Categories, nil
}

func (c *HTTPClient) Analyze(ctx context.Context, areq domain.AnalyzeRequest) (*domain.ReviewResponse, error) {
	var review domain.ReviewResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/analyze", areq, &review); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	return &review, nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	var result struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/health", &result); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}

// getJSON issues a GET and decodes the 2xx response body into out.
func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

// sendJSON issues a request with an optional JSON body and decodes the 2xx
// response into out when out is non-nil.
func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// do executes the request, maps non-2xx responses to StatusError, and decodes
// the body into out when out is non-nil.
func (c *HTTPClient) do(req *http.Request, out any) error {
	debug.Logf("api: %s %s", req.Method, req.URL.Path)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		debug.Logf("api: %s %s -> %d", req.Method, req.URL.Path, resp.StatusCode)
		return &StatusError{StatusCode: resp.StatusCode, Detail: extractDetail(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
