package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client is the API surface used by the CLI.
type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, email, password, role string) (*Session, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	Me(ctx context.Context, token string) (*models.UserSummary, error)
	Team(ctx context.Context, token string) ([]models.UserSummary, error)
	Stats(ctx context.Context, token string) (*models.DashboardStats, error)
	Clients(ctx context.Context, token string) ([]models.Client, error)
	Projects(ctx context.Context, token string) ([]models.Project, error)
	Invoices(ctx context.Context, token string) ([]models.Invoice, error)
	UploadAttachment(ctx context.Context, token, invoiceID string, r io.Reader, size int64) (*models.AttachmentURL, error)
	DownloadAttachment(ctx context.Context, token, invoiceID string, w io.Writer) (int64, error)
}

// Session is the body of a successful register or login.
type Session struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	ExpiresAt   time.Time          `json:"expires_at"`
	User        models.UserSummary `json:"user"`
}

// HTTPClient talks to the AgencyDesk REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	objects *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for baseURL (e.g. "http://127.0.0.1:8001").
// API requests are traced through otelhttp and bounded by timeout; object
// storage transfers are traced but only bounded by the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	transport := otelhttp.NewTransport(http.DefaultTransport)
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Transport: transport},
		objects: &http.Client{Transport: transport},
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", "", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password, role string) (*Session, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	if role != "" {
		body["role"] = role
	}
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*Session, error) {
	body := map[string]string{"username": username, "password": password}
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.UserSummary, error) {
	var u models.UserSummary
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Team(ctx context.Context, token string) ([]models.UserSummary, error) {
	var out []models.UserSummary
	if err := c.do(ctx, http.MethodGet, "/api/team", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Stats(ctx context.Context, token string) (*models.DashboardStats, error) {
	var st models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", token, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *HTTPClient) Clients(ctx context.Context, token string) ([]models.Client, error) {
	var out []models.Client
	if err := c.do(ctx, http.MethodGet, "/api/clients", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Projects(ctx context.Context, token string) ([]models.Project, error) {
	var out []models.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Invoices(ctx context.Context, token string) ([]models.Invoice, error) {
	var out []models.Invoice
	if err := c.do(ctx, http.MethodGet, "/api/invoices", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do sends one request. Transport failures become ErrUnavailable, non-2xx
// answers become *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var payload struct {
		Detail any `json:"detail"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		switch d := payload.Detail.(type) {
		case string:
			apiErr.Detail = d
		case nil:
		default:
			b, _ := json.Marshal(d)
			apiErr.Detail = string(b)
		}
	}
	return apiErr
}
