// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the RAG backend.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the base URL of a locally running backend.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default timeout for API requests. Queries run a
	// full retrieval plus generation pass, so this is generous.
	DefaultTimeout = 120 * time.Second

	// DefaultTopK is the number of passages the backend retrieves per query.
	DefaultTopK = 5

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client for all backend requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// Sentinel errors for backend failure modes.
var (
	// ErrAuthFailed indicates a request was rejected with 401 (missing,
	// invalid, or expired token).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrInvalidPassword indicates the password sent to /auth was rejected.
	ErrInvalidPassword = errors.New("incorrect password")

	// ErrUnavailable indicates the backend could not be reached at all.
	ErrUnavailable = errors.New("backend unreachable")
)

// Client is the RAG backend API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL. Requests that
// require authentication will fail with ErrAuthFailed until a token is set
// via WithToken.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: sharedHTTPClient,
	}
}

// WithToken sets the bearer token used for authenticated endpoints.
func (c *Client) WithToken(token string) *Client {
	c.token = token
	return c
}

// WithTimeout overrides the request timeout (uses a dedicated client).
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	dedicated := *sharedHTTPClient
	dedicated.Timeout = timeout
	c.httpClient = &dedicated
	return c
}

// BaseURL returns the backend base URL this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasToken reports whether a bearer token is set.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// =============================================================================
// API: Request/Response Logging (without sensitive data)
// =============================================================================

// logRequest logs an API request without exposing sensitive data.
// SECURITY: Does not log headers (contain auth) or body (contains queries).
func (c *Client) logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs an API response with duration.
// SECURITY: Only logs status code and duration, no response body.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}

// setHeaders sets the standard headers for backend requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ragchat/0.1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// =============================================================================
// ENDPOINTS
// =============================================================================

// Login exchanges the backend password for a bearer token. The token is
// returned but NOT stored on the client; callers decide where it lives.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	body, err := json.Marshal(authRequest{Password: password})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var resp authResponse
	if err := c.postJSON(ctx, "/auth", body, &resp); err != nil {
		if errors.Is(err, ErrAuthFailed) {
			return "", ErrInvalidPassword
		}
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("backend returned an empty token")
	}
	return resp.Token, nil
}

// Query sends a retrieval query with recent question/answer pairs as
// conversational context and returns the generated answer.
func (c *Client) Query(ctx context.Context, query string, previous []model.QAPair) (*QueryResponse, error) {
	if previous == nil {
		previous = []model.QAPair{}
	}
	body, err := json.Marshal(queryRequest{
		Query:            query,
		TopK:             DefaultTopK,
		PreviousMessages: previous,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var resp QueryResponse
	if err := c.postJSON(ctx, "/query", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadFile is one file of an upload batch.
type UploadFile struct {
	Name string
	Data []byte
}

// Upload sends a multipart batch of documents for ingestion.
func (c *Client) Upload(ctx context.Context, files []UploadFile) (*UploadResponse, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to upload")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile("files", filepath.Base(f.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp UploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health probes the backend /health endpoint. It does not require a token.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	var resp HealthResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteDocuments removes every ingested document from the backend.
func (c *Client) DeleteDocuments(ctx context.Context) (*DeleteResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/documents", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	var resp DeleteResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// postJSON performs a POST with a JSON body and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes a request, maps error responses, and decodes the body into out.
// SECURITY: Clears the Authorization header after the request to keep the
// token out of any downstream logging of the request object.
func (c *Client) do(req *http.Request, out any) error {
	c.logRequest(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	req.Header.Del("Authorization")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logResponse(resp, time.Since(start))

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode/100 != 2 {
		return handleErrorResponse(resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// readResponse reads the response body with a size limit.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse converts HTTP error responses to Go errors.
func handleErrorResponse(statusCode int, body []byte) error {
	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && !envelope.Detail.IsZero() {
		if statusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %s", ErrAuthFailed, envelope.Detail)
		}
		return &APIError{Status: statusCode, Detail: envelope.Detail}
	}

	// Fallback for unparseable error bodies.
	if statusCode == http.StatusUnauthorized {
		return ErrAuthFailed
	}
	return &APIError{Status: statusCode, Detail: Detail{Text: strings.TrimSpace(string(body))}}
}
