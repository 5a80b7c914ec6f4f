package cromwell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultHost is the Cromwell endpoint used when none is configured.
const DefaultHost = "http://localhost:8000"

const apiBase = "/api/workflows/v1"

// Client is an HTTP client for the Cromwell workflow-execution API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Cromwell API client for the given server URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultHost
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger.With("component", "cromwell"),
	}
}

// Submit sends a workflow to the server and returns the assigned workflow ID.
// definition and inputs are paths to the staged WDL and inputs JSON files;
// dependencies is the path to the imports zip, or empty when the workflow
// has none.
func (c *Client) Submit(ctx context.Context, definition, inputs, dependencies string) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	if err := attachFile(form, "workflowSource", definition); err != nil {
		return "", err
	}
	if err := attachFile(form, "workflowInputs", inputs); err != nil {
		return "", err
	}
	if dependencies != "" {
		if err := attachFile(form, "workflowDependencies", dependencies); err != nil {
			return "", err
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("finalize form: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, apiBase, form.FormDataContentType(), &body)
	if err != nil {
		return "", fmt.Errorf("submit: %w", err)
	}
	defer resp.Body.Close()

	var workflow struct {
		ID     string `json:"id"`
		Status Status `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&workflow); err != nil {
		return "", fmt.Errorf("submit: decode response: %w", err)
	}
	if workflow.ID == "" {
		return "", fmt.Errorf("submit: response missing workflow id")
	}

	return workflow.ID, nil
}

// Status queries the current status of a workflow. Each call is a fresh
// round trip; nothing is cached.
func (c *Client) Status(ctx context.Context, id string) (Status, error) {
	resp, err := c.do(ctx, http.MethodGet, apiBase+"/"+id+"/status", "", nil)
	if err != nil {
		return "", fmt.Errorf("status: %w", err)
	}
	defer resp.Body.Close()

	var workflow struct {
		ID     string `json:"id"`
		Status Status `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&workflow); err != nil {
		return "", fmt.Errorf("status: decode response: %w", err)
	}

	return workflow.Status, nil
}

// Outputs fetches the declared outputs of a workflow, preserving the order
// the server reported them in. Only valid once the workflow has succeeded.
func (c *Client) Outputs(ctx context.Context, id string) ([]Output, error) {
	resp, err := c.do(ctx, http.MethodGet, apiBase+"/"+id+"/outputs", "", nil)
	if err != nil {
		return nil, fmt.Errorf("outputs: %w", err)
	}
	defer resp.Body.Close()

	outputs, err := decodeOutputs(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("outputs: decode response: %w", err)
	}
	return outputs, nil
}

// Abort requests termination of a running workflow.
func (c *Client) Abort(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodPost, apiBase+"/"+id+"/abort", "", nil)
	if err != nil {
		return fmt.Errorf("abort: %w", err)
	}
	resp.Body.Close()
	return nil
}

// do executes an HTTP request and returns the response, treating any status
// of 400 or above as an error.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("HTTP request", "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, respBody)
	}

	return resp, nil
}

// attachFile adds the contents of path to the form under the given field.
func attachFile(form *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	part, err := form.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form field %s: %w", field, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("write form field %s: %w", field, err)
	}
	return nil
}
