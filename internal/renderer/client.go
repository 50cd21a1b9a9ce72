package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"certwizard/internal/config"
	"certwizard/internal/model"
	"go.uber.org/zap"
)

// Client talks to the certificate-rendering service: template mirroring,
// generation and archive download. One awaited request at a time, no retries;
// a failed call is retried only by a new user action.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.SugaredLogger
}

func NewClient(cfg config.RendererConfig, logger *zap.SugaredLogger) *Client {
	// For unit test
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// GenerateRequest is the body of POST /certificates/generate.
type GenerateRequest struct {
	TemplateId    string `json:"template_id"`
	EventName     string `json:"event_name,omitempty"`
	EventLocation string `json:"event_location,omitempty"`
	IssueDate     string `json:"issue_date,omitempty"`
	SendEmail     bool   `json:"send_email"`
}

type GenerateResult struct {
	Count   int    `json:"count"`
	BatchId string `json:"batchId"`
}

func (c *Client) GenerateCertificates(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	var result GenerateResult
	if err := c.doJSON(ctx, http.MethodPost, "/certificates/generate", req, &result); err != nil {
		return GenerateResult{}, err
	}
	return result, nil
}

// DownloadCertificates streams the generated archive. The caller owns the
// returned reader and must close it.
func (c *Client) DownloadCertificates(ctx context.Context, batchId string) (io.ReadCloser, error) {
	path := "/certificates/download"
	if batchId != "" {
		path += "/" + batchId
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rendering service unreachable: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		c.logger.Debugf("Rendering service returned %d for GET %s", resp.StatusCode, path)
		return nil, c.responseError(resp)
	}

	return resp.Body, nil
}

func (c *Client) ListTemplates(ctx context.Context) ([]model.TemplateEntity, error) {
	var templates []model.TemplateEntity
	if err := c.doJSON(ctx, http.MethodGet, "/templates", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// CreateTemplate persists a template and returns the identifier the service
// assigned to it.
func (c *Client) CreateTemplate(ctx context.Context, t model.TemplateEntity) (string, error) {
	body := templateBody(t)

	var created struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/templates", body, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("rendering service returned no template id")
	}
	return created.ID, nil
}

func (c *Client) UpdateTemplate(ctx context.Context, t model.TemplateEntity) error {
	return c.doJSON(ctx, http.MethodPut, "/templates/"+t.ID, templateBody(t), nil)
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/templates/"+id, nil, nil)
}

func templateBody(t model.TemplateEntity) map[string]any {
	return map[string]any{
		"name":        t.Name,
		"description": t.Description,
		"type":        t.Type,
		"content":     t.Content,
	}
}

// doJSON performs one JSON round trip. HTTP 204 is the empty-success
// sentinel: out stays untouched.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rendering service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debugf("Rendering service returned %d for %s %s", resp.StatusCode, method, path)
		return c.responseError(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode rendering service response: %w", err)
	}
	return nil
}

// responseError extracts the server-provided message from a non-2xx response
// body, falling back to a generic "HTTP {status}" message.
func (c *Client) responseError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(data) > 0 {
		var envelope struct {
			Detail  string `json:"detail"`
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(data, &envelope); jsonErr == nil {
			if envelope.Detail != "" {
				return fmt.Errorf("%s", envelope.Detail)
			}
			if envelope.Message != "" {
				return fmt.Errorf("%s", envelope.Message)
			}
		}
	}

	return fmt.Errorf("HTTP %d", resp.StatusCode)
}
