package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/n3xa/n3xa/internal/domain"
	"github.com/n3xa/n3xa/internal/ports"
)

// HTTPClient calls the summarizer service over HTTP
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a client for the service at baseURL. timeout bounds
// the whole request including the body read.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// Summarize posts the ticket fields to /generate-summary
func (c *HTTPClient) Summarize(ctx context.Context, req ports.SummaryRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-summary", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", domain.ErrSummarizerUnavailable("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", domain.ErrSummarizerUnavailable(fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))), nil)
	}

	var out summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", domain.ErrSummarizerUnavailable("invalid response body", err)
	}
	if strings.TrimSpace(out.Summary) == "" {
		return "", domain.ErrSummarizerUnavailable("empty summary", nil)
	}
	return out.Summary, nil
}
