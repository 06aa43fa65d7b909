package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ExtractorClient calls the document text-extraction collaborator.
type ExtractorClient struct {
	baseURL string
	http    *http.Client
}

// NewExtractorClient constructs the client.
func NewExtractorClient(baseURL string, timeout time.Duration) *ExtractorClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ExtractorClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Extract submits the binary document and returns its plain text. The
// collaborator fails when the expected document part is absent; that
// error is surfaced as-is.
func (c *ExtractorClient) Extract(ctx context.Context, document []byte, filename string) (string, error) {
	if c.baseURL == "" {
		return "", errors.New("extractor: base URL not configured")
	}
	u := c.baseURL + "/extract?filename=" + url.QueryEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(document))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("extractor status=%d", resp.StatusCode)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Text, nil
}
