package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-insights/internal/config"
	"github.com/spec-kit/ticket-insights/internal/domain"
)

// ParserClient calls the remote AI parsing endpoint.
type ParserClient struct {
	baseURL string
	key     string
	http    *http.Client
	log     *zap.Logger
}

// NewParserClient constructs the client; a missing base URL is allowed
// and surfaces as an error on first use.
func NewParserClient(cfg config.ParserConfig, logger *zap.Logger) *ParserClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ParserClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		key:     cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// Parse submits extracted text plus its source filename and decodes the
// structured summary.
func (c *ParserClient) Parse(ctx context.Context, text, filename string) (domain.MeetingSummary, error) {
	if c.baseURL == "" {
		return domain.MeetingSummary{}, errors.New("parser: base URL not configured")
	}
	payload := map[string]string{"text": text, "filename": filename}
	b, err := json.Marshal(payload)
	if err != nil {
		return domain.MeetingSummary{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", bytes.NewReader(b))
	if err != nil {
		return domain.MeetingSummary{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.MeetingSummary{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return domain.MeetingSummary{}, fmt.Errorf("parser status=%d", resp.StatusCode)
	}

	var summary domain.MeetingSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return domain.MeetingSummary{}, err
	}
	return summary, nil
}
