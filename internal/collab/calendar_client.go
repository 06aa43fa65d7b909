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

	"github.com/spec-kit/ticket-insights/internal/config"
)

// CalendarClient calls the calendar/email bridge to create drafts.
type CalendarClient struct {
	baseURL string
	http    *http.Client
}

// NewCalendarClient constructs the client.
func NewCalendarClient(cfg config.CalendarConfig) *CalendarClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CalendarClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Draft creates an email/calendar draft and returns its identifier.
func (c *CalendarClient) Draft(ctx context.Context, recipients []string, subject, body string, draft bool) (string, error) {
	if c.baseURL == "" {
		return "", errors.New("calendar: base URL not configured")
	}
	payload := map[string]any{
		"recipients": recipients,
		"subject":    subject,
		"body":       body,
		"draft":      draft,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/drafts", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("calendar status=%d", resp.StatusCode)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.ID, nil
}
