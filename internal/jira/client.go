package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-insights/internal/config"
	"github.com/spec-kit/ticket-insights/internal/observability"
	"github.com/spec-kit/ticket-insights/pkg/util"
)

// searchFields is the explicit field-selection list sent with every
// page request to bound payload size. Custom field IDs from config are
// appended at construction.
var searchFields = []string{
	"summary", "status", "issuetype", "project", "labels",
	"duedate", "created", "resolutiondate", "assignee", "reporter", "priority",
}

// Client fetches issues from an upstream search endpoint. BaseURLs is
// an ordered candidate list: for each page request the candidates are
// tried in order and the first success wins; the combined error of all
// candidates surfaces only after every one has failed.
type Client struct {
	bases    []string
	token    string
	pageSize int
	fields   []string
	http     *http.Client
	metrics  *observability.Metrics
	log      *zap.Logger
}

// NewClient constructs a Client from configuration.
func NewClient(cfg config.JiraConfig, metrics *observability.Metrics, logger *zap.Logger) *Client {
	fields := append([]string{}, searchFields...)
	for _, id := range []string{cfg.ProjectTypeFieldID, cfg.RAGFieldID, cfg.StartDateFieldID} {
		if id != "" {
			fields = append(fields, id)
		}
	}
	fields = append(fields, cfg.BrandFieldIDs...)

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	return &Client{
		bases:    cfg.BaseURLs,
		token:    cfg.BearerToken,
		pageSize: pageSize,
		fields:   fields,
		http:     &http.Client{Timeout: cfg.Timeout()},
		metrics:  metrics,
		log:      logger,
	}
}

// SearchAll runs one logical query, following the continuation cursor
// until exhaustion. The cursor lives only for this call and is never
// persisted. Pages are fetched strictly sequentially because each
// page's cursor depends on the prior response.
func (c *Client) SearchAll(ctx context.Context, jql string) ([]RawIssue, error) {
	var all []RawIssue
	token := ""
	for {
		page, err := c.fetchPage(ctx, jql, token)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Issues...)
		if len(page.Issues) == 0 {
			break
		}
		if page.IsLast != nil && *page.IsLast {
			break
		}
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}
	c.log.Info("search complete", zap.String("jql", jql), zap.Int("issues", len(all)))
	return all, nil
}

// fetchPage requests one page, trying each candidate base URL in order.
func (c *Client) fetchPage(ctx context.Context, jql, pageToken string) (*SearchPage, error) {
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("maxResults", strconv.Itoa(c.pageSize))
	q.Set("fields", strings.Join(c.fields, ","))
	if pageToken != "" {
		q.Set("nextPageToken", pageToken)
	}

	var attempts []string
	sessionExpired := false
	for _, base := range c.bases {
		u := strings.TrimRight(base, "/") + "/search/jql?" + q.Encode()
		page, err := c.getPage(ctx, u)
		if err == nil {
			c.metrics.RecordFetchAttempt(base, true)
			return page, nil
		}
		c.metrics.RecordFetchAttempt(base, false)
		if util.HasCode(err, "SESSION_EXPIRED") {
			sessionExpired = true
		}
		c.log.Warn("endpoint attempt failed", zap.String("base", base), zap.Error(err))
		attempts = append(attempts, fmt.Sprintf("%s: %v", base, err))
	}

	combined := strings.Join(attempts, "; ")
	if sessionExpired {
		return nil, util.NewSessionExpired("upstream session expired: " + combined)
	}
	return nil, util.NewUpstreamError("all endpoints failed: "+combined, nil)
}

func (c *Client) getPage(ctx context.Context, u string) (*SearchPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		if isSessionExpiredBody(body) {
			return nil, util.NewSessionExpired("session expired marker in response")
		}
		return nil, fmt.Errorf("upstream status=%d body=%s", resp.StatusCode, trimBody(body))
	}

	var page SearchPage
	if err := json.Unmarshal(body, &page); err != nil {
		if isSessionExpiredBody(body) {
			return nil, util.NewSessionExpired("session expired marker in response")
		}
		return nil, fmt.Errorf("non-JSON response: %s", trimBody(body))
	}
	return &page, nil
}

// CreateIssue files one new issue and returns its key and browse URL.
// Candidates are tried in the same order as searches.
func (c *Client) CreateIssue(ctx context.Context, summary, description, assignee string) (string, string, error) {
	payload := createIssueRequest{
		Fields: createIssueFields{
			Summary:     summary,
			Description: description,
			IssueType:   map[string]any{"name": "Task"},
		},
	}
	if assignee != "" {
		payload.Fields.Assignee = map[string]any{"name": assignee}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", "", err
	}

	var attempts []string
	for _, base := range c.bases {
		u := strings.TrimRight(base, "/") + "/issue"
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
		if err != nil {
			return "", "", err
		}
		req.Header.Set("Content-Type", "application/json")
		c.authorize(req)

		resp, err := c.http.Do(req)
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", base, err))
			continue
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", base, readErr))
			continue
		}
		if resp.StatusCode >= 300 {
			attempts = append(attempts, fmt.Sprintf("%s: status=%d body=%s", base, resp.StatusCode, trimBody(body)))
			continue
		}
		var created createIssueResponse
		if err := json.Unmarshal(body, &created); err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", base, err))
			continue
		}
		return created.Key, BrowseURL(created.Self, created.Key), nil
	}
	return "", "", util.NewUpstreamError("issue creation failed: "+strings.Join(attempts, "; "), nil)
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// BrowseURL derives the user-facing issue URL from an API self link.
func BrowseURL(self, key string) string {
	if self == "" || key == "" {
		return ""
	}
	parsed, err := url.Parse(self)
	if err != nil {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host + "/browse/" + key
}

// isSessionExpiredBody detects the login-redirect HTML some proxies
// return in place of a JSON error once the session has lapsed.
func isSessionExpiredBody(body []byte) bool {
	lowered := strings.ToLower(string(body))
	if !strings.Contains(lowered, "<html") {
		return false
	}
	return strings.Contains(lowered, "session expired") || strings.Contains(lowered, "session has expired")
}

func trimBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200]
	}
	return s
}
