package jira

import (
	"strings"
	"time"

	"github.com/spec-kit/ticket-insights/internal/config"
	"github.com/spec-kit/ticket-insights/internal/derive"
	"github.com/spec-kit/ticket-insights/internal/domain"
	"github.com/spec-kit/ticket-insights/pkg/util"
)

// DefaultProjectType is used when the classification field carries no
// tags at all.
const DefaultProjectType = "Not yet classified"

var dateLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	time.RFC3339,
	"2006-01-02",
}

// Mapper converts raw upstream issues into tickets, filling every field
// with a safe default when the upstream value is missing. It makes no
// network calls; the only failure mode is a record without its key.
type Mapper struct {
	cfg    config.JiraConfig
	stream string
	now    func() time.Time
}

// NewMapper constructs a Mapper. The clock is injected so derivations
// are deterministic under test.
func NewMapper(cfg config.JiraConfig, stream string, now func() time.Time) *Mapper {
	if now == nil {
		now = time.Now
	}
	return &Mapper{cfg: cfg, stream: stream, now: now}
}

// Map converts one raw issue into a domain.Ticket.
func (m *Mapper) Map(raw RawIssue) (domain.Ticket, error) {
	if strings.TrimSpace(raw.Key) == "" {
		return domain.Ticket{}, util.NewMappingError("raw record missing issue key")
	}

	f := raw.Fields
	now := m.now()

	status := nestedString(f, "status", "name")
	if status == "" {
		status = "Unknown"
	}
	statusCategory := ""
	if statusMap, ok := f["status"].(map[string]any); ok {
		statusCategory = nestedString(statusMap, "statusCategory", "name")
	}
	isDone := strings.EqualFold(statusCategory, "done")

	issueType := nestedString(f, "issuetype", "name")
	if issueType == "" {
		issueType = "Unknown"
	}

	rag := optionValue(f[m.cfg.RAGFieldID])
	if rag == "" {
		rag = "Unknown"
	}

	classificationTags := optionValues(f[m.cfg.ProjectTypeFieldID])
	projectType := DefaultProjectType
	if len(classificationTags) > 0 {
		projectType = classificationTags[0]
	}

	labels := stringSlice(f["labels"])
	brandFields := make([]string, 0, len(m.cfg.BrandFieldIDs))
	for _, id := range m.cfg.BrandFieldIDs {
		brandFields = append(brandFields, optionValues(f[id])...)
	}

	due := parseDate(stringValue(f["duedate"]))
	created := parseDate(stringValue(f["created"]))
	resolved := parseDate(stringValue(f["resolutiondate"]))
	start := parseDate(stringValue(f[m.cfg.StartDateFieldID]))

	agingDays := derive.AgingDays(due, now)

	ticket := domain.Ticket{
		Key:             raw.Key,
		URL:             BrowseURL(raw.Self, raw.Key),
		Summary:         stringValue(f["summary"]),
		Status:          status,
		RAG:             rag,
		IssueType:       issueType,
		ProjectKey:      nestedString(f, "project", "key"),
		ProjectName:     nestedString(f, "project", "name"),
		ProjectType:     projectType,
		Labels:          labels,
		StartDate:       start,
		DueDate:         due,
		CreatedAt:       created,
		ResolvedAt:      resolved,
		Assignee:        nestedString(f, "assignee", "displayName"),
		Reporter:        nestedString(f, "reporter", "displayName"),
		Priority:        nestedString(f, "priority", "name"),
		AgingDays:       agingDays,
		AgingBucket:     derive.BucketFor(agingDays),
		DeliveryOutcome: derive.Outcome(resolved, due),
		IsDone:          isDone,
		IsOverdue:       agingDays != nil && *agingDays > 0,
		Active:          !isDone,
		Stream:          m.stream,
		Category:        derive.CategoryFor(projectType),
		Brand:           derive.Brand(labels, brandFields),
		RecentlyCreated: derive.WithinLast24h(created, now),
	}
	return ticket, nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func nestedString(f map[string]any, outer, inner string) string {
	if m, ok := f[outer].(map[string]any); ok {
		return stringValue(m[inner])
	}
	return ""
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// optionValues reads a multi-value select field as its ordered list of
// tag values. Single options and bare strings are accepted too.
func optionValues(v any) []string {
	switch typed := v.(type) {
	case nil:
		return nil
	case string:
		if typed == "" {
			return nil
		}
		return []string{typed}
	case map[string]any:
		if val := stringValue(typed["value"]); val != "" {
			return []string{val}
		}
		return nil
	case []any:
		var out []string
		for _, item := range typed {
			out = append(out, optionValues(item)...)
		}
		return out
	default:
		return nil
	}
}

func optionValue(v any) string {
	values := optionValues(v)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// parseDate treats malformed or absent date strings as absent.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
