package jira

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-insights/internal/config"
	"github.com/spec-kit/ticket-insights/internal/domain"
)

var testJiraCfg = config.JiraConfig{
	ProjectTypeFieldID: "customfield_11100",
	BrandFieldIDs:      []string{"customfield_11200"},
	RAGFieldID:         "customfield_11300",
	StartDateFieldID:   "customfield_11400",
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func testMapper() *Mapper {
	return NewMapper(testJiraCfg, "Consumer", fixedNow)
}

func TestMapFullIssue(t *testing.T) {
	raw := RawIssue{
		Key:  "PROJ-42",
		Self: "https://tracker.example.com/rest/api/3/issue/10042",
		Fields: map[string]any{
			"summary": "Replace catalog feed",
			"status": map[string]any{
				"name":           "In Progress",
				"statusCategory": map[string]any{"name": "In Progress"},
			},
			"issuetype": map[string]any{"name": "Story"},
			"project":   map[string]any{"key": "PROJ", "name": "Projects"},
			"labels":    []any{"selleys-paint", "q3"},
			"duedate":   "2024-06-10",
			"created":   "2024-06-15T01:30:00.000+0000",
			"assignee":  map[string]any{"displayName": "Dana Field"},
			"reporter":  map[string]any{"displayName": "Lee Chu"},
			"priority":  map[string]any{"name": "High"},
			"customfield_11100": []any{
				map[string]any{"value": "Tactical delivery"},
				map[string]any{"value": "Q3"},
			},
			"customfield_11300": map[string]any{"value": "Amber"},
		},
	}

	ticket, err := testMapper().Map(raw)
	require.NoError(t, err)

	assert.Equal(t, "PROJ-42", ticket.Key)
	assert.Equal(t, "https://tracker.example.com/browse/PROJ-42", ticket.URL)
	assert.Equal(t, "In Progress", ticket.Status)
	assert.Equal(t, "Amber", ticket.RAG)
	assert.Equal(t, "Tactical delivery", ticket.ProjectType, "first tag is primary")
	assert.Equal(t, domain.CategoryTactical, ticket.Category)
	assert.Equal(t, "Selleys", ticket.Brand)
	assert.Equal(t, "Consumer", ticket.Stream)
	require.NotNil(t, ticket.AgingDays)
	assert.Equal(t, 5, *ticket.AgingDays)
	assert.Equal(t, domain.Bucket0To30, ticket.AgingBucket)
	assert.True(t, ticket.IsOverdue)
	assert.False(t, ticket.IsDone)
	assert.True(t, ticket.Active)
	assert.True(t, ticket.RecentlyCreated)
	assert.Equal(t, domain.OutcomeUnknownDone, ticket.DeliveryOutcome)
}

func TestMapDefaultsWhenFieldsMissing(t *testing.T) {
	ticket, err := testMapper().Map(RawIssue{Key: "PROJ-1", Fields: map[string]any{}})
	require.NoError(t, err)

	assert.Equal(t, "", ticket.Summary)
	assert.Equal(t, "Unknown", ticket.Status)
	assert.Equal(t, "Unknown", ticket.RAG)
	assert.Equal(t, "Unknown", ticket.IssueType)
	assert.Equal(t, DefaultProjectType, ticket.ProjectType)
	assert.Equal(t, domain.CategoryAdHoc, ticket.Category, "unclassified tag text maps to ad hoc")
	assert.Nil(t, ticket.DueDate)
	assert.Nil(t, ticket.AgingDays)
	assert.Equal(t, domain.BucketUnknown, ticket.AgingBucket)
	assert.Equal(t, domain.OutcomeNoDueDate, ticket.DeliveryOutcome)
	assert.False(t, ticket.IsOverdue)
	assert.Equal(t, "Other", ticket.Brand)
}

func TestMapActiveNegatesIsDone(t *testing.T) {
	done := RawIssue{Key: "PROJ-2", Fields: map[string]any{
		"status": map[string]any{
			"name":           "Closed",
			"statusCategory": map[string]any{"name": "Done"},
		},
	}}
	ticket, err := testMapper().Map(done)
	require.NoError(t, err)
	assert.True(t, ticket.IsDone)
	assert.False(t, ticket.Active)

	open := RawIssue{Key: "PROJ-3", Fields: map[string]any{}}
	ticket, err = testMapper().Map(open)
	require.NoError(t, err)
	assert.False(t, ticket.IsDone)
	assert.True(t, ticket.Active)
}

func TestMapMalformedDatesTreatedAsAbsent(t *testing.T) {
	raw := RawIssue{Key: "PROJ-4", Fields: map[string]any{
		"duedate": "tomorrow-ish",
		"created": "06/15/2024",
	}}
	ticket, err := testMapper().Map(raw)
	require.NoError(t, err)
	assert.Nil(t, ticket.DueDate)
	assert.Nil(t, ticket.CreatedAt)
	assert.False(t, ticket.RecentlyCreated)
}

func TestMapMissingKeyFails(t *testing.T) {
	_, err := testMapper().Map(RawIssue{Fields: map[string]any{"summary": "orphan"}})
	require.Error(t, err)
}
