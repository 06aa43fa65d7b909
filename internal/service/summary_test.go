package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

func TestSummarizeRecomputesAllCounters(t *testing.T) {
	tickets := []domain.Ticket{
		{Key: "A", IsDone: true, Category: domain.CategoryTactical, IssueType: "Task", ProjectType: "AI Opportunity"},
		{Key: "B", Active: true, IsOverdue: true, Category: domain.CategoryStrategic, IssueType: "Story"},
		{Key: "C", Active: true, Category: domain.CategoryTactical, IssueType: "Initiative"},
		{Key: "D", Active: true, IsOverdue: true, Category: domain.CategoryAdHoc, IssueType: "Epic", ProjectType: "ai opportunity"},
	}

	totals := Summarize(tickets, "AI Opportunity")

	assert.Equal(t, 4, totals.Total)
	assert.Equal(t, 1, totals.Completed)
	assert.Equal(t, 3, totals.Active)
	assert.Equal(t, 2, totals.Overdue)
	// B (Strategic), C (Initiative type), D (Epic type).
	assert.Equal(t, 3, totals.Initiatives)
	// Tag match is case-insensitive: A and D.
	assert.Equal(t, 2, totals.Classification)
}

func TestSummarizeEmptyCollection(t *testing.T) {
	assert.Equal(t, domain.Totals{}, Summarize(nil, "AI Opportunity"))
}
