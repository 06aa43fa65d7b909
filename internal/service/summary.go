package service

import (
	"strings"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

// initiativeTypes are the issue types counted as initiatives regardless
// of category.
var initiativeTypes = map[string]struct{}{
	"Initiative": {},
	"Epic":       {},
}

// Summarize recomputes all counters from the merged collection alone.
// Counts are never carried over or incremented from a prior summary;
// the merge step's overwrite semantics would let incremental counts
// drift.
func Summarize(tickets []domain.Ticket, classificationTag string) domain.Totals {
	totals := domain.Totals{Total: len(tickets)}
	for _, t := range tickets {
		if t.IsDone {
			totals.Completed++
		}
		if t.Active {
			totals.Active++
		}
		if t.IsOverdue {
			totals.Overdue++
		}
		if _, ok := initiativeTypes[t.IssueType]; ok || t.Category == domain.CategoryStrategic {
			totals.Initiatives++
		}
		if classificationTag != "" && strings.EqualFold(t.ProjectType, classificationTag) {
			totals.Classification++
		}
	}
	return totals
}
