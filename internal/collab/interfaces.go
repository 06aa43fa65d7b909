// Package collab defines the narrow contracts for external
// collaborators the core invokes but does not own: document text
// extraction, AI minutes parsing, idempotent record storage, ticket
// creation, and calendar drafting.
package collab

import (
	"context"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

// TextExtractor pulls plain text out of a binary document.
type TextExtractor interface {
	Extract(ctx context.Context, document []byte, filename string) (string, error)
}

// MinutesParser turns extracted text into a structured meeting summary.
type MinutesParser interface {
	Parse(ctx context.Context, text, filename string) (domain.MeetingSummary, error)
}

// MinutesStore persists minutes records, idempotent by record ID.
type MinutesStore interface {
	Save(ctx context.Context, record domain.MinutesRecord) error
	Get(ctx context.Context, id string) (*domain.MinutesRecord, error)
}

// TicketCreator files one new issue upstream.
type TicketCreator interface {
	CreateIssue(ctx context.Context, summary, description, assignee string) (key, url string, err error)
}

// CalendarDrafter creates a calendar/email draft and returns its ID.
type CalendarDrafter interface {
	Draft(ctx context.Context, recipients []string, subject, body string, draft bool) (string, error)
}
