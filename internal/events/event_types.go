package events

import (
	"time"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRefreshSucceeded    EventType = "refresh_succeeded"
	EventRefreshFailed       EventType = "refresh_failed"
	EventActionTicketCreated EventType = "action_ticket_created"
	EventMinutesProcessed    EventType = "minutes_processed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RefreshSucceededPayload payload.
type RefreshSucceededPayload struct {
	RunID   string        `json:"run_id"`
	Fetched int           `json:"fetched"`
	Merged  int           `json:"merged"`
	Totals  domain.Totals `json:"totals"`
}

// RefreshFailedPayload payload.
type RefreshFailedPayload struct {
	RunID  string `json:"run_id"`
	Reason string `json:"reason"`
}

// ActionTicketCreatedPayload payload.
type ActionTicketCreatedPayload struct {
	MinutesID string `json:"minutes_id"`
	TicketKey string `json:"ticket_key"`
	Summary   string `json:"summary"`
}

// MinutesProcessedPayload payload.
type MinutesProcessedPayload struct {
	MinutesID  string `json:"minutes_id"`
	SourceFile string `json:"source_file"`
	Actions    int    `json:"actions"`
}
