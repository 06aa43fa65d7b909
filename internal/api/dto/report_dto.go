package dto

import (
	"time"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

// ReportResponse wraps the current snapshot for the API.
type ReportResponse struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Owner       string          `json:"owner"`
	ScopeNote   string          `json:"scope_note"`
	Totals      domain.Totals   `json:"totals"`
	Tickets     []domain.Ticket `json:"tickets"`
}

// TicketQueryResponse is the result of one interactive query.
type TicketQueryResponse struct {
	Count   int             `json:"count"`
	Tickets []domain.Ticket `json:"tickets"`
}

// RefreshResponse reports the outcome of a manual refresh.
type RefreshResponse struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Totals      domain.Totals `json:"totals"`
	Tickets     int           `json:"tickets"`
}

// MinutesRequest accepts pre-extracted text for the minutes pipeline.
type MinutesRequest struct {
	Text          string `json:"text"`
	Filename      string `json:"filename"`
	CreateTickets bool   `json:"create_tickets"`
	DraftEmail    bool   `json:"draft_email"`
}

// MinutesResponse returns the stored record.
type MinutesResponse struct {
	Record *domain.MinutesRecord `json:"record"`
}
