package domain

import "time"

// Totals holds the summary counters recomputed from a full ticket
// collection. Counts are always whole recomputations, never patched.
type Totals struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Active         int `json:"active"`
	Overdue        int `json:"overdue"`
	Initiatives    int `json:"initiatives"`
	Classification int `json:"classification"`
}

// ReportSnapshot is one immutable, fully computed aggregation of the
// merged ticket collection. A refresh replaces the snapshot wholesale;
// it is never mutated in place.
type ReportSnapshot struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Owner       string    `json:"owner"`
	ScopeNote   string    `json:"scopeNote"`
	Totals      Totals    `json:"totals"`
	Tickets     []Ticket  `json:"tickets"`
}
