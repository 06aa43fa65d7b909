package domain

import "time"

// ActionItem is one actionable line extracted from meeting minutes.
type ActionItem struct {
	Description string `json:"description"`
	Owner       string `json:"owner"`
	DueDate     string `json:"dueDate"`
	IsMine      bool   `json:"isMine"`
	TicketKey   string `json:"ticketKey,omitempty"`
	TicketURL   string `json:"ticketUrl,omitempty"`
}

// MeetingSummary is the structured result returned by the AI parsing
// collaborator for one uploaded document.
type MeetingSummary struct {
	Title        string       `json:"title"`
	Date         string       `json:"date"`
	Participants []string     `json:"participants"`
	KeyPoints    []string     `json:"keyPoints"`
	Decisions    []string     `json:"decisions"`
	ActionItems  []ActionItem `json:"actionItems"`
	NextSteps    []string     `json:"nextSteps"`
}

// MinutesRecord is the stored form of a processed document, keyed by ID
// for idempotent storage.
type MinutesRecord struct {
	ID          string         `json:"id"`
	SourceFile  string         `json:"sourceFile"`
	ProcessedAt time.Time      `json:"processedAt"`
	Summary     MeetingSummary `json:"summary"`
}
