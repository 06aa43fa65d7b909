package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-insights/internal/collab"
	"github.com/spec-kit/ticket-insights/internal/domain"
	"github.com/spec-kit/ticket-insights/internal/events"
	"github.com/spec-kit/ticket-insights/internal/observability"
)

// MinutesService runs the meeting-minutes pipeline: extract text,
// parse it into a structured summary, store the record, create one
// ticket per qualifying action item, and optionally draft a follow-up
// email. Ticket creation is a partial-failure batch: each item's error
// is logged and the loop continues.
type MinutesService struct {
	extractor  collab.TextExtractor
	parser     collab.MinutesParser
	store      collab.MinutesStore
	tickets    collab.TicketCreator
	calendar   collab.CalendarDrafter
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	log        *zap.Logger
	now        func() time.Time
}

// MinutesDependencies bundles collaborators for the minutes service.
// Store, Tickets and Calendar are optional.
type MinutesDependencies struct {
	Extractor  collab.TextExtractor
	Parser     collab.MinutesParser
	Store      collab.MinutesStore
	Tickets    collab.TicketCreator
	Calendar   collab.CalendarDrafter
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Now        func() time.Time
}

// ProcessOptions controls the side effects of one pipeline run.
type ProcessOptions struct {
	CreateTickets bool
	DraftEmail    bool
	Owner         string
}

// NewMinutesService constructs the service.
func NewMinutesService(deps MinutesDependencies) *MinutesService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &MinutesService{
		extractor:  deps.Extractor,
		parser:     deps.Parser,
		store:      deps.Store,
		tickets:    deps.Tickets,
		calendar:   deps.Calendar,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		log:        deps.Logger,
		now:        now,
	}
}

// ProcessDocument extracts text from a binary document, then continues
// with ProcessText.
func (s *MinutesService) ProcessDocument(ctx context.Context, document []byte, filename string, opts ProcessOptions) (*domain.MinutesRecord, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("text extractor not configured")
	}
	text, err := s.extractor.Extract(ctx, document, filename)
	if err != nil {
		return nil, err
	}
	return s.ProcessText(ctx, text, filename, opts)
}

// ProcessText parses pre-extracted text and runs the remaining
// pipeline steps.
func (s *MinutesService) ProcessText(ctx context.Context, text, filename string, opts ProcessOptions) (*domain.MinutesRecord, error) {
	summary, err := s.parser.Parse(ctx, text, filename)
	if err != nil {
		return nil, err
	}

	record := domain.MinutesRecord{
		ID:          uuid.NewString(),
		SourceFile:  filename,
		ProcessedAt: s.now(),
		Summary:     summary,
	}
	s.save(ctx, record)

	if opts.CreateTickets && s.tickets != nil {
		created := s.createActionTickets(ctx, &record, opts.Owner)
		if created > 0 {
			// Re-save so ticket keys land on the stored record; the
			// store is idempotent by ID.
			s.save(ctx, record)
		}
	}

	if opts.DraftEmail && s.calendar != nil {
		if _, draftErr := s.calendar.Draft(ctx, summary.Participants, "Minutes: "+summary.Title, buildMinutesBody(summary), true); draftErr != nil {
			s.metrics.RecordSideEffectFailure()
			s.log.Warn("draft creation failed", zap.Error(draftErr))
		}
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventMinutesProcessed,
		Payload: events.MinutesProcessedPayload{
			MinutesID:  record.ID,
			SourceFile: filename,
			Actions:    len(summary.ActionItems),
		},
	})
	return &record, nil
}

// createActionTickets files one issue per action item flagged as mine.
// Failures are per-item: logged, counted, and skipped.
func (s *MinutesService) createActionTickets(ctx context.Context, record *domain.MinutesRecord, owner string) int {
	created := 0
	for i := range record.Summary.ActionItems {
		item := &record.Summary.ActionItems[i]
		if !item.IsMine {
			continue
		}
		assignee := item.Owner
		if assignee == "" {
			assignee = owner
		}
		description := fmt.Sprintf("From %s (%s).\nDue: %s", record.SourceFile, record.Summary.Title, orNone(item.DueDate))
		key, url, err := s.tickets.CreateIssue(ctx, item.Description, description, assignee)
		if err != nil {
			s.metrics.RecordSideEffectFailure()
			s.log.Warn("action ticket creation failed",
				zap.String("minutes_id", record.ID),
				zap.String("action", item.Description),
				zap.Error(err),
			)
			continue
		}
		item.TicketKey = key
		item.TicketURL = url
		created++
		s.publishEvent(ctx, events.Event{
			Type: events.EventActionTicketCreated,
			Payload: events.ActionTicketCreatedPayload{
				MinutesID: record.ID,
				TicketKey: key,
				Summary:   item.Description,
			},
		})
	}
	return created
}

func (s *MinutesService) save(ctx context.Context, record domain.MinutesRecord) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, record); err != nil {
		s.log.Warn("minutes record save failed", zap.String("minutes_id", record.ID), zap.Error(err))
	}
}

func (s *MinutesService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func buildMinutesBody(summary domain.MeetingSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", summary.Title, summary.Date)
	writeSection(&b, "Key points", summary.KeyPoints)
	writeSection(&b, "Decisions", summary.Decisions)
	if len(summary.ActionItems) > 0 {
		b.WriteString("\nAction items:\n")
		for _, item := range summary.ActionItems {
			fmt.Fprintf(&b, "- %s (owner: %s, due: %s)\n", item.Description, orNone(item.Owner), orNone(item.DueDate))
		}
	}
	writeSection(&b, "Next steps", summary.NextSteps)
	return b.String()
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, line := range lines {
		fmt.Fprintf(b, "- %s\n", line)
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
