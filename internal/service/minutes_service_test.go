package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-insights/internal/domain"
	"github.com/spec-kit/ticket-insights/internal/observability"
)

type fakeParser struct {
	summary domain.MeetingSummary
	err     error
}

func (f *fakeParser) Parse(_ context.Context, _, _ string) (domain.MeetingSummary, error) {
	return f.summary, f.err
}

type fakeStore struct {
	saved []domain.MinutesRecord
}

func (f *fakeStore) Save(_ context.Context, record domain.MinutesRecord) error {
	f.saved = append(f.saved, record)
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*domain.MinutesRecord, error) {
	for i := range f.saved {
		if f.saved[i].ID == id {
			return &f.saved[i], nil
		}
	}
	return nil, nil
}

type fakeCreator struct {
	created []string
	failOn  string
}

func (f *fakeCreator) CreateIssue(_ context.Context, summary, _, _ string) (string, string, error) {
	if summary == f.failOn {
		return "", "", errors.New("creation rejected")
	}
	f.created = append(f.created, summary)
	return "PROJ-100", "https://tracker.example.com/browse/PROJ-100", nil
}

func minutesSummary() domain.MeetingSummary {
	return domain.MeetingSummary{
		Title:        "Q3 trade review",
		Date:         "2024-06-14",
		Participants: []string{"Jordan Blake", "Dana Field"},
		KeyPoints:    []string{"Promo calendar locked"},
		ActionItems: []domain.ActionItem{
			{Description: "Update price file", IsMine: true},
			{Description: "Book venue", IsMine: false},
			{Description: "Chase supplier", IsMine: true},
		},
	}
}

func newTestMinutes(parser *fakeParser, store *fakeStore, creator *fakeCreator) *MinutesService {
	return NewMinutesService(MinutesDependencies{
		Parser:  parser,
		Store:   store,
		Tickets: creator,
		Metrics: observability.NewMetrics(),
		Logger:  zap.NewNop(),
		Now:     syncNow,
	})
}

func TestProcessTextCreatesTicketsForMyActions(t *testing.T) {
	store := &fakeStore{}
	creator := &fakeCreator{}
	svc := newTestMinutes(&fakeParser{summary: minutesSummary()}, store, creator)

	record, err := svc.ProcessText(context.Background(), "raw text", "minutes.docx", ProcessOptions{CreateTickets: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"Update price file", "Chase supplier"}, creator.created)
	assert.Equal(t, "PROJ-100", record.Summary.ActionItems[0].TicketKey)
	assert.Empty(t, record.Summary.ActionItems[1].TicketKey, "items not flagged as mine are skipped")
	require.Len(t, store.saved, 2, "record saved before and after ticket creation")
	assert.Equal(t, store.saved[0].ID, store.saved[1].ID, "re-save keeps the same key")
}

func TestProcessTextPerItemFailureDoesNotAbortBatch(t *testing.T) {
	creator := &fakeCreator{failOn: "Update price file"}
	svc := newTestMinutes(&fakeParser{summary: minutesSummary()}, &fakeStore{}, creator)

	record, err := svc.ProcessText(context.Background(), "raw text", "minutes.docx", ProcessOptions{CreateTickets: true})
	require.NoError(t, err, "a failed item must not fail the pipeline")

	assert.Equal(t, []string{"Chase supplier"}, creator.created)
	assert.Empty(t, record.Summary.ActionItems[0].TicketKey)
	assert.Equal(t, "PROJ-100", record.Summary.ActionItems[2].TicketKey)
}

func TestProcessTextParserFailureIsFatal(t *testing.T) {
	svc := newTestMinutes(&fakeParser{err: errors.New("model unavailable")}, &fakeStore{}, &fakeCreator{})
	_, err := svc.ProcessText(context.Background(), "raw text", "minutes.docx", ProcessOptions{})
	require.Error(t, err)
}
