package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-insights/internal/events"
)

// AuditService subscribes to lifecycle events and writes them to the
// structured log, giving operators a trail of refreshes and side
// effects without a separate audit store.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventRefreshSucceeded, a.handleEvent)
	a.dispatcher.Subscribe(events.EventRefreshFailed, a.handleEvent)
	a.dispatcher.Subscribe(events.EventActionTicketCreated, a.handleEvent)
	a.dispatcher.Subscribe(events.EventMinutesProcessed, a.handleEvent)
}

func (a *AuditService) handleEvent(_ context.Context, event events.Event) error {
	a.logger.Info("event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Time("event_ts", event.Timestamp),
		zap.Any("payload", event.Payload))
	return nil
}
