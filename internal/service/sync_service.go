package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-insights/internal/config"
	"github.com/spec-kit/ticket-insights/internal/domain"
	"github.com/spec-kit/ticket-insights/internal/events"
	"github.com/spec-kit/ticket-insights/internal/jira"
	"github.com/spec-kit/ticket-insights/internal/observability"
	"github.com/spec-kit/ticket-insights/pkg/util"
)

// Searcher runs one logical upstream query to exhaustion.
type Searcher interface {
	SearchAll(ctx context.Context, jql string) ([]jira.RawIssue, error)
}

// SnapshotSaver records a successful refresh durably and can report the
// most recent persisted run.
type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, runID string, snap *domain.ReportSnapshot) error
	LatestRunID(ctx context.Context) (string, error)
}

// SnapshotCache caches the last good snapshot for warm starts.
type SnapshotCache interface {
	Store(ctx context.Context, snap *domain.ReportSnapshot) error
	Load(ctx context.Context) (*domain.ReportSnapshot, error)
}

// SyncService coordinates one refresh: query (with fallback), map,
// merge against the prior snapshot, summarize, swap, persist.
type SyncService struct {
	cfg        config.Config
	client     Searcher
	mapper     *jira.Mapper
	holder     *SnapshotHolder
	policy     ReconcilePolicy
	snapshots  SnapshotSaver
	cache      SnapshotCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	log        *zap.Logger
	now        func() time.Time
}

// SyncDependencies bundles collaborators for the sync service.
// Snapshots and Cache are optional; a nil value disables that sink.
type SyncDependencies struct {
	Client     Searcher
	Mapper     *jira.Mapper
	Holder     *SnapshotHolder
	Policy     ReconcilePolicy
	Snapshots  SnapshotSaver
	Cache      SnapshotCache
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewSyncService constructs the service.
func NewSyncService(cfg config.Config, deps SyncDependencies) *SyncService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &SyncService{
		cfg:        cfg,
		client:     deps.Client,
		mapper:     deps.Mapper,
		holder:     deps.Holder,
		policy:     deps.Policy,
		snapshots:  deps.Snapshots,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		log:        deps.Logger,
		now:        now,
	}
}

// Refresh runs one full synchronization cycle and swaps in the new
// snapshot. On any failure the previous snapshot is left untouched; a
// zero-result refresh in particular never overwrites non-empty prior
// state.
func (s *SyncService) Refresh(ctx context.Context) (*domain.ReportSnapshot, error) {
	runID := uuid.NewString()

	issues, err := s.client.SearchAll(ctx, s.PrimaryQuery())
	if err != nil {
		return nil, s.fail(ctx, runID, err)
	}

	if len(issues) == 0 {
		fallback := s.FallbackQuery()
		if fallback != "" {
			s.log.Info("primary query empty, trying fallback", zap.String("run_id", runID))
			issues, err = s.client.SearchAll(ctx, fallback)
			if err != nil {
				return nil, s.fail(ctx, runID, err)
			}
		}
	}
	if len(issues) == 0 {
		s.metrics.RecordRefresh("empty")
		err := util.NewEmptyResult("primary and fallback queries returned no tickets; previous snapshot retained")
		s.publishFailure(ctx, runID, err)
		return nil, err
	}

	fresh := make([]domain.Ticket, 0, len(issues))
	for _, raw := range issues {
		ticket, mapErr := s.mapper.Map(raw)
		if mapErr != nil {
			s.metrics.RecordSkippedRecord()
			s.log.Warn("skipping unmappable record", zap.Error(mapErr))
			continue
		}
		fresh = append(fresh, ticket)
	}
	if len(fresh) == 0 {
		s.metrics.RecordRefresh("empty")
		err := util.NewEmptyResult("no fetched record could be mapped; previous snapshot retained")
		s.publishFailure(ctx, runID, err)
		return nil, err
	}

	var previous []domain.Ticket
	if current := s.holder.Current(); current != nil {
		previous = current.Tickets
	}
	merged := s.policy.Merge(previous, fresh, s.now())
	totals := Summarize(merged, s.cfg.Jira.ClassificationTag)

	snap := &domain.ReportSnapshot{
		GeneratedAt: s.now(),
		Owner:       s.cfg.Report.Owner,
		ScopeNote:   s.cfg.Report.ScopeNote,
		Totals:      totals,
		Tickets:     merged,
	}
	s.holder.Swap(snap)
	s.metrics.RecordRefresh("success")

	if s.snapshots != nil {
		if saveErr := s.snapshots.SaveSnapshot(ctx, runID, snap); saveErr != nil {
			s.log.Warn("snapshot persistence failed", zap.Error(saveErr))
		}
	}
	if s.cache != nil {
		if cacheErr := s.cache.Store(ctx, snap); cacheErr != nil {
			s.log.Warn("snapshot cache store failed", zap.Error(cacheErr))
		}
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventRefreshSucceeded,
		Payload: events.RefreshSucceededPayload{
			RunID:   runID,
			Fetched: len(fresh),
			Merged:  len(merged),
			Totals:  totals,
		},
	})
	s.log.Info("refresh complete",
		zap.String("run_id", runID),
		zap.Int("fetched", len(fresh)),
		zap.Int("merged", len(merged)),
	)
	return snap, nil
}

// WarmStart seeds the holder from the snapshot cache so the service can
// serve the last good snapshot before the first refresh completes. The
// last persisted run is logged so operators can tell how stale the
// cached snapshot is relative to the durable audit trail.
func (s *SyncService) WarmStart(ctx context.Context) {
	if s.holder.Current() != nil {
		return
	}
	if s.snapshots != nil {
		runID, err := s.snapshots.LatestRunID(ctx)
		switch {
		case err != nil:
			s.log.Warn("latest run lookup failed", zap.Error(err))
		case runID != "":
			s.log.Info("last persisted refresh", zap.String("run_id", runID))
		}
	}
	if s.cache == nil {
		return
	}
	snap, err := s.cache.Load(ctx)
	if err != nil {
		s.log.Warn("warm start load failed", zap.Error(err))
		return
	}
	if snap != nil {
		s.holder.Swap(snap)
		s.log.Info("warm start from cached snapshot", zap.Int("tickets", len(snap.Tickets)))
	}
}

// PrimaryQuery builds the broad query: my tickets, team/brand tickets
// that are not done, and tickets carrying the classification tag.
func (s *SyncService) PrimaryQuery() string {
	return s.buildQuery("assignee = currentUser()")
}

// FallbackQuery substitutes an explicit owner-name predicate for the
// current-user predicate, for environments where session identity is
// not resolvable in the query language. Empty when no owner is set.
func (s *SyncService) FallbackQuery() string {
	owner := strings.TrimSpace(s.cfg.Report.Owner)
	if owner == "" {
		return ""
	}
	return s.buildQuery(fmt.Sprintf("assignee = %q", owner))
}

func (s *SyncService) buildQuery(assigneeClause string) string {
	clauses := []string{assigneeClause}
	if labels := s.cfg.Jira.BrandLabels; len(labels) > 0 {
		clauses = append(clauses, fmt.Sprintf("(labels in (%s) AND statusCategory != Done)", strings.Join(labels, ", ")))
	}
	if tag := s.cfg.Jira.ClassificationTag; tag != "" && s.cfg.Jira.ProjectTypeFieldID != "" {
		fieldNum := strings.TrimPrefix(s.cfg.Jira.ProjectTypeFieldID, "customfield_")
		clauses = append(clauses, fmt.Sprintf("cf[%s] = %q", fieldNum, tag))
	}
	return strings.Join(clauses, " OR ")
}

func (s *SyncService) fail(ctx context.Context, runID string, err error) error {
	s.metrics.RecordRefresh("failed")
	s.publishFailure(ctx, runID, err)
	s.log.Error("refresh failed", zap.String("run_id", runID), zap.Error(err))
	return err
}

func (s *SyncService) publishFailure(ctx context.Context, runID string, err error) {
	s.publishEvent(ctx, events.Event{
		Type:    events.EventRefreshFailed,
		Payload: events.RefreshFailedPayload{RunID: runID, Reason: err.Error()},
	})
}

func (s *SyncService) publishEvent(ctx context.Context, event events.Event) {
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
