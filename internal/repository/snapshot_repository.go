package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

// SnapshotRepository persists refresh results: one audit row per run
// plus an upsert of every ticket in the merged collection.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, runID string, snap *domain.ReportSnapshot) error
	LatestRunID(ctx context.Context) (string, error)
}

type snapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository instantiates the repository. A nil pool yields
// a nil repository so callers can skip persistence cleanly.
func NewSnapshotRepository(pool *pgxpool.Pool) SnapshotRepository {
	if pool == nil {
		return nil
	}
	return &snapshotRepository{pool: pool}
}

func (r *snapshotRepository) SaveSnapshot(ctx context.Context, runID string, snap *domain.ReportSnapshot) error {
	const insertRefresh = `
        INSERT INTO refreshes (run_id, generated_at, owner, scope_note,
            total_count, completed_count, active_count, overdue_count, initiative_count, classification_count)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	if _, err := r.pool.Exec(ctx, insertRefresh,
		runID,
		snap.GeneratedAt,
		snap.Owner,
		snap.ScopeNote,
		snap.Totals.Total,
		snap.Totals.Completed,
		snap.Totals.Active,
		snap.Totals.Overdue,
		snap.Totals.Initiatives,
		snap.Totals.Classification,
	); err != nil {
		return err
	}

	const upsertTicket = `
        INSERT INTO tickets (key, url, summary, status, rag, issue_type, project_key, project_name, project_type,
            labels, start_date, due_date, created_at_upstream, resolved_at, assignee, reporter, priority,
            aging_days, aging_bucket, delivery_outcome, is_done, is_overdue, active, stream, category, brand, last_seen_run)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27)
        ON CONFLICT (key) DO UPDATE SET
            url=EXCLUDED.url, summary=EXCLUDED.summary, status=EXCLUDED.status, rag=EXCLUDED.rag,
            issue_type=EXCLUDED.issue_type, project_key=EXCLUDED.project_key, project_name=EXCLUDED.project_name,
            project_type=EXCLUDED.project_type, labels=EXCLUDED.labels, start_date=EXCLUDED.start_date,
            due_date=EXCLUDED.due_date, created_at_upstream=EXCLUDED.created_at_upstream, resolved_at=EXCLUDED.resolved_at,
            assignee=EXCLUDED.assignee, reporter=EXCLUDED.reporter, priority=EXCLUDED.priority,
            aging_days=EXCLUDED.aging_days, aging_bucket=EXCLUDED.aging_bucket, delivery_outcome=EXCLUDED.delivery_outcome,
            is_done=EXCLUDED.is_done, is_overdue=EXCLUDED.is_overdue, active=EXCLUDED.active,
            stream=EXCLUDED.stream, category=EXCLUDED.category, brand=EXCLUDED.brand,
            last_seen_run=EXCLUDED.last_seen_run, updated_at=NOW()`

	for _, t := range snap.Tickets {
		if _, err := r.pool.Exec(ctx, upsertTicket,
			t.Key,
			t.URL,
			t.Summary,
			t.Status,
			t.RAG,
			t.IssueType,
			t.ProjectKey,
			t.ProjectName,
			t.ProjectType,
			t.Labels,
			t.StartDate,
			t.DueDate,
			t.CreatedAt,
			t.ResolvedAt,
			t.Assignee,
			t.Reporter,
			t.Priority,
			t.AgingDays,
			string(t.AgingBucket),
			t.DeliveryOutcome,
			t.IsDone,
			t.IsOverdue,
			t.Active,
			t.Stream,
			string(t.Category),
			t.Brand,
			runID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *snapshotRepository) LatestRunID(ctx context.Context) (string, error) {
	const query = `SELECT run_id FROM refreshes ORDER BY generated_at DESC LIMIT 1`
	var runID string
	if err := r.pool.QueryRow(ctx, query).Scan(&runID); err != nil {
		return "", err
	}
	return runID, nil
}
