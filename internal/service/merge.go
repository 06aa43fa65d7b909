package service

import (
	"time"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

// ReconcilePolicy merges a freshly fetched ticket collection into the
// previously held one. The upstream query is a bounded window, not an
// authoritative extract, so the policy is additive: a ticket present
// only in the previous collection is retained unchanged, a ticket
// present in both is replaced wholesale by the fresh version, and new
// tickets are appended. Nothing is field-merged.
//
// EvictResolvedAfter optionally drops retained tickets that are done
// and were resolved more than the window ago; zero keeps everything
// forever.
type ReconcilePolicy struct {
	EvictResolvedAfter time.Duration
}

// Merge reconciles previous and fresh by ticket key. Output order is
// deterministic: previous order first (with in-place replacements),
// then unseen fresh tickets in fetch order.
func (p ReconcilePolicy) Merge(previous, fresh []domain.Ticket, now time.Time) []domain.Ticket {
	freshByKey := make(map[string]domain.Ticket, len(fresh))
	for _, t := range fresh {
		freshByKey[t.Key] = t
	}

	merged := make([]domain.Ticket, 0, len(previous)+len(fresh))
	seen := make(map[string]bool, len(previous))
	for _, old := range previous {
		if seen[old.Key] {
			continue
		}
		seen[old.Key] = true
		if replacement, ok := freshByKey[old.Key]; ok {
			merged = append(merged, replacement)
			continue
		}
		if p.shouldEvict(old, now) {
			continue
		}
		merged = append(merged, old)
	}
	// Append through freshByKey so that when fresh carries duplicate
	// keys the last occurrence wins, same as the replacement path.
	for _, t := range fresh {
		if !seen[t.Key] {
			seen[t.Key] = true
			merged = append(merged, freshByKey[t.Key])
		}
	}
	return merged
}

func (p ReconcilePolicy) shouldEvict(t domain.Ticket, now time.Time) bool {
	if p.EvictResolvedAfter <= 0 {
		return false
	}
	return t.IsDone && t.ResolvedAt != nil && now.Sub(*t.ResolvedAt) > p.EvictResolvedAfter
}
