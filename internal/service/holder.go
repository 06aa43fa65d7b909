package service

import (
	"sync"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

// SnapshotHolder owns the current report snapshot. A refresh swaps the
// whole value; readers never observe a partially built snapshot.
type SnapshotHolder struct {
	mu      sync.RWMutex
	current *domain.ReportSnapshot
}

// NewSnapshotHolder creates an empty holder.
func NewSnapshotHolder() *SnapshotHolder {
	return &SnapshotHolder{}
}

// Current returns the last good snapshot, or nil before the first load.
func (h *SnapshotHolder) Current() *domain.ReportSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Swap replaces the snapshot wholesale.
func (h *SnapshotHolder) Swap(snap *domain.ReportSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = snap
}
