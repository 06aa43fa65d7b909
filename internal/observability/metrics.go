package observability

import (
	"sync"
)

// Metrics provides basic in-memory counters for refresh and fetch
// activity. Counters are keyed by outcome so dashboards can distinguish
// endpoint fallback behavior from hard failures.
type Metrics struct {
	mu             sync.Mutex
	refreshCount   map[string]int64
	fetchAttempts  map[string]int64
	sideEffectErrs int64
	skippedRecords int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		refreshCount:  make(map[string]int64),
		fetchAttempts: make(map[string]int64),
	}
}

// RecordRefresh increments the counter for one refresh outcome
// ("success", "empty", "failed").
func (m *Metrics) RecordRefresh(outcome string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshCount[outcome]++
}

// RecordFetchAttempt increments the per-endpoint attempt counter.
func (m *Metrics) RecordFetchAttempt(endpoint string, ok bool) {
	if m == nil {
		return
	}
	key := endpoint + "|ok"
	if !ok {
		key = endpoint + "|err"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchAttempts[key]++
}

// RecordSideEffectFailure counts one failed per-item side effect.
func (m *Metrics) RecordSideEffectFailure() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sideEffectErrs++
}

// RecordSkippedRecord counts one raw record dropped during mapping.
func (m *Metrics) RecordSkippedRecord() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skippedRecords++
}

// Snapshot returns a copy of all counters for the health endpoint.
func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.refreshCount)+len(m.fetchAttempts)+2)
	for k, v := range m.refreshCount {
		out["refresh|"+k] = v
	}
	for k, v := range m.fetchAttempts {
		out["fetch|"+k] = v
	}
	out["side_effect_failures"] = m.sideEffectErrs
	out["skipped_records"] = m.skippedRecords
	return out
}
