package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

var mergeNow = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func ticket(key, summary string) domain.Ticket {
	return domain.Ticket{Key: key, Summary: summary}
}

func TestMergeIsAdditive(t *testing.T) {
	old := []domain.Ticket{ticket("A", "old a"), ticket("B", "old b")}
	fresh := []domain.Ticket{ticket("B", "new b"), ticket("C", "new c")}

	merged := ReconcilePolicy{}.Merge(old, fresh, mergeNow)

	require.Len(t, merged, 3)
	assert.Equal(t, "A", merged[0].Key)
	assert.Equal(t, "old a", merged[0].Summary, "tickets absent from the fetch are retained unchanged")
	assert.Equal(t, "B", merged[1].Key)
	assert.Equal(t, "new b", merged[1].Summary, "overlapping tickets are replaced wholesale")
	assert.Equal(t, "C", merged[2].Key)
}

func TestMergeIsIdempotent(t *testing.T) {
	collection := []domain.Ticket{ticket("A", "a"), ticket("B", "b"), ticket("C", "c")}
	merged := ReconcilePolicy{}.Merge(collection, collection, mergeNow)
	assert.Equal(t, collection, merged)
}

func TestMergeEmptyPrevious(t *testing.T) {
	fresh := []domain.Ticket{ticket("A", "a"), ticket("B", "b")}
	merged := ReconcilePolicy{}.Merge(nil, fresh, mergeNow)
	assert.Equal(t, fresh, merged)
}

func TestMergeKeyUniqueness(t *testing.T) {
	old := []domain.Ticket{ticket("A", "first"), ticket("A", "dup")}
	fresh := []domain.Ticket{ticket("B", "b"), ticket("B", "dup b")}
	merged := ReconcilePolicy{}.Merge(old, fresh, mergeNow)

	seen := map[string]int{}
	for _, m := range merged {
		seen[m.Key]++
	}
	assert.Equal(t, 1, seen["A"])
	assert.Equal(t, 1, seen["B"])
}

func TestMergeDuplicateFreshKeysLastWins(t *testing.T) {
	old := []domain.Ticket{ticket("A", "old a")}
	fresh := []domain.Ticket{
		ticket("A", "first a"), ticket("A", "last a"),
		ticket("B", "first b"), ticket("B", "last b"),
	}

	merged := ReconcilePolicy{}.Merge(old, fresh, mergeNow)

	require.Len(t, merged, 2)
	assert.Equal(t, "last a", merged[0].Summary, "replacement takes the last duplicate")
	assert.Equal(t, "last b", merged[1].Summary, "append takes the last duplicate too")
}

func TestMergeEvictionWindow(t *testing.T) {
	resolvedLongAgo := mergeNow.Add(-40 * 24 * time.Hour)
	resolvedRecently := mergeNow.Add(-2 * 24 * time.Hour)
	old := []domain.Ticket{
		{Key: "STALE", IsDone: true, ResolvedAt: &resolvedLongAgo},
		{Key: "FRESH-DONE", IsDone: true, ResolvedAt: &resolvedRecently},
		{Key: "OPEN", Active: true},
	}

	merged := ReconcilePolicy{EvictResolvedAfter: 30 * 24 * time.Hour}.Merge(old, nil, mergeNow)
	require.Len(t, merged, 2)
	assert.Equal(t, "FRESH-DONE", merged[0].Key)
	assert.Equal(t, "OPEN", merged[1].Key)

	// Default policy keeps everything.
	kept := ReconcilePolicy{}.Merge(old, nil, mergeNow)
	assert.Len(t, kept, 3)
}
