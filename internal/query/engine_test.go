package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

func intPtr(v int) *int { return &v }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleRows() []domain.Ticket {
	return []domain.Ticket{
		{Key: "PROJ-1", Summary: "Refresh Selleys catalog", Status: "In Progress", AgingDays: intPtr(95), AgingBucket: domain.BucketOver90, DueDate: datePtr(2024, 3, 1)},
		{Key: "PROJ-2", Summary: "Yates spring promo", Status: "Done", AgingDays: intPtr(10), AgingBucket: domain.Bucket0To30, DueDate: datePtr(2024, 6, 1)},
		{Key: "PROJ-3", Summary: "Update price list", Status: "In Progress", AgingDays: nil, AgingBucket: domain.BucketUnknown},
		{Key: "PROJ-4", Summary: "Selleys packaging audit", Status: "To Do", AgingDays: intPtr(45), AgingBucket: domain.Bucket31To60, DueDate: datePtr(2024, 5, 1)},
	}
}

func keys(rows []domain.Ticket) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Key
	}
	return out
}

func TestFilterIsCaseInsensitiveSubstringAND(t *testing.T) {
	rows := Apply(sampleRows(), TicketColumns(), Request{Filters: map[string]string{
		"summary": "SELLEYS",
		"status":  "in progress",
	}})
	assert.Equal(t, []string{"PROJ-1"}, keys(rows))
}

func TestFilterEmptyStringIgnored(t *testing.T) {
	rows := Apply(sampleRows(), TicketColumns(), Request{Filters: map[string]string{"summary": ""}})
	assert.Len(t, rows, 4)
}

func TestSortNumericColumn(t *testing.T) {
	rows := Apply(sampleRows(), TicketColumns(), Request{SortKey: "agingDays"})
	// Nil aging days renders empty; mixed pairs fall back to lexical
	// comparison where "" sorts before any numeric string.
	assert.Equal(t, []string{"PROJ-3", "PROJ-2", "PROJ-4", "PROJ-1"}, keys(rows))
}

func TestSortBucketUsesDomainOrder(t *testing.T) {
	asc := Apply(sampleRows(), TicketColumns(), Request{SortKey: "agingBucket"})
	assert.Equal(t, []string{"PROJ-3", "PROJ-2", "PROJ-4", "PROJ-1"}, keys(asc))

	desc := Apply(sampleRows(), TicketColumns(), Request{SortKey: "agingBucket", Desc: true})
	assert.Equal(t, []string{"PROJ-1", "PROJ-4", "PROJ-2", "PROJ-3"}, keys(desc))
}

func TestSortDateColumn(t *testing.T) {
	rows := Apply(sampleRows(), TicketColumns(), Request{
		Filters: map[string]string{"agingBucket": "-"},
		SortKey: "dueDate",
	})
	// Buckets containing "-": 0-30, 31-60, 61-90. PROJ-1 (90+) and
	// PROJ-3 (Unknown) are filtered out.
	assert.Equal(t, []string{"PROJ-4", "PROJ-2"}, keys(rows))
}

func TestDescExactlyReversesAsc(t *testing.T) {
	asc := Apply(sampleRows(), TicketColumns(), Request{SortKey: "summary"})
	desc := Apply(sampleRows(), TicketColumns(), Request{SortKey: "summary", Desc: true})
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i].Key, desc[len(desc)-1-i].Key)
	}
}

func TestStableTiesKeepOriginalOrder(t *testing.T) {
	rows := Apply(sampleRows(), TicketColumns(), Request{SortKey: "status"})
	// PROJ-1 and PROJ-3 tie on "In Progress" and must keep input order.
	var inProgress []string
	for _, r := range rows {
		if r.Status == "In Progress" {
			inProgress = append(inProgress, r.Key)
		}
	}
	assert.Equal(t, []string{"PROJ-1", "PROJ-3"}, inProgress)
}

func TestLimitTruncatesAfterSort(t *testing.T) {
	rows := Apply(sampleRows(), TicketColumns(), Request{SortKey: "key", Limit: 2})
	assert.Equal(t, []string{"PROJ-1", "PROJ-2"}, keys(rows))

	rows = Apply(sampleRows(), TicketColumns(), Request{Limit: 10})
	assert.Len(t, rows, 4, "limit larger than collection is a no-op")
}

func TestApplyIsDeterministicAndNonMutating(t *testing.T) {
	input := sampleRows()
	first := Apply(input, TicketColumns(), Request{SortKey: "agingBucket", Desc: true, Limit: 3})
	second := Apply(input, TicketColumns(), Request{SortKey: "agingBucket", Desc: true, Limit: 3})
	assert.Equal(t, keys(first), keys(second))
	assert.Equal(t, "PROJ-1", input[0].Key, "input order untouched")
}
