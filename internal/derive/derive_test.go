package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

var now = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAgingDays(t *testing.T) {
	require.Nil(t, AgingDays(nil, now))

	overdue := AgingDays(datePtr(2024, 6, 10), now)
	require.NotNil(t, overdue)
	assert.Equal(t, 5, *overdue)

	future := AgingDays(datePtr(2024, 6, 20), now)
	require.NotNil(t, future)
	assert.Equal(t, -5, *future)

	// Time of day must not matter: due later today is still zero days.
	dueToday := time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)
	sameDay := AgingDays(&dueToday, now)
	require.NotNil(t, sameDay)
	assert.Equal(t, 0, *sameDay)
}

func TestBucketForBoundaries(t *testing.T) {
	cases := map[int]domain.AgingBucket{
		-10: domain.Bucket0To30,
		0:   domain.Bucket0To30,
		30:  domain.Bucket0To30,
		31:  domain.Bucket31To60,
		60:  domain.Bucket31To60,
		61:  domain.Bucket61To90,
		90:  domain.Bucket61To90,
		91:  domain.BucketOver90,
		400: domain.BucketOver90,
	}
	for days, want := range cases {
		d := days
		assert.Equal(t, want, BucketFor(&d), "days=%d", days)
	}
	assert.Equal(t, domain.BucketUnknown, BucketFor(nil))
}

func TestOutcome(t *testing.T) {
	due := datePtr(2024, 1, 10)
	assert.Equal(t, domain.OutcomeOnTime, Outcome(datePtr(2024, 1, 10), due))
	assert.Equal(t, domain.OutcomeOnTime, Outcome(datePtr(2024, 1, 9), due))
	assert.Equal(t, domain.OutcomeLate, Outcome(datePtr(2024, 1, 11), due))
	assert.Equal(t, domain.OutcomeUnknownDone, Outcome(nil, due))
	assert.Equal(t, domain.OutcomeNoDueDate, Outcome(datePtr(2024, 1, 10), nil))
}

func TestBrand(t *testing.T) {
	assert.Equal(t, "Selleys", Brand([]string{"selleys-paint"}, nil))
	assert.Equal(t, "Yates", Brand(nil, []string{"Yates"}))
	assert.Equal(t, "Selleys", Brand([]string{"YATES"}, []string{"misc", "SELLEYS range"}),
		"Selleys outranks Yates when both appear")
	assert.Equal(t, BrandOther, Brand(nil, nil))
	assert.Equal(t, BrandOther, Brand([]string{"gardening"}, []string{""}))
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, domain.CategoryTactical, CategoryFor("Tactical delivery"))
	assert.Equal(t, domain.CategoryTactical, CategoryFor("BAU / Operational"))
	assert.Equal(t, domain.CategoryAdHoc, CategoryFor("Not yet classified"))
	assert.Equal(t, domain.CategoryStrategic, CategoryFor("Growth initiative"))
	assert.Equal(t, domain.CategoryStrategic, CategoryFor(""))
}

func TestWithinLast24h(t *testing.T) {
	assert.False(t, WithinLast24h(nil, now))

	recent := now.Add(-23 * time.Hour)
	assert.True(t, WithinLast24h(&recent, now))

	edge := now.Add(-24 * time.Hour)
	assert.True(t, WithinLast24h(&edge, now))

	old := now.Add(-25 * time.Hour)
	assert.False(t, WithinLast24h(&old, now))

	future := now.Add(time.Hour)
	assert.False(t, WithinLast24h(&future, now))
}
