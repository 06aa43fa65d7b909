// Package derive holds the pure field-derivation functions applied to
// every mapped ticket. All functions are total over optional inputs and
// take the reference time as a parameter so callers control "now".
package derive

import (
	"strings"
	"time"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

// Brand labels recognized on tickets, scanned in priority order.
var brandPriority = []string{"Selleys", "Yates"}

// BrandOther is the default when no known brand matches.
const BrandOther = "Other"

// AgingDays returns the signed number of whole days between now and the
// due date at day granularity: positive when overdue, zero or negative
// when not yet due, nil when there is no due date.
func AgingDays(due *time.Time, now time.Time) *int {
	if due == nil {
		return nil
	}
	days := int(dayOf(now).Sub(dayOf(*due)).Hours() / 24)
	return &days
}

// BucketFor maps a signed aging-day count onto its bucket. The buckets
// partition the integers exactly: 30 is still "0-30", 31 starts
// "31-60", and so on.
func BucketFor(days *int) domain.AgingBucket {
	switch {
	case days == nil:
		return domain.BucketUnknown
	case *days > 90:
		return domain.BucketOver90
	case *days > 60:
		return domain.Bucket61To90
	case *days > 30:
		return domain.Bucket31To60
	default:
		return domain.Bucket0To30
	}
}

// Outcome compares resolution day against due day.
func Outcome(resolved, due *time.Time) string {
	if due == nil {
		return domain.OutcomeNoDueDate
	}
	if resolved == nil {
		return domain.OutcomeUnknownDone
	}
	if !dayOf(*resolved).After(dayOf(*due)) {
		return domain.OutcomeOnTime
	}
	return domain.OutcomeLate
}

// Brand scans labels and brand-field values for a known brand name.
// The scan is case-insensitive substring matching over the concatenated
// values; the first brand in priority order wins.
func Brand(labels, brandFields []string) string {
	haystack := strings.ToLower(strings.Join(labels, " ") + " " + strings.Join(brandFields, " "))
	for _, brand := range brandPriority {
		if strings.Contains(haystack, strings.ToLower(brand)) {
			return brand
		}
	}
	return BrandOther
}

// CategoryFor derives the ticket category from the primary project-type
// text. Strategic is the default, not merely a fallback: unclassified
// work is treated as strategic until tagged otherwise.
func CategoryFor(projectType string) domain.Category {
	lowered := strings.ToLower(projectType)
	switch {
	case strings.Contains(lowered, "tactical"), strings.Contains(lowered, "operational"):
		return domain.CategoryTactical
	case strings.Contains(lowered, "not yet"):
		return domain.CategoryAdHoc
	default:
		return domain.CategoryStrategic
	}
}

// WithinLast24h reports whether ts falls inside the 24 hours ending at
// now. A nil timestamp is never recent.
func WithinLast24h(ts *time.Time, now time.Time) bool {
	if ts == nil {
		return false
	}
	diff := now.Sub(*ts)
	return diff >= 0 && diff <= 24*time.Hour
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
