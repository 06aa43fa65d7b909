package query

import (
	"github.com/spec-kit/ticket-insights/internal/domain"
)

// bucketRank orders aging buckets by severity rather than lexically:
// 90+ sorts above 61-90 above 31-60 above 0-30 above Unknown.
var bucketRank = map[string]int{
	string(domain.BucketUnknown): 0,
	string(domain.Bucket0To30):   1,
	string(domain.Bucket31To60):  2,
	string(domain.Bucket61To90):  3,
	string(domain.BucketOver90):  4,
}

// TicketColumns returns the column definitions exposed by the ticket
// query endpoint.
func TicketColumns() []Column {
	return []Column{
		{Key: "key", Value: func(t domain.Ticket) any { return t.Key }},
		{Key: "summary", Value: func(t domain.Ticket) any { return t.Summary }},
		{Key: "status", Value: func(t domain.Ticket) any { return t.Status }},
		{Key: "rag", Value: func(t domain.Ticket) any { return t.RAG }},
		{Key: "issueType", Value: func(t domain.Ticket) any { return t.IssueType }},
		{Key: "project", Value: func(t domain.Ticket) any { return t.ProjectName }},
		{Key: "labels", Value: func(t domain.Ticket) any { return t.Labels }},
		{Key: "assignee", Value: func(t domain.Ticket) any { return t.Assignee }},
		{Key: "reporter", Value: func(t domain.Ticket) any { return t.Reporter }},
		{Key: "priority", Value: func(t domain.Ticket) any { return t.Priority }},
		{Key: "startDate", Value: func(t domain.Ticket) any { return t.StartDate }},
		{Key: "dueDate", Value: func(t domain.Ticket) any { return t.DueDate }},
		{Key: "created", Value: func(t domain.Ticket) any { return t.CreatedAt }},
		{Key: "resolved", Value: func(t domain.Ticket) any { return t.ResolvedAt }},
		{Key: "agingDays", Value: func(t domain.Ticket) any { return t.AgingDays }},
		{Key: "agingBucket", Value: func(t domain.Ticket) any { return string(t.AgingBucket) }, Rank: bucketRank},
		{Key: "deliveryOutcome", Value: func(t domain.Ticket) any { return t.DeliveryOutcome }},
		{Key: "category", Value: func(t domain.Ticket) any { return string(t.Category) }},
		{Key: "brand", Value: func(t domain.Ticket) any { return t.Brand }},
		{Key: "stream", Value: func(t domain.Ticket) any { return t.Stream }},
	}
}
