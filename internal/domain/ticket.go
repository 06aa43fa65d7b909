package domain

import "time"

// AgingBucket coarsely groups how many days overdue a ticket is.
type AgingBucket string

const (
	Bucket0To30   AgingBucket = "0-30"
	Bucket31To60  AgingBucket = "31-60"
	Bucket61To90  AgingBucket = "61-90"
	BucketOver90  AgingBucket = "90+"
	BucketUnknown AgingBucket = "Unknown"
)

// Category classifies a ticket by its project-type tag.
type Category string

const (
	CategoryStrategic Category = "Strategic"
	CategoryTactical  Category = "Tactical"
	CategoryAdHoc     Category = "Ad hoc"
)

// Delivery outcome labels for resolved-vs-due comparison.
const (
	OutcomeOnTime      = "On Time"
	OutcomeLate        = "Late"
	OutcomeNoDueDate   = "No due date"
	OutcomeUnknownDone = "Unknown completion date"
)

// Ticket is the aggregate for one upstream issue after mapping and
// field derivation. Key is the immutable upstream identifier; all
// merge operations are keyed on it.
type Ticket struct {
	Key             string      `json:"key"`
	URL             string      `json:"url"`
	Summary         string      `json:"summary"`
	Status          string      `json:"status"`
	RAG             string      `json:"rag"`
	IssueType       string      `json:"issueType"`
	ProjectKey      string      `json:"projectKey"`
	ProjectName     string      `json:"projectName"`
	ProjectType     string      `json:"projectType"`
	Labels          []string    `json:"labels"`
	StartDate       *time.Time  `json:"startDate"`
	DueDate         *time.Time  `json:"dueDate"`
	CreatedAt       *time.Time  `json:"createdAt"`
	ResolvedAt      *time.Time  `json:"resolvedAt"`
	Assignee        string      `json:"assignee"`
	Reporter        string      `json:"reporter"`
	Priority        string      `json:"priority"`
	AgingDays       *int        `json:"agingDays"`
	AgingBucket     AgingBucket `json:"agingBucket"`
	DeliveryOutcome string      `json:"deliveryOutcome"`
	IsDone          bool        `json:"isDone"`
	IsOverdue       bool        `json:"isOverdue"`
	Active          bool        `json:"active"`
	Stream          string      `json:"stream"`
	Category        Category    `json:"category"`
	Brand           string      `json:"brand"`
	RecentlyCreated bool        `json:"recentlyCreated"`
}
