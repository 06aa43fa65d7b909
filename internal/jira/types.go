package jira

// RawIssue is one upstream issue as returned by the search endpoint.
// Fields stays a loose map because custom field IDs differ between
// instances and are supplied through configuration.
type RawIssue struct {
	Key    string         `json:"key"`
	Self   string         `json:"self"`
	Fields map[string]any `json:"fields"`
}

// SearchPage is one page of search results. IsLast and NextPageToken
// are both optional; pagination stops when either signals exhaustion or
// an empty page arrives.
type SearchPage struct {
	Issues        []RawIssue `json:"issues"`
	IsLast        *bool      `json:"isLast"`
	NextPageToken string     `json:"nextPageToken"`
}

type createIssueRequest struct {
	Fields createIssueFields `json:"fields"`
}

type createIssueFields struct {
	Summary     string         `json:"summary"`
	Description string         `json:"description"`
	IssueType   map[string]any `json:"issuetype"`
	Assignee    map[string]any `json:"assignee,omitempty"`
	Project     map[string]any `json:"project,omitempty"`
}

type createIssueResponse struct {
	Key  string `json:"key"`
	Self string `json:"self"`
}
