package request

// PushEvent mirrors the subset of the GitHub push payload the tracker cares
// about. Timestamps arrive as RFC3339 strings and are parsed at the handler.
type PushEvent struct {
	Repository PushRepository `json:"repository"`
	Commits    []PushCommit   `json:"commits"`
}

type PushRepository struct {
	HTMLURL string `json:"html_url"`
}

type PushCommit struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
