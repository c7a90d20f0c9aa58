package domain

// Poll error kinds. NotFound and RateLimited are expected, retryable
// conditions rather than internal failures.
const (
	PollErrInvalidURL    = "invalid_url"
	PollErrNotFound      = "not_found"
	PollErrRateLimited   = "rate_limited"
	PollErrFetchFailed   = "fetch_failed"
	PollErrProcessFailed = "process_failed"
)

type PollResult struct {
	Student          string `json:"student"`
	RepoURL          string `json:"repo_url"`
	CommitsProcessed int    `json:"commits_processed"`
	NewActivities    int    `json:"new_activities"`
}

type PollError struct {
	RepoURL string `json:"repo_url"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// PollReport is always partial-success shaped: one repository's failure
// lands in Errors without aborting the rest.
type PollReport struct {
	TotalRepos int          `json:"total_repos"`
	Results    []PollResult `json:"results"`
	Errors     []PollError  `json:"errors"`
}
