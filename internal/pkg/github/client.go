// Package github is a minimal client for the GitHub commit-listing API,
// covering only what the repository poller needs.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrRepoNotFound covers deleted, renamed and private repositories.
	ErrRepoNotFound = errors.New("repository not found or private")
	// ErrRateLimited is expected under load; retry on the next poll pass.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// CommitWindow bounds every fetch to the most recent commits. A fixed
// window avoids the clock-skew pitfalls of "since" cursors at the cost of
// an upper bound on commits seen per poll.
const CommitWindow = 30

type Commit struct {
	SHA        string
	Message    string
	AuthorDate time.Time
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type listCommitsResponse struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// ListRecentCommits fetches the latest CommitWindow commits for owner/repo,
// newest first, as returned by the API.
func (c *Client) ListRecentCommits(ctx context.Context, owner, repo string) ([]Commit, error) {
	url := fmt.Sprintf("%v/repos/%v/%v/commits?per_page=%v", c.baseURL, owner, repo, CommitWindow)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "hackathon-hub")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("c.httpClient.Do -> %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrRepoNotFound
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("github API returned %v", resp.Status)
	}

	var body []listCommitsResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("json.Decode -> %w", err)
	}

	commits := make([]Commit, 0, len(body))
	for _, c := range body {
		commits = append(commits, Commit{
			SHA:        c.SHA,
			Message:    c.Commit.Message,
			AuthorDate: c.Commit.Author.Date,
		})
	}

	return commits, nil
}
