package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRecentCommits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/alice/proj/commits", r.URL.Path)
		assert.Equal(t, fmt.Sprint(CommitWindow), r.URL.Query().Get("per_page"))
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"sha": "abc", "commit": {"message": "feat: setup", "author": {"date": "2025-06-01T10:00:00Z"}}},
			{"sha": "def", "commit": {"message": "fix: typo", "author": {"date": "2025-06-01T09:00:00Z"}}}
		]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)

	commits, err := client.ListRecentCommits(context.Background(), "alice", "proj")
	require.NoError(t, err)

	require.Len(t, commits, 2)
	assert.Equal(t, "abc", commits[0].SHA)
	assert.Equal(t, "feat: setup", commits[0].Message)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), commits[0].AuthorDate)
}

func TestListRecentCommits_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)

	_, err := client.ListRecentCommits(context.Background(), "gone", "repo")
	assert.ErrorIs(t, err, ErrRepoNotFound)
}

func TestListRecentCommits_RateLimited(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusTooManyRequests} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(srv.URL, time.Second)

		_, err := client.ListRecentCommits(context.Background(), "alice", "proj")
		assert.ErrorIs(t, err, ErrRateLimited, "status %d", status)

		srv.Close()
	}
}

func TestListRecentCommits_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)

	_, err := client.ListRecentCommits(context.Background(), "alice", "proj")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRepoNotFound)
	assert.NotErrorIs(t, err, ErrRateLimited)
}

func TestListRecentCommits_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 50*time.Millisecond)

	_, err := client.ListRecentCommits(context.Background(), "alice", "proj")
	assert.Error(t, err)
}
