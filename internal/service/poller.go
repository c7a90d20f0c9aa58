package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/pkg/github"
)

var ErrInvalidRepoURL = errors.New("invalid GitHub repository URL")

// Mirrors the accepted link format: https://github.com/owner/repo[.git].
var repoURLPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)`)

func parseRepoURL(repoURL string) (owner, repo string, err error) {
	match := repoURLPattern.FindStringSubmatch(repoURL)
	if match == nil {
		return "", "", ErrInvalidRepoURL
	}

	return match[1], strings.TrimSuffix(match[2], ".git"), nil
}

type GitHubClient interface {
	ListRecentCommits(ctx context.Context, owner, repo string) ([]github.Commit, error)
}

type PollerEnrollmentRepository interface {
	FindAllWithRepoURL(ctx context.Context) ([]domain.Enrollment, error)
}

type CommitProcessor interface {
	ProcessCommits(ctx context.Context, enrollmentID uint, repoURL string, commits []domain.Commit) (domain.ProcessSummary, error)
}

// PollerService walks every enrollment with a linked repository, fetches
// its recent commits and feeds the unseen ones to the commit tracker.
// Enrollments are visited sequentially: one outstanding fetch at a time
// keeps the third-party API rate limit happy.
type PollerService struct {
	enrollments PollerEnrollmentRepository
	gh          GitHubClient
	processor   CommitProcessor
}

func NewPollerService(enrollments PollerEnrollmentRepository, gh GitHubClient, processor CommitProcessor) *PollerService {
	return &PollerService{
		enrollments: enrollments,
		gh:          gh,
		processor:   processor,
	}
}

// PollAll always returns a partial-success report: one repository's
// failure is recorded and the walk continues.
func (s *PollerService) PollAll(ctx context.Context) (domain.PollReport, error) {
	enrollments, err := s.enrollments.FindAllWithRepoURL(ctx)
	if err != nil {
		return domain.PollReport{}, fmt.Errorf("s.enrollments.FindAllWithRepoURL -> %w", err)
	}

	report := domain.PollReport{
		TotalRepos: len(enrollments),
		Results:    []domain.PollResult{},
		Errors:     []domain.PollError{},
	}

	for _, enrollment := range enrollments {
		if enrollment.RepoURL == nil {
			continue
		}
		repoURL := *enrollment.RepoURL

		result, pollErr := s.pollOne(ctx, enrollment, repoURL)
		if pollErr != nil {
			report.Errors = append(report.Errors, *pollErr)

			continue
		}

		report.Results = append(report.Results, result)
	}

	return report, nil
}

func (s *PollerService) pollOne(ctx context.Context, enrollment domain.Enrollment, repoURL string) (domain.PollResult, *domain.PollError) {
	owner, repo, err := parseRepoURL(repoURL)
	if err != nil {
		return domain.PollResult{}, &domain.PollError{
			RepoURL: repoURL,
			Kind:    domain.PollErrInvalidURL,
			Message: "invalid GitHub URL format",
		}
	}

	// Filtering by already-recorded hashes is more reliable than "since"
	// timestamps; authoring time and API insertion order can diverge.
	known := make(map[string]bool, len(enrollment.Activities))
	for _, a := range enrollment.Activities {
		if a.CommitHash != nil {
			known[*a.CommitHash] = true
		}
	}

	fetched, err := s.gh.ListRecentCommits(ctx, owner, repo)
	if err != nil {
		return domain.PollResult{}, classifyFetchError(repoURL, err)
	}

	commits := make([]domain.Commit, 0, len(fetched))
	for _, c := range fetched {
		if known[c.SHA] {
			continue
		}
		commits = append(commits, domain.Commit{
			ID:        c.SHA,
			Message:   c.Message,
			Timestamp: c.AuthorDate,
		})
	}

	summary, err := s.processor.ProcessCommits(ctx, enrollment.ID, repoURL, commits)
	if err != nil {
		zap.L().Error("processing polled commits failed",
			zap.Uint("enrollment_id", enrollment.ID),
			zap.String("repo_url", repoURL),
			zap.Error(err))

		return domain.PollResult{}, &domain.PollError{
			RepoURL: repoURL,
			Kind:    domain.PollErrProcessFailed,
			Message: err.Error(),
		}
	}

	student := enrollment.User.Name
	if student == "" {
		student = enrollment.User.Email
	}

	return domain.PollResult{
		Student:          student,
		RepoURL:          repoURL,
		CommitsProcessed: summary.Processed,
		NewActivities:    summary.NewActivities,
	}, nil
}

func classifyFetchError(repoURL string, err error) *domain.PollError {
	pollErr := &domain.PollError{
		RepoURL: repoURL,
		Message: err.Error(),
	}

	switch {
	case errors.Is(err, github.ErrRepoNotFound):
		pollErr.Kind = domain.PollErrNotFound
		pollErr.Message = "repository not found or private"
	case errors.Is(err, github.ErrRateLimited):
		pollErr.Kind = domain.PollErrRateLimited
		pollErr.Message = "rate limit exceeded, will retry on next poll"
	default:
		// Includes per-request timeouts; retryable for this repo only.
		pollErr.Kind = domain.PollErrFetchFailed
	}

	return pollErr
}
