package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"

	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/repository"
)

var (
	ErrInvalidPattern     = errors.New("invalid label pattern")
	ErrEnrollmentNotFound = repository.ErrEnrollmentNotFound
)

const matchTimeout = time.Second

// compileLabelPattern compiles an admin-supplied milestone pattern with
// case-insensitive search semantics.
func compileLabelPattern(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	re.MatchTimeout = matchTimeout

	return re, nil
}

// MatchesPattern reports whether labelPattern is found anywhere in message,
// ignoring case. Returns ErrInvalidPattern when the pattern does not compile.
func MatchesPattern(message, labelPattern string) (bool, error) {
	re, err := compileLabelPattern(labelPattern)
	if err != nil {
		return false, err
	}

	matched, err := re.MatchString(message)
	if err != nil {
		return false, fmt.Errorf("re.MatchString -> %w", err)
	}

	return matched, nil
}

type TrackerEnrollmentRepository interface {
	FindByIDAndRepoURL(ctx context.Context, id uint, repoURL string) (domain.Enrollment, error)
}

type TrackerMilestoneRepository interface {
	FindAll(ctx context.Context) ([]domain.Milestone, error)
}

type TrackerActivityRepository interface {
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	FindByEnrollmentID(ctx context.Context, enrollmentID uint) ([]domain.Activity, error)
}

// TrackerService turns commit batches into milestone completion records.
// It is source-agnostic: webhook pushes and polled API results go through
// the same path.
type TrackerService struct {
	enrollments TrackerEnrollmentRepository
	milestones  TrackerMilestoneRepository
	activities  TrackerActivityRepository
}

func NewTrackerService(
	enrollments TrackerEnrollmentRepository,
	milestones TrackerMilestoneRepository,
	activities TrackerActivityRepository,
) *TrackerService {
	return &TrackerService{
		enrollments: enrollments,
		milestones:  milestones,
		activities:  activities,
	}
}

// ProcessCommits records one activity per milestone newly satisfied by the
// batch. Commits are scanned in input order; once a milestone is completed
// (before the call or by an earlier commit in the same batch) later matches
// are ignored. A stale or forged enrollment/repo pairing is a silent no-op.
//
// A persistence failure aborts the remaining commits for this enrollment;
// activities already created stay recorded.
func (s *TrackerService) ProcessCommits(ctx context.Context, enrollmentID uint, repoURL string, commits []domain.Commit) (domain.ProcessSummary, error) {
	summary := domain.ProcessSummary{Processed: len(commits)}

	enrollment, err := s.enrollments.FindByIDAndRepoURL(ctx, enrollmentID, repoURL)
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			zap.L().Info("no enrollment for repo, skipping batch",
				zap.Uint("enrollment_id", enrollmentID),
				zap.String("repo_url", repoURL))

			return domain.ProcessSummary{}, nil
		}

		return domain.ProcessSummary{}, fmt.Errorf("s.enrollments.FindByIDAndRepoURL -> %w", err)
	}

	existing, err := s.activities.FindByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		return domain.ProcessSummary{}, fmt.Errorf("s.activities.FindByEnrollmentID -> %w", err)
	}

	completed := make(map[uint]bool, len(existing))
	for _, a := range existing {
		completed[a.MilestoneID] = true
	}

	milestones, err := s.milestones.FindAll(ctx)
	if err != nil {
		return domain.ProcessSummary{}, fmt.Errorf("s.milestones.FindAll -> %w", err)
	}

	// Patterns are validated at milestone creation, but a stored invalid
	// pattern must not take down the whole batch.
	patterns := make(map[uint]*regexp2.Regexp, len(milestones))
	for _, m := range milestones {
		re, err := compileLabelPattern(m.LabelPattern)
		if err != nil {
			zap.L().Warn("skipping milestone with invalid pattern",
				zap.Uint("milestone_id", m.ID),
				zap.String("pattern", m.LabelPattern))

			continue
		}
		patterns[m.ID] = re
	}

	for _, commit := range commits {
		for _, milestone := range milestones {
			if completed[milestone.ID] {
				continue
			}

			re, ok := patterns[milestone.ID]
			if !ok {
				continue
			}

			matched, err := re.MatchString(commit.Message)
			if err != nil {
				zap.L().Warn("pattern match failed",
					zap.Uint("milestone_id", milestone.ID),
					zap.Error(err))

				continue
			}
			if !matched {
				continue
			}

			hash := commit.ID
			_, err = s.activities.Create(ctx, domain.Activity{
				EnrollmentID:  enrollment.ID,
				MilestoneID:   milestone.ID,
				CommitHash:    &hash,
				CommitMessage: commit.Message,
				Timestamp:     commit.Timestamp,
			})
			if err != nil {
				if errors.Is(err, repository.ErrActivityAlreadyRecorded) {
					// Concurrent delivery won the race; same outcome.
					completed[milestone.ID] = true

					continue
				}

				return summary, fmt.Errorf("s.activities.Create -> %w", err)
			}

			zap.L().Info("milestone completed",
				zap.Uint("enrollment_id", enrollment.ID),
				zap.Uint("milestone_id", milestone.ID),
				zap.String("commit", commit.ID))

			completed[milestone.ID] = true
			summary.NewActivities++
		}
	}

	return summary, nil
}
