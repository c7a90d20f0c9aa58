package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hackathon-hub/api/internal/domain"
)

type LeaderboardEnrollmentRepository interface {
	FindAll(ctx context.Context) ([]domain.Enrollment, error)
}

type LeaderboardMilestoneRepository interface {
	FindAll(ctx context.Context) ([]domain.Milestone, error)
}

type LeaderboardVoteRepository interface {
	CountByCandidate(ctx context.Context) (map[uint]int64, error)
}

type LeaderboardSettings interface {
	VotingOpen(ctx context.Context) (bool, error)
	EventDeadline(ctx context.Context) (*time.Time, error)
}

// LeaderboardService derives rankings fresh from the activity log on every
// call; scores are never stored, so they cannot drift from the activities.
type LeaderboardService struct {
	enrollments LeaderboardEnrollmentRepository
	milestones  LeaderboardMilestoneRepository
	votes       LeaderboardVoteRepository
	settings    LeaderboardSettings
}

func NewLeaderboardService(
	enrollments LeaderboardEnrollmentRepository,
	milestones LeaderboardMilestoneRepository,
	votes LeaderboardVoteRepository,
	settings LeaderboardSettings,
) *LeaderboardService {
	return &LeaderboardService{
		enrollments: enrollments,
		milestones:  milestones,
		votes:       votes,
		settings:    settings,
	}
}

// Rank builds the public leaderboard. While voting is open only candidate
// enrollments appear at all; everyone ranks by score otherwise.
func (s *LeaderboardService) Rank(ctx context.Context) (domain.Leaderboard, error) {
	return s.rank(ctx, false)
}

// RankAll is the admin view: every enrollment, ranked with the same keys,
// regardless of candidacy.
func (s *LeaderboardService) RankAll(ctx context.Context) (domain.Leaderboard, error) {
	return s.rank(ctx, true)
}

func (s *LeaderboardService) rank(ctx context.Context, includeNonCandidates bool) (domain.Leaderboard, error) {
	votingOpen, err := s.settings.VotingOpen(ctx)
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("s.settings.VotingOpen -> %w", err)
	}

	deadline, err := s.settings.EventDeadline(ctx)
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("s.settings.EventDeadline -> %w", err)
	}

	milestones, err := s.milestones.FindAll(ctx)
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("s.milestones.FindAll -> %w", err)
	}

	enrollments, err := s.enrollments.FindAll(ctx)
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("s.enrollments.FindAll -> %w", err)
	}

	// Admin listings carry vote counts even while voting is closed; the
	// public board only fetches them when they affect ordering.
	voteCounts := map[uint]int64{}
	if votingOpen || includeNonCandidates {
		voteCounts, err = s.votes.CountByCandidate(ctx)
		if err != nil {
			return domain.Leaderboard{}, fmt.Errorf("s.votes.CountByCandidate -> %w", err)
		}
	}

	rankings := make([]domain.RankedEnrollment, 0, len(enrollments))
	for _, enrollment := range enrollments {
		if votingOpen && !includeNonCandidates && !enrollment.IsVotingCandidate {
			continue
		}

		rankings = append(rankings, rankEnrollment(enrollment, milestones, voteCounts))
	}

	sortRankings(rankings, votingOpen)

	return domain.Leaderboard{
		Rankings:        rankings,
		IsVotingOpen:    votingOpen,
		TotalMilestones: len(milestones),
		EventDeadline:   deadline,
	}, nil
}

func rankEnrollment(enrollment domain.Enrollment, milestones []domain.Milestone, voteCounts map[uint]int64) domain.RankedEnrollment {
	completed := make(map[uint]bool, len(enrollment.Activities))
	var lastActivity time.Time
	for _, a := range enrollment.Activities {
		completed[a.MilestoneID] = true
		if a.Timestamp.After(lastActivity) {
			lastActivity = a.Timestamp
		}
	}

	score := 0
	for _, m := range milestones {
		if completed[m.ID] {
			score += m.Points
		}
	}

	return domain.RankedEnrollment{
		Enrollment:       enrollment,
		Score:            score,
		CompletedCount:   len(completed),
		LastActivityTime: lastActivity,
		VoteCount:        voteCounts[enrollment.ID],
	}
}

// sortRankings orders rows by vote count (voting mode only), then score,
// both descending; ties go to the earlier last activity.
func sortRankings(rankings []domain.RankedEnrollment, votingOpen bool) {
	sort.SliceStable(rankings, func(i, j int) bool {
		a, b := rankings[i], rankings[j]

		if votingOpen && a.VoteCount != b.VoteCount {
			return a.VoteCount > b.VoteCount
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}

		return a.LastActivityTime.Before(b.LastActivityTime)
	})
}
