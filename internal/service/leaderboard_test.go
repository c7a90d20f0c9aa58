package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackathon-hub/api/internal/domain"
)

type fakeLeaderboardEnrollments struct {
	enrollments []domain.Enrollment
}

func (f *fakeLeaderboardEnrollments) FindAll(_ context.Context) ([]domain.Enrollment, error) {
	return f.enrollments, nil
}

type fakeLeaderboardMilestones struct {
	milestones []domain.Milestone
}

func (f *fakeLeaderboardMilestones) FindAll(_ context.Context) ([]domain.Milestone, error) {
	return f.milestones, nil
}

type fakeLeaderboardVotes struct {
	counts map[uint]int64
}

func (f *fakeLeaderboardVotes) CountByCandidate(_ context.Context) (map[uint]int64, error) {
	return f.counts, nil
}

type fakeLeaderboardSettings struct {
	votingOpen bool
	deadline   *time.Time
}

func (f *fakeLeaderboardSettings) VotingOpen(_ context.Context) (bool, error) {
	return f.votingOpen, nil
}

func (f *fakeLeaderboardSettings) EventDeadline(_ context.Context) (*time.Time, error) {
	return f.deadline, nil
}

func leaderboardMilestones() []domain.Milestone {
	return []domain.Milestone{
		{ID: 1, Title: "Setup", Points: 10},
		{ID: 2, Title: "Database", Points: 20},
		{ID: 3, Title: "Deploy", Points: 30},
	}
}

func at(hour int) time.Time {
	return time.Date(2025, 6, 1, hour, 0, 0, 0, time.UTC)
}

func enrollmentWith(id uint, name string, candidate bool, activities ...domain.Activity) domain.Enrollment {
	return domain.Enrollment{
		ID:                id,
		UserID:            id,
		User:              domain.User{ID: id, Name: name},
		IsVotingCandidate: candidate,
		Activities:        activities,
	}
}

func TestRank_OrdersByScoreThenEarliestLastActivity(t *testing.T) {
	enrollments := &fakeLeaderboardEnrollments{enrollments: []domain.Enrollment{
		// Same score, but bob finished earlier so he ranks first.
		enrollmentWith(1, "alice", false,
			domain.Activity{MilestoneID: 1, Timestamp: at(9)},
			domain.Activity{MilestoneID: 2, Timestamp: at(15)},
		),
		enrollmentWith(2, "bob", false,
			domain.Activity{MilestoneID: 1, Timestamp: at(8)},
			domain.Activity{MilestoneID: 2, Timestamp: at(12)},
		),
		enrollmentWith(3, "carol", false,
			domain.Activity{MilestoneID: 3, Timestamp: at(10)},
		),
	}}
	svc := NewLeaderboardService(enrollments, &fakeLeaderboardMilestones{milestones: leaderboardMilestones()}, &fakeLeaderboardVotes{}, &fakeLeaderboardSettings{})

	board, err := svc.Rank(context.Background())
	require.NoError(t, err)

	require.Len(t, board.Rankings, 3)
	assert.Equal(t, uint(3), board.Rankings[0].Enrollment.ID) // 30 points
	assert.Equal(t, uint(2), board.Rankings[1].Enrollment.ID) // 30 points, earlier
	assert.Equal(t, uint(1), board.Rankings[2].Enrollment.ID)
	assert.Equal(t, 30, board.Rankings[0].Score)
	assert.Equal(t, at(12), board.Rankings[1].LastActivityTime)
	assert.Equal(t, 3, board.TotalMilestones)
	assert.False(t, board.IsVotingOpen)
}

func TestRank_ScoreIgnoresActivitiesForDeletedMilestones(t *testing.T) {
	enrollments := &fakeLeaderboardEnrollments{enrollments: []domain.Enrollment{
		enrollmentWith(1, "alice", false,
			domain.Activity{MilestoneID: 99, Timestamp: at(9)}, // milestone no longer exists
			domain.Activity{MilestoneID: 1, Timestamp: at(10)},
		),
	}}
	svc := NewLeaderboardService(enrollments, &fakeLeaderboardMilestones{milestones: leaderboardMilestones()}, &fakeLeaderboardVotes{}, &fakeLeaderboardSettings{})

	board, err := svc.Rank(context.Background())
	require.NoError(t, err)

	require.Len(t, board.Rankings, 1)
	assert.Equal(t, 10, board.Rankings[0].Score)
}

func TestRank_VotingModeFiltersAndOrdersByVotes(t *testing.T) {
	enrollments := &fakeLeaderboardEnrollments{enrollments: []domain.Enrollment{
		enrollmentWith(1, "alice", true,
			domain.Activity{MilestoneID: 3, Timestamp: at(9)},
		),
		enrollmentWith(2, "bob", true,
			domain.Activity{MilestoneID: 1, Timestamp: at(10)},
		),
		enrollmentWith(3, "carol", false, // not a candidate, hidden while voting
			domain.Activity{MilestoneID: 3, Timestamp: at(8)},
		),
	}}
	votes := &fakeLeaderboardVotes{counts: map[uint]int64{1: 2, 2: 5}}
	settings := &fakeLeaderboardSettings{votingOpen: true}
	svc := NewLeaderboardService(enrollments, &fakeLeaderboardMilestones{milestones: leaderboardMilestones()}, votes, settings)

	board, err := svc.Rank(context.Background())
	require.NoError(t, err)

	require.Len(t, board.Rankings, 2)
	// bob has fewer points but more votes; votes dominate in voting mode.
	assert.Equal(t, uint(2), board.Rankings[0].Enrollment.ID)
	assert.Equal(t, int64(5), board.Rankings[0].VoteCount)
	assert.Equal(t, uint(1), board.Rankings[1].Enrollment.ID)
	assert.True(t, board.IsVotingOpen)
}

func TestRank_VotingModeTieBreaksByScore(t *testing.T) {
	enrollments := &fakeLeaderboardEnrollments{enrollments: []domain.Enrollment{
		enrollmentWith(1, "alice", true,
			domain.Activity{MilestoneID: 1, Timestamp: at(9)},
		),
		enrollmentWith(2, "bob", true,
			domain.Activity{MilestoneID: 3, Timestamp: at(10)},
		),
	}}
	votes := &fakeLeaderboardVotes{counts: map[uint]int64{1: 3, 2: 3}}
	settings := &fakeLeaderboardSettings{votingOpen: true}
	svc := NewLeaderboardService(enrollments, &fakeLeaderboardMilestones{milestones: leaderboardMilestones()}, votes, settings)

	board, err := svc.Rank(context.Background())
	require.NoError(t, err)

	require.Len(t, board.Rankings, 2)
	assert.Equal(t, uint(2), board.Rankings[0].Enrollment.ID) // 30 > 10 on equal votes
}

func TestRankAll_KeepsNonCandidatesWhileVotingOpen(t *testing.T) {
	enrollments := &fakeLeaderboardEnrollments{enrollments: []domain.Enrollment{
		enrollmentWith(1, "alice", true),
		enrollmentWith(2, "bob", false),
	}}
	settings := &fakeLeaderboardSettings{votingOpen: true}
	svc := NewLeaderboardService(enrollments, &fakeLeaderboardMilestones{milestones: leaderboardMilestones()}, &fakeLeaderboardVotes{}, settings)

	board, err := svc.RankAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, board.Rankings, 2)
}

func TestRankAll_CarriesVoteCountsWhileVotingClosed(t *testing.T) {
	enrollments := &fakeLeaderboardEnrollments{enrollments: []domain.Enrollment{
		enrollmentWith(1, "alice", true),
	}}
	votes := &fakeLeaderboardVotes{counts: map[uint]int64{1: 4}}
	svc := NewLeaderboardService(enrollments, &fakeLeaderboardMilestones{milestones: leaderboardMilestones()}, votes, &fakeLeaderboardSettings{})

	board, err := svc.RankAll(context.Background())
	require.NoError(t, err)

	require.Len(t, board.Rankings, 1)
	assert.Equal(t, int64(4), board.Rankings[0].VoteCount)

	// The public board skips the count lookup while voting is closed.
	public, err := svc.Rank(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), public.Rankings[0].VoteCount)
}

func TestRank_CarriesEventDeadline(t *testing.T) {
	deadline := at(23)
	settings := &fakeLeaderboardSettings{deadline: &deadline}
	svc := NewLeaderboardService(&fakeLeaderboardEnrollments{}, &fakeLeaderboardMilestones{}, &fakeLeaderboardVotes{}, settings)

	board, err := svc.Rank(context.Background())
	require.NoError(t, err)

	require.NotNil(t, board.EventDeadline)
	assert.Equal(t, deadline, *board.EventDeadline)
}
