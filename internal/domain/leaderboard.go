package domain

import "time"

// RankedEnrollment is one leaderboard row. Score is always recomputed from
// the activity log, never stored.
type RankedEnrollment struct {
	Enrollment       Enrollment `json:"enrollment"`
	Score            int        `json:"score"`
	CompletedCount   int        `json:"completed_count"`
	LastActivityTime time.Time  `json:"last_activity_time"`
	VoteCount        int64      `json:"vote_count"`
}

type Leaderboard struct {
	Rankings        []RankedEnrollment `json:"rankings"`
	IsVotingOpen    bool               `json:"is_voting_open"`
	TotalMilestones int                `json:"total_milestones"`
	EventDeadline   *time.Time         `json:"event_deadline"`
}
