package domain

import "time"

// Activity is a permanent record of a completed milestone. At most one
// exists per (enrollment, milestone) pair; it is never updated or
// re-recorded when later commits also match.
type Activity struct {
	ID            uint       `json:"id"`
	EnrollmentID  uint       `json:"enrollment_id"`
	MilestoneID   uint       `json:"milestone_id"`
	CommitHash    *string    `json:"commit_hash"`
	CommitMessage string     `json:"commit_message"`
	Timestamp     time.Time  `json:"timestamp"`
	Milestone     *Milestone `json:"milestone,omitempty"`
}
