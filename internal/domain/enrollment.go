package domain

import "time"

// Enrollment is a user's participation in the event. One per user; the
// linked repository is optional until the student links one.
type Enrollment struct {
	ID                uint       `json:"id"`
	UserID            uint       `json:"user_id"`
	RepoURL           *string    `json:"repo_url"`
	IsVotingCandidate bool       `json:"is_voting_candidate"`
	User              User       `json:"user,omitempty"`
	Activities        []Activity `json:"activities,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
