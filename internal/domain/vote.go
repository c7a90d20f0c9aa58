package domain

import "time"

// Vote is a voter's single live vote for a candidate enrollment. Voters may
// change their candidate while voting is open; the vote is upserted.
type Vote struct {
	ID          uint      `json:"id"`
	VoterID     uint      `json:"voter_id"`
	CandidateID uint      `json:"candidate_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Candidate struct {
	EnrollmentID uint    `json:"enrollment_id"`
	Name         string  `json:"name"`
	AvatarURL    string  `json:"avatar_url"`
	RepoURL      *string `json:"repo_url"`
}

type VotingStatus struct {
	IsOpen        bool        `json:"is_open"`
	Candidates    []Candidate `json:"candidates"`
	MyCandidateID *uint       `json:"my_candidate_id"`
}
