package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CastVoteRequest struct {
	CandidateID uint `json:"candidate_id"`
}

func (req *CastVoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CandidateID, validation.Required),
	)
}

type VoteControlRequest struct {
	Action string `json:"action"`
}

func (req *VoteControlRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Action, validation.Required, validation.In("OPEN", "CLOSE")),
	)
}

type SelectCandidatesRequest struct {
	EnrollmentIDs []uint `json:"enrollment_ids"`
}

func (req *SelectCandidatesRequest) Validate() error {
	// An empty list is valid: it clears every candidate flag.
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EnrollmentIDs, validation.NotNil),
	)
}

type EventTimerRequest struct {
	Deadline string `json:"deadline"`
}

func (req *EventTimerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Deadline, validation.Required),
	)
}
