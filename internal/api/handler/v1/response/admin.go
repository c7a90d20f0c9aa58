package response

import "github.com/hackathon-hub/api/internal/domain"

type VoteControlResponse struct {
	IsOpen         bool  `json:"is_open"`
	CandidateCount int64 `json:"candidate_count"`
}

type EventTimerResponse struct {
	Deadline *string `json:"deadline"`
}

type WebhookStatusResponse struct {
	WebhookURL   string   `json:"webhook_url"`
	IsConfigured bool     `json:"is_configured"`
	Instructions []string `json:"instructions"`
}

type PollResponse struct {
	domain.PollReport
	Message string `json:"message"`
}
