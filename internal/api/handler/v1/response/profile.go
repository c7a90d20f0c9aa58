package response

import "github.com/hackathon-hub/api/internal/domain"

type ProfileEnrollment struct {
	RepoURL *string `json:"repo_url"`
}

type ProfileResponse struct {
	User       domain.User       `json:"user"`
	Enrollment ProfileEnrollment `json:"enrollment"`
}

type WebhookResponse struct {
	Processed     int `json:"processed"`
	NewActivities int `json:"new_activities"`
}
