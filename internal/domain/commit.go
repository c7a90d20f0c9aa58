package domain

import "time"

// Commit is the source-agnostic shape fed to the commit tracker, whether it
// came from a webhook push payload or from polling the hosting API.
type Commit struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ProcessSummary reports one tracker call. Processed counts every commit in
// the batch regardless of matches.
type ProcessSummary struct {
	Processed     int `json:"processed"`
	NewActivities int `json:"new_activities"`
}
