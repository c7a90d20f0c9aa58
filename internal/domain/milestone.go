package domain

import "time"

// Milestone is an admin-configured goal. LabelPattern is a case-insensitive
// regular expression searched for anywhere in a commit message.
type Milestone struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	LabelPattern string    `json:"label_pattern"`
	Order        int       `json:"order"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
