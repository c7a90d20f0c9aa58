package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateMilestoneRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	LabelPattern string `json:"label_pattern"`
	Points       int    `json:"points"`
	Order        int    `json:"order"`
}

func (req *CreateMilestoneRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.LabelPattern, validation.Required),
		validation.Field(&req.Points, validation.Required, validation.Min(1)),
	)
}

type UpdateMilestoneRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	LabelPattern *string `json:"label_pattern"`
	Points       *int    `json:"points"`
	Order        *int    `json:"order"`
}

func (req *UpdateMilestoneRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.LabelPattern, validation.NilOrNotEmpty),
		validation.Field(&req.Points, validation.Min(1)),
	)
}

// Updates flattens the request into the column map the service layer expects,
// keeping only the fields the caller actually sent.
func (req *UpdateMilestoneRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LabelPattern != nil {
		updates["label_pattern"] = *req.LabelPattern
	}
	if req.Points != nil {
		updates["points"] = *req.Points
	}
	if req.Order != nil {
		updates["order"] = *req.Order
	}
	return updates
}
