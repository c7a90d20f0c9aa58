package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	RepoURL   *string `json:"repo_url"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.AvatarURL, is.URL),
	)
}

type LinkRepoRequest struct {
	RepoURL string `json:"repo_url"`
}

func (req *LinkRepoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RepoURL, validation.Required, is.URL),
	)
}
