package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackathon-hub/api/internal/api/handler/v1/request"
	"github.com/hackathon-hub/api/internal/api/handler/v1/response"
	"github.com/hackathon-hub/api/internal/api/middleware"
	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/service"
)

type ProfileUserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	UpdateProfile(ctx context.Context, id uint, name, avatarURL *string) (domain.User, error)
}

type ProfileEnrollmentService interface {
	LinkRepo(ctx context.Context, userID uint, repoURL *string) (domain.Enrollment, error)
	GetByUserID(ctx context.Context, userID uint) (domain.Enrollment, error)
}

type ProfileHandler struct {
	users       ProfileUserService
	enrollments ProfileEnrollmentService
}

func NewProfileHandler(users ProfileUserService, enrollments ProfileEnrollmentService) *ProfileHandler {
	return &ProfileHandler{
		users:       users,
		enrollments: enrollments,
	}
}

// HandleGetProfile godoc
// @Summary      Get the authenticated user's profile
// @Tags         profile
// @Produce      json
// @Success      200 {object} response.ProfileResponse
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /profile [get]
func (h *ProfileHandler) HandleGetProfile(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing user identity")))

		return
	}

	user, err := h.users.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetProfile -> h.users.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	resp := response.ProfileResponse{User: user}

	enrollment, err := h.enrollments.GetByUserID(ctx.Request.Context(), userID)
	switch {
	case err == nil:
		resp.Enrollment.RepoURL = enrollment.RepoURL
	case errors.Is(err, service.ErrEnrollmentNotFound):
		// no enrollment yet, repo_url stays null
	default:
		err = fmt.Errorf("v1.HandleGetProfile -> h.enrollments.GetByUserID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleUpdateProfile godoc
// @Summary      Update the authenticated user's profile
// @Tags         profile
// @Produce      json
// @Param        request   body      request.UpdateProfileRequest true "request body"
// @Success      200 {object} response.ProfileResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /profile [patch]
func (h *ProfileHandler) HandleUpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing user identity")))

		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.users.UpdateProfile(ctx.Request.Context(), userID, req.Name, req.AvatarURL)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateProfile -> h.users.UpdateProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	resp := response.ProfileResponse{User: user}

	if req.RepoURL != nil {
		enrollment, err := h.enrollments.LinkRepo(ctx.Request.Context(), userID, req.RepoURL)
		if err != nil {
			if errors.Is(err, service.ErrInvalidRepoURL) {
				response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidRepoURL))

				return
			}

			err = fmt.Errorf("v1.HandleUpdateProfile -> h.enrollments.LinkRepo -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))

			return
		}

		resp.Enrollment.RepoURL = enrollment.RepoURL
	} else {
		enrollment, err := h.enrollments.GetByUserID(ctx.Request.Context(), userID)
		if err == nil {
			resp.Enrollment.RepoURL = enrollment.RepoURL
		} else if !errors.Is(err, service.ErrEnrollmentNotFound) {
			err = fmt.Errorf("v1.HandleUpdateProfile -> h.enrollments.GetByUserID -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))

			return
		}
	}

	ctx.JSON(http.StatusOK, resp)
}
