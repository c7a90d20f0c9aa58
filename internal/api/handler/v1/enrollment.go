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

type EnrollmentService interface {
	LinkRepo(ctx context.Context, userID uint, repoURL *string) (domain.Enrollment, error)
	GetByUserID(ctx context.Context, userID uint) (domain.Enrollment, error)
}

type EnrollmentHandler struct {
	svc EnrollmentService
}

func NewEnrollmentHandler(svc EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		svc: svc,
	}
}

// HandleLinkRepo godoc
// @Summary      Link a GitHub repository to the authenticated user's enrollment
// @Tags         enrollments
// @Produce      json
// @Param        request   body      request.LinkRepoRequest true "request body"
// @Success      200 {object} domain.Enrollment
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /enrollments [post]
func (h *EnrollmentHandler) HandleLinkRepo(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing user identity")))

		return
	}

	var req request.LinkRepoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	enrollment, err := h.svc.LinkRepo(ctx.Request.Context(), userID, &req.RepoURL)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRepoURL) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidRepoURL))

			return
		}

		err = fmt.Errorf("v1.HandleLinkRepo -> h.svc.LinkRepo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, enrollment)
}

// HandleGetMyEnrollment godoc
// @Summary      Get the authenticated user's enrollment
// @Tags         enrollments
// @Produce      json
// @Success      200 {object} domain.Enrollment
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /enrollments/me [get]
func (h *EnrollmentHandler) HandleGetMyEnrollment(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing user identity")))

		return
	}

	enrollment, err := h.svc.GetByUserID(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrEnrollmentNotFound) {
			// not enrolled yet; the client treats null as "no enrollment"
			ctx.JSON(http.StatusOK, nil)

			return
		}

		err = fmt.Errorf("v1.HandleGetMyEnrollment -> h.svc.GetByUserID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, enrollment)
}
