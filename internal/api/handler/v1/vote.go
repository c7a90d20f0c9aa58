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

type VoteService interface {
	Status(ctx context.Context, voterID uint) (domain.VotingStatus, error)
	Cast(ctx context.Context, voterID, candidateID uint) error
}

type VoteHandler struct {
	svc VoteService
}

func NewVoteHandler(svc VoteService) *VoteHandler {
	return &VoteHandler{
		svc: svc,
	}
}

// HandleGetVotingStatus godoc
// @Summary      Get voting status, candidates and the caller's current vote
// @Tags         votes
// @Produce      json
// @Success      200 {object} domain.VotingStatus
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /votes/status [get]
func (h *VoteHandler) HandleGetVotingStatus(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing user identity")))

		return
	}

	status, err := h.svc.Status(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetVotingStatus -> h.svc.Status -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, status)
}

// HandleCastVote godoc
// @Summary      Cast or change the caller's vote
// @Tags         votes
// @Produce      json
// @Param        request   body      request.CastVoteRequest true "request body"
// @Success      200 {object} map[string]string
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /votes [post]
func (h *VoteHandler) HandleCastVote(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing user identity")))

		return
	}

	var req request.CastVoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Cast(ctx.Request.Context(), userID, req.CandidateID); err != nil {
		switch {
		case errors.Is(err, service.ErrVotingClosed):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrVotingClosed))
		case errors.Is(err, service.ErrNotACandidate):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNotACandidate))
		default:
			err = fmt.Errorf("v1.HandleCastVote -> h.svc.Cast -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "vote recorded"})
}
