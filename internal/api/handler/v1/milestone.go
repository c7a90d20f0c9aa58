package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hackathon-hub/api/internal/api/handler/v1/request"
	"github.com/hackathon-hub/api/internal/api/handler/v1/response"
	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/service"
)

type MilestoneService interface {
	List(ctx context.Context) ([]domain.Milestone, error)
	Create(ctx context.Context, milestone domain.Milestone) (domain.Milestone, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (domain.Milestone, error)
	Delete(ctx context.Context, id uint) error
}

type MilestoneHandler struct {
	svc MilestoneService
}

func NewMilestoneHandler(svc MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{
		svc: svc,
	}
}

// HandleListMilestones godoc
// @Summary      List all milestones in display order
// @Tags         milestones
// @Produce      json
// @Success      200 {object} []domain.Milestone
// @Failure      500 {object} response.Err
// @Router       /milestones [get]
func (h *MilestoneHandler) HandleListMilestones(ctx *gin.Context) {
	milestones, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListMilestones -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, milestones)
}

// HandleCreateMilestone godoc
// @Summary      Create a milestone
// @Tags         milestones
// @Produce      json
// @Param        request   body      request.CreateMilestoneRequest true "request body"
// @Success      201 {object} domain.Milestone
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/milestones [post]
func (h *MilestoneHandler) HandleCreateMilestone(ctx *gin.Context) {
	var req request.CreateMilestoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	milestone, err := h.svc.Create(ctx.Request.Context(), domain.Milestone{
		Title:        req.Title,
		Description:  req.Description,
		LabelPattern: req.LabelPattern,
		Points:       req.Points,
		Order:        req.Order,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPattern) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidPattern))

			return
		}

		err = fmt.Errorf("v1.HandleCreateMilestone -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, milestone)
}

// HandleUpdateMilestone godoc
// @Summary      Update a milestone
// @Tags         milestones
// @Produce      json
// @Param        milestoneID   path       int  true  "milestone ID"
// @Param        request   body      request.UpdateMilestoneRequest true "request body"
// @Success      200 {object} domain.Milestone
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/milestones/{milestoneID} [patch]
func (h *MilestoneHandler) HandleUpdateMilestone(ctx *gin.Context) {
	rawID := ctx.Param("milestoneID")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid milestone ID %q", rawID)))

		return
	}

	var req request.UpdateMilestoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	milestone, err := h.svc.Update(ctx.Request.Context(), uint(id), req.Updates())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPattern):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidPattern))
		case errors.Is(err, service.ErrMilestoneNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMilestoneNotFound))
		default:
			err = fmt.Errorf("v1.HandleUpdateMilestone -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, milestone)
}

// HandleDeleteMilestone godoc
// @Summary      Delete a milestone and its recorded activities
// @Tags         milestones
// @Produce      json
// @Param        milestoneID   path       int  true  "milestone ID"
// @Success      204
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/milestones/{milestoneID} [delete]
func (h *MilestoneHandler) HandleDeleteMilestone(ctx *gin.Context) {
	rawID := ctx.Param("milestoneID")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid milestone ID %q", rawID)))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrMilestoneNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMilestoneNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteMilestone -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
