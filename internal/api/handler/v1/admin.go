package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hackathon-hub/api/internal/api/handler/v1/request"
	"github.com/hackathon-hub/api/internal/api/handler/v1/response"
	"github.com/hackathon-hub/api/internal/config"
	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/service"
)

type AdminLeaderboardService interface {
	RankAll(ctx context.Context) (domain.Leaderboard, error)
}

type AdminEnrollmentService interface {
	Delete(ctx context.Context, id uint) error
}

type AdminVoteService interface {
	OpenVoting(ctx context.Context) error
	CloseVoting(ctx context.Context) error
	ControlStatus(ctx context.Context) (bool, int64, error)
	SelectCandidates(ctx context.Context, enrollmentIDs []uint) error
}

type AdminSettingsService interface {
	EventDeadline(ctx context.Context) (*time.Time, error)
	SetEventDeadline(ctx context.Context, deadline time.Time) error
	ClearEventDeadline(ctx context.Context) error
}

type PollerService interface {
	PollAll(ctx context.Context) (domain.PollReport, error)
}

type AdminHandler struct {
	conf        *config.AppConfig
	leaderboard AdminLeaderboardService
	enrollments AdminEnrollmentService
	votes       AdminVoteService
	settings    AdminSettingsService
	poller      PollerService
}

func NewAdminHandler(
	conf *config.AppConfig,
	leaderboard AdminLeaderboardService,
	enrollments AdminEnrollmentService,
	votes AdminVoteService,
	settings AdminSettingsService,
	poller PollerService,
) *AdminHandler {
	return &AdminHandler{
		conf:        conf,
		leaderboard: leaderboard,
		enrollments: enrollments,
		votes:       votes,
		settings:    settings,
		poller:      poller,
	}
}

// HandleListEnrollments godoc
// @Summary      List every enrollment with scores, regardless of voting mode
// @Tags         admin
// @Produce      json
// @Success      200 {object} domain.Leaderboard
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/enrollments [get]
func (h *AdminHandler) HandleListEnrollments(ctx *gin.Context) {
	leaderboard, err := h.leaderboard.RankAll(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEnrollments -> h.leaderboard.RankAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, leaderboard)
}

// HandleDeleteEnrollment godoc
// @Summary      Delete an enrollment along with its activities and votes
// @Tags         admin
// @Produce      json
// @Param        enrollmentID   path       int  true  "enrollment ID"
// @Success      204
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/enrollments/{enrollmentID} [delete]
func (h *AdminHandler) HandleDeleteEnrollment(ctx *gin.Context) {
	rawID := ctx.Param("enrollmentID")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid enrollment ID %q", rawID)))

		return
	}

	if err := h.enrollments.Delete(ctx.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrEnrollmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEnrollmentNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteEnrollment -> h.enrollments.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetVoteControl godoc
// @Summary      Get voting-mode state and candidate count
// @Tags         admin
// @Produce      json
// @Success      200 {object} response.VoteControlResponse
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/vote-control [get]
func (h *AdminHandler) HandleGetVoteControl(ctx *gin.Context) {
	isOpen, candidateCount, err := h.votes.ControlStatus(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetVoteControl -> h.votes.ControlStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.VoteControlResponse{
		IsOpen:         isOpen,
		CandidateCount: candidateCount,
	})
}

// HandleSetVoteControl godoc
// @Summary      Open or close voting mode
// @Tags         admin
// @Produce      json
// @Param        request   body      request.VoteControlRequest true "request body"
// @Success      200 {object} response.VoteControlResponse
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/vote-control [post]
func (h *AdminHandler) HandleSetVoteControl(ctx *gin.Context) {
	var req request.VoteControlRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var err error
	if req.Action == "OPEN" {
		err = h.votes.OpenVoting(ctx.Request.Context())
	} else {
		err = h.votes.CloseVoting(ctx.Request.Context())
	}
	if err != nil {
		err = fmt.Errorf("v1.HandleSetVoteControl -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	isOpen, candidateCount, err := h.votes.ControlStatus(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleSetVoteControl -> h.votes.ControlStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.VoteControlResponse{
		IsOpen:         isOpen,
		CandidateCount: candidateCount,
	})
}

// HandleSelectCandidates godoc
// @Summary      Replace the set of voting candidates
// @Tags         admin
// @Produce      json
// @Param        request   body      request.SelectCandidatesRequest true "request body"
// @Success      200 {object} map[string]string
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/vote-candidates [post]
func (h *AdminHandler) HandleSelectCandidates(ctx *gin.Context) {
	var req request.SelectCandidatesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.votes.SelectCandidates(ctx.Request.Context(), req.EnrollmentIDs); err != nil {
		err = fmt.Errorf("v1.HandleSelectCandidates -> h.votes.SelectCandidates -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "candidates updated"})
}

// HandleGetEventTimer godoc
// @Summary      Get the event deadline
// @Tags         admin
// @Produce      json
// @Success      200 {object} response.EventTimerResponse
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/event-timer [get]
func (h *AdminHandler) HandleGetEventTimer(ctx *gin.Context) {
	deadline, err := h.settings.EventDeadline(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEventTimer -> h.settings.EventDeadline -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	resp := response.EventTimerResponse{}
	if deadline != nil {
		formatted := deadline.Format(time.RFC3339)
		resp.Deadline = &formatted
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleSetEventTimer godoc
// @Summary      Set the event deadline
// @Tags         admin
// @Produce      json
// @Param        request   body      request.EventTimerRequest true "request body"
// @Success      200 {object} response.EventTimerResponse
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/event-timer [post]
func (h *AdminHandler) HandleSetEventTimer(ctx *gin.Context) {
	var req request.EventTimerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("deadline must be RFC3339: %w", err)))

		return
	}

	if err := h.settings.SetEventDeadline(ctx.Request.Context(), deadline); err != nil {
		err = fmt.Errorf("v1.HandleSetEventTimer -> h.settings.SetEventDeadline -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	formatted := deadline.Format(time.RFC3339)
	ctx.JSON(http.StatusOK, response.EventTimerResponse{Deadline: &formatted})
}

// HandleClearEventTimer godoc
// @Summary      Clear the event deadline
// @Tags         admin
// @Produce      json
// @Success      204
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/event-timer [delete]
func (h *AdminHandler) HandleClearEventTimer(ctx *gin.Context) {
	if err := h.settings.ClearEventDeadline(ctx.Request.Context()); err != nil {
		err = fmt.Errorf("v1.HandleClearEventTimer -> h.settings.ClearEventDeadline -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandlePollRepos godoc
// @Summary      Poll every linked repository for new milestone commits
// @Description  Each repository is polled independently; failures are reported per repository without aborting the run.
// @Tags         admin
// @Produce      json
// @Success      200 {object} response.PollResponse
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/poll [post]
func (h *AdminHandler) HandlePollRepos(ctx *gin.Context) {
	report, err := h.poller.PollAll(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandlePollRepos -> h.poller.PollAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.PollResponse{
		PollReport: report,
		Message:    fmt.Sprintf("polled %d repositories", report.TotalRepos),
	})
}

// HandleWebhookStatus godoc
// @Summary      Show how to configure the GitHub push webhook
// @Tags         admin
// @Produce      json
// @Success      200 {object} response.WebhookStatusResponse
// @Failure      403 {object} response.Err
// @Router       /admin/webhook-status [get]
func (h *AdminHandler) HandleWebhookStatus(ctx *gin.Context) {
	webhookURL := h.conf.API.BaseURL + "/api/v1/webhooks/github"

	ctx.JSON(http.StatusOK, response.WebhookStatusResponse{
		WebhookURL:   webhookURL,
		IsConfigured: h.conf.GitHub.WebhookSecret != "",
		Instructions: []string{
			"Open the repository's Settings > Webhooks page on GitHub.",
			"Add a webhook with the payload URL above, content type application/json.",
			"Set the secret to the value configured on this server.",
			"Select the push event only.",
		},
	})
}
