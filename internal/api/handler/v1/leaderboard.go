package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackathon-hub/api/internal/api/handler/v1/response"
	"github.com/hackathon-hub/api/internal/domain"
)

type LeaderboardService interface {
	Rank(ctx context.Context) (domain.Leaderboard, error)
}

type LeaderboardHandler struct {
	svc LeaderboardService
}

func NewLeaderboardHandler(svc LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		svc: svc,
	}
}

// HandleGetLeaderboard godoc
// @Summary      Get the current leaderboard
// @Description  Rankings are recomputed from the activity log on every request.
// @Tags         leaderboard
// @Produce      json
// @Success      200 {object} domain.Leaderboard
// @Failure      500 {object} response.Err
// @Router       /leaderboard [get]
func (h *LeaderboardHandler) HandleGetLeaderboard(ctx *gin.Context) {
	leaderboard, err := h.svc.Rank(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLeaderboard -> h.svc.Rank -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	// rankings shift with every new activity, don't let clients cache them
	ctx.Header("Cache-Control", "no-store")
	ctx.JSON(http.StatusOK, leaderboard)
}
