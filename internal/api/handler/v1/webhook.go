package v1

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hackathon-hub/api/internal/api/handler/v1/request"
	"github.com/hackathon-hub/api/internal/api/handler/v1/response"
	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/service"
)

var errBadSignature = errors.New("webhook signature verification failed")

type WebhookEnrollmentService interface {
	GetByRepoURL(ctx context.Context, repoURL string) (domain.Enrollment, error)
}

type CommitProcessor interface {
	ProcessCommits(ctx context.Context, enrollmentID uint, repoURL string, commits []domain.Commit) (domain.ProcessSummary, error)
}

type WebhookHandler struct {
	secret      string
	enrollments WebhookEnrollmentService
	tracker     CommitProcessor
}

func NewWebhookHandler(secret string, enrollments WebhookEnrollmentService, tracker CommitProcessor) *WebhookHandler {
	return &WebhookHandler{
		secret:      secret,
		enrollments: enrollments,
		tracker:     tracker,
	}
}

// HandleGitHubPush godoc
// @Summary      Receive a GitHub push webhook
// @Description  Verifies the X-Hub-Signature-256 HMAC when a secret is configured, then records milestone activities for the linked enrollment.
// @Tags         webhooks
// @Produce      json
// @Param        request   body      request.PushEvent true "push event payload"
// @Success      200 {object} response.WebhookResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /webhooks/github [post]
func (h *WebhookHandler) HandleGitHubPush(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if h.secret != "" {
		signature := ctx.GetHeader("X-Hub-Signature-256")
		if !verifySignature(h.secret, body, signature) {
			response.RenderErr(ctx, response.ErrUnauthorized(errBadSignature))

			return
		}
	}

	var event request.PushEvent
	if err := json.Unmarshal(body, &event); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if event.Repository.HTMLURL == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("payload has no repository URL")))

		return
	}

	enrollment, err := h.enrollments.GetByRepoURL(ctx.Request.Context(), event.Repository.HTMLURL)
	if err != nil {
		if errors.Is(err, service.ErrEnrollmentNotFound) {
			// a push from a repo nobody linked is not an error
			zap.L().Info("webhook push for unlinked repository",
				zap.String("repo_url", event.Repository.HTMLURL),
			)
			ctx.JSON(http.StatusOK, response.WebhookResponse{})

			return
		}

		err = fmt.Errorf("v1.HandleGitHubPush -> h.enrollments.GetByRepoURL -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	commits := make([]domain.Commit, 0, len(event.Commits))
	for _, c := range event.Commits {
		timestamp, err := time.Parse(time.RFC3339, c.Timestamp)
		if err != nil {
			timestamp = time.Time{}
		}

		commits = append(commits, domain.Commit{
			ID:        c.ID,
			Message:   c.Message,
			Timestamp: timestamp,
		})
	}

	summary, err := h.tracker.ProcessCommits(ctx.Request.Context(), enrollment.ID, event.Repository.HTMLURL, commits)
	if err != nil {
		err = fmt.Errorf("v1.HandleGitHubPush -> h.tracker.ProcessCommits -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.WebhookResponse{
		Processed:     summary.Processed,
		NewActivities: summary.NewActivities,
	})
}

func verifySignature(secret string, body []byte, signature string) bool {
	const prefix = "sha256="
	if len(signature) <= len(prefix) || signature[:len(prefix)] != prefix {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature[len(prefix):]))
}
