package v1

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackathon-hub/api/internal/api/handler/v1/response"
	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/repository"
)

type fakeWebhookEnrollments struct {
	byRepoURL map[string]domain.Enrollment
}

func (f *fakeWebhookEnrollments) GetByRepoURL(_ context.Context, repoURL string) (domain.Enrollment, error) {
	e, ok := f.byRepoURL[repoURL]
	if !ok {
		return domain.Enrollment{}, repository.ErrEnrollmentNotFound
	}

	return e, nil
}

type fakeWebhookTracker struct {
	enrollmentID uint
	commits      []domain.Commit
}

func (f *fakeWebhookTracker) ProcessCommits(_ context.Context, enrollmentID uint, _ string, commits []domain.Commit) (domain.ProcessSummary, error) {
	f.enrollmentID = enrollmentID
	f.commits = commits

	return domain.ProcessSummary{Processed: len(commits), NewActivities: 1}, nil
}

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)

	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func pushPayload(t *testing.T) []byte {
	t.Helper()

	payload := map[string]interface{}{
		"repository": map[string]string{"html_url": "https://github.com/alice/proj"},
		"commits": []map[string]string{
			{"id": "abc", "message": "finish setup", "timestamp": "2025-06-01T10:00:00Z"},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	return body
}

func postWebhook(handler *WebhookHandler, body []byte, signature string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/webhooks/github", handler.HandleGitHubPush)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/github", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Hub-Signature-256", signature)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestHandleGitHubPush_ValidSignature(t *testing.T) {
	enrollments := &fakeWebhookEnrollments{byRepoURL: map[string]domain.Enrollment{
		"https://github.com/alice/proj": {ID: 7},
	}}
	tracker := &fakeWebhookTracker{}
	handler := NewWebhookHandler("topsecret", enrollments, tracker)

	body := pushPayload(t)
	w := postWebhook(handler, body, signBody("topsecret", body))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp response.WebhookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, 1, resp.NewActivities)

	assert.Equal(t, uint(7), tracker.enrollmentID)
	require.Len(t, tracker.commits, 1)
	assert.Equal(t, "abc", tracker.commits[0].ID)
	assert.False(t, tracker.commits[0].Timestamp.IsZero())
}

func TestHandleGitHubPush_BadSignature(t *testing.T) {
	handler := NewWebhookHandler("topsecret", &fakeWebhookEnrollments{}, &fakeWebhookTracker{})

	body := pushPayload(t)
	w := postWebhook(handler, body, signBody("wrong-secret", body))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleGitHubPush_MissingSignature(t *testing.T) {
	handler := NewWebhookHandler("topsecret", &fakeWebhookEnrollments{}, &fakeWebhookTracker{})

	w := postWebhook(handler, pushPayload(t), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleGitHubPush_NoSecretConfigured(t *testing.T) {
	enrollments := &fakeWebhookEnrollments{byRepoURL: map[string]domain.Enrollment{
		"https://github.com/alice/proj": {ID: 7},
	}}
	handler := NewWebhookHandler("", enrollments, &fakeWebhookTracker{})

	w := postWebhook(handler, pushPayload(t), "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleGitHubPush_UnlinkedRepoIsAccepted(t *testing.T) {
	tracker := &fakeWebhookTracker{}
	handler := NewWebhookHandler("", &fakeWebhookEnrollments{}, tracker)

	w := postWebhook(handler, pushPayload(t), "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp response.WebhookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Processed)
	assert.Empty(t, tracker.commits)
}

func TestHandleGitHubPush_MalformedPayload(t *testing.T) {
	handler := NewWebhookHandler("", &fakeWebhookEnrollments{}, &fakeWebhookTracker{})

	w := postWebhook(handler, []byte("{not json"), "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
