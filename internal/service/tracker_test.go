package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/repository"
)

type fakeTrackerEnrollments struct {
	enrollment domain.Enrollment
	err        error
}

func (f *fakeTrackerEnrollments) FindByIDAndRepoURL(_ context.Context, id uint, repoURL string) (domain.Enrollment, error) {
	if f.err != nil {
		return domain.Enrollment{}, f.err
	}
	if f.enrollment.ID != id || f.enrollment.RepoURL == nil || *f.enrollment.RepoURL != repoURL {
		return domain.Enrollment{}, repository.ErrEnrollmentNotFound
	}

	return f.enrollment, nil
}

type fakeTrackerMilestones struct {
	milestones []domain.Milestone
}

func (f *fakeTrackerMilestones) FindAll(_ context.Context) ([]domain.Milestone, error) {
	return f.milestones, nil
}

type fakeTrackerActivities struct {
	existing  []domain.Activity
	created   []domain.Activity
	createErr map[uint]error // keyed by milestone ID
}

func (f *fakeTrackerActivities) Create(_ context.Context, activity domain.Activity) (domain.Activity, error) {
	if err, ok := f.createErr[activity.MilestoneID]; ok {
		return domain.Activity{}, err
	}

	f.created = append(f.created, activity)

	return activity, nil
}

func (f *fakeTrackerActivities) FindByEnrollmentID(_ context.Context, _ uint) ([]domain.Activity, error) {
	return f.existing, nil
}

func strPtr(s string) *string {
	return &s
}

func testMilestones() []domain.Milestone {
	return []domain.Milestone{
		{ID: 1, Title: "Setup", LabelPattern: "setup", Points: 10, Order: 1},
		{ID: 2, Title: "Database", LabelPattern: "db|database", Points: 20, Order: 2},
		{ID: 3, Title: "Deploy", LabelPattern: "deploy", Points: 30, Order: 3},
	}
}

func TestProcessCommits_MatchesCaseInsensitively(t *testing.T) {
	enrollments := &fakeTrackerEnrollments{
		enrollment: domain.Enrollment{ID: 7, RepoURL: strPtr("https://github.com/alice/proj")},
	}
	activities := &fakeTrackerActivities{}
	svc := NewTrackerService(enrollments, &fakeTrackerMilestones{milestones: testMilestones()}, activities)

	summary, err := svc.ProcessCommits(context.Background(), 7, "https://github.com/alice/proj", []domain.Commit{
		{ID: "abc123", Message: "Initial SETUP of the project", Timestamp: time.Now()},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.NewActivities)
	require.Len(t, activities.created, 1)
	assert.Equal(t, uint(1), activities.created[0].MilestoneID)
	assert.Equal(t, "abc123", *activities.created[0].CommitHash)
}

func TestProcessCommits_OneActivityPerMilestone(t *testing.T) {
	enrollments := &fakeTrackerEnrollments{
		enrollment: domain.Enrollment{ID: 7, RepoURL: strPtr("https://github.com/alice/proj")},
	}
	activities := &fakeTrackerActivities{}
	svc := NewTrackerService(enrollments, &fakeTrackerMilestones{milestones: testMilestones()}, activities)

	// Two commits both match "setup"; only the first records an activity.
	summary, err := svc.ProcessCommits(context.Background(), 7, "https://github.com/alice/proj", []domain.Commit{
		{ID: "c1", Message: "setup project skeleton"},
		{ID: "c2", Message: "more setup tweaks"},
		{ID: "c3", Message: "wire database connection"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 2, summary.NewActivities)
	require.Len(t, activities.created, 2)
	assert.Equal(t, "c1", *activities.created[0].CommitHash)
	assert.Equal(t, uint(2), activities.created[1].MilestoneID)
}

func TestProcessCommits_OneCommitCanCompleteSeveralMilestones(t *testing.T) {
	enrollments := &fakeTrackerEnrollments{
		enrollment: domain.Enrollment{ID: 7, RepoURL: strPtr("https://github.com/alice/proj")},
	}
	activities := &fakeTrackerActivities{}
	milestones := &fakeTrackerMilestones{milestones: []domain.Milestone{
		{ID: 1, Title: "First", LabelPattern: "#M1", Points: 1},
		{ID: 2, Title: "Second", LabelPattern: "#M2", Points: 2},
	}}
	svc := NewTrackerService(enrollments, milestones, activities)

	summary, err := svc.ProcessCommits(context.Background(), 7, "https://github.com/alice/proj", []domain.Commit{
		{ID: "c1", Message: "#M1 and #M2 done"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.NewActivities)
	assert.Len(t, activities.created, 2)
}

func TestProcessCommits_AlreadyCompletedMilestonesAreSkipped(t *testing.T) {
	enrollments := &fakeTrackerEnrollments{
		enrollment: domain.Enrollment{ID: 7, RepoURL: strPtr("https://github.com/alice/proj")},
	}
	activities := &fakeTrackerActivities{
		existing: []domain.Activity{{EnrollmentID: 7, MilestoneID: 1}},
	}
	svc := NewTrackerService(enrollments, &fakeTrackerMilestones{milestones: testMilestones()}, activities)

	summary, err := svc.ProcessCommits(context.Background(), 7, "https://github.com/alice/proj", []domain.Commit{
		{ID: "c9", Message: "redo the setup"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.NewActivities)
	assert.Empty(t, activities.created)
}

func TestProcessCommits_DuplicateInsertIsTreatedAsCompleted(t *testing.T) {
	enrollments := &fakeTrackerEnrollments{
		enrollment: domain.Enrollment{ID: 7, RepoURL: strPtr("https://github.com/alice/proj")},
	}
	activities := &fakeTrackerActivities{
		createErr: map[uint]error{1: repository.ErrActivityAlreadyRecorded},
	}
	svc := NewTrackerService(enrollments, &fakeTrackerMilestones{milestones: testMilestones()}, activities)

	summary, err := svc.ProcessCommits(context.Background(), 7, "https://github.com/alice/proj", []domain.Commit{
		{ID: "c1", Message: "setup"},
		{ID: "c2", Message: "setup again"},
		{ID: "c3", Message: "deploy to prod"},
	})
	require.NoError(t, err)

	// The duplicate is a no-op, not a failure; later milestones still record.
	assert.Equal(t, 1, summary.NewActivities)
	require.Len(t, activities.created, 1)
	assert.Equal(t, uint(3), activities.created[0].MilestoneID)
}

func TestProcessCommits_UnknownEnrollmentRepoPairIsNoOp(t *testing.T) {
	enrollments := &fakeTrackerEnrollments{
		enrollment: domain.Enrollment{ID: 7, RepoURL: strPtr("https://github.com/alice/proj")},
	}
	activities := &fakeTrackerActivities{}
	svc := NewTrackerService(enrollments, &fakeTrackerMilestones{milestones: testMilestones()}, activities)

	summary, err := svc.ProcessCommits(context.Background(), 7, "https://github.com/mallory/other", []domain.Commit{
		{ID: "c1", Message: "setup"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ProcessSummary{}, summary)
	assert.Empty(t, activities.created)
}

func TestProcessCommits_InvalidStoredPatternIsSkipped(t *testing.T) {
	enrollments := &fakeTrackerEnrollments{
		enrollment: domain.Enrollment{ID: 7, RepoURL: strPtr("https://github.com/alice/proj")},
	}
	activities := &fakeTrackerActivities{}
	milestones := &fakeTrackerMilestones{milestones: []domain.Milestone{
		{ID: 1, Title: "Broken", LabelPattern: "([", Points: 10},
		{ID: 2, Title: "Deploy", LabelPattern: "deploy", Points: 30},
	}}
	svc := NewTrackerService(enrollments, milestones, activities)

	summary, err := svc.ProcessCommits(context.Background(), 7, "https://github.com/alice/proj", []domain.Commit{
		{ID: "c1", Message: "deploy ["},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.NewActivities)
	require.Len(t, activities.created, 1)
	assert.Equal(t, uint(2), activities.created[0].MilestoneID)
}

func TestProcessCommits_PersistenceFailureAbortsBatch(t *testing.T) {
	enrollments := &fakeTrackerEnrollments{
		enrollment: domain.Enrollment{ID: 7, RepoURL: strPtr("https://github.com/alice/proj")},
	}
	dbErr := errors.New("connection reset")
	activities := &fakeTrackerActivities{
		createErr: map[uint]error{2: dbErr},
	}
	svc := NewTrackerService(enrollments, &fakeTrackerMilestones{milestones: testMilestones()}, activities)

	summary, err := svc.ProcessCommits(context.Background(), 7, "https://github.com/alice/proj", []domain.Commit{
		{ID: "c1", Message: "setup"},
		{ID: "c2", Message: "database ready"},
		{ID: "c3", Message: "deploy"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)

	// The activity recorded before the failure is kept.
	assert.Equal(t, 1, summary.NewActivities)
	require.Len(t, activities.created, 1)
}

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		name    string
		message string
		pattern string
		want    bool
		wantErr error
	}{
		{"case-insensitive match", "Finish SETUP today", "setup", true, nil},
		{"substring search", "feat: database layer", "database", true, nil},
		{"alternation", "add db pool", "db|database", true, nil},
		{"no match", "fix typo", "deploy", false, nil},
		{"invalid pattern", "anything", "([", false, ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchesPattern(tt.message, tt.pattern)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
