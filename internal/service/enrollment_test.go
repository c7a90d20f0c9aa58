package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/repository"
)

type fakeEnrollments struct {
	byUserID map[uint]domain.Enrollment
	nextID   uint
	deleted  []uint
}

func (f *fakeEnrollments) UpsertByUserID(_ context.Context, userID uint, repoURL *string) (domain.Enrollment, error) {
	if f.byUserID == nil {
		f.byUserID = map[uint]domain.Enrollment{}
	}

	e, ok := f.byUserID[userID]
	if !ok {
		f.nextID++
		e = domain.Enrollment{ID: f.nextID, UserID: userID}
	}
	e.RepoURL = repoURL
	f.byUserID[userID] = e

	return e, nil
}

func (f *fakeEnrollments) FindByUserID(_ context.Context, userID uint) (domain.Enrollment, error) {
	e, ok := f.byUserID[userID]
	if !ok {
		return domain.Enrollment{}, repository.ErrEnrollmentNotFound
	}

	return e, nil
}

func (f *fakeEnrollments) FindByRepoURL(_ context.Context, repoURL string) (domain.Enrollment, error) {
	for _, e := range f.byUserID {
		if e.RepoURL != nil && *e.RepoURL == repoURL {
			return e, nil
		}
	}

	return domain.Enrollment{}, repository.ErrEnrollmentNotFound
}

func (f *fakeEnrollments) Delete(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)

	return nil
}

func TestLinkRepo_CreatesAndReplaces(t *testing.T) {
	repo := &fakeEnrollments{}
	svc := NewEnrollmentService(repo)

	url1 := "https://github.com/alice/first"
	created, err := svc.LinkRepo(context.Background(), 1, &url1)
	require.NoError(t, err)
	assert.Equal(t, url1, *created.RepoURL)

	url2 := "https://github.com/alice/second.git"
	updated, err := svc.LinkRepo(context.Background(), 1, &url2)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, url2, *updated.RepoURL)
}

func TestLinkRepo_RejectsNonGitHubURL(t *testing.T) {
	svc := NewEnrollmentService(&fakeEnrollments{})

	bad := "https://gitlab.com/alice/proj"
	_, err := svc.LinkRepo(context.Background(), 1, &bad)
	assert.ErrorIs(t, err, ErrInvalidRepoURL)
}

func TestLinkRepo_NilURLUnlinks(t *testing.T) {
	repo := &fakeEnrollments{}
	svc := NewEnrollmentService(repo)

	url := "https://github.com/alice/proj"
	_, err := svc.LinkRepo(context.Background(), 1, &url)
	require.NoError(t, err)

	unlinked, err := svc.LinkRepo(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Nil(t, unlinked.RepoURL)
}

func TestGetByRepoURL(t *testing.T) {
	repo := &fakeEnrollments{}
	svc := NewEnrollmentService(repo)

	url := "https://github.com/alice/proj"
	created, err := svc.LinkRepo(context.Background(), 1, &url)
	require.NoError(t, err)

	found, err := svc.GetByRepoURL(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByRepoURL(context.Background(), "https://github.com/nobody/else")
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}
