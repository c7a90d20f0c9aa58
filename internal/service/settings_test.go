package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackathon-hub/api/internal/repository"
)

type fakeSettings struct {
	values map[string]string
}

func (f *fakeSettings) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", repository.ErrSettingNotFound
	}

	return value, nil
}

func (f *fakeSettings) Upsert(_ context.Context, key, value string) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value

	return nil
}

func (f *fakeSettings) Delete(_ context.Context, key string) error {
	delete(f.values, key)

	return nil
}

func TestVotingOpen_DefaultsToClosed(t *testing.T) {
	svc := NewSettingsService(&fakeSettings{})

	open, err := svc.VotingOpen(context.Background())
	require.NoError(t, err)
	assert.False(t, open)
}

func TestVotingOpen_RoundTrips(t *testing.T) {
	repo := &fakeSettings{}
	svc := NewSettingsService(repo)

	require.NoError(t, svc.SetVotingOpen(context.Background(), true))
	assert.Equal(t, "true", repo.values[KeyVotingOpen])

	open, err := svc.VotingOpen(context.Background())
	require.NoError(t, err)
	assert.True(t, open)

	require.NoError(t, svc.SetVotingOpen(context.Background(), false))
	open, err = svc.VotingOpen(context.Background())
	require.NoError(t, err)
	assert.False(t, open)
}

func TestVotingOpen_UnrecognizedValueMeansClosed(t *testing.T) {
	repo := &fakeSettings{values: map[string]string{KeyVotingOpen: "yes"}}
	svc := NewSettingsService(repo)

	open, err := svc.VotingOpen(context.Background())
	require.NoError(t, err)
	assert.False(t, open)
}

func TestEventDeadline_AbsentMeansNil(t *testing.T) {
	svc := NewSettingsService(&fakeSettings{})

	deadline, err := svc.EventDeadline(context.Background())
	require.NoError(t, err)
	assert.Nil(t, deadline)
}

func TestEventDeadline_RoundTrips(t *testing.T) {
	repo := &fakeSettings{}
	svc := NewSettingsService(repo)

	want := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)
	require.NoError(t, svc.SetEventDeadline(context.Background(), want))

	got, err := svc.EventDeadline(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(want))
}

func TestEventDeadline_CorruptValueIsIgnored(t *testing.T) {
	repo := &fakeSettings{values: map[string]string{KeyEventDeadline: "next friday"}}
	svc := NewSettingsService(repo)

	deadline, err := svc.EventDeadline(context.Background())
	require.NoError(t, err)
	assert.Nil(t, deadline)
}

func TestClearEventDeadline(t *testing.T) {
	repo := &fakeSettings{values: map[string]string{KeyEventDeadline: "2025-07-04T18:00:00Z"}}
	svc := NewSettingsService(repo)

	require.NoError(t, svc.ClearEventDeadline(context.Background()))

	deadline, err := svc.EventDeadline(context.Background())
	require.NoError(t, err)
	assert.Nil(t, deadline)
}
