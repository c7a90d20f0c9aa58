package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hackathon-hub/api/internal/repository"
)

// Recognized setting keys. A missing key means its default: voting closed,
// no deadline.
const (
	KeyVotingOpen    = "VOTING_OPEN"
	KeyEventDeadline = "EVENT_DEADLINE"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Upsert(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SettingsService exposes typed accessors over the key-value store. Every
// read goes through the store so concurrent request handlers observe the
// latest committed value; nothing is cached in memory.
type SettingsService struct {
	repo SettingRepository
}

func NewSettingsService(repo SettingRepository) *SettingsService {
	return &SettingsService{
		repo: repo,
	}
}

func (s *SettingsService) VotingOpen(ctx context.Context) (bool, error) {
	value, err := s.repo.Get(ctx, KeyVotingOpen)
	if err != nil {
		if errors.Is(err, repository.ErrSettingNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("s.repo.Get -> %w", err)
	}

	return value == "true", nil
}

func (s *SettingsService) SetVotingOpen(ctx context.Context, open bool) error {
	value := "false"
	if open {
		value = "true"
	}

	if err := s.repo.Upsert(ctx, KeyVotingOpen, value); err != nil {
		return fmt.Errorf("s.repo.Upsert -> %w", err)
	}

	return nil
}

func (s *SettingsService) EventDeadline(ctx context.Context) (*time.Time, error) {
	value, err := s.repo.Get(ctx, KeyEventDeadline)
	if err != nil {
		if errors.Is(err, repository.ErrSettingNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("s.repo.Get -> %w", err)
	}

	deadline, err := time.Parse(time.RFC3339, value)
	if err != nil {
		// A corrupt stored value must not break the read path.
		zap.L().Warn("ignoring unparseable event deadline", zap.String("value", value))

		return nil, nil
	}

	return &deadline, nil
}

func (s *SettingsService) SetEventDeadline(ctx context.Context, deadline time.Time) error {
	if err := s.repo.Upsert(ctx, KeyEventDeadline, deadline.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("s.repo.Upsert -> %w", err)
	}

	return nil
}

func (s *SettingsService) ClearEventDeadline(ctx context.Context) error {
	if err := s.repo.Delete(ctx, KeyEventDeadline); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
