package service

import (
	"context"
	"fmt"

	"github.com/hackathon-hub/api/internal/domain"
)

type EnrollmentRepository interface {
	UpsertByUserID(ctx context.Context, userID uint, repoURL *string) (domain.Enrollment, error)
	FindByUserID(ctx context.Context, userID uint) (domain.Enrollment, error)
	FindByRepoURL(ctx context.Context, repoURL string) (domain.Enrollment, error)
	Delete(ctx context.Context, id uint) error
}

type EnrollmentService struct {
	repo EnrollmentRepository
}

func NewEnrollmentService(repo EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{
		repo: repo,
	}
}

// LinkRepo creates the user's enrollment on first use and sets or replaces
// its repository URL. A nil URL unlinks the repository but keeps the
// enrollment and its activity history.
func (s *EnrollmentService) LinkRepo(ctx context.Context, userID uint, repoURL *string) (domain.Enrollment, error) {
	if repoURL != nil {
		if _, _, err := parseRepoURL(*repoURL); err != nil {
			return domain.Enrollment{}, ErrInvalidRepoURL
		}
	}

	enrollment, err := s.repo.UpsertByUserID(ctx, userID, repoURL)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.repo.UpsertByUserID -> %w", err)
	}

	return enrollment, nil
}

func (s *EnrollmentService) GetByUserID(ctx context.Context, userID uint) (domain.Enrollment, error) {
	enrollment, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return enrollment, nil
}

// GetByRepoURL looks up the enrollment currently linked to repoURL.
func (s *EnrollmentService) GetByRepoURL(ctx context.Context, repoURL string) (domain.Enrollment, error) {
	enrollment, err := s.repo.FindByRepoURL(ctx, repoURL)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.repo.FindByRepoURL -> %w", err)
	}

	return enrollment, nil
}

// Delete removes an enrollment; its activities and the votes naming it as
// candidate go with it (cascade at the storage layer).
func (s *EnrollmentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
