package repository

import (
	"context"
	"fmt"

	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/repository/dao"
)

var ErrEnrollmentNotFound = dao.ErrEnrollmentNotFound

type EnrollmentDAO interface {
	UpsertByUserID(ctx context.Context, userID uint, repoURL *string) (dao.Enrollment, error)
	FindByID(ctx context.Context, id uint) (dao.Enrollment, error)
	FindByUserID(ctx context.Context, userID uint) (dao.Enrollment, error)
	FindByIDAndRepoURL(ctx context.Context, id uint, repoURL string) (dao.Enrollment, error)
	FindByRepoURL(ctx context.Context, repoURL string) (dao.Enrollment, error)
	FindAll(ctx context.Context) ([]dao.Enrollment, error)
	FindAllWithRepoURL(ctx context.Context) ([]dao.Enrollment, error)
	FindCandidates(ctx context.Context) ([]dao.Enrollment, error)
	CountCandidates(ctx context.Context) (int64, error)
	SetCandidates(ctx context.Context, ids []uint) error
	Delete(ctx context.Context, id uint) error
}

type EnrollmentRepository struct {
	dao EnrollmentDAO
}

func NewEnrollmentRepository(dao EnrollmentDAO) *EnrollmentRepository {
	return &EnrollmentRepository{
		dao: dao,
	}
}

func (r *EnrollmentRepository) UpsertByUserID(ctx context.Context, userID uint, repoURL *string) (domain.Enrollment, error) {
	upserted, err := r.dao.UpsertByUserID(ctx, userID, repoURL)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("r.dao.UpsertByUserID -> %w", err)
	}

	return enrollmentDAOToDomain(upserted), nil
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id uint) (domain.Enrollment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return enrollmentDAOToDomain(found), nil
}

func (r *EnrollmentRepository) FindByUserID(ctx context.Context, userID uint) (domain.Enrollment, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return enrollmentDAOToDomain(found), nil
}

func (r *EnrollmentRepository) FindByIDAndRepoURL(ctx context.Context, id uint, repoURL string) (domain.Enrollment, error) {
	found, err := r.dao.FindByIDAndRepoURL(ctx, id, repoURL)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("r.dao.FindByIDAndRepoURL -> %w", err)
	}

	return enrollmentDAOToDomain(found), nil
}

func (r *EnrollmentRepository) FindByRepoURL(ctx context.Context, repoURL string) (domain.Enrollment, error) {
	found, err := r.dao.FindByRepoURL(ctx, repoURL)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("r.dao.FindByRepoURL -> %w", err)
	}

	return enrollmentDAOToDomain(found), nil
}

func (r *EnrollmentRepository) FindAll(ctx context.Context) ([]domain.Enrollment, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return enrollmentsDAOToDomain(found), nil
}

func (r *EnrollmentRepository) FindAllWithRepoURL(ctx context.Context) ([]domain.Enrollment, error) {
	found, err := r.dao.FindAllWithRepoURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllWithRepoURL -> %w", err)
	}

	return enrollmentsDAOToDomain(found), nil
}

func (r *EnrollmentRepository) FindCandidates(ctx context.Context) ([]domain.Enrollment, error) {
	found, err := r.dao.FindCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCandidates -> %w", err)
	}

	return enrollmentsDAOToDomain(found), nil
}

func (r *EnrollmentRepository) CountCandidates(ctx context.Context) (int64, error) {
	count, err := r.dao.CountCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountCandidates -> %w", err)
	}

	return count, nil
}

func (r *EnrollmentRepository) SetCandidates(ctx context.Context, ids []uint) error {
	if err := r.dao.SetCandidates(ctx, ids); err != nil {
		return fmt.Errorf("r.dao.SetCandidates -> %w", err)
	}

	return nil
}

func (r *EnrollmentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func enrollmentDAOToDomain(e dao.Enrollment) domain.Enrollment {
	activities := make([]domain.Activity, 0, len(e.Activities))
	for _, a := range e.Activities {
		activities = append(activities, activityDAOToDomain(a))
	}

	return domain.Enrollment{
		ID:                e.ID,
		UserID:            e.UserID,
		RepoURL:           e.RepoURL,
		IsVotingCandidate: e.IsVotingCandidate,
		User:              userDAOToDomain(e.User),
		Activities:        activities,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func enrollmentsDAOToDomain(daos []dao.Enrollment) []domain.Enrollment {
	enrollments := make([]domain.Enrollment, 0, len(daos))
	for _, e := range daos {
		enrollments = append(enrollments, enrollmentDAOToDomain(e))
	}

	return enrollments
}
