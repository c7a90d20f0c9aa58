package repository

import (
	"context"
	"fmt"

	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/repository/dao"
)

var ErrActivityAlreadyRecorded = dao.ErrActivityAlreadyRecorded

type ActivityDAO interface {
	Insert(ctx context.Context, activity dao.Activity) (dao.Activity, error)
	FindByEnrollmentID(ctx context.Context, enrollmentID uint) ([]dao.Activity, error)
}

type ActivityRepository struct {
	dao ActivityDAO
}

func NewActivityRepository(dao ActivityDAO) *ActivityRepository {
	return &ActivityRepository{
		dao: dao,
	}
}

func (r *ActivityRepository) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	created, err := r.dao.Insert(ctx, dao.Activity{
		EnrollmentID:  activity.EnrollmentID,
		MilestoneID:   activity.MilestoneID,
		CommitHash:    activity.CommitHash,
		CommitMessage: activity.CommitMessage,
		Timestamp:     activity.Timestamp,
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return activityDAOToDomain(created), nil
}

func (r *ActivityRepository) FindByEnrollmentID(ctx context.Context, enrollmentID uint) ([]domain.Activity, error) {
	found, err := r.dao.FindByEnrollmentID(ctx, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEnrollmentID -> %w", err)
	}

	activities := make([]domain.Activity, 0, len(found))
	for _, a := range found {
		activities = append(activities, activityDAOToDomain(a))
	}

	return activities, nil
}

func activityDAOToDomain(a dao.Activity) domain.Activity {
	activity := domain.Activity{
		ID:            a.ID,
		EnrollmentID:  a.EnrollmentID,
		MilestoneID:   a.MilestoneID,
		CommitHash:    a.CommitHash,
		CommitMessage: a.CommitMessage,
		Timestamp:     a.Timestamp,
	}

	if a.Milestone.ID != 0 {
		m := milestoneDAOToDomain(a.Milestone)
		activity.Milestone = &m
	}

	return activity
}
