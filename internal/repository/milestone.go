package repository

import (
	"context"
	"fmt"

	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/repository/dao"
)

var ErrMilestoneNotFound = dao.ErrMilestoneNotFound

type MilestoneDAO interface {
	Insert(ctx context.Context, milestone dao.Milestone) (dao.Milestone, error)
	FindByID(ctx context.Context, id uint) (dao.Milestone, error)
	FindAll(ctx context.Context) ([]dao.Milestone, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (dao.Milestone, error)
	Delete(ctx context.Context, id uint) error
}

type MilestoneRepository struct {
	dao MilestoneDAO
}

func NewMilestoneRepository(dao MilestoneDAO) *MilestoneRepository {
	return &MilestoneRepository{
		dao: dao,
	}
}

func (r *MilestoneRepository) Create(ctx context.Context, milestone domain.Milestone) (domain.Milestone, error) {
	created, err := r.dao.Insert(ctx, dao.Milestone{
		Title:        milestone.Title,
		Description:  milestone.Description,
		LabelPattern: milestone.LabelPattern,
		Order:        milestone.Order,
		Points:       milestone.Points,
	})
	if err != nil {
		return domain.Milestone{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return milestoneDAOToDomain(created), nil
}

func (r *MilestoneRepository) FindByID(ctx context.Context, id uint) (domain.Milestone, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Milestone{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return milestoneDAOToDomain(found), nil
}

func (r *MilestoneRepository) FindAll(ctx context.Context) ([]domain.Milestone, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	milestones := make([]domain.Milestone, 0, len(found))
	for _, m := range found {
		milestones = append(milestones, milestoneDAOToDomain(m))
	}

	return milestones, nil
}

func (r *MilestoneRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (domain.Milestone, error) {
	// The display order column is named display_order in the store.
	if order, ok := updates["order"]; ok {
		delete(updates, "order")
		updates["display_order"] = order
	}

	updated, err := r.dao.Update(ctx, id, updates)
	if err != nil {
		return domain.Milestone{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return milestoneDAOToDomain(updated), nil
}

func (r *MilestoneRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func milestoneDAOToDomain(m dao.Milestone) domain.Milestone {
	return domain.Milestone{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		LabelPattern: m.LabelPattern,
		Order:        m.Order,
		Points:       m.Points,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
