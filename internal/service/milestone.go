package service

import (
	"context"
	"fmt"

	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/repository"
)

var ErrMilestoneNotFound = repository.ErrMilestoneNotFound

type MilestoneRepository interface {
	Create(ctx context.Context, milestone domain.Milestone) (domain.Milestone, error)
	FindAll(ctx context.Context) ([]domain.Milestone, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (domain.Milestone, error)
	Delete(ctx context.Context, id uint) error
}

type MilestoneService struct {
	repo MilestoneRepository
}

func NewMilestoneService(repo MilestoneRepository) *MilestoneService {
	return &MilestoneService{
		repo: repo,
	}
}

func (s *MilestoneService) List(ctx context.Context) ([]domain.Milestone, error) {
	milestones, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return milestones, nil
}

// Create validates the label pattern up front so admins hear about a broken
// regex at creation time, not when commits start flowing.
func (s *MilestoneService) Create(ctx context.Context, milestone domain.Milestone) (domain.Milestone, error) {
	if _, err := compileLabelPattern(milestone.LabelPattern); err != nil {
		return domain.Milestone{}, err
	}

	if milestone.Points < 1 {
		milestone.Points = 1
	}

	created, err := s.repo.Create(ctx, milestone)
	if err != nil {
		return domain.Milestone{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *MilestoneService) Update(ctx context.Context, id uint, updates map[string]interface{}) (domain.Milestone, error) {
	if pattern, ok := updates["label_pattern"].(string); ok {
		if _, err := compileLabelPattern(pattern); err != nil {
			return domain.Milestone{}, err
		}
	}

	if points, ok := updates["points"].(int); ok && points < 1 {
		updates["points"] = 1
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return domain.Milestone{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *MilestoneService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
