package repository

import (
	"context"
	"fmt"

	"github.com/hackathon-hub/api/internal/repository/dao"
)

var ErrSettingNotFound = dao.ErrSettingNotFound

type SettingDAO interface {
	Get(ctx context.Context, key string) (dao.Setting, error)
	Upsert(ctx context.Context, setting dao.Setting) error
	Delete(ctx context.Context, key string) error
}

type SettingRepository struct {
	dao SettingDAO
}

func NewSettingRepository(dao SettingDAO) *SettingRepository {
	return &SettingRepository{
		dao: dao,
	}
}

func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	setting, err := r.dao.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("r.dao.Get -> %w", err)
	}

	return setting.Value, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	if err := r.dao.Upsert(ctx, dao.Setting{Key: key, Value: value}); err != nil {
		return fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return nil
}

func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	if err := r.dao.Delete(ctx, key); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
