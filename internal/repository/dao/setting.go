package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSettingNotFound = errors.New("setting not found")

// Setting is a process-wide key-value configuration row. Absence of a key
// means its default; every read goes through the store.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

type SettingDAO struct {
	db *gorm.DB
}

func NewSettingDAO(db *gorm.DB) *SettingDAO {
	return &SettingDAO{
		db: db,
	}
}

func (d *SettingDAO) Get(ctx context.Context, key string) (Setting, error) {
	var setting Setting

	result := d.db.WithContext(ctx).First(&setting, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Setting{}, ErrSettingNotFound
		}

		return Setting{}, result.Error
	}

	return setting, nil
}

func (d *SettingDAO) Upsert(ctx context.Context, setting Setting) error {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting)

	return result.Error
}

func (d *SettingDAO) Delete(ctx context.Context, key string) error {
	return d.db.WithContext(ctx).Delete(&Setting{}, "key = ?", key).Error
}
