package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrMilestoneNotFound = errors.New("milestone not found")

type Milestone struct {
	ID uint `gorm:"primaryKey"`

	Title        string `gorm:"not null"`
	Description  string
	LabelPattern string `gorm:"not null"`
	Order        int    `gorm:"column:display_order;not null;default:0"`
	Points       int    `gorm:"not null;default:1"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type MilestoneDAO struct {
	db *gorm.DB
}

func NewMilestoneDAO(db *gorm.DB) *MilestoneDAO {
	return &MilestoneDAO{
		db: db,
	}
}

func (d *MilestoneDAO) Insert(ctx context.Context, milestone Milestone) (Milestone, error) {
	result := d.db.WithContext(ctx).Create(&milestone)
	if result.Error != nil {
		return Milestone{}, result.Error
	}

	return milestone, nil
}

func (d *MilestoneDAO) FindByID(ctx context.Context, id uint) (Milestone, error) {
	var milestone Milestone

	result := d.db.WithContext(ctx).First(&milestone, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Milestone{}, ErrMilestoneNotFound
		}

		return Milestone{}, result.Error
	}

	return milestone, nil
}

func (d *MilestoneDAO) FindAll(ctx context.Context) ([]Milestone, error) {
	var milestones []Milestone

	result := d.db.WithContext(ctx).Order("display_order ASC").Find(&milestones)
	if result.Error != nil {
		return nil, result.Error
	}

	return milestones, nil
}

func (d *MilestoneDAO) Update(ctx context.Context, id uint, updates map[string]interface{}) (Milestone, error) {
	result := d.db.WithContext(ctx).Model(&Milestone{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return Milestone{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Milestone{}, ErrMilestoneNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *MilestoneDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Milestone{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMilestoneNotFound
	}

	return nil
}
