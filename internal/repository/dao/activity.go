package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrActivityAlreadyRecorded signals that the (enrollment, milestone) pair
// already has an activity. The unique index makes the check-then-create
// pattern safe under concurrent delivery; callers treat this as a no-op.
var ErrActivityAlreadyRecorded = errors.New("activity already recorded for this milestone")

type Activity struct {
	ID uint `gorm:"primaryKey"`

	EnrollmentID uint `gorm:"not null;uniqueIndex:idx_activities_enrollment_milestone"`
	MilestoneID  uint `gorm:"not null;uniqueIndex:idx_activities_enrollment_milestone"`

	Milestone Milestone `gorm:"foreignKey:MilestoneID;constraint:OnDelete:CASCADE"`

	CommitHash    *string
	CommitMessage string
	Timestamp     time.Time `gorm:"not null"`
}

type ActivityDAO struct {
	db *gorm.DB
}

func NewActivityDAO(db *gorm.DB) *ActivityDAO {
	return &ActivityDAO{
		db: db,
	}
}

func (d *ActivityDAO) Insert(ctx context.Context, activity Activity) (Activity, error) {
	result := d.db.WithContext(ctx).Create(&activity)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Activity{}, ErrActivityAlreadyRecorded
		}

		return Activity{}, result.Error
	}

	return activity, nil
}

func (d *ActivityDAO) FindByEnrollmentID(ctx context.Context, enrollmentID uint) ([]Activity, error) {
	var activities []Activity

	result := d.db.WithContext(ctx).Where("enrollment_id = ?", enrollmentID).Find(&activities)
	if result.Error != nil {
		return nil, result.Error
	}

	return activities, nil
}
