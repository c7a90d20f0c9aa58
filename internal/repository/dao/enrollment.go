package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEnrollmentNotFound = errors.New("enrollment not found")

type Enrollment struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"uniqueIndex;not null"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	RepoURL           *string
	IsVotingCandidate bool `gorm:"not null;default:false"`

	Activities []Activity `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE"`
	Votes      []Vote     `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EnrollmentDAO struct {
	db *gorm.DB
}

func NewEnrollmentDAO(db *gorm.DB) *EnrollmentDAO {
	return &EnrollmentDAO{
		db: db,
	}
}

// UpsertByUserID creates the user's enrollment or replaces its repo URL.
// One enrollment per user is enforced by the unique index on user_id.
func (d *EnrollmentDAO) UpsertByUserID(ctx context.Context, userID uint, repoURL *string) (Enrollment, error) {
	enrollment := Enrollment{
		UserID:  userID,
		RepoURL: repoURL,
	}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"repo_url": repoURL, "updated_at": time.Now()}),
	}).Create(&enrollment)
	if result.Error != nil {
		return Enrollment{}, result.Error
	}

	return d.FindByUserID(ctx, userID)
}

func (d *EnrollmentDAO) FindByID(ctx context.Context, id uint) (Enrollment, error) {
	var enrollment Enrollment

	result := d.db.WithContext(ctx).First(&enrollment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Enrollment{}, ErrEnrollmentNotFound
		}

		return Enrollment{}, result.Error
	}

	return enrollment, nil
}

func (d *EnrollmentDAO) FindByUserID(ctx context.Context, userID uint) (Enrollment, error) {
	var enrollment Enrollment

	result := d.db.WithContext(ctx).First(&enrollment, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Enrollment{}, ErrEnrollmentNotFound
		}

		return Enrollment{}, result.Error
	}

	return enrollment, nil
}

// FindByIDAndRepoURL only matches when the stored repo URL still equals
// repoURL, guarding against stale or forged associations.
func (d *EnrollmentDAO) FindByIDAndRepoURL(ctx context.Context, id uint, repoURL string) (Enrollment, error) {
	var enrollment Enrollment

	result := d.db.WithContext(ctx).First(&enrollment, "id = ? AND repo_url = ?", id, repoURL)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Enrollment{}, ErrEnrollmentNotFound
		}

		return Enrollment{}, result.Error
	}

	return enrollment, nil
}

func (d *EnrollmentDAO) FindByRepoURL(ctx context.Context, repoURL string) (Enrollment, error) {
	var enrollment Enrollment

	result := d.db.WithContext(ctx).First(&enrollment, "repo_url = ?", repoURL)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Enrollment{}, ErrEnrollmentNotFound
		}

		return Enrollment{}, result.Error
	}

	return enrollment, nil
}

func (d *EnrollmentDAO) FindAll(ctx context.Context) ([]Enrollment, error) {
	var enrollments []Enrollment

	result := d.db.WithContext(ctx).
		Preload("User").
		Preload("Activities").
		Preload("Activities.Milestone").
		Find(&enrollments)
	if result.Error != nil {
		return nil, result.Error
	}

	return enrollments, nil
}

func (d *EnrollmentDAO) FindAllWithRepoURL(ctx context.Context) ([]Enrollment, error) {
	var enrollments []Enrollment

	result := d.db.WithContext(ctx).
		Preload("User").
		Preload("Activities").
		Where("repo_url IS NOT NULL").
		Find(&enrollments)
	if result.Error != nil {
		return nil, result.Error
	}

	return enrollments, nil
}

func (d *EnrollmentDAO) FindCandidates(ctx context.Context) ([]Enrollment, error) {
	var enrollments []Enrollment

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("is_voting_candidate = ?", true).
		Find(&enrollments)
	if result.Error != nil {
		return nil, result.Error
	}

	return enrollments, nil
}

func (d *EnrollmentDAO) CountCandidates(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Enrollment{}).
		Where("is_voting_candidate = ?", true).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// SetCandidates clears every candidate flag, then sets it for the given ids.
func (d *EnrollmentDAO) SetCandidates(ctx context.Context, ids []uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Enrollment{}).
			Where("is_voting_candidate = ?", true).
			Update("is_voting_candidate", false).Error; err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}

		return tx.Model(&Enrollment{}).
			Where("id IN ?", ids).
			Update("is_voting_candidate", true).Error
	})
}

func (d *EnrollmentDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Enrollment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEnrollmentNotFound
	}

	return nil
}
