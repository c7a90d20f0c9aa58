package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrVoteNotFound = errors.New("vote not found")

type Vote struct {
	ID uint `gorm:"primaryKey"`

	VoterID uint `gorm:"uniqueIndex;not null"`
	Voter   User `gorm:"foreignKey:VoterID;constraint:OnDelete:CASCADE"`

	CandidateID uint `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"not null"`
}

type VoteDAO struct {
	db *gorm.DB
}

func NewVoteDAO(db *gorm.DB) *VoteDAO {
	return &VoteDAO{
		db: db,
	}
}

// Upsert keeps exactly one live vote per voter, replacing the candidate
// when the voter changes their mind.
func (d *VoteDAO) Upsert(ctx context.Context, vote Vote) (Vote, error) {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "voter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"candidate_id"}),
	}).Create(&vote)
	if result.Error != nil {
		return Vote{}, result.Error
	}

	return d.FindByVoterID(ctx, vote.VoterID)
}

func (d *VoteDAO) FindByVoterID(ctx context.Context, voterID uint) (Vote, error) {
	var vote Vote

	result := d.db.WithContext(ctx).First(&vote, "voter_id = ?", voterID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Vote{}, ErrVoteNotFound
		}

		return Vote{}, result.Error
	}

	return vote, nil
}

// CountByCandidate returns vote totals grouped by candidate enrollment.
func (d *VoteDAO) CountByCandidate(ctx context.Context) (map[uint]int64, error) {
	type row struct {
		CandidateID uint
		Total       int64
	}

	var rows []row
	result := d.db.WithContext(ctx).
		Model(&Vote{}).
		Select("candidate_id", "COUNT(*) AS total").
		Group("candidate_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CandidateID] = r.Total
	}

	return counts, nil
}
