package repository

import (
	"context"
	"fmt"

	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/repository/dao"
)

var ErrVoteNotFound = dao.ErrVoteNotFound

type VoteDAO interface {
	Upsert(ctx context.Context, vote dao.Vote) (dao.Vote, error)
	FindByVoterID(ctx context.Context, voterID uint) (dao.Vote, error)
	CountByCandidate(ctx context.Context) (map[uint]int64, error)
}

type VoteRepository struct {
	dao VoteDAO
}

func NewVoteRepository(dao VoteDAO) *VoteRepository {
	return &VoteRepository{
		dao: dao,
	}
}

func (r *VoteRepository) Upsert(ctx context.Context, vote domain.Vote) (domain.Vote, error) {
	upserted, err := r.dao.Upsert(ctx, dao.Vote{
		VoterID:     vote.VoterID,
		CandidateID: vote.CandidateID,
	})
	if err != nil {
		return domain.Vote{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return voteDAOToDomain(upserted), nil
}

func (r *VoteRepository) FindByVoterID(ctx context.Context, voterID uint) (domain.Vote, error) {
	found, err := r.dao.FindByVoterID(ctx, voterID)
	if err != nil {
		return domain.Vote{}, fmt.Errorf("r.dao.FindByVoterID -> %w", err)
	}

	return voteDAOToDomain(found), nil
}

func (r *VoteRepository) CountByCandidate(ctx context.Context) (map[uint]int64, error) {
	counts, err := r.dao.CountByCandidate(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByCandidate -> %w", err)
	}

	return counts, nil
}

func voteDAOToDomain(v dao.Vote) domain.Vote {
	return domain.Vote{
		ID:          v.ID,
		VoterID:     v.VoterID,
		CandidateID: v.CandidateID,
		CreatedAt:   v.CreatedAt,
	}
}
