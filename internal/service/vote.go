package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hackathon-hub/api/internal/domain"
	"github.com/hackathon-hub/api/internal/repository"
)

var (
	ErrVotingClosed  = errors.New("voting is closed")
	ErrNotACandidate = errors.New("enrollment is not a voting candidate")
)

type VoteRepository interface {
	Upsert(ctx context.Context, vote domain.Vote) (domain.Vote, error)
	FindByVoterID(ctx context.Context, voterID uint) (domain.Vote, error)
}

type VoteEnrollmentRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Enrollment, error)
	FindCandidates(ctx context.Context) ([]domain.Enrollment, error)
	CountCandidates(ctx context.Context) (int64, error)
	SetCandidates(ctx context.Context, ids []uint) error
}

type VoteSettings interface {
	VotingOpen(ctx context.Context) (bool, error)
	SetVotingOpen(ctx context.Context, open bool) error
}

type VoteService struct {
	votes       VoteRepository
	enrollments VoteEnrollmentRepository
	settings    VoteSettings
}

func NewVoteService(votes VoteRepository, enrollments VoteEnrollmentRepository, settings VoteSettings) *VoteService {
	return &VoteService{
		votes:       votes,
		enrollments: enrollments,
		settings:    settings,
	}
}

// Status returns the open flag, the candidate list, and the voter's current
// vote when they have one.
func (s *VoteService) Status(ctx context.Context, voterID uint) (domain.VotingStatus, error) {
	open, err := s.settings.VotingOpen(ctx)
	if err != nil {
		return domain.VotingStatus{}, fmt.Errorf("s.settings.VotingOpen -> %w", err)
	}

	enrollments, err := s.enrollments.FindCandidates(ctx)
	if err != nil {
		return domain.VotingStatus{}, fmt.Errorf("s.enrollments.FindCandidates -> %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(enrollments))
	for _, e := range enrollments {
		candidates = append(candidates, domain.Candidate{
			EnrollmentID: e.ID,
			Name:         e.User.Name,
			AvatarURL:    e.User.AvatarURL,
			RepoURL:      e.RepoURL,
		})
	}

	status := domain.VotingStatus{
		IsOpen:     open,
		Candidates: candidates,
	}

	vote, err := s.votes.FindByVoterID(ctx, voterID)
	if err != nil {
		if !errors.Is(err, repository.ErrVoteNotFound) {
			return domain.VotingStatus{}, fmt.Errorf("s.votes.FindByVoterID -> %w", err)
		}
	} else {
		status.MyCandidateID = &vote.CandidateID
	}

	return status, nil
}

// Cast records or replaces the voter's single live vote. Votes are only
// accepted while voting is open and only for flagged candidates.
func (s *VoteService) Cast(ctx context.Context, voterID, candidateID uint) error {
	open, err := s.settings.VotingOpen(ctx)
	if err != nil {
		return fmt.Errorf("s.settings.VotingOpen -> %w", err)
	}
	if !open {
		return ErrVotingClosed
	}

	candidate, err := s.enrollments.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return ErrNotACandidate
		}

		return fmt.Errorf("s.enrollments.FindByID -> %w", err)
	}
	if !candidate.IsVotingCandidate {
		return ErrNotACandidate
	}

	_, err = s.votes.Upsert(ctx, domain.Vote{
		VoterID:     voterID,
		CandidateID: candidateID,
	})
	if err != nil {
		return fmt.Errorf("s.votes.Upsert -> %w", err)
	}

	return nil
}

func (s *VoteService) OpenVoting(ctx context.Context) error {
	return s.settings.SetVotingOpen(ctx, true)
}

func (s *VoteService) CloseVoting(ctx context.Context) error {
	return s.settings.SetVotingOpen(ctx, false)
}

func (s *VoteService) ControlStatus(ctx context.Context) (bool, int64, error) {
	open, err := s.settings.VotingOpen(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("s.settings.VotingOpen -> %w", err)
	}

	count, err := s.enrollments.CountCandidates(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("s.enrollments.CountCandidates -> %w", err)
	}

	return open, count, nil
}

// SelectCandidates replaces the candidate set: every flag is cleared, then
// the given enrollments are flagged.
func (s *VoteService) SelectCandidates(ctx context.Context, enrollmentIDs []uint) error {
	if err := s.enrollments.SetCandidates(ctx, enrollmentIDs); err != nil {
		return fmt.Errorf("s.enrollments.SetCandidates -> %w", err)
	}

	return nil
}
