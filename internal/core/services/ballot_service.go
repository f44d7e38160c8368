package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/repositories"
	"github.com/Raju-02-19/college-voting-system/internal/config"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
)

// BallotService records exactly one ballot per voter
type BallotService struct {
	voteRepo      repositories.VoteRepository
	studentRepo   repositories.StudentRepository
	candidateRepo repositories.CandidateRepository
	cfg           config.ElectionConfig
}

// NewBallotService creates a new ballot service
func NewBallotService(
	voteRepo repositories.VoteRepository,
	studentRepo repositories.StudentRepository,
	candidateRepo repositories.CandidateRepository,
	cfg config.ElectionConfig,
) *BallotService {
	return &BallotService{
		voteRepo:      voteRepo,
		studentRepo:   studentRepo,
		candidateRepo: candidateRepo,
		cfg:           cfg,
	}
}

// BallotOption is a candidate shown on the ballot
type BallotOption struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// BallotOffice is one office with its candidates
type BallotOffice struct {
	Office     domain.Office  `json:"office"`
	Field      string         `json:"field"`
	Candidates []BallotOption `json:"candidates"`
}

// CastBallot records the voter's selections. The existence check is only a
// fast path: the unique index on votes.roll_number is what rejects a
// concurrent duplicate.
func (s *BallotService) CastBallot(ctx context.Context, session *domain.StudentSession, selections domain.Selections) (*models.Vote, error) {
	// 1. Session
	if session == nil || session.StudentID == 0 || session.RollNumber == "" {
		return nil, domain.ErrUnauthorized
	}
	if _, err := s.studentRepo.GetByID(ctx, session.StudentID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	// 2. Already voted?
	voted, err := s.voteRepo.ExistsByRollNumber(ctx, session.RollNumber)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, domain.ErrAlreadyVoted
	}

	// 3. Every office selected; names are stored exactly as submitted
	clean := make(domain.Selections, len(domain.Offices))
	for _, office := range domain.Offices {
		name := selections[office]
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: missing %s", domain.ErrIncompleteBallot, office)
		}
		clean[office] = name
	}

	// 4. Optionally require registered candidates
	if s.cfg.StrictCandidates {
		if err := s.checkCandidates(ctx, clean); err != nil {
			return nil, err
		}
	}

	// 5. Single atomic insert
	vote := models.NewVote(session.RollNumber, clean)
	if err := s.voteRepo.Create(ctx, vote); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, domain.ErrAlreadyVoted
		}
		return nil, err
	}

	log.Printf("✅ Vote recorded: %s", session.RollNumber)
	return vote, nil
}

func (s *BallotService) checkCandidates(ctx context.Context, sel domain.Selections) error {
	for _, office := range domain.Offices {
		ok, err := s.candidateRepo.ExistsByNameAndPosition(ctx, sel[office], string(office))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %q is not a candidate for %s", domain.ErrValidation, sel[office], office)
		}
	}
	return nil
}

// HasVoted reports whether a ballot exists for the roll number
func (s *BallotService) HasVoted(ctx context.Context, rollNumber string) (bool, error) {
	return s.voteRepo.ExistsByRollNumber(ctx, domain.NormalizeRoll(rollNumber))
}

// MyBallot returns the ballot cast by the session's voter
func (s *BallotService) MyBallot(ctx context.Context, session *domain.StudentSession) (*domain.Ballot, error) {
	if session == nil || session.RollNumber == "" {
		return nil, domain.ErrUnauthorized
	}
	vote, err := s.voteRepo.GetByRollNumber(ctx, session.RollNumber)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return vote.ToDomain(), nil
}

// BallotForm lists every office with its candidates, in ballot order
func (s *BallotService) BallotForm(ctx context.Context) ([]BallotOffice, error) {
	form := make([]BallotOffice, 0, len(domain.Offices))
	for _, office := range domain.Offices {
		candidates, err := s.candidateRepo.ListByPosition(ctx, string(office))
		if err != nil {
			return nil, err
		}

		options := make([]BallotOption, len(candidates))
		for i, c := range candidates {
			options[i] = BallotOption{ID: c.ID, Name: c.Name, Image: c.ImageName()}
		}
		form = append(form, BallotOffice{Office: office, Field: office.Field(), Candidates: options})
	}
	return form, nil
}
