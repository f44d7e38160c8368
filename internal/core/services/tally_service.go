package services

import (
	"context"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/repositories"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
)

// TallyService aggregates ballots into per-candidate counts
type TallyService struct {
	voteRepo      repositories.VoteRepository
	candidateRepo repositories.CandidateRepository
}

// NewTallyService creates a new tally service
func NewTallyService(voteRepo repositories.VoteRepository, candidateRepo repositories.CandidateRepository) *TallyService {
	return &TallyService{
		voteRepo:      voteRepo,
		candidateRepo: candidateRepo,
	}
}

// CandidateTally is one candidate's count
type CandidateTally struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Votes int64  `json:"votes"`
	Image string `json:"image,omitempty"`
}

// OfficeResult holds one office's counts. Unmatched counts ballots whose
// choice names no current candidate of the office.
type OfficeResult struct {
	Office     domain.Office    `json:"office"`
	Candidates []CandidateTally `json:"candidates"`
	Unmatched  int64            `json:"unmatched"`
}

// Results is a full tally
type Results struct {
	TotalBallots int64          `json:"total_ballots"`
	Offices      []OfficeResult `json:"offices"`
}

// Office returns the result for one office
func (r *Results) Office(office domain.Office) (OfficeResult, bool) {
	for _, o := range r.Offices {
		if o.Office == office {
			return o, true
		}
	}
	return OfficeResult{}, false
}

// Votes returns the count for a candidate name in an office
func (r *Results) Votes(office domain.Office, name string) int64 {
	o, ok := r.Office(office)
	if !ok {
		return 0
	}
	for _, c := range o.Candidates {
		if c.Name == name {
			return c.Votes
		}
	}
	return 0
}

// ComputeResults counts, for every candidate of every office, the ballots
// whose choice for that office equals the candidate name exactly
// (case-sensitive). Candidates appear in registry insertion order.
// Comparison happens here rather than in SQL so collation never merges names.
func (s *TallyService) ComputeResults(ctx context.Context) (*Results, error) {
	total, err := s.voteRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	results := &Results{
		TotalBallots: total,
		Offices:      make([]OfficeResult, 0, len(domain.Offices)),
	}

	for _, office := range domain.Offices {
		candidates, err := s.candidateRepo.ListByPosition(ctx, string(office))
		if err != nil {
			return nil, err
		}
		names, err := s.voteRepo.SelectionsFor(ctx, office)
		if err != nil {
			return nil, err
		}

		counts := make(map[string]int64, len(candidates))
		for _, name := range names {
			counts[name]++
		}

		or := OfficeResult{
			Office:     office,
			Candidates: make([]CandidateTally, len(candidates)),
		}
		matched := make(map[string]bool, len(candidates))
		for i, c := range candidates {
			or.Candidates[i] = CandidateTally{
				ID:    c.ID,
				Name:  c.Name,
				Votes: counts[c.Name],
				Image: c.ImageName(),
			}
			matched[c.Name] = true
		}
		for name, n := range counts {
			if !matched[name] {
				or.Unmatched += n
			}
		}

		results.Offices = append(results.Offices, or)
	}

	return results, nil
}
