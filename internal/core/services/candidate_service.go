package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/repositories"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/storage"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
)

// CandidateService manages the candidate registry and portraits
type CandidateService struct {
	candidateRepo repositories.CandidateRepository
	images        ImageStore
}

// NewCandidateService creates a new candidate service
func NewCandidateService(candidateRepo repositories.CandidateRepository, images ImageStore) *CandidateService {
	return &CandidateService{
		candidateRepo: candidateRepo,
		images:        images,
	}
}

// ImageUpload is an uploaded portrait
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// CandidateInput represents the new candidate form
type CandidateInput struct {
	Name     string
	Position string
	Image    *ImageUpload
}

// AddCandidate registers a candidate for one of the four offices
func (s *CandidateService) AddCandidate(ctx context.Context, input CandidateInput) (*models.Candidate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	office, ok := domain.ParseOffice(input.Position)
	if !ok {
		return nil, fmt.Errorf("%w: unknown position %q", domain.ErrValidation, input.Position)
	}

	candidate := &models.Candidate{Name: name, Position: string(office)}

	if input.Image != nil && input.Image.Filename != "" {
		if !storage.AllowedFile(input.Image.Filename) {
			return nil, fmt.Errorf("%w: image must be one of png, jpg, jpeg, gif", domain.ErrValidation)
		}
		if s.images == nil {
			return nil, fmt.Errorf("image storage is not configured")
		}
		stored, err := s.images.Save(input.Image.Filename, input.Image.Reader)
		if errors.Is(err, storage.ErrInvalidFilename) {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		candidate.Image = &stored
	}

	if err := s.candidateRepo.Create(ctx, candidate); err != nil {
		if candidate.Image != nil {
			s.removeImage(*candidate.Image)
		}
		return nil, err
	}

	log.Printf("✅ Candidate added: %s (%s)", candidate.Name, candidate.Position)
	return candidate, nil
}

// DeleteCandidate removes a candidate and its portrait. Cast ballots are
// not touched.
func (s *CandidateService) DeleteCandidate(ctx context.Context, id uint) error {
	candidate, err := s.candidateRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := s.candidateRepo.Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return domain.ErrNotFound
		}
		return err
	}

	if candidate.Image != nil {
		s.removeImage(*candidate.Image)
	}

	log.Printf("✅ Candidate deleted: %s (%s)", candidate.Name, candidate.Position)
	return nil
}

func (s *CandidateService) removeImage(name string) {
	if s.images == nil || name == "" {
		return
	}
	if err := s.images.Delete(name); err != nil {
		log.Printf("⚠️ Failed to remove image %s: %v", name, err)
	}
}

// ListCandidates returns every candidate in insertion order
func (s *CandidateService) ListCandidates(ctx context.Context) ([]*models.Candidate, error) {
	return s.candidateRepo.List(ctx)
}

// ListByOffice returns one office's candidates in insertion order
func (s *CandidateService) ListByOffice(ctx context.Context, position string) ([]*models.Candidate, error) {
	office, ok := domain.ParseOffice(position)
	if !ok {
		return nil, fmt.Errorf("%w: unknown position %q", domain.ErrValidation, position)
	}
	return s.candidateRepo.ListByPosition(ctx, string(office))
}
