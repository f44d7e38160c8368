package repositories

import (
	"context"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// candidateRepository implements CandidateRepository interface
type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create creates a new candidate
func (r *candidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	return r.db.WithContext(ctx).Create(candidate).Error
}

// GetByID gets a candidate by ID
func (r *candidateRepository) GetByID(ctx context.Context, id uint) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&candidate).Error
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

// List lists all candidates
func (r *candidateRepository) List(ctx context.Context) ([]*models.Candidate, error) {
	var candidates []*models.Candidate
	err := r.db.WithContext(ctx).Order("id ASC").Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// ListByPosition lists candidates for one position
func (r *candidateRepository) ListByPosition(ctx context.Context, position string) ([]*models.Candidate, error) {
	var candidates []*models.Candidate
	err := r.db.WithContext(ctx).
		Where("position = ?", position).
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// ExistsByNameAndPosition checks if a candidate with this exact name stands for position
func (r *candidateRepository) ExistsByNameAndPosition(ctx context.Context, name, position string) (bool, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("position = ?", position).
		Pluck("name", &names).Error
	if err != nil {
		return false, err
	}
	// compared in Go: some collations are case-insensitive
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// Delete deletes a candidate
func (r *candidateRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Candidate{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
