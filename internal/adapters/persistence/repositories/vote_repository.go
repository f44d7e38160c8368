package repositories

import (
	"context"
	"fmt"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"

	"gorm.io/gorm"
)

// voteRepository implements VoteRepository interface
type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Create inserts a ballot in a single statement; the unique index on
// roll_number rejects a second ballot even under concurrent submission
func (r *voteRepository) Create(ctx context.Context, vote *models.Vote) error {
	return translate(r.db.WithContext(ctx).Create(vote).Error)
}

// ExistsByRollNumber checks if a ballot was cast for a roll number
func (r *voteRepository) ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vote{}).Where("roll_number = ?", rollNumber).Count(&count).Error
	return count > 0, err
}

// GetByRollNumber gets the ballot cast by a roll number
func (r *voteRepository) GetByRollNumber(ctx context.Context, rollNumber string) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).Where("roll_number = ?", rollNumber).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// Count counts all ballots
func (r *voteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vote{}).Count(&count).Error
	return count, err
}

// SelectionsFor plucks one office column from every ballot
func (r *voteRepository) SelectionsFor(ctx context.Context, office domain.Office) ([]string, error) {
	col, ok := models.VoteColumn(office)
	if !ok {
		return nil, fmt.Errorf("unknown office %q", office)
	}

	var names []string
	err := r.db.WithContext(ctx).Model(&models.Vote{}).Pluck(col, &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
