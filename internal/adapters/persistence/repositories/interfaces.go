package repositories

import (
	"context"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
)

// StudentRepository defines the credential store
type StudentRepository interface {
	// Create inserts a student; a roll number collision returns ErrDuplicate
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error)
	ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.Student, int64, error)
	Delete(ctx context.Context, id uint) error
}

// AdminRepository defines admin account storage
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
	// CreateIfAbsent inserts the admin unless the username exists.
	// It reports whether a row was written.
	CreateIfAbsent(ctx context.Context, admin *models.Admin) (bool, error)
}

// VoteRepository defines the append-only ballot ledger
type VoteRepository interface {
	// Create inserts a ballot; a second ballot for a roll number returns ErrDuplicate
	Create(ctx context.Context, vote *models.Vote) error
	ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error)
	GetByRollNumber(ctx context.Context, rollNumber string) (*models.Vote, error)
	Count(ctx context.Context) (int64, error)
	// SelectionsFor returns every ballot's choice for one office
	SelectionsFor(ctx context.Context, office domain.Office) ([]string, error)
}

// CandidateRepository defines the candidate registry
type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	GetByID(ctx context.Context, id uint) (*models.Candidate, error)
	// List returns all candidates in insertion order
	List(ctx context.Context) ([]*models.Candidate, error)
	// ListByPosition returns one office's candidates in insertion order
	ListByPosition(ctx context.Context, position string) ([]*models.Candidate, error)
	ExistsByNameAndPosition(ctx context.Context, name, position string) (bool, error)
	Delete(ctx context.Context, id uint) error
}
