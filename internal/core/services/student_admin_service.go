package services

import (
	"context"
	"log"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/repositories"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/pagination"
)

// StudentAdminService is the admin view of accounts and the roster
type StudentAdminService struct {
	studentRepo repositories.StudentRepository
	voteRepo    repositories.VoteRepository
	roster      *domain.Roster
}

// NewStudentAdminService creates a new student admin service
func NewStudentAdminService(
	studentRepo repositories.StudentRepository,
	voteRepo repositories.VoteRepository,
	roster *domain.Roster,
) *StudentAdminService {
	return &StudentAdminService{
		studentRepo: studentRepo,
		voteRepo:    voteRepo,
		roster:      roster,
	}
}

// StudentRow is a registered student as shown to admins
type StudentRow struct {
	*models.StudentResponse
	HasVoted bool `json:"has_voted"`
}

// ListStudents returns one page of registered students
func (s *StudentAdminService) ListStudents(ctx context.Context, params *pagination.Params) (*pagination.Page, error) {
	students, total, err := s.studentRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	rows := make([]StudentRow, len(students))
	for i, st := range students {
		voted, err := s.voteRepo.ExistsByRollNumber(ctx, st.RollNumber)
		if err != nil {
			return nil, err
		}
		rows[i] = StudentRow{StudentResponse: st.ToResponse(), HasVoted: voted}
	}

	return pagination.NewPage(rows, params, total), nil
}

// DeleteStudent removes an account. A ballot already cast stays in the
// ledger and still blocks a second ballot for that roll number.
func (s *StudentAdminService) DeleteStudent(ctx context.Context, id uint) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return domain.ErrNotFound
		}
		return err
	}

	log.Printf("✅ Student deleted: %s", student.RollNumber)
	return nil
}

// Roster returns the eligibility roster loaded at startup
func (s *StudentAdminService) Roster() []domain.RosterEntry {
	return s.roster.Entries()
}
