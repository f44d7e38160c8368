package repositories

import (
	"context"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// studentRepository implements StudentRepository interface
type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// Create creates a new student
func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return translate(r.db.WithContext(ctx).Create(student).Error)
}

// GetByID gets a student by ID
func (r *studentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByRollNumber gets a student by roll number
func (r *studentRepository) GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("roll_number = ?", rollNumber).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByRollNumber checks if a roll number is registered
func (r *studentRepository) ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Where("roll_number = ?", rollNumber).Count(&count).Error
	return count > 0, err
}

// List lists students with pagination
func (r *studentRepository) List(ctx context.Context, offset, limit int) ([]*models.Student, int64, error) {
	var students []*models.Student
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// Delete removes a student. Ballots are keyed by roll number and are kept.
func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
