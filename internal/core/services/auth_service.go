package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/repositories"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/jwt"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/password"
)

// AuthService handles voter and admin login and session tokens
type AuthService struct {
	studentRepo repositories.StudentRepository
	adminRepo   repositories.AdminRepository
	secret      string
	ttl         time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	studentRepo repositories.StudentRepository,
	adminRepo repositories.AdminRepository,
	secret string,
	ttl time.Duration,
) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		adminRepo:   adminRepo,
		secret:      secret,
		ttl:         ttl,
	}
}

// StudentLoginResult is a successful voter login
type StudentLoginResult struct {
	Student *models.Student
	Session domain.StudentSession
	Token   string
}

// AdminLoginResult is a successful admin login
type AdminLoginResult struct {
	Admin   *models.Admin
	Session domain.AdminSession
	Token   string
}

// SessionTTL returns how long issued tokens stay valid
func (s *AuthService) SessionTTL() time.Duration {
	return s.ttl
}

// StudentLogin authenticates a voter by roll number and password
func (s *AuthService) StudentLogin(ctx context.Context, rollNumber, pw string) (*StudentLoginResult, error) {
	roll := domain.NormalizeRoll(rollNumber)
	if roll == "" || pw == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// 1. Find student
	student, err := s.studentRepo.GetByRollNumber(ctx, roll)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verified accounts only, then password
	if !student.IsVerified || !password.Verify(pw, student.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Issue session
	token, err := jwt.GenerateStudentToken(student.ID, student.RollNumber, s.secret, s.ttl)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Student logged in: %s", student.RollNumber)

	return &StudentLoginResult{
		Student: student,
		Session: domain.StudentSession{StudentID: student.ID, RollNumber: student.RollNumber},
		Token:   token,
	}, nil
}

// AdminLogin authenticates an administrator
func (s *AuthService) AdminLogin(ctx context.Context, username, pw string) (*AdminLoginResult, error) {
	username = strings.TrimSpace(username)
	pw = strings.TrimSpace(pw)
	if username == "" || pw == "" {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pw, admin.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateAdminToken(admin.ID, admin.Username, s.secret, s.ttl)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Admin logged in: %s", admin.Username)

	return &AdminLoginResult{
		Admin:   admin,
		Session: domain.AdminSession{AdminID: admin.ID, Username: admin.Username},
		Token:   token,
	}, nil
}

// ParseStudentSession validates a voter token
func (s *AuthService) ParseStudentSession(token string) (*domain.StudentSession, error) {
	claims, err := jwt.ValidateStudentToken(token, s.secret)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &domain.StudentSession{StudentID: claims.StudentID, RollNumber: claims.RollNumber}, nil
}

// ParseAdminSession validates an admin token
func (s *AuthService) ParseAdminSession(token string) (*domain.AdminSession, error) {
	claims, err := jwt.ValidateAdminToken(token, s.secret)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &domain.AdminSession{AdminID: claims.AdminID, Username: claims.Username}, nil
}

// GetStudent loads the account behind a voter session
func (s *AuthService) GetStudent(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return student, nil
}
