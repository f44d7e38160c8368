package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/repositories"
	"github.com/Raju-02-19/college-voting-system/internal/config"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/password"
)

// RegistrationService moves an applicant from the roster to a verified
// account: BeginRegistration issues a one-time code, ConfirmVerification
// redeems it.
type RegistrationService struct {
	roster      *domain.Roster
	studentRepo repositories.StudentRepository
	pending     *PendingStore
	mailer      Mailer
	cfg         config.RegistrationConfig
	disclose    bool
	hashCost    int
}

// NewRegistrationService creates a new registration service. disclose
// controls whether the code is returned to the caller when mail cannot be
// delivered.
func NewRegistrationService(
	roster *domain.Roster,
	studentRepo repositories.StudentRepository,
	pending *PendingStore,
	mailer Mailer,
	cfg config.RegistrationConfig,
	disclose bool,
) *RegistrationService {
	return &RegistrationService{
		roster:      roster,
		studentRepo: studentRepo,
		pending:     pending,
		mailer:      mailer,
		cfg:         cfg,
		disclose:    disclose,
		hashCost:    password.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost
func (s *RegistrationService) WithHashCost(cost int) *RegistrationService {
	s.hashCost = cost
	return s
}

// RegisterInput represents registration input
type RegisterInput struct {
	RollNumber string
	Email      string
	Password   string
}

// RegistrationResult reports how the one-time code was delivered
type RegistrationResult struct {
	RollNumber   string `json:"roll_number"`
	Email        string `json:"email"`
	MailSent     bool   `json:"mail_sent"`
	FallbackCode string `json:"otp,omitempty"`
}

// BeginRegistration validates the applicant against the roster and the
// credential store, then stores a pending registration under sessionKey
// and tries to mail the code. Mail failure is not an error.
func (s *RegistrationService) BeginRegistration(ctx context.Context, sessionKey string, input RegisterInput) (*RegistrationResult, error) {
	roll := domain.NormalizeRoll(input.RollNumber)
	email := domain.NormalizeEmail(input.Email)

	// 1. Validate input shape and password policy
	if roll == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: all fields required", domain.ErrValidation)
	}
	if !password.ValidatePassword(input.Password) {
		return nil, fmt.Errorf("%w: password must have %d+ chars and an uppercase letter", domain.ErrValidation, password.MinLength)
	}
	if strings.TrimSpace(sessionKey) == "" {
		return nil, fmt.Errorf("%w: missing registration session", domain.ErrValidation)
	}

	// 2. Roster eligibility
	entry, ok := s.roster.Lookup(roll)
	if !ok {
		return nil, domain.ErrNotEligible
	}

	// 3. One account per roll number (fast path; the unique index decides)
	exists, err := s.studentRepo.ExistsByRollNumber(ctx, roll)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyRegistered
	}

	// 4. Hash password and generate code
	hash, err := password.HashWithCost(input.Password, s.hashCost)
	if err != nil {
		return nil, err
	}
	code, err := generateSecureCode(CodeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}

	s.pending.Put(sessionKey, domain.PendingRegistration{
		RollNumber:   roll,
		Email:        email,
		PasswordHash: hash,
		Branch:       entry.Branch,
		Year:         entry.Year,
		Code:         code,
		ExpiresAt:    s.expiry(),
	})

	// 5. Deliver (best effort)
	result := &RegistrationResult{RollNumber: roll, Email: email}
	result.MailSent = s.deliver(ctx, email, code)
	if !result.MailSent && s.disclose {
		result.FallbackCode = code
	}

	log.Printf("✅ Registration pending: %s (mail_sent=%t)", roll, result.MailSent)
	return result, nil
}

// deliver attempts to mail the code and reports success
func (s *RegistrationService) deliver(ctx context.Context, email, code string) bool {
	if s.mailer == nil || !s.mailer.Enabled() {
		log.Printf("⚠️ Mail suppressed, otp for %s disclosed to caller=%t", email, s.disclose)
		return false
	}

	subject, body := registrationCodeMessage(code)
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		log.Printf("⚠️ Unable to send otp email: %v", err)
		return false
	}
	return true
}

func (s *RegistrationService) expiry() time.Time {
	if s.cfg.CodeTTL <= 0 {
		return time.Time{}
	}
	return s.pending.Now().Add(s.cfg.CodeTTL)
}

// ConfirmVerification redeems the code for sessionKey and creates the
// verified student account
func (s *RegistrationService) ConfirmVerification(ctx context.Context, sessionKey, code string) (*models.Student, error) {
	p, err := s.pending.Get(sessionKey)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(code) != p.Code {
		if err := s.pending.RecordFailure(sessionKey, s.cfg.MaxAttempts); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidCode
	}

	student := &models.Student{
		RollNumber:   p.RollNumber,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Branch:       p.Branch,
		Year:         p.Year,
		IsVerified:   true,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			s.pending.Delete(sessionKey)
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, err
	}

	s.pending.Delete(sessionKey)
	log.Printf("✅ Student verified: %s", student.RollNumber)
	return student, nil
}

// Pending returns the stored registration for sessionKey
func (s *RegistrationService) Pending(sessionKey string) (domain.PendingRegistration, error) {
	return s.pending.Get(sessionKey)
}
