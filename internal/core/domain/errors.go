package domain

import "errors"

// Expected, user-recoverable outcomes of the election workflow.
// Lower-level failures (storage, mail) are never wrapped in these.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotEligible        = errors.New("roll number not allowed")
	ErrAlreadyRegistered  = errors.New("already registered")
	ErrInvalidCode        = errors.New("invalid otp")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyVoted       = errors.New("already voted")
	ErrIncompleteBallot   = errors.New("select all positions")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("resource not found")
)

// Registration errors
var (
	ErrNoPendingRegistration = errors.New("no pending registration")
	ErrCodeExpired           = errors.New("otp expired")
	ErrTooManyAttempts       = errors.New("too many invalid otp attempts")
)
