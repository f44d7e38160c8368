package handlers

import (
	"errors"
	"log"

	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// writeError maps a service error to its HTTP response
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return response.BadRequest(c, "validation", err.Error())
	case errors.Is(err, domain.ErrNotEligible):
		return response.Forbidden(c, "not_eligible", "Roll number is not on the eligibility roster")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return response.Conflict(c, "already_registered", "This roll number is already registered")
	case errors.Is(err, domain.ErrNoPendingRegistration):
		return response.BadRequest(c, "no_pending_registration", "No registration is waiting for verification")
	case errors.Is(err, domain.ErrCodeExpired):
		return response.Error(c, fiber.StatusGone, "code_expired", "The one-time code has expired, please register again")
	case errors.Is(err, domain.ErrTooManyAttempts):
		return response.Error(c, fiber.StatusTooManyRequests, "too_many_attempts", "Too many wrong codes, please register again")
	case errors.Is(err, domain.ErrInvalidCode):
		return response.BadRequest(c, "invalid_code", "Invalid one-time code")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Unauthorized")
	case errors.Is(err, domain.ErrAlreadyVoted):
		return response.Conflict(c, "already_voted", "You have already voted")
	case errors.Is(err, domain.ErrIncompleteBallot):
		return response.BadRequest(c, "incomplete_ballot", "Please select a candidate for every position")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Not found")
	default:
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		return response.InternalServerError(c, "Something went wrong")
	}
}
