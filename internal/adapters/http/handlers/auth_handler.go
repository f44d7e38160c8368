package handlers

import (
	"strings"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/http/middleware"
	"github.com/Raju-02-19/college-voting-system/internal/config"
	"github.com/Raju-02-19/college-voting-system/internal/core/services"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AuthHandler handles voter registration and login endpoints
type AuthHandler struct {
	registration *services.RegistrationService
	authService  *services.AuthService
	cfg          *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(registration *services.RegistrationService, authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		authService:  authService,
		cfg:          cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	RollNumber string `json:"roll_number" form:"roll_number"`
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
}

// VerifyRequest represents the one-time code submission
type VerifyRequest struct {
	OTP string `json:"otp" form:"otp"`
}

// LoginRequest represents voter login request body
type LoginRequest struct {
	RollNumber string `json:"roll_number" form:"roll_number"`
	Password   string `json:"password" form:"password"`
}

// Register starts a registration and issues a one-time code
// @Summary Register a voter
// @Description Check the roll number against the roster and send a one-time code
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "validation", "Invalid request body")
	}

	key := h.registrationKey(c)
	if key == "" {
		key = uuid.NewString()
	}

	result, err := h.registration.BeginRegistration(c.UserContext(), key, services.RegisterInput{
		RollNumber: req.RollNumber,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	setCookie(c, h.cfg.Cookie, RegistrationCookie, key, h.cfg.Registration.CodeTTL)

	message := "OTP sent to your email"
	if !result.MailSent {
		message = "Email could not be sent"
	}

	return response.Created(c, message, fiber.Map{
		"registration":         result,
		"registration_session": key,
	})
}

// Verify redeems the one-time code and creates the account
// @Summary Verify one-time code
// @Description Complete a pending registration
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body VerifyRequest true "One-time code"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 410 {object} response.Response
// @Router /auth/verify [post]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "validation", "Invalid request body")
	}

	key := h.registrationKey(c)
	if key == "" {
		return response.BadRequest(c, "no_pending_registration", "No registration is waiting for verification")
	}

	student, err := h.registration.ConfirmVerification(c.UserContext(), key, req.OTP)
	if err != nil {
		return writeError(c, err)
	}

	clearCookie(c, h.cfg.Cookie, RegistrationCookie)

	return response.Created(c, "Registration successful, please log in", fiber.Map{
		"student": student.ToResponse(),
	})
}

// Login handles voter login
// @Summary Voter login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "validation", "Invalid request body")
	}

	result, err := h.authService.StudentLogin(c.UserContext(), req.RollNumber, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	setCookie(c, h.cfg.Cookie, middleware.StudentCookie, result.Token, h.authService.SessionTTL())

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": result.Token,
		"student":      result.Student.ToResponse(),
	})
}

// Logout ends the voter session
// @Summary Voter logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearCookie(c, h.cfg.Cookie, middleware.StudentCookie)
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the logged-in voter
// @Summary Current voter
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session := middleware.StudentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	student, err := h.authService.GetStudent(c.UserContext(), session.StudentID)
	if err != nil {
		return writeError(c, err)
	}

	return response.Success(c, "Student retrieved successfully", fiber.Map{
		"student": student.ToResponse(),
	})
}

// registrationKey reads the pending registration key from the header or
// cookie
func (h *AuthHandler) registrationKey(c *fiber.Ctx) string {
	if key := strings.TrimSpace(c.Get(RegistrationHeader)); key != "" {
		return key
	}
	return strings.TrimSpace(c.Cookies(RegistrationCookie))
}
