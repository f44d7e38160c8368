package handlers

import (
	"github.com/Raju-02-19/college-voting-system/internal/adapters/http/middleware"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"
	"github.com/Raju-02-19/college-voting-system/internal/config"
	"github.com/Raju-02-19/college-voting-system/internal/core/services"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/pagination"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles administrator endpoints
type AdminHandler struct {
	authService *services.AuthService
	students    *services.StudentAdminService
	candidates  *services.CandidateService
	tally       *services.TallyService
	cfg         *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	authService *services.AuthService,
	students *services.StudentAdminService,
	candidates *services.CandidateService,
	tally *services.TallyService,
	cfg *config.Config,
) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		students:    students,
		candidates:  candidates,
		tally:       tally,
		cfg:         cfg,
	}
}

// AdminLoginRequest represents admin login request body
type AdminLoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login handles admin login
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "Admin credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/auth/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "validation", "Invalid request body")
	}

	result, err := h.authService.AdminLogin(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	setCookie(c, h.cfg.Cookie, middleware.AdminCookie, result.Token, h.authService.SessionTTL())

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": result.Token,
		"username":     result.Admin.Username,
	})
}

// Logout ends the admin session
// @Summary Admin logout
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/auth/logout [post]
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	clearCookie(c, h.cfg.Cookie, middleware.AdminCookie)
	return response.Success(c, "Logged out successfully", nil)
}

// ListStudents lists registered students
// @Summary List students
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/students [get]
func (h *AdminHandler) ListStudents(c *fiber.Ctx) error {
	page, err := h.students.ListStudents(c.UserContext(), pagination.GetParams(c))
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Students retrieved successfully", page)
}

// DeleteStudent removes a student account
// @Summary Delete student
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/students/{id} [delete]
func (h *AdminHandler) DeleteStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "validation", "Invalid student ID")
	}

	if err := h.students.DeleteStudent(c.UserContext(), uint(id)); err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Student deleted successfully", nil)
}

// Roster returns the eligibility roster
// @Summary Eligibility roster
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/roster [get]
func (h *AdminHandler) Roster(c *fiber.Ctx) error {
	entries := h.students.Roster()
	return response.Success(c, "Roster retrieved successfully", fiber.Map{
		"total":   len(entries),
		"entries": entries,
	})
}

// ListCandidates lists candidates, optionally for one position
// @Summary List candidates
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param position query string false "Filter by position"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/candidates [get]
func (h *AdminHandler) ListCandidates(c *fiber.Ctx) error {
	var candidates []*models.Candidate
	var err error
	if position := c.Query("position"); position != "" {
		candidates, err = h.candidates.ListByOffice(c.UserContext(), position)
	} else {
		candidates, err = h.candidates.ListCandidates(c.UserContext())
	}
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Candidates retrieved successfully", candidates)
}

// AddCandidate registers a candidate with an optional portrait
// @Summary Add candidate
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Candidate name"
// @Param position formData string true "President, Vice President, Secretary or Treasurer"
// @Param image formData file false "Portrait (png, jpg, jpeg, gif)"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/candidates [post]
func (h *AdminHandler) AddCandidate(c *fiber.Ctx) error {
	input := services.CandidateInput{
		Name:     c.FormValue("name"),
		Position: c.FormValue("position"),
	}

	// Image is optional
	if fh, err := c.FormFile("image"); err == nil && fh.Filename != "" {
		f, err := fh.Open()
		if err != nil {
			return response.BadRequest(c, "validation", "Unable to read image")
		}
		defer f.Close()
		input.Image = &services.ImageUpload{Filename: fh.Filename, Reader: f}
	}

	candidate, err := h.candidates.AddCandidate(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return response.Created(c, "Candidate added successfully", candidate)
}

// DeleteCandidate removes a candidate
// @Summary Delete candidate
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/candidates/{id} [delete]
func (h *AdminHandler) DeleteCandidate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "validation", "Invalid candidate ID")
	}

	if err := h.candidates.DeleteCandidate(c.UserContext(), uint(id)); err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Candidate deleted successfully", nil)
}

// Results returns the election tally
// @Summary Election results
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/results [get]
func (h *AdminHandler) Results(c *fiber.Ctx) error {
	results, err := h.tally.ComputeResults(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Results retrieved successfully", results)
}
