package handlers

import (
	"errors"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/http/middleware"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
	"github.com/Raju-02-19/college-voting-system/internal/core/services"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BallotHandler handles the voting endpoints
type BallotHandler struct {
	ballots *services.BallotService
}

// NewBallotHandler creates a new ballot handler
func NewBallotHandler(ballots *services.BallotService) *BallotHandler {
	return &BallotHandler{ballots: ballots}
}

// CastBallotRequest holds one candidate name per office
type CastBallotRequest struct {
	President     string `json:"president" form:"president"`
	VicePresident string `json:"vice_president" form:"vice_president"`
	Secretary     string `json:"secretary" form:"secretary"`
	Treasurer     string `json:"treasurer" form:"treasurer"`
}

func (r CastBallotRequest) selections() domain.Selections {
	return domain.Selections{
		domain.OfficePresident:     r.President,
		domain.OfficeVicePresident: r.VicePresident,
		domain.OfficeSecretary:     r.Secretary,
		domain.OfficeTreasurer:     r.Treasurer,
	}
}

// Form returns the ballot with every office's candidates
// @Summary Ballot form
// @Tags Ballot
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /ballot [get]
func (h *BallotHandler) Form(c *fiber.Ctx) error {
	session := middleware.StudentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	voted, err := h.ballots.HasVoted(c.UserContext(), session.RollNumber)
	if err != nil {
		return writeError(c, err)
	}
	form, err := h.ballots.BallotForm(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}

	return response.Success(c, "Ballot retrieved successfully", fiber.Map{
		"has_voted": voted,
		"offices":   form,
	})
}

// Status reports whether the voter has already voted, with their ballot
// once cast
// @Summary Voting status
// @Tags Ballot
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /ballot/status [get]
func (h *BallotHandler) Status(c *fiber.Ctx) error {
	session := middleware.StudentSession(c)
	if session == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	data := fiber.Map{
		"roll_number": session.RollNumber,
		"has_voted":   false,
	}

	ballot, err := h.ballots.MyBallot(c.UserContext(), session)
	switch {
	case err == nil:
		data["has_voted"] = true
		data["ballot"] = ballot
	case errors.Is(err, domain.ErrNotFound):
	default:
		return writeError(c, err)
	}

	return response.Success(c, "Status retrieved successfully", data)
}

// Cast records the voter's ballot
// @Summary Cast ballot
// @Description Submit one choice per office; a voter may vote once
// @Tags Ballot
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CastBallotRequest true "Selections"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /ballot [post]
func (h *BallotHandler) Cast(c *fiber.Ctx) error {
	var req CastBallotRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "validation", "Invalid request body")
	}

	vote, err := h.ballots.CastBallot(c.UserContext(), middleware.StudentSession(c), req.selections())
	if err != nil {
		return writeError(c, err)
	}

	return response.Created(c, "Thank you for voting", fiber.Map{
		"roll_number": vote.RollNumber,
		"voted_at":    vote.CreatedAt,
	})
}
