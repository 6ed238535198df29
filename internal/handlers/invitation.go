package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
	"hirestack/recruit-api/internal/services"
)

type InvitationHandler struct {
	invitations services.InvitationService
}

func NewInvitationHandler(invitations services.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitations: invitations}
}

// HandleIssue mints an invitation for the applicant with the given email.
// This sits behind the recruiter session; the validation endpoint below
// does not.
func (h *InvitationHandler) HandleIssue(c *fiber.Ctx) error {
	var req models.IssueInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}
	if req.InterviewID == "" {
		return apperr.Wrap(apperr.ErrInvalidArgument, "interview_id is required")
	}
	interviewID, err := uuid.Parse(req.InterviewID)
	if err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid interview_id")
	}

	result, err := h.invitations.Issue(c.Context(), req.ApplicantEmail, interviewID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.IssueInvitationResponse{
		ID:        result.Invitation.ID.String(),
		Token:     result.Invitation.Token,
		ExpiresAt: result.Invitation.ExpiresAt.Format(time.RFC3339),
		EmailSent: result.EmailSent,
	})
}

// HandleValidate is the unauthenticated redemption check a candidate's
// browser performs before joining the interview room.
func (h *InvitationHandler) HandleValidate(c *fiber.Ctx) error {
	interviewID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	token := c.Query("token")

	invitation, err := h.invitations.Validate(token, interviewID)
	if err != nil {
		return err
	}
	return c.JSON(models.ValidateInvitationResponse{
		InvitationID:  invitation.ID.String(),
		ApplicantID:   invitation.ApplicantID.String(),
		ApplicantName: invitation.Applicant.FullName,
		InterviewID:   invitation.InterviewID.String(),
		ExpiresAt:     invitation.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *InvitationHandler) HandleList(c *fiber.Ctx) error {
	interviewID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	invitations, err := h.invitations.ListByInterview(interviewID)
	if err != nil {
		return err
	}
	return c.JSON(invitations)
}

func (h *InvitationHandler) HandleRevoke(c *fiber.Ctx) error {
	invitationID, err := parseUUIDParam(c, "invitationId")
	if err != nil {
		return err
	}
	if err := h.invitations.Revoke(invitationID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
