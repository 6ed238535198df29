package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
	"hirestack/recruit-api/internal/repositories"
)

type ApplicantHandler struct {
	applicantRepo repositories.ApplicantRepository
}

func NewApplicantHandler(applicantRepo repositories.ApplicantRepository) *ApplicantHandler {
	return &ApplicantHandler{applicantRepo: applicantRepo}
}

func (h *ApplicantHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateApplicantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return apperr.Wrap(apperr.ErrInvalidArgument, "full_name is required")
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return apperr.Wrap(apperr.ErrInvalidArgument, "a valid email is required")
	}

	applicant := &models.Applicant{
		ID:        uuid.New(),
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.applicantRepo.Create(applicant); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(applicant)
}

func (h *ApplicantHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	applicant, err := h.applicantRepo.FindByID(id)
	if err != nil {
		return err
	}
	return c.JSON(applicant)
}

func (h *ApplicantHandler) HandleList(c *fiber.Ctx) error {
	applicants, err := h.applicantRepo.List()
	if err != nil {
		return err
	}
	return c.JSON(applicants)
}

func (h *ApplicantHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateApplicantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}

	applicant, err := h.applicantRepo.FindByID(id)
	if err != nil {
		return err
	}
	if req.FullName != nil {
		applicant.FullName = *req.FullName
	}
	if req.Phone != nil {
		applicant.Phone = req.Phone
	}
	applicant.UpdatedAt = time.Now()

	if err := h.applicantRepo.Update(applicant); err != nil {
		return err
	}
	return c.JSON(applicant)
}

func (h *ApplicantHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.applicantRepo.Delete(id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
