package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
	"hirestack/recruit-api/internal/repositories"
)

type InterviewHandler struct {
	interviewRepo repositories.InterviewRepository
}

func NewInterviewHandler(interviewRepo repositories.InterviewRepository) *InterviewHandler {
	return &InterviewHandler{interviewRepo: interviewRepo}
}

func (h *InterviewHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperr.Wrap(apperr.ErrInvalidArgument, "name is required")
	}

	interview := &models.Interview{
		ID:        uuid.New(),
		Name:      req.Name,
		Skills:    datatypes.NewJSONSlice(req.Skills),
		Questions: datatypes.NewJSONSlice(req.Questions),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if req.JobPostID != nil {
		jobPostID, err := uuid.Parse(*req.JobPostID)
		if err != nil {
			return apperr.Wrap(apperr.ErrInvalidArgument, "invalid job_post_id")
		}
		interview.JobPostID = &jobPostID
	}

	if err := h.interviewRepo.Create(interview); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(interview)
}

func (h *InterviewHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	interview, err := h.interviewRepo.FindByID(id)
	if err != nil {
		return err
	}
	return c.JSON(interview)
}

func (h *InterviewHandler) HandleList(c *fiber.Ctx) error {
	interviews, err := h.interviewRepo.List()
	if err != nil {
		return err
	}
	return c.JSON(interviews)
}

func (h *InterviewHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}

	interview, err := h.interviewRepo.FindByID(id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.Name) != "" {
		interview.Name = req.Name
	}
	if req.Skills != nil {
		interview.Skills = datatypes.NewJSONSlice(req.Skills)
	}
	if req.Questions != nil {
		interview.Questions = datatypes.NewJSONSlice(req.Questions)
	}
	interview.UpdatedAt = time.Now()

	if err := h.interviewRepo.Update(interview); err != nil {
		return err
	}
	return c.JSON(interview)
}

func (h *InterviewHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.interviewRepo.Delete(id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
