package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
	"hirestack/recruit-api/internal/services"
)

type ApplicationHandler struct {
	pipeline services.PipelineService
}

func NewApplicationHandler(pipeline services.PipelineService) *ApplicationHandler {
	return &ApplicationHandler{pipeline: pipeline}
}

func (h *ApplicationHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}
	applicantID, err := uuid.Parse(req.ApplicantID)
	if err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid applicant_id")
	}
	jobPostID, err := uuid.Parse(req.JobPostID)
	if err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid job_post_id")
	}

	app, err := h.pipeline.Create(applicantID, jobPostID, req.ExpectedSalary, req.Notes)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) HandleTransition(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}
	if req.TargetStage == "" {
		return apperr.Wrap(apperr.ErrInvalidArgument, "target_stage is required")
	}

	app, err := h.pipeline.Transition(id, req.TargetStage, req.Note, req.Actor)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	app, err := h.pipeline.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) HandleList(c *fiber.Ctx) error {
	if raw := c.Query("job_post_id"); raw != "" {
		jobPostID, err := uuid.Parse(raw)
		if err != nil {
			return apperr.Wrap(apperr.ErrInvalidArgument, "invalid job_post_id")
		}
		apps, err := h.pipeline.ListByJobPost(jobPostID)
		if err != nil {
			return err
		}
		return c.JSON(apps)
	}

	apps, err := h.pipeline.List()
	if err != nil {
		return err
	}
	return c.JSON(apps)
}
