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

type JobPostHandler struct {
	jobPostRepo repositories.JobPostRepository
}

func NewJobPostHandler(jobPostRepo repositories.JobPostRepository) *JobPostHandler {
	return &JobPostHandler{jobPostRepo: jobPostRepo}
}

func (h *JobPostHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobPostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperr.Wrap(apperr.ErrInvalidArgument, "title is required")
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return apperr.Wrap(apperr.ErrInvalidArgument, "salary_min exceeds salary_max")
	}

	post := &models.JobPost{
		ID:             uuid.New(),
		Title:          req.Title,
		Description:    req.Description,
		Department:     req.Department,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Status:         models.JobPostDraft,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		SalaryCurrency: req.SalaryCurrency,
		SalaryPeriod:   req.SalaryPeriod,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := h.jobPostRepo.Create(post); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *JobPostHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.jobPostRepo.FindByID(id)
	if err != nil {
		return err
	}
	return c.JSON(post)
}

func (h *JobPostHandler) HandleList(c *fiber.Ctx) error {
	posts, err := h.jobPostRepo.List()
	if err != nil {
		return err
	}
	return c.JSON(posts)
}

// HandleUpdate only touches the status and descriptive fields; salary and
// structural fields are immutable once posted.
func (h *JobPostHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateJobPostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}

	post, err := h.jobPostRepo.FindByID(id)
	if err != nil {
		return err
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.Status != nil {
		switch *req.Status {
		case models.JobPostDraft, models.JobPostPublished, models.JobPostClosed:
			post.Status = *req.Status
		default:
			return apperr.Wrap(apperr.ErrInvalidArgument, "unknown status %q", *req.Status)
		}
	}
	post.UpdatedAt = time.Now()

	if err := h.jobPostRepo.Update(post); err != nil {
		return err
	}
	return c.JSON(post)
}
