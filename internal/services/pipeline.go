package services

import (
	"time"

	"github.com/google/uuid"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
	"hirestack/recruit-api/internal/repositories"
)

// PipelineService drives an application's progress through the hiring
// stages. Transitions are validated against the stage successor table and
// committed atomically by the repository; a racing writer loses with
// Conflict rather than corrupting the history.
type PipelineService interface {
	Create(applicantID, jobPostID uuid.UUID, expectedSalary *float64, notes string) (*models.Application, error)
	Transition(applicationID uuid.UUID, target models.Stage, note, actor string) (*models.Application, error)
	Get(applicationID uuid.UUID) (*models.Application, error)
	List() ([]models.Application, error)
	ListByJobPost(jobPostID uuid.UUID) ([]models.Application, error)
}

type pipelineService struct {
	appRepo       repositories.ApplicationRepository
	applicantRepo repositories.ApplicantRepository
	jobPostRepo   repositories.JobPostRepository
}

func NewPipelineService(
	appRepo repositories.ApplicationRepository,
	applicantRepo repositories.ApplicantRepository,
	jobPostRepo repositories.JobPostRepository,
) PipelineService {
	return &pipelineService{
		appRepo:       appRepo,
		applicantRepo: applicantRepo,
		jobPostRepo:   jobPostRepo,
	}
}

func (s *pipelineService) Create(applicantID, jobPostID uuid.UUID, expectedSalary *float64, notes string) (*models.Application, error) {
	if applicantID == uuid.Nil {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "applicant_id is required")
	}
	if jobPostID == uuid.Nil {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "job_post_id is required")
	}

	if _, err := s.applicantRepo.FindByID(applicantID); err != nil {
		return nil, err
	}
	if _, err := s.jobPostRepo.FindByID(jobPostID); err != nil {
		return nil, err
	}

	app := &models.Application{
		ID:             uuid.New(),
		ApplicantID:    applicantID,
		JobPostID:      jobPostID,
		CurrentStage:   models.StageApplied,
		ExpectedSalary: expectedSalary,
		Notes:          notes,
		AppliedAt:      time.Now(),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := s.appRepo.Create(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *pipelineService) Transition(applicationID uuid.UUID, target models.Stage, note, actor string) (*models.Application, error) {
	if !target.Valid() {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "unknown stage %q", target)
	}

	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		return nil, err
	}

	if app.CurrentStage.Terminal() {
		return nil, apperr.Wrap(apperr.ErrInvalidTransition,
			"application %s is terminal at %s", applicationID, app.CurrentStage)
	}
	if !app.CurrentStage.CanTransitionTo(target) {
		return nil, apperr.Wrap(apperr.ErrInvalidTransition,
			"cannot move from %s to %s", app.CurrentStage, target)
	}

	// The repository re-checks the stage under a transaction; if another
	// writer moved the application between our read and this write, the
	// conditional update misses and the caller sees Conflict.
	return s.appRepo.TransitionStage(applicationID, app.CurrentStage, target, note, actor)
}

func (s *pipelineService) Get(applicationID uuid.UUID) (*models.Application, error) {
	return s.appRepo.FindByID(applicationID)
}

func (s *pipelineService) List() ([]models.Application, error) {
	return s.appRepo.List()
}

func (s *pipelineService) ListByJobPost(jobPostID uuid.UUID) ([]models.Application, error) {
	return s.appRepo.ListByJobPost(jobPostID)
}
