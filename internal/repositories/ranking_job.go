package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
)

type RankingJobRepository interface {
	Create(job *models.RankingJob) error
	FindByID(id uuid.UUID) (*models.RankingJob, error)
	UpdateStatus(id uuid.UUID, status models.RankingJobStatus) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.RankingJob, error)
	ListByContext(contextID uuid.UUID) ([]models.RankingJob, error)
}

type rankingJobRepository struct {
	db *gorm.DB
}

func NewRankingJobRepository(db *gorm.DB) RankingJobRepository {
	return &rankingJobRepository{db: db}
}

func (r *rankingJobRepository) Create(job *models.RankingJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create ranking job: %w", err)
	}
	return nil
}

func (r *rankingJobRepository) FindByID(id uuid.UUID) (*models.RankingJob, error) {
	var job models.RankingJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "ranking job %s", id)
		}
		return nil, fmt.Errorf("failed to find ranking job: %w", err)
	}
	return &job, nil
}

func (r *rankingJobRepository) UpdateStatus(id uuid.UUID, status models.RankingJobStatus) error {
	result := r.db.Model(&models.RankingJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update job status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "ranking job %s", id)
	}
	return nil
}

func (r *rankingJobRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.RankingJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.JobFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to record job error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "ranking job %s", id)
	}
	return nil
}

func (r *rankingJobRepository) FindPendingJobs(limit int) ([]models.RankingJob, error) {
	var jobs []models.RankingJob
	err := r.db.
		Where("status = ?", models.JobQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return jobs, nil
}

func (r *rankingJobRepository) ListByContext(contextID uuid.UUID) ([]models.RankingJob, error) {
	var jobs []models.RankingJob
	err := r.db.
		Where("context_id = ?", contextID).
		Order("created_at ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs for context: %w", err)
	}
	return jobs, nil
}
