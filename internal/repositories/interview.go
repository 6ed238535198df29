package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
)

type InterviewRepository interface {
	Create(interview *models.Interview) error
	FindByID(id uuid.UUID) (*models.Interview, error)
	List() ([]models.Interview, error)
	Update(interview *models.Interview) error
	Delete(id uuid.UUID) error
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *models.Interview) error {
	if err := r.db.Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) FindByID(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	if err := r.db.Where("id = ?", id).First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "interview %s", id)
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

func (r *interviewRepository) List() ([]models.Interview, error) {
	var interviews []models.Interview
	if err := r.db.Order("created_at DESC").Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

func (r *interviewRepository) Update(interview *models.Interview) error {
	if err := r.db.Save(interview).Error; err != nil {
		return fmt.Errorf("failed to update interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) Delete(id uuid.UUID) error {
	res := r.db.Where("id = ?", id).Delete(&models.Interview{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete interview: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "interview %s", id)
	}
	return nil
}
