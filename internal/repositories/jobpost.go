package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
)

type JobPostRepository interface {
	Create(post *models.JobPost) error
	FindByID(id uuid.UUID) (*models.JobPost, error)
	List() ([]models.JobPost, error)
	Update(post *models.JobPost) error
}

type jobPostRepository struct {
	db *gorm.DB
}

func NewJobPostRepository(db *gorm.DB) JobPostRepository {
	return &jobPostRepository{db: db}
}

func (r *jobPostRepository) Create(post *models.JobPost) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create job post: %w", err)
	}
	return nil
}

func (r *jobPostRepository) FindByID(id uuid.UUID) (*models.JobPost, error) {
	var post models.JobPost
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "job post %s", id)
		}
		return nil, fmt.Errorf("failed to find job post: %w", err)
	}
	return &post, nil
}

func (r *jobPostRepository) List() ([]models.JobPost, error) {
	var posts []models.JobPost
	if err := r.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list job posts: %w", err)
	}
	return posts, nil
}

func (r *jobPostRepository) Update(post *models.JobPost) error {
	if err := r.db.Save(post).Error; err != nil {
		return fmt.Errorf("failed to update job post: %w", err)
	}
	return nil
}
