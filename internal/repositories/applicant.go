package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
)

type ApplicantRepository interface {
	Create(applicant *models.Applicant) error
	FindByID(id uuid.UUID) (*models.Applicant, error)
	FindByEmail(email string) (*models.Applicant, error)
	List() ([]models.Applicant, error)
	Update(applicant *models.Applicant) error
	Delete(id uuid.UUID) error
}

type applicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

func (r *applicantRepository) Create(applicant *models.Applicant) error {
	applicant.Email = strings.ToLower(strings.TrimSpace(applicant.Email))
	if err := r.db.Create(applicant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Wrap(apperr.ErrConflict, "applicant email %q already registered", applicant.Email)
		}
		return fmt.Errorf("failed to create applicant: %w", err)
	}
	return nil
}

func (r *applicantRepository) FindByID(id uuid.UUID) (*models.Applicant, error) {
	var applicant models.Applicant
	if err := r.db.Where("id = ?", id).First(&applicant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "applicant %s", id)
		}
		return nil, fmt.Errorf("failed to find applicant: %w", err)
	}
	return &applicant, nil
}

// FindByEmail looks the applicant up by exact email match, case-insensitive.
func (r *applicantRepository) FindByEmail(email string) (*models.Applicant, error) {
	var applicant models.Applicant
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.Where("email = ?", normalized).First(&applicant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "applicant with email %q", email)
		}
		return nil, fmt.Errorf("failed to find applicant by email: %w", err)
	}
	return &applicant, nil
}

func (r *applicantRepository) List() ([]models.Applicant, error) {
	var applicants []models.Applicant
	if err := r.db.Order("created_at DESC").Find(&applicants).Error; err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return applicants, nil
}

func (r *applicantRepository) Update(applicant *models.Applicant) error {
	if err := r.db.Save(applicant).Error; err != nil {
		return fmt.Errorf("failed to update applicant: %w", err)
	}
	return nil
}

// Delete removes an applicant only while nothing references it. Active
// applications or invitations make the delete fail with Conflict instead
// of cascading.
func (r *applicantRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.Application{}).Where("applicant_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to count applications: %w", err)
		}
		if refs > 0 {
			return apperr.Wrap(apperr.ErrConflict, "applicant %s is referenced by %d application(s)", id, refs)
		}
		if err := tx.Model(&models.InterviewInvitation{}).Where("applicant_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to count invitations: %w", err)
		}
		if refs > 0 {
			return apperr.Wrap(apperr.ErrConflict, "applicant %s is referenced by %d invitation(s)", id, refs)
		}

		res := tx.Where("id = ?", id).Delete(&models.Applicant{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete applicant: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.Wrap(apperr.ErrNotFound, "applicant %s", id)
		}
		return nil
	})
}
