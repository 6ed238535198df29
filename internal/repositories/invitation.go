package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
)

type InvitationRepository interface {
	Create(invitation *models.InterviewInvitation) error
	FindByID(id uuid.UUID) (*models.InterviewInvitation, error)
	// FindByTokenAndInterview requires both the token and the interview to
	// match, so a leaked token cannot be replayed against another interview.
	FindByTokenAndInterview(token string, interviewID uuid.UUID) (*models.InterviewInvitation, error)
	ListByInterview(interviewID uuid.UUID) ([]models.InterviewInvitation, error)
	Delete(id uuid.UUID) error
}

type invitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(invitation *models.InterviewInvitation) error {
	if err := r.db.Create(invitation).Error; err != nil {
		// Token carries a unique index; a collision here means the same
		// token string was minted twice, which must never be persisted.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Wrap(apperr.ErrConflict, "invitation token already exists")
		}
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

func (r *invitationRepository) FindByID(id uuid.UUID) (*models.InterviewInvitation, error) {
	var invitation models.InterviewInvitation
	if err := r.db.Preload("Applicant").Where("id = ?", id).First(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "invitation %s", id)
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	return &invitation, nil
}

func (r *invitationRepository) FindByTokenAndInterview(token string, interviewID uuid.UUID) (*models.InterviewInvitation, error) {
	var invitation models.InterviewInvitation
	err := r.db.
		Preload("Applicant").
		Where("token = ? AND interview_id = ?", token, interviewID).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "invitation for token")
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	return &invitation, nil
}

func (r *invitationRepository) ListByInterview(interviewID uuid.UUID) ([]models.InterviewInvitation, error) {
	var invitations []models.InterviewInvitation
	err := r.db.
		Preload("Applicant").
		Where("interview_id = ?", interviewID).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// Delete hard-deletes the invitation; revocation leaves no trace on
// purpose, the token simply stops resolving.
func (r *invitationRepository) Delete(id uuid.UUID) error {
	res := r.db.Where("id = ?", id).Delete(&models.InterviewInvitation{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete invitation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "invitation %s", id)
	}
	return nil
}
