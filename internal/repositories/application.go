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

type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	List() ([]models.Application, error)
	ListByJobPost(jobPostID uuid.UUID) ([]models.Application, error)
	TransitionStage(id uuid.UUID, from, to models.Stage, note, actor string) (*models.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create writes the application row together with its synthetic "applied"
// history entry in one transaction, so every application starts with a
// history whose last entry matches CurrentStage.
func (r *applicationRepository) Create(app *models.Application) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}
		entry := models.StageHistoryEntry{
			ID:            uuid.New(),
			ApplicationID: app.ID,
			Seq:           1,
			Stage:         app.CurrentStage,
			CreatedAt:     app.AppliedAt,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create initial history entry: %w", err)
		}
		app.History = []models.StageHistoryEntry{entry}
		return nil
	})
}

func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := r.db.
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "application %s", id)
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) List() ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Order("applied_at DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) ListByJobPost(jobPostID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Where("job_post_id = ?", jobPostID).
		Order("applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications for job post: %w", err)
	}
	return apps, nil
}

// TransitionStage performs the conditional stage update and history append
// as one atomic unit. The stage column is only updated while it still
// equals the expected prior stage; a concurrent writer that got there
// first makes this call fail with Conflict instead of overwriting its
// history entry.
func (r *applicationRepository) TransitionStage(id uuid.UUID, from, to models.Stage, note, actor string) (*models.Application, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Application{}).
			Where("id = ? AND current_stage = ?", id, from).
			Updates(map[string]interface{}{
				"current_stage": to,
				"updated_at":    time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update stage: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Application{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check application: %w", err)
			}
			if count == 0 {
				return apperr.Wrap(apperr.ErrNotFound, "application %s", id)
			}
			return apperr.Wrap(apperr.ErrConflict, "application %s is no longer at stage %s", id, from)
		}

		var maxSeq int
		err := tx.Model(&models.StageHistoryEntry{}).
			Where("application_id = ?", id).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error
		if err != nil {
			return fmt.Errorf("failed to read history sequence: %w", err)
		}

		entry := models.StageHistoryEntry{
			ID:            uuid.New(),
			ApplicationID: id,
			Seq:           maxSeq + 1,
			Stage:         to,
			Note:          note,
			Actor:         actor,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append history entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(id)
}
