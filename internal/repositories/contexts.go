package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
)

type ContextRepository interface {
	// CreateWithDocuments persists the context and its document links in one
	// transaction; a context is never observable without its documents.
	CreateWithDocuments(c *models.Context, documentIDs []uuid.UUID) error
	FindByID(id uuid.UUID) (*models.Context, error)
	ListByOwner(ownerID uuid.UUID) ([]models.Context, error)
	AttachDocuments(contextID uuid.UUID, documentIDs []uuid.UUID) error
	SoftDelete(id uuid.UUID) error
	UpsertRanking(ranking *models.CandidateRanking) error
	ListRankings(contextID uuid.UUID) ([]models.CandidateRanking, error)
	CreateChat(chat *models.Chat) error
	FindChat(contextID, chatID uuid.UUID) (*models.Chat, error)
	AppendChatMessage(message *models.ChatMessage) error
}

type contextRepository struct {
	db *gorm.DB
}

func NewContextRepository(db *gorm.DB) ContextRepository {
	return &contextRepository{db: db}
}

func (r *contextRepository) CreateWithDocuments(c *models.Context, documentIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return fmt.Errorf("failed to create context: %w", err)
		}
		if err := linkDocuments(tx, c.ID, documentIDs); err != nil {
			return err
		}
		return nil
	})
}

func (r *contextRepository) FindByID(id uuid.UUID) (*models.Context, error) {
	var c models.Context
	err := r.db.
		Preload("Documents").
		Preload("Rankings").
		Preload("Chats").
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "context %s", id)
		}
		return nil, fmt.Errorf("failed to find context: %w", err)
	}
	return &c, nil
}

func (r *contextRepository) ListByOwner(ownerID uuid.UUID) ([]models.Context, error) {
	var contexts []models.Context
	err := r.db.
		Preload("Documents").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&contexts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contexts: %w", err)
	}
	return contexts, nil
}

// AttachDocuments appends links idempotently: the join table's composite
// primary key plus ON CONFLICT DO NOTHING means re-attaching an already
// linked document is a no-op, never a duplicate row.
func (r *contextRepository) AttachDocuments(contextID uuid.UUID, documentIDs []uuid.UUID) error {
	return linkDocuments(r.db, contextID, documentIDs)
}

func linkDocuments(tx *gorm.DB, contextID uuid.UUID, documentIDs []uuid.UUID) error {
	if len(documentIDs) == 0 {
		return nil
	}
	links := make([]models.ContextDocument, 0, len(documentIDs))
	now := time.Now()
	for _, docID := range documentIDs {
		links = append(links, models.ContextDocument{
			ContextID:  contextID,
			DocumentID: docID,
			CreatedAt:  now,
		})
	}
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	if err != nil {
		return fmt.Errorf("failed to link documents: %w", err)
	}
	return nil
}

func (r *contextRepository) SoftDelete(id uuid.UUID) error {
	res := r.db.Where("id = ?", id).Delete(&models.Context{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete context: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "context %s", id)
	}
	return nil
}

// UpsertRanking appends the result keyed by candidate; a second result for
// the same (context, candidate) pair replaces the first. Last write wins,
// re-ranking is a legitimate recruiter action.
func (r *contextRepository) UpsertRanking(ranking *models.CandidateRanking) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "context_id"}, {Name: "candidate_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "analysis", "summary", "updated_at"}),
	}).Create(ranking).Error
	if err != nil {
		return fmt.Errorf("failed to upsert ranking: %w", err)
	}
	return nil
}

func (r *contextRepository) ListRankings(contextID uuid.UUID) ([]models.CandidateRanking, error) {
	var rankings []models.CandidateRanking
	err := r.db.
		Where("context_id = ?", contextID).
		Order("score DESC").
		Find(&rankings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", err)
	}
	return rankings, nil
}

func (r *contextRepository) CreateChat(chat *models.Chat) error {
	if err := r.db.Create(chat).Error; err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

func (r *contextRepository) FindChat(contextID, chatID uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ? AND context_id = ?", chatID, contextID).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "chat %s in context %s", chatID, contextID)
		}
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}
	return &chat, nil
}

func (r *contextRepository) AppendChatMessage(message *models.ChatMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}
