package models

import (
	"time"

	"github.com/google/uuid"
)

type RankingJobStatus string

const (
	JobQueued     RankingJobStatus = "queued"
	JobProcessing RankingJobStatus = "processing"
	JobCompleted  RankingJobStatus = "completed"
	JobFailed     RankingJobStatus = "failed"
)

// RankingJob tracks one asynchronous ranking request: one context document
// submitted to the AI collaborator. A failed job stays failed with its
// error message; the worker never touches other candidates' results.
type RankingJob struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ContextID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"context_id"`
	DocumentID   uuid.UUID        `gorm:"type:uuid;not null" json:"document_id"`
	Status       RankingJobStatus `gorm:"not null;default:'queued'" json:"status"`
	ErrorMessage *string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Context  Context  `gorm:"foreignKey:ContextID" json:"-"`
	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (RankingJob) TableName() string {
	return "ranking_jobs"
}
