package models

import (
	"time"

	"github.com/google/uuid"
)

// Applicant is the canonical identity record for a candidate. Email is
// stored lowercased so lookups are case-insensitive. An applicant is never
// hard-deleted while an application or invitation still references it.
type Applicant struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	FullName         string     `gorm:"type:text;not null" json:"full_name"`
	Email            string     `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Phone            *string    `gorm:"type:text" json:"phone,omitempty"`
	ResumeDocumentID *uuid.UUID `gorm:"type:uuid" json:"resume_document_id,omitempty"`
	CreatedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Applicant) TableName() string {
	return "applicants"
}
