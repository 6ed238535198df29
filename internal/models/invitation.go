package models

import (
	"time"

	"github.com/google/uuid"
)

// InterviewInvitation is a bearer credential granting one applicant
// time-limited, unauthenticated access to one interview. The token is a
// v4 UUID and globally unique; expiry is enforced at validation time, not
// by active deletion.
type InterviewInvitation struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Token       string    `gorm:"type:text;not null;uniqueIndex" json:"token"`
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;index" json:"applicant_id"`
	InterviewID uuid.UUID `gorm:"type:uuid;not null;index" json:"interview_id"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Applicant Applicant `gorm:"foreignKey:ApplicantID" json:"applicant"`
	Interview Interview `gorm:"foreignKey:InterviewID" json:"-"`
}

func (InterviewInvitation) TableName() string {
	return "interview_invitations"
}
