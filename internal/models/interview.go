package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// InterviewSkill is one skill the interview probes.
type InterviewSkill struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// InterviewQuestion is a custom question with its time allotment.
type InterviewQuestion struct {
	Text          string `json:"text"`
	TimeLimitSecs int    `json:"time_limit_secs,omitempty"`
}

// Interview is a reusable template a recruiter defines once and issues
// invitations against. Invitations treat it as read-only.
type Interview struct {
	ID        uuid.UUID                              `gorm:"type:uuid;primary_key" json:"id"`
	Name      string                                 `gorm:"type:text;not null" json:"name"`
	Skills    datatypes.JSONSlice[InterviewSkill]    `json:"skills,omitempty"`
	Questions datatypes.JSONSlice[InterviewQuestion] `json:"questions,omitempty"`
	JobPostID *uuid.UUID                             `gorm:"type:uuid" json:"job_post_id,omitempty"`
	CreatedAt time.Time                              `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time                              `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	JobPost *JobPost `gorm:"foreignKey:JobPostID" json:"-"`
}

func (Interview) TableName() string {
	return "interviews"
}
