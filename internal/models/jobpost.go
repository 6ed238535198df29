package models

import (
	"time"

	"github.com/google/uuid"
)

type JobPostStatus string

const (
	JobPostDraft     JobPostStatus = "draft"
	JobPostPublished JobPostStatus = "published"
	JobPostClosed    JobPostStatus = "closed"
)

type SalaryPeriod string

const (
	SalaryPerYear  SalaryPeriod = "year"
	SalaryPerMonth SalaryPeriod = "month"
	SalaryPerHour  SalaryPeriod = "hour"
)

// JobPost is a posting applicants apply to. Once an application references
// it, only the status and descriptive fields are expected to change.
type JobPost struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Title          string        `gorm:"type:text;not null" json:"title"`
	Description    string        `gorm:"type:text" json:"description"`
	Department     string        `gorm:"type:text" json:"department"`
	Location       string        `gorm:"type:text" json:"location"`
	EmploymentType string        `gorm:"type:text" json:"employment_type"`
	Status         JobPostStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	SalaryMin      *float64      `json:"salary_min,omitempty"`
	SalaryMax      *float64      `json:"salary_max,omitempty"`
	SalaryCurrency string        `gorm:"type:text" json:"salary_currency"`
	SalaryPeriod   SalaryPeriod  `gorm:"type:text" json:"salary_period"`
	CreatedAt      time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (JobPost) TableName() string {
	return "job_posts"
}
