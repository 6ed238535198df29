package models

import (
	"time"

	"github.com/google/uuid"
)

// Stage is a position in the fixed hiring pipeline.
type Stage string

const (
	StageApplied     Stage = "applied"
	StageAiScreening Stage = "ai_screening"
	StageReview      Stage = "review"
	StageOffer       Stage = "offer"
	StageHired       Stage = "hired"
	StageRejected    Stage = "rejected"
)

// stageSuccessors is the closed transition table of the pipeline. Rejected
// is reachable from every non-terminal stage; Hired and Rejected have no
// successors.
var stageSuccessors = map[Stage][]Stage{
	StageApplied:     {StageAiScreening, StageRejected},
	StageAiScreening: {StageReview, StageRejected},
	StageReview:      {StageOffer, StageRejected},
	StageOffer:       {StageHired, StageRejected},
	StageHired:       {},
	StageRejected:    {},
}

// AllStages returns every pipeline stage. Tests use it to assert the
// transition table covers the full variant set.
func AllStages() []Stage {
	return []Stage{StageApplied, StageAiScreening, StageReview, StageOffer, StageHired, StageRejected}
}

func (s Stage) Valid() bool {
	_, ok := stageSuccessors[s]
	return ok
}

// Terminal reports whether no further transition is accepted from s.
func (s Stage) Terminal() bool {
	succ, ok := stageSuccessors[s]
	return ok && len(succ) == 0
}

// CanTransitionTo reports whether target is in the allowed successor set
// of s.
func (s Stage) CanTransitionTo(target Stage) bool {
	for _, next := range stageSuccessors[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Application binds one applicant to one job post and tracks its progress
// through the pipeline. CurrentStage always equals the stage of the most
// recent history entry; the history is append-only.
type Application struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	JobPostID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"job_post_id"`
	ApplicantID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"applicant_id"`
	CurrentStage   Stage      `gorm:"type:text;not null" json:"current_stage"`
	ExpectedSalary *float64   `json:"expected_salary,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes"`
	AppliedAt      time.Time  `gorm:"not null" json:"applied_at"`
	CreatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	History []StageHistoryEntry `gorm:"foreignKey:ApplicationID" json:"history,omitempty"`

	JobPost   JobPost   `gorm:"foreignKey:JobPostID" json:"-"`
	Applicant Applicant `gorm:"foreignKey:ApplicantID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}

// StageHistoryEntry is one step of an application's audit trail. Seq is
// 1-based and unique per application, so the order of entries can never be
// ambiguous even when timestamps collide.
type StageHistoryEntry struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_application_seq" json:"application_id"`
	Seq           int       `gorm:"not null;uniqueIndex:idx_application_seq" json:"seq"`
	Stage         Stage     `gorm:"type:text;not null" json:"stage"`
	Note          string    `gorm:"type:text" json:"note"`
	Actor         string    `gorm:"type:text" json:"actor"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (StageHistoryEntry) TableName() string {
	return "stage_history_entries"
}
