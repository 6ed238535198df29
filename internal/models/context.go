package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Context is a recruiter-defined analysis unit pairing a job description
// with candidate documents. Ranking results are appended asynchronously,
// keyed by candidate. Soft-deleted via DeletedAt.
type Context struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	JobDescription string         `gorm:"type:text;not null" json:"job_description"`
	Language       string         `gorm:"type:text;not null;default:'en'" json:"language"`
	OwnerID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Documents []Document         `gorm:"many2many:context_documents" json:"documents,omitempty"`
	Chats     []Chat             `gorm:"foreignKey:ContextID" json:"chats,omitempty"`
	Rankings  []CandidateRanking `gorm:"foreignKey:ContextID" json:"rankings,omitempty"`
}

func (Context) TableName() string {
	return "contexts"
}

// ContextDocument is the join row linking a context to a document. The
// composite primary key is what makes document attachment idempotent.
type ContextDocument struct {
	ContextID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"context_id"`
	DocumentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"document_id"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ContextDocument) TableName() string {
	return "context_documents"
}

// RankingAnalysis is the structured AI assessment of one candidate.
type RankingAnalysis struct {
	Justification string   `json:"justification"`
	Strengths     []string `json:"strengths,omitempty"`
	Weaknesses    []string `json:"weaknesses,omitempty"`
	RedFlags      []string `json:"red_flags,omitempty"`
}

// ExperienceEntry is the single normalized shape experience items are
// stored in. Upstream may deliver either plain strings or structured
// objects; plain strings end up verbatim in Period with Role and Company
// empty.
type ExperienceEntry struct {
	Role    string `json:"role,omitempty"`
	Company string `json:"company,omitempty"`
	Period  string `json:"period,omitempty"`
}

// CandidateSummary is the normalized candidate profile attached to a
// ranking result.
type CandidateSummary struct {
	Skills     []string          `json:"skills,omitempty"`
	Experience []ExperienceEntry `json:"experience,omitempty"`
}

// CandidateRanking holds one candidate's AI ranking inside a context.
// The (context, candidate) pair is unique; a re-rank replaces the row.
type CandidateRanking struct {
	ID          uuid.UUID                            `gorm:"type:uuid;primary_key" json:"id"`
	ContextID   uuid.UUID                            `gorm:"type:uuid;not null;uniqueIndex:idx_context_candidate" json:"context_id"`
	CandidateID uuid.UUID                            `gorm:"type:uuid;not null;uniqueIndex:idx_context_candidate" json:"candidate_id"`
	Score       float64                              `json:"score"`
	Analysis    datatypes.JSONType[RankingAnalysis]  `json:"analysis"`
	Summary     datatypes.JSONType[CandidateSummary] `json:"summary"`
	CreatedAt   time.Time                            `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time                            `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CandidateRanking) TableName() string {
	return "candidate_rankings"
}

// Chat is one conversation thread scoped to a context.
type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ContextID uuid.UUID `gorm:"type:uuid;not null;index" json:"context_id"`
	Title     string    `gorm:"type:text" json:"title"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Messages []ChatMessage `gorm:"foreignKey:ChatID" json:"messages,omitempty"`
}

func (Chat) TableName() string {
	return "chats"
}

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a chat. Assistant turns may carry the
// model's reasoning alongside the answer.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ChatID    uuid.UUID `gorm:"type:uuid;not null;index" json:"chat_id"`
	Role      ChatRole  `gorm:"type:text;not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Reasoning string    `gorm:"type:text" json:"reasoning,omitempty"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
