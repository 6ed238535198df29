package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded resume or supporting file. The binary lives on
// disk at FilePath; ExtractedText keeps the parsed content so ranking does
// not have to re-parse the PDF. ApplicantID links the resume to the
// candidate it describes.
type Document struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Filename         string     `gorm:"type:text" json:"filename"`
	OriginalFileName string     `gorm:"type:text" json:"original_filename"`
	FileType         string     `gorm:"type:text" json:"file_type"`
	FilePath         string     `gorm:"type:text" json:"file_path"`
	ExtractedText    string     `gorm:"type:text" json:"-"`
	ApplicantID      *uuid.UUID `gorm:"type:uuid;index" json:"applicant_id,omitempty"`
	CreatedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
