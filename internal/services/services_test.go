package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hirestack/recruit-api/internal/config"
	"hirestack/recruit-api/internal/models"
	"hirestack/recruit-api/internal/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// fakeMailer records sends and fails on demand.
type fakeMailer struct {
	sent []fakeMail
	err  error
}

type fakeMail struct {
	to      string
	subject string
	body    string
}

func (m *fakeMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, fakeMail{to: to, subject: subject, body: htmlBody})
	return nil
}

var errSMTPDown = errors.New("smtp relay unreachable")

func seedApplicant(t *testing.T, db *gorm.DB, name, email string) *models.Applicant {
	t.Helper()

	applicant := &models.Applicant{
		ID:       uuid.New(),
		FullName: name,
		Email:    email,
	}
	if err := repositories.NewApplicantRepository(db).Create(applicant); err != nil {
		t.Fatalf("seed applicant: %v", err)
	}
	return applicant
}

func seedJobPost(t *testing.T, db *gorm.DB) *models.JobPost {
	t.Helper()

	post := &models.JobPost{
		ID:     uuid.New(),
		Title:  "Platform Engineer",
		Status: models.JobPostPublished,
	}
	if err := repositories.NewJobPostRepository(db).Create(post); err != nil {
		t.Fatalf("seed job post: %v", err)
	}
	return post
}

func seedInterview(t *testing.T, db *gorm.DB, name string) *models.Interview {
	t.Helper()

	interview := &models.Interview{
		ID:   uuid.New(),
		Name: name,
	}
	if err := repositories.NewInterviewRepository(db).Create(interview); err != nil {
		t.Fatalf("seed interview: %v", err)
	}
	return interview
}

func seedDocument(t *testing.T, db *gorm.DB, name string) *models.Document {
	t.Helper()

	doc := &models.Document{
		ID:               uuid.New(),
		Filename:         name,
		OriginalFileName: name,
		FileType:         "resume",
		FilePath:         "/tmp/" + name,
		ExtractedText:    "ten years of Go",
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := repositories.NewDocumentRepository(db).Create(doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	return doc
}
