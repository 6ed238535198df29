package repositories

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hirestack/recruit-api/internal/config"
	"hirestack/recruit-api/internal/models"
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

func seedApplicant(t *testing.T, db *gorm.DB, email string) *models.Applicant {
	t.Helper()

	applicant := &models.Applicant{
		ID:       uuid.New(),
		FullName: "Test Applicant",
		Email:    email,
	}
	if err := NewApplicantRepository(db).Create(applicant); err != nil {
		t.Fatalf("seed applicant: %v", err)
	}
	return applicant
}

func seedJobPost(t *testing.T, db *gorm.DB) *models.JobPost {
	t.Helper()

	post := &models.JobPost{
		ID:     uuid.New(),
		Title:  "Backend Engineer",
		Status: models.JobPostPublished,
	}
	if err := NewJobPostRepository(db).Create(post); err != nil {
		t.Fatalf("seed job post: %v", err)
	}
	return post
}

func seedApplication(t *testing.T, db *gorm.DB) *models.Application {
	t.Helper()

	applicant := seedApplicant(t, db, uuid.New().String()+"@example.com")
	post := seedJobPost(t, db)

	app := &models.Application{
		ID:           uuid.New(),
		ApplicantID:  applicant.ID,
		JobPostID:    post.ID,
		CurrentStage: models.StageApplied,
		AppliedAt:    time.Now(),
	}
	if err := NewApplicationRepository(db).Create(app); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return app
}

func seedDocument(t *testing.T, db *gorm.DB, name string) *models.Document {
	t.Helper()

	doc := &models.Document{
		ID:               uuid.New(),
		Filename:         name,
		OriginalFileName: name,
		FileType:         "resume",
		FilePath:         "/tmp/" + name,
		ExtractedText:    "some resume text",
	}
	if err := NewDocumentRepository(db).Create(doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	return doc
}
