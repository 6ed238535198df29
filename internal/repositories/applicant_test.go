package repositories

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
)

func TestApplicantEmailLowercasedAndUnique(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewApplicantRepository(db)

	applicant := &models.Applicant{
		ID:       uuid.New(),
		FullName: "Jane Doe",
		Email:    "Jane.Doe@Example.com",
	}
	if err := repo.Create(applicant); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if applicant.Email != "jane.doe@example.com" {
		t.Fatalf("email not lowercased: %q", applicant.Email)
	}

	dup := &models.Applicant{
		ID:       uuid.New(),
		FullName: "Jane Doe",
		Email:    "JANE.DOE@example.com",
	}
	if err := repo.Create(dup); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected Conflict for duplicate email, got %v", err)
	}

	got, err := repo.FindByEmail("Jane.Doe@EXAMPLE.com")
	if err != nil {
		t.Fatalf("FindByEmail error: %v", err)
	}
	if got.ID != applicant.ID {
		t.Fatalf("FindByEmail returned wrong applicant: %s", got.ID)
	}
}

func TestApplicantDeleteBlockedWhileReferenced(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewApplicantRepository(db)

	app := seedApplication(t, db)

	if err := repo.Delete(app.ApplicantID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected Conflict for referenced applicant, got %v", err)
	}
	if _, err := repo.FindByID(app.ApplicantID); err != nil {
		t.Fatalf("referenced applicant should survive the delete: %v", err)
	}
}

func TestApplicantDeleteUnknownIDNotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewApplicantRepository(db)

	if err := repo.Delete(uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
