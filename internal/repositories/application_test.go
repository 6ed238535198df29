package repositories

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
)

func TestApplicationCreateWritesInitialHistory(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewApplicationRepository(db)

	app := seedApplication(t, db)

	got, err := repo.FindByID(app.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.CurrentStage != models.StageApplied {
		t.Fatalf("expected stage %s, got %s", models.StageApplied, got.CurrentStage)
	}
	if len(got.History) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(got.History))
	}
	if got.History[0].Seq != 1 || got.History[0].Stage != models.StageApplied {
		t.Fatalf("unexpected initial history entry: %+v", got.History[0])
	}
}

func TestApplicationTransitionStageAppendsHistory(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewApplicationRepository(db)
	app := seedApplication(t, db)

	got, err := repo.TransitionStage(app.ID, models.StageApplied, models.StageAiScreening, "auto advance", "recruiter")
	if err != nil {
		t.Fatalf("TransitionStage error: %v", err)
	}
	if got.CurrentStage != models.StageAiScreening {
		t.Fatalf("expected stage %s, got %s", models.StageAiScreening, got.CurrentStage)
	}
	if len(got.History) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(got.History))
	}
	last := got.History[len(got.History)-1]
	if last.Seq != 2 || last.Stage != models.StageAiScreening {
		t.Fatalf("unexpected appended entry: %+v", last)
	}
	if last.Note != "auto advance" || last.Actor != "recruiter" {
		t.Fatalf("note/actor not recorded: %+v", last)
	}
	if got.History[0].Stage != models.StageApplied {
		t.Fatalf("existing history entry was touched: %+v", got.History[0])
	}
}

func TestApplicationTransitionStageStalePriorStageConflicts(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewApplicationRepository(db)
	app := seedApplication(t, db)

	if _, err := repo.TransitionStage(app.ID, models.StageApplied, models.StageAiScreening, "", ""); err != nil {
		t.Fatalf("first transition error: %v", err)
	}

	// Second writer still believes the application is at applied.
	_, err := repo.TransitionStage(app.ID, models.StageApplied, models.StageRejected, "", "")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}

	got, err := repo.FindByID(app.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.CurrentStage != models.StageAiScreening {
		t.Fatalf("losing writer changed the stage: %s", got.CurrentStage)
	}
	if len(got.History) != 2 {
		t.Fatalf("losing writer appended history: %d entries", len(got.History))
	}
}

func TestApplicationTransitionStageUnknownIDNotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewApplicationRepository(db)

	_, err := repo.TransitionStage(uuid.New(), models.StageApplied, models.StageAiScreening, "", "")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestApplicationHistoryOrderedBySeq(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewApplicationRepository(db)
	app := seedApplication(t, db)

	steps := []models.Stage{models.StageAiScreening, models.StageReview, models.StageOffer, models.StageHired}
	from := models.StageApplied
	for _, to := range steps {
		if _, err := repo.TransitionStage(app.ID, from, to, "", ""); err != nil {
			t.Fatalf("transition to %s error: %v", to, err)
		}
		from = to
	}

	got, err := repo.FindByID(app.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if len(got.History) != len(steps)+1 {
		t.Fatalf("expected %d history entries, got %d", len(steps)+1, len(got.History))
	}
	for i, entry := range got.History {
		if entry.Seq != i+1 {
			t.Fatalf("entry %d has seq %d", i, entry.Seq)
		}
	}
	if got.History[len(got.History)-1].Stage != got.CurrentStage {
		t.Fatalf("current stage %s does not match last history entry %s",
			got.CurrentStage, got.History[len(got.History)-1].Stage)
	}
}
