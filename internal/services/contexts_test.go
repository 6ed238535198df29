package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/repositories"
)

func newContextService(t *testing.T, db *gorm.DB) ContextService {
	t.Helper()

	return NewContextService(
		repositories.NewContextRepository(db),
		repositories.NewDocumentRepository(db),
	)
}

func TestContextCreateAndGet(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newContextService(t, db)

	owner := uuid.New()
	doc := seedDocument(t, db, "resume.pdf")

	c, err := svc.Create(owner, "Senior Go engineer", "en", []uuid.UUID{doc.ID})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if len(c.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(c.Documents))
	}

	got, err := svc.Get(owner, c.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.JobDescription != "Senior Go engineer" {
		t.Fatalf("unexpected job description %q", got.JobDescription)
	}
}

func TestContextCreateRejectsMissingDocuments(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newContextService(t, db)

	_, err := svc.Create(uuid.New(), "Senior Go engineer", "en", []uuid.UUID{uuid.New()})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound for a missing document, got %v", err)
	}

	if _, err := svc.Create(uuid.Nil, "Senior Go engineer", "en", nil); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected Unauthorized without an owner, got %v", err)
	}
	if _, err := svc.Create(uuid.New(), "", "en", nil); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected InvalidArgument without a job description, got %v", err)
	}
}

func TestContextOwnerScoping(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newContextService(t, db)

	owner := uuid.New()
	stranger := uuid.New()

	c, err := svc.Create(owner, "Senior Go engineer", "en", nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Another owner's context reads as absent, not forbidden.
	if _, err := svc.Get(stranger, c.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound for a stranger, got %v", err)
	}
	if err := svc.Delete(stranger, c.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound deleting as a stranger, got %v", err)
	}

	list, err := svc.List(stranger)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("stranger sees %d contexts", len(list))
	}
}

func TestContextDeleteHidesContext(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newContextService(t, db)

	owner := uuid.New()
	c, err := svc.Create(owner, "Senior Go engineer", "en", nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(owner, c.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := svc.Get(owner, c.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
}

func TestContextAttachDocumentsIdempotent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newContextService(t, db)

	owner := uuid.New()
	docA := seedDocument(t, db, "a.pdf")
	docB := seedDocument(t, db, "b.pdf")

	c, err := svc.Create(owner, "Senior Go engineer", "en", []uuid.UUID{docA.ID})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// docA is already attached; only docB should be added.
	if err := svc.AttachDocuments(owner, c.ID, []uuid.UUID{docA.ID, docB.ID}); err != nil {
		t.Fatalf("AttachDocuments error: %v", err)
	}

	got, err := svc.Get(owner, c.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(got.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(got.Documents))
	}

	if err := svc.AttachDocuments(owner, c.ID, []uuid.UUID{uuid.New()}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound attaching a missing document, got %v", err)
	}
}

func TestMergeRankingResultLastWriteWins(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newContextService(t, db)

	owner := uuid.New()
	c, err := svc.Create(owner, "Senior Go engineer", "en", nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	candidate := uuid.New()

	first := &RankingPayload{Score: 48, Justification: "thin Go experience"}
	if err := svc.MergeRankingResult(c.ID, candidate, first); err != nil {
		t.Fatalf("first merge error: %v", err)
	}

	second := &RankingPayload{
		Score:         81,
		Justification: "strong after the follow-up screen",
		Skills:        []string{"go", "postgres"},
		Experience: []ExperienceInput{
			{Role: "Backend Engineer", Company: "Acme", Period: "2019-2024"},
			{Period: "freelance Go work"},
		},
	}
	if err := svc.MergeRankingResult(c.ID, candidate, second); err != nil {
		t.Fatalf("second merge error: %v", err)
	}

	rankings, err := svc.ListRankings(owner, c.ID)
	if err != nil {
		t.Fatalf("ListRankings error: %v", err)
	}
	if len(rankings) != 1 {
		t.Fatalf("expected one ranking per candidate, got %d", len(rankings))
	}
	if rankings[0].Score != 81 {
		t.Fatalf("expected the later result to win, got score %.0f", rankings[0].Score)
	}
	summary := rankings[0].Summary.Data()
	if len(summary.Experience) != 2 || summary.Experience[1].Period != "freelance Go work" {
		t.Fatalf("experience not normalized: %+v", summary.Experience)
	}
}

func TestMergeRankingResultRejectsMalformedPayload(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newContextService(t, db)

	owner := uuid.New()
	c, err := svc.Create(owner, "Senior Go engineer", "en", nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	candidate := uuid.New()

	good := &RankingPayload{Score: 70, Justification: "solid"}
	if err := svc.MergeRankingResult(c.ID, candidate, good); err != nil {
		t.Fatalf("merge error: %v", err)
	}

	cases := []*RankingPayload{
		nil,
		{Score: 70},
		{Score: -1, Justification: "below range"},
		{Score: 101, Justification: "above range"},
	}
	for i, payload := range cases {
		err := svc.MergeRankingResult(c.ID, candidate, payload)
		if !errors.Is(err, apperr.ErrInvalidUpstreamResponse) {
			t.Fatalf("case %d: expected InvalidUpstreamResponse, got %v", i, err)
		}
	}

	// The earlier good result must be untouched by the rejected ones.
	rankings, err := svc.ListRankings(owner, c.ID)
	if err != nil {
		t.Fatalf("ListRankings error: %v", err)
	}
	if len(rankings) != 1 || rankings[0].Score != 70 {
		t.Fatalf("stored ranking was disturbed: %+v", rankings)
	}
}

func TestMergeRankingResultUnknownContext(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newContextService(t, db)

	payload := &RankingPayload{Score: 50, Justification: "fine"}
	if err := svc.MergeRankingResult(uuid.New(), uuid.New(), payload); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound for an unknown context, got %v", err)
	}
}
