package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/repositories"
)

func newInvitationService(t *testing.T, db *gorm.DB, mailer Mailer) *invitationService {
	t.Helper()

	svc := NewInvitationService(
		repositories.NewInvitationRepository(db),
		repositories.NewApplicantRepository(db),
		repositories.NewInterviewRepository(db),
		mailer,
		"https://hire.example.com",
	)
	return svc.(*invitationService)
}

func TestInvitationIssueAndValidate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc := newInvitationService(t, db, mailer)

	applicant := seedApplicant(t, db, "Jane Doe", "jane.doe@example.com")
	interview := seedInterview(t, db, "Backend loop")

	issued, err := svc.Issue(context.Background(), "jane.doe@example.com", interview.ID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if !issued.EmailSent {
		t.Fatalf("expected email to be sent")
	}
	if _, err := uuid.Parse(issued.Invitation.Token); err != nil {
		t.Fatalf("token is not a UUID: %q", issued.Invitation.Token)
	}
	wantExpiry := time.Now().Add(InvitationTTL)
	if diff := issued.Invitation.ExpiresAt.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("expiry not seven days out: %s", issued.Invitation.ExpiresAt)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailer.sent))
	}
	if mailer.sent[0].to != "jane.doe@example.com" {
		t.Fatalf("email went to %q", mailer.sent[0].to)
	}
	if !strings.Contains(mailer.sent[0].body, issued.Invitation.Token) {
		t.Fatalf("email body missing the join link token")
	}

	got, err := svc.Validate(issued.Invitation.Token, interview.ID)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if got.ApplicantID != applicant.ID {
		t.Fatalf("validated invitation resolves to wrong applicant")
	}
	if got.Applicant.FullName != "Jane Doe" {
		t.Fatalf("applicant not loaded with invitation: %+v", got.Applicant)
	}

	// Validation does not consume the token.
	if _, err := svc.Validate(issued.Invitation.Token, interview.ID); err != nil {
		t.Fatalf("second Validate error: %v", err)
	}
}

func TestInvitationValidateWrongInterview(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newInvitationService(t, db, &fakeMailer{})

	seedApplicant(t, db, "Jane Doe", "jane@example.com")
	interview := seedInterview(t, db, "Backend loop")
	other := seedInterview(t, db, "Frontend loop")

	issued, err := svc.Issue(context.Background(), "jane@example.com", interview.ID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.Validate(issued.Invitation.Token, other.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound for the wrong interview, got %v", err)
	}
}

func TestInvitationValidateExpired(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newInvitationService(t, db, &fakeMailer{})

	seedApplicant(t, db, "Jane Doe", "jane@example.com")
	interview := seedInterview(t, db, "Backend loop")

	issued, err := svc.Issue(context.Background(), "jane@example.com", interview.ID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Move the clock past the seven day window.
	svc.now = func() time.Time { return time.Now().Add(InvitationTTL + time.Hour) }

	if _, err := svc.Validate(issued.Invitation.Token, interview.ID); !errors.Is(err, apperr.ErrExpired) {
		t.Fatalf("expected Expired, got %v", err)
	}
}

func TestInvitationValidateUnknownToken(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newInvitationService(t, db, &fakeMailer{})

	interview := seedInterview(t, db, "Backend loop")

	if _, err := svc.Validate(uuid.New().String(), interview.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := svc.Validate("", interview.ID); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected InvalidArgument for empty token, got %v", err)
	}
}

func TestInvitationIssueUnknownApplicant(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newInvitationService(t, db, &fakeMailer{})

	interview := seedInterview(t, db, "Backend loop")

	if _, err := svc.Issue(context.Background(), "nobody@example.com", interview.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound for unknown applicant, got %v", err)
	}
}

func TestInvitationIssueSurvivesMailFailure(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newInvitationService(t, db, &fakeMailer{err: errSMTPDown})

	seedApplicant(t, db, "Jane Doe", "jane@example.com")
	interview := seedInterview(t, db, "Backend loop")

	issued, err := svc.Issue(context.Background(), "jane@example.com", interview.ID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if issued.EmailSent {
		t.Fatalf("expected EmailSent=false when the relay is down")
	}

	// The invitation is persisted and redeemable regardless.
	if _, err := svc.Validate(issued.Invitation.Token, interview.ID); err != nil {
		t.Fatalf("Validate error after mail failure: %v", err)
	}
}

func TestInvitationRevoke(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newInvitationService(t, db, &fakeMailer{})

	seedApplicant(t, db, "Jane Doe", "jane@example.com")
	interview := seedInterview(t, db, "Backend loop")

	issued, err := svc.Issue(context.Background(), "jane@example.com", interview.ID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if err := svc.Revoke(issued.Invitation.ID); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	if _, err := svc.Validate(issued.Invitation.Token, interview.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound after revoke, got %v", err)
	}
	if err := svc.Revoke(issued.Invitation.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound on double revoke, got %v", err)
	}
}
