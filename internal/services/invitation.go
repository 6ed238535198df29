package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
	"hirestack/recruit-api/internal/repositories"
)

// InvitationTTL is how long a minted invitation stays redeemable.
const InvitationTTL = 7 * 24 * time.Hour

// IssueResult carries the persisted invitation plus whether the outbound
// email made it out. The invitation record is the source of truth; a
// failed email never rolls it back.
type IssueResult struct {
	Invitation *models.InterviewInvitation
	EmailSent  bool
}

// InvitationService mints and redeems the single-purpose credentials that
// let an unauthenticated candidate join exactly one interview.
type InvitationService interface {
	Issue(ctx context.Context, applicantEmail string, interviewID uuid.UUID) (*IssueResult, error)
	Validate(token string, interviewID uuid.UUID) (*models.InterviewInvitation, error)
	Revoke(invitationID uuid.UUID) error
	ListByInterview(interviewID uuid.UUID) ([]models.InterviewInvitation, error)
}

type invitationService struct {
	invitationRepo repositories.InvitationRepository
	applicantRepo  repositories.ApplicantRepository
	interviewRepo  repositories.InterviewRepository
	mailer         Mailer
	baseURL        string
	now            func() time.Time
}

func NewInvitationService(
	invitationRepo repositories.InvitationRepository,
	applicantRepo repositories.ApplicantRepository,
	interviewRepo repositories.InterviewRepository,
	mailer Mailer,
	baseURL string,
) InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		applicantRepo:  applicantRepo,
		interviewRepo:  interviewRepo,
		mailer:         mailer,
		baseURL:        strings.TrimRight(baseURL, "/"),
		now:            time.Now,
	}
}

func (s *invitationService) Issue(ctx context.Context, applicantEmail string, interviewID uuid.UUID) (*IssueResult, error) {
	if strings.TrimSpace(applicantEmail) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "applicant_email is required")
	}
	if interviewID == uuid.Nil {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "interview_id is required")
	}

	applicant, err := s.applicantRepo.FindByEmail(applicantEmail)
	if err != nil {
		return nil, err
	}
	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	invitation := &models.InterviewInvitation{
		ID:          uuid.New(),
		Token:       uuid.New().String(),
		ApplicantID: applicant.ID,
		InterviewID: interview.ID,
		ExpiresAt:   now.Add(InvitationTTL),
		CreatedAt:   now,
	}
	if err := s.invitationRepo.Create(invitation); err != nil {
		return nil, err
	}
	invitation.Applicant = *applicant

	// Email is best-effort notification. An invitation that exists but
	// never reached the candidate beats one that silently vanished.
	emailSent := true
	if err := s.sendInvitationEmail(ctx, applicant, interview, invitation); err != nil {
		log.Printf("invitation %s persisted but email to %s failed: %v", invitation.ID, applicant.Email, err)
		emailSent = false
	}

	return &IssueResult{Invitation: invitation, EmailSent: emailSent}, nil
}

func (s *invitationService) sendInvitationEmail(ctx context.Context, applicant *models.Applicant, interview *models.Interview, invitation *models.InterviewInvitation) error {
	link := fmt.Sprintf("%s/interviews/%s/join?token=%s", s.baseURL, interview.ID, invitation.Token)
	subject := fmt.Sprintf("Interview invitation: %s", interview.Name)
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>You have been invited to the interview <strong>%s</strong>.</p>"+
			"<p><a href=%q>Join your interview</a></p>"+
			"<p>The link expires on %s.</p>",
		applicant.FullName,
		interview.Name,
		link,
		invitation.ExpiresAt.Format("Jan 2, 2006 15:04 MST"),
	)
	return s.mailer.Send(ctx, applicant.Email, subject, body)
}

// Validate resolves the invitation matching both token and interview.
// Expired-but-present is reported as Expired, distinct from NotFound, so
// the caller can tell "link expired, request a new one" apart from
// "invalid link". Validation does not consume the token.
func (s *invitationService) Validate(token string, interviewID uuid.UUID) (*models.InterviewInvitation, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "token is required")
	}
	if interviewID == uuid.Nil {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "interview_id is required")
	}

	invitation, err := s.invitationRepo.FindByTokenAndInterview(token, interviewID)
	if err != nil {
		return nil, err
	}
	if invitation.ExpiresAt.Before(s.now()) {
		return nil, apperr.Wrap(apperr.ErrExpired, "invitation expired at %s", invitation.ExpiresAt.Format(time.RFC3339))
	}
	return invitation, nil
}

func (s *invitationService) Revoke(invitationID uuid.UUID) error {
	return s.invitationRepo.Delete(invitationID)
}

func (s *invitationService) ListByInterview(interviewID uuid.UUID) ([]models.InterviewInvitation, error) {
	return s.invitationRepo.ListByInterview(interviewID)
}
