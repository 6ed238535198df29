package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
	"hirestack/recruit-api/internal/repositories"
)

// ContextService owns the analysis contexts a recruiter builds from a job
// description plus candidate documents, and folds in ranking results as
// they arrive from the AI collaborator.
type ContextService interface {
	Create(ownerID uuid.UUID, jobDescription, language string, documentIDs []uuid.UUID) (*models.Context, error)
	Get(ownerID, contextID uuid.UUID) (*models.Context, error)
	List(ownerID uuid.UUID) ([]models.Context, error)
	AttachDocuments(ownerID, contextID uuid.UUID, documentIDs []uuid.UUID) error
	Delete(ownerID, contextID uuid.UUID) error
	MergeRankingResult(contextID, candidateID uuid.UUID, payload *RankingPayload) error
	ListRankings(ownerID, contextID uuid.UUID) ([]models.CandidateRanking, error)
}

type contextService struct {
	contextRepo repositories.ContextRepository
	docRepo     repositories.DocumentRepository
}

func NewContextService(
	contextRepo repositories.ContextRepository,
	docRepo repositories.DocumentRepository,
) ContextService {
	return &contextService{
		contextRepo: contextRepo,
		docRepo:     docRepo,
	}
}

// Create persists the context and its document links as one unit, so no
// caller ever observes a context without the documents it was created
// with.
func (s *contextService) Create(ownerID uuid.UUID, jobDescription, language string, documentIDs []uuid.UUID) (*models.Context, error) {
	if ownerID == uuid.Nil {
		return nil, apperr.Wrap(apperr.ErrUnauthorized, "no owning session")
	}
	if jobDescription == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "job_description is required")
	}
	if language == "" {
		language = "en"
	}

	if err := s.verifyDocuments(documentIDs); err != nil {
		return nil, err
	}

	c := &models.Context{
		ID:             uuid.New(),
		JobDescription: jobDescription,
		Language:       language,
		OwnerID:        ownerID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := s.contextRepo.CreateWithDocuments(c, documentIDs); err != nil {
		return nil, err
	}
	return s.contextRepo.FindByID(c.ID)
}

func (s *contextService) verifyDocuments(documentIDs []uuid.UUID) error {
	if len(documentIDs) == 0 {
		return nil
	}
	docs, err := s.docRepo.FindByIDs(documentIDs)
	if err != nil {
		return err
	}
	if len(docs) != len(uniqueIDs(documentIDs)) {
		return apperr.Wrap(apperr.ErrNotFound, "one or more documents do not exist")
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *contextService) Get(ownerID, contextID uuid.UUID) (*models.Context, error) {
	c, err := s.authorize(ownerID, contextID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contextService) List(ownerID uuid.UUID) ([]models.Context, error) {
	if ownerID == uuid.Nil {
		return nil, apperr.Wrap(apperr.ErrUnauthorized, "no owning session")
	}
	return s.contextRepo.ListByOwner(ownerID)
}

// AttachDocuments appends document links; already attached documents are
// ignored rather than duplicated.
func (s *contextService) AttachDocuments(ownerID, contextID uuid.UUID, documentIDs []uuid.UUID) error {
	if _, err := s.authorize(ownerID, contextID); err != nil {
		return err
	}
	if len(documentIDs) == 0 {
		return apperr.Wrap(apperr.ErrInvalidArgument, "document_ids is required")
	}
	if err := s.verifyDocuments(documentIDs); err != nil {
		return err
	}
	return s.contextRepo.AttachDocuments(contextID, documentIDs)
}

func (s *contextService) Delete(ownerID, contextID uuid.UUID) error {
	if _, err := s.authorize(ownerID, contextID); err != nil {
		return err
	}
	return s.contextRepo.SoftDelete(contextID)
}

// MergeRankingResult validates and normalizes one upstream ranking result,
// then upserts it keyed by candidate. A malformed payload is rejected
// before any write, so existing rankings for other candidates are never
// touched by a bad one.
func (s *contextService) MergeRankingResult(contextID, candidateID uuid.UUID, payload *RankingPayload) error {
	if contextID == uuid.Nil || candidateID == uuid.Nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "context_id and candidate_id are required")
	}
	if err := payload.Validate(); err != nil {
		return err
	}
	if _, err := s.contextRepo.FindByID(contextID); err != nil {
		return err
	}

	ranking := &models.CandidateRanking{
		ID:          uuid.New(),
		ContextID:   contextID,
		CandidateID: candidateID,
		Score:       payload.Score,
		Analysis: datatypes.NewJSONType(models.RankingAnalysis{
			Justification: payload.Justification,
			Strengths:     payload.Strengths,
			Weaknesses:    payload.Weaknesses,
			RedFlags:      payload.RedFlags,
		}),
		Summary: datatypes.NewJSONType(models.CandidateSummary{
			Skills:     payload.Skills,
			Experience: NormalizeExperience(payload.Experience),
		}),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return s.contextRepo.UpsertRanking(ranking)
}

func (s *contextService) ListRankings(ownerID, contextID uuid.UUID) ([]models.CandidateRanking, error) {
	if _, err := s.authorize(ownerID, contextID); err != nil {
		return nil, err
	}
	return s.contextRepo.ListRankings(contextID)
}

func (s *contextService) authorize(ownerID, contextID uuid.UUID) (*models.Context, error) {
	if ownerID == uuid.Nil {
		return nil, apperr.Wrap(apperr.ErrUnauthorized, "no owning session")
	}
	c, err := s.contextRepo.FindByID(contextID)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != ownerID {
		// Not-owned reads as absent; owners of other contexts learn nothing.
		return nil, apperr.Wrap(apperr.ErrNotFound, "context %s", contextID)
	}
	return c, nil
}
