package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"hirestack/recruit-api/internal/models"
	"hirestack/recruit-api/internal/repositories"
)

// ScreeningService executes one ranking job end to end: resolve the
// context and document, retrieve relevant resume excerpts, ask the AI for
// a ranking, and merge the result into the context. Failures are recorded
// on the job and never touch other candidates' results.
type ScreeningService interface {
	ProcessJob(ctx context.Context, jobID uuid.UUID) error
	IndexDocument(ctx context.Context, doc *models.Document) error
}

type screeningService struct {
	jobRepo     repositories.RankingJobRepository
	docRepo     repositories.DocumentRepository
	contextRepo repositories.ContextRepository
	contextSvc  ContextService
	ranker      RankerService
	gemini      GeminiService
	index       ResumeIndex
	chunker     TextChunker
	parser      ResumeParser
}

func NewScreeningService(
	jobRepo repositories.RankingJobRepository,
	docRepo repositories.DocumentRepository,
	contextRepo repositories.ContextRepository,
	contextSvc ContextService,
	ranker RankerService,
	gemini GeminiService,
	index ResumeIndex,
) ScreeningService {
	return &screeningService{
		jobRepo:     jobRepo,
		docRepo:     docRepo,
		contextRepo: contextRepo,
		contextSvc:  contextSvc,
		ranker:      ranker,
		gemini:      gemini,
		index:       index,
		chunker:     NewTextChunker(),
		parser:      NewResumeParser(),
	}
}

func (s *screeningService) ProcessJob(ctx context.Context, jobID uuid.UUID) error {
	if err := s.jobRepo.UpdateStatus(jobID, models.JobProcessing); err != nil {
		return fmt.Errorf("failed to mark job processing: %w", err)
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		s.failJob(jobID, err)
		return err
	}

	doc, err := s.docRepo.FindByID(job.DocumentID)
	if err != nil {
		s.failJob(jobID, err)
		return err
	}

	resumeText := doc.ExtractedText
	if resumeText == "" {
		resumeText, err = s.parser.ExtractText(doc.FilePath)
		if err != nil {
			s.failJob(jobID, err)
			return fmt.Errorf("failed to parse resume: %w", err)
		}
	}

	c, err := s.contextRepo.FindByID(job.ContextID)
	if err != nil {
		s.failJob(jobID, err)
		return err
	}

	ragContext := s.retrieveExcerpts(ctx, c.JobDescription, doc.ID.String())

	payload, err := s.ranker.RankCandidate(ctx, c.JobDescription, c.Language, resumeText, ragContext)
	if err != nil {
		s.failJob(jobID, err)
		return fmt.Errorf("ranking failed: %w", err)
	}

	// Prefer the linked applicant as candidate identity; an unlinked
	// resume is keyed by its own document id.
	candidateID := doc.ID
	if doc.ApplicantID != nil {
		candidateID = *doc.ApplicantID
	}
	if err := s.contextSvc.MergeRankingResult(job.ContextID, candidateID, payload); err != nil {
		s.failJob(jobID, err)
		return fmt.Errorf("failed to merge ranking: %w", err)
	}

	return s.jobRepo.UpdateStatus(jobID, models.JobCompleted)
}

// IndexDocument chunks and embeds an uploaded resume so later rankings
// can retrieve its most relevant excerpts.
func (s *screeningService) IndexDocument(ctx context.Context, doc *models.Document) error {
	if doc.ExtractedText == "" {
		return nil
	}
	chunks := s.chunker.ChunkText(doc.ExtractedText, 1000, 100)
	for _, chunk := range chunks {
		embedding, err := s.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk: %w", err)
		}
		if err := s.index.UpsertChunk(ctx, doc.ID.String(), chunk, embedding); err != nil {
			return err
		}
	}
	return nil
}

// retrieveExcerpts is best-effort: a cold index degrades the prompt, it
// does not fail the job.
func (s *screeningService) retrieveExcerpts(ctx context.Context, jobDescription, documentID string) string {
	embedding, err := s.gemini.GenerateEmbedding(ctx, jobDescription)
	if err != nil {
		log.Printf("excerpt retrieval skipped, embedding failed: %v", err)
		return ""
	}
	results, err := s.index.SearchRelevant(ctx, embedding, documentID, 3)
	if err != nil {
		log.Printf("excerpt retrieval skipped, search failed: %v", err)
		return ""
	}
	return FormatRAGContext(results)
}

func (s *screeningService) failJob(jobID uuid.UUID, cause error) {
	if err := s.jobRepo.UpdateError(jobID, cause.Error()); err != nil {
		log.Printf("failed to record error for job %s: %v", jobID, err)
	}
}
