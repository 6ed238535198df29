package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
	"hirestack/recruit-api/internal/repositories"
	"hirestack/recruit-api/internal/services"
)

type ContextHandler struct {
	contexts services.ContextService
	chats    services.ChatService
	jobRepo  repositories.RankingJobRepository
	worker   services.Worker
}

func NewContextHandler(
	contexts services.ContextService,
	chats services.ChatService,
	jobRepo repositories.RankingJobRepository,
	worker services.Worker,
) *ContextHandler {
	return &ContextHandler{
		contexts: contexts,
		chats:    chats,
		jobRepo:  jobRepo,
		worker:   worker,
	}
}

func (h *ContextHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateContextRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}
	docIDs, err := parseDocumentIDs(req.DocumentIDs)
	if err != nil {
		return err
	}

	created, err := h.contexts.Create(sessionUserID(c), req.JobDescription, req.Language, docIDs)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ContextHandler) HandleList(c *fiber.Ctx) error {
	contexts, err := h.contexts.List(sessionUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(contexts)
}

func (h *ContextHandler) HandleGet(c *fiber.Ctx) error {
	contextID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	found, err := h.contexts.Get(sessionUserID(c), contextID)
	if err != nil {
		return err
	}
	return c.JSON(found)
}

func (h *ContextHandler) HandleDelete(c *fiber.Ctx) error {
	contextID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.contexts.Delete(sessionUserID(c), contextID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ContextHandler) HandleAttachDocuments(c *fiber.Ctx) error {
	contextID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.AttachDocumentsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}
	docIDs, err := parseDocumentIDs(req.DocumentIDs)
	if err != nil {
		return err
	}

	if err := h.contexts.AttachDocuments(sessionUserID(c), contextID, docIDs); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRank submits every document in the context for ranking: one
// queued job per document, processed by the worker pool. Results land in
// the context asynchronously.
func (h *ContextHandler) HandleRank(c *fiber.Ctx) error {
	contextID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	found, err := h.contexts.Get(sessionUserID(c), contextID)
	if err != nil {
		return err
	}
	if len(found.Documents) == 0 {
		return apperr.Wrap(apperr.ErrInvalidArgument, "context has no documents to rank")
	}

	jobs := make([]models.RankingJob, 0, len(found.Documents))
	for _, doc := range found.Documents {
		job := models.RankingJob{
			ID:         uuid.New(),
			ContextID:  contextID,
			DocumentID: doc.ID,
			Status:     models.JobQueued,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := h.jobRepo.Create(&job); err != nil {
			return err
		}
		h.worker.EnqueueJob(job.ID)
		jobs = append(jobs, job)
	}
	return c.Status(fiber.StatusAccepted).JSON(jobs)
}

func (h *ContextHandler) HandleListRankings(c *fiber.Ctx) error {
	contextID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	rankings, err := h.contexts.ListRankings(sessionUserID(c), contextID)
	if err != nil {
		return err
	}
	return c.JSON(rankings)
}

func (h *ContextHandler) HandleCreateChat(c *fiber.Ctx) error {
	contextID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.CreateChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}

	chat, err := h.chats.CreateChat(sessionUserID(c), contextID, req.Title)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(chat)
}

func (h *ContextHandler) HandleGetChat(c *fiber.Ctx) error {
	contextID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	chatID, err := parseUUIDParam(c, "chatId")
	if err != nil {
		return err
	}
	chat, err := h.chats.GetChat(sessionUserID(c), contextID, chatID)
	if err != nil {
		return err
	}
	return c.JSON(chat)
}

func (h *ContextHandler) HandleSendChatMessage(c *fiber.Ctx) error {
	contextID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	chatID, err := parseUUIDParam(c, "chatId")
	if err != nil {
		return err
	}
	var req models.SendChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "invalid request payload")
	}

	reply, err := h.chats.SendMessage(c.Context(), sessionUserID(c), contextID, chatID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

func parseDocumentIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrInvalidArgument, "invalid document id %q", s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
