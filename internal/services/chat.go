package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
	"hirestack/recruit-api/internal/repositories"
)

// ChatReply is the structured pair the AI returns for one chat turn.
type ChatReply struct {
	Reasoning string `json:"reasoning"`
	Answer    string `json:"answer"`
}

// ChatService runs free-text conversations scoped to a context, storing
// both sides of every turn.
type ChatService interface {
	CreateChat(ownerID, contextID uuid.UUID, title string) (*models.Chat, error)
	GetChat(ownerID, contextID, chatID uuid.UUID) (*models.Chat, error)
	SendMessage(ctx context.Context, ownerID, contextID, chatID uuid.UUID, content string) (*models.ChatMessage, error)
}

type chatService struct {
	contextRepo   repositories.ContextRepository
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewChatService(contextRepo repositories.ContextRepository, gemini GeminiService, maxRetries int) ChatService {
	return &chatService{
		contextRepo:   contextRepo,
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

func (s *chatService) CreateChat(ownerID, contextID uuid.UUID, title string) (*models.Chat, error) {
	c, err := s.ownedContext(ownerID, contextID)
	if err != nil {
		return nil, err
	}
	chat := &models.Chat{
		ID:        uuid.New(),
		ContextID: c.ID,
		Title:     title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.contextRepo.CreateChat(chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *chatService) GetChat(ownerID, contextID, chatID uuid.UUID) (*models.Chat, error) {
	if _, err := s.ownedContext(ownerID, contextID); err != nil {
		return nil, err
	}
	return s.contextRepo.FindChat(contextID, chatID)
}

// SendMessage stores the recruiter's turn, asks the AI for a reply, and
// stores the answer together with the model's reasoning.
func (s *chatService) SendMessage(ctx context.Context, ownerID, contextID, chatID uuid.UUID, content string) (*models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "content is required")
	}
	c, err := s.ownedContext(ownerID, contextID)
	if err != nil {
		return nil, err
	}
	chat, err := s.contextRepo.FindChat(contextID, chatID)
	if err != nil {
		return nil, err
	}

	userMsg := &models.ChatMessage{
		ID:        uuid.New(),
		ChatID:    chat.ID,
		Role:      models.ChatRoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.contextRepo.AppendChatMessage(userMsg); err != nil {
		return nil, err
	}

	prompt := s.promptBuilder.BuildChatPrompt(c.JobDescription, chat.Messages, content)
	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.5, s.maxRetries)
	if err != nil {
		return nil, err
	}

	reply, err := ParseChatReply(response)
	if err != nil {
		return nil, err
	}

	assistantMsg := &models.ChatMessage{
		ID:        uuid.New(),
		ChatID:    chat.ID,
		Role:      models.ChatRoleAssistant,
		Content:   reply.Answer,
		Reasoning: reply.Reasoning,
		CreatedAt: time.Now(),
	}
	if err := s.contextRepo.AppendChatMessage(assistantMsg); err != nil {
		return nil, err
	}
	return assistantMsg, nil
}

// ParseChatReply extracts the reasoning/answer pair from a raw model
// response. Answer is required; reasoning is optional.
func ParseChatReply(response string) (*ChatReply, error) {
	var reply ChatReply
	if err := json.Unmarshal([]byte(ExtractJSON(response)), &reply); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidUpstreamResponse, "unparseable chat response: %v", err)
	}
	if strings.TrimSpace(reply.Answer) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidUpstreamResponse, "chat response missing answer")
	}
	return &reply, nil
}

func (s *chatService) ownedContext(ownerID, contextID uuid.UUID) (*models.Context, error) {
	if ownerID == uuid.Nil {
		return nil, apperr.Wrap(apperr.ErrUnauthorized, "no owning session")
	}
	c, err := s.contextRepo.FindByID(contextID)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != ownerID {
		return nil, apperr.Wrap(apperr.ErrNotFound, "context %s", contextID)
	}
	return c, nil
}
