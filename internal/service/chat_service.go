package service

import (
	"context"
	"errors"
	"time"

	"devonaut-be/internal/config"
	"devonaut-be/internal/dto"
	"devonaut-be/internal/entity"
	"devonaut-be/internal/pkg/logger"
	"devonaut-be/internal/repository/memory"
	"devonaut-be/internal/repository/specification"
	"devonaut-be/internal/repository/unitofwork"
	"devonaut-be/pkg/llm"

	"github.com/google/uuid"
)

var (
	ErrChatUserNotFound = errors.New("User not found.")
	ErrQuestionLimit    = errors.New("Question limit reached.")
)

type IChatService interface {
	// BeginExchange validates the request and spends one question from the
	// quota. It must succeed before StreamExchange is called, so quota and
	// identity failures still map to proper statuses instead of dying
	// mid-stream.
	BeginExchange(ctx context.Context, req *dto.ChatRequest) error
	// StreamExchange runs the tutor exchange, delivering the reply through
	// onChunk as it arrives. Returns the full accumulated reply.
	StreamExchange(ctx context.Context, req *dto.ChatRequest, onChunk llm.ChunkHandler) (string, error)
	RemainingQuestions(ctx context.Context, userId uuid.UUID) (*dto.RemainingQuestionsResponse, error)
	ResetQuestions(ctx context.Context, userId uuid.UUID) error
	// History returns persisted conversations grouped per student, optionally
	// narrowed to one student or one assignment.
	History(ctx context.Context, userId, assignmentId *uuid.UUID) (*dto.ChatHistoryResponse, error)
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	provider      llm.LLMProvider
	conversations *memory.ConversationRepository
	cfg           *config.Config
	logger        logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	conversations *memory.ConversationRepository,
	cfg *config.Config,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		provider:      provider,
		conversations: conversations,
		cfg:           cfg,
		logger:        log,
	}
}

func (s *chatService) BeginExchange(ctx context.Context, req *dto.ChatRequest) error {
	userId, err := uuid.Parse(req.UserId)
	if err != nil {
		return ErrChatUserNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return ErrChatUserNotFound
	}

	if user.QuestionsUsed >= s.cfg.Ai.MaxQuestions {
		return ErrQuestionLimit
	}

	// The question is spent when the stream starts, not when it finishes.
	return uow.UserRepository().IncrementQuestionsUsed(ctx, userId)
}

func (s *chatService) StreamExchange(ctx context.Context, req *dto.ChatRequest, onChunk llm.ChunkHandler) (string, error) {
	userId, err := uuid.Parse(req.UserId)
	if err != nil {
		return "", ErrChatUserNotFound
	}

	history := s.conversations.Get(req.UserId)
	turn := append(append([]llm.Message{}, history...), llm.Message{
		Role:    "user",
		Content: req.Prompt,
	})

	reply, err := s.provider.ChatStream(ctx, turn, onChunk,
		llm.WithSystemPrompt(s.cfg.Ai.SystemPrompt),
		llm.WithMaxTokens(s.cfg.Ai.MaxOutputTokens),
		llm.WithTemperature(0),
	)
	if err != nil {
		s.logger.Error("ChatService", "Stream failed", map[string]interface{}{
			"user_id": req.UserId,
			"error":   err.Error(),
		})
		return reply, err
	}

	// Memory and the durable transcript only record completed exchanges.
	s.conversations.Append(req.UserId,
		llm.Message{Role: "user", Content: req.Prompt},
		llm.Message{Role: "assistant", Content: reply},
	)
	s.persistExchange(ctx, userId, req, reply)

	return reply, nil
}

// persistExchange writes both lines of the finished exchange. Persistence is
// best effort: a DB hiccup must not fail a chat the student already saw.
func (s *chatService) persistExchange(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest, reply string) {
	var assignmentId *uuid.UUID
	if req.AssignmentId != "" {
		if id, err := uuid.Parse(req.AssignmentId); err == nil {
			assignmentId = &id
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()
	messages := []*entity.ChatMessage{
		{
			Id:           uuid.New(),
			UserId:       userId,
			AssignmentId: assignmentId,
			Role:         entity.ChatRoleUser,
			Content:      req.Prompt,
			CreatedAt:    now,
		},
		{
			Id:           uuid.New(),
			UserId:       userId,
			AssignmentId: assignmentId,
			Role:         entity.ChatRoleAssistant,
			Content:      reply,
			CreatedAt:    now,
		},
	}
	for _, msg := range messages {
		if err := uow.ChatHistoryRepository().Create(ctx, msg); err != nil {
			s.logger.Warn("ChatService", "Failed to persist chat message", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
			return
		}
	}
}

func (s *chatService) RemainingQuestions(ctx context.Context, userId uuid.UUID) (*dto.RemainingQuestionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrChatUserNotFound
	}

	remaining := s.cfg.Ai.MaxQuestions - user.QuestionsUsed
	if remaining < 0 {
		remaining = 0
	}
	return &dto.RemainingQuestionsResponse{
		QuestionsRemaining: remaining,
		MaxQuestions:       s.cfg.Ai.MaxQuestions,
	}, nil
}

func (s *chatService) ResetQuestions(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().ResetQuestionsUsed(ctx, userId); err != nil {
		return ErrChatUserNotFound
	}
	return nil
}

// History backs the teacher's review screen.
func (s *chatService) History(ctx context.Context, userId, assignmentId *uuid.UUID) (*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	userSpecs := []specification.Specification{specification.ByRole{Role: "student"}}
	if userId != nil {
		userSpecs = append(userSpecs, specification.ByID{ID: *userId})
	}
	students, err := uow.UserRepository().FindAll(ctx, userSpecs...)
	if err != nil {
		return nil, err
	}

	res := &dto.ChatHistoryResponse{Histories: []dto.ChatHistoryEntry{}}
	for _, student := range students {
		messageSpecs := []specification.Specification{
			specification.OwnedBy{UserID: student.Id},
			specification.OrderBy{Field: "created_at"},
		}
		if assignmentId != nil {
			messageSpecs = append(messageSpecs, specification.ByAssignment{AssignmentID: *assignmentId})
		}
		messages, err := uow.ChatHistoryRepository().FindAll(ctx, messageSpecs...)
		if err != nil {
			return nil, err
		}
		if len(messages) == 0 {
			continue
		}

		entry := dto.ChatHistoryEntry{
			UserId:   student.Id,
			Username: student.Username,
			Messages: make([]dto.ChatHistoryMessage, 0, len(messages)),
		}
		for _, m := range messages {
			entry.Messages = append(entry.Messages, dto.ChatHistoryMessage{
				Id:        m.Id,
				Role:      string(m.Role),
				Content:   m.Content,
				CreatedAt: m.CreatedAt,
			})
		}
		res.Histories = append(res.Histories, entry)
	}
	return res, nil
}
