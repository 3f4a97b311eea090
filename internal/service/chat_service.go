package service

import (
	"context"
	"time"

	"emoticore-be/internal/constant"
	"emoticore-be/internal/dto"
	"emoticore-be/internal/entity"
	"emoticore-be/internal/pkg/logger"
	"emoticore-be/internal/repository/specification"
	"emoticore-be/internal/repository/unitofwork"
	"emoticore-be/pkg/conversation"
	"emoticore-be/pkg/llm"

	"github.com/google/uuid"
)

const chatModule = "ChatService"

type IChatService interface {
	HandleTurn(ctx context.Context, callerId uuid.UUID, request *dto.SendChatRequest) (*TurnResult, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
}

// TurnResult is the outcome of one chat turn. Failure is set when Reply is
// fallback text; in that case SessionId is nil.
type TurnResult struct {
	Reply     string
	SessionId *uuid.UUID
	Failure   *TurnFailure
}

func (r *TurnResult) Degraded() bool {
	return r.Failure != nil
}

type ChatServiceConfig struct {
	SystemPrompt string
	// AtomicNewSession writes session, first message and title in one transaction.
	AtomicNewSession bool
}

type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	publisher   IPublisherService
	logger      logger.ILogger
	cfg         ChatServiceConfig
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	publisher IPublisherService,
	sysLogger logger.ILogger,
	cfg ChatServiceConfig,
) IChatService {
	return &chatService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		publisher:   publisher,
		logger:      sysLogger,
		cfg:         cfg,
	}
}

// turn tracks what has been persisted so far.
type turn struct {
	callerId  uuid.UUID
	sessionId uuid.UUID
	isNew     bool
}

// HandleTurn runs one user message through the conversation pipeline.
// The returned error is reserved for caller mistakes; every downstream
// failure produces a degraded TurnResult instead.
func (cs *chatService) HandleTurn(ctx context.Context, callerId uuid.UUID, request *dto.SendChatRequest) (*TurnResult, error) {
	if callerId == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if request == nil || request.Message == "" {
		return nil, ErrInvalidRequest
	}

	var existingId uuid.UUID
	if request.SessionId != "" {
		id, err := uuid.Parse(request.SessionId)
		if err != nil {
			return nil, ErrInvalidSessionId
		}
		existingId = id
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	var t *turn
	if existingId == uuid.Nil {
		sessionId, failure := cs.openSession(ctx, uow, callerId, request.Message)
		if failure != nil {
			return cs.degrade(ctx, nil, failure), nil
		}
		t = &turn{callerId: callerId, sessionId: sessionId, isNew: true}
	} else {
		session, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: existingId},
			specification.UserOwnedBy{UserID: callerId},
		)
		if err != nil {
			return cs.degrade(ctx, nil, &TurnFailure{Kind: FailureStoreUnavailable, Op: "find session", Err: err}), nil
		}
		if session == nil {
			return nil, ErrSessionNotFound
		}

		if err := cs.appendMessage(ctx, uow, session.Id, callerId, constant.ChatMessageRoleUser, request.Message); err != nil {
			return cs.degrade(ctx, nil, &TurnFailure{Kind: FailureStoreUnavailable, Op: "persist user message", Err: err}), nil
		}
		t = &turn{callerId: callerId, sessionId: session.Id}

		if err := uow.ChatSessionRepository().Touch(ctx, session.Id); err != nil {
			cs.logger.Warn(chatModule, "Failed to touch session", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
	}

	if !cs.llmProvider.Available() {
		return cs.degrade(ctx, t, &TurnFailure{Kind: FailureProviderUnavailable, Op: "check provider", Err: llm.ErrNotConfigured}), nil
	}

	history := make([]conversation.HistoryEntry, len(request.History))
	for i, h := range request.History {
		history[i] = conversation.HistoryEntry{Content: h.Content, IsBot: h.IsBot}
	}
	window := conversation.BuildWindow(cs.cfg.SystemPrompt, history, request.Message)

	startedAt := time.Now()
	reply, err := cs.llmProvider.Chat(ctx, window)
	if err != nil {
		return cs.degrade(ctx, t, &TurnFailure{Kind: FailureProviderError, Op: "chat completion", Err: err}), nil
	}
	if reply == "" {
		return cs.degrade(ctx, t, &TurnFailure{Kind: FailureProviderError, Op: "chat completion", Err: llm.ErrEmptyCompletion}), nil
	}

	if err := cs.appendMessage(ctx, uow, t.sessionId, callerId, constant.ChatMessageRoleAssistant, reply); err != nil {
		return cs.degrade(ctx, t, &TurnFailure{Kind: FailureStoreUnavailable, Op: "persist assistant message", Err: err}), nil
	}

	cs.logger.Info(chatModule, "Turn completed", map[string]interface{}{
		"user_id":      callerId,
		"session_id":   t.sessionId,
		"new_session":  t.isNew,
		"window_size":  len(window),
		"reply_length": len(reply),
		"latency_ms":   time.Since(startedAt).Milliseconds(),
	})
	cs.publishTurn(ctx, t, nil)

	sessionId := t.sessionId
	return &TurnResult{Reply: reply, SessionId: &sessionId}, nil
}

// openSession creates the session, stores the first user message and derives
// the title. Only the atomic mode treats a failed title update as fatal.
func (cs *chatService) openSession(ctx context.Context, uow unitofwork.UnitOfWork, callerId uuid.UUID, message string) (uuid.UUID, *TurnFailure) {
	title := conversation.DeriveTitle(message)

	if cs.cfg.AtomicNewSession {
		if err := uow.Begin(ctx); err != nil {
			return uuid.Nil, &TurnFailure{Kind: FailureStoreUnavailable, Op: "begin transaction", Err: err}
		}
		defer uow.Rollback()
	}

	session := &entity.ChatSession{Id: uuid.New(), UserId: callerId}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return uuid.Nil, &TurnFailure{Kind: FailureStoreUnavailable, Op: "create session", Err: err}
	}

	if err := cs.appendMessage(ctx, uow, session.Id, callerId, constant.ChatMessageRoleUser, message); err != nil {
		return uuid.Nil, &TurnFailure{Kind: FailureStoreUnavailable, Op: "persist user message", Err: err}
	}

	if err := uow.ChatSessionRepository().UpdateTitle(ctx, session.Id, title); err != nil {
		if cs.cfg.AtomicNewSession {
			return uuid.Nil, &TurnFailure{Kind: FailureStoreUnavailable, Op: "update title", Err: err}
		}
		cs.logger.Warn(chatModule, "Failed to update session title", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}

	if cs.cfg.AtomicNewSession {
		if err := uow.Commit(); err != nil {
			return uuid.Nil, &TurnFailure{Kind: FailureStoreUnavailable, Op: "commit new session", Err: err}
		}
	}

	return session.Id, nil
}

func (cs *chatService) appendMessage(ctx context.Context, uow unitofwork.UnitOfWork, sessionId, userId uuid.UUID, role, content string) error {
	return uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		UserId:        userId,
		Content:       content,
		Role:          role,
		CreatedAt:     time.Now(),
	})
}

// degrade logs the failure and builds the fallback reply. t is nil when the
// user message was never persisted.
func (cs *chatService) degrade(ctx context.Context, t *turn, failure *TurnFailure) *TurnResult {
	details := map[string]interface{}{
		"kind":  string(failure.Kind),
		"op":    failure.Op,
		"error": failure.Error(),
	}
	if t != nil {
		details["user_id"] = t.callerId
		details["session_id"] = t.sessionId
	}

	reply := constant.ChatFallbackTechnical
	if failure.Kind == FailureProviderUnavailable {
		reply = constant.ChatFallbackNotConfigured
		cs.logger.Warn(chatModule, "Completion provider not configured", details)
	} else {
		cs.logger.Error(chatModule, "Turn degraded", details)
	}

	if t != nil {
		cs.publishTurn(ctx, t, failure)
	}

	return &TurnResult{Reply: reply, Failure: failure}
}

func (cs *chatService) publishTurn(ctx context.Context, t *turn, failure *TurnFailure) {
	if cs.publisher == nil {
		return
	}

	evt := dto.ChatTurnCompletedEvent{
		UserId:     t.callerId,
		SessionId:  t.sessionId,
		NewSession: t.isNew,
		Degraded:   failure != nil,
		OccurredAt: time.Now(),
	}
	if failure != nil {
		evt.FailureKind = string(failure.Kind)
	}

	if err := cs.publisher.PublishTurnCompleted(ctx, evt); err != nil {
		cs.logger.Warn(chatModule, "Failed to publish turn event", map[string]interface{}{
			"session_id": t.sessionId,
			"error":      err.Error(),
		})
	}
}

func (cs *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetAllSessionsResponse, len(sessions))
	for i, s := range sessions {
		res[i] = &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		}
	}
	return res, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetChatHistoryResponse, len(messages))
	for i, m := range messages {
		res[i] = &dto.GetChatHistoryResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return res, nil
}

func (cs *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	cs.logger.Info(chatModule, "Session deleted", map[string]interface{}{
		"user_id":    userId,
		"session_id": sessionId,
	})
	return nil
}
