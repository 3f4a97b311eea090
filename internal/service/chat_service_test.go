package service

import (
	"context"
	"errors"
	"testing"

	"emoticore-be/internal/constant"
	"emoticore-be/internal/dto"
	"emoticore-be/internal/model"
	"emoticore-be/internal/pkg/logger"
	"emoticore-be/internal/repository/specification"
	"emoticore-be/internal/repository/testdb"
	"emoticore-be/internal/repository/unitofwork"
	"emoticore-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPrompt = "You are EmotiCore."

type chatFixture struct {
	db        *gorm.DB
	factory   unitofwork.RepositoryFactory
	provider  *fakeProvider
	publisher *recordingPublisher
	svc       IChatService
}

func newChatFixture(t *testing.T, atomic bool) *chatFixture {
	t.Helper()
	db := testdb.Open(t)
	f := &chatFixture{
		db:        db,
		factory:   unitofwork.NewRepositoryFactory(db),
		provider:  &fakeProvider{available: true, reply: "I'm here with you."},
		publisher: &recordingPublisher{},
	}
	f.svc = NewChatService(f.factory, f.provider, f.publisher, logger.NewNopLogger(), ChatServiceConfig{
		SystemPrompt:     testPrompt,
		AtomicNewSession: atomic,
	})
	return f
}

func (f *chatFixture) messages(t *testing.T, sessionId uuid.UUID) []string {
	t.Helper()
	uow := f.factory.NewUnitOfWork(context.Background())
	msgs, err := uow.ChatMessageRepository().FindAll(context.Background(),
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	require.NoError(t, err)
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Role + ":" + m.Content
	}
	return out
}

func (f *chatFixture) messageCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.ChatMessage{}).Count(&n).Error)
	return n
}

func (f *chatFixture) sessionCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.ChatSession{}).Count(&n).Error)
	return n
}

func TestHandleTurn_PersistsBeforeProviderCall(t *testing.T) {
	for _, atomic := range []bool{false, true} {
		f := newChatFixture(t, atomic)
		var sessionsAtCall, messagesAtCall int64 = -1, -1
		f.provider.onChat = func() {
			sessionsAtCall = f.sessionCount(t)
			messagesAtCall = f.messageCount(t)
		}

		res, err := f.svc.HandleTurn(context.Background(), uuid.New(), &dto.SendChatRequest{Message: "hello"})
		require.NoError(t, err)
		require.False(t, res.Degraded())

		assert.Equal(t, int64(1), sessionsAtCall, "atomic=%v", atomic)
		assert.Equal(t, int64(1), messagesAtCall, "atomic=%v", atomic)
		assert.Equal(t, int64(2), f.messageCount(t))
	}
}

func TestHandleTurn_WhitespaceIsContent(t *testing.T) {
	f := newChatFixture(t, false)
	f.provider.reply = "   "

	res, err := f.svc.HandleTurn(context.Background(), uuid.New(), &dto.SendChatRequest{Message: "  \n\t"})
	require.NoError(t, err)
	require.False(t, res.Degraded())
	require.NotNil(t, res.SessionId)
	assert.Equal(t, "   ", res.Reply)

	assert.Equal(t, []string{"user:  \n\t", "assistant:   "}, f.messages(t, *res.SessionId))
	assert.Len(t, f.provider.calls, 1)
}

func TestHandleTurn_CallerErrors(t *testing.T) {
	caller := uuid.New()

	tests := []struct {
		name    string
		caller  uuid.UUID
		request *dto.SendChatRequest
		wantErr error
	}{
		{"no caller", uuid.Nil, &dto.SendChatRequest{Message: "hi"}, ErrUnauthenticated},
		{"nil request", caller, nil, ErrInvalidRequest},
		{"empty message", caller, &dto.SendChatRequest{Message: ""}, ErrInvalidRequest},
		{"malformed session id", caller, &dto.SendChatRequest{Message: "hi", SessionId: "not-a-uuid"}, ErrInvalidSessionId},
		{"unknown session", caller, &dto.SendChatRequest{Message: "hi", SessionId: uuid.NewString()}, ErrSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(t, false)

			res, err := f.svc.HandleTurn(context.Background(), tt.caller, tt.request)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
			assert.Zero(t, f.messageCount(t))
			assert.Empty(t, f.provider.calls)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestHandleTurn_NewSession(t *testing.T) {
	for _, atomic := range []bool{false, true} {
		f := newChatFixture(t, atomic)
		caller := uuid.New()
		ctx := context.Background()

		res, err := f.svc.HandleTurn(ctx, caller, &dto.SendChatRequest{
			Message: "I have been feeling really anxious about work lately and cannot sleep",
		})
		require.NoError(t, err)
		require.False(t, res.Degraded())
		require.NotNil(t, res.SessionId)
		assert.Equal(t, "I'm here with you.", res.Reply)

		session, err := f.factory.NewUnitOfWork(ctx).ChatSessionRepository().FindOne(ctx, specification.ByID{ID: *res.SessionId})
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, caller, session.UserId)
		assert.Equal(t, "I have been feeling really anxious about...", session.Title)

		assert.Equal(t, []string{
			"user:I have been feeling really anxious about work lately and cannot sleep",
			"assistant:I'm here with you.",
		}, f.messages(t, *res.SessionId))

		require.Len(t, f.publisher.events, 1)
		evt := f.publisher.events[0]
		assert.Equal(t, caller, evt.UserId)
		assert.Equal(t, *res.SessionId, evt.SessionId)
		assert.True(t, evt.NewSession)
		assert.False(t, evt.Degraded)
	}
}

func TestHandleTurn_ExistingSession(t *testing.T) {
	f := newChatFixture(t, false)
	caller := uuid.New()
	ctx := context.Background()

	first, err := f.svc.HandleTurn(ctx, caller, &dto.SendChatRequest{Message: "hello"})
	require.NoError(t, err)
	require.NotNil(t, first.SessionId)

	f.provider.reply = "Tell me more."
	second, err := f.svc.HandleTurn(ctx, caller, &dto.SendChatRequest{
		Message:   "work is hard",
		SessionId: first.SessionId.String(),
		History: []dto.HistoryItemDTO{
			{Content: "hello", IsBot: false},
			{Content: "I'm here with you.", IsBot: true},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, second.SessionId)
	assert.Equal(t, *first.SessionId, *second.SessionId)

	assert.Equal(t, []string{
		"user:hello",
		"assistant:I'm here with you.",
		"user:work is hard",
		"assistant:Tell me more.",
	}, f.messages(t, *first.SessionId))

	// Window: system prompt, client history, then the new message
	window := f.provider.calls[1]
	require.Len(t, window, 4)
	assert.Equal(t, llm.Message{Role: llm.RoleSystem, Content: testPrompt}, window[0])
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "I'm here with you."}, window[2])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "work is hard"}, window[3])

	require.Len(t, f.publisher.events, 2)
	assert.False(t, f.publisher.events[1].NewSession)
}

func TestHandleTurn_ForeignSessionIsNotFound(t *testing.T) {
	f := newChatFixture(t, false)
	ctx := context.Background()
	owner := uuid.New()

	res, err := f.svc.HandleTurn(ctx, owner, &dto.SendChatRequest{Message: "private thoughts"})
	require.NoError(t, err)
	before := f.messageCount(t)

	_, err = f.svc.HandleTurn(ctx, uuid.New(), &dto.SendChatRequest{
		Message:   "let me in",
		SessionId: res.SessionId.String(),
	})

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, before, f.messageCount(t))
}

func TestHandleTurn_ProviderNotConfigured(t *testing.T) {
	f := newChatFixture(t, false)
	f.provider.available = false
	caller := uuid.New()

	res, err := f.svc.HandleTurn(context.Background(), caller, &dto.SendChatRequest{Message: "hello"})

	require.NoError(t, err)
	assert.Equal(t, constant.ChatFallbackNotConfigured, res.Reply)
	assert.Nil(t, res.SessionId)
	require.NotNil(t, res.Failure)
	assert.Equal(t, FailureProviderUnavailable, res.Failure.Kind)
	assert.Empty(t, f.provider.calls)

	// The user message stays, the fallback is never stored
	assert.Equal(t, int64(1), f.messageCount(t))
	require.Len(t, f.publisher.events, 1)
	assert.True(t, f.publisher.events[0].Degraded)
	assert.Equal(t, string(FailureProviderUnavailable), f.publisher.events[0].FailureKind)
}

func TestHandleTurn_ProviderFailures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{"provider error", "", errors.New("upstream 502")},
		{"empty reply", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(t, false)
			f.provider.reply = tt.reply
			f.provider.err = tt.err

			res, err := f.svc.HandleTurn(context.Background(), uuid.New(), &dto.SendChatRequest{Message: "hello"})

			require.NoError(t, err)
			assert.Equal(t, constant.ChatFallbackTechnical, res.Reply)
			assert.Nil(t, res.SessionId)
			require.NotNil(t, res.Failure)
			assert.Equal(t, FailureProviderError, res.Failure.Kind)
			if tt.err != nil {
				assert.ErrorIs(t, res.Failure, tt.err)
			} else {
				assert.ErrorIs(t, res.Failure, llm.ErrEmptyCompletion)
			}
			assert.Equal(t, int64(1), f.messageCount(t))
		})
	}
}

func TestHandleTurn_StoreUnavailable(t *testing.T) {
	f := newChatFixture(t, false)
	require.NoError(t, f.db.Migrator().DropTable(&model.ChatMessage{}))

	res, err := f.svc.HandleTurn(context.Background(), uuid.New(), &dto.SendChatRequest{Message: "hello"})

	require.NoError(t, err)
	assert.Equal(t, constant.ChatFallbackTechnical, res.Reply)
	assert.Nil(t, res.SessionId)
	require.NotNil(t, res.Failure)
	assert.Equal(t, FailureStoreUnavailable, res.Failure.Kind)
	assert.Empty(t, f.provider.calls)
	// Nothing reached the store, so there is no usage to account for
	assert.Empty(t, f.publisher.events)
}

func TestHandleTurn_AtomicNewSessionRollsBack(t *testing.T) {
	f := newChatFixture(t, true)
	require.NoError(t, f.db.Migrator().DropTable(&model.ChatMessage{}))
	caller := uuid.New()

	res, err := f.svc.HandleTurn(context.Background(), caller, &dto.SendChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.True(t, res.Degraded())

	var sessions int64
	require.NoError(t, f.db.Model(&model.ChatSession{}).Where("user_id = ?", caller).Count(&sessions).Error)
	assert.Zero(t, sessions)
}

func TestChatService_SessionsAndHistory(t *testing.T) {
	f := newChatFixture(t, false)
	ctx := context.Background()
	caller := uuid.New()
	stranger := uuid.New()

	first, err := f.svc.HandleTurn(ctx, caller, &dto.SendChatRequest{Message: "first"})
	require.NoError(t, err)
	second, err := f.svc.HandleTurn(ctx, caller, &dto.SendChatRequest{Message: "second"})
	require.NoError(t, err)

	sessions, err := f.svc.GetAllSessions(ctx, caller)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	none, err := f.svc.GetAllSessions(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, none)

	history, err := f.svc.GetChatHistory(ctx, caller, *first.SessionId)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, history[0].Role)
	assert.Equal(t, "first", history[0].Content)

	_, err = f.svc.GetChatHistory(ctx, stranger, *first.SessionId)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, f.svc.DeleteSession(ctx, stranger, *first.SessionId), ErrSessionNotFound)
	require.NoError(t, f.svc.DeleteSession(ctx, caller, *first.SessionId))

	sessions, err = f.svc.GetAllSessions(ctx, caller)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, *second.SessionId, sessions[0].Id)

	_, err = f.svc.HandleTurn(ctx, caller, &dto.SendChatRequest{Message: "again", SessionId: first.SessionId.String()})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
