package service

import (
	"context"
	"sync"
	"time"

	"emoticore-be/internal/dto"
	"emoticore-be/pkg/billing"
	"emoticore-be/pkg/events"
	"emoticore-be/pkg/llm"
)

type fakeProvider struct {
	available bool
	reply     string
	err       error
	onChat    func() // runs before the reply is returned


	mu    sync.Mutex
	calls [][]llm.Message
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if p.onChat != nil {
		p.onChat()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, history)
	return p.reply, p.err
}

func (p *fakeProvider) Available() bool {
	return p.available
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []dto.ChatTurnCompletedEvent
}

func (p *recordingPublisher) PublishTurnCompleted(ctx context.Context, evt dto.ChatTurnCompletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

type recordingEvents struct {
	mu    sync.Mutex
	types []string
}

func (p *recordingEvents) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, event.EventType())
	return nil
}

type fakeGateway struct {
	session   *billing.CheckoutSession
	createErr error
	status    *billing.TransactionStatus
	statusErr error
	validSig  bool

	requests []billing.CheckoutRequest
}

func (g *fakeGateway) CreateCheckout(ctx context.Context, req billing.CheckoutRequest) (*billing.CheckoutSession, error) {
	g.requests = append(g.requests, req)
	return g.session, g.createErr
}

func (g *fakeGateway) GetStatus(ctx context.Context, orderId string) (*billing.TransactionStatus, error) {
	return g.status, g.statusErr
}

func (g *fakeGateway) VerifySignature(orderId, statusCode, grossAmount, signature string) bool {
	return g.validSig
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMailer) SendSubscriptionConfirmation(toEmail, fullName, planName string, endDate time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, toEmail)
	return nil
}
