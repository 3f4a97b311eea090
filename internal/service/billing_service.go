package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"emoticore-be/internal/constant"
	"emoticore-be/internal/dto"
	"emoticore-be/internal/entity"
	"emoticore-be/internal/pkg/logger"
	"emoticore-be/internal/pkg/mailer"
	"emoticore-be/internal/repository/memory"
	"emoticore-be/internal/repository/specification"
	"emoticore-be/internal/repository/unitofwork"
	"emoticore-be/pkg/billing"
	"emoticore-be/pkg/events"

	"github.com/google/uuid"
)

const billingModule = "BillingService"

type IBillingService interface {
	GetActivePlans(ctx context.Context) ([]*dto.SubscriptionPlanResponse, error)
	CreateCheckout(ctx context.Context, userId uuid.UUID, request *dto.CreateCheckoutRequest) (*dto.CreateCheckoutResponse, error)
	CheckSession(ctx context.Context, userId uuid.UUID, request *dto.CheckSessionRequest) (*dto.CheckSessionResponse, error)
	HandleNotification(ctx context.Context, request *dto.MidtransWebhookRequest) error
}

type billingService struct {
	uowFactory     unitofwork.RepositoryFactory
	gateway        billing.Gateway
	planCache      *memory.PlanCache
	emailService   mailer.IEmailService
	eventPublisher events.Publisher
	logger         logger.ILogger
	finishURL      string
	now            func() time.Time
}

func NewBillingService(
	uowFactory unitofwork.RepositoryFactory,
	gateway billing.Gateway,
	planCache *memory.PlanCache,
	emailService mailer.IEmailService,
	eventPublisher events.Publisher,
	sysLogger logger.ILogger,
	finishURL string,
) IBillingService {
	return &billingService{
		uowFactory:     uowFactory,
		gateway:        gateway,
		planCache:      planCache,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
		finishURL:      finishURL,
		now:            time.Now,
	}
}

func (s *billingService) GetActivePlans(ctx context.Context) ([]*dto.SubscriptionPlanResponse, error) {
	plans, found := s.planCache.GetActive()
	if !found {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		var err error
		plans, err = uow.SubscriptionRepository().FindAllPlans(ctx,
			specification.ActivePlans{},
			specification.OrderBy{Field: "sort_order"},
		)
		if err != nil {
			return nil, err
		}
		s.planCache.SaveActive(plans)
	}

	res := make([]*dto.SubscriptionPlanResponse, len(plans))
	for i, p := range plans {
		res[i] = &dto.SubscriptionPlanResponse{
			Id:          p.Id,
			Name:        p.Name,
			Slug:        p.Slug,
			Description: p.Description,
			Price:       p.Price,
			Interval:    p.Interval,
		}
	}
	return res, nil
}

func (s *billingService) CreateCheckout(ctx context.Context, userId uuid.UUID, request *dto.CreateCheckoutRequest) (*dto.CreateCheckoutResponse, error) {
	planId, err := uuid.Parse(request.PlanId)
	if err != nil {
		return nil, ErrPlanNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId}, specification.ActivePlans{})
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.Price <= 0 {
		return nil, ErrPlanNotFound
	}

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = newFreeProfile(userId)
		if err := uow.ProfileRepository().Create(ctx, profile); err != nil {
			return nil, err
		}
	}

	order := &entity.CheckoutOrder{
		Id:          uuid.New(),
		UserId:      userId,
		PlanId:      plan.Id,
		GrossAmount: int64(plan.Price),
		Status:      constant.CheckoutStatusPending,
	}
	if err := uow.SubscriptionRepository().CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	// Gateway call happens after the order row exists so the webhook can always find it
	session, err := s.gateway.CreateCheckout(ctx, billing.CheckoutRequest{
		OrderId:     order.Id.String(),
		GrossAmount: order.GrossAmount,
		ItemId:      plan.Id.String(),
		ItemName:    plan.Name,
		Email:       profile.Email,
		FullName:    profile.FullName,
		FinishURL:   s.finishURL,
	})
	if err != nil {
		order.Status = constant.CheckoutStatusFailed
		if updateErr := uow.SubscriptionRepository().UpdateOrder(ctx, order); updateErr != nil {
			s.logger.Error(billingModule, "Failed to mark order failed", map[string]interface{}{
				"order_id": order.Id,
				"error":    updateErr.Error(),
			})
		}
		return nil, err
	}

	order.SnapToken = session.Token
	order.RedirectURL = session.RedirectURL
	if err := uow.SubscriptionRepository().UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.TypeSubscriptionCheckoutCreated, map[string]interface{}{
		"order_id":  order.Id.String(),
		"user_id":   userId.String(),
		"plan_id":   plan.Id.String(),
		"plan_name": plan.Name,
		"amount":    order.GrossAmount,
	}))

	s.logger.Info(billingModule, "Checkout created", map[string]interface{}{
		"order_id": order.Id,
		"user_id":  userId,
		"plan":     plan.Slug,
	})

	return &dto.CreateCheckoutResponse{
		SessionId:   order.Id,
		Token:       session.Token,
		RedirectUrl: session.RedirectURL,
	}, nil
}

func (s *billingService) CheckSession(ctx context.Context, userId uuid.UUID, request *dto.CheckSessionRequest) (*dto.CheckSessionResponse, error) {
	orderId, err := uuid.Parse(request.SessionId)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.SubscriptionRepository().FindOneOrder(ctx,
		specification.ByID{ID: orderId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.Status == constant.CheckoutStatusPending {
		status, err := s.gateway.GetStatus(ctx, order.Id.String())
		if err != nil {
			// Report the stored state; the webhook will reconcile later
			s.logger.Warn(billingModule, "Gateway status lookup failed", map[string]interface{}{
				"order_id": order.Id,
				"error":    err.Error(),
			})
		} else if reconciled, err := s.reconcile(ctx, order.Id, status.Outcome, status.TransactionId); err != nil {
			return nil, err
		} else if reconciled != nil {
			order = reconciled
		}
	}

	return &dto.CheckSessionResponse{
		SessionId:   order.Id,
		Status:      order.Status,
		PlanId:      order.PlanId,
		GrossAmount: order.GrossAmount,
		PaidAt:      order.PaidAt,
	}, nil
}

func (s *billingService) HandleNotification(ctx context.Context, request *dto.MidtransWebhookRequest) error {
	if !s.gateway.VerifySignature(request.OrderId, request.StatusCode, request.GrossAmount, request.SignatureKey) {
		s.logger.Warn(billingModule, "Notification signature mismatch", map[string]interface{}{
			"order_id": request.OrderId,
		})
		return ErrInvalidSignature
	}

	orderId, err := uuid.Parse(request.OrderId)
	if err != nil {
		return ErrOrderNotFound
	}

	outcome := billing.OutcomeFromStatus(request.TransactionStatus, request.FraudStatus)
	s.logger.Info(billingModule, "Notification received", map[string]interface{}{
		"order_id":           request.OrderId,
		"transaction_status": request.TransactionStatus,
		"outcome":            string(outcome),
	})

	order, err := s.reconcile(ctx, orderId, outcome, request.TransactionId)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return nil
}

// reconcile applies a gateway outcome to the order and, when paid, upgrades
// the owner's profile. Repeated outcomes are no-ops. The order and profile rows
// are locked and the status write is conditional, so a webhook racing a
// check-session poll activates at most once. It returns the order as stored
// after reconciliation, or nil if the order does not exist.
func (s *billingService) reconcile(ctx context.Context, orderId uuid.UUID, outcome billing.Outcome, transactionId string) (*entity.CheckoutOrder, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	orders := uow.SubscriptionRepository()
	order, err := orders.FindOneOrder(ctx, specification.ByID{ID: orderId}, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	var newStatus string
	switch outcome {
	case billing.OutcomePaid:
		newStatus = constant.CheckoutStatusPaid
	case billing.OutcomeFailed:
		newStatus = constant.CheckoutStatusFailed
	default:
		return order, nil
	}

	// Paid is terminal; a late failure notice must not undo it
	if order.Status == newStatus || order.Status == constant.CheckoutStatusPaid {
		return order, nil
	}

	now := s.now()
	previous := order.Status
	order.Status = newStatus
	if transactionId != "" {
		order.GatewayTransactionId = &transactionId
	}
	if newStatus == constant.CheckoutStatusPaid {
		order.PaidAt = &now
	}

	changed, err := orders.TransitionOrder(ctx, order, previous)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Another reconcile committed first; report what it stored
		s.logger.Info(billingModule, "Order already reconciled", map[string]interface{}{
			"order_id": order.Id,
		})
		return orders.FindOneOrder(ctx, specification.ByID{ID: orderId})
	}

	var (
		profile *entity.Profile
		plan    *entity.SubscriptionPlan
	)
	if newStatus == constant.CheckoutStatusPaid {
		plan, err = orders.FindOnePlan(ctx, specification.ByID{ID: order.PlanId})
		if err != nil {
			return nil, err
		}
		if plan == nil {
			return nil, fmt.Errorf("plan %s for order %s: %w", order.PlanId, order.Id, ErrPlanNotFound)
		}

		profile, err = uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: order.UserId}, specification.ForUpdate{})
		if err != nil {
			return nil, err
		}
		isNewProfile := profile == nil
		if isNewProfile {
			profile = newFreeProfile(order.UserId)
		}

		start := now
		if profile.SubscriptionEndDate != nil && profile.SubscriptionEndDate.After(now) {
			start = *profile.SubscriptionEndDate
		}
		end := addInterval(start, plan.Interval)
		orderRef := order.Id.String()

		profile.SubscriptionPlan = constant.SubscriptionPlanPremium
		profile.SubscriptionStatus = constant.SubscriptionStatusActive
		profile.SubscriptionEndDate = &end
		profile.BillingSubscriptionRef = &orderRef

		if isNewProfile {
			err = uow.ProfileRepository().Create(ctx, profile)
		} else {
			err = uow.ProfileRepository().Update(ctx, profile)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if newStatus == constant.CheckoutStatusPaid {
		s.afterActivation(ctx, order, plan, profile)
	} else {
		s.publish(ctx, events.NewEvent(events.TypeSubscriptionPaymentFailed, map[string]interface{}{
			"order_id": order.Id.String(),
			"user_id":  order.UserId.String(),
		}))
	}

	return order, nil
}

func (s *billingService) afterActivation(ctx context.Context, order *entity.CheckoutOrder, plan *entity.SubscriptionPlan, profile *entity.Profile) {
	s.logger.Info(billingModule, "Subscription activated", map[string]interface{}{
		"order_id": order.Id,
		"user_id":  order.UserId,
		"until":    profile.SubscriptionEndDate,
	})

	s.publish(ctx, events.NewEvent(events.TypeSubscriptionActivated, map[string]interface{}{
		"order_id":  order.Id.String(),
		"user_id":   order.UserId.String(),
		"plan_id":   plan.Id.String(),
		"plan_name": plan.Name,
		"amount":    order.GrossAmount,
		"until":     profile.SubscriptionEndDate,
	}))

	if s.emailService == nil || profile.Email == "" {
		return
	}
	err := s.emailService.SendSubscriptionConfirmation(profile.Email, profile.FullName, plan.Name, *profile.SubscriptionEndDate)
	if err != nil && !errors.Is(err, mailer.ErrMailerDisabled) {
		s.logger.Warn(billingModule, "Failed to send confirmation email", map[string]interface{}{
			"user_id": order.UserId,
			"error":   err.Error(),
		})
	}
}

func (s *billingService) publish(ctx context.Context, evt events.BaseEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn(billingModule, "Failed to publish event", map[string]interface{}{
			"type":  evt.Type,
			"error": err.Error(),
		})
	}
}

func addInterval(t time.Time, interval string) time.Time {
	if interval == constant.PlanIntervalYear {
		return t.AddDate(1, 0, 0)
	}
	return t.AddDate(0, 1, 0)
}
