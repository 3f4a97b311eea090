package controller

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"emoticore-be/internal/dto"
	"emoticore-be/internal/pkg/logger"
	"emoticore-be/internal/pkg/serverutils"
	"emoticore-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubBillingService struct {
	notifyErr   error
	checkoutErr error
}

func (s *stubBillingService) GetActivePlans(ctx context.Context) ([]*dto.SubscriptionPlanResponse, error) {
	return []*dto.SubscriptionPlanResponse{{Id: uuid.New(), Name: "Premium Monthly", Slug: "premium-monthly"}}, nil
}

func (s *stubBillingService) CreateCheckout(ctx context.Context, userId uuid.UUID, request *dto.CreateCheckoutRequest) (*dto.CreateCheckoutResponse, error) {
	if s.checkoutErr != nil {
		return nil, s.checkoutErr
	}
	return &dto.CreateCheckoutResponse{SessionId: uuid.New(), Token: "tok"}, nil
}

func (s *stubBillingService) CheckSession(ctx context.Context, userId uuid.UUID, request *dto.CheckSessionRequest) (*dto.CheckSessionResponse, error) {
	return nil, service.ErrOrderNotFound
}

func (s *stubBillingService) HandleNotification(ctx context.Context, request *dto.MidtransWebhookRequest) error {
	return s.notifyErr
}

func newBillingApp(svc service.IBillingService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.FiberErrorHandler})
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewBillingController(svc, logger.NewNopLogger()).RegisterRoutes(app.Group("/api"), serverutils.NewJwtMiddleware(testSecret))
	return app
}

func TestBillingController_Webhook(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"processed", nil, http.StatusOK},
		{"bad signature", service.ErrInvalidSignature, http.StatusForbidden},
		{"unknown order", service.ErrOrderNotFound, http.StatusNotFound},
		{"store failure", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newBillingApp(&stubBillingService{notifyErr: tt.err})
			status, _ := doJSON(t, app, http.MethodPost, "/api/payment/notification", "", map[string]string{
				"order_id":           uuid.NewString(),
				"transaction_status": "settlement",
			})
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestBillingController_Checkout(t *testing.T) {
	token := signToken(t, uuid.NewString())

	status, body := doJSON(t, newBillingApp(&stubBillingService{}), http.MethodPost, "/api/create-checkout-session", token, map[string]string{"planId": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "planId")

	status, _ = doJSON(t, newBillingApp(&stubBillingService{}), http.MethodPost, "/api/create-checkout-session", "", map[string]string{"planId": uuid.NewString()})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, newBillingApp(&stubBillingService{checkoutErr: service.ErrPlanNotFound}), http.MethodPost, "/api/create-checkout-session", token, map[string]string{"planId": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doJSON(t, newBillingApp(&stubBillingService{}), http.MethodGet, "/api/subscription-plans", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, _ = doJSON(t, newBillingApp(&stubBillingService{}), http.MethodPost, "/api/check-session", token, map[string]string{"sessionId": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, status)
}
